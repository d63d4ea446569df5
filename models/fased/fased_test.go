// This file is part of fsimhost.
//
// fsimhost is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fsimhost is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with fsimhost.  If not, see <https://www.gnu.org/licenses/>.

package fased_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fsimhost/fsimhost/bridge"
	"github.com/fsimhost/fsimhost/curated"
	"github.com/fsimhost/fsimhost/models/fased"
	"github.com/fsimhost/fsimhost/platform/softfpga"
	"github.com/fsimhost/fsimhost/plusargs"
	"github.com/fsimhost/fsimhost/test"
)

type registers map[string]uint64

func (r registers) Read(name string) uint64 {
	return r[name]
}

func (r registers) Write(name string, value uint64) {
	r[name] = value
}

type cycler struct {
	cycle uint64
}

func (c *cycler) TargetCycle() uint64 {
	return c.cycle
}

// file captures the stats file in memory
type file struct {
	test.CompareWriter
	name   string
	closed bool
}

func (f *file) Close() error {
	f.closed = true
	return nil
}

func TestModelInterface(t *testing.T) {
	var _ bridge.Model = &fased.FASED{}
}

func TestLatencies(t *testing.T) {
	regs := registers{}
	f := &file{}
	create := func(name string) (io.WriteCloser, error) {
		f.name = name
		return f, nil
	}

	args := plusargs.New([]string{"+mm_readLatency=10", "+mm_writeLatency=20", "+mm_readLatency_1=30"})
	m := fased.NewFASED(regs, "fased1", "_1", &cycler{}, args, create)
	test.DemandSuccess(t, m.Init())

	test.ExpectEquality(t, regs["fased1"+softfpga.RegReadLatency], uint64(30))
	test.ExpectEquality(t, regs["fased1"+softfpga.RegWriteLatency], uint64(20))
	test.ExpectEquality(t, f.name, "memory_stats_1.csv")
	test.ExpectEquality(t, m.Filename(), "memory_stats_1.csv")

	m.Finish()
	test.ExpectSuccess(t, f.closed)
}

func TestBadLatency(t *testing.T) {
	create := func(name string) (io.WriteCloser, error) {
		return &file{}, nil
	}

	m := fased.NewFASED(registers{}, "fased0", "_0", &cycler{},
		plusargs.New([]string{"+mm_readLatency_0=fast"}), create)
	err := m.Init()
	test.ExpectSuccess(t, curated.Is(err, fased.ConfigError))
	test.ExpectSuccess(t, curated.Has(err, plusargs.BadValue))

	m = fased.NewFASED(registers{}, "fased0", "_0", &cycler{},
		plusargs.New([]string{"+mm_writeLatency=-5"}), create)
	err = m.Init()
	test.ExpectSuccess(t, curated.Is(err, fased.ConfigError))
}

func TestStatsFileError(t *testing.T) {
	create := func(name string) (io.WriteCloser, error) {
		return nil, errors.New("read-only file system")
	}

	m := fased.NewFASED(registers{}, "fased0", "_0", &cycler{}, plusargs.New(nil), create)
	err := m.Init()
	test.ExpectSuccess(t, curated.Is(err, fased.StatsError))

	// finishing a model that failed to initialise is harmless
	m.Finish()
}

// brokenFile fails every write
type brokenFile struct {
	closed bool
}

func (f *brokenFile) Write(p []byte) (int, error) {
	return 0, errors.New("no space left on device")
}

func (f *brokenFile) Close() error {
	f.closed = true
	return nil
}

func TestStatsHeaderError(t *testing.T) {
	f := &brokenFile{}
	create := func(name string) (io.WriteCloser, error) {
		return f, nil
	}

	m := fased.NewFASED(registers{}, "fased0", "_0", &cycler{}, plusargs.New(nil), create)
	err := m.Init()
	test.ExpectSuccess(t, curated.Is(err, fased.StatsError))
	test.ExpectSuccess(t, f.closed)
}

func TestProfile(t *testing.T) {
	regs := registers{}
	c := &cycler{}
	f := &file{}
	create := func(name string) (io.WriteCloser, error) {
		return f, nil
	}

	m := fased.NewFASED(regs, "fased0", "_0", c, plusargs.New(nil), create)
	test.DemandSuccess(t, m.Init())

	m.Profile()

	c.cycle = 1000
	regs["fased0"+softfpga.RegReads] = 3
	regs["fased0"+softfpga.RegWrites] = 2
	regs["fased0"+softfpga.RegReadBytes] = 192
	regs["fased0"+softfpga.RegWriteBytes] = 128
	m.Profile()

	c.cycle = 1500
	m.Finish()

	lines := strings.Split(strings.TrimSpace(f.String()), "\n")
	test.DemandEquality(t, len(lines), 4)
	test.ExpectEquality(t, lines[0], strings.Join(fased.Header, ","))
	test.ExpectEquality(t, lines[1], "0,0,0,0,0")
	test.ExpectEquality(t, lines[2], "1000,3,2,192,128")
	test.ExpectEquality(t, lines[3], "1500,3,2,192,128")
}
