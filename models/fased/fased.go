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

// Package fased implements the host side of a memory timing model. The model
// itself lives in the target platform. The host configures the model's
// latencies before the target comes out of reset and periodically samples the
// model's counters, writing them to a CSV file.
//
// Configuration comes from plusargs, suffixed with the model's instance
// suffix. For example, the read latency of the model with suffix "_0" is set
// with:
//
//	+mm_readLatency_0=30
//
// The unsuffixed form applies to every instance that does not have a suffixed
// value of its own.
package fased

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/fsimhost/fsimhost/curated"
	"github.com/fsimhost/fsimhost/logger"
	"github.com/fsimhost/fsimhost/platform/softfpga"
	"github.com/fsimhost/fsimhost/plusargs"
)

// Sentinel error patterns returned by this package.
const (
	ConfigError = "fased: %s: %v"
	StatsError  = "fased: %s: stats file: %v"
)

// Registers is the register interface of the target.
type Registers interface {
	Read(name string) uint64
	Write(name string, value uint64)
}

// Cycler returns the current target cycle.
type Cycler interface {
	TargetCycle() uint64
}

// CreateFunc opens the named file for writing.
type CreateFunc func(name string) (io.WriteCloser, error)

// Header is the first row of the stats file.
var Header = []string{"cycle", "reads", "writes", "readBytes", "writeBytes"}

// FASED implements the bridge.Model interface.
type FASED struct {
	regs    Registers
	channel string
	suffix  string
	cycler  Cycler
	args    plusargs.Args

	filename string
	create   CreateFunc
	file     io.WriteCloser
	csv      *csv.Writer

	samples int
}

// NewFASED is the preferred method of initialisation for the FASED type. The
// channel argument is the name of the memory channel in the target. The stats
// file is named after the suffix.
//
// If create is nil then the stats file is created with os.Create().
func NewFASED(regs Registers, channel string, suffix string, cycler Cycler, args plusargs.Args, create CreateFunc) *FASED {
	if create == nil {
		create = func(name string) (io.WriteCloser, error) {
			return os.Create(name)
		}
	}
	return &FASED{
		regs:     regs,
		channel:  channel,
		suffix:   suffix,
		cycler:   cycler,
		args:     args,
		filename: fmt.Sprintf("memory_stats%s.csv", suffix),
		create:   create,
	}
}

func (m *FASED) String() string {
	return m.channel
}

// Filename returns the name of the stats file.
func (m *FASED) Filename() string {
	return m.filename
}

func (m *FASED) latency(key string) (uint64, error) {
	name := key + m.suffix
	if !m.args.Has(name) {
		name = key
	}
	v, err := m.args.Int64(name, 0)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, curated.Errorf(plusargs.BadValue, name, "negative latency")
	}
	return uint64(v), nil
}

// Init implements the bridge.Model interface.
func (m *FASED) Init() error {
	rd, err := m.latency("mm_readLatency")
	if err != nil {
		return curated.Errorf(ConfigError, m.channel, err)
	}
	wr, err := m.latency("mm_writeLatency")
	if err != nil {
		return curated.Errorf(ConfigError, m.channel, err)
	}

	m.regs.Write(m.channel+softfpga.RegReadLatency, rd)
	m.regs.Write(m.channel+softfpga.RegWriteLatency, wr)
	logger.Logf(logger.Allow, m.channel, "read latency %d, write latency %d", rd, wr)

	m.file, err = m.create(m.filename)
	if err != nil {
		return curated.Errorf(StatsError, m.channel, err)
	}
	m.csv = csv.NewWriter(m.file)
	m.csv.Write(Header)
	m.csv.Flush()
	if err := m.csv.Error(); err != nil {
		// Finish() is not called for a model that fails to initialise
		m.file.Close()
		m.file = nil
		m.csv = nil
		return curated.Errorf(StatsError, m.channel, err)
	}

	return nil
}

func (m *FASED) counter(reg string) uint64 {
	return m.regs.Read(m.channel + reg)
}

func (m *FASED) sample() {
	if m.csv == nil {
		return
	}

	row := []string{
		strconv.FormatUint(m.cycler.TargetCycle(), 10),
		strconv.FormatUint(m.counter(softfpga.RegReads), 10),
		strconv.FormatUint(m.counter(softfpga.RegWrites), 10),
		strconv.FormatUint(m.counter(softfpga.RegReadBytes), 10),
		strconv.FormatUint(m.counter(softfpga.RegWriteBytes), 10),
	}

	m.csv.Write(row)
	m.csv.Flush()
	if err := m.csv.Error(); err != nil {
		logger.Log(logger.Allow, m.channel, curated.Errorf(StatsError, m.channel, err))
		return
	}
	m.samples++
}

// Profile implements the bridge.Model interface.
func (m *FASED) Profile() {
	m.sample()
}

// Finish implements the bridge.Model interface. A final row of counters is
// written to the stats file before it is closed.
func (m *FASED) Finish() {
	m.sample()

	if m.file != nil {
		if err := m.file.Close(); err != nil {
			logger.Log(logger.Allow, m.channel, curated.Errorf(StatsError, m.channel, err))
		}
		m.file = nil
		m.csv = nil
	}

	logger.Logf(logger.Allow, m.channel, "%d samples written to %s. %s read, %s written", m.samples, m.filename,
		humanize.Bytes(m.counter(softfpga.RegReadBytes)),
		humanize.Bytes(m.counter(softfpga.RegWriteBytes)))
}
