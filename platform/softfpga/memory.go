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

package softfpga

import (
	"github.com/fsimhost/fsimhost/curated"
)

// Sentinel error patterns returned by the Memory type.
const (
	MemoryBusy   = "softfpga: memory channel %s: busy"
	MemoryBounds = "softfpga: memory channel %s: access of %d bytes at %#x is out of bounds"
)

// Register name suffixes used by a memory channel. The full register name is
// the name of the channel followed by the suffix. For example, a memory
// channel called "fased0" will count read requests in the register
// "fased0.reads".
//
// The latency registers are written by the host. The counter registers are
// written by the memory channel.
const (
	RegReadLatency  = ".readLatency"
	RegWriteLatency = ".writeLatency"
	RegReads        = ".reads"
	RegWrites       = ".writes"
	RegReadBytes    = ".readBytes"
	RegWriteBytes   = ".writeBytes"
)

// Memory is a channel from the target onto the shared DRAM. Every access
// occupies the channel for the number of target cycles given in the channel's
// latency registers.
type Memory struct {
	name  string
	ports *Ports
	busy  uint64
}

func (m *Memory) String() string {
	return m.name
}

// Size returns the size of the DRAM visible through the channel.
func (m *Memory) Size() int {
	return len(m.ports.dram)
}

// Busy returns true if the previous access has not yet completed.
func (m *Memory) Busy() bool {
	return m.busy > 0
}

func (m *Memory) check(addr uint64, n int) error {
	if m.busy > 0 {
		return curated.Errorf(MemoryBusy, m.name)
	}
	if addr+uint64(n) > uint64(len(m.ports.dram)) || addr+uint64(n) < addr {
		return curated.Errorf(MemoryBounds, m.name, n, addr)
	}
	return nil
}

func (m *Memory) count(reg string, v uint64) {
	m.ports.Write(m.name+reg, m.ports.Read(m.name+reg)+v)
}

// Read n bytes from DRAM.
func (m *Memory) Read(addr uint64, n int) ([]byte, error) {
	if err := m.check(addr, n); err != nil {
		return nil, err
	}
	d := make([]byte, n)
	copy(d, m.ports.dram[addr:])
	m.count(RegReads, 1)
	m.count(RegReadBytes, uint64(n))
	m.busy = m.ports.Read(m.name + RegReadLatency)
	return d, nil
}

// Write data to DRAM.
func (m *Memory) Write(addr uint64, data []byte) error {
	if err := m.check(addr, len(data)); err != nil {
		return err
	}
	copy(m.ports.dram[addr:], data)
	m.count(RegWrites, 1)
	m.count(RegWriteBytes, uint64(len(data)))
	m.busy = m.ports.Read(m.name + RegWriteLatency)
	return nil
}

func (m *Memory) advance() {
	if m.busy > 0 {
		m.busy--
	}
}
