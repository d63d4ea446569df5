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
	"sort"

	"github.com/fsimhost/fsimhost/curated"
)

// Sentinel error patterns returned by the Ports type.
const (
	DuplicatePort = "softfpga: duplicate port name (%s)"
	NoSuchPort    = "softfpga: no such port (%s)"
)

// Direction of a queue, relative to the target.
type Direction int

// List of valid Direction values.
const (
	ToHost Direction = iota
	FromHost
)

func (d Direction) String() string {
	switch d {
	case ToHost:
		return "to host"
	case FromHost:
		return "from host"
	}
	return "unknown direction"
}

// Queue is a bounded byte FIFO between the target and a bridge driver.
type Queue struct {
	name string
	dir  Direction
	data []byte
	head int
	used int
}

func newQueue(name string, capacity int, dir Direction) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{
		name: name,
		dir:  dir,
		data: make([]byte, capacity),
	}
}

func (q *Queue) String() string {
	return q.name
}

// Direction of the queue.
func (q *Queue) Direction() Direction {
	return q.dir
}

// Push a byte onto the end of the queue. Returns false if the queue is full.
func (q *Queue) Push(b byte) bool {
	if q.used == len(q.data) {
		return false
	}
	q.data[(q.head+q.used)%len(q.data)] = b
	q.used++
	return true
}

// Pop a byte from the front of the queue. Returns false if the queue is
// empty.
func (q *Queue) Pop() (byte, bool) {
	if q.used == 0 {
		return 0, false
	}
	b := q.data[q.head]
	q.head = (q.head + 1) % len(q.data)
	q.used--
	return b, true
}

// Len returns the number of bytes in the queue.
func (q *Queue) Len() int {
	return q.used
}

// Space returns the number of bytes that can be pushed before the queue is
// full.
func (q *Queue) Space() int {
	return len(q.data) - q.used
}

// Full returns true if no more bytes can be pushed.
func (q *Queue) Full() bool {
	return q.used == len(q.data)
}

// Ports is the set of communication channels between the target and the host.
// Ports are declared by the target when it is attached to the platform.
type Ports struct {
	queues    map[string]*Queue
	registers map[string]uint64
	memories  map[string]*Memory
	dram      []byte
}

func newPorts(dramSize int) *Ports {
	return &Ports{
		queues:    make(map[string]*Queue),
		registers: make(map[string]uint64),
		memories:  make(map[string]*Memory),
		dram:      make([]byte, dramSize),
	}
}

// AddQueue declares a new queue of the specified capacity.
func (p *Ports) AddQueue(name string, capacity int, dir Direction) (*Queue, error) {
	if _, ok := p.queues[name]; ok {
		return nil, curated.Errorf(DuplicatePort, name)
	}
	q := newQueue(name, capacity, dir)
	p.queues[name] = q
	return q, nil
}

// Queue returns the named queue.
func (p *Ports) Queue(name string) (*Queue, error) {
	q, ok := p.queues[name]
	if !ok {
		return nil, curated.Errorf(NoSuchPort, name)
	}
	return q, nil
}

// Queues returns the names of all declared queues in alphabetical order.
func (p *Ports) Queues() []string {
	n := make([]string, 0, len(p.queues))
	for k := range p.queues {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// blocked returns true if any queue flowing to the host is full.
func (p *Ports) blocked() bool {
	for _, q := range p.queues {
		if q.dir == ToHost && q.Full() {
			return true
		}
	}
	return false
}

// Read returns the value of the named register. Registers that have never
// been written read as zero.
func (p *Ports) Read(name string) uint64 {
	return p.registers[name]
}

// Write a value to the named register.
func (p *Ports) Write(name string, value uint64) {
	p.registers[name] = value
}

// AddMemory declares a new memory channel onto the shared DRAM.
func (p *Ports) AddMemory(name string) (*Memory, error) {
	if _, ok := p.memories[name]; ok {
		return nil, curated.Errorf(DuplicatePort, name)
	}
	m := &Memory{name: name, ports: p}
	p.memories[name] = m
	return m, nil
}

// Memory returns the named memory channel.
func (p *Ports) Memory(name string) (*Memory, error) {
	m, ok := p.memories[name]
	if !ok {
		return nil, curated.Errorf(NoSuchPort, name)
	}
	return m, nil
}

// DRAMSize returns the size of the shared DRAM in bytes.
func (p *Ports) DRAMSize() int {
	return len(p.dram)
}

// advance all time dependent ports by one target cycle
func (p *Ports) advance() {
	for _, m := range p.memories {
		m.advance()
	}
}
