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

package orchestrator_test

import (
	"errors"
	"fmt"
	"time"
)

// recorder is a log of lifecycle events, shared by all fakes in a test
type recorder struct {
	events []string
}

func (r *recorder) record(event string, name string) {
	r.events = append(r.events, fmt.Sprintf("%s:%s", event, name))
}

// filter returns the recorded events that begin with the prefix
func (r *recorder) filter(prefix string) []string {
	var f []string
	for _, e := range r.events {
		if len(e) >= len(prefix) && e[:len(prefix)] == prefix {
			f = append(f, e)
		}
	}
	return f
}

// fakePlatform advances by at most batch target cycles on every call to
// Done(). two host cycles pass for every target cycle
type fakePlatform struct {
	maxStep uint64
	batch   uint64

	hcycle    uint64
	tcycle    uint64
	remaining uint64

	steps  []uint64
	resets []uint64
	zeroed bool

	failStep  bool
	failReset bool

	// the target makes no progress. Done() never returns true
	stalled bool
}

func newFakePlatform(maxStep uint64, batch uint64) *fakePlatform {
	return &fakePlatform{
		maxStep: maxStep,
		batch:   batch,
	}
}

func (p *fakePlatform) MaxStepSize() uint64 {
	return p.maxStep
}

func (p *fakePlatform) Step(n uint64) error {
	if p.failStep {
		return errors.New("link down")
	}
	if p.remaining > 0 {
		return errors.New("busy")
	}
	if n > p.maxStep {
		return errors.New("step too large")
	}
	p.steps = append(p.steps, n)
	p.remaining = n
	return nil
}

func (p *fakePlatform) Done() bool {
	if p.stalled {
		p.hcycle++
		return false
	}
	if p.remaining == 0 {
		return true
	}
	adv := min(p.batch, p.remaining)
	p.tcycle += adv
	p.hcycle += adv * 2
	p.remaining -= adv
	return false
}

func (p *fakePlatform) TargetReset(cycles uint64) error {
	if p.failReset {
		return errors.New("reset failed")
	}
	p.resets = append(p.resets, cycles)
	p.tcycle = 0
	return nil
}

func (p *fakePlatform) HostCycle() uint64 {
	return p.hcycle
}

func (p *fakePlatform) TargetCycle() uint64 {
	return p.tcycle
}

func (p *fakePlatform) ZeroOutDRAM() error {
	p.zeroed = true
	return nil
}

// fakeDriver terminates once the target reaches terminateAt cycles. a
// terminateAt value of zero means the driver never terminates. the exit code
// is only reported once the driver has terminated
type fakeDriver struct {
	name string
	rec  *recorder
	plt  *fakePlatform

	terminateAt uint64
	code        int

	// called on every tick, if not nil
	onTick func(d *fakeDriver)

	ticks      int
	terminated bool
	initErr    error
}

func (d *fakeDriver) String() string {
	return d.name
}

func (d *fakeDriver) Init() error {
	d.rec.record("init", d.name)
	return d.initErr
}

func (d *fakeDriver) Tick() {
	d.rec.record("tick", d.name)
	d.ticks++
	if d.terminateAt > 0 && d.plt.tcycle >= d.terminateAt {
		d.terminated = true
	}
	if d.onTick != nil {
		d.onTick(d)
	}
}

func (d *fakeDriver) Terminate() bool {
	return d.terminated
}

func (d *fakeDriver) ExitCode() int {
	if d.terminated {
		return d.code
	}
	return 0
}

func (d *fakeDriver) Finish() {
	d.rec.record("finish", d.name)
}

// fakeModel records the target cycle of every call to Profile()
type fakeModel struct {
	name string
	rec  *recorder
	plt  *fakePlatform

	profiles []uint64
	initErr  error
}

func (m *fakeModel) String() string {
	return m.name
}

func (m *fakeModel) Init() error {
	m.rec.record("init", m.name)
	return m.initErr
}

func (m *fakeModel) Profile() {
	m.profiles = append(m.profiles, m.plt.tcycle)
}

func (m *fakeModel) Finish() {
	m.rec.record("finish", m.name)
}

// fakeClock advances by a fixed amount every time it is read
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}
