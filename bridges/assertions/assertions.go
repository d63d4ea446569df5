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

// Package assertions implements a bridge driver for assertions synthesized
// into the target. When an assertion fires the target writes the assertion's
// id plus one to the fire register. The driver reports the assertion and its
// message and ends the simulation with a non-zero exit code.
package assertions

import (
	"fmt"
	"io"

	"github.com/fsimhost/fsimhost/logger"
)

// Registers is the register interface of the target.
type Registers interface {
	Read(name string) uint64
	Write(name string, value uint64)
}

// Cycler returns the current target cycle. The platform.Platform interface
// satisfies this interface.
type Cycler interface {
	TargetCycle() uint64
}

// Assertions implements the bridge.Driver interface.
type Assertions struct {
	regs     Registers
	reg      string
	cycler   Cycler
	messages []string
	out      io.Writer

	fired    bool
	id       int
	exitCode int
}

// NewAssertions is the preferred method of initialisation for the Assertions
// type. Messages are indexed by assertion id. Assertions without a message
// are reported without one.
func NewAssertions(regs Registers, reg string, cycler Cycler, messages []string, out io.Writer) *Assertions {
	return &Assertions{
		regs:     regs,
		reg:      reg,
		cycler:   cycler,
		messages: messages,
		out:      out,
	}
}

func (a *Assertions) String() string {
	return "assertions"
}

// Init implements the bridge.Driver interface.
func (a *Assertions) Init() error {
	a.regs.Write(a.reg, 0)
	logger.Logf(logger.Allow, a.String(), "%d assertions", len(a.messages))
	return nil
}

// Tick implements the bridge.Driver interface.
func (a *Assertions) Tick() {
	if a.fired {
		return
	}

	v := a.regs.Read(a.reg)
	if v == 0 {
		return
	}

	a.fired = true
	a.id = int(v - 1)
	a.exitCode = a.id + 1

	msg := "no message"
	if a.id < len(a.messages) {
		msg = a.messages[a.id]
	}
	fmt.Fprintf(a.out, "id %d: %s at cycle %d\n", a.id, msg, a.cycler.TargetCycle())
}

// Fired returns the id of the assertion that fired, if any.
func (a *Assertions) Fired() (int, bool) {
	return a.id, a.fired
}

// Terminate implements the bridge.Driver interface.
func (a *Assertions) Terminate() bool {
	return a.fired
}

// ExitCode implements the bridge.Driver interface.
func (a *Assertions) ExitCode() int {
	return a.exitCode
}

// Finish implements the bridge.Driver interface.
func (a *Assertions) Finish() {
}
