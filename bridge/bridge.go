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

package bridge

import "fmt"

// Driver is implemented by every bridge driver.
//
// All functions are called from the orchestrator's control loop and must run
// to completion without blocking for an unbounded amount of time.
type Driver interface {
	// Init is called exactly once, before the control loop begins. The
	// target's reset will not yet have been asserted.
	Init() error

	// Tick performs one bounded unit of work. Queued data from the target is
	// drained and data for the target is supplied, if there is room for it.
	//
	// Tick is called repeatedly and must return promptly even if there is
	// nothing to do. A call to Tick() when there is no new data should have
	// no observable effect.
	Tick()

	// Terminate returns true if the driver believes the simulation should
	// end. It must not have any side effects.
	Terminate() bool

	// ExitCode returns zero while the simulation is nominal or an application
	// defined non-zero value once the driver has detected a failure.
	ExitCode() int

	// Finish is called exactly once after the control loop ends, regardless
	// of how the simulation ended.
	Finish()
}

// Model is implemented by every FPGA model.
type Model interface {
	// Init is called exactly once, before the target's reset is asserted.
	Init() error

	// Profile updates and outputs performance statistics. It is only ever
	// called by the periodic task mechanism.
	Profile()

	// Finish is called exactly once after the control loop ends.
	Finish()
}

// Name returns a label for a driver or model suitable for logging. Components
// that implement the fmt.Stringer interface are labelled with the result of
// String(). Other components are labelled with their type.
func Name(c any) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}
