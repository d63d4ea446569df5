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

// Package platform defines the interface to the simulation host platform. The
// platform is the thing that actually advances the target design: an FPGA
// behind a PCIe link, a metasimulator, or the in-process software platform
// found in the softfpga sub-package.
//
// The orchestrator never touches the target directly. It asks the platform to
// step the target by some number of cycles and then polls the platform until
// the step has completed, servicing bridge drivers between polls.
package platform

import "time"

// Platform is implemented by every simulation host platform.
type Platform interface {
	// MaxStepSize is the largest number of target cycles that can be
	// requested with a single call to Step().
	MaxStepSize() uint64

	// Step requests that the target advances by n target cycles. The
	// function returns immediately. Completion of the step is checked with
	// Done().
	Step(n uint64) error

	// Done returns true when the most recently requested step has completed.
	// The target may not progress at all unless Done() is called repeatedly.
	Done() bool

	// TargetReset holds the target in reset for the specified number of
	// target cycles. The function returns once the reset sequence has
	// completed.
	TargetReset(cycles uint64) error

	// HostCycle returns the number of host cycles that have elapsed since
	// the platform was created.
	HostCycle() uint64

	// TargetCycle returns the number of target cycles that have elapsed
	// since the end of the reset sequence.
	TargetCycle() uint64

	// ZeroOutDRAM clears the target's memory.
	ZeroOutDRAM() error
}

// Clock is the source of wall-clock time used when measuring simulation
// speed.
type Clock interface {
	Now() time.Time
}

// SystemClock is an implementation of the Clock interface using the time
// package.
type SystemClock struct{}

// Now implements the Clock interface.
func (SystemClock) Now() time.Time {
	return time.Now()
}
