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

// Package orchestrator is the control program for a simulation. It owns the
// bridge drivers and FPGA models attached to the target and drives the target
// forward, in steps, through the platform.Platform interface.
//
// An Orchestrator is used once. It moves through the following states:
//
//	Constructed -> Initialised -> InReset -> Running -> Stopped -> Finalised
//
// Run() performs the entire sequence. Every model and then every driver is
// initialised in the order it was given to NewOrchestrator(). The target is
// held in reset for fifty target cycles and then the control loop begins:
//
//	repeat until a driver asks to terminate, or the cycle limit is reached:
//		run any maintenance tasks that are due
//		step the target by the largest safe amount
//		until the step is complete, or a driver asks to terminate:
//			tick every driver
//
// When the loop ends a verdict is reached and a report is written to the
// output, after which every model and every driver is finalised. Finalisation
// happens regardless of the verdict.
//
// The orchestrator is single threaded. The only exception is Interrupt(),
// which can be called from any goroutine to end the control loop early.
package orchestrator
