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

// Package softfpga is an in-process implementation of the platform.Platform
// interface. Instead of an FPGA it runs a behavioural model of the target
// design, one target cycle at a time, on the host's CPU.
//
// The target communicates with the host through its Ports: named byte queues,
// named 64-bit registers and memory channels onto a shared DRAM. Bridge
// drivers access the same Ports from the other side.
//
// Queues flowing from the target to the host apply back-pressure. While any
// such queue is full the target is stalled: the target cycle does not
// complete but host cycles continue to accrue. The only way out of a stall is
// for a bridge driver to drain the queue, which is why the orchestrator ticks
// its drivers while it waits for a step to complete.
//
// Progress is only made when Done() is called. Each call advances the target
// by at most Config.Batch cycles, so a long step is completed over many
// calls to Done(), interleaved with driver ticks.
package softfpga
