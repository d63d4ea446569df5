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

// Package bridge defines the two kinds of component that can be attached to a
// simulation: bridge drivers and FPGA models.
//
// A bridge driver services one I/O or instrumentation channel of the target
// (a console, a block device, an assertion checker, etc.) behind a uniform
// polling interface. An FPGA model is an auxiliary timing or behaviour model
// that sits beneath the target, a memory timing model for example. FPGA
// models never take part in deciding when the simulation ends.
//
// Concrete drivers and models are assembled by the configuration layer and
// handed to the orchestrator as ordered lists. The orchestrator never needs to
// know what concrete type it is dealing with.
package bridge
