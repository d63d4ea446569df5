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

// Package uart implements a bridge driver for a target uart. Bytes
// transmitted by the target are written to an io.Writer (usually the
// terminal) and bytes read from an io.Reader (usually stdin) are supplied to
// the target's receive queue as space becomes available.
//
// The +uart-raw plusarg puts an interactive input into cbreak mode for the
// duration of the simulation, so that key presses reach the target without
// waiting for the return key. The terminal is restored by Finish().
//
// The uart never asks for the simulation to end and never fails.
package uart
