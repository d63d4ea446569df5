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

// Package manifest is the configuration layer of the host program. A manifest
// is a YAML document describing the platform, the target design and the
// bridge drivers and FPGA models attached to it.
//
// Drivers and models are listed in the order they should be registered with
// the orchestrator. That order is significant: it decides the order of
// initialisation, ticking and finalisation, and which driver's exit code
// takes precedence.
//
// An example manifest, which is also the manifest used when no other is
// specified, can be found in default.yaml.
package manifest
