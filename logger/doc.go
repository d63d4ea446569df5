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

// Package logger is the central log for the application. There is only one
// log, accessed through the package level functions Log() and Logf().
//
// Log entries are made up of a tag and a detail string. The tag should be a
// short name for the component making the entry, for example "orchestrator"
// or "uart0". Identical consecutive entries are collapsed into one entry with
// a repeat count.
//
// Every log request is made with a Permission. The Allow value always
// permits logging. Other implementations of the Permission interface can be
// used to suppress logging when it isn't wanted, for example in test
// harnesses.
//
// The log does not print anything unless SetEcho() has been called with a
// non-nil io.Writer, in which case new entries are echoed as they are made.
package logger
