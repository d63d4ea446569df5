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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas with flag.FlagSet you call Parse() with the array of strings as the
// only argument, with modalflag you first call NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// A mode is a special command line argument that, when specified, puts the
// program into a different mode of operation. Modes are added with the
// AddSubModes() function and are compared case insensitively. The first
// sub-mode in the list is the default.
//
//	md.AddSubModes("RUN", "VERSION")
//	p, err := md.Parse()
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		manifest := md.AddString("manifest", "", "target manifest")
//		p, err = md.Parse()
//		...
//	}
//
// Plusargs
//
// Arguments beginning with a plus sign (eg. +max-cycles=1000) are never
// interpreted by modalflag. They are removed from the argument list by
// NewArgs() and are available, in the order they were given, through the
// PlusArgs() function. This means plusargs can appear anywhere on the command
// line, before or after flags and modes, without confusing the flag parser.
package modalflag
