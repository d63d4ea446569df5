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

// Package plusargs interprets the "plusargs" given to the host program on the
// command line. A plusarg is an argument with a leading plus sign, either in
// the form +name=value or, for boolean options, simply +name.
//
// Plusargs are shared by every component in the simulation. The orchestrator
// reads the arguments that affect the control loop and every bridge driver
// and FPGA model reads whatever arguments it recognises. Arguments that no
// component recognises are ignored.
//
// When a plusarg is given more than once, the last occurrence wins.
package plusargs

import (
	"strconv"
	"strings"

	"github.com/fsimhost/fsimhost/curated"
)

// Sentinel error patterns returned by this package.
const (
	BadValue = "plusargs: +%s: %v"
)

const prefix = "+"

// Args is an immutable list of plusargs.
type Args struct {
	list []string
}

// New creates a list of plusargs from a list of command line arguments.
// Arguments that do not begin with a plus sign are dropped.
func New(args []string) Args {
	a := Args{list: make([]string, 0, len(args))}
	for _, s := range args {
		if strings.HasPrefix(s, prefix) {
			a.list = append(a.list, s)
		}
	}
	return a
}

// List returns a copy of the plusargs in the order they were given.
func (a Args) List() []string {
	c := make([]string, len(a.list))
	copy(c, a.list)
	return c
}

func (a Args) String() string {
	return strings.Join(a.list, " ")
}

// Lookup returns the value of the named plusarg and whether it was present at
// all. A plusarg given without a value returns the empty string.
func (a Args) Lookup(name string) (string, bool) {
	var value string
	var found bool

	for _, s := range a.list {
		s = strings.TrimPrefix(s, prefix)
		if s == name {
			value = ""
			found = true
		} else if v, ok := strings.CutPrefix(s, name+"="); ok {
			value = v
			found = true
		}
	}

	return value, found
}

// Has returns true if the named plusarg is present, with or without a value.
func (a Args) Has(name string) bool {
	_, ok := a.Lookup(name)
	return ok
}

// Bool returns true if the named plusarg is present and its value is not
// one of "0", "false" or "off".
func (a Args) Bool(name string) bool {
	v, ok := a.Lookup(name)
	if !ok {
		return false
	}
	switch strings.ToLower(v) {
	case "0", "false", "off":
		return false
	}
	return true
}

// Str returns the value of the named plusarg or the default value if the
// plusarg is not present.
func (a Args) Str(name string, def string) string {
	if v, ok := a.Lookup(name); ok {
		return v
	}
	return def
}

// Int64 returns the value of the named plusarg as an integer, or the default
// value if the plusarg is not present. Values can be specified in decimal,
// hex (0x), octal (0o) or binary (0b).
func (a Args) Int64(name string, def int64) (int64, error) {
	v, ok := a.Lookup(name)
	if !ok {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 0, 64)
	if err != nil {
		return def, curated.Errorf(BadValue, name, err)
	}
	return n, nil
}
