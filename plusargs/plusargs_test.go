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

package plusargs_test

import (
	"testing"

	"github.com/fsimhost/fsimhost/curated"
	"github.com/fsimhost/fsimhost/plusargs"
	"github.com/fsimhost/fsimhost/test"
)

func TestLookup(t *testing.T) {
	a := plusargs.New([]string{"+max-cycles=1000", "-log", "manifest.yaml", "+zero-out-dram"})
	test.ExpectEquality(t, len(a.List()), 2)

	v, ok := a.Lookup("max-cycles")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, "1000")

	v, ok = a.Lookup("zero-out-dram")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, "")

	// a name that is a prefix of another plusarg is not a match
	_, ok = a.Lookup("max")
	test.ExpectFailure(t, ok)

	_, ok = a.Lookup("profile-interval")
	test.ExpectFailure(t, ok)
}

func TestLastOccurrenceWins(t *testing.T) {
	a := plusargs.New([]string{"+max-cycles=10", "+max-cycles=20"})
	n, err := a.Int64("max-cycles", -1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, int64(20))
}

func TestInt64(t *testing.T) {
	a := plusargs.New([]string{"+a=0x10", "+b=-1", "+c=ten"})

	n, err := a.Int64("a", 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, int64(16))

	n, err = a.Int64("b", 0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, int64(-1))

	n, err = a.Int64("missing", 42)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, int64(42))

	n, err = a.Int64("c", 7)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, plusargs.BadValue))
	test.ExpectEquality(t, n, int64(7))
}

func TestBool(t *testing.T) {
	a := plusargs.New([]string{"+uart-raw", "+trace=0", "+verbose=true"})
	test.ExpectSuccess(t, a.Bool("uart-raw"))
	test.ExpectFailure(t, a.Bool("trace"))
	test.ExpectSuccess(t, a.Bool("verbose"))
	test.ExpectFailure(t, a.Bool("missing"))
}

func TestStr(t *testing.T) {
	a := plusargs.New([]string{"+stats=mem.csv"})
	test.ExpectEquality(t, a.Str("stats", "default.csv"), "mem.csv")
	test.ExpectEquality(t, a.Str("other", "default.csv"), "default.csv")
}
