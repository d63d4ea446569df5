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

package performance

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"strings"

	"github.com/fsimhost/fsimhost/curated"
)

// Sentinel error patterns returned by this package.
const (
	ProfilingError = "performance: profiling: %v"
)

// Profile specifies which profiling (if any) should be applied.
type Profile int

// List of valid Profile values. Values can be combined.
const (
	ProfileNone  Profile = 0b0000
	ProfileCPU   Profile = 0b0001
	ProfileMem   Profile = 0b0010
	ProfileTrace Profile = 0b0100
)

// ParseProfile parses a string of comma separated profile names (cpu, mem,
// trace) into a Profile value. The string "none" or an empty string is
// ProfileNone.
func ParseProfile(s string) (Profile, error) {
	p := ProfileNone
	for _, f := range strings.Split(strings.ToLower(s), ",") {
		switch strings.TrimSpace(f) {
		case "", "none":
		case "cpu":
			p |= ProfileCPU
		case "mem":
			p |= ProfileMem
		case "trace":
			p |= ProfileTrace
		default:
			return ProfileNone, curated.Errorf(ProfilingError, fmt.Sprintf("unknown profile type (%s)", f))
		}
	}
	return p, nil
}

// RunProfiler runs the supplied function with the requested profiling
// enabled. Profile files are prefixed with filenameHeader.
func RunProfiler(profile Profile, filenameHeader string, run func() error) (rerr error) {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(fmt.Sprintf("%s_cpu.profile", filenameHeader))
		if err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				rerr = curated.Errorf(ProfilingError, err)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer pprof.StopCPUProfile()
	}

	if profile&ProfileTrace == ProfileTrace {
		f, err := os.Create(fmt.Sprintf("%s_trace.profile", filenameHeader))
		if err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				rerr = curated.Errorf(ProfilingError, err)
			}
		}()

		if err := trace.Start(f); err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer trace.Stop()
	}

	if err := run(); err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(fmt.Sprintf("%s_mem.profile", filenameHeader))
		if err != nil {
			return curated.Errorf(ProfilingError, err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				rerr = curated.Errorf(ProfilingError, err)
			}
		}()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return curated.Errorf(ProfilingError, err)
		}
	}

	return nil
}
