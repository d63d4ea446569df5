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

// Package version describes the build of the host program. In addition to
// the version number and vcs revision it reports the main module and the
// build tags, which determine the optional features (such as statsview)
// compiled into the program.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// The name to use when referring to the application
const ApplicationName = "fsimhost"

// release number. set by the linker for release builds:
//
//	-ldflags "-X github.com/fsimhost/fsimhost/version.number=v1.0.0"
var number string

// Build information for the running program.
type Build struct {
	// main module path. empty when build information is not available
	Module string

	// the release number, or "unreleased" if built from a vcs checkout, or
	// "local" if there is no vcs information at all
	Version string

	// vcs revision, with "+dirty" appended if the working tree had
	// uncommitted changes
	Revision string

	// version of the Go toolchain
	GoVersion string

	// tags given to the go command with -tags
	Tags []string
}

var build Build

func init() {
	build = readBuild(number)
}

func readBuild(number string) Build {
	b := Build{
		Revision: "no revision information",
	}

	var vcs bool
	var modified bool

	info, ok := debug.ReadBuildInfo()
	if ok {
		b.Module = info.Main.Path
		b.GoVersion = info.GoVersion
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				b.Revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			case "-tags":
				for _, t := range strings.Split(s.Value, ",") {
					if t = strings.TrimSpace(t); t != "" {
						b.Tags = append(b.Tags, t)
					}
				}
			}
		}
	}

	if modified {
		b.Revision = fmt.Sprintf("%s+dirty", b.Revision)
	}

	switch {
	case number != "":
		b.Version = number
	case vcs:
		b.Version = "unreleased"
	default:
		b.Version = "local"
	}

	return b
}

// Current returns the build information for the running program.
func Current() Build {
	return build
}

// Release is true if the program was built with a release number.
func (b Build) Release() bool {
	return number != "" && b.Version == number
}

// HasTag returns true if the program was built with the named tag.
func (b Build) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// String returns the one line summary printed by the VERSION mode.
func (b Build) String() string {
	return fmt.Sprintf("%s %s", ApplicationName, b.Version)
}

// Version returns the version string, the revision string and whether this is a
// numbered "release" version.
func Version() (string, string, bool) {
	return build.Version, build.Revision, build.Release()
}
