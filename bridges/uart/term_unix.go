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

//go:build linux || darwin || freebsd || netbsd || openbsd

package uart

import (
	"io"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/fsimhost/fsimhost/curated"
)

// cbreak puts the input into cbreak mode and returns a function that will
// restore the input to its original mode.
func cbreak(in io.Reader) (func(), error) {
	f, ok := in.(*os.File)
	if !ok {
		return nil, curated.Errorf(NotTerminal, "not a file")
	}

	var canAttr unix.Termios
	if err := termios.Tcgetattr(f.Fd(), &canAttr); err != nil {
		return nil, curated.Errorf(NotTerminal, err)
	}

	cbreakAttr := canAttr
	termios.Cfmakecbreak(&cbreakAttr)
	if err := termios.Tcsetattr(f.Fd(), termios.TCIFLUSH, &cbreakAttr); err != nil {
		return nil, curated.Errorf(NotTerminal, err)
	}

	return func() {
		_ = termios.Tcsetattr(f.Fd(), termios.TCIFLUSH, &canAttr)
	}, nil
}
