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

package uart

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fsimhost/fsimhost/logger"
	"github.com/fsimhost/fsimhost/plusargs"
)

// Sentinel error patterns returned by this package.
const (
	NotTerminal = "uart: input is not a terminal: %v"
)

// the number of input bytes that can be read ahead of the target
const inputBuffer = 256

// TX is the target's transmit queue, from the driver's point of view.
type TX interface {
	Pop() (byte, bool)
}

// RX is the target's receive queue, from the driver's point of view.
type RX interface {
	Push(byte) bool
}

// UART implements the bridge.Driver interface.
type UART struct {
	id  int
	tx  TX
	rx  RX
	out io.Writer
	in  io.Reader

	raw     bool
	restore func()

	// bytes read from the input by the reader goroutine. set to nil once
	// the input has been exhausted
	input chan byte

	// closed by Finish(). the reader goroutine stops once it sees this
	done chan bool

	// a byte taken from the input channel that the receive queue had no
	// room for
	held    byte
	holding bool

	// scratch buffer for transmitted bytes
	buf []byte

	// totals for the log
	sent     uint64
	received uint64
}

// NewUART is the preferred method of initialisation for the UART type. The
// in argument can be nil, in which case the target will never receive any
// bytes.
func NewUART(id int, tx TX, rx RX, out io.Writer, in io.Reader, args plusargs.Args) *UART {
	return &UART{
		id:  id,
		tx:  tx,
		rx:  rx,
		out: out,
		in:  in,
		raw: args.Bool("uart-raw"),
		buf: make([]byte, 0, inputBuffer),
	}
}

func (u *UART) String() string {
	return fmt.Sprintf("uart%d", u.id)
}

// Init implements the bridge.Driver interface.
func (u *UART) Init() error {
	if u.in == nil {
		return nil
	}

	if u.raw {
		var err error
		u.restore, err = cbreak(u.in)
		if err != nil {
			// not being able to change the terminal mode is not a reason to
			// stop the simulation
			logger.Log(logger.Allow, u.String(), err)
		}
	}

	u.input = make(chan byte, inputBuffer)
	u.done = make(chan bool)

	// the reader stops at the first byte read after Finish(). a reader
	// blocked on an input with no more data ends with the process
	go func(r *bufio.Reader, input chan byte, done chan bool) {
		defer close(input)
		for {
			b, err := r.ReadByte()
			if err != nil {
				if err != io.EOF {
					logger.Log(logger.Allow, u.String(), err)
				}
				return
			}
			select {
			case <-done:
				return
			default:
			}
			select {
			case input <- b:
			case <-done:
				return
			}
		}
	}(bufio.NewReader(u.in), u.input, u.done)

	return nil
}

// Tick implements the bridge.Driver interface.
func (u *UART) Tick() {
	u.buf = u.buf[:0]
	for {
		b, ok := u.tx.Pop()
		if !ok {
			break
		}
		u.buf = append(u.buf, b)
	}
	if len(u.buf) > 0 {
		u.sent += uint64(len(u.buf))
		if _, err := u.out.Write(u.buf); err != nil {
			logger.Log(logger.Allow, u.String(), err)
		}
	}

	for {
		if !u.holding {
			if u.input == nil {
				return
			}
			select {
			case b, ok := <-u.input:
				if !ok {
					u.input = nil
					return
				}
				u.held = b
				u.holding = true
			default:
				return
			}
		}

		if !u.rx.Push(u.held) {
			return
		}
		u.holding = false
		u.received++
	}
}

// Terminate implements the bridge.Driver interface.
func (u *UART) Terminate() bool {
	return false
}

// ExitCode implements the bridge.Driver interface.
func (u *UART) ExitCode() int {
	return 0
}

// Finish implements the bridge.Driver interface.
func (u *UART) Finish() {
	if u.done != nil {
		close(u.done)
		u.done = nil
	}
	if u.restore != nil {
		u.restore()
		u.restore = nil
	}
	logger.Logf(logger.Allow, u.String(), "%s sent, %s received", humanize.Bytes(u.sent), humanize.Bytes(u.received))
}
