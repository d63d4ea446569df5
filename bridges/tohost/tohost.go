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

// Package tohost implements a bridge driver for the HTIF style "tohost"
// register. The target ends the simulation by writing a value with the least
// significant bit set. The remaining bits are the exit code.
//
// Values with the least significant bit clear are requests for host services
// that this driver does not provide. They are logged and acknowledged (the
// register is cleared) so that the target does not wait for them forever.
package tohost

import (
	"github.com/fsimhost/fsimhost/logger"
)

// Registers is the register interface of the target.
type Registers interface {
	Read(name string) uint64
	Write(name string, value uint64)
}

// ToHost implements the bridge.Driver interface.
type ToHost struct {
	regs Registers
	reg  string

	done     bool
	exitCode int
}

// NewToHost is the preferred method of initialisation for the ToHost type.
// The reg argument is the name of the register to poll.
func NewToHost(regs Registers, reg string) *ToHost {
	return &ToHost{
		regs: regs,
		reg:  reg,
	}
}

func (h *ToHost) String() string {
	return h.reg
}

// Init implements the bridge.Driver interface.
func (h *ToHost) Init() error {
	h.regs.Write(h.reg, 0)
	return nil
}

// Tick implements the bridge.Driver interface.
func (h *ToHost) Tick() {
	if h.done {
		return
	}

	v := h.regs.Read(h.reg)
	if v == 0 {
		return
	}
	h.regs.Write(h.reg, 0)

	if v&1 == 0 {
		logger.Logf(logger.Allow, h.reg, "unsupported request (%#x)", v)
		return
	}

	h.done = true
	h.exitCode = int(v >> 1)
	logger.Logf(logger.Allow, h.reg, "exit code %d", h.exitCode)
}

// Terminate implements the bridge.Driver interface.
func (h *ToHost) Terminate() bool {
	return h.done
}

// ExitCode implements the bridge.Driver interface.
func (h *ToHost) ExitCode() int {
	return h.exitCode
}

// Finish implements the bridge.Driver interface.
func (h *ToHost) Finish() {
}
