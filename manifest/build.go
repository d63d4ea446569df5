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

package manifest

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/fsimhost/fsimhost/bridge"
	"github.com/fsimhost/fsimhost/bridges/assertions"
	"github.com/fsimhost/fsimhost/bridges/tohost"
	"github.com/fsimhost/fsimhost/bridges/uart"
	"github.com/fsimhost/fsimhost/curated"
	"github.com/fsimhost/fsimhost/logger"
	"github.com/fsimhost/fsimhost/models/fased"
	"github.com/fsimhost/fsimhost/platform/softfpga"
	"github.com/fsimhost/fsimhost/plusargs"
	"github.com/fsimhost/fsimhost/target"
)

// Sentinel error patterns returned by this package.
const (
	UnknownType  = "manifest: unknown %s type (%s)"
	MissingField = "manifest: %s requires a %s field"
	Undrained    = "manifest: no driver for the %s queue"
)

// Env is the host environment made available to drivers and models when a
// system is built.
type Env struct {
	Args plusargs.Args

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// creates output files for drivers and models. if nil then os.Create()
	// is used
	Create func(name string) (io.WriteCloser, error)
}

func (env Env) create(name string) (io.WriteCloser, error) {
	if env.Create == nil {
		return os.Create(name)
	}
	return env.Create(name)
}

// System is everything needed to construct an orchestrator.
type System struct {
	Platform *softfpga.SoftFPGA
	Target   *target.Script
	Drivers  []bridge.Driver
	Models   []bridge.Model

	closers []io.Closer

	// target to host queues that have a driver
	drained map[string]bool
}

// Close any files opened when the system was built. Should be called after
// the simulation has finished.
func (sys *System) Close() error {
	var first error
	for _, c := range sys.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	sys.closers = nil
	return first
}

// Build the system described by the manifest.
func (m *Manifest) Build(env Env) (*System, error) {
	sys := &System{
		drained: make(map[string]bool),
	}

	var err error

	sys.Target, err = target.NewScript(m.Target)
	if err != nil {
		return nil, errors.Wrap(err, "manifest: target")
	}

	sys.Platform, err = softfpga.NewSoftFPGA(m.Platform, sys.Target)
	if err != nil {
		return nil, errors.Wrap(err, "manifest: platform")
	}

	for i, c := range m.Drivers {
		d, err := sys.driver(c, env)
		if err != nil {
			sys.Close()
			return nil, errors.Wrapf(err, "manifest: driver %d", i)
		}
		sys.Drivers = append(sys.Drivers, d)
	}

	// a target to host queue with nothing emptying it will eventually stall
	// the target forever
	ports := sys.Platform.Ports()
	for _, name := range ports.Queues() {
		q, err := ports.Queue(name)
		if err != nil {
			sys.Close()
			return nil, err
		}
		if q.Direction() == softfpga.ToHost && !sys.drained[name] {
			sys.Close()
			return nil, curated.Errorf(Undrained, name)
		}
	}

	for i, c := range m.Models {
		md, err := sys.model(c, env)
		if err != nil {
			sys.Close()
			return nil, errors.Wrapf(err, "manifest: model %d", i)
		}
		sys.Models = append(sys.Models, md)
	}

	logger.Logf(logger.Allow, "manifest", "%d drivers, %d models", len(sys.Drivers), len(sys.Models))

	return sys, nil
}

func (sys *System) output(name string, env Env) (io.Writer, error) {
	switch name {
	case "", "stdout":
		return env.Stdout, nil
	case "stderr":
		return env.Stderr, nil
	}
	f, err := env.create(name)
	if err != nil {
		return nil, err
	}
	sys.closers = append(sys.closers, f)
	return f, nil
}

func (sys *System) driver(c Component, env Env) (bridge.Driver, error) {
	ports := sys.Platform.Ports()

	switch c.Type {
	case "uart":
		tx, err := ports.Queue(fmt.Sprintf("uart%d.tx", c.ID))
		if err != nil {
			return nil, err
		}
		rx, err := ports.Queue(fmt.Sprintf("uart%d.rx", c.ID))
		if err != nil {
			return nil, err
		}

		out, err := sys.output(c.Output, env)
		if err != nil {
			return nil, err
		}

		var in io.Reader
		switch c.Input {
		case "", "none":
		case "stdin":
			in = env.Stdin
		default:
			return nil, curated.Errorf(UnknownType, "uart input", c.Input)
		}

		sys.drained[tx.String()] = true

		return uart.NewUART(c.ID, tx, rx, out, in, env.Args), nil

	case "tohost":
		if c.Register == "" {
			return nil, curated.Errorf(MissingField, c.Type, "register")
		}
		return tohost.NewToHost(ports, c.Register), nil

	case "assertions":
		if c.Register == "" {
			return nil, curated.Errorf(MissingField, c.Type, "register")
		}
		return assertions.NewAssertions(ports, c.Register, sys.Platform, c.Messages, env.Stderr), nil
	}

	return nil, curated.Errorf(UnknownType, "driver", c.Type)
}

func (sys *System) model(c Component, env Env) (bridge.Model, error) {
	ports := sys.Platform.Ports()

	switch c.Type {
	case "fased":
		if c.Channel == "" {
			return nil, curated.Errorf(MissingField, c.Type, "channel")
		}
		if _, err := ports.Memory(c.Channel); err != nil {
			return nil, err
		}
		return fased.NewFASED(ports, c.Channel, c.Suffix, sys.Platform, env.Args, env.create), nil
	}

	return nil, curated.Errorf(UnknownType, "model", c.Type)
}
