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

package orchestrator

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/fsimhost/fsimhost/bridge"
	"github.com/fsimhost/fsimhost/curated"
	"github.com/fsimhost/fsimhost/logger"
	"github.com/fsimhost/fsimhost/platform"
	"github.com/fsimhost/fsimhost/scheduler"
)

// Sentinel error patterns returned by this package.
const (
	ConfigError   = "orchestrator: config: %v"
	StateError    = "orchestrator: cannot run from the %s state"
	InitError     = "orchestrator: init: %s: %v"
	ZeroDRAMError = "orchestrator: zero out dram: %v"
	ResetError    = "orchestrator: reset: %v"
	StepError     = "orchestrator: step: %v"
)

// ResetCycles is the number of target cycles the target is held in reset
// before the control loop begins.
const ResetCycles = 50

const tag = "orchestrator"

// Orchestrator drives a simulation. It must be created with
// NewOrchestrator().
type Orchestrator struct {
	platform platform.Platform
	clock    platform.Clock
	output   io.Writer

	drivers []bridge.Driver
	models  []bridge.Model

	cfg   Config
	sched *scheduler.Scheduler
	state State

	// number of models and drivers that have been initialised. only these
	// will be finalised
	initModels  int
	initDrivers int

	interrupted atomic.Bool
}

// NewOrchestrator is the preferred method of initialisation for the
// Orchestrator type. The order of drivers and models is significant: it is
// the order in which they are initialised, ticked and finalised and, for
// drivers, the order in which exit codes are considered.
//
// The output writer is the destination for progress messages and the final
// report. This is normally os.Stderr.
func NewOrchestrator(plt platform.Platform, drivers []bridge.Driver, models []bridge.Model, cfg Config, output io.Writer) *Orchestrator {
	o := &Orchestrator{
		platform: plt,
		clock:    platform.SystemClock{},
		output:   output,
		drivers:  drivers,
		models:   models,
		cfg:      cfg,
		sched:    scheduler.NewScheduler(),
	}

	if cfg.profiling() {
		o.sched.Register("profile models", o.profileModels, 0)
	}

	return o
}

// SetClock changes the source of wall-clock time. Must be called before
// Run().
func (o *Orchestrator) SetClock(clock platform.Clock) {
	o.clock = clock
}

// State returns the current state of the orchestrator.
func (o *Orchestrator) State() State {
	return o.state
}

// Config returns the configuration the orchestrator was created with.
func (o *Orchestrator) Config() Config {
	return o.cfg
}

// Interrupt asks the control loop to stop. The request is seen between
// driver ticks so it takes effect even if the platform never completes the
// current step. Safe to call from any goroutine.
func (o *Orchestrator) Interrupt() {
	o.interrupted.Store(true)
}

func (o *Orchestrator) setState(s State) {
	logger.Logf(logger.Allow, tag, "%s -> %s", o.state, s)
	o.state = s
}

// the built-in periodic task
func (o *Orchestrator) profileModels() (uint64, bool) {
	for _, m := range o.models {
		m.Profile()
	}
	return uint64(o.cfg.ProfileInterval), true
}

// terminated returns true if any driver wants the simulation to end. every
// driver is consulted even after one has returned true
func (o *Orchestrator) terminated() bool {
	var t bool
	for _, d := range o.drivers {
		t = d.Terminate() || t
	}
	return t
}

func (o *Orchestrator) timedOut() bool {
	return o.cfg.bounded() && o.platform.TargetCycle() >= uint64(o.cfg.MaxCycles)
}

// exitCode returns the first non-zero driver exit code
func (o *Orchestrator) exitCode() int {
	for _, d := range o.drivers {
		if c := d.ExitCode(); c != 0 {
			return c
		}
	}
	return 0
}

// stepSize returns the largest step that does not overshoot the next
// scheduled task, the platform's limit or the cycle limit
func (o *Orchestrator) stepSize() uint64 {
	step := o.sched.LargestStep(o.platform.MaxStepSize())
	if o.cfg.bounded() {
		tc := o.platform.TargetCycle()
		if limit := uint64(o.cfg.MaxCycles); tc < limit && limit-tc < step {
			step = limit - tc
		}
	}
	if step == 0 {
		step = 1
	}
	return step
}

func (o *Orchestrator) initialise() error {
	for _, m := range o.models {
		if err := m.Init(); err != nil {
			return curated.Errorf(InitError, bridge.Name(m), err)
		}
		o.initModels++
	}

	for _, d := range o.drivers {
		if err := d.Init(); err != nil {
			return curated.Errorf(InitError, bridge.Name(d), err)
		}
		o.initDrivers++
	}

	logger.Logf(logger.Allow, tag, "%d models and %d drivers initialised", o.initModels, o.initDrivers)
	return nil
}

// finalise every model and then every driver that was initialised
func (o *Orchestrator) finalise() {
	for _, m := range o.models[:o.initModels] {
		m.Finish()
	}
	for _, d := range o.drivers[:o.initDrivers] {
		d.Finish()
	}
	o.setState(Finalised)
}

// Run the simulation from start to finish. The returned error is only for
// problems with the simulation infrastructure. A failing target is reported
// through the Result and does not cause an error.
//
// Run can only be called once.
func (o *Orchestrator) Run() (Result, error) {
	if o.state != Constructed {
		return Result{}, curated.Errorf(StateError, o.state)
	}

	if err := o.initialise(); err != nil {
		o.finalise()
		return Result{}, err
	}
	o.setState(Initialised)

	if o.cfg.ZeroOutDRAM {
		fmt.Fprintln(o.output, "Zeroing out FPGA DRAM. This will take a few minutes...")
		if err := o.platform.ZeroOutDRAM(); err != nil {
			o.finalise()
			return Result{}, curated.Errorf(ZeroDRAMError, err)
		}
	}
	fmt.Fprintln(o.output, "Commencing simulation.")

	startHost := o.platform.HostCycle()
	startTime := o.clock.Now()

	o.setState(InReset)
	if err := o.platform.TargetReset(ResetCycles); err != nil {
		o.finalise()
		return Result{}, curated.Errorf(ResetError, err)
	}

	o.setState(Running)
	err := o.loop()
	o.setState(Stopped)

	res := Result{
		TargetCycles: o.platform.TargetCycle(),
		HostCycles:   o.platform.HostCycle() - startHost,
		Elapsed:      o.clock.Now().Sub(startTime),
		ExitCode:     o.exitCode(),
	}

	if err != nil {
		o.finalise()
		return res, err
	}

	terminated := o.terminated()
	switch {
	case res.ExitCode != 0:
		res.Verdict = Failed
	case !terminated && o.timedOut():
		res.Verdict = TimedOut
	case !terminated && o.interrupted.Load():
		res.Verdict = Interrupted
	default:
		res.Verdict = Passed
	}

	logger.Logf(logger.Allow, tag, "%s after %d cycles (%d scheduler steps)", res.Verdict, res.TargetCycles, o.sched.Now())

	res.Report(o.output)
	o.finalise()

	return res, nil
}

func (o *Orchestrator) loop() error {
	for !o.terminated() && !o.timedOut() && !o.interrupted.Load() {
		o.sched.RunDue()

		before := o.platform.TargetCycle()
		if err := o.platform.Step(o.stepSize()); err != nil {
			return curated.Errorf(StepError, err)
		}

		for !o.terminated() && !o.interrupted.Load() && !o.platform.Done() {
			for _, d := range o.drivers {
				d.Tick()
			}
		}

		o.sched.Advance(o.platform.TargetCycle() - before)
	}
	return nil
}
