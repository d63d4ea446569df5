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

package orchestrator_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fsimhost/fsimhost/bridge"
	"github.com/fsimhost/fsimhost/curated"
	"github.com/fsimhost/fsimhost/orchestrator"
	"github.com/fsimhost/fsimhost/plusargs"
	"github.com/fsimhost/fsimhost/test"
)

// simulation bundles an orchestrator with its fakes
type simulation struct {
	rec     *recorder
	plt     *fakePlatform
	drivers []*fakeDriver
	models  []*fakeModel
	output  *test.CompareWriter
	orch    *orchestrator.Orchestrator
}

// newSimulation creates drivers named d0, d1, ... and models named m0, m1, ...
// the terminateAt and codes slices give the behaviour of each driver
func newSimulation(cfg orchestrator.Config, numModels int, terminateAt []uint64, codes []int) *simulation {
	sim := &simulation{
		rec:    &recorder{},
		plt:    newFakePlatform(1000, 10),
		output: &test.CompareWriter{},
	}

	var drivers []bridge.Driver
	for i := range terminateAt {
		d := &fakeDriver{
			name:        fmt.Sprintf("d%d", i),
			rec:         sim.rec,
			plt:         sim.plt,
			terminateAt: terminateAt[i],
			code:        codes[i],
		}
		sim.drivers = append(sim.drivers, d)
		drivers = append(drivers, d)
	}

	var models []bridge.Model
	for i := 0; i < numModels; i++ {
		m := &fakeModel{
			name: fmt.Sprintf("m%d", i),
			rec:  sim.rec,
			plt:  sim.plt,
		}
		sim.models = append(sim.models, m)
		models = append(models, m)
	}

	sim.orch = orchestrator.NewOrchestrator(sim.plt, drivers, models, cfg, sim.output)
	sim.orch.SetClock(&fakeClock{now: time.Unix(0, 0), step: 2 * time.Second})

	return sim
}

func TestOrdering(t *testing.T) {
	sim := newSimulation(orchestrator.DefaultConfig(), 2, []uint64{0, 0, 100}, []int{0, 0, 0})
	test.ExpectEquality(t, sim.orch.State(), orchestrator.Constructed)

	_, err := sim.orch.Run()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sim.orch.State(), orchestrator.Finalised)

	inits := sim.rec.filter("init:")
	test.DemandEquality(t, len(inits), 5)
	for i, e := range []string{"init:m0", "init:m1", "init:d0", "init:d1", "init:d2"} {
		test.ExpectEquality(t, inits[i], e)
	}

	finishes := sim.rec.filter("finish:")
	test.DemandEquality(t, len(finishes), 5)
	for i, e := range []string{"finish:m0", "finish:m1", "finish:d0", "finish:d1", "finish:d2"} {
		test.ExpectEquality(t, finishes[i], e)
	}

	ticks := sim.rec.filter("tick:")
	test.ExpectInequality(t, len(ticks), 0)
	test.ExpectEquality(t, len(ticks)%3, 0)
	for i, e := range ticks {
		test.ExpectEquality(t, e, fmt.Sprintf("tick:d%d", i%3))
	}

	// every init happens before any tick and every finish happens after the
	// last tick
	test.ExpectEquality(t, sim.rec.events[4], "init:d2")
	test.ExpectEquality(t, sim.rec.events[len(sim.rec.events)-6], "tick:d2")

	// the target was held in reset for 50 cycles, exactly once
	test.DemandEquality(t, len(sim.plt.resets), 1)
	test.ExpectEquality(t, sim.plt.resets[0], uint64(orchestrator.ResetCycles))
}

func TestTerminationIsOR(t *testing.T) {
	// only the middle driver ever terminates
	sim := newSimulation(orchestrator.DefaultConfig(), 0, []uint64{0, 200, 0}, []int{0, 0, 0})

	res, err := sim.orch.Run()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Verdict, orchestrator.Passed)
	test.ExpectEquality(t, res.TargetCycles, uint64(200))
	test.ExpectSuccess(t, sim.drivers[1].Terminate())
	test.ExpectFailure(t, sim.drivers[0].Terminate())
	test.ExpectFailure(t, sim.drivers[2].Terminate())
}

func TestFirstNonZeroExitCode(t *testing.T) {
	sim := newSimulation(orchestrator.DefaultConfig(), 0, []uint64{100, 100, 100, 100}, []int{0, 0, 3, 5})

	res, err := sim.orch.Run()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Verdict, orchestrator.Failed)
	test.ExpectEquality(t, res.ExitCode, 3)
	test.ExpectEquality(t, res.Status(), 3)
	test.ExpectEquality(t, res.VerdictLine(), "*** FAILED *** (code = 3) after 100 cycles")
}

func TestTimeout(t *testing.T) {
	cfg := orchestrator.DefaultConfig()
	cfg.MaxCycles = 1000

	sim := newSimulation(cfg, 0, []uint64{0}, []int{0})
	sim.plt.maxStep = 64

	res, err := sim.orch.Run()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Verdict, orchestrator.TimedOut)
	test.ExpectEquality(t, res.TargetCycles, uint64(1000))
	test.ExpectEquality(t, res.ExitCode, 0)
	test.ExpectEquality(t, res.Status(), 0)
	test.ExpectEquality(t, res.VerdictLine(), "*** FAILED *** (timeout) after 1000 cycles")

	// no step was larger than the platform allows and the last step was cut
	// short so that the limit was not overshot
	for _, s := range sim.plt.steps {
		test.ExpectSuccess(t, s <= 64)
	}
	test.ExpectEquality(t, sim.plt.steps[len(sim.plt.steps)-1], uint64(1000%64))

	// finalisation still happens after a timeout
	test.ExpectEquality(t, len(sim.rec.filter("finish:")), 1)
}

func TestPassedScenario(t *testing.T) {
	sim := newSimulation(orchestrator.DefaultConfig(), 0, []uint64{100}, []int{0})

	res, err := sim.orch.Run()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Verdict, orchestrator.Passed)
	test.ExpectEquality(t, res.TargetCycles, uint64(100))
	test.ExpectEquality(t, res.Status(), 0)

	test.ExpectEquality(t, sim.output.String(), "Commencing simulation.\n"+
		"\n"+
		"*** PASSED *** after 100 cycles\n"+
		"time elapsed: 2.0 s, simulation speed = 0.05 KHz\n"+
		"FPGA-Cycles-to-Model-Cycles Ratio (FMR): 2.00\n")
}

func TestTimeoutScenario(t *testing.T) {
	cfg := orchestrator.DefaultConfig()
	cfg.MaxCycles = 50

	sim := newSimulation(cfg, 0, []uint64{0}, []int{0})

	res, err := sim.orch.Run()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Verdict, orchestrator.TimedOut)
	test.ExpectEquality(t, res.TargetCycles, uint64(50))
	test.ExpectEquality(t, sim.plt.steps[0], uint64(50))
}

func TestFailedScenario(t *testing.T) {
	sim := newSimulation(orchestrator.DefaultConfig(), 0, []uint64{0, 100}, []int{0, 7})

	res, err := sim.orch.Run()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Verdict, orchestrator.Failed)
	test.ExpectEquality(t, res.ExitCode, 7)
	test.ExpectEquality(t, res.Status(), 7)

	test.ExpectEquality(t, sim.output.String(), "Commencing simulation.\n"+
		"\n"+
		"*** FAILED *** (code = 7) after 100 cycles\n"+
		"time elapsed: 2.0 s, simulation speed = 0.05 KHz\n"+
		"FPGA-Cycles-to-Model-Cycles Ratio (FMR): 2.00\n")
}

func TestProfileTask(t *testing.T) {
	cfg := orchestrator.DefaultConfig()
	cfg.MaxCycles = 35
	cfg.ProfileInterval = 10

	sim := newSimulation(cfg, 2, []uint64{0}, []int{0})
	sim.plt.batch = 1

	_, err := sim.orch.Run()
	test.DemandSuccess(t, err)

	for _, m := range sim.models {
		test.DemandEquality(t, len(m.profiles), 4)
		for i, c := range []uint64{0, 10, 20, 30} {
			test.ExpectEquality(t, m.profiles[i], c)
		}
	}
}

func TestProfileDisabled(t *testing.T) {
	cfg := orchestrator.DefaultConfig()
	cfg.MaxCycles = 100

	sim := newSimulation(cfg, 1, []uint64{0}, []int{0})

	_, err := sim.orch.Run()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(sim.models[0].profiles), 0)

	// with no tasks the step size is only limited by the platform and the
	// cycle limit
	test.DemandEquality(t, len(sim.plt.steps), 1)
	test.ExpectEquality(t, sim.plt.steps[0], uint64(100))
}

// consumer is a driver that moves items from a source to a sink. it counts
// the number of calls to Tick() separately from the number of items moved
type consumer struct {
	fakeDriver
	source  []int
	sink    []int
	effects int
}

func (c *consumer) Tick() {
	c.ticks++
	if len(c.source) == 0 {
		return
	}
	c.sink = append(c.sink, c.source[0])
	c.source = c.source[1:]
	c.effects++
}

func TestTickIdempotence(t *testing.T) {
	cfg := orchestrator.DefaultConfig()
	cfg.MaxCycles = 500

	rec := &recorder{}
	plt := newFakePlatform(1000, 10)
	c := &consumer{
		fakeDriver: fakeDriver{name: "consumer", rec: rec, plt: plt},
	}

	// items arrive from the target at cycle 100
	feeder := &fakeDriver{name: "feeder", rec: rec, plt: plt}
	feeder.onTick = func(d *fakeDriver) {
		if plt.tcycle == 100 {
			c.source = append(c.source, 1, 2, 3)
		}
	}

	o := orchestrator.NewOrchestrator(plt, []bridge.Driver{feeder, c}, nil, cfg, &test.CompareWriter{})
	_, err := o.Run()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, c.effects, 3)
	test.ExpectEquality(t, len(c.sink), 3)
	test.ExpectInequality(t, c.ticks, c.effects)
	test.ExpectEquality(t, c.ticks, feeder.ticks)
}

func TestInterrupt(t *testing.T) {
	sim := newSimulation(orchestrator.DefaultConfig(), 0, []uint64{0}, []int{0})
	sim.drivers[0].onTick = func(d *fakeDriver) {
		if d.plt.tcycle >= 300 {
			sim.orch.Interrupt()
		}
	}
	sim.plt.maxStep = 100

	res, err := sim.orch.Run()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Verdict, orchestrator.Interrupted)
	test.ExpectEquality(t, res.TargetCycles, uint64(300))
	test.ExpectEquality(t, res.Status(), orchestrator.InterruptedStatus)
	test.ExpectEquality(t, res.VerdictLine(), "*** FAILED *** (interrupted) after 300 cycles")
}

// a target that never completes a step must not prevent an interrupt from
// ending the simulation
func TestInterruptWhileStalled(t *testing.T) {
	sim := newSimulation(orchestrator.DefaultConfig(), 1, []uint64{0}, []int{0})
	sim.plt.stalled = true
	sim.drivers[0].onTick = func(d *fakeDriver) {
		if d.ticks == 5 {
			sim.orch.Interrupt()
		}
	}

	res, err := sim.orch.Run()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, res.Verdict, orchestrator.Interrupted)
	test.ExpectEquality(t, res.TargetCycles, uint64(0))
	test.ExpectEquality(t, sim.drivers[0].ticks, 5)
	test.ExpectEquality(t, sim.orch.State(), orchestrator.Finalised)
	test.ExpectEquality(t, len(sim.rec.filter("finish")), 2)
}

func TestZeroOutDRAM(t *testing.T) {
	cfg := orchestrator.DefaultConfig()
	cfg.ZeroOutDRAM = true
	cfg.MaxCycles = 0

	sim := newSimulation(cfg, 0, nil, nil)

	res, err := sim.orch.Run()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, sim.plt.zeroed)
	test.ExpectEquality(t, res.Verdict, orchestrator.TimedOut)
	test.ExpectEquality(t, res.TargetCycles, uint64(0))
	test.ExpectEquality(t, len(sim.plt.steps), 0)

	test.ExpectEquality(t, sim.output.String(), "Zeroing out FPGA DRAM. This will take a few minutes...\n"+
		"Commencing simulation.\n"+
		"\n"+
		"*** FAILED *** (timeout) after 0 cycles\n"+
		"time elapsed: 2.0 s, simulation speed = 0.00 KHz\n"+
		"FPGA-Cycles-to-Model-Cycles Ratio (FMR): 0.00\n")
}

func TestInitError(t *testing.T) {
	sim := newSimulation(orchestrator.DefaultConfig(), 2, []uint64{100}, []int{0})
	sim.models[1].initErr = errors.New("no such register")

	_, err := sim.orch.Run()
	test.ExpectSuccess(t, curated.Is(err, orchestrator.InitError))
	test.ExpectEquality(t, sim.orch.State(), orchestrator.Finalised)

	// only the model that initialised successfully is finalised
	finishes := sim.rec.filter("finish:")
	test.DemandEquality(t, len(finishes), 1)
	test.ExpectEquality(t, finishes[0], "finish:m0")
	test.ExpectEquality(t, len(sim.rec.filter("init:d")), 0)
	test.ExpectEquality(t, len(sim.plt.resets), 0)
}

func TestStepError(t *testing.T) {
	sim := newSimulation(orchestrator.DefaultConfig(), 1, []uint64{100}, []int{0})
	sim.plt.failStep = true

	_, err := sim.orch.Run()
	test.ExpectSuccess(t, curated.Is(err, orchestrator.StepError))
	test.ExpectEquality(t, len(sim.rec.filter("finish:")), 2)
}

func TestResetError(t *testing.T) {
	sim := newSimulation(orchestrator.DefaultConfig(), 1, []uint64{100}, []int{0})
	sim.plt.failReset = true

	_, err := sim.orch.Run()
	test.ExpectSuccess(t, curated.Is(err, orchestrator.ResetError))
	test.ExpectEquality(t, len(sim.rec.filter("finish:")), 2)
}

func TestRunOnce(t *testing.T) {
	sim := newSimulation(orchestrator.DefaultConfig(), 0, []uint64{100}, []int{0})

	_, err := sim.orch.Run()
	test.DemandSuccess(t, err)

	_, err = sim.orch.Run()
	test.ExpectSuccess(t, curated.Is(err, orchestrator.StateError))
}

func TestConfigFromPlusArgs(t *testing.T) {
	cfg, err := orchestrator.ConfigFromPlusArgs(plusargs.New(nil))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg, orchestrator.DefaultConfig())

	cfg, err = orchestrator.ConfigFromPlusArgs(plusargs.New([]string{
		"+max-cycles=1000", "+profile-interval=0x100", "+zero-out-dram", "+uart-raw",
	}))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.MaxCycles, int64(1000))
	test.ExpectEquality(t, cfg.ProfileInterval, int64(256))
	test.ExpectSuccess(t, cfg.ZeroOutDRAM)

	_, err = orchestrator.ConfigFromPlusArgs(plusargs.New([]string{"+max-cycles=lots"}))
	test.ExpectSuccess(t, curated.Is(err, orchestrator.ConfigError))
	test.ExpectSuccess(t, curated.Has(err, plusargs.BadValue))
}
