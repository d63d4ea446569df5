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

// Package scheduler runs low frequency maintenance tasks on behalf of the
// orchestrator. Tasks are scheduled in steps (the unit of simulated time
// advanced by the control loop), never in wall-clock time.
//
// A task is a callback together with a countdown. When the countdown reaches
// zero the callback is run and the callback decides what happens next: it
// either returns the number of steps until it should next run, or it returns
// false to disable itself. A disabled task is never run again.
//
// The scheduler is not safe for concurrent use. Tasks are run one at a time,
// in registration order, from the goroutine calling RunDue().
package scheduler

import (
	"github.com/fsimhost/fsimhost/logger"
)

// Callback is the function run by a scheduled task. The returned delay is the
// number of steps until the task runs again. If keep is false the task is
// disabled and the delay is ignored.
//
// A delay of zero is not meaningful (the task would run forever without time
// advancing) and is treated as a delay of one step.
type Callback func() (delay uint64, keep bool)

type task struct {
	name      string
	callback  Callback
	countdown uint64
	active    bool
	runs      int
}

// Scheduler is a registry of periodic tasks.
type Scheduler struct {
	tasks []*task
	now   uint64
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register a new task. The task will first run when initial steps have
// elapsed. An initial value of zero means the task will run on the next call
// to RunDue().
func (s *Scheduler) Register(name string, callback Callback, initial uint64) {
	s.tasks = append(s.tasks, &task{
		name:      name,
		callback:  callback,
		countdown: initial,
		active:    true,
	})
}

// Now returns the number of steps that have elapsed since the scheduler was
// created.
func (s *Scheduler) Now() uint64 {
	return s.now
}

// Active returns the number of tasks that have not been disabled.
func (s *Scheduler) Active() int {
	n := 0
	for _, t := range s.tasks {
		if t.active {
			n++
		}
	}
	return n
}

// RunDue runs every active task whose countdown has reached zero. Returns the
// number of tasks that were run.
func (s *Scheduler) RunDue() int {
	n := 0

	for _, t := range s.tasks {
		if !t.active || t.countdown > 0 {
			continue
		}

		n++
		t.runs++

		delay, keep := t.callback()
		if !keep {
			t.active = false
			logger.Logf(logger.Allow, "scheduler", "%s disabled after %d runs", t.name, t.runs)
			continue
		}

		if delay == 0 {
			delay = 1
		}
		t.countdown = delay
	}

	return n
}

// LargestStep returns the number of steps that can be taken before the next
// task is due, capped by the limit argument. The control loop should advance
// by no more than this many steps so that tasks run exactly when they are due.
//
// The return value is never less than one.
func (s *Scheduler) LargestStep(limit uint64) uint64 {
	step := limit
	for _, t := range s.tasks {
		if t.active && t.countdown > 0 && t.countdown < step {
			step = t.countdown
		}
	}
	if step == 0 {
		step = 1
	}
	return step
}

// Advance moves time forward by the specified number of steps. Countdowns
// stop at zero so a task that is overshot will run late rather than not at
// all.
func (s *Scheduler) Advance(steps uint64) {
	s.now += steps
	for _, t := range s.tasks {
		if !t.active {
			continue
		}
		if steps >= t.countdown {
			t.countdown = 0
		} else {
			t.countdown -= steps
		}
	}
}
