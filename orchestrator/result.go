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
	"time"

	"github.com/fsimhost/fsimhost/performance"
)

// InterruptedStatus is the process exit status for an interrupted
// simulation.
const InterruptedStatus = 130

// Result of a simulation.
type Result struct {
	Verdict Verdict

	// the first non-zero exit code of any driver, in registration order
	ExitCode int

	// target cycles at the end of the simulation
	TargetCycles uint64

	// host cycles that elapsed during the simulation, including the reset
	// sequence
	HostCycles uint64

	Elapsed time.Duration
}

// Speed returns the simulation speed in KHz.
func (r Result) Speed() float64 {
	return performance.CalcSpeed(r.TargetCycles, r.Elapsed.Seconds())
}

// FMR returns the ratio of host cycles to target cycles.
func (r Result) FMR() float64 {
	return performance.CalcFMR(r.HostCycles, r.TargetCycles)
}

// Status returns the exit status the process should end with.
//
// A simulation that timed out has a status of zero. The timeout is reported
// as a failure in the verdict line and scripts should look for that rather
// than relying on the exit status.
func (r Result) Status() int {
	switch r.Verdict {
	case Failed:
		return r.ExitCode
	case Interrupted:
		return InterruptedStatus
	}
	return 0
}

// VerdictLine returns the one line summary of the result.
func (r Result) VerdictLine() string {
	switch r.Verdict {
	case Failed:
		return fmt.Sprintf("*** FAILED *** (code = %d) after %d cycles", r.ExitCode, r.TargetCycles)
	case TimedOut:
		return fmt.Sprintf("*** FAILED *** (timeout) after %d cycles", r.TargetCycles)
	case Interrupted:
		return fmt.Sprintf("*** FAILED *** (interrupted) after %d cycles", r.TargetCycles)
	}
	return fmt.Sprintf("*** PASSED *** after %d cycles", r.TargetCycles)
}

// Report writes the verdict and performance figures. The report begins with a
// blank line so that it is separated from any output from the target.
func (r Result) Report(output io.Writer) {
	fmt.Fprintln(output)
	fmt.Fprintln(output, r.VerdictLine())
	fmt.Fprintf(output, "time elapsed: %.1f s, simulation speed = %s\n",
		r.Elapsed.Seconds(), performance.FormatSpeed(r.Speed()))
	fmt.Fprintf(output, "FPGA-Cycles-to-Model-Cycles Ratio (FMR): %.2f\n", r.FMR())
}
