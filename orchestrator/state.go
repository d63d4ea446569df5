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

// State indicates the orchestrator's position in its lifecycle.
type State int

// List of possible orchestrator states.
const (
	Constructed State = iota
	Initialised
	InReset
	Running
	Stopped
	Finalised
)

func (s State) String() string {
	switch s {
	case Constructed:
		return "Constructed"
	case Initialised:
		return "Initialised"
	case InReset:
		return "InReset"
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	case Finalised:
		return "Finalised"
	}

	return ""
}

// Verdict is the outcome of a simulation.
type Verdict int

// List of possible verdicts.
const (
	Passed Verdict = iota
	Failed
	TimedOut
	Interrupted
)

func (v Verdict) String() string {
	switch v {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case TimedOut:
		return "timeout"
	case Interrupted:
		return "interrupted"
	}

	return ""
}
