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

package performance

import "fmt"

// CalcSpeed takes the number of target cycles and the duration (in seconds)
// and returns the simulation speed in KHz. A duration of zero or less returns
// a speed of zero.
func CalcSpeed(targetCycles uint64, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return float64(targetCycles) / (duration * 1000.0)
}

// FormatSpeed returns the speed (in KHz) as a string, switching to MHz for
// speeds above 1000 KHz.
func FormatSpeed(khz float64) string {
	if khz > 1000.0 {
		return fmt.Sprintf("%.2f MHz", khz/1000.0)
	}
	return fmt.Sprintf("%.2f KHz", khz)
}

// CalcFMR returns the FPGA-cycles-to-model-cycles ratio. A ratio of one means
// the target advanced on every host cycle. Returns zero if no target cycles
// have elapsed.
func CalcFMR(hostCycles uint64, targetCycles uint64) float64 {
	if targetCycles == 0 {
		return 0
	}
	return float64(hostCycles) / float64(targetCycles)
}
