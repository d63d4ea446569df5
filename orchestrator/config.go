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
	"github.com/fsimhost/fsimhost/curated"
	"github.com/fsimhost/fsimhost/plusargs"
)

// Names of the plusargs read by ConfigFromPlusArgs().
const (
	ArgMaxCycles       = "max-cycles"
	ArgProfileInterval = "profile-interval"
	ArgZeroOutDRAM     = "zero-out-dram"
)

// Config is the startup configuration of an orchestrator. It does not change
// once the orchestrator has been created.
type Config struct {
	// the simulation times out once this many target cycles have elapsed. a
	// negative value means there is no limit
	MaxCycles int64

	// number of target cycles between calls to the Profile() function of
	// every model. zero or a negative value means models are never profiled
	ProfileInterval int64

	// clear the target's memory before the simulation starts
	ZeroOutDRAM bool
}

// DefaultConfig returns a Config with no cycle limit and profiling disabled.
func DefaultConfig() Config {
	return Config{
		MaxCycles:       -1,
		ProfileInterval: -1,
	}
}

// ConfigFromPlusArgs creates a Config from the startup plusargs. Missing
// plusargs take the value in DefaultConfig(). Plusargs that are not used by
// the orchestrator are ignored.
func ConfigFromPlusArgs(args plusargs.Args) (Config, error) {
	cfg := DefaultConfig()

	var err error

	cfg.MaxCycles, err = args.Int64(ArgMaxCycles, cfg.MaxCycles)
	if err != nil {
		return cfg, curated.Errorf(ConfigError, err)
	}

	cfg.ProfileInterval, err = args.Int64(ArgProfileInterval, cfg.ProfileInterval)
	if err != nil {
		return cfg, curated.Errorf(ConfigError, err)
	}

	cfg.ZeroOutDRAM = args.Bool(ArgZeroOutDRAM)

	return cfg, nil
}

func (cfg Config) profiling() bool {
	return cfg.ProfileInterval > 0
}

func (cfg Config) bounded() bool {
	return cfg.MaxCycles >= 0
}
