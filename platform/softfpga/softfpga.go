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

package softfpga

import (
	"github.com/pkg/errors"

	"github.com/fsimhost/fsimhost/curated"
	"github.com/fsimhost/fsimhost/logger"
)

// Sentinel error patterns returned by the SoftFPGA type.
const (
	StepWhileBusy = "softfpga: step requested with %d cycles of previous step remaining"
	StepTooLarge  = "softfpga: step of %d cycles exceeds maximum of %d"
)

// Target is implemented by behavioural models of a target design.
type Target interface {
	// Attach is called once, when the target is attached to the platform.
	// The target should declare all the ports it requires.
	Attach(p *Ports) error

	// Reset is called once for every target cycle that the target is held
	// in reset.
	Reset(p *Ports)

	// Cycle advances the target by one cycle. The cycle argument is the
	// number of cycles that have completed since the end of reset.
	//
	// If the target cannot complete the cycle (because a queue it wants to
	// write to is full, for example) then it should return false without
	// changing its state. The cycle will be attempted again on the next
	// call to Done().
	Cycle(p *Ports, cycle uint64) bool
}

// Config for the SoftFPGA type.
type Config struct {
	// number of host cycles that pass for every target cycle
	HostCyclesPerTarget uint64 `yaml:"hostCyclesPerTarget"`

	// largest step accepted by Step()
	MaxStepSize uint64 `yaml:"maxStepSize"`

	// maximum number of target cycles processed by a single call to Done()
	Batch int `yaml:"batch"`

	// size of the shared DRAM in bytes
	DRAMSize int `yaml:"dramSize"`
}

// DefaultConfig returns a Config with reasonable values for all fields.
func DefaultConfig() Config {
	return Config{
		HostCyclesPerTarget: 1,
		MaxStepSize:         1 << 16,
		Batch:               256,
		DRAMSize:            1 << 20,
	}
}

func (cfg *Config) normalise() {
	def := DefaultConfig()
	if cfg.HostCyclesPerTarget == 0 {
		cfg.HostCyclesPerTarget = def.HostCyclesPerTarget
	}
	if cfg.MaxStepSize == 0 {
		cfg.MaxStepSize = def.MaxStepSize
	}
	if cfg.Batch <= 0 {
		cfg.Batch = def.Batch
	}
	if cfg.DRAMSize <= 0 {
		cfg.DRAMSize = def.DRAMSize
	}
}

// SoftFPGA implements the platform.Platform interface.
type SoftFPGA struct {
	cfg    Config
	target Target
	ports  *Ports

	hcycle uint64
	tcycle uint64

	// number of target cycles remaining in the current step
	remaining uint64

	// number of polls that found the target stalled. for information only
	stalls uint64
}

// NewSoftFPGA is the preferred method of initialisation for the SoftFPGA
// type. Zero values in the Config argument are replaced by the values in
// DefaultConfig().
func NewSoftFPGA(cfg Config, target Target) (*SoftFPGA, error) {
	cfg.normalise()

	s := &SoftFPGA{
		cfg:    cfg,
		target: target,
		ports:  newPorts(cfg.DRAMSize),
	}

	err := target.Attach(s.ports)
	if err != nil {
		return nil, errors.Wrapf(err, "softfpga: attaching target")
	}

	logger.Logf(logger.Allow, "softfpga", "max step %d, batch %d, %d host cycles per target cycle",
		cfg.MaxStepSize, cfg.Batch, cfg.HostCyclesPerTarget)

	return s, nil
}

func (s *SoftFPGA) String() string {
	return "softfpga"
}

// Ports returns the platform's ports, for use by bridge drivers and FPGA
// models.
func (s *SoftFPGA) Ports() *Ports {
	return s.ports
}

// Stalls returns the number of calls to Done() that found the target
// stalled.
func (s *SoftFPGA) Stalls() uint64 {
	return s.stalls
}

// MaxStepSize implements the platform.Platform interface.
func (s *SoftFPGA) MaxStepSize() uint64 {
	return s.cfg.MaxStepSize
}

// Step implements the platform.Platform interface.
func (s *SoftFPGA) Step(n uint64) error {
	if s.remaining > 0 {
		return curated.Errorf(StepWhileBusy, s.remaining)
	}
	if n > s.cfg.MaxStepSize {
		return curated.Errorf(StepTooLarge, n, s.cfg.MaxStepSize)
	}
	s.remaining = n
	return nil
}

// Done implements the platform.Platform interface.
//
// Like a status register read over a bus, completion of a step is only seen
// by the call to Done() after the one that completed it. A caller polling
// Done() therefore always has at least one opportunity to service the ports
// during a step.
func (s *SoftFPGA) Done() bool {
	if s.remaining == 0 {
		return true
	}
	for i := 0; i < s.cfg.Batch && s.remaining > 0; i++ {
		if s.ports.blocked() || !s.target.Cycle(s.ports, s.tcycle) {
			s.hcycle++
			s.stalls++
			return false
		}
		s.tcycle++
		s.remaining--
		s.hcycle += s.cfg.HostCyclesPerTarget
		s.ports.advance()
	}
	return false
}

// TargetReset implements the platform.Platform interface. Any step in
// progress is abandoned and the target cycle count returns to zero.
func (s *SoftFPGA) TargetReset(cycles uint64) error {
	s.remaining = 0
	for i := uint64(0); i < cycles; i++ {
		s.target.Reset(s.ports)
		s.hcycle += s.cfg.HostCyclesPerTarget
	}
	s.tcycle = 0
	return nil
}

// HostCycle implements the platform.Platform interface.
func (s *SoftFPGA) HostCycle() uint64 {
	return s.hcycle
}

// TargetCycle implements the platform.Platform interface.
func (s *SoftFPGA) TargetCycle() uint64 {
	return s.tcycle
}

// ZeroOutDRAM implements the platform.Platform interface.
func (s *SoftFPGA) ZeroOutDRAM() error {
	clear(s.ports.dram)
	return nil
}
