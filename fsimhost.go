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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/fsimhost/fsimhost/curated"
	"github.com/fsimhost/fsimhost/logger"
	"github.com/fsimhost/fsimhost/manifest"
	"github.com/fsimhost/fsimhost/modalflag"
	"github.com/fsimhost/fsimhost/orchestrator"
	"github.com/fsimhost/fsimhost/performance"
	"github.com/fsimhost/fsimhost/plusargs"
	"github.com/fsimhost/fsimhost/statsview"
	"github.com/fsimhost/fsimhost/version"
)

// exit status values for problems with the host program, as opposed to a
// failing simulation
const (
	statusParseError = 10
	statusModeError  = 20
)

// processStatus converts the status of a simulation to a value suitable for
// os.Exit(). only the low eight bits of the status reach the parent process
// so a non-zero status that would be seen as zero is replaced with 255
func processStatus(status int) int {
	if status != 0 && status&0xff == 0 {
		return 255
	}
	return status
}

// the standard streams. replaced during testing
type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(launch(os.Args[1:], streams{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}))
}

// launch parses the command line and runs the selected mode. returns the exit
// status for the process
func launch(args []string, std streams) int {
	md := &modalflag.Modes{Output: std.stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(std.stderr, "* error: %v\n", err)
		return statusParseError
	}

	status := 0

	switch md.Mode() {
	case "RUN":
		status, err = run(md, std)

	case "VERSION":
		err = showVersion(md, std)
	}

	if err != nil {
		fmt.Fprintf(std.stderr, "* error in %s mode: %s\n", md.String(), err)
		return statusModeError
	}

	return status
}

func run(md *modalflag.Modes, std streams) (int, error) {
	md.NewMode()

	manifestFile := md.AddString("manifest", "", "manifest file. the built-in demonstration system is used if not specified")
	echoLog := md.AddBool("log", false, "echo log to stderr")
	profile := md.AddString("profile", "none", "run through profiler: cpu, mem, trace (comma separated)")
	dump := md.AddString("dump", "", "write a graphviz dot file of the manifest to the named file")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	md.AdditionalHelp(`Arguments of the form +name or +name=value are plusargs and are passed
to the simulation. The control loop is configured with:

  +max-cycles=N         end the simulation with a timeout after N cycles
  +profile-interval=N   profile memory timing models every N cycles
  +zero-out-dram        clear target memory before the simulation starts

Drivers and models read other plusargs. For example, +uart-raw and
+mm_readLatency_0=N.`)

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return 0, err
	}

	if len(md.RemainingArgs()) > 0 {
		return 0, curated.Errorf("unexpected arguments: %v", md.RemainingArgs())
	}

	if *echoLog {
		logger.SetEcho(std.stderr)
	}

	if stats != nil && *stats {
		statsview.Launch(std.stdout)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return 0, err
	}

	var m *manifest.Manifest
	if *manifestFile == "" {
		m, err = manifest.Default()
	} else {
		m, err = manifest.LoadFile(*manifestFile)
	}
	if err != nil {
		return 0, err
	}

	if *dump != "" {
		if err := dumpManifest(*dump, m); err != nil {
			return 0, err
		}
	}

	args := plusargs.New(md.PlusArgs())
	logger.Logf(logger.Allow, "fsimhost", "plusargs: %s", args)

	cfg, err := orchestrator.ConfigFromPlusArgs(args)
	if err != nil {
		return 0, err
	}

	sys, err := m.Build(manifest.Env{
		Args:   args,
		Stdin:  std.stdin,
		Stdout: std.stdout,
		Stderr: std.stderr,
	})
	if err != nil {
		return 0, err
	}
	defer sys.Close()

	orch := orchestrator.NewOrchestrator(sys.Platform, sys.Drivers, sys.Models, cfg, std.stderr)

	// an interrupt ends the control loop at the next opportunity. the
	// simulation is finalised and reported as normal
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	done := make(chan bool)
	defer func() {
		signal.Stop(intChan)
		close(done)
	}()
	go func() {
		select {
		case <-intChan:
			logger.Log(logger.Allow, "fsimhost", "interrupted")
			orch.Interrupt()
		case <-done:
		}
	}()

	var res orchestrator.Result
	err = performance.RunProfiler(prf, "fsimhost", func() error {
		var err error
		res, err = orch.Run()
		return err
	})
	if err != nil {
		return 0, err
	}

	status := res.Status()
	if status != 0 {
		fmt.Fprintf(std.stderr, "* simulation %s with exit status %d\n", res.Verdict, status)
	}

	return processStatus(status), nil
}

func dumpManifest(filename string, m *manifest.Manifest) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("dump: %v", err)
	}
	memviz.Map(f, m)
	if err := f.Close(); err != nil {
		return curated.Errorf("dump: %v", err)
	}
	return nil
}

func showVersion(md *modalflag.Modes, std streams) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision and build information")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	b := version.Current()
	fmt.Fprintln(std.stdout, b)
	if *revision {
		fmt.Fprintln(std.stdout, b.Revision)
		if b.Module != "" {
			fmt.Fprintf(std.stdout, "module %s (%s)\n", b.Module, b.GoVersion)
		}
		if len(b.Tags) > 0 {
			fmt.Fprintf(std.stdout, "tags: %s\n", strings.Join(b.Tags, ","))
		}
		fmt.Fprintf(std.stdout, "statsview: %v\n", statsview.Available())
	}

	return nil
}
