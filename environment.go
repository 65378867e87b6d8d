// This file is part of ftlcdc.
//
// ftlcdc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ftlcdc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ftlcdc.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"golang.org/x/image/bmp"
	"periph.io/x/conn/v3/physic"

	"github.com/jetsetilly/ftlcdc/hardware/lcdc"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/bus"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/framebuffer"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/host"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/sim"
	"github.com/jetsetilly/ftlcdc/logger"
	"github.com/jetsetilly/ftlcdc/modalflag"
	"github.com/jetsetilly/ftlcdc/paths"
	"github.com/jetsetilly/ftlcdc/prefs"
	"github.com/jetsetilly/ftlcdc/statsview"
)

// options that apply to every mode.
type globalOptions struct {
	prefs     *string
	host      *string
	clock     *string
	clkfile   *string
	uio       *string
	limit     *int
	trace     *bool
	log       *bool
	statsview *bool
	memviz    *string
	snapshot  *string
}

func addGlobalFlags(md *modalflag.Modes) globalOptions {
	return globalOptions{
		prefs:     md.AddString("prefs", "", "preferences for this run: \"key::value; key::value\""),
		host:      md.AddString("host", "", "physical address of the register block. simulated if empty"),
		clock:     md.AddString("clock", sim.DefaultClock.String(), "reference clock frequency"),
		clkfile:   md.AddString("clkfile", "", "read the reference clock from a clk_rate file (with -host)"),
		uio:       md.AddString("uio", "", "UIO device for the interrupt line (with -host)"),
		limit:     md.AddInt("limit", 0, "limit simulated memory to this many bytes. zero is no limit"),
		trace:     md.AddBool("trace", false, "log every register write"),
		log:       md.AddBool("log", false, "echo log to stdout"),
		statsview: md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address)),
		memviz:    md.AddString("memviz", "", "write the structure of the controller to a dot file"),
		snapshot:  md.AddString("snapshot", "", "save the simulated scanout to a BMP file. AUTO for a unique filename"),
	}
}

// the connection to the controller, either real or simulated.
type environment struct {
	bus   bus.Bus
	clock lcdc.ClockSource
	alloc framebuffer.Allocator

	// non-nil if the controller is simulated
	hw  *sim.Hardware
	mem *sim.Memory

	// non-nil if an interrupt device has been opened
	uio *host.UIO

	closers []io.Closer
}

func (opts globalOptions) connect() (*environment, error) {
	var f physic.Frequency
	if err := f.Set(*opts.clock); err != nil {
		return nil, fmt.Errorf("clock: %w", err)
	}

	env := &environment{}

	if *opts.host == "" {
		env.hw = sim.NewHardware()
		env.mem = sim.NewMemory(*opts.limit)
		env.bus = env.hw
		env.alloc = env.mem
		env.clock = sim.Clock(f)
	} else {
		base, err := strconv.ParseUint(*opts.host, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("host: %w", err)
		}

		mmio, err := host.OpenMMIO(base)
		if err != nil {
			return nil, err
		}
		env.closers = append(env.closers, mmio)
		env.bus = mmio
		env.alloc = host.DMA{}

		if *opts.clkfile != "" {
			env.clock = host.SysfsClock(*opts.clkfile)
		} else {
			env.clock = host.FixedClock(f)
		}

		if *opts.uio != "" {
			env.uio, err = host.OpenUIO(*opts.uio)
			if err != nil {
				env.close()
				return nil, err
			}
			env.closers = append(env.closers, env.uio)
		}
	}

	if *opts.trace {
		env.bus = bus.NewTrace(env.bus, logger.Allow)
	}

	return env, nil
}

func (env *environment) close() {
	for i := len(env.closers) - 1; i >= 0; i-- {
		if err := env.closers[i].Close(); err != nil {
			logger.Log(logger.Allow, "ftlcdc", err)
		}
	}
}

// simulated returns an error if the environment is not simulated.
func (env *environment) simulated(what string) error {
	if env.hw == nil {
		return fmt.Errorf("%s requires the simulated controller", what)
	}
	return nil
}

// create a controller with the preferences on disk and the preferences from
// the command line.
func (opts globalOptions) controller(env *environment) (*lcdc.Controller, error) {
	prefs.PushCommandLineStack(*opts.prefs)
	p, err := lcdc.NewPreferences()
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "ftlcdc", "unused preferences: %s", unused)
	}
	if err != nil {
		return nil, err
	}

	ctrl, err := lcdc.NewController(env.bus, env.clock, env.alloc, p)
	if err != nil {
		return nil, err
	}

	return ctrl, nil
}

// write the structure of the controller to the memviz file, if requested.
func (opts globalOptions) dumpStructure(ctrl *lcdc.Controller) error {
	if *opts.memviz == "" {
		return nil
	}

	f, err := os.Create(*opts.memviz)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, ctrl)

	return nil
}

// save the simulated scanout if requested.
func (opts globalOptions) takeSnapshot(env *environment, ctrl *lcdc.Controller) error {
	if *opts.snapshot == "" {
		return nil
	}
	if err := env.simulated("snapshot"); err != nil {
		return err
	}

	img, err := sim.Scanout(env.hw, env.mem, ctrl.Order())
	if err != nil {
		return err
	}

	fn := *opts.snapshot
	if strings.ToUpper(fn) == "AUTO" {
		fn = ""
	}
	fn, err = saveSnapshot(img, fn, ctrl.Panel())
	if err != nil {
		return err
	}
	fmt.Printf("snapshot saved to %s\n", fn)

	return nil
}

// save the image as a BMP file. if the filename is empty a unique filename
// is generated in the snapshots directory.
func saveSnapshot(img image.Image, fn string, panel string) (string, error) {
	if fn == "" {
		var err error
		fn, err = paths.ResourcePath("snapshots", paths.UniqueFilename("scanout", panel, "bmp"))
		if err != nil {
			return "", err
		}
	}

	f, err := os.Create(fn)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := bmp.Encode(f, img); err != nil {
		return "", err
	}

	return fn, nil
}
