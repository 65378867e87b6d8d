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
	"image/color"
	"io"
	"testing"

	"github.com/jetsetilly/ftlcdc/curated"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/mode"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/sim"
	"github.com/jetsetilly/ftlcdc/modalflag"
	"github.com/jetsetilly/ftlcdc/test"
)

// parse the global flags in the same way as launch()
func parseOptions(t *testing.T, args ...string) globalOptions {
	t.Helper()

	// keep preferences away from the user's config directory
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	md := &modalflag.Modes{Output: io.Discard}
	md.NewArgs(args)
	md.NewMode()
	opts := addGlobalFlags(md)

	p, err := md.Parse()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, p, modalflag.ParseContinue)

	return opts
}

func TestSimulatedEnvironment(t *testing.T) {
	opts := parseOptions(t, "-prefs", "lcdc.policy::grow; lcdc.nosuchkey::1")

	env, err := opts.connect()
	test.DemandSuccess(t, err)
	defer env.close()
	test.ExpectSuccess(t, env.simulated("test"))

	ctrl, err := opts.controller(env)
	test.DemandSuccess(t, err)
	defer ctrl.Close()

	test.ExpectEquality(t, ctrl.ClockKHz(), uint32(66000))
	test.ExpectEquality(t, ctrl.Panel(), mode.DefaultPanel)

	req := ctrl.CurrentMode()
	req.YResVirtual = req.YRes * 2
	m, err := ctrl.SetMode(req)
	test.DemandSuccess(t, err)
	drawBars(ctrl, m)

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red := color.RGBA{R: 255, A: 255}
	black := color.RGBA{A: 255}

	img, err := sim.Scanout(env.hw, env.mem, ctrl.Order())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.RGBAAt(0, 0), white)
	test.ExpectEquality(t, img.RGBAAt(210, 0), red)

	// the lower half of the framebuffer has horizontal bars
	test.DemandSuccess(t, ctrl.Pan(m.YRes))
	img, err = sim.Scanout(env.hw, env.mem, ctrl.Order())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.RGBAAt(210, 0), white)
	test.ExpectEquality(t, img.RGBAAt(0, int(m.YRes)-1), black)
}

func TestBadClock(t *testing.T) {
	opts := parseOptions(t, "-clock", "fast")
	_, err := opts.connect()
	test.ExpectFailure(t, err)
}

func TestModeFlags(t *testing.T) {
	md := &modalflag.Modes{Output: io.Discard}
	md.NewArgs([]string{"-bpp", "32", "-yvirtual", "480"})
	md.NewMode()
	mf := addModeFlags(md)
	_, err := md.Parse()
	test.DemandSuccess(t, err)

	opts := parseOptions(t)
	env, err := opts.connect()
	test.DemandSuccess(t, err)
	defer env.close()
	ctrl, err := opts.controller(env)
	test.DemandSuccess(t, err)
	defer ctrl.Close()

	req := mf.request(ctrl.CurrentMode())
	test.ExpectEquality(t, req.BitsPerPixel, uint32(32))
	test.ExpectEquality(t, req.YResVirtual, uint32(480))
	test.ExpectEquality(t, req.XRes, ctrl.CurrentMode().XRes)
	test.ExpectEquality(t, req.Pixclock, ctrl.CurrentMode().Pixclock)
}

func TestScroll(t *testing.T) {
	opts := parseOptions(t)
	env, err := opts.connect()
	test.DemandSuccess(t, err)
	defer env.close()
	ctrl, err := opts.controller(env)
	test.DemandSuccess(t, err)

	req := ctrl.CurrentMode()
	req.YResVirtual = req.YRes + 12
	m, err := ctrl.SetMode(req)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, scroll(ctrl, 8))
	test.ExpectEquality(t, ctrl.YOffset(), uint32(8))

	// stops at the bottom of the virtual framebuffer
	test.ExpectSuccess(t, scroll(ctrl, 8))
	test.ExpectEquality(t, ctrl.YOffset(), m.YResVirtual-m.YRes)

	// and at the top
	test.ExpectSuccess(t, scroll(ctrl, -8))
	test.ExpectEquality(t, ctrl.YOffset(), uint32(4))
	test.ExpectSuccess(t, scroll(ctrl, -8))
	test.ExpectEquality(t, ctrl.YOffset(), uint32(0))

	// failures are returned for the caller to log
	test.DemandSuccess(t, ctrl.Close())
	err = scroll(ctrl, 8)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, curated.Is(err, lcdc.ControllerClosed), true)
}
