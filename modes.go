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
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/jetsetilly/ftlcdc/easyterm"
	"github.com/jetsetilly/ftlcdc/gui/sdlpanel"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/bus"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/mode"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/sim"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/status"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/timing"
	"github.com/jetsetilly/ftlcdc/logger"
	"github.com/jetsetilly/ftlcdc/modalflag"
)

// report the state of the controller.
func report(output io.Writer, ctrl *lcdc.Controller, env *environment) {
	m := ctrl.CurrentMode()
	fmt.Fprintf(output, "%s\n", ctrl)
	fmt.Fprintf(output, "%s\n", ctrl.Fix())
	fmt.Fprintf(output, "frame rate: %s (%s per frame)\n", timing.FrameRate(m), timing.FramePeriod(m))
	fmt.Fprintf(output, "framebuffer: %s\n", ctrl.Sizer())
	fmt.Fprintln(output)
	bus.Dump(env.bus, output)
}

// flags that describe changes to the current mode.
type modeFlags struct {
	bpp       *int
	yvirtual  *int
	pixclock  *int
	grayscale *bool
}

func addModeFlags(md *modalflag.Modes) modeFlags {
	return modeFlags{
		bpp:       md.AddInt("bpp", 0, "bits per pixel: 1, 2, 4, 8, 16, 24 or 32. zero for no change"),
		yvirtual:  md.AddInt("yvirtual", 0, "virtual height in lines. zero for no change"),
		pixclock:  md.AddInt("pixclock", 0, "pixel clock in picoseconds. zero for no change"),
		grayscale: md.AddBool("grayscale", false, "convert palette entries to gray"),
	}
}

// apply the flags to the current mode.
func (f modeFlags) request(current mode.DisplayMode) mode.DisplayMode {
	m := current
	if *f.bpp > 0 {
		m.BitsPerPixel = uint32(*f.bpp)
	}
	if *f.yvirtual > 0 {
		m.YResVirtual = uint32(*f.yvirtual)
	}
	if *f.pixclock > 0 {
		m.Pixclock = uint32(*f.pixclock)
	}
	m.Grayscale = *f.grayscale
	return m
}

// the common part of every mode: connect to the controller, run the mode
// function and then clean up.
func withController(opts globalOptions, f func(env *environment, ctrl *lcdc.Controller) error) error {
	env, err := opts.connect()
	if err != nil {
		return err
	}
	defer env.close()

	ctrl, err := opts.controller(env)
	if err != nil {
		return err
	}

	err = f(env, ctrl)
	if err == nil {
		err = opts.dumpStructure(ctrl)
	}
	if err == nil {
		err = opts.takeSnapshot(env, ctrl)
	}

	if cerr := ctrl.Close(); err == nil {
		err = cerr
	}

	return err
}

func probe(md *modalflag.Modes, opts globalOptions) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return withController(opts, func(env *environment, ctrl *lcdc.Controller) error {
		report(os.Stdout, ctrl, env)
		return nil
	})
}

func setMode(md *modalflag.Modes, opts globalOptions) error {
	md.NewMode()
	mf := addModeFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	return withController(opts, func(env *environment, ctrl *lcdc.Controller) error {
		m, err := ctrl.SetMode(mf.request(ctrl.CurrentMode()))
		if err != nil {
			return err
		}
		if m.Visual() == mode.TrueColor {
			drawBars(ctrl, m)
		}
		report(os.Stdout, ctrl, env)
		return nil
	})
}

func panDisplay(md *modalflag.Modes, opts globalOptions) error {
	md.NewMode()
	mf := addModeFlags(md)
	md.AdditionalHelp("The argument is the line to pan to. The default virtual height is twice the panel height.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("%s mode requires the line to pan to", md)
	}
	y, err := strconv.ParseUint(md.GetArg(0), 0, 32)
	if err != nil {
		return fmt.Errorf("pan offset: %w", err)
	}

	return withController(opts, func(env *environment, ctrl *lcdc.Controller) error {
		req := mf.request(ctrl.CurrentMode())
		if *mf.yvirtual == 0 {
			req.YResVirtual = req.YRes * 2
		}

		m, err := ctrl.SetMode(req)
		if err != nil {
			return err
		}
		if m.Visual() == mode.TrueColor {
			drawBars(ctrl, m)
		}

		if err := ctrl.Pan(uint32(y)); err != nil {
			return err
		}

		fmt.Printf("panned to line %d: FRAME_BASE=%08x\n", y, ctrl.Registers().FrameBase)
		return nil
	})
}

func watch(md *modalflag.Modes, opts globalOptions, sync *mainSync) error {
	md.NewMode()
	duration := md.AddDuration("duration", 0, "stop watching after this long. zero to watch until q is pressed")
	md.AdditionalHelp("Keys: q quit, f flip buffers, u underrun and e bus error (simulation only).")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// this mode handles ctrl-c itself
	sync.state <- stateRequest{req: reqNoIntSig}

	return withController(opts, func(env *environment, ctrl *lcdc.Controller) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		if *duration > 0 {
			ctx, cancel = context.WithTimeout(ctx, *duration)
			defer cancel()
		}

		// double buffering so that flipping is possible
		req := ctrl.CurrentMode()
		req.YResVirtual = req.YRes * 2
		if _, err := ctrl.SetMode(req); err != nil {
			return err
		}

		var keys <-chan byte
		geom := easyterm.Geometry{}
		term, err := easyterm.NewTerminal(os.Stdin, os.Stdout)
		if err == nil {
			term.CBreakMode()
			defer term.CleanUp()
			keys = term.Keys()
			geom = term.Geometry()
		} else if *duration == 0 {
			return fmt.Errorf("%s mode without a terminal requires a duration", md)
		}

		events := make(chan status.Events)
		go deliverInterrupts(ctx, env, ctrl, events)

		counts := make(map[status.Event]int)
		for {
			select {
			case <-ctx.Done():
				fmt.Println()
				return nil

			case ev := <-events:
				for _, e := range ev.List() {
					counts[e]++
				}
				fmt.Print("\r" + geom.Clip(fmt.Sprintf("underrun %d  base updated %d  vsync %d  bus error %d  (line %d)",
					counts[status.Underrun], counts[status.BufferBaseUpdated],
					counts[status.VerticalSync], counts[status.BusError], ctrl.YOffset())))

			case k, ok := <-keys:
				if !ok {
					keys = nil
					continue
				}
				switch k {
				case 'q', easyterm.KeyCtrlC, easyterm.KeyCtrlD:
					fmt.Println()
					return nil
				case 'f', easyterm.KeySpace:
					y := ctrl.CurrentMode().YRes
					if ctrl.YOffset() != 0 {
						y = 0
					}
					if err := ctrl.Pan(y); err != nil {
						return err
					}
				case 'u':
					if env.hw != nil {
						env.hw.Raise(registers.IntUnderrun)
					}
				case 'e':
					if env.hw != nil {
						env.hw.Raise(registers.IntBusError)
					}
				}
			}
		}
	})
}

// call the controller's interrupt service function whenever an interrupt is
// delivered and send the events to the channel. the simulated controller
// runs a frame every frame period.
func deliverInterrupts(ctx context.Context, env *environment, ctrl *lcdc.Controller, events chan<- status.Events) {
	send := func(ev status.Events) {
		if ev.Empty() {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	if env.uio != nil {
		for ctx.Err() == nil {
			if err := env.uio.Enable(); err != nil {
				logger.Log(logger.Allow, "ftlcdc", err)
				return
			}
			if _, err := env.uio.Wait(ctx); err != nil {
				return
			}
			send(ctrl.ServiceInterrupt())
		}
		return
	}

	period := timing.FramePeriod(ctrl.CurrentMode())
	if period <= 0 {
		period = 20 * time.Millisecond
	}
	tick := time.NewTicker(period)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if env.hw != nil {
				env.hw.Frame()
			}
			send(ctrl.PollEvents())
		}
	}
}

// colour bars of the preview test pattern. 16-bit values for each channel.
var bars = [][3]uint16{
	{0xffff, 0xffff, 0xffff},
	{0xffff, 0xffff, 0x0000},
	{0x0000, 0xffff, 0xffff},
	{0x0000, 0xffff, 0x0000},
	{0xffff, 0x0000, 0xffff},
	{0xffff, 0x0000, 0x0000},
	{0x0000, 0x0000, 0xffff},
	{0x0000, 0x0000, 0x0000},
}

// draw vertical colour bars in the top half of the framebuffer and
// horizontal bars in the remainder.
func drawBars(ctrl *lcdc.Controller, m mode.DisplayMode) {
	fb := ctrl.Framebuffer()
	bpp := int(m.BytesPerPixel())
	line := int(m.LineLength())

	for y := 0; y < int(m.YResVirtual); y++ {
		for x := 0; x < int(m.XResVirtual); x++ {
			var c [3]uint16
			if y < int(m.YRes) {
				c = bars[x*len(bars)/int(m.XResVirtual)]
			} else {
				c = bars[(y-int(m.YRes))*len(bars)/int(m.YResVirtual-m.YRes)]
			}

			p := m.PackColor(c[0], c[1], c[2])
			o := y*line + x*bpp
			switch bpp {
			case 2:
				binary.LittleEndian.PutUint16(fb[o:], uint16(p))
			case 4:
				binary.LittleEndian.PutUint32(fb[o:], p)
			}
		}
	}
}

// previewGui shows the simulated scanout in an SDL window. it implements the
// GuiCreator interface so it is serviced on the main thread.
type previewGui struct {
	preview *sdlpanel.Preview
	env     *environment
	ctrl    *lcdc.Controller
	done    chan error
}

func (g *previewGui) Destroy(_ io.Writer) {
	g.preview.Destroy()
}

func (g *previewGui) finish(err error) {
	select {
	case g.done <- err:
	default:
	}
}

// scroll pans the display by delta lines, stopping at either end of the
// virtual framebuffer
func scroll(ctrl *lcdc.Controller, delta int) error {
	m := ctrl.CurrentMode()
	y := int(ctrl.YOffset()) + delta
	limit := int(m.YResVirtual) - int(m.YRes)
	if y > limit {
		y = limit
	}
	if y < 0 {
		y = 0
	}
	return ctrl.Pan(uint32(y))
}

func (g *previewGui) Service() {
	switch g.preview.Service() {
	case sdlpanel.EventQuit:
		g.finish(nil)
		return
	case sdlpanel.EventPanUp:
		if err := scroll(g.ctrl, -8); err != nil {
			logger.Log(logger.Allow, "ftlcdc", err)
		}
	case sdlpanel.EventPanDown:
		if err := scroll(g.ctrl, 8); err != nil {
			logger.Log(logger.Allow, "ftlcdc", err)
		}
	case sdlpanel.EventSnapshot:
		img, err := sim.Scanout(g.env.hw, g.env.mem, g.ctrl.Order())
		if err == nil {
			var fn string
			fn, err = saveSnapshot(img, "", g.ctrl.Panel())
			if err == nil {
				logger.Logf(logger.Allow, "ftlcdc", "snapshot saved to %s", fn)
			}
		}
		if err != nil {
			logger.Log(logger.Allow, "ftlcdc", err)
		}
	}

	g.env.hw.Frame()
	g.ctrl.PollEvents()

	img, err := sim.Scanout(g.env.hw, g.env.mem, g.ctrl.Order())
	if err != nil {
		g.finish(err)
		return
	}
	if err := g.preview.Show(img); err != nil {
		g.finish(err)
		return
	}
	g.preview.SetTitle(fmt.Sprintf("%s: line %d", g.ctrl.Panel(), g.ctrl.YOffset()))
}

func preview(md *modalflag.Modes, opts globalOptions, sync *mainSync) error {
	md.NewMode()
	mf := addModeFlags(md)
	scale := md.AddInt("scale", 2, "window scaling")
	md.AdditionalHelp("Keys: up and down to pan, s to save a snapshot, q to quit.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	return withController(opts, func(env *environment, ctrl *lcdc.Controller) error {
		if err := env.simulated(md.String()); err != nil {
			return err
		}

		req := mf.request(ctrl.CurrentMode())
		if *mf.yvirtual == 0 {
			req.YResVirtual = req.YRes * 2
		}
		m, err := ctrl.SetMode(req)
		if err != nil {
			return err
		}
		if m.Visual() != mode.TrueColor {
			return fmt.Errorf("%s mode requires a truecolor mode (%d bpp is %s)", md, m.BitsPerPixel, m.Visual())
		}
		drawBars(ctrl, m)

		g := &previewGui{env: env, ctrl: ctrl, done: make(chan error, 1)}

		sync.creator <- func() (GuiCreator, error) {
			title := strings.ToLower(lcdc.ID)
			pv, err := sdlpanel.NewPreview(title, int(m.XRes), int(m.YRes), *scale, timing.FrameRate(m))
			if err != nil {
				return nil, err
			}
			g.preview = pv
			return g, nil
		}

		select {
		case <-sync.creation:
		case err := <-sync.creationError:
			return err
		}

		err = <-g.done

		// the main thread must stop servicing the preview before the
		// controller is closed. a nil gui destroys the current one
		sync.creator <- func() (GuiCreator, error) {
			return nil, nil
		}
		<-sync.creation

		return err
	})
}
