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

package lcdc

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/jetsetilly/ftlcdc/curated"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/bus"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/framebuffer"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/mode"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/pan"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/status"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/timing"
	"github.com/jetsetilly/ftlcdc/logger"
)

// Sentinel error patterns.
const (
	PanOutOfRange            = "lcdc: pan offset out of range (%d + %d lines exceeds %d)"
	ClockUnavailable         = "lcdc: reference clock unavailable: %v"
	ControllerClosed         = "lcdc: controller is closed"
	PaletteIndexOutOfRange   = "lcdc: palette index out of range (%d)"
	PaletteUnsupportedVisual = "lcdc: palette not supported for %s visual"
)

// ID is the identification string of the controller.
const ID = "FTLCDC100"

// PaletteSize is the number of colour registers that SetColorRegister()
// accepts.
const PaletteSize = 256

// Interrupts enabled by the controller. The other interrupts are still
// reported by PollEvents() if they are raised.
const enabledInterrupts = registers.IntUnderrun | registers.IntBusError

// ClockSource supplies the frequency of the controller's reference clock.
type ClockSource interface {
	ReferenceClock() (physic.Frequency, error)
}

// Fix is the information about the display that does not change with the
// display mode.
type Fix struct {
	ID         string
	Visual     mode.Visual
	LineLength uint32
	SmemStart  uint64
	SmemLen    uint32
}

func (f Fix) String() string {
	return fmt.Sprintf("%s: %s, line %d bytes, smem %#08x (%d bytes)",
		f.ID, f.Visual, f.LineLength, f.SmemStart, f.SmemLen)
}

// RegisterImage is the set of register values last written by the
// controller.
type RegisterImage struct {
	timing.Committed
	FrameBase uint32
}

func (r RegisterImage) String() string {
	return fmt.Sprintf("%s FRAME_BASE=%08x", r.Committed, r.FrameBase)
}

// Controller is the handle for a single display controller. Configuration
// functions (SetMode, Pan, SetColorRegister and Close) are serialised and can
// be called from any goroutine.
//
// PollEvents() does not wait for a configuration function to complete. It is
// intended to be called from the interrupt service path.
type Controller struct {
	crit sync.Mutex

	bus     bus.Bus
	prefs   *Preferences
	sizer   *framebuffer.Sizer
	monitor *status.Monitor

	panel    string
	clockKHz uint32
	cfg      timing.Config
	order    mode.ColorOrder

	current   mode.DisplayMode
	committed timing.Committed
	frameBase uint32
	yOffset   uint32

	palette [mode.PseudoPaletteSize]uint32

	// events are reported through the rate limiter
	limiter *logger.Limiter

	closed atomic.Bool
}

// NewController probes the display controller and programs it with the mode
// of the panel named in the preferences. If prefs is nil the default
// preferences are used.
//
// The probe sequence is: read the reference clock, validate the panel mode,
// allocate the framebuffer, enable the underrun and bus error interrupts and
// then commit the timing registers.
func NewController(b bus.Bus, clock ClockSource, alloc framebuffer.Allocator, p *Preferences) (*Controller, error) {
	if p == nil {
		var err error
		p, err = NewPreferencesFile("")
		if err != nil {
			return nil, err
		}
	}

	f, err := clock.ReferenceClock()
	if err != nil {
		return nil, curated.Errorf(ClockUnavailable, err)
	}
	khz := uint32(f / physic.KiloHertz)
	if khz == 0 {
		return nil, curated.Errorf(ClockUnavailable, fmt.Errorf("%s is too slow", f))
	}

	panel, err := p.PanelPreset()
	if err != nil {
		return nil, err
	}

	c := &Controller{
		bus:      b,
		prefs:    p,
		monitor:  status.NewMonitor(b),
		panel:    panel.Name,
		clockKHz: khz,
		cfg:      timing.Config{InvertPixelClock: panel.InvertPixelClock},
		order:    p.Order(),
		limiter:  logger.NewLimiter(eventInterval, eventBurst),
	}
	c.limiter.OnSuppressed = func(missed int) {
		logger.Logf(logger.Allow, "lcdc", "%d event messages suppressed", missed)
	}

	policy := p.SizingPolicy()

	// the panel mode is validated against itself
	m, err := mode.Validate(panel.Mode, c.constraints(panel.Mode, policy, 0, false))
	if err != nil {
		return nil, err
	}

	committed, m, err := timing.Compute(m, c.clockKHz, c.cfg)
	if err != nil {
		return nil, err
	}

	c.sizer = framebuffer.NewSizer(alloc, policy)
	c.sizer.SetGrace(p.GracePeriod())
	if err := c.sizer.Preallocate(m, c.repoint); err != nil {
		return nil, err
	}

	c.bus.Write(registers.IntEnable, enabledInterrupts)
	c.commit(m, committed)

	logger.Logf(logger.Allow, "lcdc", "%s attached to %s (%s clock, %s)", ID, panel.Name, f, c.sizer)

	return c, nil
}

func (c *Controller) String() string {
	c.crit.Lock()
	defer c.crit.Unlock()
	return fmt.Sprintf("%s: %s", ID, c.current)
}

// constraints for a mode change from the current mode.
func (c *Controller) constraints(current mode.DisplayMode, policy framebuffer.Policy, capacity uint32, checkCapacity bool) mode.Constraints {
	cons := mode.Constraints{
		Current:  current,
		ClockKHz: c.clockKHz,
		Order:    c.order,
	}
	if policy.Fixed {
		cons.MaxYResVirtual = current.YRes * policy.Multiplier
		cons.Capacity = capacity
		cons.CheckCapacity = checkCapacity
	}
	return cons
}

// repoint the hardware at a new buffer. called by the sizer.
func (c *Controller) repoint(phys uint64) {
	c.frameBase = registers.EncodeFrameBase(phys)
	c.yOffset = 0
	c.bus.Write(registers.FrameBase, c.frameBase)
}

// commit the register words and make the mode current.
func (c *Controller) commit(m mode.DisplayMode, committed timing.Committed) {
	timing.Commit(c.bus, committed)
	c.current = m
	c.committed = committed

	c.sizer.SetFramePeriod(timing.FramePeriod(m))
	c.sizer.Reap()

	logger.Logf(logger.Allow, "lcdc", "%dx%d (virtual %dx%d) %dbpp at %s, pixel clock %d kHz (divider %d)",
		m.XRes, m.YRes, m.XResVirtual, m.YResVirtual, m.BitsPerPixel,
		timing.FrameRate(m), committed.EffectiveKHz, committed.Divider)

	if c.prefs.Debug.Get().(bool) {
		c.dumpRegisters()
	}
}

// write the register block to the log.
func (c *Controller) dumpRegisters() {
	s := strings.Builder{}
	bus.Dump(c.bus, &s)
	for _, l := range strings.Split(strings.TrimSpace(s.String()), "\n") {
		logger.Log(logger.Allow, "lcdc", l)
	}
}

// SetMode changes the display mode. The requested mode is validated and the
// framebuffer grown if necessary before the timing registers are written.
//
// The returned mode is the mode that was committed. It differs from the
// requested mode in the colour layout, the pixel clock and any timing field
// that was rounded to fit the hardware.
//
// If an error is returned the mode, the registers and the framebuffer are
// unchanged.
func (c *Controller) SetMode(requested mode.DisplayMode) (mode.DisplayMode, error) {
	c.crit.Lock()
	defer c.crit.Unlock()

	if c.closed.Load() {
		return mode.DisplayMode{}, curated.Errorf(ControllerClosed)
	}

	m, err := mode.Validate(requested, c.constraints(c.current, c.sizer.Policy(), c.sizer.Capacity(), true))
	if err != nil {
		return mode.DisplayMode{}, err
	}

	committed, m, err := timing.Compute(m, c.clockKHz, c.cfg)
	if err != nil {
		return mode.DisplayMode{}, err
	}

	grown, err := c.sizer.Ensure(m, c.repoint)
	if err != nil {
		return mode.DisplayMode{}, err
	}

	// a new buffer has already been repointed to line zero. otherwise the
	// frame base must follow a change of line length and a smaller virtual
	// height may leave the pan offset outside the buffer
	if !grown {
		y := c.yOffset
		if y+m.YRes > m.YResVirtual {
			y = 0
		}
		addr := pan.Address(c.sizer.Active(), m.LineLength(), y)
		if registers.EncodeFrameBase(addr) != c.frameBase {
			c.frameBase = registers.EncodeFrameBase(pan.Pan(c.bus, c.sizer.Active(), m.LineLength(), y))
		}
		c.yOffset = y
	}

	c.commit(m, committed)

	return m, nil
}

// Pan the display to the line at yOffset in the framebuffer.
func (c *Controller) Pan(yOffset uint32) error {
	c.crit.Lock()
	defer c.crit.Unlock()

	if c.closed.Load() {
		return curated.Errorf(ControllerClosed)
	}

	if uint64(yOffset)+uint64(c.current.YRes) > uint64(c.current.YResVirtual) {
		return curated.Errorf(PanOutOfRange, yOffset, c.current.YRes, c.current.YResVirtual)
	}

	addr := pan.Pan(c.bus, c.sizer.Active(), c.current.LineLength(), yOffset)
	c.frameBase = registers.EncodeFrameBase(addr)
	c.yOffset = yOffset

	return nil
}

// YOffset returns the line that was last panned to.
func (c *Controller) YOffset() uint32 {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.yOffset
}

// CurrentMode returns the mode that was last committed.
func (c *Controller) CurrentMode() mode.DisplayMode {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.current
}

// Fix returns the fixed information about the display.
func (c *Controller) Fix() Fix {
	c.crit.Lock()
	defer c.crit.Unlock()

	f := Fix{
		ID:         ID,
		Visual:     c.current.Visual(),
		LineLength: c.current.LineLength(),
	}
	if buf := c.sizer.Active(); buf != nil {
		f.SmemStart = buf.PhysAddr()
		f.SmemLen = buf.Len()
	}
	return f
}

// Framebuffer returns the memory of the active framebuffer. The slice is
// only valid until the next call to SetMode() or Close().
func (c *Controller) Framebuffer() []byte {
	c.crit.Lock()
	defer c.crit.Unlock()
	if buf := c.sizer.Active(); buf != nil {
		return buf.Bytes()
	}
	return nil
}

// Registers returns the register values that were last written by the
// controller.
func (c *Controller) Registers() RegisterImage {
	c.crit.Lock()
	defer c.crit.Unlock()
	return RegisterImage{
		Committed: c.committed,
		FrameBase: c.frameBase,
	}
}

// Panel returns the name of the panel attached to the controller.
func (c *Controller) Panel() string {
	return c.panel
}

// Order returns the order of the colour channels in a pixel.
func (c *Controller) Order() mode.ColorOrder {
	return c.order
}

// ClockKHz returns the frequency of the reference clock.
func (c *Controller) ClockKHz() uint32 {
	return c.clockKHz
}

// Sizer returns the framebuffer sizer used by the controller.
func (c *Controller) Sizer() *framebuffer.Sizer {
	return c.sizer
}

// SetColorRegister sets an entry of the palette. Colour values are 16 bit.
//
// In a truecolor mode the first sixteen entries are stored in the pseudo
// palette. Other entries are ignored. In a pseudocolor mode the hardware
// palette is not programmed and the call has no effect. Other visuals are
// not supported.
func (c *Controller) SetColorRegister(regno uint32, red, green, blue, transp uint16) error {
	c.crit.Lock()
	defer c.crit.Unlock()

	if c.closed.Load() {
		return curated.Errorf(ControllerClosed)
	}

	if regno >= PaletteSize {
		return curated.Errorf(PaletteIndexOutOfRange, regno)
	}

	switch v := c.current.Visual(); v {
	case mode.TrueColor:
		if regno < mode.PseudoPaletteSize {
			c.palette[regno] = c.current.PackColor(red, green, blue)
		}
	case mode.PseudoColor:
	default:
		return curated.Errorf(PaletteUnsupportedVisual, v)
	}

	return nil
}

// PseudoPalette returns a copy of the pseudo palette.
func (c *Controller) PseudoPalette() [mode.PseudoPaletteSize]uint32 {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.palette
}

// Close disables the display and interrupts and releases all framebuffer
// memory. Any further call to a configuration function will return the
// ControllerClosed error.
func (c *Controller) Close() error {
	c.crit.Lock()
	defer c.crit.Unlock()

	if c.closed.Swap(true) {
		return curated.Errorf(ControllerClosed)
	}

	c.bus.Write(registers.IntEnable, 0)
	c.bus.Write(registers.Control, 0)

	if err := c.sizer.Close(); err != nil {
		return curated.Errorf("lcdc: %v", err)
	}

	logger.Logf(logger.Allow, "lcdc", "%s detached", ID)

	return nil
}

// the rate at which event messages are allowed into the log.
const (
	eventInterval = 5 * time.Second
	eventBurst    = 10
)
