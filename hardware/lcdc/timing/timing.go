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

package timing

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/jetsetilly/ftlcdc/curated"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/bus"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/mode"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
)

// ClockExceedsBus is returned by Compute() when the pixel rate of the mode
// cannot be derived from the reference clock.
const ClockExceedsBus = "timing: pixel clock exceeds bus clock (%d kHz from %d kHz)"

// MaxDivider is the largest clock divider the hardware supports.
const MaxDivider = registers.MaxDivNo + 1

// Config are the settings of the timing programmer that do not depend on
// the display mode.
type Config struct {
	InvertPixelClock bool
}

// Committed is the result of Compute(). It contains the register words and
// the clock divider they were computed with.
type Committed struct {
	ClockPolarity uint32
	HTiming       uint32
	VTiming       uint32
	Control       uint32

	// the clock divider and the resulting pixel rate
	Divider      uint32
	EffectiveKHz uint32
}

func (c Committed) String() string {
	return fmt.Sprintf("CLOCK_POLARITY=%08x HTIMING=%08x VTIMING=%08x CONTROL=%08x (div %d, %d kHz)",
		c.ClockPolarity, c.HTiming, c.VTiming, c.Control, c.Divider, c.EffectiveKHz)
}

// Word returns the register word for one of the timing registers. The
// second return value is false if the register is not a timing register.
func (c Committed) Word(reg registers.Offset) (uint32, bool) {
	switch reg {
	case registers.ClockPolarity:
		return c.ClockPolarity, true
	case registers.HTiming:
		return c.HTiming, true
	case registers.VTiming:
		return c.VTiming, true
	case registers.Control:
		return c.Control, true
	}
	return 0, false
}

// Compute the register words for the mode. The mode should have been
// validated by mode.Validate().
//
// The returned mode is the same as the mode argument except for the Pixclock
// field, which is changed to the pixel clock that the divider actually
// produces. It is the only field changed by this function.
//
// Compute() panics if the colour depth of the mode is not supported. A mode
// that has passed mode.Validate() never has an unsupported depth.
func Compute(m mode.DisplayMode, clockKHz uint32, cfg Config) (Committed, mode.DisplayMode, error) {
	if m.Pixclock == 0 {
		return Committed{}, m, curated.Errorf(mode.MissingClock)
	}

	rate := mode.PixelRate(m.Pixclock)

	divider := (clockKHz + rate - 1) / rate
	if divider == 0 || rate > clockKHz {
		return Committed{}, m, curated.Errorf(ClockExceedsBus, rate, clockKHz)
	}
	if divider > MaxDivider {
		divider = MaxDivider
	}

	bpp, ok := registers.BPPFor(m.BitsPerPixel)
	if !ok {
		panic(fmt.Sprintf("timing: unsupported colour depth (%d bpp) in validated mode", m.BitsPerPixel))
	}

	var c Committed
	c.Divider = divider
	c.EffectiveKHz = (clockKHz + divider - 1) / divider

	c.ClockPolarity = registers.ClockPolarityFields{
		DivNo: divider - 1,
		IVS:   m.Sync&mode.SyncVertHighAct == 0,
		IHS:   m.Sync&mode.SyncHorHighAct == 0,
		ICK:   cfg.InvertPixelClock,
		ADPEN: true,
	}.Encode()

	c.HTiming = registers.HTimingFields{
		PL:  m.XRes/16 - 1,
		HW:  m.HSyncLen - 1,
		HFP: m.RightMargin - 1,
		HBP: m.LeftMargin - 1,
	}.Encode()

	c.VTiming = registers.VTimingFields{
		LF:  m.YRes - 1,
		VW:  m.VSyncLen - 1,
		VFP: m.LowerMargin,
		VBP: m.UpperMargin,
	}.Encode()

	c.Control = registers.ControlFields{
		Enable:   true,
		BPP:      bpp,
		TFT:      true,
		BGR:      true,
		Endian:   registers.LittleByteLittlePixel,
		LCDPower: true,
	}.Encode()

	m.Pixclock = mode.Pixclock(c.EffectiveKHz)

	return c, m, nil
}

// Commit writes the register words to the bus in the order required by the
// hardware.
func Commit(b bus.Bus, c Committed) {
	for _, reg := range registers.Timing {
		w, _ := c.Word(reg)
		b.Write(reg, w)
	}
}

// Decode is the inverse of Compute(). It returns a mode with the timing,
// sync and depth fields taken from the register words. The pixel clock is
// the effective pixel clock of the committed words.
func Decode(c Committed) mode.DisplayMode {
	h := registers.DecodeHTiming(c.HTiming)
	v := registers.DecodeVTiming(c.VTiming)
	cp := registers.DecodeClockPolarity(c.ClockPolarity)
	ctrl := registers.DecodeControl(c.Control)

	m := mode.DisplayMode{
		XRes:         (h.PL + 1) * 16,
		HSyncLen:     h.HW + 1,
		RightMargin:  h.HFP + 1,
		LeftMargin:   h.HBP + 1,
		YRes:         v.LF + 1,
		VSyncLen:     v.VW + 1,
		LowerMargin:  v.VFP,
		UpperMargin:  v.VBP,
		BitsPerPixel: ctrl.BPP.Bits(),
		Pixclock:     mode.Pixclock(c.EffectiveKHz),
	}
	if !cp.IHS {
		m.Sync |= mode.SyncHorHighAct
	}
	if !cp.IVS {
		m.Sync |= mode.SyncVertHighAct
	}

	return m
}

// total pixels in one frame, including the blanking periods.
func frameLength(m mode.DisplayMode) uint64 {
	h := uint64(m.XRes + m.LeftMargin + m.RightMargin + m.HSyncLen)
	v := uint64(m.YRes + m.UpperMargin + m.LowerMargin + m.VSyncLen)
	return h * v
}

// FrameRate returns the number of frames per second produced by the mode.
// Returns zero if the mode has no pixel clock.
func FrameRate(m mode.DisplayMode) physic.Frequency {
	l := frameLength(m)
	if m.Pixclock == 0 || l == 0 {
		return 0
	}

	// pixclock is in picoseconds
	return physic.Frequency(float64(physic.Hertz) * 1e12 / (float64(m.Pixclock) * float64(l)))
}

// FramePeriod returns the time taken to scan out one frame.
func FramePeriod(m mode.DisplayMode) time.Duration {
	return time.Duration(uint64(m.Pixclock) * frameLength(m) / 1000)
}
