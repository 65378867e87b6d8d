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

package mode

import (
	"fmt"

	"github.com/jetsetilly/ftlcdc/curated"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
)

// Sentinel error patterns returned by Validate().
const (
	MissingClock            = "mode: pixel clock not specified"
	ClockTooFast            = "mode: pixel clock too fast (%d kHz at %d bytes per pixel exceeds %d kHz)"
	ResolutionFixed         = "mode: resolution is fixed at %dx%d (%dx%d requested)"
	VirtualHeightOutOfRange = "mode: virtual height out of range (%d %s)"
	BufferTooSmall          = "mode: buffer too small (%d bytes required, %d available)"
	UnsupportedDepth        = "mode: unsupported colour depth (%d bpp)"
	GeometryOutOfRange      = "mode: %s out of range (%d)"
)

// Constraints on a mode change.
type Constraints struct {
	// the mode currently in use. the resolution of a requested mode must
	// match the resolution of the current mode
	Current DisplayMode

	// reference clock of the controller in kHz
	ClockKHz uint32

	// order of the colour channels in 16 and 32 bit pixels
	Order ColorOrder

	// largest permitted virtual height. zero if there is no limit
	MaxYResVirtual uint32

	// size of the existing buffer in bytes. only checked if CheckCapacity is
	// true
	Capacity      uint32
	CheckCapacity bool
}

// Validate the requested mode against the constraints. The returned mode is
// the requested mode with the colour layout filled in and adjustable timing
// fields rounded to values the hardware can represent. There are no side
// effects.
//
// The rules are applied in the following order and the first rule to fail
// decides the error:
//
//  1. the pixel clock must be specified (MissingClock)
//  2. the pixel rate multiplied by the bytes per pixel must not exceed the
//     reference clock (ClockTooFast)
//  3. the resolution and virtual width must equal those of the current mode
//     (ResolutionFixed)
//  4. the virtual height must be at least the height and no larger than
//     MaxYResVirtual (VirtualHeightOutOfRange)
//  5. the buffer must not exceed Capacity (BufferTooSmall)
//  6. the colour depth must be supported (UnsupportedDepth)
//  7. timing values must fit the register fields (GeometryOutOfRange)
//
// A depth of 24 bits is stored in a 32-bit pixel and the returned mode will
// have a BitsPerPixel value of 32. The 32-bit size is used for rules 2 and 5.
func Validate(requested DisplayMode, c Constraints) (DisplayMode, error) {
	m := requested
	m.BitsPerPixel = containerBits(m.BitsPerPixel)

	if m.Pixclock == 0 {
		return DisplayMode{}, curated.Errorf(MissingClock)
	}

	// the hardware fetches 24-bit pixels as 32-bit words so the bandwidth
	// and capacity checks use the container size
	rate := PixelRate(m.Pixclock)
	if uint64(rate)*uint64(m.BytesPerPixel()) > uint64(c.ClockKHz) {
		return DisplayMode{}, curated.Errorf(ClockTooFast, rate, m.BytesPerPixel(), c.ClockKHz)
	}

	if m.XRes != c.Current.XRes || m.YRes != c.Current.YRes || m.XResVirtual != c.Current.XResVirtual {
		return DisplayMode{}, curated.Errorf(ResolutionFixed, c.Current.XRes, c.Current.YRes, m.XRes, m.YRes)
	}

	if m.YResVirtual < m.YRes || (c.MaxYResVirtual > 0 && m.YResVirtual > c.MaxYResVirtual) {
		bounds := fmt.Sprintf("is less than %d", m.YRes)
		if c.MaxYResVirtual > 0 {
			bounds = fmt.Sprintf("not in %d to %d", m.YRes, c.MaxYResVirtual)
		}
		return DisplayMode{}, curated.Errorf(VirtualHeightOutOfRange, m.YResVirtual, bounds)
	}

	if c.CheckCapacity {
		if req := uint64(m.XResVirtual) * uint64(m.YResVirtual) * uint64(m.BytesPerPixel()); req > uint64(c.Capacity) {
			return DisplayMode{}, curated.Errorf(BufferTooSmall, req, c.Capacity)
		}
	}

	var ok bool
	m.Red, m.Green, m.Blue, m.Transp, ok = Layout(m.BitsPerPixel, c.Order)
	if !ok {
		return DisplayMode{}, curated.Errorf(UnsupportedDepth, requested.BitsPerPixel)
	}

	if err := fitGeometry(&m); err != nil {
		return DisplayMode{}, err
	}

	return m, nil
}

// 24-bit pixels are stored in 32 bits.
func containerBits(bitsPerPixel uint32) uint32 {
	if bitsPerPixel == 24 {
		return 32
	}
	return bitsPerPixel
}

// fitGeometry makes sure the timing values of the mode can be encoded in the
// timing registers. fields that are stored minus one are rounded up to one.
func fitGeometry(m *DisplayMode) error {
	roundUp := func(v *uint32) {
		if *v == 0 {
			*v = 1
		}
	}
	roundUp(&m.HSyncLen)
	roundUp(&m.VSyncLen)
	roundUp(&m.LeftMargin)
	roundUp(&m.RightMargin)

	if m.XRes == 0 || m.XRes%16 != 0 || m.XRes/16-1 > registers.MaxPL {
		return curated.Errorf(GeometryOutOfRange, "horizontal resolution", m.XRes)
	}
	if m.YRes == 0 || m.YRes-1 > registers.MaxLF {
		return curated.Errorf(GeometryOutOfRange, "vertical resolution", m.YRes)
	}

	// the largest value for the minus-one fields is one more than the
	// largest value of the register field
	fields := []struct {
		name  string
		value uint32
		max   uint32
	}{
		{"horizontal sync length", m.HSyncLen, registers.MaxHW + 1},
		{"right margin", m.RightMargin, registers.MaxHFP + 1},
		{"left margin", m.LeftMargin, registers.MaxHBP + 1},
		{"vertical sync length", m.VSyncLen, registers.MaxVW + 1},
		{"lower margin", m.LowerMargin, registers.MaxVFP},
		{"upper margin", m.UpperMargin, registers.MaxVBP},
	}
	for _, f := range fields {
		if f.value > f.max {
			return curated.Errorf(GeometryOutOfRange, f.name, f.value)
		}
	}

	return nil
}
