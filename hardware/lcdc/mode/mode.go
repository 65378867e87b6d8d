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

import "fmt"

// SyncFlags indicates the polarity of the sync pulses. A sync pulse is
// active-low unless the high-active flag is set.
type SyncFlags uint32

// List of valid SyncFlags.
const (
	SyncHorHighAct  SyncFlags = 1 << 0
	SyncVertHighAct SyncFlags = 1 << 1
)

// VMode is the scan mode of the display.
type VMode uint32

// List of valid VMode values.
const (
	NonInterlaced VMode = iota
	Interlaced
	DoubleScan
)

// Bitfield describes the position of a colour channel within a pixel.
type Bitfield struct {
	Offset uint32
	Length uint32
}

func (b Bitfield) String() string {
	return fmt.Sprintf("%d@%d", b.Length, b.Offset)
}

// DisplayMode describes the geometry, timing and pixel format of a display.
//
// Pixclock is the length of one pixel in picoseconds. The margins and sync
// lengths are in pixels for the horizontal fields and in lines for the
// vertical fields.
type DisplayMode struct {
	XRes        uint32
	YRes        uint32
	XResVirtual uint32
	YResVirtual uint32

	BitsPerPixel uint32
	Grayscale    bool

	Pixclock    uint32
	LeftMargin  uint32
	RightMargin uint32
	UpperMargin uint32
	LowerMargin uint32
	HSyncLen    uint32
	VSyncLen    uint32
	Sync        SyncFlags
	VMode       VMode

	// colour field layout. filled in by Validate()
	Red    Bitfield
	Green  Bitfield
	Blue   Bitfield
	Transp Bitfield
}

func (m DisplayMode) String() string {
	return fmt.Sprintf("%dx%d (%dx%d virtual) %dbpp %dkHz", m.XRes, m.YRes,
		m.XResVirtual, m.YResVirtual, m.BitsPerPixel, PixelRate(m.Pixclock))
}

// BytesPerPixel returns the number of bytes required for a single pixel,
// rounded up.
func (m DisplayMode) BytesPerPixel() uint32 {
	return (m.BitsPerPixel + 7) / 8
}

// LineLength returns the number of bytes in a single line of the virtual
// display.
func (m DisplayMode) LineLength() uint32 {
	return m.XResVirtual * m.BytesPerPixel()
}

// RequiredBytes returns the number of bytes of memory required to hold the
// virtual display.
func (m DisplayMode) RequiredBytes() uint32 {
	return m.LineLength() * m.YResVirtual
}

// HasLayout returns true if the colour field layout has been filled in.
func (m DisplayMode) HasLayout() bool {
	return m.Red.Length != 0 && m.Green.Length != 0 && m.Blue.Length != 0
}

// Visual returns the colour visual of the mode.
func (m DisplayMode) Visual() Visual {
	switch {
	case m.BitsPerPixel == 1:
		return Mono01
	case m.BitsPerPixel <= 8:
		return PseudoColor
	}
	return TrueColor
}

// PixelRate converts a pixel clock in picoseconds to a rate in kHz. The
// result is rounded up. A pixel clock of zero returns zero.
func PixelRate(pixclock uint32) uint32 {
	if pixclock == 0 {
		return 0
	}
	return uint32((1e9 + uint64(pixclock) - 1) / uint64(pixclock))
}

// Pixclock converts a rate in kHz to a pixel clock in picoseconds. The
// result is rounded up, which means PixelRate(Pixclock(r)) == r for any
// rate below 31622 kHz.
func Pixclock(rateKHz uint32) uint32 {
	if rateKHz == 0 {
		return 0
	}
	return uint32((1e9 + uint64(rateKHz) - 1) / uint64(rateKHz))
}
