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

// Visual is the method by which pixel values are turned into colours.
type Visual int

// List of valid Visual values.
const (
	Mono01 Visual = iota
	PseudoColor
	TrueColor
)

func (v Visual) String() string {
	switch v {
	case Mono01:
		return "mono01"
	case PseudoColor:
		return "pseudocolor"
	case TrueColor:
		return "truecolor"
	}
	return "unknown visual"
}

// PseudoPaletteSize is the number of entries in the pseudo palette of a
// truecolor mode.
const PseudoPaletteSize = 16

// ScaleChannel converts a 16-bit colour value to a value of the given width
// in bits.
func ScaleChannel(val uint16, width uint32) uint32 {
	v := uint32(val)
	return ((v << width) + 0x7fff - v) >> 16
}

// Gray returns the luminance of a 16-bit RGB colour.
func Gray(red, green, blue uint16) uint16 {
	return uint16((uint32(red)*77 + uint32(green)*151 + uint32(blue)*28) >> 8)
}

// PackColor returns the pixel value for a 16-bit RGB colour in the mode's
// colour layout. If the mode is grayscale the colour is converted to gray
// first.
func (m DisplayMode) PackColor(red, green, blue uint16) uint32 {
	if m.Grayscale {
		red = Gray(red, green, blue)
		green, blue = red, red
	}
	return ScaleChannel(red, m.Red.Length)<<m.Red.Offset |
		ScaleChannel(green, m.Green.Length)<<m.Green.Offset |
		ScaleChannel(blue, m.Blue.Length)<<m.Blue.Offset
}
