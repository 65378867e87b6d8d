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
	"strings"

	"github.com/jetsetilly/ftlcdc/curated"
)

// UnknownColorOrder is the error pattern returned by ParseColorOrder().
const UnknownColorOrder = "mode: unrecognised colour order: %s"

// ColorOrder selects the position of the red and blue channels in 16 and 32
// bit pixels. Panels have been seen with both orders and the correct value
// depends on how the panel is wired.
type ColorOrder int

// List of valid ColorOrder values.
const (
	// red in the most significant bits. RGB565 or ARGB8888
	RedHigh ColorOrder = iota

	// red in the least significant bits. BGR565 or ABGR8888
	RedLow
)

func (o ColorOrder) String() string {
	switch o {
	case RedHigh:
		return "redhigh"
	case RedLow:
		return "redlow"
	}
	return fmt.Sprintf("colororder(%d)", int(o))
}

// ParseColorOrder is the inverse of ColorOrder.String(). The comparison is
// case insensitive.
func ParseColorOrder(s string) (ColorOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "redhigh", "rgb":
		return RedHigh, nil
	case "redlow", "bgr":
		return RedLow, nil
	}
	return RedHigh, curated.Errorf(UnknownColorOrder, s)
}

// Layout returns the colour field layout for the number of bits per pixel.
// Depths of eight bits or less index a palette and have the same layout for
// each channel. Returns false if the depth is not supported.
func Layout(bitsPerPixel uint32, order ColorOrder) (red, green, blue, transp Bitfield, ok bool) {
	switch bitsPerPixel {
	case 1, 2, 4, 8:
		f := Bitfield{Offset: 0, Length: bitsPerPixel}
		return f, f, f, Bitfield{}, true

	case 16:
		red = Bitfield{Offset: 11, Length: 5}
		green = Bitfield{Offset: 5, Length: 6}
		blue = Bitfield{Offset: 0, Length: 5}
		if order == RedLow {
			red, blue = blue, red
		}
		return red, green, blue, Bitfield{}, true

	case 32:
		red = Bitfield{Offset: 16, Length: 8}
		green = Bitfield{Offset: 8, Length: 8}
		blue = Bitfield{Offset: 0, Length: 8}
		if order == RedLow {
			red, blue = blue, red
		}
		return red, green, blue, Bitfield{Offset: 24, Length: 8}, true
	}

	return Bitfield{}, Bitfield{}, Bitfield{}, Bitfield{}, false
}
