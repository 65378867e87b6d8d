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

package sim

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"github.com/jetsetilly/ftlcdc/hardware/lcdc/mode"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
)

// Scanout returns the image that the hardware would display, using the
// current register values and the memory pointed to by the frame base
// register. Pixels are little-endian. Depths of eight bits or less are
// shown as shades of gray.
func Scanout(h *Hardware, mem *Memory, order mode.ColorOrder) (*image.RGBA, error) {
	ctrl := registers.DecodeControl(h.Read(registers.Control))
	if !ctrl.Enable {
		return nil, fmt.Errorf("sim: display not enabled")
	}

	bpp := ctrl.BPP.Bits()
	width := int((registers.DecodeHTiming(h.Read(registers.HTiming)).PL + 1) * 16)
	height := int(registers.DecodeVTiming(h.Read(registers.VTiming)).LF + 1)
	base := uint64(h.Read(registers.FrameBase))

	// the line length is the same as the driver's line length. pixels of
	// less than eight bits are packed at the start of the line
	lineLength := width * int((bpp+7)/8)

	data, ok := mem.Lookup(base)
	if !ok {
		return nil, fmt.Errorf("sim: frame base %#08x is not in allocated memory", base)
	}
	if len(data) < lineLength*height {
		return nil, fmt.Errorf("sim: frame at %#08x extends beyond allocated memory", base)
	}

	red, green, blue, _, _ := mode.Layout(bpp, order)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		line := data[y*lineLength:]
		for x := 0; x < width; x++ {
			var c color.RGBA
			switch bpp {
			case 32:
				p := binary.LittleEndian.Uint32(line[x*4:])
				c = color.RGBA{R: channel(p, red), G: channel(p, green), B: channel(p, blue), A: 255}
			case 16:
				p := uint32(binary.LittleEndian.Uint16(line[x*2:]))
				c = color.RGBA{R: channel(p, red), G: channel(p, green), B: channel(p, blue), A: 255}
			default:
				// packed pixels with the first pixel in the least
				// significant bits of each byte
				bit := x * int(bpp)
				p := uint32(line[bit/8]>>(bit%8)) & (1<<bpp - 1)
				g := uint8(p * 255 / (1<<bpp - 1))
				c = color.RGBA{R: g, G: g, B: g, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	return img, nil
}

// scale a colour channel to eight bits.
func channel(p uint32, f mode.Bitfield) uint8 {
	mask := uint32(1)<<f.Length - 1
	return uint8((p >> f.Offset & mask) * 255 / mask)
}
