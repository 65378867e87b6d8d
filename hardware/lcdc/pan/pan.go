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

// Package pan moves the visible part of the display within the framebuffer
// by changing the frame base register. Flipping between two halves of a
// buffer that is twice the panel height is the usual way of double
// buffering.
//
// There is no range checking in this package. An offset that places the
// visible area beyond the end of the buffer is the caller's responsibility.
package pan

import (
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/bus"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
)

// Addressable is anything with a physical address. framebuffer.Buffer
// satisfies this interface.
type Addressable interface {
	PhysAddr() uint64
}

// Address returns the frame base address for the line at yOffset. The
// address is truncated to the granularity of the frame base register, so an
// offset that is not aligned results in a shifted image rather than an
// error.
func Address(buf Addressable, lineLength uint32, yOffset uint32) uint64 {
	a := buf.PhysAddr() + uint64(yOffset)*uint64(lineLength)
	return a &^ (registers.FrameBaseAlign - 1)
}

// Pan writes the frame base register so that the display starts at the line
// at yOffset. Returns the address that was written.
func Pan(b bus.Bus, buf Addressable, lineLength uint32, yOffset uint32) uint64 {
	a := Address(buf, lineLength, yOffset)
	b.Write(registers.FrameBase, registers.EncodeFrameBase(a))
	return a
}
