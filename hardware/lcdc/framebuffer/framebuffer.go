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

package framebuffer

import (
	"fmt"

	"github.com/jetsetilly/ftlcdc/hardware/lcdc/mode"
)

// Memory is a block of memory that the display controller can read. The
// slice returned by Bytes() is the CPU view of the memory and PhysAddr() is
// the address the controller uses.
type Memory interface {
	Bytes() []byte
	PhysAddr() uint64
	Close() error
}

// Allocator provides blocks of memory. The contents of a new block are
// undefined.
type Allocator interface {
	Alloc(size int) (Memory, error)
}

// Policy decides how much memory is allocated for a mode.
type Policy struct {
	// buffer is allocated once and never grows
	Fixed bool

	// the allocated buffer holds this many panel heights. only used if Fixed
	// is true
	Multiplier uint32
}

// GrowOnDemand allocates a new buffer whenever a mode needs more memory than
// is available.
var GrowOnDemand = Policy{}

// FixedCapacity allocates a buffer large enough for n panel heights.
func FixedCapacity(n uint32) Policy {
	if n == 0 {
		n = 1
	}
	return Policy{Fixed: true, Multiplier: n}
}

func (p Policy) String() string {
	if p.Fixed {
		return fmt.Sprintf("fixed (x%d)", p.Multiplier)
	}
	return "grow"
}

// RequiredBytes returns the amount of memory required by the mode.
func RequiredBytes(m mode.DisplayMode) uint32 {
	return m.RequiredBytes()
}

// PreallocatedBytes returns the amount of memory allocated by the
// FixedCapacity policy for the mode.
func PreallocatedBytes(m mode.DisplayMode, multiplier uint32) uint32 {
	return m.XResVirtual * multiplier * m.YRes * m.BytesPerPixel()
}

// Buffer is the memory currently used by the display.
type Buffer struct {
	mem  Memory
	size uint32
}

// Bytes returns the CPU view of the buffer.
func (b *Buffer) Bytes() []byte {
	return b.mem.Bytes()[:b.size]
}

// PhysAddr returns the address of the buffer as seen by the controller.
func (b *Buffer) PhysAddr() uint64 {
	return b.mem.PhysAddr()
}

// Len returns the size of the buffer in bytes.
func (b *Buffer) Len() uint32 {
	return b.size
}

func (b *Buffer) String() string {
	return fmt.Sprintf("%d bytes at %#08x", b.size, b.PhysAddr())
}

func (b *Buffer) release() error {
	return b.mem.Close()
}
