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

package host

import (
	"fmt"

	"periph.io/x/host/v3/pmem"

	"github.com/jetsetilly/ftlcdc/curated"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/framebuffer"
)

// DMA allocates physically contiguous memory that the controller can scan
// out of. It implements the framebuffer.Allocator interface.
type DMA struct{}

// Alloc implements the framebuffer.Allocator interface. The size is rounded
// up to a whole number of pages.
func (DMA) Alloc(size int) (framebuffer.Memory, error) {
	if size <= 0 {
		return nil, curated.Errorf(AllocationFailed, size, fmt.Errorf("invalid size"))
	}

	v, err := pmem.Alloc(pageRound(size))
	if err != nil {
		return nil, curated.Errorf(AllocationFailed, size, err)
	}

	return &dmaMem{view: v, size: size}, nil
}

type dmaMem struct {
	view *pmem.MemAlloc
	size int
}

// Bytes returns the requested number of bytes and not the rounded size of
// the allocation.
func (d *dmaMem) Bytes() []byte {
	return d.view.Bytes()[:d.size]
}

func (d *dmaMem) PhysAddr() uint64 {
	return d.view.PhysAddr()
}

func (d *dmaMem) Close() error {
	return d.view.Close()
}
