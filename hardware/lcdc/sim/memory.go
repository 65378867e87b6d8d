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
	"fmt"
	"sync"

	"github.com/jetsetilly/ftlcdc/hardware/lcdc/framebuffer"
)

// BaseAddress is the physical address of the first block allocated by
// Memory.
const BaseAddress = 0x10000000

// PageSize is the granularity of the simulated physical memory.
const PageSize = 4096

// Garbage is the value of every byte in a newly allocated block. Real memory
// is not guaranteed to be cleared so neither is simulated memory.
const Garbage = 0xa5

// Memory simulates physically contiguous memory. It implements the
// framebuffer.Allocator interface.
type Memory struct {
	crit sync.Mutex

	// next physical address to be allocated
	next uint64

	// maximum number of bytes that can be allocated at once. zero is no
	// limit
	limit int
	inUse int

	live   map[uint64]*block
	allocs []int
	frees  int
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The limit argument is the maximum number of bytes that can be in use at
// once. A limit of zero means there is no limit.
func NewMemory(limit int) *Memory {
	return &Memory{
		next:  BaseAddress,
		limit: limit,
		live:  make(map[uint64]*block),
	}
}

// SetLimit changes the maximum number of bytes that can be in use at once.
func (mem *Memory) SetLimit(limit int) {
	mem.crit.Lock()
	defer mem.crit.Unlock()
	mem.limit = limit
}

// Alloc implements the framebuffer.Allocator interface.
func (mem *Memory) Alloc(size int) (framebuffer.Memory, error) {
	mem.crit.Lock()
	defer mem.crit.Unlock()

	if size <= 0 {
		return nil, fmt.Errorf("sim: invalid allocation size (%d)", size)
	}
	if mem.limit > 0 && mem.inUse+size > mem.limit {
		return nil, fmt.Errorf("sim: allocation of %d bytes exceeds limit (%d of %d in use)", size, mem.inUse, mem.limit)
	}

	b := &block{
		mem:  mem,
		data: make([]byte, size),
		phys: mem.next,
	}
	for i := range b.data {
		b.data[i] = Garbage
	}

	mem.next += uint64((size + PageSize - 1) / PageSize * PageSize)
	mem.inUse += size
	mem.live[b.phys] = b
	mem.allocs = append(mem.allocs, size)

	return b, nil
}

// Allocations returns the size of every allocation made, in order.
func (mem *Memory) Allocations() []int {
	mem.crit.Lock()
	defer mem.crit.Unlock()
	a := make([]int, len(mem.allocs))
	copy(a, mem.allocs)
	return a
}

// Frees returns the number of blocks that have been closed.
func (mem *Memory) Frees() int {
	mem.crit.Lock()
	defer mem.crit.Unlock()
	return mem.frees
}

// Live returns the number of blocks that have not been closed.
func (mem *Memory) Live() int {
	mem.crit.Lock()
	defer mem.crit.Unlock()
	return len(mem.live)
}

// InUse returns the number of bytes in blocks that have not been closed.
func (mem *Memory) InUse() int {
	mem.crit.Lock()
	defer mem.crit.Unlock()
	return mem.inUse
}

// Lookup returns the bytes of live memory from the physical address to the
// end of the block containing it. Returns false if the address is not in a
// live block.
func (mem *Memory) Lookup(phys uint64) ([]byte, bool) {
	mem.crit.Lock()
	defer mem.crit.Unlock()

	for base, b := range mem.live {
		if phys >= base && phys < base+uint64(len(b.data)) {
			return b.data[phys-base:], true
		}
	}
	return nil, false
}

type block struct {
	mem    *Memory
	data   []byte
	phys   uint64
	closed bool
}

func (b *block) Bytes() []byte {
	return b.data
}

func (b *block) PhysAddr() uint64 {
	return b.phys
}

func (b *block) Close() error {
	b.mem.crit.Lock()
	defer b.mem.crit.Unlock()

	if b.closed {
		return fmt.Errorf("sim: block at %#08x already closed", b.phys)
	}
	b.closed = true

	delete(b.mem.live, b.phys)
	b.mem.inUse -= len(b.data)
	b.mem.frees++

	return nil
}
