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
	"sync/atomic"

	"periph.io/x/host/v3/pmem"

	"github.com/jetsetilly/ftlcdc/curated"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
)

// Sentinel error patterns.
const (
	Unaligned        = "host: register base %#08x is not page aligned"
	MappingFailed    = "host: cannot map registers at %#08x: %v"
	AllocationFailed = "host: cannot allocate %d bytes: %v"
	UIOFailed        = "host: uio %s: %v"
	ClockInvalid     = "host: invalid reference clock (%s)"
	ClockUnreadable  = "host: cannot read reference clock from %s: %v"
)

// PageSize is the granularity of physical memory mappings.
const PageSize = 4096

// round size up to a multiple of PageSize.
func pageRound(size int) int {
	return (size + PageSize - 1) &^ (PageSize - 1)
}

// MMIO is the memory mapped register block of the controller. It implements
// the bus.Bus interface.
type MMIO struct {
	view *pmem.View
	regs []uint32
}

// OpenMMIO maps the register block at the physical address. The address must
// be page aligned.
func OpenMMIO(base uint64) (*MMIO, error) {
	if base%PageSize != 0 {
		return nil, curated.Errorf(Unaligned, base)
	}

	v, err := pmem.Map(base, pageRound(registers.BlockSize))
	if err != nil {
		return nil, curated.Errorf(MappingFailed, base, err)
	}

	return &MMIO{
		view: v,
		regs: v.Uint32(),
	}, nil
}

func (m *MMIO) String() string {
	return fmt.Sprintf("mmio at %#08x", m.view.PhysAddr())
}

// Read implements the bus.Bus interface.
func (m *MMIO) Read(reg registers.Offset) uint32 {
	return atomic.LoadUint32(&m.regs[reg/4])
}

// Write implements the bus.Bus interface. The write is followed by a read of
// the interrupt enable register, which forces a posted write to complete.
func (m *MMIO) Write(reg registers.Offset, data uint32) {
	atomic.StoreUint32(&m.regs[reg/4], data)
	_ = atomic.LoadUint32(&m.regs[registers.IntEnable/4])
}

// Close unmaps the register block.
func (m *MMIO) Close() error {
	m.regs = nil
	return m.view.Close()
}
