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
	"sync"

	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
)

// Write is an entry in the write log of the Hardware type.
type Write struct {
	Reg  registers.Offset
	Data uint32
}

// Hardware simulates the register block of the display controller. It
// implements the bus.Bus interface.
type Hardware struct {
	crit sync.Mutex

	regs map[registers.Offset]uint32

	// interrupt status before it is masked by the enable register
	raw uint32

	// every write in the order it was made
	writes []Write

	// the frame base seen at the end of the previous frame
	scanBase uint32

	// signalled whenever an enabled interrupt is raised
	irq chan struct{}
}

// NewHardware is the preferred method of initialisation for the Hardware
// type.
func NewHardware() *Hardware {
	return &Hardware{
		regs: make(map[registers.Offset]uint32),
		irq:  make(chan struct{}, 1),
	}
}

// Read implements the bus.Bus interface.
func (h *Hardware) Read(reg registers.Offset) uint32 {
	h.crit.Lock()
	defer h.crit.Unlock()

	switch reg {
	case registers.IntStatus:
		return h.raw & h.regs[registers.IntEnable]
	case registers.IntClear:
		return 0
	}
	return h.regs[reg]
}

// Write implements the bus.Bus interface.
func (h *Hardware) Write(reg registers.Offset, data uint32) {
	h.crit.Lock()
	defer h.crit.Unlock()

	h.writes = append(h.writes, Write{Reg: reg, Data: data})

	switch reg {
	case registers.IntClear:
		h.raw &^= data
	case registers.IntStatus:
		// read only
	case registers.IntEnable:
		h.regs[reg] = data & registers.IntMask
		h.signal()
	default:
		h.regs[reg] = data
	}
}

// Writes returns a copy of the write log.
func (h *Hardware) Writes() []Write {
	h.crit.Lock()
	defer h.crit.Unlock()
	w := make([]Write, len(h.writes))
	copy(w, h.writes)
	return w
}

// ClearWrites empties the write log.
func (h *Hardware) ClearWrites() {
	h.crit.Lock()
	defer h.crit.Unlock()
	h.writes = h.writes[:0]
}

// Raise interrupt status bits. The interrupt is signalled if any of the bits
// are enabled.
func (h *Hardware) Raise(bits uint32) {
	h.crit.Lock()
	defer h.crit.Unlock()
	h.raw |= bits & registers.IntMask
	h.signal()
}

// Pending returns the interrupt status bits before masking.
func (h *Hardware) Pending() uint32 {
	h.crit.Lock()
	defer h.crit.Unlock()
	return h.raw
}

// Interrupt returns the channel that is signalled when an enabled interrupt
// is raised. The channel is buffered so a signal is never lost but many
// raised interrupts may be seen as one signal.
func (h *Hardware) Interrupt() <-chan struct{} {
	return h.irq
}

// must be called with the critical section locked.
func (h *Hardware) signal() {
	if h.raw&h.regs[registers.IntEnable] == 0 {
		return
	}
	select {
	case h.irq <- struct{}{}:
	default:
	}
}

// Frame simulates the end of a frame. If the display is enabled the
// vertical status interrupt is raised. If the frame base was changed during
// the frame then the next base interrupt is also raised.
//
// Returns the frame base that was used for the frame.
func (h *Hardware) Frame() uint32 {
	h.crit.Lock()
	defer h.crit.Unlock()

	if h.regs[registers.Control]&registers.ControlEnable == 0 {
		return h.scanBase
	}

	h.raw |= registers.IntVStatus
	if base := h.regs[registers.FrameBase]; base != h.scanBase {
		h.scanBase = base
		h.raw |= registers.IntNextBase
	}
	h.signal()

	return h.scanBase
}
