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

// Package bus defines how the display controller's register block is
// accessed. The real hardware is accessed through a memory mapped window (see
// the host package) and the simulation through the sim package. Both satisfy
// the Bus interface.
package bus

import (
	"fmt"
	"io"

	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
	"github.com/jetsetilly/ftlcdc/logger"
)

// Bus defines the operations on the register block. Implementations must
// complete a write before returning from Write() so that a sequence of
// writes is seen by the hardware in the order it was made.
type Bus interface {
	Read(reg registers.Offset) uint32
	Write(reg registers.Offset, data uint32)
}

// Trace wraps a Bus and logs every write.
type Trace struct {
	Bus
	perm logger.Permission
}

// NewTrace is the preferred method of initialisation for the Trace type.
func NewTrace(b Bus, perm logger.Permission) *Trace {
	return &Trace{Bus: b, perm: perm}
}

// Write implements the Bus interface.
func (t *Trace) Write(reg registers.Offset, data uint32) {
	logger.Logf(t.perm, "bus", "[%s] = %08x", reg, data)
	t.Bus.Write(reg, data)
}

// Dump writes the value of every named register to output. Reading the
// interrupt status register has no side effect so it is safe to dump while
// the display is running.
func Dump(b Bus, output io.Writer) {
	for _, reg := range registers.Named {
		w := b.Read(reg)

		var detail fmt.Stringer
		switch reg {
		case registers.HTiming:
			detail = registers.DecodeHTiming(w)
		case registers.VTiming:
			detail = registers.DecodeVTiming(w)
		case registers.ClockPolarity:
			detail = registers.DecodeClockPolarity(w)
		case registers.Control:
			detail = registers.DecodeControl(w)
		}

		if detail != nil {
			fmt.Fprintf(output, "%-15s %08x  %s\n", reg, w, detail)
		} else {
			fmt.Fprintf(output, "%-15s %08x\n", reg, w)
		}
	}
}
