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

package bus_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/ftlcdc/hardware/lcdc/bus"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/sim"
	"github.com/jetsetilly/ftlcdc/logger"
	"github.com/jetsetilly/ftlcdc/test"
)

func TestTrace(t *testing.T) {
	hw := sim.NewHardware()
	tr := bus.NewTrace(hw, logger.Allow)

	logger.Clear()
	tr.Write(registers.FrameBase, 0x10000000)
	test.ExpectEquality(t, hw.Read(registers.FrameBase), uint32(0x10000000))
	test.ExpectEquality(t, tr.Read(registers.FrameBase), uint32(0x10000000))

	w := &test.Writer{}
	logger.Tail(w, 1)
	test.ExpectEquality(t, strings.Contains(w.String(), "[FRAME_BASE] = 10000000"), true, w.String())
}

func TestDump(t *testing.T) {
	hw := sim.NewHardware()
	hw.Write(registers.HTiming, registers.HTimingFields{PL: 19, HW: 20, HFP: 5, HBP: 43}.Encode())
	hw.Write(registers.Control, 0x0929)

	w := &test.Writer{}
	bus.Dump(hw, w)

	lines := strings.Split(strings.TrimSpace(w.String()), "\n")
	test.DemandEquality(t, len(lines), len(registers.Named))
	test.ExpectEquality(t, strings.HasPrefix(lines[0], "HTIMING"), true)
	test.ExpectEquality(t, strings.HasSuffix(lines[0], "PL=19 HW=20 HFP=5 HBP=43"), true, lines[0])
	test.ExpectEquality(t, strings.HasSuffix(lines[5], "BPP=16 ENABLE TFT BGR LCD"), true, lines[5])

	// dumping has no effect on the write log
	test.ExpectEquality(t, len(hw.Writes()), 2)
}
