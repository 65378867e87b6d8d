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

package pan_test

import (
	"testing"

	"github.com/jetsetilly/ftlcdc/hardware/lcdc/pan"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/sim"
	"github.com/jetsetilly/ftlcdc/test"
)

type buffer uint64

func (b buffer) PhysAddr() uint64 {
	return uint64(b)
}

func TestAddress(t *testing.T) {
	buf := buffer(0x10000000)

	test.ExpectEquality(t, pan.Address(buf, 640, 0), uint64(0x10000000))
	test.ExpectEquality(t, pan.Address(buf, 640, 240), uint64(0x10000000+640*240))

	// 640 is a multiple of 64 so every line is aligned
	for y := uint32(0); y < 480; y++ {
		test.ExpectEquality(t, pan.Address(buf, 640, y), uint64(0x10000000)+uint64(y)*640, y)
	}

	// unaligned lines are truncated, not rounded
	test.ExpectEquality(t, pan.Address(buf, 100, 1), uint64(0x10000040))
	test.ExpectEquality(t, pan.Address(buf, 100, 3), uint64(0x10000100))
	test.ExpectEquality(t, pan.Address(buffer(0x1000003f), 0, 0), uint64(0x10000000))
}

func TestPan(t *testing.T) {
	hw := sim.NewHardware()
	buf := buffer(0x10000000)

	a := pan.Pan(hw, buf, 640, 240)
	test.ExpectEquality(t, a, uint64(0x10025800))

	// exactly one register write
	w := hw.Writes()
	test.DemandEquality(t, len(w), 1)
	test.ExpectEquality(t, w[0].Reg, registers.FrameBase)
	test.ExpectEquality(t, w[0].Data, uint32(0x10025800))

	// no range check at this level
	hw.ClearWrites()
	a = pan.Pan(hw, buf, 640, 10000)
	test.ExpectEquality(t, a, uint64(0x10000000+640*10000))
	test.ExpectEquality(t, len(hw.Writes()), 1)
}
