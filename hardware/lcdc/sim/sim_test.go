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

package sim_test

import (
	"encoding/binary"
	"image/color"
	"testing"

	"periph.io/x/conn/v3/physic"

	"github.com/jetsetilly/ftlcdc/hardware/lcdc/mode"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/sim"
	"github.com/jetsetilly/ftlcdc/test"
)

func TestMemory(t *testing.T) {
	mem := sim.NewMemory(10000)

	a, err := mem.Alloc(100)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, a.PhysAddr(), uint64(sim.BaseAddress))
	test.ExpectEquality(t, len(a.Bytes()), 100)
	test.ExpectEquality(t, a.Bytes()[0], byte(sim.Garbage))

	// physical addresses are page aligned
	b, err := mem.Alloc(5000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.PhysAddr(), uint64(sim.BaseAddress+sim.PageSize))

	// limit reached
	_, err = mem.Alloc(5000)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, mem.InUse(), 5100)

	_, err = mem.Alloc(0)
	test.ExpectFailure(t, err)

	// lookup by address inside a block
	d, ok := mem.Lookup(b.PhysAddr() + 10)
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, len(d), 4990)
	_, ok = mem.Lookup(b.PhysAddr() + 5000)
	test.ExpectEquality(t, ok, false)

	test.ExpectSuccess(t, a.Close())
	test.ExpectFailure(t, a.Close())
	test.ExpectEquality(t, mem.Live(), 1)
	test.ExpectEquality(t, mem.Frees(), 1)
	test.ExpectEquality(t, len(mem.Allocations()), 2)

	_, ok = mem.Lookup(a.PhysAddr())
	test.ExpectEquality(t, ok, false)
}

func TestHardware(t *testing.T) {
	hw := sim.NewHardware()

	hw.Write(registers.HTiming, 0x1234)
	test.ExpectEquality(t, hw.Read(registers.HTiming), uint32(0x1234))

	// status is read only and masked by the enable register
	hw.Write(registers.IntStatus, 0xff)
	test.ExpectEquality(t, hw.Read(registers.IntStatus), uint32(0))
	hw.Raise(registers.IntBusError)
	test.ExpectEquality(t, hw.Read(registers.IntStatus), uint32(0))

	select {
	case <-hw.Interrupt():
		t.Errorf("masked interrupt should not be signalled")
	default:
	}

	hw.Write(registers.IntEnable, registers.IntBusError)
	test.ExpectEquality(t, hw.Read(registers.IntStatus), uint32(registers.IntBusError))

	select {
	case <-hw.Interrupt():
	default:
		t.Errorf("enabling a pending interrupt should signal")
	}

	hw.Write(registers.IntClear, registers.IntBusError)
	test.ExpectEquality(t, hw.Read(registers.IntStatus), uint32(0))
	test.ExpectEquality(t, hw.Pending(), uint32(0))
	test.ExpectEquality(t, len(hw.Writes()), 4)
}

func TestClock(t *testing.T) {
	f, err := sim.Clock(sim.DefaultClock).ReferenceClock()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, f, 66*physic.MegaHertz)

	_, err = sim.Clock(0).ReferenceClock()
	test.ExpectFailure(t, err)
}

func TestScanout(t *testing.T) {
	hw := sim.NewHardware()
	mem := sim.NewMemory(0)

	_, err := sim.Scanout(hw, mem, mode.RedHigh)
	test.ExpectFailure(t, err)

	// a 16x2 display at 16bpp
	buf, err := mem.Alloc(16 * 2 * 2)
	test.DemandSuccess(t, err)
	binary.LittleEndian.PutUint16(buf.Bytes()[0:], 0xf800)
	binary.LittleEndian.PutUint16(buf.Bytes()[2:], 0x07e0)
	binary.LittleEndian.PutUint16(buf.Bytes()[4:], 0x001f)

	hw.Write(registers.HTiming, registers.HTimingFields{PL: 0}.Encode())
	hw.Write(registers.VTiming, registers.VTimingFields{LF: 1}.Encode())
	hw.Write(registers.FrameBase, registers.EncodeFrameBase(buf.PhysAddr()))
	hw.Write(registers.Control, registers.ControlFields{Enable: true, BPP: registers.BPP16}.Encode())

	img, err := sim.Scanout(hw, mem, mode.RedHigh)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), 16)
	test.ExpectEquality(t, img.Bounds().Dy(), 2)
	test.ExpectEquality(t, img.RGBAAt(0, 0), color.RGBA{R: 255, A: 255})
	test.ExpectEquality(t, img.RGBAAt(1, 0), color.RGBA{G: 255, A: 255})
	test.ExpectEquality(t, img.RGBAAt(2, 0), color.RGBA{B: 255, A: 255})

	img, err = sim.Scanout(hw, mem, mode.RedLow)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.RGBAAt(0, 0), color.RGBA{B: 255, A: 255})

	// frame extends beyond the buffer
	hw.Write(registers.VTiming, registers.VTimingFields{LF: 2}.Encode())
	_, err = sim.Scanout(hw, mem, mode.RedHigh)
	test.ExpectFailure(t, err)
}
