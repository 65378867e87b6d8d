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

package framebuffer_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/ftlcdc/curated"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/framebuffer"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/mode"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/sim"
	"github.com/jetsetilly/ftlcdc/test"
)

func geometry(yresVirtual uint32) mode.DisplayMode {
	return mode.DisplayMode{
		XRes: 320, YRes: 240, XResVirtual: 320, YResVirtual: yresVirtual,
		BitsPerPixel: 16,
	}
}

func zeroed(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// a clock that only moves when told to
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

func TestRequiredBytes(t *testing.T) {
	test.ExpectEquality(t, framebuffer.RequiredBytes(geometry(480)), uint32(307200))
	test.ExpectEquality(t, framebuffer.PreallocatedBytes(geometry(240), 2), uint32(307200))
	test.ExpectEquality(t, framebuffer.FixedCapacity(0), framebuffer.FixedCapacity(1))
	test.ExpectEquality(t, framebuffer.FixedCapacity(2).String(), "fixed (x2)")
	test.ExpectEquality(t, framebuffer.GrowOnDemand.String(), "grow")
}

func TestGrowFromNothing(t *testing.T) {
	mem := sim.NewMemory(0)
	s := framebuffer.NewSizer(mem, framebuffer.GrowOnDemand)

	var repointed []uint64
	grown, err := s.Ensure(geometry(240), func(phys uint64) {
		repointed = append(repointed, phys)
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, grown, true)

	// exactly the required number of bytes, cleared
	test.DemandEquality(t, len(mem.Allocations()), 1)
	test.ExpectEquality(t, mem.Allocations()[0], 153600)
	test.ExpectEquality(t, s.Capacity(), uint32(153600))
	test.ExpectEquality(t, len(s.Active().Bytes()), 153600)
	test.ExpectEquality(t, zeroed(s.Active().Bytes()), true)

	// frame base points to the new buffer and nothing was released
	test.DemandEquality(t, len(repointed), 1)
	test.ExpectEquality(t, repointed[0], s.Active().PhysAddr())
	test.ExpectEquality(t, s.Retired(), 0)
	test.ExpectEquality(t, mem.Frees(), 0)
}

func TestGrow(t *testing.T) {
	mem := sim.NewMemory(0)
	s := framebuffer.NewSizer(mem, framebuffer.GrowOnDemand)
	clk := &clock{t: time.Unix(0, 0)}
	s.SetTimeSource(clk.now)

	_, err := s.Ensure(geometry(480), nil)
	test.DemandSuccess(t, err)
	first := s.Active()

	// smaller mode does not need a new buffer
	grown, err := s.Ensure(geometry(240), func(uint64) {
		t.Errorf("repoint should not be called")
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, grown, false)
	test.ExpectEquality(t, s.Active(), first)

	// larger mode
	var repointed uint64
	grown, err = s.Ensure(geometry(960), func(phys uint64) {
		repointed = phys

		// the old buffer is still live when the frame base is changed
		test.ExpectEquality(t, mem.Live(), 2)
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, grown, true)
	test.ExpectInequality(t, s.Active(), first)
	test.ExpectEquality(t, repointed, s.Active().PhysAddr())
	test.ExpectEquality(t, s.Capacity(), uint32(320*960*2))

	// old buffer is retired not released
	test.ExpectEquality(t, s.Retired(), 1)
	test.ExpectEquality(t, mem.Live(), 2)

	// not yet
	clk.t = clk.t.Add(framebuffer.DefaultGrace - time.Millisecond)
	test.ExpectEquality(t, s.Reap(), 0)
	test.ExpectEquality(t, mem.Live(), 2)

	clk.t = clk.t.Add(time.Millisecond)
	test.ExpectEquality(t, s.Reap(), 1)
	test.ExpectEquality(t, s.Retired(), 0)
	test.ExpectEquality(t, s.Released(), 1)
	test.ExpectEquality(t, mem.Live(), 1)
}

func TestFramePeriodGrace(t *testing.T) {
	mem := sim.NewMemory(0)
	s := framebuffer.NewSizer(mem, framebuffer.GrowOnDemand)
	clk := &clock{t: time.Unix(0, 0)}
	s.SetTimeSource(clk.now)
	s.SetFramePeriod(50 * time.Millisecond)

	_, err := s.Ensure(geometry(240), nil)
	test.DemandSuccess(t, err)
	_, err = s.Ensure(geometry(480), nil)
	test.DemandSuccess(t, err)

	// the frame period is longer than the grace period
	clk.t = clk.t.Add(framebuffer.DefaultGrace)
	test.ExpectEquality(t, s.Reap(), 0)
	clk.t = clk.t.Add(30 * time.Millisecond)
	test.ExpectEquality(t, s.Reap(), 1)

	// a longer grace period wins over the frame period
	s.SetGrace(time.Second)
	_, err = s.Ensure(geometry(960), nil)
	test.DemandSuccess(t, err)
	clk.t = clk.t.Add(500 * time.Millisecond)
	test.ExpectEquality(t, s.Reap(), 0)
	clk.t = clk.t.Add(500 * time.Millisecond)
	test.ExpectEquality(t, s.Reap(), 1)
}

func TestBaseUpdated(t *testing.T) {
	mem := sim.NewMemory(0)
	s := framebuffer.NewSizer(mem, framebuffer.GrowOnDemand)
	s.SetGrace(time.Hour)

	_, err := s.Ensure(geometry(240), nil)
	test.DemandSuccess(t, err)
	_, err = s.Ensure(geometry(480), nil)
	test.DemandSuccess(t, err)
	_, err = s.Ensure(geometry(960), nil)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, s.Retired(), 2)
	test.ExpectEquality(t, s.Reap(), 0)

	// a base update reported by the first status read after the buffers
	// were retired may have been latched before the repoint
	mark := s.Mark()
	test.ExpectEquality(t, s.BaseUpdated(mark), 0)
	test.ExpectEquality(t, s.Retired(), 2)

	// a later status read reports the new frame base
	mark = s.Mark()
	test.ExpectEquality(t, s.BaseUpdated(mark), 2)
	test.ExpectEquality(t, s.Retired(), 0)
	test.ExpectEquality(t, mem.Live(), 1)
	test.ExpectEquality(t, s.BaseUpdated(s.Mark()), 0)
}

func TestBaseUpdatedEpochs(t *testing.T) {
	mem := sim.NewMemory(0)
	s := framebuffer.NewSizer(mem, framebuffer.GrowOnDemand)
	s.SetGrace(time.Hour)

	_, err := s.Ensure(geometry(240), nil)
	test.DemandSuccess(t, err)
	_, err = s.Ensure(geometry(480), nil)
	test.DemandSuccess(t, err)

	first := s.Mark()

	// retired after the status was read
	_, err = s.Ensure(geometry(960), nil)
	test.DemandSuccess(t, err)

	// only the buffer retired before the first read is released
	test.ExpectEquality(t, s.BaseUpdated(s.Mark()), 1)
	test.ExpectEquality(t, s.Retired(), 1)

	// an old mark releases nothing more
	test.ExpectEquality(t, s.BaseUpdated(first), 0)
	test.ExpectEquality(t, s.BaseUpdated(s.Mark()), 1)
	test.ExpectEquality(t, mem.Live(), 1)
}

func TestOutOfMemory(t *testing.T) {
	mem := sim.NewMemory(200000)
	s := framebuffer.NewSizer(mem, framebuffer.GrowOnDemand)

	_, err := s.Ensure(geometry(240), nil)
	test.DemandSuccess(t, err)
	active := s.Active()
	phys := active.PhysAddr()

	// the new buffer and the old buffer cannot both exist
	grown, err := s.Ensure(geometry(480), func(uint64) {
		t.Errorf("repoint should not be called")
	})
	test.ExpectEquality(t, grown, false)
	test.ExpectEquality(t, curated.Is(err, framebuffer.OutOfMemory), true)
	test.ExpectEquality(t, s.Active(), active)
	test.ExpectEquality(t, s.Active().PhysAddr(), phys)
	test.ExpectEquality(t, s.Capacity(), uint32(153600))
	test.ExpectEquality(t, s.Retired(), 0)
	test.ExpectEquality(t, mem.Live(), 1)
}

func TestFixedCapacity(t *testing.T) {
	mem := sim.NewMemory(0)
	s := framebuffer.NewSizer(mem, framebuffer.FixedCapacity(2))

	var repointed uint64
	err := s.Preallocate(geometry(240), func(phys uint64) {
		repointed = phys
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, s.Capacity(), uint32(307200))
	test.ExpectEquality(t, repointed, s.Active().PhysAddr())
	test.ExpectEquality(t, zeroed(s.Active().Bytes()), true)

	// any mode within the capacity uses the same buffer
	for _, y := range []uint32{240, 241, 480} {
		grown, err := s.Ensure(geometry(y), nil)
		test.ExpectSuccess(t, err, y)
		test.ExpectEquality(t, grown, false, y)
	}

	// beyond the capacity the buffer does not grow
	grown, err := s.Ensure(geometry(500), nil)
	test.ExpectEquality(t, grown, false)
	test.ExpectEquality(t, curated.Is(err, framebuffer.CapacityReached), true)
	test.ExpectEquality(t, len(mem.Allocations()), 1)
}

func TestClose(t *testing.T) {
	mem := sim.NewMemory(0)
	s := framebuffer.NewSizer(mem, framebuffer.GrowOnDemand)
	s.SetGrace(time.Hour)

	_, err := s.Ensure(geometry(240), nil)
	test.DemandSuccess(t, err)
	_, err = s.Ensure(geometry(480), nil)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, s.Close())
	test.ExpectEquality(t, mem.Live(), 0)
	test.ExpectEquality(t, mem.InUse(), 0)
	test.ExpectEquality(t, s.Capacity(), uint32(0))
	test.ExpectEquality(t, s.Active() == nil, true)

	// closing twice is harmless
	test.ExpectSuccess(t, s.Close())
}
