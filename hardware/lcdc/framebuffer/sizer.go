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
	"sync"
	"time"

	"github.com/jetsetilly/ftlcdc/curated"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/mode"
	"github.com/jetsetilly/ftlcdc/logger"
)

// Sentinel error patterns.
const (
	OutOfMemory     = "framebuffer: out of memory (%d bytes): %v"
	CapacityReached = "framebuffer: fixed capacity reached (%d bytes required, %d available)"
)

// DefaultGrace is the shortest time a retired buffer is kept before it is
// released.
const DefaultGrace = 20 * time.Millisecond

// Sizer makes sure the display has enough memory for the current mode.
//
// The methods that change the active buffer (Ensure, Preallocate, Close) must
// not be called concurrently. The methods that release retired buffers
// (Reap, BaseUpdated) can be called at any time from any goroutine.
type Sizer struct {
	alloc  Allocator
	policy Policy
	active *Buffer

	// retired buffers and the earliest time they can be released
	retCrit    sync.Mutex
	retired    []retiredBuffer
	grace      time.Duration
	period     time.Duration
	now        func() time.Time
	released   int
	allocCount int

	// advanced by Mark()
	epoch Epoch
}

// Epoch counts the reads of the interrupt status. A buffer retired in one
// epoch can only be released by a base update reported in a later epoch.
type Epoch uint64

type retiredBuffer struct {
	buf      *Buffer
	deadline time.Time
	epoch    Epoch
}

// NewSizer is the preferred method of initialisation for the Sizer type.
func NewSizer(alloc Allocator, policy Policy) *Sizer {
	return &Sizer{
		alloc:  alloc,
		policy: policy,
		grace:  DefaultGrace,
		now:    time.Now,
	}
}

func (s *Sizer) String() string {
	if s.active == nil {
		return fmt.Sprintf("%s: no buffer", s.policy)
	}
	return fmt.Sprintf("%s: %s", s.policy, s.active)
}

// Policy returns the policy of the Sizer.
func (s *Sizer) Policy() Policy {
	return s.policy
}

// Active returns the buffer currently used by the display. Returns nil if no
// buffer has been allocated.
func (s *Sizer) Active() *Buffer {
	return s.active
}

// Capacity returns the size of the active buffer in bytes.
func (s *Sizer) Capacity() uint32 {
	if s.active == nil {
		return 0
	}
	return s.active.size
}

// Allocations returns the number of buffers allocated by the Sizer.
func (s *Sizer) Allocations() int {
	return s.allocCount
}

// SetGrace sets the minimum time a retired buffer is kept. A value of zero
// restores the default.
func (s *Sizer) SetGrace(d time.Duration) {
	s.retCrit.Lock()
	defer s.retCrit.Unlock()
	if d <= 0 {
		d = DefaultGrace
	}
	s.grace = d
}

// SetFramePeriod sets the time taken by the hardware to scan out one frame.
// A retired buffer is kept for at least this long.
func (s *Sizer) SetFramePeriod(d time.Duration) {
	s.retCrit.Lock()
	defer s.retCrit.Unlock()
	s.period = d
}

// SetTimeSource replaces the function used to get the current time.
func (s *Sizer) SetTimeSource(now func() time.Time) {
	s.retCrit.Lock()
	defer s.retCrit.Unlock()
	s.now = now
}

// allocate a zeroed buffer.
func (s *Sizer) allocate(size uint32) (*Buffer, error) {
	mem, err := s.alloc.Alloc(int(size))
	if err != nil {
		return nil, curated.Errorf(OutOfMemory, size, err)
	}
	if len(mem.Bytes()) < int(size) {
		_ = mem.Close()
		return nil, curated.Errorf(OutOfMemory, size, fmt.Errorf("allocator returned %d bytes", len(mem.Bytes())))
	}

	b := &Buffer{mem: mem, size: size}
	clear(b.Bytes())
	s.allocCount++

	return b, nil
}

// replace the active buffer. repoint is called with the address of the new
// buffer before the old buffer is retired.
func (s *Sizer) replace(b *Buffer, repoint func(phys uint64)) {
	old := s.active
	s.active = b
	if repoint != nil {
		repoint(b.PhysAddr())
	}
	if old != nil {
		s.retire(old)
	}
}

// Preallocate the buffer for the FixedCapacity policy. The buffer is large
// enough for the mode with a virtual height of Multiplier times the panel
// height.
//
// If the policy is GrowOnDemand then Preallocate is the same as Ensure.
func (s *Sizer) Preallocate(m mode.DisplayMode, repoint func(phys uint64)) error {
	if !s.policy.Fixed {
		_, err := s.Ensure(m, repoint)
		return err
	}

	b, err := s.allocate(PreallocatedBytes(m, s.policy.Multiplier))
	if err != nil {
		return err
	}
	s.replace(b, repoint)

	return nil
}

// Ensure there is enough memory for the mode. If a new buffer is allocated
// repoint is called with its address and the previous buffer is retired.
// Returns true if a new buffer was allocated.
//
// If there is an error the active buffer is unchanged and repoint is not
// called.
func (s *Sizer) Ensure(m mode.DisplayMode, repoint func(phys uint64)) (bool, error) {
	req := RequiredBytes(m)
	if req <= s.Capacity() {
		return false, nil
	}

	if s.policy.Fixed {
		return false, curated.Errorf(CapacityReached, req, s.Capacity())
	}

	b, err := s.allocate(req)
	if err != nil {
		return false, err
	}
	s.replace(b, repoint)

	return true, nil
}

func (s *Sizer) retire(b *Buffer) {
	s.retCrit.Lock()
	defer s.retCrit.Unlock()

	wait := max(s.period, s.grace)
	s.retired = append(s.retired, retiredBuffer{
		buf:      b,
		deadline: s.now().Add(wait),
		epoch:    s.epoch,
	})
}

// Retired returns the number of buffers waiting to be released.
func (s *Sizer) Retired() int {
	s.retCrit.Lock()
	defer s.retCrit.Unlock()
	return len(s.retired)
}

// Released returns the number of retired buffers that have been released.
func (s *Sizer) Released() int {
	s.retCrit.Lock()
	defer s.retCrit.Unlock()
	return s.released
}

// Reap releases retired buffers that have passed their deadline. Returns the
// number of buffers released.
func (s *Sizer) Reap() int {
	s.retCrit.Lock()
	defer s.retCrit.Unlock()

	now := s.now()
	keep := s.retired[:0]
	n := 0
	for _, r := range s.retired {
		if now.Before(r.deadline) {
			keep = append(keep, r)
			continue
		}
		s.release(r.buf)
		n++
	}
	clear(s.retired[len(keep):])
	s.retired = keep

	return n
}

// Mark must be called immediately before the interrupt status is read and
// acknowledged. The returned Epoch is the argument to BaseUpdated() if the
// status shows that the hardware has loaded a new frame base.
func (s *Sizer) Mark() Epoch {
	s.retCrit.Lock()
	defer s.retCrit.Unlock()
	e := s.epoch
	s.epoch++
	return e
}

// BaseUpdated should be called when the hardware indicates that it has
// loaded a new frame base. The indication may have been latched before the
// most recent repoint so only buffers retired before the previous Mark()
// are released. The argument is the value returned by Mark() for the status
// read that reported the update.
//
// Returns the number of buffers released.
func (s *Sizer) BaseUpdated(mark Epoch) int {
	s.retCrit.Lock()
	defer s.retCrit.Unlock()

	keep := s.retired[:0]
	n := 0
	for _, r := range s.retired {
		if r.epoch >= mark {
			keep = append(keep, r)
			continue
		}
		s.release(r.buf)
		n++
	}
	clear(s.retired[len(keep):])
	s.retired = keep

	return n
}

// must be called with retCrit locked.
func (s *Sizer) release(b *Buffer) {
	if err := b.release(); err != nil {
		logger.Log(logger.Allow, "framebuffer", err)
	}
	s.released++
}

// Close releases the active buffer and all retired buffers. The display
// must be disabled before calling Close.
func (s *Sizer) Close() error {
	s.retCrit.Lock()
	for _, r := range s.retired {
		s.release(r.buf)
	}
	clear(s.retired)
	s.retired = s.retired[:0]
	s.retCrit.Unlock()

	if s.active == nil {
		return nil
	}

	err := s.active.release()
	s.active = nil

	return err
}
