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

// Package status decodes and acknowledges the interrupt status of the
// display controller.
//
// PollAndAck() is the only function that touches the interrupt status and
// clear registers. It never touches the timing or frame base registers so it
// is safe to call while a mode change is in progress.
package status

import (
	"strings"

	"github.com/jetsetilly/ftlcdc/hardware/lcdc/bus"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
)

// Event is a single status event.
type Event uint32

// List of valid Event values. The values are the bits of the interrupt
// status register.
const (
	Underrun          Event = registers.IntUnderrun
	BufferBaseUpdated Event = registers.IntNextBase
	VerticalSync      Event = registers.IntVStatus
	BusError          Event = registers.IntBusError
)

// all events in the order they are listed.
var all = []Event{Underrun, BufferBaseUpdated, VerticalSync, BusError}

func (e Event) String() string {
	switch e {
	case Underrun:
		return "underrun"
	case BufferBaseUpdated:
		return "base updated"
	case VerticalSync:
		return "vertical sync"
	case BusError:
		return "bus error"
	}
	return "unknown event"
}

// Events is a set of Event values.
type Events uint32

// Has returns true if the event is in the set.
func (ev Events) Has(e Event) bool {
	return uint32(ev)&uint32(e) == uint32(e)
}

// Empty returns true if there are no events in the set.
func (ev Events) Empty() bool {
	return ev == 0
}

// List returns the events in the set.
func (ev Events) List() []Event {
	var l []Event
	for _, e := range all {
		if ev.Has(e) {
			l = append(l, e)
		}
	}
	return l
}

func (ev Events) String() string {
	if ev.Empty() {
		return "none"
	}
	s := make([]string, 0, len(all))
	for _, e := range ev.List() {
		s = append(s, e.String())
	}
	return strings.Join(s, ", ")
}

// Monitor reads and acknowledges the interrupt status.
type Monitor struct {
	bus bus.Bus
}

// NewMonitor is the preferred method of initialisation for the Monitor
// type.
func NewMonitor(b bus.Bus) *Monitor {
	return &Monitor{bus: b}
}

// PollAndAck reads the interrupt status once, acknowledges every bit that
// was set by writing the same pattern to the clear register, and returns
// the events. It is safe to call when no events are pending.
func (m *Monitor) PollAndAck() Events {
	st := m.bus.Read(registers.IntStatus)
	m.bus.Write(registers.IntClear, st)
	return Events(st & registers.IntMask)
}
