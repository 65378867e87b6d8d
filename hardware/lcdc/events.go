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

package lcdc

import (
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/status"
	"github.com/jetsetilly/ftlcdc/logger"
)

// PollEvents reads and acknowledges the interrupt status of the controller.
// Retired framebuffers are released if their grace period has expired or if
// the hardware reports a new frame base that must have been loaded after
// they were retired. A report in the first poll after a repoint may predate
// it and is not enough.
//
// Events are written to the log through a rate limiter. The events are
// returned whether or not they were logged.
func (c *Controller) PollEvents() status.Events {
	if c.closed.Load() {
		return 0
	}

	mark := c.sizer.Mark()
	ev := c.monitor.PollAndAck()
	if ev.Has(status.BufferBaseUpdated) {
		c.sizer.BaseUpdated(mark)
	}
	c.sizer.Reap()

	c.report(ev)

	return ev
}

// ServiceInterrupt is an alias for PollEvents(). It should be called by the
// host whenever the controller's interrupt line is asserted.
func (c *Controller) ServiceInterrupt() status.Events {
	return c.PollEvents()
}

func (c *Controller) report(ev status.Events) {
	debug := c.prefs.Debug.Get().(bool)

	for _, e := range ev.List() {
		switch e {
		case status.Underrun:
			logger.Log(c.limiter, "lcdc", "notice: fifo underrun")
		case status.BusError:
			logger.Log(c.limiter, "lcdc", "error: bus error")
		default:
			if debug {
				logger.Logf(c.limiter, "lcdc", "debug: %s", e)
			}
		}
	}
}
