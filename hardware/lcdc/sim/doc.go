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

// Package sim is a simulation of the display controller hardware. It is used
// by the tests of the lcdc packages and by the ftlcdc command when no real
// hardware is available.
//
// Hardware simulates the register block. Interrupt status bits are raised by
// Raise() or by Frame(), which simulates the end of a scanned out frame.
// Memory simulates contiguous physical memory and Clock the reference clock.
//
// The simulation is not cycle accurate. It only models what is visible
// through the register block: stored register values, masked interrupt status
// and clear-on-write acknowledgement.
package sim
