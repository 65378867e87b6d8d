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

// Package lcdc is the driver core for the FTLCDC100 LCD controller. The
// Controller type ties together the subpackages:
//
//	mode         validation of a requested display mode
//	timing       conversion of a mode to timing register words
//	framebuffer  sizing and replacement of the pixel memory
//	pan          moving the visible area within the pixel memory
//	status       decoding and acknowledging interrupt status
//
// The hardware is reached through the bus.Bus interface. The sim package
// provides a simulation of the register block and of physically contiguous
// memory, which is what the tests use. The host package maps the real
// register block.
//
// A controller is created with NewController(), which performs the probe
// sequence and programs the panel's own mode:
//
//	ctrl, err := lcdc.NewController(hw, clock, mem, prefs)
//
// The mode can then be changed with SetMode(). Only the virtual height,
// colour depth and timing values can change. The resolution is fixed by the
// panel.
//
// The host must call PollEvents() (or ServiceInterrupt()) when the
// controller raises an interrupt. Replaced framebuffers are released by
// PollEvents() once the hardware has finished with them.
package lcdc
