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

// Package mode describes a display mode and decides whether a requested
// mode can be used with the display controller.
//
// Validate() is the only function that changes the fields of a mode. The
// returned mode has the colour field layout filled in and any adjustable
// timing field rounded to a value the hardware can represent. Callers should
// treat a DisplayMode returned by Validate() as read-only.
//
// The panel presets in this package are the modes of the panels the
// controller has been used with. A panel's mode is the starting point for
// any mode change because the resolution of a panel can never change.
package mode
