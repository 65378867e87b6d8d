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

// Package sdlpanel shows the image scanned out of the simulated controller in
// an SDL window. It is used by the PREVIEW mode of ftlcdc to check the effect
// of a mode change or pan without real hardware.
//
// SDL functions must be called from the main thread. The caller should lock
// the goroutine to the thread with runtime.LockOSThread() before creating the
// Preview.
package sdlpanel
