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

// Package framebuffer manages the memory that the display controller scans
// out from.
//
// Memory is obtained from an Allocator, which on real hardware returns
// physically contiguous memory suitable for DMA. How much memory is
// allocated depends on the Policy. With the GrowOnDemand policy the buffer
// is replaced by a larger one whenever a mode requires more memory than is
// available. With a FixedCapacity policy the buffer is allocated once, large
// enough for a multiple of the panel height, and never replaced.
//
// A replaced buffer is not released immediately because the hardware may
// still be scanning out of it. It is retired until one frame period (or a
// minimum grace period, whichever is longer) has passed, or until the
// hardware reports a new frame base in a status read that followed the
// repoint. Retired buffers are released by Reap() and BaseUpdated(). No
// goroutine is started by this package.
package framebuffer
