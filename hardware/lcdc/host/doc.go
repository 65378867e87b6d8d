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

// Package host connects the lcdc package to real hardware. It requires
// access to physical memory, which usually means running as root.
//
// MMIO maps the register block and implements the bus.Bus interface. DMA
// allocates physically contiguous memory and implements the
// framebuffer.Allocator interface. FixedClock and SysfsClock implement the
// lcdc.ClockSource interface.
//
// UIO waits for interrupts through the Linux userspace I/O framework. The
// controller's interrupt line must be bound to a uio_pdrv_genirq device.
package host
