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

package host

import (
	"context"
	"encoding/binary"
	"os"

	"golang.org/x/sys/unix"

	"github.com/jetsetilly/ftlcdc/curated"
)

// how long a single poll of the device waits before checking whether the
// context has been cancelled. in milliseconds
const pollTimeout = 50

// UIO is a userspace I/O device for the controller's interrupt line.
type UIO struct {
	f *os.File

	// the interrupt count of the previous call to Wait()
	count uint32
}

// OpenUIO opens the UIO device. For example, /dev/uio0.
func OpenUIO(path string) (*UIO, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, curated.Errorf(UIOFailed, "open", err)
	}
	return newUIO(f), nil
}

func newUIO(f *os.File) *UIO {
	return &UIO{f: f}
}

// Enable unmasks the interrupt line. The line is masked by the kernel every
// time an interrupt is delivered so Enable must be called before each call
// to Wait().
func (u *UIO) Enable() error {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], 1)
	if _, err := unix.Write(int(u.f.Fd()), b[:]); err != nil {
		return curated.Errorf(UIOFailed, "enable", err)
	}
	return nil
}

// Wait blocks until an interrupt is delivered or the context is done. It
// returns the number of interrupts since the previous call.
func (u *UIO) Wait(ctx context.Context) (uint32, error) {
	fd := int(u.f.Fd())
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		n, err := unix.Poll(fds, pollTimeout)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, curated.Errorf(UIOFailed, "poll", err)
		}
		if n == 0 {
			continue
		}

		var b [4]byte
		if _, err := unix.Read(fd, b[:]); err != nil {
			return 0, curated.Errorf(UIOFailed, "read", err)
		}

		count := binary.NativeEndian.Uint32(b[:])
		missed := count - u.count
		u.count = count

		return missed, nil
	}
}

// Close the UIO device.
func (u *UIO) Close() error {
	return u.f.Close()
}
