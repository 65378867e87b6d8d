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

// Package easyterm is a wrapper for "github.com/pkg/term/termios". It puts
// the terminal into cbreak mode so that single key presses can be read
// without waiting for the return key, which is how the WATCH mode of ftlcdc
// is controlled.
package easyterm

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"unsafe"

	"github.com/pkg/term/termios"
)

// Geometry is the size of the output terminal.
type Geometry struct {
	// characters
	Rows uint16
	Cols uint16

	// pixels
	X uint16
	Y uint16
}

// Terminal is an input and output file pair with the terminal attributes
// required to switch between canonical and cbreak mode.
type Terminal struct {
	input  *os.File
	output *os.File

	canAttr    syscall.Termios
	cbreakAttr syscall.Termios

	// protects geometry, which is updated by the SIGWINCH handler
	crit     sync.Mutex
	geometry Geometry

	// sig/ack channels to control signal handler
	terminateSig chan bool
	terminateAck chan bool
}

// NewTerminal is the preferred method of initialisation for the Terminal
// type. The input file must be a terminal.
func NewTerminal(input, output *os.File) (*Terminal, error) {
	if input == nil || output == nil {
		return nil, fmt.Errorf("easyterm: terminal requires an input and an output file")
	}

	pt := &Terminal{
		input:        input,
		output:       output,
		terminateSig: make(chan bool),
		terminateAck: make(chan bool),
	}

	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return nil, fmt.Errorf("easyterm: %w", err)
	}
	pt.cbreakAttr = pt.canAttr
	termios.Cfmakecbreak(&pt.cbreakAttr)

	_ = pt.UpdateGeometry()

	go func() {
		sigwinch := make(chan os.Signal, 1)
		signal.Notify(sigwinch, syscall.SIGWINCH)
		defer func() {
			signal.Stop(sigwinch)
			pt.terminateAck <- true
		}()

		for {
			select {
			case <-sigwinch:
				_ = pt.UpdateGeometry()
			case <-pt.terminateSig:
				return
			}
		}
	}()

	return pt, nil
}

// CleanUp restores canonical mode and stops the signal handler.
func (pt *Terminal) CleanUp() {
	pt.CanonicalMode()
	pt.terminateSig <- true
	<-pt.terminateAck
}

// Print writes the formatted string to the output file.
func (pt *Terminal) Print(s string, a ...any) {
	_, _ = pt.output.WriteString(fmt.Sprintf(s, a...))
	_ = pt.output.Sync()
}

// Geometry returns the most recent size of the output terminal.
func (pt *Terminal) Geometry() Geometry {
	pt.crit.Lock()
	defer pt.crit.Unlock()
	return pt.geometry
}

// UpdateGeometry gets the current dimensions (in characters and pixels) of
// the output terminal.
func (pt *Terminal) UpdateGeometry() error {
	pt.crit.Lock()
	defer pt.crit.Unlock()

	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, pt.output.Fd(), uintptr(syscall.TIOCGWINSZ), uintptr(unsafe.Pointer(&pt.geometry)))
	if errno != 0 {
		return fmt.Errorf("easyterm: error updating terminal geometry (%d)", errno)
	}
	return nil
}

// CanonicalMode puts terminal into normal, everyday canonical mode.
func (pt *Terminal) CanonicalMode() {
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.canAttr)
}

// CBreakMode puts terminal into cbreak mode.
func (pt *Terminal) CBreakMode() {
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.cbreakAttr)
}

// Keys returns a channel that receives every key pressed. The channel is
// closed when the input can no longer be read.
func (pt *Terminal) Keys() <-chan byte {
	return Keys(pt.input)
}

// Keys reads single bytes from the reader and sends them to the returned
// channel. The channel is closed when the reader returns an error.
func Keys(r io.Reader) <-chan byte {
	ch := make(chan byte)
	go func() {
		defer close(ch)
		var b [1]byte
		for {
			n, err := r.Read(b[:])
			if n > 0 {
				ch <- b[0]
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

// Clip shortens the string so that it fits on one line of the terminal. The
// string is not changed if the geometry is unknown.
func (g Geometry) Clip(s string) string {
	if g.Cols == 0 || len(s) <= int(g.Cols) {
		return s
	}
	return s[:g.Cols]
}
