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
	"fmt"
	"os"
	"strconv"
	"strings"

	"periph.io/x/conn/v3/physic"

	"github.com/jetsetilly/ftlcdc/curated"
)

// FixedClock is a reference clock of known frequency.
type FixedClock physic.Frequency

// ReferenceClock implements the lcdc.ClockSource interface.
func (c FixedClock) ReferenceClock() (physic.Frequency, error) {
	if c <= 0 {
		return 0, curated.Errorf(ClockInvalid, physic.Frequency(c))
	}
	return physic.Frequency(c), nil
}

// DefaultSysfsClock is the clk_rate file of the bus clock that drives the
// controller on the reference board.
const DefaultSysfsClock = "/sys/kernel/debug/clk/ahb/clk_rate"

// SysfsClock reads the reference clock frequency from a clk_rate file. The
// file contains the frequency in hertz.
type SysfsClock string

// ReferenceClock implements the lcdc.ClockSource interface.
func (c SysfsClock) ReferenceClock() (physic.Frequency, error) {
	data, err := os.ReadFile(string(c))
	if err != nil {
		return 0, curated.Errorf(ClockUnreadable, string(c), err)
	}

	hz, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, curated.Errorf(ClockUnreadable, string(c), err)
	}
	if hz <= 0 {
		return 0, curated.Errorf(ClockUnreadable, string(c), fmt.Errorf("rate must be positive (%d)", hz))
	}

	return physic.Frequency(hz) * physic.Hertz, nil
}
