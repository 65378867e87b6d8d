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

package sim

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
)

// DefaultClock is the reference clock of the simulated controller.
const DefaultClock = 66 * physic.MegaHertz

// Clock is a reference clock with a fixed frequency. A zero frequency
// simulates a clock that cannot be found.
type Clock physic.Frequency

// ReferenceClock returns the frequency of the clock.
func (c Clock) ReferenceClock() (physic.Frequency, error) {
	if c <= 0 {
		return 0, fmt.Errorf("sim: no reference clock")
	}
	return physic.Frequency(c), nil
}
