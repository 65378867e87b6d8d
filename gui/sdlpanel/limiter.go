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

package sdlpanel

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// the fastest rate the window will be updated at, whatever the frame rate of
// the display.
const maxRate = 60 * physic.Hertz

// frameLimiter paces updates to the frame rate of the display. the period is
// adjusted every frame to account for drift.
type frameLimiter struct {
	period time.Duration
	tick   chan bool
	quit   chan bool
}

func newFrameLimiter(rate physic.Frequency) *frameLimiter {
	lim := &frameLimiter{
		period: limiterPeriod(rate),
		tick:   make(chan bool),
		quit:   make(chan bool),
	}

	go func() {
		adjusted := lim.period
		t := time.Now()
		for {
			time.Sleep(adjusted)
			nt := time.Now()
			select {
			case lim.tick <- true:
			case <-lim.quit:
				return
			}
			adjusted -= nt.Sub(t) - lim.period
			if adjusted < 0 {
				adjusted = 0
			}
			t = nt
		}
	}()

	return lim
}

// the period between updates for the frame rate. a rate of zero or a rate
// faster than maxRate is limited to maxRate.
func limiterPeriod(rate physic.Frequency) time.Duration {
	if rate <= 0 || rate > maxRate {
		rate = maxRate
	}
	return rate.Period()
}

func (lim *frameLimiter) wait() {
	<-lim.tick
}

func (lim *frameLimiter) stop() {
	close(lim.quit)
}
