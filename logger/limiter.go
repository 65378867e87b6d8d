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

package logger

import (
	"sync"
	"time"
)

// Limiter is an implementation of the Permission interface that allows at
// most Burst log entries in every Interval. It is intended for log entries
// that are triggered by hardware events, which can arrive far more quickly
// than anyone can read them.
//
// The same Limiter can be shared between goroutines.
type Limiter struct {
	crit sync.Mutex

	interval time.Duration
	burst    int

	// the start of the current window and the number of entries allowed and
	// refused in it
	begin   time.Time
	allowed int
	missed  int

	// OnSuppressed is called when a new window opens and entries were refused
	// in the previous window. It is called from inside AllowLogging() so it
	// must not use the same Limiter.
	OnSuppressed func(missed int)

	// time source. replaceable for testing
	now func() time.Time
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
func NewLimiter(interval time.Duration, burst int) *Limiter {
	return &Limiter{
		interval: interval,
		burst:    burst,
		now:      time.Now,
	}
}

// SetTimeSource replaces the function used to get the current time.
func (lim *Limiter) SetTimeSource(now func() time.Time) {
	lim.crit.Lock()
	defer lim.crit.Unlock()
	lim.now = now
}

// AllowLogging implements the Permission interface.
func (lim *Limiter) AllowLogging() bool {
	lim.crit.Lock()

	now := lim.now()

	var missed int
	if lim.begin.IsZero() || now.Sub(lim.begin) >= lim.interval {
		missed = lim.missed
		lim.begin = now
		lim.allowed = 0
		lim.missed = 0
	}

	ok := lim.allowed < lim.burst
	if ok {
		lim.allowed++
	} else {
		lim.missed++
	}

	cb := lim.OnSuppressed
	lim.crit.Unlock()

	if missed > 0 && cb != nil {
		cb(missed)
	}

	return ok
}

// Missed returns the number of refused entries in the current window.
func (lim *Limiter) Missed() int {
	lim.crit.Lock()
	defer lim.crit.Unlock()
	return lim.missed
}
