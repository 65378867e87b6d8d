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

package logger_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/ftlcdc/logger"
	"github.com/jetsetilly/ftlcdc/test"
)

func TestTail(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "lcdc", "underrun")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "lcdc: underrun\n")

	w.Reset()
	log.Log(logger.Allow, "lcdc", "bus error")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "lcdc: underrun\nlcdc: bus error\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "lcdc: underrun\nlcdc: bus error\n")

	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "lcdc: bus error\n")

	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeat(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "lcdc", "underrun")
	log.Log(logger.Allow, "lcdc", "underrun")
	log.Log(logger.Allow, "lcdc", "underrun")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "lcdc: underrun (repeat x3)\n")
}

func TestMaxEntries(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Log(logger.Allow, "a", 1)
	log.Log(logger.Allow, "b", 2)
	log.Log(logger.Allow, "c", 3)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "b: 2\nc: 3\n")
}

func TestDetailTypes(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", errors.New("test error"))
	log.Logf(logger.Allow, "tag", "wrapped: %v", errors.New("test error"))
	log.Log(logger.Allow, "tag", 100)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: test error\ntag: wrapped: test error\ntag: 100\n")
}

type prohibit struct{}

func (_ prohibit) AllowLogging() bool {
	return false
}

func TestPermission(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(prohibit{}, "tag", "detail")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger(100)
	r, err := test.NewRingWriter(64)
	test.DemandSuccess(t, err)

	log.SetEcho(r)
	log.Log(logger.Allow, "lcdc", "vertical sync")
	log.Log(logger.Allow, "lcdc", "vertical sync")
	test.ExpectEquality(t, r.String(), "lcdc: vertical sync\nlcdc: vertical sync\n")

	log.SetEcho(nil)
	log.Log(logger.Allow, "lcdc", "off")
	test.ExpectEquality(t, r.String(), "lcdc: vertical sync\nlcdc: vertical sync\n")
}

func TestLimiter(t *testing.T) {
	now := time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC)

	lim := logger.NewLimiter(5*time.Second, 2)
	lim.SetTimeSource(func() time.Time { return now })

	var suppressed int
	lim.OnSuppressed = func(missed int) {
		suppressed = missed
	}

	log := logger.NewLogger(100)
	w := &strings.Builder{}

	for i := 0; i < 5; i++ {
		log.Logf(lim, "lcdc", "underrun %d", i)
	}
	log.Write(w)
	test.ExpectEquality(t, w.String(), "lcdc: underrun 0\nlcdc: underrun 1\n")
	test.ExpectEquality(t, lim.Missed(), 3)
	test.ExpectEquality(t, suppressed, 0)

	// a new window reports the refused entries of the previous window
	now = now.Add(5 * time.Second)
	test.ExpectEquality(t, lim.AllowLogging(), true)
	test.ExpectEquality(t, suppressed, 3)
	test.ExpectEquality(t, lim.Missed(), 0)
}
