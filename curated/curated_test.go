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

package curated_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/ftlcdc/curated"
	"github.com/jetsetilly/ftlcdc/test"
)

const testPattern = "test pattern: %d"
const wrapPattern = "wrap: %v"

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf("lcdc: %v", curated.Errorf("lcdc: %v", "out of memory"))
	test.ExpectEquality(t, e.Error(), "lcdc: out of memory")

	// duplicates are only removed when adjacent
	e = curated.Errorf("a: b: %v", curated.Errorf("a: %s", "c"))
	test.ExpectEquality(t, e.Error(), "a: b: a: c")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	test.ExpectEquality(t, e.Error(), "test pattern: 10")
	test.ExpectEquality(t, curated.Is(e, testPattern), true)
	test.ExpectEquality(t, curated.IsAny(e), true)

	f := curated.Errorf(wrapPattern, e)
	test.ExpectEquality(t, curated.Is(f, testPattern), false)
	test.ExpectEquality(t, curated.Is(f, wrapPattern), true)
	test.ExpectEquality(t, curated.Has(f, testPattern), true)
	test.ExpectEquality(t, curated.Has(f, "not a pattern"), false)
}

func TestUncurated(t *testing.T) {
	e := fmt.Errorf("plain error")
	test.ExpectEquality(t, curated.IsAny(e), false)
	test.ExpectEquality(t, curated.Is(e, "plain error"), false)
	test.ExpectEquality(t, curated.Has(e, "plain error"), false)
	test.ExpectEquality(t, curated.IsAny(nil), false)
}

func TestUnwrap(t *testing.T) {
	base := errors.New("base")
	e := curated.Errorf(wrapPattern, base)
	test.ExpectEquality(t, errors.Is(e, base), true)
}
