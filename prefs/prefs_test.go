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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/ftlcdc/curated"
	"github.com/jetsetilly/ftlcdc/prefs"
	"github.com/jetsetilly/ftlcdc/test"
)

func cmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w, x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))
	test.ExpectFailure(t, x.Set(10))

	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestInt(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))
	test.ExpectSuccess(t, v.Set(10))
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpFile(t, fn, "number :: 10\nnumberB :: 99\n")

	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	// loading a file that doesn't exist
	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("lcdc.policy", &s))
	err = dsk.Load(false)
	test.ExpectEquality(t, curated.Is(err, prefs.NoPrefsFile), true)

	test.ExpectSuccess(t, s.Set("fixed"))
	test.DemandSuccess(t, dsk.Save())

	// a second disk instance sharing the same file
	other, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var n prefs.Int
	test.ExpectSuccess(t, other.Add("lcdc.multiplier", &n))
	test.ExpectSuccess(t, n.Set(3))
	test.DemandSuccess(t, other.Save())
	cmpFile(t, fn, "lcdc.multiplier :: 3\nlcdc.policy :: fixed\n")

	// loading into a fresh value
	var t2 prefs.String
	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, dsk.Add("lcdc.policy", &t2))
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, t2.String(), "fixed")
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	v.SetHookPre(func(val prefs.Value) error {
		if val.(int) < 1 {
			return fmt.Errorf("too small")
		}
		return nil
	})

	var post int
	v.SetHookPost(func(val prefs.Value) error {
		post = val.(int)
		return nil
	})

	test.ExpectSuccess(t, v.Set(2))
	test.ExpectEquality(t, post, 2)
	test.ExpectFailure(t, v.Set(0))
	test.ExpectEquality(t, v.Get().(int), 2)
}

func TestCommandLineStack(t *testing.T) {
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)

	prefs.PushCommandLineStack("lcdc.policy::fixed; lcdc.multiplier :: 3; malformed")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 1)

	ok, v := prefs.GetCommandLinePref("lcdc.policy")
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, v, "fixed")

	// values can only be taken once
	ok, _ = prefs.GetCommandLinePref("lcdc.policy")
	test.ExpectEquality(t, ok, false)

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "lcdc.multiplier::3")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}
