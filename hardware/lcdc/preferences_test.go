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

package lcdc_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jetsetilly/ftlcdc/hardware/lcdc"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/framebuffer"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/mode"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/registers"
	"github.com/jetsetilly/ftlcdc/prefs"
	"github.com/jetsetilly/ftlcdc/test"
)

func TestPreferenceDefaults(t *testing.T) {
	p, err := lcdc.NewPreferencesFile("")
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.Panel.String(), mode.DefaultPanel)
	test.ExpectEquality(t, p.SizingPolicy(), framebuffer.GrowOnDemand)
	test.ExpectEquality(t, p.Order(), mode.RedHigh)
	test.ExpectEquality(t, p.GracePeriod(), 20*time.Millisecond)

	panel, err := p.PanelPreset()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, panel.InvertPixelClock, false)

	// saving and loading without a file does nothing
	test.ExpectSuccess(t, p.Save())
	test.ExpectSuccess(t, p.Load())
}

func TestPreferenceValidation(t *testing.T) {
	p, err := lcdc.NewPreferencesFile("")
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.Panel.Set("crt"))
	test.ExpectFailure(t, p.Policy.Set("sometimes"))
	test.ExpectFailure(t, p.Multiplier.Set(0))
	test.ExpectFailure(t, p.ColorOrder.Set("gbr"))
	test.ExpectFailure(t, p.InvertPixelClock.Set("maybe"))
	test.ExpectFailure(t, p.Grace.Set(-1))

	// refused values leave the preference unchanged
	test.ExpectEquality(t, p.Panel.String(), mode.DefaultPanel)

	test.ExpectSuccess(t, p.ColorOrder.Set("BGR"))
	test.ExpectEquality(t, p.Order(), mode.RedLow)
	test.ExpectSuccess(t, p.Policy.Set("FIXED"))
	test.ExpectSuccess(t, p.Multiplier.Set(3))
	test.ExpectEquality(t, p.SizingPolicy(), framebuffer.FixedCapacity(3))
}

func TestPreferenceCommandLine(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	p, err := lcdc.NewPreferencesFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.Grace.Set(50))
	test.DemandSuccess(t, p.Save())

	// the command line takes precedence over the value on disk
	prefs.PushCommandLineStack("lcdc.grace::100; lcdc.panel::primeview-pd035vx2")
	p, err = lcdc.NewPreferencesFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	test.ExpectEquality(t, p.GracePeriod(), 100*time.Millisecond)

	panel, err := p.PanelPreset()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, panel.Mode.XRes, uint32(640))
	test.ExpectEquality(t, panel.InvertPixelClock, true)

	// the value on disk is unchanged
	p, err = lcdc.NewPreferencesFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.GracePeriod(), 50*time.Millisecond)

	// a bad value on the command line is an error
	prefs.PushCommandLineStack("lcdc.policy::sometimes")
	_, err = lcdc.NewPreferencesFile(fn)
	test.ExpectFailure(t, err)
	prefs.PopCommandLineStack()
}

func TestInvertPixelClock(t *testing.T) {
	p := tempPreferences(t, "lcdc.panel::primeview-pd035vx2; lcdc.invertpixclk::off")
	r := newRig(t, p)

	cp := registers.DecodeClockPolarity(r.ctrl.Registers().ClockPolarity)
	test.ExpectEquality(t, cp.ICK, false)
	test.ExpectEquality(t, r.ctrl.CurrentMode().XRes, uint32(640))

	p = tempPreferences(t, "lcdc.panel::primeview-pd035vx2")
	r = newRig(t, p)
	cp = registers.DecodeClockPolarity(r.ctrl.Registers().ClockPolarity)
	test.ExpectEquality(t, cp.ICK, true)
}
