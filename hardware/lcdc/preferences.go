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

package lcdc

import (
	"fmt"
	"strings"
	"time"

	"github.com/jetsetilly/ftlcdc/curated"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/framebuffer"
	"github.com/jetsetilly/ftlcdc/hardware/lcdc/mode"
	"github.com/jetsetilly/ftlcdc/paths"
	"github.com/jetsetilly/ftlcdc/prefs"
)

// Values accepted by the policy preference.
const (
	PolicyGrow  = "grow"
	PolicyFixed = "fixed"
)

// Values accepted by the invert pixel clock preference. InvertAuto uses the
// setting of the panel preset.
const (
	InvertAuto = "auto"
	InvertOn   = "on"
	InvertOff  = "off"
)

// Preferences defines and collates all the preference values used by the
// display controller.
type Preferences struct {
	dsk *prefs.Disk

	// name of the panel preset attached to the controller
	Panel prefs.String

	// framebuffer sizing policy. either "grow" or "fixed"
	Policy prefs.String

	// the fixed policy allocates a buffer Multiplier times the height of the
	// panel
	Multiplier prefs.Int

	// order of the colour channels in a pixel. "redhigh" or "redlow"
	ColorOrder prefs.String

	// overrides the pixel clock polarity of the panel preset
	InvertPixelClock prefs.String

	// minimum time in milliseconds that a replaced framebuffer is kept
	Grace prefs.Int

	// log every status event and dump the registers after every commit
	Debug prefs.Bool
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return "no prefs file"
	}
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the default preferences file and
// then from the command line stack.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return NewPreferencesFile(pth)
}

// NewPreferencesFile is the same as NewPreferences but with a specific
// preferences file. An empty path means the preferences are not associated
// with a file and only the defaults and the command line stack are used.
func NewPreferencesFile(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.hooks()

	if err := p.SetDefaults(); err != nil {
		return nil, err
	}

	if pth != "" {
		var err error
		p.dsk, err = prefs.NewDisk(pth)
		if err != nil {
			return nil, err
		}

		for k, v := range p.entries() {
			if err := p.dsk.Add(k, v); err != nil {
				return nil, err
			}
		}

		err = p.dsk.Load(true)
		if err != nil {
			// ignore missing prefs file errors
			if !curated.Is(err, prefs.NoPrefsFile) {
				return nil, err
			}
		}
	}

	// values on the command line take precedence over values on disk
	for k, v := range p.entries() {
		if ok, cl := prefs.GetCommandLinePref(k); ok {
			if err := v.Set(cl); err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
		}
	}

	return p, nil
}

type entry interface {
	Set(prefs.Value) error
	String() string
	Get() prefs.Value
	Reset() error
}

func (p *Preferences) entries() map[string]entry {
	return map[string]entry{
		"lcdc.panel":        &p.Panel,
		"lcdc.policy":       &p.Policy,
		"lcdc.multiplier":   &p.Multiplier,
		"lcdc.colororder":   &p.ColorOrder,
		"lcdc.invertpixclk": &p.InvertPixelClock,
		"lcdc.grace":        &p.Grace,
		"lcdc.debug":        &p.Debug,
	}
}

// the pre hooks refuse values that the controller can not use.
func (p *Preferences) hooks() {
	p.Panel.SetHookPre(func(v prefs.Value) error {
		_, err := mode.PanelByName(v.(string))
		return err
	})
	p.Policy.SetHookPre(func(v prefs.Value) error {
		switch strings.ToLower(v.(string)) {
		case PolicyGrow, PolicyFixed:
			return nil
		}
		return fmt.Errorf("unknown framebuffer policy: %s", v)
	})
	p.Multiplier.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("framebuffer multiplier must be at least one (%d)", v)
		}
		return nil
	})
	p.ColorOrder.SetHookPre(func(v prefs.Value) error {
		_, err := mode.ParseColorOrder(v.(string))
		return err
	})
	p.InvertPixelClock.SetHookPre(func(v prefs.Value) error {
		switch strings.ToLower(v.(string)) {
		case InvertAuto, InvertOn, InvertOff:
			return nil
		}
		return fmt.Errorf("invert pixel clock must be one of auto, on or off (%s)", v)
	})
	p.Grace.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return fmt.Errorf("grace period can not be negative (%d)", v)
		}
		return nil
	})
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() error {
	defaults := []struct {
		v   entry
		val prefs.Value
	}{
		{&p.Panel, mode.DefaultPanel},
		{&p.Policy, PolicyGrow},
		{&p.Multiplier, 2},
		{&p.ColorOrder, mode.RedHigh.String()},
		{&p.InvertPixelClock, InvertAuto},
		{&p.Grace, int(framebuffer.DefaultGrace / time.Millisecond)},
		{&p.Debug, false},
	}
	for _, d := range defaults {
		if err := d.v.Set(d.val); err != nil {
			return err
		}
	}
	return nil
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}

// SizingPolicy returns the framebuffer policy described by the policy and
// multiplier preferences.
func (p *Preferences) SizingPolicy() framebuffer.Policy {
	if strings.ToLower(p.Policy.String()) == PolicyFixed {
		return framebuffer.FixedCapacity(uint32(p.Multiplier.Get().(int)))
	}
	return framebuffer.GrowOnDemand
}

// Order returns the colour order preference as a mode.ColorOrder value.
func (p *Preferences) Order() mode.ColorOrder {
	o, _ := mode.ParseColorOrder(p.ColorOrder.String())
	return o
}

// GracePeriod returns the grace preference as a time.Duration.
func (p *Preferences) GracePeriod() time.Duration {
	return time.Duration(p.Grace.Get().(int)) * time.Millisecond
}

// PanelPreset returns the panel named by the panel preference with the
// invert pixel clock preference applied.
func (p *Preferences) PanelPreset() (mode.Panel, error) {
	panel, err := mode.PanelByName(p.Panel.String())
	if err != nil {
		return mode.Panel{}, err
	}
	switch strings.ToLower(p.InvertPixelClock.String()) {
	case InvertOn:
		panel.InvertPixelClock = true
	case InvertOff:
		panel.InvertPixelClock = false
	}
	return panel, nil
}
