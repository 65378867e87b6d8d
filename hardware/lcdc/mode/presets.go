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

package mode

import (
	"sort"
	"strings"

	"github.com/jetsetilly/ftlcdc/curated"
)

// UnknownPanel is the error pattern returned by PanelByName().
const UnknownPanel = "mode: unknown panel: %s (available: %s)"

// Panel is a display panel that can be attached to the controller.
type Panel struct {
	Name string
	Mode DisplayMode

	// the panel samples data on the falling edge of the pixel clock
	InvertPixelClock bool
}

// DefaultPanel is the name of the panel used when none is specified.
const DefaultPanel = "auo-a036qn01"

var panels = map[string]Panel{
	"sharp-lq057q3dc02": {
		Name: "sharp-lq057q3dc02",
		Mode: DisplayMode{
			XRes: 320, YRes: 240, XResVirtual: 320, YResVirtual: 240,
			BitsPerPixel: 16,
			Pixclock:     171521,
			LeftMargin:   17, RightMargin: 17,
			UpperMargin: 7, LowerMargin: 15,
			HSyncLen: 17, VSyncLen: 1,
			Sync:  SyncVertHighAct,
			VMode: NonInterlaced,
		},
	},
	"auo-a036qn01": {
		Name: "auo-a036qn01",
		Mode: DisplayMode{
			XRes: 320, YRes: 240, XResVirtual: 320, YResVirtual: 240,
			BitsPerPixel: 16,
			Pixclock:     171521,
			LeftMargin:   44, RightMargin: 6,
			UpperMargin: 11, LowerMargin: 8,
			HSyncLen: 21, VSyncLen: 3,
			VMode: NonInterlaced,
		},
	},
	"primeview-pd035vx2": {
		Name: "primeview-pd035vx2",
		Mode: DisplayMode{
			XRes: 640, YRes: 480, XResVirtual: 640, YResVirtual: 480,
			BitsPerPixel: 16,
			Pixclock:     171521,
			LeftMargin:   44, RightMargin: 20,
			UpperMargin: 16, LowerMargin: 16,
			HSyncLen: 100, VSyncLen: 19,
			VMode: NonInterlaced,
		},
		InvertPixelClock: true,
	},
}

// PanelByName returns the named panel preset. The comparison is case
// insensitive.
func PanelByName(name string) (Panel, error) {
	if p, ok := panels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}
	return Panel{}, curated.Errorf(UnknownPanel, name, strings.Join(PanelNames(), ", "))
}

// PanelNames returns the names of all panel presets in alphabetical order.
func PanelNames() []string {
	n := make([]string, 0, len(panels))
	for k := range panels {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}
