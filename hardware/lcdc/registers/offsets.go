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

package registers

import "fmt"

// Offset is the byte offset of a register from the base of the register
// block.
type Offset uint32

// List of register offsets. These values are fixed by the hardware.
const (
	HTiming       Offset = 0x00
	VTiming       Offset = 0x04
	ClockPolarity Offset = 0x08
	FrameBase     Offset = 0x10
	IntEnable     Offset = 0x18
	Control       Offset = 0x1c
	IntClear      Offset = 0x20
	IntStatus     Offset = 0x24

	// the following are never written by this driver. they are named so
	// that register dumps are readable
	OSDScaling  Offset = 0x34
	OSDPosition Offset = 0x38
	OSDFgColor  Offset = 0x3c
	OSDBgColor  Offset = 0x40
	GPIO        Offset = 0x44

	// start of the memory areas
	Palette      Offset = 0x200
	OSDFont      Offset = 0x8000
	OSDAttribute Offset = 0xc000
)

// BlockSize is the size in bytes of the register block.
const BlockSize = 0xc800

// Timing lists the registers committed by a mode change, in the order they
// must be written. Control is last because its enable bit starts the
// display pipeline.
var Timing = []Offset{ClockPolarity, HTiming, VTiming, Control}

// Named lists the offsets of the single word registers in address order.
var Named = []Offset{
	HTiming, VTiming, ClockPolarity, FrameBase, IntEnable, Control,
	IntClear, IntStatus, OSDScaling, OSDPosition, OSDFgColor, OSDBgColor, GPIO,
}

var names = map[Offset]string{
	HTiming:       "HTIMING",
	VTiming:       "VTIMING",
	ClockPolarity: "CLOCK_POLARITY",
	FrameBase:     "FRAME_BASE",
	IntEnable:     "INT_ENABLE",
	Control:       "CONTROL",
	IntClear:      "INT_CLEAR",
	IntStatus:     "INT_STATUS",
	OSDScaling:    "OSD_SCALING",
	OSDPosition:   "OSD_POSITION",
	OSDFgColor:    "OSD_FG",
	OSDBgColor:    "OSD_BG",
	GPIO:          "GPIO",
}

func (o Offset) String() string {
	if n, ok := names[o]; ok {
		return n
	}
	switch {
	case o >= OSDAttribute && o < BlockSize:
		return fmt.Sprintf("OSD_ATTRIBUTE+%#x", uint32(o-OSDAttribute))
	case o >= OSDFont && o < OSDAttribute:
		return fmt.Sprintf("OSD_FONT+%#x", uint32(o-OSDFont))
	case o >= Palette && o < Palette+0x200:
		return fmt.Sprintf("PALETTE+%#x", uint32(o-Palette))
	}
	return fmt.Sprintf("0x%02x", uint32(o))
}
