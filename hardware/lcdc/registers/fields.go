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

import (
	"fmt"
	"strings"
)

// Maximum values of the timing fields.
const (
	MaxPL  = 0x3f
	MaxHW  = 0xff
	MaxHFP = 0xff
	MaxHBP = 0xff

	MaxLF  = 0x3ff
	MaxVW  = 0x3f
	MaxVFP = 0xff
	MaxVBP = 0xff

	MaxDivNo = 0x3f
)

// HTimingFields holds the fields of the horizontal timing register. PL is
// the number of 16 pixel units per line, HW is the sync pulse width, HFP and
// HBP are the front and back porches. All fields hold their value minus one.
type HTimingFields struct {
	PL  uint32
	HW  uint32
	HFP uint32
	HBP uint32
}

// Encode the fields into a register word. Fields are truncated to their
// width.
func (h HTimingFields) Encode() uint32 {
	return (h.PL&MaxPL)<<2 | (h.HW&MaxHW)<<8 | (h.HFP&MaxHFP)<<16 | (h.HBP&MaxHBP)<<24
}

// DecodeHTiming is the inverse of HTimingFields.Encode().
func DecodeHTiming(w uint32) HTimingFields {
	return HTimingFields{
		PL:  (w >> 2) & MaxPL,
		HW:  (w >> 8) & MaxHW,
		HFP: (w >> 16) & MaxHFP,
		HBP: (w >> 24) & MaxHBP,
	}
}

func (h HTimingFields) String() string {
	return fmt.Sprintf("PL=%d HW=%d HFP=%d HBP=%d", h.PL, h.HW, h.HFP, h.HBP)
}

// VTimingFields holds the fields of the vertical timing register. LF is the
// number of lines minus one and VW is the sync pulse width minus one. VFP and VBP are the front and
// back porches and are not minus-one encoded.
type VTimingFields struct {
	LF  uint32
	VW  uint32
	VFP uint32
	VBP uint32
}

// Encode the fields into a register word. Fields are truncated to their
// width.
func (v VTimingFields) Encode() uint32 {
	return (v.LF & MaxLF) | (v.VW&MaxVW)<<10 | (v.VFP&MaxVFP)<<16 | (v.VBP&MaxVBP)<<24
}

// DecodeVTiming is the inverse of VTimingFields.Encode().
func DecodeVTiming(w uint32) VTimingFields {
	return VTimingFields{
		LF:  w & MaxLF,
		VW:  (w >> 10) & MaxVW,
		VFP: (w >> 16) & MaxVFP,
		VBP: (w >> 24) & MaxVBP,
	}
}

func (v VTimingFields) String() string {
	return fmt.Sprintf("LF=%d VW=%d VFP=%d VBP=%d", v.LF, v.VW, v.VFP, v.VBP)
}

// Bits in the clock polarity register.
const (
	ClockIVS   = 1 << 11
	ClockIHS   = 1 << 12
	ClockICK   = 1 << 13
	ClockIDE   = 1 << 14
	ClockADPEN = 1 << 15
)

// ClockPolarityFields holds the fields of the clock and polarity register.
// The pixel clock is the bus clock divided by DivNo+1.
type ClockPolarityFields struct {
	DivNo uint32

	// inverted vertical sync, horizontal sync, pixel clock and data enable
	IVS bool
	IHS bool
	ICK bool
	IDE bool

	// automatic divider enable
	ADPEN bool
}

// Encode the fields into a register word.
func (c ClockPolarityFields) Encode() uint32 {
	w := c.DivNo & MaxDivNo
	w |= bit(c.IVS, ClockIVS)
	w |= bit(c.IHS, ClockIHS)
	w |= bit(c.ICK, ClockICK)
	w |= bit(c.IDE, ClockIDE)
	w |= bit(c.ADPEN, ClockADPEN)
	return w
}

// DecodeClockPolarity is the inverse of ClockPolarityFields.Encode().
func DecodeClockPolarity(w uint32) ClockPolarityFields {
	return ClockPolarityFields{
		DivNo: w & MaxDivNo,
		IVS:   w&ClockIVS != 0,
		IHS:   w&ClockIHS != 0,
		ICK:   w&ClockICK != 0,
		IDE:   w&ClockIDE != 0,
		ADPEN: w&ClockADPEN != 0,
	}
}

func (c ClockPolarityFields) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("DIVNO=%d", c.DivNo))
	flag(&s, c.IVS, "IVS")
	flag(&s, c.IHS, "IHS")
	flag(&s, c.ICK, "ICK")
	flag(&s, c.IDE, "IDE")
	flag(&s, c.ADPEN, "ADPEN")
	return s.String()
}

// BPP is the value of the bits-per-pixel field in the control register.
type BPP uint32

// List of valid BPP values.
const (
	BPP1 BPP = iota
	BPP2
	BPP4
	BPP8
	BPP16
	BPP24
)

// BPPFor returns the BPP field value for the number of bits per pixel. The
// BPP24 value scans out 32-bit pixels so 24 and 32 share a code. Returns
// false if the depth is not supported by the hardware.
func BPPFor(bitsPerPixel uint32) (BPP, bool) {
	switch bitsPerPixel {
	case 1:
		return BPP1, true
	case 2:
		return BPP2, true
	case 4:
		return BPP4, true
	case 8:
		return BPP8, true
	case 16:
		return BPP16, true
	case 24, 32:
		return BPP24, true
	}
	return 0, false
}

// Bits returns the number of bits per pixel in memory.
func (b BPP) Bits() uint32 {
	if b == BPP24 {
		return 32
	}
	return 1 << b
}

// Endian is the value of the endian field in the control register.
type Endian uint32

// List of valid Endian values.
const (
	LittleByteLittlePixel Endian = iota
	BigByteBigPixel
	LittleByteBigPixel
)

// VCompare selects the part of the frame that raises the vertical status
// interrupt.
type VCompare uint32

// List of valid VCompare values.
const (
	VSync VCompare = iota
	VBack
	VActive
	VFront
)

// Bits in the control register.
const (
	ControlEnable        = 1 << 0
	ControlTFT           = 1 << 5
	ControlBGR           = 1 << 8
	ControlLCD           = 1 << 11
	ControlPanelType     = 1 << 15
	ControlFIFOThreshold = 1 << 16
	ControlYUV420        = 1 << 17
	ControlYUV           = 1 << 18
)

// ControlFields holds the fields of the control register.
type ControlFields struct {
	Enable        bool
	BPP           BPP
	TFT           bool
	BGR           bool
	Endian        Endian
	LCDPower      bool
	VCompare      VCompare
	PanelType     bool
	FIFOThreshold bool
	YUV420        bool
	YUV           bool
}

// Encode the fields into a register word.
func (c ControlFields) Encode() uint32 {
	w := (uint32(c.BPP) & 0x7) << 1
	w |= (uint32(c.Endian) & 0x3) << 9
	w |= (uint32(c.VCompare) & 0x3) << 12
	w |= bit(c.Enable, ControlEnable)
	w |= bit(c.TFT, ControlTFT)
	w |= bit(c.BGR, ControlBGR)
	w |= bit(c.LCDPower, ControlLCD)
	w |= bit(c.PanelType, ControlPanelType)
	w |= bit(c.FIFOThreshold, ControlFIFOThreshold)
	w |= bit(c.YUV420, ControlYUV420)
	w |= bit(c.YUV, ControlYUV)
	return w
}

// DecodeControl is the inverse of ControlFields.Encode().
func DecodeControl(w uint32) ControlFields {
	return ControlFields{
		Enable:        w&ControlEnable != 0,
		BPP:           BPP((w >> 1) & 0x7),
		TFT:           w&ControlTFT != 0,
		BGR:           w&ControlBGR != 0,
		Endian:        Endian((w >> 9) & 0x3),
		LCDPower:      w&ControlLCD != 0,
		VCompare:      VCompare((w >> 12) & 0x3),
		PanelType:     w&ControlPanelType != 0,
		FIFOThreshold: w&ControlFIFOThreshold != 0,
		YUV420:        w&ControlYUV420 != 0,
		YUV:           w&ControlYUV != 0,
	}
}

func (c ControlFields) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("BPP=%d", c.BPP.Bits()))
	flag(&s, c.Enable, "ENABLE")
	flag(&s, c.TFT, "TFT")
	flag(&s, c.BGR, "BGR")
	flag(&s, c.LCDPower, "LCD")
	flag(&s, c.PanelType, "PANEL")
	flag(&s, c.FIFOThreshold, "FIFO")
	flag(&s, c.YUV420, "YUV420")
	flag(&s, c.YUV, "YUV")
	return s.String()
}

// FrameBaseAlign is the granularity of the frame base register. The low
// bits of an address are silently dropped by the hardware.
const FrameBaseAlign = 64

// FrameBaseMask is the set of address bits that are stored by the frame
// base register.
const FrameBaseMask = ^uint32(FrameBaseAlign - 1)

// EncodeFrameBase returns the frame base register word for a physical
// address. The address is truncated, not rounded.
func EncodeFrameBase(addr uint64) uint32 {
	return uint32(addr) & FrameBaseMask
}

// Interrupt bits. These are shared by the enable, clear and status
// registers.
const (
	IntUnderrun = 1 << 1
	IntNextBase = 1 << 2
	IntVStatus  = 1 << 3
	IntBusError = 1 << 4

	IntMask = IntUnderrun | IntNextBase | IntVStatus | IntBusError
)

func bit(b bool, v uint32) uint32 {
	if b {
		return v
	}
	return 0
}

func flag(s *strings.Builder, b bool, name string) {
	if b {
		s.WriteString(" ")
		s.WriteString(name)
	}
}
