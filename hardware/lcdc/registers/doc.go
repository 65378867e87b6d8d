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

// Package registers describes the register block of the FTLCDC100 display
// controller. It contains the register offsets and the encoding of the
// fields in each of the timing, control and interrupt registers.
//
// There is no behaviour in this package. Types convert between field values
// and the 32-bit register words, in both directions:
//
//	w := registers.HTimingFields{PL: 19, HW: 20, HFP: 5, HBP: 43}.Encode()
//	h := registers.DecodeHTiming(w)
//
// Field values are stored exactly as they appear in the register. Any
// adjustment (eg. the minus-one encoding of the horizontal timing) is the
// responsibility of the caller.
package registers
