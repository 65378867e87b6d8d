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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with Errorf(), which takes a formatting pattern
// and placeholder values, in the same way as the Errorf() function in the fmt
// package.
//
// The pattern is what identifies a curated error. Packages that raise an error
// that the caller may want to react to export the pattern as a const string,
// a sentinel. For example, the mode package exports:
//
//	const ClockTooFast = "mode: pixel clock too fast (%d kHz x %d bytes > %d kHz)"
//
// and callers test for it with Is():
//
//	_, err := mode.Validate(requested, constraints)
//	if curated.Is(err, mode.ClockTooFast) {
//		// try a slower pixclock
//	}
//
// Is() only looks at the outermost error. When an error has been wrapped by
// another curated error, Has() should be used to search the chain:
//
//	err = curated.Errorf("lcdc: %v", err)
//	curated.Is(err, mode.ClockTooFast)  // false
//	curated.Has(err, mode.ClockTooFast) // true
//
// Curated errors normalise the message chain when Error() is called. Adjacent
// parts of the chain that are identical are collapsed, so wrapping an error
// with the same prefix at several levels of the call stack does not result in
// messages like "lcdc: lcdc: out of memory".
//
// Errors that are not created by this package are 'uncurated'. IsAny()
// distinguishes the two, which in practice is the difference between an
// expected failure and an unexpected one.
package curated
