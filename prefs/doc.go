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

// Package prefs facilitates the storing and loading of preference values.
// Values are of type Bool, Int or String and are safe to read and write from
// more than one goroutine.
//
// A Disk instance associates values with keys in a preferences file:
//
//	var policy prefs.String
//	dsk, _ := prefs.NewDisk(path)
//	_ = dsk.Add("lcdc.policy", &policy)
//	_ = dsk.Load(true)
//
// Hook functions can be attached to any value. A pre-hook can refuse a value
// by returning an error, which is how preference values are validated.
//
// The command line stack is a temporary layer of values that take precedence
// over the values on disk. It is filled from the -prefs command line flag.
package prefs
