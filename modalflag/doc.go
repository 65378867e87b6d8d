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

// Package modalflag wraps the flag package from the standard library so that
// a program can be divided into modes of operation, each with its own flags.
//
// Arguments are given to NewArgs() and then processed by one or more calls to
// Parse(). Before each call to Parse(), flags and sub-modes for that level are
// added:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("PROBE", "MODE", "PAN")
//	host := md.AddBool("host", false, "use real hardware")
//	if r, err := md.Parse(); r != modalflag.ParseContinue {
//		return err
//	}
//
// The first argument after the flags is compared with the sub-modes. If it
// matches then that mode is selected, otherwise the first sub-mode is
// selected. The selected mode is returned by Mode():
//
//	switch md.Mode() {
//	case "MODE":
//		md.NewMode()
//		xres := md.AddInt("xres", 320, "horizontal resolution")
//		...
//	}
//
// A call to NewMode() starts a new level. Flags from an earlier level are not
// recognised by the new level. The arguments that remain after the flags and
// any mode selector are returned by RemainingArgs().
//
// Help for each level is printed automatically when the -help flag is seen.
// In that case Parse() returns ParseHelp and the caller should exit quietly.
package modalflag
