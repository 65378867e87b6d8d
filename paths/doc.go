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

// Package paths contains functions to prepare paths to ftlcdc resources.
//
// If a directory called ".ftlcdc" exists in the current directory then that
// is used as the base path. Otherwise the ftlcdc directory in the user's
// configuration directory is used, as returned by os.UserConfigDir(). On a
// Linux system, the path to the preferences file will be:
//
//	/home/user/.config/ftlcdc/preferences
package paths
