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

//go:build !statsview

package statsview

import "github.com/jetsetilly/ftlcdc/logger"

// Launch does nothing without the statsview build tag.
func Launch() func() {
	logger.Log(logger.Allow, "statsview", "not available in this build")
	return func() {}
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return false
}
