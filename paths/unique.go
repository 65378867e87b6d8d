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

package paths

import (
	"fmt"
	"strings"
	"time"
)

// UniqueFilename creates a filename that (assuming a functioning clock) should
// not collide with any existing file. The function does not test for this.
//
// Used to generate filenames for scanout snapshots and memviz dumps. The
// format of the returned string is:
//
//	prepend_panel_YYYYMMDD_HHMMSS.ext
//
// If panel is empty the format is:
//
//	prepend_YYYYMMDD_HHMMSS.ext
func UniqueFilename(prepend string, panel string, ext string) string {
	return uniqueFilename(prepend, panel, ext, time.Now())
}

func uniqueFilename(prepend string, panel string, ext string, n time.Time) string {
	timestamp := n.Format("20060102_150405")

	var fn string
	if p := strings.TrimSpace(panel); len(p) > 0 {
		fn = fmt.Sprintf("%s_%s_%s", prepend, p, timestamp)
	} else {
		fn = fmt.Sprintf("%s_%s", prepend, timestamp)
	}

	if ext != "" {
		fn = fmt.Sprintf("%s.%s", fn, strings.TrimPrefix(ext, "."))
	}

	return fn
}
