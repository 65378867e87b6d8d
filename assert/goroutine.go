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

// Package assert contains checks that should never fail in a correctly
// written program. They are for debugging and testing purposes.
package assert

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identifier for the calling goroutine. The result
// is different between goroutines and consistent for a given goroutine.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Owner records the goroutine that created a resource. Some resources, SDL
// windows for example, must only be used by the goroutine that created them.
type Owner uint64

// NewOwner returns an Owner for the calling goroutine.
func NewOwner() Owner {
	return Owner(GetGoRoutineID())
}

// Check panics if the calling goroutine is not the owner.
func (o Owner) Check(what string) {
	if id := GetGoRoutineID(); id != uint64(o) {
		panic(fmt.Sprintf("%s called from goroutine %d (owner is %d)", what, id, uint64(o)))
	}
}
