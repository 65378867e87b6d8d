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

// Package statsview serves runtime statistics of the ftlcdc process over
// HTTP. It is only built when the statsview build tag is present:
//
//	go build -tags statsview
//
// Without the tag Available() returns false and Launch() does nothing.
//
// The statistics are useful when watching a controller for a long time, to
// make sure that replaced framebuffers are being released. After launch the
// graphs are at:
//
//	localhost:12600/debug/statsview
//
// And standard Go pprof statistics are at:
//
//	localhost:12600/debug/pprof/
package statsview

// Address is the address of the HTTP server.
const Address = "localhost:12600"

const url = "/debug/statsview"
