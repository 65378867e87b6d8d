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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a failure with t.Errorf() and allow the test
// to continue. The Demand*() functions are for conditions that subsequent
// parts of the test rely on and will stop the test with t.Fatalf().
//
// ExpectSuccess() and ExpectFailure() test for success under generic
// conditions. For bool values, true is success. For error values, nil is
// success. Note that an untyped nil is also considered a success, because of
// how errors are usually returned.
//
// The Writer type can be used to capture output, for example from the logger
// package, and then compared with an expected string. RingWriter does the same
// but only keeps the most recent output.
//
// All functions accept optional tags. The tags are prepended to the failure
// message and help identify which iteration of a table driven test failed.
package test
