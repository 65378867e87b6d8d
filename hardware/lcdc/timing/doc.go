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

// Package timing turns a validated display mode into the words of the four
// timing and control registers, and writes them to the register block.
//
// Computing the register words and writing them are separate steps. Compute()
// has no side effects and can fail. Commit() cannot fail and writes the words
// in the order required by the hardware:
//
//	CLOCK_POLARITY, HTIMING, VTIMING, CONTROL
//
// The CONTROL register is always last because its enable bit starts the
// display pipeline.
package timing
