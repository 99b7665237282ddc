// Copyright (C) 2025, VigilantDoomer
//
// This file is part of CastleCrush program.
//
// CastleCrush is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// CastleCrush is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CastleCrush.  If not, see <https://www.gnu.org/licenses/>.

package castlecrush

import (
	"github.com/pkg/errors"
)

// Errors returned by this package are always one of these, wrapped with
// context. Use errors.Cause(err) == ErrSomething to tell them apart
var (
	// Status structure went out of sync with the event queue. Input was
	// degenerate (overlapping walls, endpoint lying on another wall, etc.) or
	// there is a bug. Either way the intersections found so far are junk
	ErrInvariant = errors.New("sweep invariant violated")
	// Sweep runs top to bottom, a horizontal segment has no well-defined
	// position in the status. Zero-length segments end up here too
	ErrHorizontalSegment = errors.New("horizontal segment")
	// Shot solver can't do anything sensible with a wall that is a point
	ErrDegenerateSegment = errors.New("degenerate segment")
	ErrNoShotsLeft       = errors.New("no shots left")
	ErrLevelGeneration   = errors.New("level generation failed")
)

// IsInvariantViolation is for callers that would rather retry with another
// input (level generator does so) than bail out
func IsInvariantViolation(err error) bool {
	return err != nil && errors.Cause(err) == ErrInvariant
}
