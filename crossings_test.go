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
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCrossings(t *testing.T) {
	walls := []Segment{
		Seg(0, 0, 2, 2),
		Seg(0, 2, 2, 0),
		Seg(10, 10, 11, 11),    // far away
		Seg(2, 2, 3, 0),        // touches #0 at its endpoint
		Seg(1.5, 3, 1.5, 0.2),  // crosses #0 and #1
		Seg(-1, 0.5, 0.8, 0.5), // horizontal is fine here
		Seg(4, 4, 4, 4),        // point, ignored
		Seg(0.5, 0.5, 1, 1),    // overlaps #0, ends on #1 and #5
	}
	res := FindCrossings(walls)
	require.NotNil(t, res)
	assert.Equal(t, [][2]int{{0, 1}, {0, 4}, {0, 5}, {1, 4}}, pairsOnly(res))
	for _, x := range res {
		assert.True(t, x.One < x.Two)
	}
	assert.InDelta(t, 1.0, res[0].Point.X(), 1e-12)
	assert.InDelta(t, 1.0, res[0].Point.Y(), 1e-12)
}

func TestFindCrossingsSorted(t *testing.T) {
	res := FindCrossings(sixWalls())
	assert.Len(t, res, 9)
	assert.True(t, sort.IsSorted(IntersectionsByIndex(res)))
}

func TestFindCrossingsSmall(t *testing.T) {
	assert.Len(t, FindCrossings(nil), 0)
	assert.Len(t, FindCrossings([]Segment{Seg(0, 0, 1, 1)}), 0)
}

func TestSegmentsCross(t *testing.T) {
	assert.True(t, SegmentsCross(Seg(0, 0, 2, 2), Seg(0, 2, 2, 0)))
	assert.False(t, SegmentsCross(Seg(0, 0, 2, 2), Seg(2, 2, 4, 0)), "shared endpoint")
	assert.False(t, SegmentsCross(Seg(0, 0, 2, 2), Seg(1, 1, 3, 0)), "endpoint on the other")
	assert.False(t, SegmentsCross(Seg(0, 0, 2, 2), Seg(1, 1, 1, 1)), "point")
	assert.False(t, SegmentsCross(Seg(0, 0, 2, 2), Seg(0, 1, 2, 3)), "parallel")
}

func TestDiffIntersections(t *testing.T) {
	got := []Intersection{{One: 0, Two: 1}, {One: 1, Two: 2}}
	want := []Intersection{{One: 1, Two: 0}, {One: 2, Two: 3}}
	missing, extra := DiffIntersections(got, want)
	assert.Equal(t, []Intersection{{One: 2, Two: 3}}, missing)
	assert.Equal(t, []Intersection{{One: 1, Two: 2}}, extra)

	missing, extra = DiffIntersections(got, got)
	assert.Empty(t, missing)
	assert.Empty(t, extra)
}
