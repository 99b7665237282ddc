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
	"math/rand"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedPairs(res []Intersection) []Intersection {
	cp := make([]Intersection, len(res))
	copy(cp, res)
	NormalizePairs(cp)
	sort.Sort(IntersectionsByIndex(cp))
	return cp
}

func pairsOnly(res []Intersection) [][2]int {
	out := make([][2]int, len(res))
	for i, x := range sortedPairs(res) {
		out[i] = [2]int{x.One, x.Two}
	}
	return out
}

func TestSweepTwoSegmentsCross(t *testing.T) {
	res, err := FindIntersections([]Segment{
		Seg(3, 1, 1, 3),
		Seg(1.1, 1.1, 2.9, 2.9),
	})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.InDelta(t, 2.0, res[0].Point.X(), 1e-9)
	assert.InDelta(t, 2.0, res[0].Point.Y(), 1e-9)
}

func TestSweepTwoSegmentsCrossMirrored(t *testing.T) {
	res, err := FindIntersections([]Segment{
		Seg(1, 3, 3, 1),
		Seg(1.1, 1.3, 2.9, 2.7),
	})
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestSweepThreeSegments(t *testing.T) {
	res, err := FindIntersections([]Segment{
		Seg(1, 3, 3, 2),
		Seg(1, 2, 3, 1),
		Seg(1.1, 1.1, 2.9, 2.9),
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 2}, {1, 2}}, pairsOnly(res))
}

func TestSweepSixWalls(t *testing.T) {
	walls := sixWalls()
	res, err := FindIntersections(walls)
	require.NoError(t, err)
	assert.Len(t, res, 9)
	assert.Equal(t, pairsOnly(FindCrossings(walls)), pairsOnly(res))
}

func TestSweepFan(t *testing.T) {
	// every segment passes through (5, 0.5), including the vertical one
	res, err := FindIntersections(fanSegments(10))
	require.NoError(t, err)
	assert.Len(t, res, 55)
	for _, x := range res {
		assert.InDelta(t, 5.0, x.Point.X(), 1e-9)
		assert.InDelta(t, 0.5, x.Point.Y(), 1e-9)
	}
	seen := make(map[[2]int]bool)
	for _, p := range pairsOnly(res) {
		assert.False(t, seen[p], "pair %v reported twice", p)
		seen[p] = true
	}
}

func TestSweepFanSizes(t *testing.T) {
	for n := 2; n <= 20; n += 2 {
		res, err := FindIntersections(fanSegments(n))
		require.NoError(t, err, "fan of %d", n+1)
		assert.Len(t, res, n*(n+1)/2, "fan of %d", n+1)
	}
}

func TestSweepNoIntersections(t *testing.T) {
	res, err := FindIntersections(nil)
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Len(t, res, 0)

	res, err = FindIntersections([]Segment{Seg(0, 0, 1, 1), Seg(0, 1, 1, 2), Seg(5, 0, 5, 3)})
	require.NoError(t, err)
	assert.Len(t, res, 0)
}

func TestSweepTouchingIsNotCrossing(t *testing.T) {
	// shared endpoint, a "V"
	res, err := FindIntersections([]Segment{Seg(0, 2, 1, 0), Seg(1, 0, 2, 2)})
	require.NoError(t, err)
	assert.Len(t, res, 0)
}

func TestSweepHorizontalRejected(t *testing.T) {
	_, err := FindIntersections([]Segment{Seg(0, 0, 1, 1), Seg(0, 1, 3, 1)})
	require.Error(t, err)
	assert.Equal(t, ErrHorizontalSegment, errors.Cause(err))
	assert.Contains(t, err.Error(), "#1")

	_, err = FindIntersections([]Segment{Seg(2, 2, 2, 2)})
	assert.Equal(t, ErrHorizontalSegment, errors.Cause(err), "zero length")
}

func TestSweepRerunIsIdempotent(t *testing.T) {
	walls := randomWalls(rand.New(rand.NewSource(11)), 40)
	sweep := NewSweepLine(walls)
	first, err := sweep.Run()
	require.NoError(t, err)
	second, err := sweep.Run()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSweepDoesNotModifyInput(t *testing.T) {
	walls := sixWalls()
	before := make([]Segment, len(walls))
	copy(before, walls)
	_, err := FindIntersections(walls)
	require.NoError(t, err)
	assert.Equal(t, before, walls)
}

func TestSweepMatchesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for trial := 0; trial < 300; trial++ {
		walls := randomWalls(rnd, rnd.Intn(31))
		res, err := FindIntersections(walls)
		require.NoError(t, err, "trial %d", trial)
		missing, extra := DiffIntersections(res, FindCrossings(walls))
		assert.Empty(t, missing, "trial %d", trial)
		assert.Empty(t, extra, "trial %d", trial)
		assert.Len(t, pairsOnly(res), len(res))
	}
}

// Removing the second segment of every reported pair must leave nothing
// crossing
func TestSweepRemoveSecondOfEachPair(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))
	for trial := 0; trial < 200; trial++ {
		walls := randomWalls(rnd, 5+rnd.Intn(26))
		res, err := FindIntersections(walls)
		require.NoError(t, err)
		removed := make(map[int]bool)
		for _, x := range res {
			removed[x.Two] = true
		}
		var rest []Segment
		for i, w := range walls {
			if !removed[i] {
				rest = append(rest, w)
			}
		}
		res, err = FindIntersections(rest)
		require.NoError(t, err)
		assert.Len(t, res, 0, "trial %d", trial)
	}
}

func TestSweepTrace(t *testing.T) {
	walls := []Segment{Seg(0, 0, 2, 2), Seg(0, 2, 2, 0), Seg(5, 0, 6, 1)}
	sweep := NewSweepLine(walls)
	counts := make(map[EventType]int)
	lastY := 1e9
	sweep.Trace = func(ev SweepEvent) {
		counts[ev.Type]++
		assert.True(t, ev.Pos.Y() <= lastY, "events must go downwards")
		lastY = ev.Pos.Y()
	}
	res, err := sweep.Run()
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, 3, counts[EVENT_INSERT])
	assert.Equal(t, 3, counts[EVENT_DELETE])
	assert.Equal(t, 1, counts[EVENT_INTERSECT])
}

func TestSweepLeftThenRight(t *testing.T) {
	// One is left of Two above the crossing
	res, err := FindIntersections([]Segment{Seg(2, 2, 0, 0), Seg(0, 2, 2, 0)})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, 1, res[0].One)
	assert.Equal(t, 0, res[0].Two)
}

func TestSweepContextCompare(t *testing.T) {
	// both through (1,1) at the sweep height: above it a is left, below b is
	a := NewStatusEntry(Seg(0, 2, 2, 0), 0)
	b := NewStatusEntry(Seg(2, 2, 0, 0), 1)
	ctx := &sweepContext{y: 1, preEvent: true}
	assert.Equal(t, -1, ctx.Compare(a, b))
	assert.Equal(t, 1, ctx.Compare(b, a))
	ctx.preEvent = false
	assert.Equal(t, 1, ctx.Compare(a, b))
	assert.Equal(t, -1, ctx.Compare(b, a))
	assert.Equal(t, 0, ctx.Compare(a, a))

	// c starts at the sweep height, only "below" makes sense for it
	c := NewStatusEntry(Seg(1, 1, 3, 0), 2)
	ctx.preEvent = true
	assert.Equal(t, 1, ctx.Compare(c, a), "c goes right of a below the line")
	assert.Equal(t, 1, ctx.Compare(c, b))
}

func BenchmarkSweep(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := FindIntersections(benchmarkWalls); err != nil {
			b.Fatalf("sweep failed: %s", err.Error())
		}
	}
}

func BenchmarkFindCrossings(b *testing.B) {
	for i := 0; i < b.N; i++ {
		FindCrossings(benchmarkWalls)
	}
}
