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

// shotsolver
package castlecrush

import (
	"github.com/pkg/errors"
)

// Finding the fewest lines that cross every wall is set cover in disguise,
// so this is the usual greedy approximation: out of a finite set of
// candidate shots take the one hitting most walls still standing, repeat.
// Candidates are lines through pairs of (slightly pulled in) wall endpoints -
// any line crossing a bunch of walls can be wiggled until it passes through
// two endpoints without losing any of them, pulling in keeps the wiggled
// line from just grazing the tips

type ShotSolver struct {
	segments []Segment
	// endpoints[2k] and endpoints[2k+1] belong to segments[k]
	endpoints []Point
	// candidate c is the line endpoints[candI[c]]-endpoints[candJ[c]]
	candI []int32
	candJ []int32
	// candidate -> segments it hits, and segment -> candidates hitting it
	hits  *HitTable
	hitBy *HitTable
}

// NewShotSolver precomputes everything; O(N^3) time, hit table is the
// dominant memory use
func NewShotSolver(segments []Segment) (*ShotSolver, error) {
	for i, s := range segments {
		if s.IsDegenerate() {
			return nil, errors.Wrapf(ErrDegenerateSegment, "segment #%d %s", i, s.String())
		}
	}
	ss := &ShotSolver{
		segments:  segments,
		endpoints: shotEndpoints(segments),
	}
	ss.buildCandidates()
	return ss, nil
}

// MinimumShots is len(GreedyCover()) - the shot budget of a level
func MinimumShots(segments []Segment) (int, error) {
	ss, err := NewShotSolver(segments)
	if err != nil {
		return 0, err
	}
	return len(ss.GreedyCover()), nil
}

// shotEndpoints pulls each endpoint towards the other one by 1/(EDGE_RATIO+1)
// of the segment length. Midpoint stays where it was
func shotEndpoints(segments []Segment) []Point {
	res := make([]Point, 0, 2*len(segments))
	w := 1.0 / (EDGE_RATIO + 1)
	for _, s := range segments {
		res = append(res, s.P1.Mul(EDGE_RATIO).Add(s.P2).Mul(w))
		res = append(res, s.P1.Add(s.P2.Mul(EDGE_RATIO)).Mul(w))
	}
	return res
}

// Endpoints returns pulled in endpoints, two per segment in input order
func (ss *ShotSolver) Endpoints() []Point {
	return ss.endpoints
}

// Candidates returns the number of candidate shots considered
func (ss *ShotSolver) Candidates() int {
	return len(ss.candI)
}

func (ss *ShotSolver) candidateLine(c int) Line {
	return Line{P1: ss.endpoints[ss.candI[c]], P2: ss.endpoints[ss.candJ[c]]}
}

// buildCandidates enumerates pairs (i, j), i < j, of endpoints of different
// segments in lexicographic order. Order matters: ties in GreedyCover go to
// the earliest candidate
func (ss *ShotSolver) buildCandidates() {
	n := len(ss.segments)
	ne := len(ss.endpoints)
	pairs := 0
	if n > 1 {
		pairs = ne*(ne-1)/2 - n
	}
	ss.candI = make([]int32, 0, pairs)
	ss.candJ = make([]int32, 0, pairs)
	ss.hits = NewHitTable(pairs, pairs*2)
	for i := 0; i < ne; i++ {
		// skip own partner: for even i that's i+1
		for j := i + 2 - i%2; j < ne; j++ {
			ss.candI = append(ss.candI, int32(i))
			ss.candJ = append(ss.candJ, int32(j))
			ss.hits.NewRow()
			shot := Line{P1: ss.endpoints[i], P2: ss.endpoints[j]}
			if shot.IsDegenerate() {
				// two walls share an endpoint and have the same length
				// ratio... whatever, such line defines nothing
				continue
			}
			for k, s := range ss.segments {
				if k == i/2 || k == j/2 {
					// Shot passes through a point inside this wall, so it is
					// hit unless the shot runs along it
					if !shot.IsParallelToSegment(s) {
						ss.hits.Add(int32(k))
					}
				} else if shot.Hits(s) {
					ss.hits.Add(int32(k))
				}
			}
		}
	}
	ss.hitBy = ss.hits.Transpose(n)
}

// HitsOf lists segments hit by the candidate shot c
func (ss *ShotSolver) HitsOf(c int) []int32 {
	return ss.hits.Row(c)
}

// GreedyCover returns a list of shots such that every segment is crossed by
// at least one. Deterministic for the same input
func (ss *ShotSolver) GreedyCover() []Line {
	n := len(ss.segments)
	switch n {
	case 0:
		return []Line{}
	case 1:
		return []Line{ss.segments[0].Bisector()}
	case 2:
		// Any line through an inner point of each wall does it, unless it
		// runs along one of them. Only collinear walls defeat all four
		for _, pair := range [4][2]int{{0, 2}, {0, 3}, {1, 2}, {1, 3}} {
			shot := Line{P1: ss.endpoints[pair[0]], P2: ss.endpoints[pair[1]]}
			if shot.IsDegenerate() || shot.IsParallelToSegment(ss.segments[0]) ||
				shot.IsParallelToSegment(ss.segments[1]) {
				continue
			}
			return []Line{shot}
		}
		return []Line{ss.segments[0].Bisector(), ss.segments[1].Bisector()}
	}

	counts := make([]int32, ss.hits.Rows())
	for c := range counts {
		counts[c] = int32(ss.hits.Slen(c))
	}
	covered := make([]bool, n)
	left := n
	firstUncovered := 0
	res := make([]Line, 0, 4)
	for round := 0; round < n && left > 0; round++ {
		best := -1
		bestCount := int32(-1)
		for c, cnt := range counts {
			if cnt > bestCount {
				best = c
				bestCount = cnt
			}
		}
		if bestCount <= 0 {
			// Nothing hits anything still standing (or no candidates at all).
			// Bisector it is
			for covered[firstUncovered] {
				firstUncovered++
			}
			k := firstUncovered
			res = append(res, ss.segments[k].Bisector())
			ss.markCovered(k, covered, counts)
			left--
			continue
		}
		res = append(res, ss.candidateLine(best))
		for _, k := range ss.hits.Row(best) {
			if !covered[k] {
				ss.markCovered(int(k), covered, counts)
				left--
			}
		}
	}
	return res
}

// markCovered also takes the segment out of the counts of every candidate
// that hits it, so counts always tell how many NEW segments a shot would hit
func (ss *ShotSolver) markCovered(k int, covered []bool, counts []int32) {
	covered[k] = true
	for _, c := range ss.hitBy.Row(k) {
		counts[c]--
	}
}
