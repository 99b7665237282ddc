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

// crossings
package castlecrush

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/twpayne/go-geom/xy/lineintersection"
	"github.com/twpayne/go-geom/xy/lineintersector"
)

// Slow but sure way to find crossing walls: bounding boxes in an R-tree,
// then a robust segment-segment test for each pair of overlapping boxes.
// Doesn't care about horizontal segments or several walls crossing at one
// point. Used to double check generated levels and to test the sweep

// boxes of zero width or height are not allowed by rtreego
const BBOX_PAD = 1e-7

type segmentBox struct {
	index int
	box   rtreego.Rect
}

func (b *segmentBox) Bounds() rtreego.Rect {
	return b.box
}

func newSegmentBox(s Segment, index int) *segmentBox {
	minX, maxX := s.P1[0], s.P2[0]
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := s.YInterval()
	box, err := rtreego.NewRect(rtreego.Point{minX - BBOX_PAD, minY - BBOX_PAD},
		[]float64{maxX - minX + 2*BBOX_PAD, maxY - minY + 2*BBOX_PAD})
	if err != nil {
		// only happens with NaN coordinates
		Log.Panic("Can't build bounding box for segment #%d %s: %s\n", index, s.String(), err.Error())
	}
	return &segmentBox{index: index, box: box}
}

// FindCrossings returns every pair of segments that cross at a single point
// which is not an endpoint of either. Touching, collinear overlap, degenerate
// segments are all ignored. Result is sorted by (One, Two), One < Two
func FindCrossings(segments []Segment) []Intersection {
	res := []Intersection{}
	if len(segments) < 2 {
		return res
	}
	spatials := make([]rtreego.Spatial, len(segments))
	for i, s := range segments {
		spatials[i] = newSegmentBox(s, i)
	}
	tree := rtreego.NewTree(2, 25, 50, spatials...)
	for i, s := range segments {
		if s.IsDegenerate() {
			continue
		}
		box := spatials[i].(*segmentBox)
		for _, obj := range tree.SearchIntersect(box.box) {
			j := obj.(*segmentBox).index
			if j <= i || segments[j].IsDegenerate() {
				continue
			}
			if p, ok := properCrossing(s, segments[j]); ok {
				res = append(res, Intersection{One: i, Two: j, Point: p})
			}
		}
	}
	sort.Sort(IntersectionsByIndex(res))
	return res
}

// properCrossing asks go-geom's robust intersector, then throws away touching
// at endpoints
func properCrossing(a, b Segment) (Point, bool) {
	result := lineintersector.LineIntersectsLine(lineintersector.RobustLineIntersector{},
		toCoord(a.P1), toCoord(a.P2), toCoord(b.P1), toCoord(b.P2))
	if result.Type() != lineintersection.PointIntersection {
		return Point{}, false
	}
	c := result.Intersection()[0]
	p := Point{c[0], c[1]}
	if pointsEqualWithEpsilon(p, a.P1) || pointsEqualWithEpsilon(p, a.P2) ||
		pointsEqualWithEpsilon(p, b.P1) || pointsEqualWithEpsilon(p, b.P2) {
		return Point{}, false
	}
	return p, true
}

// SegmentsCross is properCrossing for outside use
func SegmentsCross(a, b Segment) bool {
	if a.IsDegenerate() || b.IsDegenerate() {
		return false
	}
	_, ok := properCrossing(a, b)
	return ok
}

// DiffIntersections compares two results as sets of unordered pairs. missing
// are pairs of want not found in got, extra are pairs of got not in want
func DiffIntersections(got, want []Intersection) (missing, extra []Intersection) {
	have := make(map[pairKey]struct{}, len(got))
	for _, x := range got {
		have[makePairKey(x.One, x.Two)] = struct{}{}
	}
	wanted := make(map[pairKey]struct{}, len(want))
	for _, x := range want {
		key := makePairKey(x.One, x.Two)
		wanted[key] = struct{}{}
		if _, ok := have[key]; !ok {
			missing = append(missing, x)
		}
	}
	for _, x := range got {
		if _, ok := wanted[makePairKey(x.One, x.Two)]; !ok {
			extra = append(extra, x)
		}
	}
	return missing, extra
}
