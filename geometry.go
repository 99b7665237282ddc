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

// geometry
package castlecrush

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Point is just a 2D vector, all the arithmetic comes from mathgl
type Point = mgl64.Vec2

func Pt(x, y float64) Point {
	return Point{x, y}
}

// Segment is a wall (or any other finite piece of line). Order of endpoints
// carries no meaning
type Segment struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{P1: Point{x1, y1}, P2: Point{x2, y2}}
}

// Line is an infinite line through two points (a shot)
type Line struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

// cross product z component, sign tells the side
func cross(a, b Point) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func toCoord(p Point) geom.Coord {
	return geom.Coord{p[0], p[1]}
}

// areParallel is true when the sine of the angle between d1 and d2 does not
// exceed PARALLEL_EPSILON. Zero-length direction is parallel to anything
func areParallel(d1, d2 Point) bool {
	return math.Abs(cross(d1, d2)) <= PARALLEL_EPSILON*d1.Len()*d2.Len()
}

// Highest endpoint by y. Ties (horizontal segment) resolved towards bigger x
// to match the event order
func (s Segment) Highest() Point {
	if s.P1[1] > s.P2[1] || (s.P1[1] == s.P2[1] && s.P1[0] > s.P2[0]) {
		return s.P1
	}
	return s.P2
}

func (s Segment) Lowest() Point {
	if s.P1[1] > s.P2[1] || (s.P1[1] == s.P2[1] && s.P1[0] > s.P2[0]) {
		return s.P2
	}
	return s.P1
}

func (s Segment) Direction() Point {
	return s.P2.Sub(s.P1)
}

func (s Segment) Magnitude() float64 {
	return s.P2.Sub(s.P1).Len()
}

func (s Segment) IsVertical() bool {
	return s.P1[0] == s.P2[0]
}

func (s Segment) IsHorizontal() bool {
	return s.P1[1] == s.P2[1]
}

func (s Segment) IsDegenerate() bool {
	return s.P1 == s.P2
}

// YInterval returns (bottom, top)
func (s Segment) YInterval() (float64, float64) {
	if s.P1[1] < s.P2[1] {
		return s.P1[1], s.P2[1]
	}
	return s.P2[1], s.P1[1]
}

// X returns the x coordinate of the segment's supporting line at height y.
// Vertical segments (and horizontal ones, for which the question makes no
// sense) return the x of P1
func (s Segment) X(y float64) float64 {
	dy := s.P2[1] - s.P1[1]
	if s.P1[0] == s.P2[0] || dy == 0 {
		return s.P1[0]
	}
	return s.P1[0] + (y-s.P1[1])*(s.P2[0]-s.P1[0])/dy
}

// InverseSlope is dx/dy, i.e. how much x changes per unit of y. Zero for
// vertical segments, infinite for horizontal ones
func (s Segment) InverseSlope() float64 {
	dx := s.P2[0] - s.P1[0]
	if dx == 0 {
		return 0
	}
	return dx / (s.P2[1] - s.P1[1])
}

// Intersect returns the point where two segments meet. Touching at endpoints
// counts. Parallel segments (collinear overlapping ones included) don't
// intersect as far as this function is concerned
func (s Segment) Intersect(o Segment) (Point, bool) {
	r := s.P2.Sub(s.P1)
	q := o.P2.Sub(o.P1)
	d := cross(r, q)
	if math.Abs(d) <= PARALLEL_EPSILON*r.Len()*q.Len() {
		return Point{}, false
	}
	qp := o.P1.Sub(s.P1)
	t := cross(qp, q) / d
	u := cross(qp, r) / d
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}
	return s.P1.Add(r.Mul(t)), true
}

// DistanceToPoint is the distance from p to the closest point of the segment
func (s Segment) DistanceToPoint(p Point) float64 {
	if s.IsDegenerate() {
		return p.Sub(s.P1).Len()
	}
	return xy.DistanceFromPointToLine(toCoord(p), toCoord(s.P1), toCoord(s.P2))
}

func (s Segment) Midpoint() Point {
	return s.P1.Add(s.P2).Mul(0.5)
}

// Line returns the infinite line the segment lies on
func (s Segment) Line() Line {
	return Line{P1: s.P1, P2: s.P2}
}

// Bisector is the perpendicular through the midpoint. It crosses the segment
// properly no matter what, which makes it the shot of last resort
func (s Segment) Bisector() Line {
	m := s.Midpoint()
	d := s.Direction()
	return Line{P1: m, P2: m.Add(Point{-d[1], d[0]})}
}

func (l Line) Direction() Point {
	return l.P2.Sub(l.P1)
}

func (l Line) IsDegenerate() bool {
	return l.P1 == l.P2
}

func (l Line) IsParallel(o Line) bool {
	return areParallel(l.Direction(), o.Direction())
}

func (l Line) IsParallelToSegment(s Segment) bool {
	return areParallel(l.Direction(), s.Direction())
}

// signedDistance is positive on the left of the line (looking from P1 to P2)
func (l Line) signedDistance(p Point) float64 {
	d := l.Direction()
	return cross(d, p.Sub(l.P1)) / d.Len()
}

// DistanceToPoint is the perpendicular distance from p to the line
func (l Line) DistanceToPoint(p Point) float64 {
	if l.IsDegenerate() {
		return p.Sub(l.P1).Len()
	}
	return xy.PerpendicularDistanceFromPointToLine(toCoord(p), toCoord(l.P1), toCoord(l.P2))
}

// IntersectProper returns the crossing point of line and segment only when it
// lies strictly between the segment endpoints. An endpoint within
// ON_LINE_EPSILON of the line means the line merely touches the segment (or
// runs along it), which is not a proper intersection
func (l Line) IntersectProper(s Segment) (Point, bool) {
	if l.IsDegenerate() {
		return Point{}, false
	}
	d1 := l.signedDistance(s.P1)
	d2 := l.signedDistance(s.P2)
	if math.Abs(d1) <= ON_LINE_EPSILON || math.Abs(d2) <= ON_LINE_EPSILON {
		return Point{}, false
	}
	if (d1 < 0) == (d2 < 0) {
		return Point{}, false
	}
	t := d1 / (d1 - d2)
	return s.P1.Add(s.Direction().Mul(t)), true
}

// Hits is IntersectProper without the point
func (l Line) Hits(s Segment) bool {
	_, ok := l.IntersectProper(s)
	return ok
}

// Used to tell cut points apart, see SplitAtIntersections
func pointsEqualWithEpsilon(a, b Point) bool {
	return math.Abs(a[0]-b[0]) <= ON_LINE_EPSILON &&
		math.Abs(a[1]-b[1]) <= ON_LINE_EPSILON
}

func pointToString(p Point) string {
	return replaceAfterDotZeros(fmt.Sprintf("(%f,%f)", p[0], p[1]))
}

func (s Segment) String() string {
	return pointToString(s.P1) + "-" + pointToString(s.P2)
}

func (l Line) String() string {
	return "line " + pointToString(l.P1) + "-" + pointToString(l.P2)
}

func replaceAfterDotZeros(s string) string {
	return strings.ReplaceAll(s, ".000000", "")
}
