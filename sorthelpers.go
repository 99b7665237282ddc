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

// sorthelpers
package castlecrush

// Implementations of sort.Interface go here

// IntersectionsByIndex orders by (One, Two). Callers that want unordered
// pairs compared should normalize One < Two first (see NormalizePairs)
type IntersectionsByIndex []Intersection

func (x IntersectionsByIndex) Len() int { return len(x) }
func (x IntersectionsByIndex) Less(i, j int) bool {
	if x[i].One != x[j].One {
		return x[i].One < x[j].One
	}
	return x[i].Two < x[j].Two
}
func (x IntersectionsByIndex) Swap(i, j int) { x[i], x[j] = x[j], x[i] }

// NormalizePairs makes One < Two in every element, in place
func NormalizePairs(x []Intersection) {
	for i := range x {
		if x[i].One > x[i].Two {
			x[i].One, x[i].Two = x[i].Two, x[i].One
		}
	}
}

// PointsAlong orders points lying on a segment by their distance from Origin.
// Used to cut a wall at its crossings in the right order
type PointsAlong struct {
	Origin Point
	Points []Point
}

func (x PointsAlong) Len() int { return len(x.Points) }
func (x PointsAlong) Less(i, j int) bool {
	return x.Points[i].Sub(x.Origin).Len() < x.Points[j].Sub(x.Origin).Len()
}
func (x PointsAlong) Swap(i, j int) { x.Points[i], x.Points[j] = x.Points[j], x.Points[i] }
