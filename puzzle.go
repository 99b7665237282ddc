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

// Puzzle is one round of play on a level: the player fires shots (infinite
// lines), each wall a shot crosses is broken. Walls can be hit by several
// shots, removing a shot repairs only what no other shot still breaks
type Puzzle struct {
	level *Level
	hits  []int
	shots []Line
}

func NewPuzzle(level *Level) *Puzzle {
	return &Puzzle{
		level: level,
		hits:  make([]int, len(level.Walls)),
	}
}

func (p *Puzzle) Level() *Level {
	return p.level
}

func (p *Puzzle) CanAddShot() bool {
	return len(p.shots) < p.level.MaxShots
}

// Remaining is the number of shots the player still has
func (p *Puzzle) Remaining() int {
	return p.level.MaxShots - len(p.shots)
}

// AddShot fires and returns how many walls the shot crossed
func (p *Puzzle) AddShot(shot Line) (int, error) {
	if !p.CanAddShot() {
		return 0, errors.Wrapf(ErrNoShotsLeft, "%d shots already fired", len(p.shots))
	}
	if shot.IsDegenerate() {
		return 0, errors.Wrapf(ErrDegenerateSegment, "shot %s", shot.String())
	}
	p.shots = append(p.shots, shot)
	hit := 0
	for i, w := range p.level.Walls {
		if shot.Hits(w) {
			p.hits[i]++
			hit++
		}
	}
	return hit, nil
}

// RemoveShot takes back the shot whose first point is closest to near.
// Returns false when there is nothing to take back
func (p *Puzzle) RemoveShot(near Point) bool {
	if len(p.shots) == 0 {
		return false
	}
	closest := 0
	min := p.shots[0].P1.Sub(near).Len()
	for i := 1; i < len(p.shots); i++ {
		if d := p.shots[i].P1.Sub(near).Len(); d < min {
			closest = i
			min = d
		}
	}
	shot := p.shots[closest]
	for i, w := range p.level.Walls {
		if shot.Hits(w) {
			p.hits[i]--
		}
	}
	p.shots = append(p.shots[:closest], p.shots[closest+1:]...)
	return true
}

// Hits tells how many shots cross wall i
func (p *Puzzle) Hits(i int) int {
	return p.hits[i]
}

func (p *Puzzle) Shots() []Line {
	return p.shots
}

// Standing lists walls no shot crosses yet
func (p *Puzzle) Standing() []int {
	var res []int
	for i, h := range p.hits {
		if h == 0 {
			res = append(res, i)
		}
	}
	return res
}

// Solved when every wall is broken
func (p *Puzzle) Solved() bool {
	for _, h := range p.hits {
		if h == 0 {
			return false
		}
	}
	return true
}

// Reset takes back all shots
func (p *Puzzle) Reset() {
	p.shots = p.shots[:0]
	for i := range p.hits {
		p.hits[i] = 0
	}
}
