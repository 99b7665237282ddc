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

// levelgen
package castlecrush

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// Endless mode: throw random walls into the play field, cut them where they
// cross, drop the bits that became too short, and let the shot solver decide
// how many shots the player gets

const (
	FIELD_MIN_X = -7.8
	FIELD_MAX_X = 7.8
	FIELD_MIN_Y = -3.5
	FIELD_MAX_Y = 3.5

	MIN_WALL_SIZE = 2.0

	ENDLESS_START    = 3
	ENDLESS_INCREASE = 1
	ENDLESS_MAX      = 25

	// Random walls are occasionally degenerate enough for the sweep to give
	// up. Then we just roll the dice again
	GENERATE_ATTEMPTS = 8
)

type LevelConfig struct {
	MinX, MaxX  float64
	MinY, MaxY  float64
	MinWallSize float64
	Start       int // walls thrown at stage 0
	Increase    int // more walls per stage
	Max         int
	Attempts    int
}

func DefaultLevelConfig() LevelConfig {
	return LevelConfig{
		MinX:        FIELD_MIN_X,
		MaxX:        FIELD_MAX_X,
		MinY:        FIELD_MIN_Y,
		MaxY:        FIELD_MAX_Y,
		MinWallSize: MIN_WALL_SIZE,
		Start:       ENDLESS_START,
		Increase:    ENDLESS_INCREASE,
		Max:         ENDLESS_MAX,
		Attempts:    GENERATE_ATTEMPTS,
	}
}

type Level struct {
	Id    uuid.UUID `json:"id"`
	Stage int       `json:"stage"`
	Walls []Segment `json:"walls"`
	// One way to crush everything in MaxShots shots
	Solution []Line `json:"solution"`
	MaxShots int    `json:"maxShots"`
	// How many crossings were cut away while generating
	Crossings int `json:"crossings"`
}

type LevelGenerator struct {
	cfg LevelConfig
	rnd *rand.Rand
}

// NewLevelGenerator with the same source seed produces the same levels (ids
// aside)
func NewLevelGenerator(cfg LevelConfig, src rand.Source) *LevelGenerator {
	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}
	return &LevelGenerator{
		cfg: cfg,
		rnd: rand.New(src),
	}
}

// WallsForStage is how many random walls get thrown at the given stage,
// before cutting and dropping
func (g *LevelGenerator) WallsForStage(stage int) int {
	n := g.cfg.Start + stage*g.cfg.Increase
	if n > g.cfg.Max {
		n = g.cfg.Max
	}
	return n
}

func (g *LevelGenerator) ForStage(stage int) (*Level, error) {
	lvl, err := g.Generate(g.WallsForStage(stage))
	if err != nil {
		return nil, errors.Wrapf(err, "stage %d", stage)
	}
	lvl.Stage = stage
	return lvl, nil
}

func (g *LevelGenerator) randomWall() Segment {
	for {
		s := Segment{
			P1: Point{g.uniform(g.cfg.MinX, g.cfg.MaxX), g.uniform(g.cfg.MinY, g.cfg.MaxY)},
			P2: Point{g.uniform(g.cfg.MinX, g.cfg.MaxX), g.uniform(g.cfg.MinY, g.cfg.MaxY)},
		}
		if !s.IsHorizontal() {
			return s
		}
	}
}

func (g *LevelGenerator) uniform(lo, hi float64) float64 {
	return lo + g.rnd.Float64()*(hi-lo)
}

// Generate throws the given number of walls. Level may end up with fewer
// walls (short ones are dropped) or more (crossing ones are cut). Each
// attempt logs into its own MiniLogger, only the successful one reaches the
// main log
func (g *LevelGenerator) Generate(walls int) (*Level, error) {
	var lastErr error
	for attempt := 0; attempt < g.cfg.Attempts; attempt++ {
		thrown := make([]Segment, 0, walls)
		for i := 0; i < walls; i++ {
			thrown = append(thrown, g.randomWall())
		}
		mlog := CreateMiniLogger()
		lvl, err := g.build(thrown, mlog)
		if err == nil {
			mlog.Verbose(1, "Level %s: %d walls thrown, %d kept, %d crossings cut, %d shots\n",
				lvl.Id.String(), walls, len(lvl.Walls), lvl.Crossings, lvl.MaxShots)
			Log.Merge(mlog, "")
			return lvl, nil
		}
		if !IsInvariantViolation(err) && errors.Cause(err) != ErrLevelGeneration {
			return nil, err
		}
		Log.Verbose(2, "Attempt %d at level generation failed, retrying: %s\n",
			attempt, err.Error())
		lastErr = err
	}
	return nil, errors.Wrapf(ErrLevelGeneration, "%d attempts failed, last error: %v",
		g.cfg.Attempts, lastErr)
}

// BuildLevel makes a level out of given walls, the same way random ones are
// made. Logs straight into the main log
func (g *LevelGenerator) BuildLevel(walls []Segment) (*Level, error) {
	return g.build(walls, nil)
}

func (g *LevelGenerator) build(thrown []Segment, mlog *MiniLogger) (*Level, error) {
	walls := dropShortWalls(thrown, g.cfg.MinWallSize)
	sweep := NewSweepLine(walls)
	sweep.Logger = mlog
	crossings, err := sweep.Run()
	if err != nil {
		return nil, err
	}
	walls = dropShortWalls(SplitAtIntersections(walls, crossings), g.cfg.MinWallSize)
	if len(walls) == 0 {
		return nil, errors.Wrap(ErrLevelGeneration, "no walls left")
	}
	if left := FindCrossings(walls); len(left) > 0 {
		return nil, errors.Wrapf(ErrLevelGeneration, "walls #%d and #%d still cross after cutting",
			left[0].One, left[0].Two)
	}
	solver, err := NewShotSolver(walls)
	if err != nil {
		return nil, err
	}
	solution := solver.GreedyCover()
	return &Level{
		Id:        uuid.NewV4(),
		Walls:     walls,
		Solution:  solution,
		MaxShots:  len(solution),
		Crossings: len(crossings),
	}, nil
}

func dropShortWalls(walls []Segment, minSize float64) []Segment {
	res := make([]Segment, 0, len(walls))
	for _, w := range walls {
		if w.Magnitude() >= minSize && !w.IsHorizontal() {
			res = append(res, w)
		}
	}
	return res
}

// SplitAtIntersections cuts every segment at each of its crossing points.
// Segments without crossings are passed through as is, pieces of a cut one
// follow in order from its P1 to its P2 and take the place of the original
func SplitAtIntersections(segments []Segment, crossings []Intersection) []Segment {
	cuts := make(map[int][]Point)
	for _, c := range crossings {
		cuts[c.One] = append(cuts[c.One], c.Point)
		cuts[c.Two] = append(cuts[c.Two], c.Point)
	}
	res := make([]Segment, 0, len(segments)+2*len(crossings))
	for i, s := range segments {
		points, ok := cuts[i]
		if !ok {
			res = append(res, s)
			continue
		}
		sort.Sort(PointsAlong{Origin: s.P1, Points: points})
		start := s.P1
		for _, p := range points {
			if pointsEqualWithEpsilon(start, p) {
				// several crossings at one point
				continue
			}
			res = append(res, Segment{P1: start, P2: p})
			start = p
		}
		if !pointsEqualWithEpsilon(start, s.P2) {
			res = append(res, Segment{P1: start, P2: s.P2})
		}
	}
	return res
}
