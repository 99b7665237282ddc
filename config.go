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

const VERSION = "0.3.0"

// Tolerances. These were tuned against random levels in the default play
// field (coordinates of order 10), don't expect them to be right for
// coordinates in the millions
const (
	// Relative. Two segments whose x at sweep height differ by less than
	// SWEEP_EPSILON*(1+max|x|) are considered to be at the same place, and
	// the tie is resolved by slopes
	SWEEP_EPSILON = 1e-9
	// Sine of the angle between two directions below which they are parallel
	PARALLEL_EPSILON = 1e-6
	// Absolute. A point closer than this to a line lies on it
	ON_LINE_EPSILON = 1e-9
)

// Shot endpoints are pulled inwards from the segment endpoints, so that
// a shot through them crosses the wall instead of grazing its tip.
// Endpoint weight is EDGE_RATIO parts out of EDGE_RATIO+1
const EDGE_RATIO = 19.0

// How many processed events the sweep remembers for dumping to the log when
// it aborts
const SWEEP_HISTORY = 16

type ProgramConfig struct {
	VerbosityLevel int
	// Dumps status tree after every event via go-spew. Very, very noisy
	DumpStatus bool
	// Color errors (only when stderr is a terminal, see cmd/castlecrush)
	ColorErrors bool
}

var config = DefaultConfig() // global, accessed by the logger

func DefaultConfig() *ProgramConfig {
	return &ProgramConfig{
		VerbosityLevel: 0,
		DumpStatus:     false,
		ColorErrors:    false,
	}
}

// SetConfig replaces the global configuration. Only call it before any work
// starts, nothing guards the config from concurrent access
func SetConfig(cfg *ProgramConfig) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg
}

func GetConfig() *ProgramConfig {
	return config
}
