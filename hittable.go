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

// hittable
package castlecrush

// Jagged 2-dimensional array of int32 with all rows packed in one slice.
// Shot solver has about 2N^2 candidates each with a short list of walls it
// hits; [][]int32 would mean 2N^2 tiny allocations for GC to chase. Rows are
// only ever appended, never resized
type HitTable struct {
	// row i occupies data[start[i]:start[i+1]]
	start []int32
	data  []int32
}

func NewHitTable(rowsHint, cellsHint int) *HitTable {
	start := make([]int32, 1, rowsHint+1)
	start[0] = 0
	return &HitTable{
		start: start,
		data:  make([]int32, 0, cellsHint),
	}
}

// Add appends a value to the last row. There must be one (see NewRow)
func (t *HitTable) Add(v int32) {
	t.data = append(t.data, v)
	t.start[len(t.start)-1] = int32(len(t.data))
}

// NewRow starts a new empty row and returns its index
func (t *HitTable) NewRow() int {
	t.start = append(t.start, int32(len(t.data)))
	return len(t.start) - 2
}

func (t *HitTable) Rows() int {
	return len(t.start) - 1
}

// Slen returns length of row i
func (t *HitTable) Slen(i int) int {
	return int(t.start[i+1] - t.start[i])
}

// Row is a view into the table, don't append to it
func (t *HitTable) Row(i int) []int32 {
	return t.data[t.start[i]:t.start[i+1]:t.start[i+1]]
}

// Transpose builds the inverse table: row v lists (in increasing order) the
// rows of t that contain v. Values must be in [0, cols)
func (t *HitTable) Transpose(cols int) *HitTable {
	counts := make([]int32, cols+1)
	for _, v := range t.data {
		counts[v+1]++
	}
	for i := 1; i <= cols; i++ {
		counts[i] += counts[i-1]
	}
	res := &HitTable{
		start: counts,
		data:  make([]int32, len(t.data)),
	}
	fill := make([]int32, cols)
	copy(fill, counts[:cols])
	for i := 0; i < t.Rows(); i++ {
		for _, v := range t.Row(i) {
			res.data[fill[v]] = int32(i)
			fill[v]++
		}
	}
	return res
}
