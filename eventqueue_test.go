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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueueOrder(t *testing.T) {
	q := NewEventQueue(0)
	a := NewStatusEntry(Seg(0, 0, 2, 4), 0)  // 4 .. 0
	b := NewStatusEntry(Seg(1, 4, 3, 1), 1)  // 4 .. 1, same top y, bigger x
	c := NewStatusEntry(Seg(5, -1, 5, 1), 2) // 1 .. -1, top level with bottom of b
	q.PushEndpoints(a)
	q.PushEndpoints(b)
	q.PushEndpoints(c)
	require.True(t, q.PushIntersection(a, b, Pt(1.5, 3)))

	type step struct {
		typ   EventType
		index int
	}
	want := []step{
		{EVENT_INSERT, 0}, // (2,4) before (1,4): descending x
		{EVENT_INSERT, 1},
		{EVENT_INTERSECT, 0},
		{EVENT_INSERT, 2}, // (5,1) before (3,1)
		{EVENT_DELETE, 1},
		{EVENT_DELETE, 0},
		{EVENT_DELETE, 2},
	}
	for i, w := range want {
		ev := q.Pop()
		require.NotNil(t, ev, "step %d", i)
		assert.Equal(t, w.typ, ev.Type, "step %d", i)
		assert.Equal(t, w.index, ev.Entry.Index, "step %d", i)
	}
	assert.Nil(t, q.Pop())
	assert.Equal(t, 0, q.Len())
}

func TestEventQueueSamePoint(t *testing.T) {
	// insert beats delete beats intersect at the same place, then creation
	// order
	q := NewEventQueue(0)
	a := NewStatusEntry(Seg(0, 1, 1, 2), 0)
	b := NewStatusEntry(Seg(1, 2, 2, 1), 1)
	c := NewStatusEntry(Seg(0, 0, 1, 1), 2)
	q.PushIntersection(a, b, Pt(0, 1))
	q.push(&SweepEvent{Type: EVENT_DELETE, Entry: a, Pos: Pt(0, 1)})
	q.push(&SweepEvent{Type: EVENT_INSERT, Entry: c, Pos: Pt(0, 1)})
	q.push(&SweepEvent{Type: EVENT_INSERT, Entry: a, Pos: Pt(0, 1)})
	assert.Equal(t, 4, q.Len())
	assert.Equal(t, 2, q.Pop().Entry.Index)
	assert.Equal(t, 0, q.Pop().Entry.Index)
	assert.Equal(t, EVENT_DELETE, q.Pop().Type)
	assert.Equal(t, EVENT_INTERSECT, q.Pop().Type)
}

func TestEventQueuePairScheduledOnce(t *testing.T) {
	q := NewEventQueue(0)
	a := NewStatusEntry(Seg(0, 0, 2, 2), 0)
	b := NewStatusEntry(Seg(0, 2, 2, 0), 1)
	assert.True(t, q.PushIntersection(a, b, Pt(1, 1)))
	assert.False(t, q.PushIntersection(a, b, Pt(1, 1)))
	assert.False(t, q.PushIntersection(b, a, Pt(1, 1)), "pair is unordered")
	assert.Equal(t, 1, q.Len())
	ev := q.Pop()
	assert.Same(t, a, ev.Entry)
	assert.Same(t, b, ev.Other)
	assert.False(t, q.PushIntersection(a, b, Pt(1, 1)), "popped pairs stay scheduled")
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "INSERT", EVENT_INSERT.String())
	assert.Equal(t, "INTERSECT", EVENT_INTERSECT.String())
	assert.Equal(t, "EventType(7)", EventType(7).String())
}
