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

// eventqueue
package castlecrush

import (
	"container/heap"
	"fmt"
)

type EventType int

const (
	EVENT_INSERT EventType = iota
	EVENT_DELETE
	EVENT_INTERSECT
)

func (t EventType) String() string {
	switch t {
	case EVENT_INSERT:
		return "INSERT"
	case EVENT_DELETE:
		return "DELETE"
	case EVENT_INTERSECT:
		return "INTERSECT"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// SweepEvent happens at Pos: top of the segment for INSERT, bottom for DELETE,
// crossing point for INTERSECT. Only INTERSECT has Other
type SweepEvent struct {
	Type  EventType
	Entry *StatusEntry
	Other *StatusEntry
	Pos   Point
	seq   int // creation order, last resort tie break
}

func (ev *SweepEvent) String() string {
	if ev.Type == EVENT_INTERSECT {
		return fmt.Sprintf("%s #%d x #%d at %s", ev.Type, ev.Entry.Index,
			ev.Other.Index, pointToString(ev.Pos))
	}
	return fmt.Sprintf("%s #%d at %s", ev.Type, ev.Entry.Index, pointToString(ev.Pos))
}

// Events come out top to bottom, then right to left. Same place - inserts
// before deletes before intersections
func eventBefore(a, b *SweepEvent) bool {
	if a.Pos[1] != b.Pos[1] {
		return a.Pos[1] > b.Pos[1]
	}
	if a.Pos[0] != b.Pos[0] {
		return a.Pos[0] > b.Pos[0]
	}
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	return a.seq < b.seq
}

// unordered pair of segment indices
type pairKey struct {
	lo, hi int
}

func makePairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

type eventHeap []*SweepEvent

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return eventBefore(h[i], h[j]) }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(*SweepEvent)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return ev
}

// EventQueue hands out events in sweep order and makes sure a crossing of
// the same two segments is scheduled no more than once
type EventQueue struct {
	h         eventHeap
	seq       int
	scheduled map[pairKey]struct{}
}

func NewEventQueue(capacity int) *EventQueue {
	return &EventQueue{
		h:         make(eventHeap, 0, capacity),
		scheduled: make(map[pairKey]struct{}),
	}
}

func (q *EventQueue) Len() int {
	return q.h.Len()
}

func (q *EventQueue) push(ev *SweepEvent) {
	ev.seq = q.seq
	q.seq++
	heap.Push(&q.h, ev)
}

// PushEndpoints schedules INSERT and DELETE of the entry
func (q *EventQueue) PushEndpoints(e *StatusEntry) {
	q.push(&SweepEvent{Type: EVENT_INSERT, Entry: e, Pos: e.top})
	q.push(&SweepEvent{Type: EVENT_DELETE, Entry: e, Pos: e.bottom})
}

// PushIntersection returns false if this pair was scheduled before
func (q *EventQueue) PushIntersection(left, right *StatusEntry, at Point) bool {
	key := makePairKey(left.Index, right.Index)
	if _, ok := q.scheduled[key]; ok {
		return false
	}
	q.scheduled[key] = struct{}{}
	q.push(&SweepEvent{Type: EVENT_INTERSECT, Entry: left, Other: right, Pos: at})
	return true
}

func (q *EventQueue) Pop() *SweepEvent {
	if q.h.Len() == 0 {
		return nil
	}
	return heap.Pop(&q.h).(*SweepEvent)
}
