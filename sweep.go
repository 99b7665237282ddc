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

// sweep
package castlecrush

import (
	"math"

	"github.com/pkg/errors"
)

// Finds all crossings among a set of segments by moving a horizontal line
// from top to bottom (Bentley-Ottmann). Segments must not be horizontal.
// Several segments crossing at the same point are fine. Segments that
// overlap, or whose endpoint lies on another segment, are not supported and
// may abort the run with ErrInvariant

// Intersection of segments One and Two (indices into input). One was to the
// left of Two just above the crossing
type Intersection struct {
	One   int   `json:"one"`
	Two   int   `json:"two"`
	Point Point `json:"point"`
}

type SweepLine struct {
	segments []Segment
	// If not nil, receives every event as it's processed, crossings that were
	// already reported as part of a concurrent group included
	Trace func(ev SweepEvent)
	// Where per-run diagnostics go. nil means main log
	Logger *MiniLogger
}

func NewSweepLine(segments []Segment) *SweepLine {
	return &SweepLine{segments: segments}
}

// FindIntersections is NewSweepLine(segments).Run()
func FindIntersections(segments []Segment) ([]Intersection, error) {
	return NewSweepLine(segments).Run()
}

// sweepContext is the order of the status. It depends on where the sweep
// line is and on whether we look at segments just above it (before the
// event) or just below it (after the event). Each run has its own
type sweepContext struct {
	y        float64
	preEvent bool
}

func (c *sweepContext) Compare(a, b *StatusEntry) int {
	if a == b {
		return 0
	}
	xa := a.X(c.y)
	xb := b.X(c.y)
	tol := SWEEP_EPSILON * (1 + math.Max(math.Abs(xa), math.Abs(xb)))
	if xa < xb-tol {
		return -1
	}
	if xa > xb+tol {
		return 1
	}
	// Same place. Look a bit above or a bit below the sweep line, whichever
	// both segments actually occupy
	above := c.preEvent
	if a.top[1] == c.y || b.top[1] == c.y {
		above = false
	} else if a.bottom[1] == c.y || b.bottom[1] == c.y {
		above = true
	}
	if a.islope != b.islope {
		// above the line smaller dx/dy means further left, below it's the
		// other way round
		if above == (a.islope < b.islope) {
			return -1
		}
		return 1
	}
	// parallel and touching - overlap, not supported, but still need
	// a strict order
	if a.Index < b.Index {
		return -1
	}
	return 1
}

// one execution of the sweep, everything here dies with it
type sweepRun struct {
	ctx      *sweepContext
	status   *StatusTree
	queue    *EventQueue
	reported map[pairKey]struct{}
	history  *EventRing
	result   []Intersection
	mlog     *MiniLogger
	trace    func(ev SweepEvent)
	// stats
	processed int
	skipped   int
}

// Run computes all intersections. Can be called again, each call starts
// from scratch. The input is not modified
func (sl *SweepLine) Run() ([]Intersection, error) {
	for i, s := range sl.segments {
		if s.IsHorizontal() {
			return nil, errors.Wrapf(ErrHorizontalSegment, "segment #%d %s", i, s.String())
		}
	}
	ctx := &sweepContext{preEvent: true}
	r := &sweepRun{
		ctx:      ctx,
		status:   NewStatusTree(ctx),
		queue:    NewEventQueue(2 * len(sl.segments)),
		reported: make(map[pairKey]struct{}),
		history:  CreateEventRing(SWEEP_HISTORY),
		mlog:     sl.Logger,
		trace:    sl.Trace,
	}
	for i, s := range sl.segments {
		r.queue.PushEndpoints(NewStatusEntry(s, i))
	}
	for ev := r.queue.Pop(); ev != nil; ev = r.queue.Pop() {
		if err := r.process(ev); err != nil {
			r.dumpHistory(err)
			return nil, err
		}
	}
	r.mlog.Verbose(1, "Sweep: %d segments, %d events processed (%d redundant), %d intersections\n",
		len(sl.segments), r.processed, r.skipped, len(r.result))
	if r.result == nil {
		r.result = []Intersection{}
	}
	return r.result, nil
}

func (r *sweepRun) process(ev *SweepEvent) error {
	r.ctx.y = ev.Pos[1]
	r.processed++
	r.history.Enqueue(ev)
	if r.trace != nil {
		r.trace(*ev)
	}
	var err error
	switch ev.Type {
	case EVENT_INSERT:
		err = r.insert(ev.Entry)
	case EVENT_DELETE:
		err = r.delete(ev.Entry)
	case EVENT_INTERSECT:
		err = r.intersect(ev)
	}
	if err == nil {
		r.mlog.DumpStatus(ev.String(), r.status.Entries())
	}
	return err
}

func (r *sweepRun) insert(e *StatusEntry) error {
	r.ctx.preEvent = true
	if err := r.status.Insert(e); err != nil {
		return err
	}
	if prev := r.status.Prev(e); prev != nil {
		r.checkIntersection(prev, e)
	}
	if next := r.status.Next(e); next != nil {
		r.checkIntersection(e, next)
	}
	return nil
}

func (r *sweepRun) delete(e *StatusEntry) error {
	r.ctx.preEvent = false
	prev := r.status.Prev(e)
	next := r.status.Next(e)
	if err := r.status.Delete(e); err != nil {
		return err
	}
	if prev != nil && next != nil {
		r.checkIntersection(prev, next)
	}
	return nil
}

func (r *sweepRun) isReported(a, b *StatusEntry) bool {
	_, ok := r.reported[makePairKey(a.Index, b.Index)]
	return ok
}

// intersect handles everything crossing at ev.Pos at once, not just the pair
// that scheduled the event. Whatever crosses there is adjacent in the status,
// gets reported pairwise, and is flipped over by removing it under the order
// above the point and putting it back under the order below it
func (r *sweepRun) intersect(ev *SweepEvent) error {
	if r.isReported(ev.Entry, ev.Other) {
		// handled as part of an earlier group at this very point
		r.skipped++
		return nil
	}
	r.ctx.preEvent = true
	group := r.crossingGroup(ev)
	if !containsEntry(group, ev.Other) {
		return errors.Wrapf(ErrInvariant,
			"segments #%d and #%d cross at %s but are not adjacent in status",
			ev.Entry.Index, ev.Other.Index, pointToString(ev.Pos))
	}
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			key := makePairKey(group[i].Index, group[j].Index)
			if _, ok := r.reported[key]; ok {
				continue
			}
			r.reported[key] = struct{}{}
			r.result = append(r.result, Intersection{
				One:   group[i].Index,
				Two:   group[j].Index,
				Point: ev.Pos,
			})
		}
	}
	for _, e := range group {
		if err := r.status.Delete(e); err != nil {
			return err
		}
	}
	r.ctx.preEvent = false
	for _, e := range group {
		if err := r.status.Insert(e); err != nil {
			return err
		}
	}
	leftmost := group[0]
	for p := r.status.Prev(leftmost); p != nil && containsEntry(group, p); p = r.status.Prev(p) {
		leftmost = p
	}
	rightmost := group[0]
	for n := r.status.Next(rightmost); n != nil && containsEntry(group, n); n = r.status.Next(n) {
		rightmost = n
	}
	if prev := r.status.Prev(leftmost); prev != nil {
		r.checkIntersection(prev, leftmost)
	}
	if next := r.status.Next(rightmost); next != nil {
		r.checkIntersection(rightmost, next)
	}
	return nil
}

// crossingGroup collects entries passing through the event point, in status
// order (left to right above the point)
func (r *sweepRun) crossingGroup(ev *SweepEvent) []*StatusEntry {
	x := ev.Pos[0]
	tol := SWEEP_EPSILON * (1 + math.Abs(x))
	atPoint := func(e *StatusEntry) bool {
		return math.Abs(e.X(r.ctx.y)-x) <= tol
	}
	var left []*StatusEntry
	for p := r.status.Prev(ev.Entry); p != nil && atPoint(p); p = r.status.Prev(p) {
		left = append(left, p)
	}
	group := make([]*StatusEntry, 0, len(left)+2)
	for i := len(left) - 1; i >= 0; i-- {
		group = append(group, left[i])
	}
	group = append(group, ev.Entry)
	for n := r.status.Next(ev.Entry); n != nil && atPoint(n); n = r.status.Next(n) {
		group = append(group, n)
	}
	return group
}

func containsEntry(group []*StatusEntry, e *StatusEntry) bool {
	for _, g := range group {
		if g == e {
			return true
		}
	}
	return false
}

// checkIntersection schedules the crossing of two neighbours if it is still
// ahead of the sweep line
func (r *sweepRun) checkIntersection(left, right *StatusEntry) {
	p, ok := left.Segment.Intersect(right.Segment)
	if !ok {
		return
	}
	y := p[1]
	if !(y < r.ctx.y) {
		return
	}
	if !left.straddles(y) || !right.straddles(y) {
		return
	}
	r.queue.PushIntersection(left, right, p)
}

func (r *sweepRun) dumpHistory(err error) {
	r.mlog.Verbose(2, "Sweep aborted: %s\n", err.Error())
	r.mlog.Verbose(2, "Last %d events, oldest first:\n", r.history.Size())
	for _, ev := range r.history.Snapshot() {
		r.mlog.Verbose(2, "  %s\n", ev.String())
	}
}
