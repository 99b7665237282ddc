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

// Fixed size power of two ring buffer of sweep events. Unlike a queue it
// never refuses to take an event: when full, the oldest one is forgotten.
// Sweep keeps the last few processed events in it so that there's something
// to print when the run aborts
// https://www.snellman.net/blog/archive/2016-12-13-ring-buffers/

const MAX_RING_CAPACITY = uint32(1 << 20)

type EventRing struct {
	read     uint32
	write    uint32
	capacity uint32 // never changes after initialization
	buf      []SweepEvent
}

// Capacity is rounded up to a power of two
func CreateEventRing(capacity uint32) *EventRing {
	iCap := RoundPOW2_Uint32(capacity)
	if iCap < capacity {
		Log.Panic("Integer overflow when computing ring capacity (before rounding up to power of two: %d)\n",
			capacity)
	}
	if iCap > MAX_RING_CAPACITY {
		Log.Panic("Exceeds maximum ring capacity: %d (%d rounded up to power of two)\n",
			iCap, capacity)
	}
	if iCap == 0 {
		iCap = 1
	}
	return &EventRing{
		capacity: iCap,
		buf:      make([]SweepEvent, iCap),
	}
}

func RoundPOW2_Uint32(x uint32) uint32 {
	if x <= 2 {
		return x
	}

	x--

	for tmp := x >> 1; tmp != 0; tmp >>= 1 {
		x |= tmp
	}

	return x + 1
}

func (r *EventRing) mask(val uint32) uint32 {
	return val & (r.capacity - 1)
}

// Enqueue copies the event in, evicting the oldest when full
func (r *EventRing) Enqueue(ev *SweepEvent) {
	if r.Full() {
		r.read++
	}
	r.buf[r.mask(r.write)] = *ev
	r.write++
}

func (r *EventRing) Size() uint32 {
	return r.write - r.read
}

func (r *EventRing) Full() bool {
	return r.Size() == r.capacity
}

// Snapshot lists the events oldest first without consuming them
func (r *EventRing) Snapshot() []SweepEvent {
	res := make([]SweepEvent, 0, r.Size())
	for i := r.read; i != r.write; i++ {
		res = append(res, r.buf[r.mask(i)])
	}
	return res
}
