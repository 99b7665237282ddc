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

// status
package castlecrush

import (
	"github.com/pkg/errors"
)

// Status structure of the sweep: an AVL tree with parent links, so that
// neighbours of an entry are found without searching. The order is not a
// property of the entries, it is supplied from outside and is allowed to
// change between operations (as the sweep line moves) as long as the order
// of entries already in the tree stays consistent at the moment of each
// operation

// StatusOrder compares two entries. Must return 0 only for a == b
type StatusOrder interface {
	Compare(a, b *StatusEntry) int
}

// StatusEntry is a segment that is (or will be) in the status, along with a
// few things precomputed for the comparator
type StatusEntry struct {
	Segment Segment
	Index   int // index of the segment in the input
	top     Point
	bottom  Point
	islope  float64 // dx/dy
	node    *statusNode
}

func NewStatusEntry(s Segment, index int) *StatusEntry {
	return &StatusEntry{
		Segment: s,
		Index:   index,
		top:     s.Highest(),
		bottom:  s.Lowest(),
		islope:  s.InverseSlope(),
	}
}

func (e *StatusEntry) X(y float64) float64 {
	return e.Segment.X(y)
}

// straddles is true when y is strictly inside the entry's vertical extent
func (e *StatusEntry) straddles(y float64) bool {
	return e.bottom[1] < y && y < e.top[1]
}

// inStatus tells whether the entry is currently stored in some tree
func (e *StatusEntry) inStatus() bool {
	return e.node != nil
}

type statusNode struct {
	parent, left, right *statusNode
	height              int
	entry               *StatusEntry
}

type StatusTree struct {
	root  *statusNode
	order StatusOrder
	size  int
}

func NewStatusTree(order StatusOrder) *StatusTree {
	return &StatusTree{order: order}
}

func (t *StatusTree) Len() int {
	return t.size
}

func (n *statusNode) prev() *statusNode {
	if n.left != nil {
		n = n.left
		for n.right != nil {
			n = n.right
		}
		return n
	}
	for n.parent != nil && n.parent.left == n {
		n = n.parent
	}
	return n.parent
}

func (n *statusNode) next() *statusNode {
	if n.right != nil {
		n = n.right
		for n.left != nil {
			n = n.left
		}
		return n
	}
	for n.parent != nil && n.parent.right == n {
		n = n.parent
	}
	return n.parent
}

func (n *statusNode) balance() int {
	r := 0
	if n.left != nil {
		r -= n.left.height
	}
	if n.right != nil {
		r += n.right.height
	}
	return r
}

func (n *statusNode) updateHeight() {
	n.height = 0
	if n.left != nil {
		n.height = n.left.height
	}
	if n.right != nil && n.height < n.right.height {
		n.height = n.right.height
	}
	n.height++
}

// replaceChild puts b where a was among n's children
func (n *statusNode) replaceChild(a, b *statusNode) {
	if n.left == a {
		n.left = b
	} else {
		n.right = b
	}
	if b != nil {
		b.parent = n
	}
}

// rotations keep the parent link of the subtree root up to date, but not the
// tree root: rebalance takes care of that
func (a *statusNode) rotateLeft() *statusNode {
	b := a.right
	if a.parent != nil {
		a.parent.replaceChild(a, b)
	} else {
		b.parent = nil
	}
	a.right = b.left
	if a.right != nil {
		a.right.parent = a
	}
	b.left = a
	a.parent = b
	a.updateHeight()
	b.updateHeight()
	return b
}

func (a *statusNode) rotateRight() *statusNode {
	b := a.left
	if a.parent != nil {
		a.parent.replaceChild(a, b)
	} else {
		b.parent = nil
	}
	a.left = b.right
	if a.left != nil {
		a.left.parent = a
	}
	b.right = a
	a.parent = b
	a.updateHeight()
	b.updateHeight()
	return b
}

// rebalance walks from n up to the root fixing heights and rotating where
// the subtrees differ in height by more than one
func (t *StatusTree) rebalance(n *statusNode) {
	for n != nil {
		n.updateHeight()
		if bal := n.balance(); bal > 1 {
			if n.right.balance() < 0 {
				n.right.rotateRight()
			}
			n = n.rotateLeft()
		} else if bal < -1 {
			if n.left.balance() > 0 {
				n.left.rotateLeft()
			}
			n = n.rotateRight()
		}
		if n.parent == nil {
			t.root = n
		}
		n = n.parent
	}
}

// find returns the node holding an entry equal to e according to the current
// order, or the node under which e would be attached and the side
func (t *StatusTree) find(e *StatusEntry) (*statusNode, int) {
	n := t.root
	for n != nil {
		cmp := t.order.Compare(e, n.entry)
		if cmp < 0 {
			if n.left == nil {
				return n, -1
			}
			n = n.left
		} else if cmp > 0 {
			if n.right == nil {
				return n, 1
			}
			n = n.right
		} else {
			return n, 0
		}
	}
	return nil, 0
}

// Insert fails if the entry is already in a tree, or if the order considers it
// equal to something stored (which a correct order never does)
func (t *StatusTree) Insert(e *StatusEntry) error {
	if e.inStatus() {
		return errors.Wrapf(ErrInvariant, "status insert: segment #%d is already in status", e.Index)
	}
	node := &statusNode{height: 1, entry: e}
	if t.root == nil {
		t.root = node
		e.node = node
		t.size++
		return nil
	}
	parent, cmp := t.find(e)
	switch {
	case cmp < 0:
		parent.left = node
	case cmp > 0:
		parent.right = node
	default:
		return errors.Wrapf(ErrInvariant, "status insert: segment #%d compares equal to #%d",
			e.Index, parent.entry.Index)
	}
	node.parent = parent
	e.node = node
	t.size++
	t.rebalance(parent)
	return nil
}

// Delete looks the entry up using the order, the same way Insert does. If the
// order has drifted so that the entry can no longer be found by searching,
// this fails: the status is then out of sync with reality
func (t *StatusTree) Delete(e *StatusEntry) error {
	n, cmp := t.find(e)
	if n == nil || cmp != 0 || n.entry != e {
		return errors.Wrapf(ErrInvariant, "status delete: segment #%d not found", e.Index)
	}
	if n.left != nil && n.right != nil {
		// swap payload with in-order successor, then remove that node which
		// has at most one child
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		n.entry, succ.entry = succ.entry, n.entry
		n.entry.node = n
		succ.entry.node = succ
		n = succ
	}
	child := n.left
	if child == nil {
		child = n.right
	}
	parent := n.parent
	if parent != nil {
		parent.replaceChild(n, child)
	} else {
		t.root = child
		if child != nil {
			child.parent = nil
		}
	}
	n.entry.node = nil
	n.entry = nil
	n.parent, n.left, n.right = nil, nil, nil
	t.size--
	t.rebalance(parent)
	return nil
}

// Prev returns the entry immediately left of e, nil if none (or if e is not
// stored)
func (t *StatusTree) Prev(e *StatusEntry) *StatusEntry {
	if e == nil || e.node == nil {
		return nil
	}
	if p := e.node.prev(); p != nil {
		return p.entry
	}
	return nil
}

func (t *StatusTree) Next(e *StatusEntry) *StatusEntry {
	if e == nil || e.node == nil {
		return nil
	}
	if n := e.node.next(); n != nil {
		return n.entry
	}
	return nil
}

func (t *StatusTree) First() *StatusEntry {
	if t.root == nil {
		return nil
	}
	n := t.root
	for n.left != nil {
		n = n.left
	}
	return n.entry
}

// Entries lists the status left to right
func (t *StatusTree) Entries() []*StatusEntry {
	res := make([]*StatusEntry, 0, t.size)
	for e := t.First(); e != nil; e = t.Next(e) {
		res = append(res, e)
	}
	return res
}
