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
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orders entries by input index, good enough to exercise the tree
type indexOrder struct{}

func (indexOrder) Compare(a, b *StatusEntry) int {
	return a.Index - b.Index
}

// checkTree verifies parent links, heights, AVL balance and order, returns
// the number of nodes
func checkTree(t *testing.T, tree *StatusTree) int {
	var walk func(n *statusNode) (int, int)
	walk = func(n *statusNode) (int, int) {
		if n == nil {
			return 0, 0
		}
		require.Same(t, n, n.entry.node, "back pointer of #%d", n.entry.Index)
		if n.left != nil {
			require.Same(t, n, n.left.parent)
			require.True(t, tree.order.Compare(n.left.entry, n.entry) < 0)
		}
		if n.right != nil {
			require.Same(t, n, n.right.parent)
			require.True(t, tree.order.Compare(n.right.entry, n.entry) > 0)
		}
		lh, lc := walk(n.left)
		rh, rc := walk(n.right)
		require.True(t, lh-rh <= 1 && rh-lh <= 1, "unbalanced at #%d", n.entry.Index)
		h := lh
		if rh > h {
			h = rh
		}
		require.Equal(t, h+1, n.height, "height at #%d", n.entry.Index)
		return h + 1, lc + rc + 1
	}
	if tree.root != nil {
		require.Nil(t, tree.root.parent)
	}
	_, count := walk(tree.root)
	require.Equal(t, tree.Len(), count)
	return count
}

func TestStatusTreeRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	tree := NewStatusTree(indexOrder{})
	entries := make([]*StatusEntry, 300)
	for i := range entries {
		entries[i] = NewStatusEntry(Seg(0, 0, 1, 1), i)
	}
	for round := 0; round < 3000; round++ {
		e := entries[rnd.Intn(len(entries))]
		if e.inStatus() {
			require.NoError(t, tree.Delete(e))
			assert.False(t, e.inStatus())
		} else {
			require.NoError(t, tree.Insert(e))
			assert.True(t, e.inStatus())
		}
		if round%50 == 0 {
			checkTree(t, tree)
		}
	}
	checkTree(t, tree)

	// in-order walk is sorted, Prev undoes Next
	list := tree.Entries()
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].Index < list[i].Index)
		assert.Same(t, list[i-1], tree.Prev(list[i]))
		assert.Same(t, list[i], tree.Next(list[i-1]))
	}
	if len(list) > 0 {
		assert.Nil(t, tree.Prev(list[0]))
		assert.Nil(t, tree.Next(list[len(list)-1]))
		assert.Same(t, list[0], tree.First())
	}
}

func TestStatusTreeSequential(t *testing.T) {
	// ascending inserts are the classic way to break an unbalanced tree
	tree := NewStatusTree(indexOrder{})
	entries := make([]*StatusEntry, 1024)
	for i := range entries {
		entries[i] = NewStatusEntry(Seg(0, 0, 1, 1), i)
		require.NoError(t, tree.Insert(entries[i]))
	}
	checkTree(t, tree)
	assert.True(t, tree.root.height <= 14, "height %d", tree.root.height)
	for i := 0; i < len(entries); i += 2 {
		require.NoError(t, tree.Delete(entries[i]))
	}
	checkTree(t, tree)
	assert.Equal(t, 512, tree.Len())
	assert.Same(t, entries[1], tree.First())
}

func TestStatusTreeErrors(t *testing.T) {
	tree := NewStatusTree(indexOrder{})
	a := NewStatusEntry(Seg(0, 0, 1, 1), 1)
	b := NewStatusEntry(Seg(0, 0, 1, 1), 2)
	require.NoError(t, tree.Insert(a))

	err := tree.Insert(a)
	require.Error(t, err)
	assert.Equal(t, ErrInvariant, errors.Cause(err))

	// an impostor comparing equal to a stored entry
	twin := NewStatusEntry(Seg(0, 0, 1, 1), 1)
	err = tree.Insert(twin)
	require.Error(t, err)
	assert.True(t, IsInvariantViolation(err))

	err = tree.Delete(b)
	require.Error(t, err)
	assert.True(t, IsInvariantViolation(err))
	err = tree.Delete(twin)
	assert.True(t, IsInvariantViolation(err), "found by order but not the same entry")

	require.NoError(t, tree.Delete(a))
	assert.Equal(t, 0, tree.Len())
	assert.Nil(t, tree.First())
	assert.Nil(t, tree.Prev(a))

	// gone entries can come back
	require.NoError(t, tree.Insert(a))
	assert.True(t, a.inStatus())
}
