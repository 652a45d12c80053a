// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package llrb implements an in-memory ordered map backed by a left-leaning
// red-black tree.
//
// The tree keeps the 2-3 tree correspondence described by Sedgewick:
//   - every red link leans left,
//   - no node has two red links attached to it,
//   - every path from the root to a nil link has the same number of black
//     links.
//
// These invariants bound the height of the tree to 2*log2(n+1), so lookups,
// insertions and deletions are all O(log n).  Check verifies them and is
// meant for tests and debug builds.
//
// The API mirrors the B-tree containers in the Go ecosystem where possible
// (ReplaceOrInsert, Delete, Get, Min, Max, Ascend*, Descend*), except that
// keys and values are stored separately and the order is supplied by the
// caller as a three-way comparison.
package llrb

import "iter"

// Compare is a three-way comparison returning a negative number when a < b,
// zero when a == b and a positive number when a > b.  It must provide a
// total order over K.
type Compare[K any] func(a, b K) int

// ItemIterator allows callers of {A/De}scend* to iterate in-order over
// portions of the tree.  When this function returns false, iteration will
// stop and the associated {A/De}scend* function will immediately return.
type ItemIterator[K, V any] func(key K, value V) bool

// node is an internal node in a tree.  The color of a node is the color of
// the link from its parent.
type node[K, V any] struct {
	key         K
	value       V
	left, right *node[K, V]
	red         bool
}

// Tree is a generic ordered map implemented as a left-leaning red-black tree.
//
// Write operations are not safe for concurrent mutation by multiple
// goroutines, but Read operations are.
type Tree[K, V any] struct {
	root    *node[K, V]
	length  int
	compare Compare[K]
}

// New creates a new empty tree ordered by compare.
func New[K, V any](compare Compare[K]) *Tree[K, V] {
	if compare == nil {
		panic("nil compare")
	}
	return &Tree[K, V]{compare: compare}
}

func isRed[K, V any](n *node[K, V]) bool {
	return n != nil && n.red
}

// rotateLeft turns a right-leaning red link into a left-leaning one.
func rotateLeft[K, V any](h *node[K, V]) *node[K, V] {
	x := h.right
	h.right = x.left
	x.left = h
	x.red = h.red
	h.red = true
	return x
}

// rotateRight turns a left-leaning red link into a right-leaning one.
func rotateRight[K, V any](h *node[K, V]) *node[K, V] {
	x := h.left
	h.left = x.right
	x.right = h
	x.red = h.red
	h.red = true
	return x
}

// flip inverts the colors of a node and its two children, which splits or
// merges a temporary 4-node.
func flip[K, V any](h *node[K, V]) {
	h.red = !h.red
	h.left.red = !h.left.red
	h.right.red = !h.right.red
}

// fixUp restores the invariants on the way back up after an insertion or a
// deletion below h.
func fixUp[K, V any](h *node[K, V]) *node[K, V] {
	if isRed(h.right) && !isRed(h.left) {
		h = rotateLeft(h)
	}
	if isRed(h.left) && isRed(h.left.left) {
		h = rotateRight(h)
	}
	if isRed(h.left) && isRed(h.right) {
		flip(h)
	}
	return h
}

// moveRedLeft makes h.left or one of its children red, assuming h is red and
// both h.left and h.left.left are black.
func moveRedLeft[K, V any](h *node[K, V]) *node[K, V] {
	flip(h)
	if isRed(h.right.left) {
		h.right = rotateRight(h.right)
		h = rotateLeft(h)
		flip(h)
	}
	return h
}

// moveRedRight makes h.right or one of its children red, assuming h is red
// and both h.right and h.right.left are black.
func moveRedRight[K, V any](h *node[K, V]) *node[K, V] {
	flip(h)
	if isRed(h.left.left) {
		h = rotateRight(h)
		flip(h)
	}
	return h
}

// insert inserts an entry into the subtree rooted at h.  Should an equal key
// be found, its value is replaced and the previous one returned.
func (t *Tree[K, V]) insert(h *node[K, V], key K, value V) (_ *node[K, V], old V, replaced bool) {
	if h == nil {
		return &node[K, V]{key: key, value: value, red: true}, old, false
	}
	switch c := t.compare(key, h.key); {
	case c < 0:
		h.left, old, replaced = t.insert(h.left, key, value)
	case 0 < c:
		h.right, old, replaced = t.insert(h.right, key, value)
	default:
		old, replaced = h.value, true
		h.key, h.value = key, value
	}
	return fixUp(h), old, replaced
}

// ReplaceOrInsert adds the given entry to the tree.  If the tree already
// holds an equal key, its value is overwritten and the previous value is
// returned along with true.  Otherwise, (zeroValue, false).
func (t *Tree[K, V]) ReplaceOrInsert(key K, value V) (old V, replaced bool) {
	t.root, old, replaced = t.insert(t.root, key, value)
	t.root.red = false
	if !replaced {
		t.length++
	}
	return
}

// deleteMin removes the smallest entry in the subtree rooted at h.
func deleteMin[K, V any](h *node[K, V]) *node[K, V] {
	if h.left == nil {
		return nil
	}
	if !isRed(h.left) && !isRed(h.left.left) {
		h = moveRedLeft(h)
	}
	h.left = deleteMin(h.left)
	return fixUp(h)
}

// deleteMax removes the largest entry in the subtree rooted at h.
func deleteMax[K, V any](h *node[K, V]) *node[K, V] {
	if isRed(h.left) {
		h = rotateRight(h)
	}
	if h.right == nil {
		return nil
	}
	if !isRed(h.right) && !isRed(h.right.left) {
		h = moveRedRight(h)
	}
	h.right = deleteMax(h.right)
	return fixUp(h)
}

// delete removes key from the subtree rooted at h.  The key must be present.
func (t *Tree[K, V]) delete(h *node[K, V], key K) (_ *node[K, V], out V) {
	if t.compare(key, h.key) < 0 {
		if !isRed(h.left) && !isRed(h.left.left) {
			h = moveRedLeft(h)
		}
		h.left, out = t.delete(h.left, key)
		return fixUp(h), out
	}
	if isRed(h.left) {
		h = rotateRight(h)
	}
	if t.compare(key, h.key) == 0 && h.right == nil {
		return nil, h.value
	}
	if !isRed(h.right) && !isRed(h.right.left) {
		h = moveRedRight(h)
	}
	if t.compare(key, h.key) == 0 {
		// Replace the entry with its successor and delete the successor from
		// the right subtree instead.
		out = h.value
		succ := min(h.right)
		h.key, h.value = succ.key, succ.value
		h.right = deleteMin(h.right)
	} else {
		h.right, out = t.delete(h.right, key)
	}
	return fixUp(h), out
}

// redRoot colors the root red when both of its children are black, which
// is the precondition for the top-down deletion helpers.
func (t *Tree[K, V]) redRoot() {
	if !isRed(t.root.left) && !isRed(t.root.right) {
		t.root.red = true
	}
}

// Delete removes the entry with the given key from the tree, returning its
// value.  If no such entry exists, returns (zeroValue, false) and leaves the
// tree untouched.
func (t *Tree[K, V]) Delete(key K) (out V, _ bool) {
	if !t.Has(key) {
		return
	}
	t.redRoot()
	t.root, out = t.delete(t.root, key)
	if t.root != nil {
		t.root.red = false
	}
	t.length--
	return out, true
}

// DeleteMin removes the smallest entry in the tree and returns it.
// If the tree is empty, returns (zeroValue, zeroValue, false).
func (t *Tree[K, V]) DeleteMin() (key K, value V, _ bool) {
	if t.root == nil {
		return
	}
	n := min(t.root)
	key, value = n.key, n.value
	t.redRoot()
	t.root = deleteMin(t.root)
	if t.root != nil {
		t.root.red = false
	}
	t.length--
	return key, value, true
}

// DeleteMax removes the largest entry in the tree and returns it.
// If the tree is empty, returns (zeroValue, zeroValue, false).
func (t *Tree[K, V]) DeleteMax() (key K, value V, _ bool) {
	if t.root == nil {
		return
	}
	n := max(t.root)
	key, value = n.key, n.value
	t.redRoot()
	t.root = deleteMax(t.root)
	if t.root != nil {
		t.root.red = false
	}
	t.length--
	return key, value, true
}

// min returns the leftmost node in the subtree.
func min[K, V any](n *node[K, V]) *node[K, V] {
	for n.left != nil {
		n = n.left
	}
	return n
}

// max returns the rightmost node in the subtree.
func max[K, V any](n *node[K, V]) *node[K, V] {
	for n.right != nil {
		n = n.right
	}
	return n
}

// Get looks for the key in the tree, returning its value.  It returns
// (zeroValue, false) if unable to find that key.
func (t *Tree[K, V]) Get(key K) (_ V, _ bool) {
	for n := t.root; n != nil; {
		switch c := t.compare(key, n.key); {
		case c < 0:
			n = n.left
		case 0 < c:
			n = n.right
		default:
			return n.value, true
		}
	}
	return
}

// Has returns true if the given key is in the tree.
func (t *Tree[K, V]) Has(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// Min returns the smallest entry in the tree, or (zeroValue, zeroValue,
// false) if the tree is empty.
func (t *Tree[K, V]) Min() (_ K, _ V, _ bool) {
	if t.root == nil {
		return
	}
	n := min(t.root)
	return n.key, n.value, true
}

// Max returns the largest entry in the tree, or (zeroValue, zeroValue,
// false) if the tree is empty.
func (t *Tree[K, V]) Max() (_ K, _ V, _ bool) {
	if t.root == nil {
		return
	}
	n := max(t.root)
	return n.key, n.value, true
}

// Len returns the number of entries currently in the tree.
func (t *Tree[K, V]) Len() int {
	return t.length
}

// Clear removes all entries from the tree.  The nodes are left to Go's
// normal GC processes.
func (t *Tree[K, V]) Clear() {
	t.root, t.length = nil, 0
}

// Height returns the number of nodes on the longest path from the root to a
// leaf.  An empty tree has height 0.
func (t *Tree[K, V]) Height() int {
	return height(t.root)
}

func height[K, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	l, r := height(n.left), height(n.right)
	if l < r {
		return r + 1
	}
	return l + 1
}

type optionalKey[K any] struct {
	key   K
	valid bool
}

func optional[K any](key K) optionalKey[K] {
	return optionalKey[K]{key: key, valid: true}
}

func empty[K any]() optionalKey[K] {
	return optionalKey[K]{}
}

// ascend visits the subtree rooted at h in ascending order, starting at the
// first key greater than or equal to start and stopping before the first key
// greater than or equal to stop.  It returns false once iteration stopped.
func (t *Tree[K, V]) ascend(h *node[K, V], start, stop optionalKey[K], iter ItemIterator[K, V]) bool {
	if h == nil {
		return true
	}
	if start.valid && t.compare(h.key, start.key) < 0 {
		return t.ascend(h.right, start, stop, iter)
	}
	if !t.ascend(h.left, start, stop, iter) {
		return false
	}
	if stop.valid && 0 <= t.compare(h.key, stop.key) {
		return false
	}
	if !iter(h.key, h.value) {
		return false
	}
	return t.ascend(h.right, start, stop, iter)
}

// descend visits the subtree rooted at h in descending order, starting at
// the last key less than or equal to start and stopping after the last key
// less than or equal to stop.  It returns false once iteration stopped.
func (t *Tree[K, V]) descend(h *node[K, V], start, stop optionalKey[K], iter ItemIterator[K, V]) bool {
	if h == nil {
		return true
	}
	if start.valid && 0 < t.compare(h.key, start.key) {
		return t.descend(h.left, start, stop, iter)
	}
	if !t.descend(h.right, start, stop, iter) {
		return false
	}
	if stop.valid && t.compare(h.key, stop.key) <= 0 {
		return false
	}
	if !iter(h.key, h.value) {
		return false
	}
	return t.descend(h.left, start, stop, iter)
}

// Ascend calls the iterator for every entry in the tree within the range
// [first, last], until iterator returns false.
func (t *Tree[K, V]) Ascend(iterator ItemIterator[K, V]) {
	t.ascend(t.root, empty[K](), empty[K](), iterator)
}

// AscendGreaterOrEqual calls the iterator for every entry in the tree within
// the range [pivot, last], until iterator returns false.
func (t *Tree[K, V]) AscendGreaterOrEqual(pivot K, iterator ItemIterator[K, V]) {
	t.ascend(t.root, optional(pivot), empty[K](), iterator)
}

// AscendRange calls the iterator for every entry in the tree within the
// range [greaterOrEqual, lessThan), until iterator returns false.
func (t *Tree[K, V]) AscendRange(greaterOrEqual, lessThan K, iterator ItemIterator[K, V]) {
	t.ascend(t.root, optional(greaterOrEqual), optional(lessThan), iterator)
}

// Descend calls the iterator for every entry in the tree within the range
// [last, first], until iterator returns false.
func (t *Tree[K, V]) Descend(iterator ItemIterator[K, V]) {
	t.descend(t.root, empty[K](), empty[K](), iterator)
}

// DescendLessOrEqual calls the iterator for every entry in the tree within
// the range [pivot, first], until iterator returns false.
func (t *Tree[K, V]) DescendLessOrEqual(pivot K, iterator ItemIterator[K, V]) {
	t.descend(t.root, optional(pivot), empty[K](), iterator)
}

// Keys returns a lazy sequence of all keys in ascending order.  Every range
// over the sequence starts a fresh in-order traversal.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		t.Ascend(func(key K, _ V) bool {
			return yield(key)
		})
	}
}

// All returns a lazy sequence of all entries in ascending key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.Ascend(yield)
	}
}
