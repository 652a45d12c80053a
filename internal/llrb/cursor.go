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

package llrb

// Cursor walks a tree in ascending order using an explicit stack, so it can
// be suspended between steps and rewound at will.
//
// A cursor is invalidated by any write to the tree; continuing to use it
// afterwards yields unspecified entries.
type Cursor[K, V any] struct {
	tree  *Tree[K, V]
	stack []*node[K, V]
	curr  *node[K, V]
}

// Cursor returns a cursor positioned before the smallest entry.
func (t *Tree[K, V]) Cursor() *Cursor[K, V] {
	c := &Cursor[K, V]{tree: t}
	c.First()
	return c
}

// First positions the cursor before the smallest entry.
func (c *Cursor[K, V]) First() {
	c.stack, c.curr = c.stack[:0], nil
	for n := c.tree.root; n != nil; n = n.left {
		c.stack = append(c.stack, n)
	}
}

// Seek positions the cursor before the smallest entry whose key is greater
// than or equal to pivot.
func (c *Cursor[K, V]) Seek(pivot K) {
	c.stack, c.curr = c.stack[:0], nil
	for n := c.tree.root; n != nil; {
		if 0 <= c.tree.compare(n.key, pivot) {
			c.stack = append(c.stack, n)
			n = n.left
		} else {
			n = n.right
		}
	}
}

// Next advances the cursor to the next entry, returning false when the tree
// is exhausted.
func (c *Cursor[K, V]) Next() bool {
	if len(c.stack) == 0 {
		c.curr = nil
		return false
	}
	index := len(c.stack) - 1
	c.curr = c.stack[index]
	c.stack[index] = nil
	c.stack = c.stack[:index]
	for n := c.curr.right; n != nil; n = n.left {
		c.stack = append(c.stack, n)
	}
	return true
}

// Valid reports whether the cursor is positioned at an entry.
func (c *Cursor[K, V]) Valid() bool {
	return c.curr != nil
}

// Key returns the key at the cursor.  It must only be called after Next
// returned true.
func (c *Cursor[K, V]) Key() K {
	return c.curr.key
}

// Value returns the value at the cursor.  It must only be called after Next
// returned true.
func (c *Cursor[K, V]) Value() V {
	return c.curr.value
}
