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

package store

import (
	"github.com/9rum/gridstore/internal/cell"
	"github.com/9rum/gridstore/internal/llrb"
)

// Enumerator is a restartable cursor over the occupied cells of a store that
// lie inside a rectangle, in row-major order.
//
// Any Set, Remove, Clear, Insert or Delete on the store invalidates the
// enumerator until Reset is called.  SetValue does not, since it only ever
// overwrites the cell the enumerator stands on.
type Enumerator[V any] struct {
	store  *Store[V]
	rng    cell.Range
	cursor *llrb.Cursor[cell.Key, V]
	curr   cell.Key
	valid  bool
	done   bool
}

// Enumerate returns an enumerator over the whole sheet.
func (s *Store[V]) Enumerate() *Enumerator[V] {
	return s.EnumerateRange(s.bounds.Full())
}

// EnumerateRange returns an enumerator over the cells inside r.
func (s *Store[V]) EnumerateRange(r cell.Range) *Enumerator[V] {
	e := &Enumerator[V]{
		store:  s,
		rng:    r,
		cursor: s.tree.Cursor(),
	}
	e.Reset()
	return e
}

// Reset rewinds the enumerator to a fresh traversal of the store.
func (e *Enumerator[V]) Reset() {
	// No key before the top-left corner in row-major order can lie inside
	// the rectangle.
	e.cursor.Seek(e.rng.From)
	e.curr = e.rng.From
	e.valid = false
	e.done = false
}

// MoveNext advances to the next occupied cell inside the rectangle.  Once it
// returns false it keeps doing so until Reset.
func (e *Enumerator[V]) MoveNext() bool {
	if e.done {
		return false
	}
	for e.cursor.Next() {
		key := e.cursor.Key()
		// Row-major order guarantees nothing after this key is inside.
		if e.rng.To.Row < key.Row || (key.Row == e.rng.To.Row && e.rng.To.Col < key.Col) {
			break
		}
		if e.rng.Contains(key) {
			e.curr = key
			e.valid = true
			return true
		}
	}
	e.valid = false
	e.done = true
	return false
}

// Key returns the current cell, or the top-left corner of the rectangle
// before the first call to MoveNext.
func (e *Enumerator[V]) Key() cell.Key {
	return e.curr
}

// Row returns the row of the current cell.
func (e *Enumerator[V]) Row() int {
	return e.curr.Row
}

// Column returns the column of the current cell.
func (e *Enumerator[V]) Column() int {
	return e.curr.Col
}

// CellAddress returns the current cell in A1 notation.
func (e *Enumerator[V]) CellAddress() string {
	return e.curr.Address()
}

// Value reads the current cell under the store lock.  It returns the zero
// value unless the last call to MoveNext returned true.
func (e *Enumerator[V]) Value() (_ V) {
	if !e.valid {
		return
	}
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	value, _ := e.store.tree.Get(e.curr)
	return value
}

// SetValue writes the current cell under the store lock.  It does nothing
// unless the last call to MoveNext returned true.
func (e *Enumerator[V]) SetValue(value V) {
	if !e.valid {
		return
	}
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	e.store.tree.ReplaceOrInsert(e.curr, value)
}
