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

// Package store provides a sparse cell store for worksheets.  Only the
// cells that have been set are materialized; they are kept in row-major
// order in a balanced tree, which allows bounding-box queries, neighbor
// navigation and structural shifts when rows or columns are inserted or
// deleted.
package store

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"sync"

	"github.com/9rum/gridstore/internal/cell"
	"github.com/9rum/gridstore/internal/llrb"
)

// ErrNegativeCount is returned when Insert or Delete is given a negative
// number of rows or columns.
var ErrNegativeCount = errors.New("negative row or column count")

// Navigation selects how NextCell and PrevCell find neighbors.
type Navigation int

const (
	// ScanNavigation visits every coordinate of the occupied bounding box
	// between the start and the neighbor.  Its cost grows with the area of
	// the bounding box rather than with the number of cells.
	ScanNavigation Navigation = iota

	// TreeNavigation walks to the successor or predecessor in the tree in
	// O(log n).
	TreeNavigation
)

func (n Navigation) String() string {
	switch n {
	case ScanNavigation:
		return "scan"
	case TreeNavigation:
		return "tree"
	default:
		return fmt.Sprintf("Navigation(%d)", int(n))
	}
}

// ParseNavigation parses the name of a navigation strategy.
func ParseNavigation(name string) (Navigation, error) {
	switch name {
	case "scan":
		return ScanNavigation, nil
	case "tree":
		return TreeNavigation, nil
	default:
		return 0, fmt.Errorf("unknown navigation %q", name)
	}
}

// Options configures a store.
type Options struct {
	// Bounds are the sheet maxima used to clamp the dimension and to size
	// full-sheet enumerators.
	Bounds cell.Bounds

	// Verify checks the tree invariants after every structural shift and
	// panics on a violation.
	Verify bool

	// Navigation is the neighbor search used by NextCell and PrevCell.
	Navigation Navigation
}

// Store is a sparse mapping from cell coordinates to values.
//
// A store is not safe for concurrent mutation; callers must serialize Set,
// Remove, Clear, Insert and Delete.  The only synchronization it provides is
// the per-access lock taken by Enumerator.Value and Enumerator.SetValue.
type Store[V any] struct {
	mu     sync.Mutex
	tree   *llrb.Tree[cell.Key, V]
	bounds cell.Bounds
	verify bool
	nav    Navigation
}

// New creates a new empty store with the given sheet bounds.
func New[V any](bounds cell.Bounds) *Store[V] {
	return NewWithOptions[V](Options{Bounds: bounds})
}

// NewWithOptions creates a new empty store with the given options.
func NewWithOptions[V any](opts Options) *Store[V] {
	if err := opts.Bounds.Validate(); err != nil {
		panic(err)
	}
	return &Store[V]{
		tree:   llrb.New[cell.Key, V](cell.Compare),
		bounds: opts.Bounds,
		verify: opts.Verify,
		nav:    opts.Navigation,
	}
}

// Bounds returns the sheet bounds of the store.
func (s *Store[V]) Bounds() cell.Bounds {
	return s.bounds
}

// Len returns the number of occupied cells.
func (s *Store[V]) Len() int {
	return s.tree.Len()
}

// Get returns the value at the given cell, or the zero value if the cell is
// empty.
func (s *Store[V]) Get(row, col int) V {
	value, _ := s.tree.Get(cell.Key{Row: row, Col: col})
	return value
}

// Lookup returns the value at the given cell and whether the cell is
// occupied.
func (s *Store[V]) Lookup(row, col int) (V, bool) {
	return s.tree.Get(cell.Key{Row: row, Col: col})
}

// Exists tests whether the given cell is occupied.
func (s *Store[V]) Exists(row, col int) bool {
	return s.tree.Has(cell.Key{Row: row, Col: col})
}

// Set stores value at the given cell, overwriting any previous value.
// Coordinates are not validated against the sheet bounds.
func (s *Store[V]) Set(row, col int, value V) {
	s.tree.ReplaceOrInsert(cell.Key{Row: row, Col: col}, value)
}

// Remove empties the given cell, returning its previous value.
func (s *Store[V]) Remove(row, col int) (V, bool) {
	return s.tree.Delete(cell.Key{Row: row, Col: col})
}

// Keys returns the occupied cells in row-major order.
func (s *Store[V]) Keys() iter.Seq[cell.Key] {
	return s.tree.Keys()
}

// All returns the occupied cells and their values in row-major order.
func (s *Store[V]) All() iter.Seq2[cell.Key, V] {
	return s.tree.All()
}

// Check verifies the invariants of the underlying tree.
func (s *Store[V]) Check() error {
	return s.tree.Check()
}

// Extent returns the unclamped bounding box of the occupied cells.  Rows
// come from the smallest and largest keys; columns need a full scan since
// they are the secondary sort key.
func (s *Store[V]) Extent() (_ cell.Range, _ bool) {
	first, _, ok := s.tree.Min()
	if !ok {
		return
	}
	last, _, _ := s.tree.Max()
	minCol, maxCol := first.Col, first.Col
	for key := range s.tree.Keys() {
		if key.Col < minCol {
			minCol = key.Col
		}
		if maxCol < key.Col {
			maxCol = key.Col
		}
	}
	return cell.Range{
		From: cell.Key{Row: first.Row, Col: minCol},
		To:   cell.Key{Row: last.Row, Col: maxCol},
	}, true
}

// Dimension returns the bounding box of the occupied cells clamped to the
// sheet bounds, or false if the store is empty.
func (s *Store[V]) Dimension() (cell.Range, bool) {
	r, ok := s.Extent()
	if !ok {
		return r, false
	}
	return cell.Range{From: s.bounds.Clamp(r.From), To: s.bounds.Clamp(r.To)}, true
}

// Clear empties every cell in the closed rectangle [fromRow, toRow] x
// [fromCol, toCol] without moving any other cell.
func (s *Store[V]) Clear(fromRow, fromCol, toRow, toCol int) {
	r := cell.Range{
		From: cell.Key{Row: fromRow, Col: fromCol},
		To:   cell.Key{Row: toRow, Col: toCol},
	}
	var keys []cell.Key
	s.tree.AscendGreaterOrEqual(r.From, func(key cell.Key, _ V) bool {
		if toRow < key.Row {
			return false
		}
		if r.Contains(key) {
			keys = append(keys, key)
		}
		return true
	})
	for _, key := range keys {
		s.tree.Delete(key)
	}
}

// Insert opens space for rows and columns: every cell at or below fromRow
// moves down by rows, and independently every cell at or right of fromCol
// moves right by cols.
func (s *Store[V]) Insert(fromRow, fromCol, rows, cols int) error {
	if rows < 0 || cols < 0 {
		return fmt.Errorf("insert %d rows and %d columns at %s: %w", rows, cols, cell.Key{Row: fromRow, Col: fromCol}, ErrNegativeCount)
	}
	s.shift(fromRow, fromCol, rows, cols)
	return nil
}

// Delete empties the rectangle [fromRow, fromRow+rows-1] x
// [fromCol, fromCol+cols+1] and, if shift is set, moves every cell at or
// below fromRow up by rows and independently every cell at or right of
// fromCol left by cols.
//
// The column span of the emptied rectangle is cols+2 wide whereas the row
// span is exactly rows high.
func (s *Store[V]) Delete(fromRow, fromCol, rows, cols int, shift bool) error {
	if rows < 0 || cols < 0 {
		return fmt.Errorf("delete %d rows and %d columns at %s: %w", rows, cols, cell.Key{Row: fromRow, Col: fromCol}, ErrNegativeCount)
	}
	s.Clear(fromRow, fromCol, fromRow+rows-1, fromCol+cols+1)
	if shift {
		s.shift(fromRow, fromCol, -rows, -cols)
	}
	return nil
}

type move[V any] struct {
	from, to cell.Key
	value    V
}

// shift re-keys every cell with row >= fromRow by rows and every cell with
// col >= fromCol by cols.  It collects the moves first, then removes all
// moved cells and reinserts them at their new keys, so the result does not
// depend on traversal order.  A moved cell landing on a cell that did not
// move overwrites it.
func (s *Store[V]) shift(fromRow, fromCol, rows, cols int) {
	if rows == 0 && cols == 0 {
		return
	}
	start := cell.Key{Row: math.MinInt, Col: math.MinInt}
	if cols == 0 {
		start = cell.Key{Row: fromRow, Col: math.MinInt}
	}

	var moves []move[V]
	s.tree.AscendGreaterOrEqual(start, func(key cell.Key, value V) bool {
		to := key
		if fromRow <= key.Row {
			to.Row += rows
		}
		if fromCol <= key.Col {
			to.Col += cols
		}
		if to != key {
			moves = append(moves, move[V]{from: key, to: to, value: value})
		}
		return true
	})

	for _, m := range moves {
		s.tree.Delete(m.from)
	}
	for _, m := range moves {
		s.tree.ReplaceOrInsert(m.to, m.value)
	}

	if s.verify {
		if err := s.tree.Check(); err != nil {
			panic(fmt.Sprintf("shift %d rows at %d and %d columns at %d: %v", rows, fromRow, cols, fromCol, err))
		}
	}
}
