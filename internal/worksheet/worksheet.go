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

// Package worksheet provides the collaborators built on top of the sparse
// cell store: a worksheet that keeps its cell values, comments and named
// ranges consistent across row and column insertions and deletions.
package worksheet

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/9rum/gridstore/internal/cell"
	"github.com/9rum/gridstore/internal/store"
	"github.com/golang/glog"
)

var (
	// ErrNonPositiveCount is returned when rows or columns are inserted or
	// deleted in batches of less than one.
	ErrNonPositiveCount = errors.New("count must be positive")

	// ErrSheetFull is returned when an insertion would move an occupied cell
	// or a comment past the last row or column of the sheet.
	ErrSheetFull = errors.New("cells would move past the sheet bounds")
)

// Entry is an occupied cell and its value.
type Entry[V any] struct {
	Key   cell.Key
	Value V
}

// Worksheet is a single sheet of a document.  All methods are safe for
// concurrent use; structural edits hold the worksheet lock for their whole
// duration.
type Worksheet[V any] struct {
	mu       sync.Mutex
	name     string
	cells    *store.Store[V]
	comments *CommentList
	names    *NamedRanges
}

// New creates an empty worksheet.
func New[V any](name string, opts store.Options) *Worksheet[V] {
	return &Worksheet[V]{
		name:     name,
		cells:    store.NewWithOptions[V](opts),
		comments: NewCommentList(opts),
		names:    NewNamedRanges(),
	}
}

// Name returns the name of the worksheet.
func (w *Worksheet[V]) Name() string {
	return w.name
}

// Bounds returns the sheet maxima of the worksheet.
func (w *Worksheet[V]) Bounds() cell.Bounds {
	return w.cells.Bounds()
}

// Len returns the number of occupied cells.
func (w *Worksheet[V]) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cells.Len()
}

// Get returns the value of the given cell.
func (w *Worksheet[V]) Get(key cell.Key) (V, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cells.Lookup(key.Row, key.Col)
}

// Set stores a value in the given cell.
func (w *Worksheet[V]) Set(key cell.Key, value V) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cells.Set(key.Row, key.Col, value)
}

// Clear empties every cell in r and drops the comments attached to them.
// Nothing moves.
func (w *Worksheet[V]) Clear(r cell.Range) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cells.Clear(r.From.Row, r.From.Col, r.To.Row, r.To.Col)
	w.comments.clear(r)
}

// Dimension returns the bounding box of the occupied cells.
func (w *Worksheet[V]) Dimension() (cell.Range, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cells.Dimension()
}

// Range returns the occupied cells inside r in row-major order.
func (w *Worksheet[V]) Range(r cell.Range) []Entry[V] {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []Entry[V]
	for e := w.cells.EnumerateRange(r); e.MoveNext(); {
		out = append(out, Entry[V]{Key: e.Key(), Value: e.Value()})
	}
	return out
}

// Next returns the first occupied cell after key in row-major order.
func (w *Worksheet[V]) Next(key cell.Key) (cell.Key, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	row, col, ok := w.cells.NextCell(key.Row, key.Col)
	return cell.Key{Row: row, Col: col}, ok
}

// Prev returns the last occupied cell before key in row-major order.
func (w *Worksheet[V]) Prev(key cell.Key) (cell.Key, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	row, col, ok := w.cells.PrevCell(key.Row, key.Col)
	return cell.Key{Row: row, Col: col}, ok
}

// Neighbor returns the first occupied cell after key in row-major order, or
// the last one before it when backward is set, together with its value.
func (w *Worksheet[V]) Neighbor(key cell.Key, backward bool) (Entry[V], bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	var (
		row, col int
		ok       bool
	)
	if backward {
		row, col, ok = w.cells.PrevCell(key.Row, key.Col)
	} else {
		row, col, ok = w.cells.NextCell(key.Row, key.Col)
	}
	if !ok {
		return Entry[V]{}, false
	}
	value, _ := w.cells.Lookup(row, col)
	return Entry[V]{Key: cell.Key{Row: row, Col: col}, Value: value}, true
}

// fits reports whether count rows (or columns) can be inserted at at without
// pushing a cell or a comment past the sheet bounds.
func (w *Worksheet[V]) fits(rows bool, at, count int) error {
	bound, axis := w.cells.Bounds().MaxCols, "columns"
	if rows {
		bound, axis = w.cells.Bounds().MaxRows, "rows"
	}
	if bound < count {
		return fmt.Errorf("insert %d %s into %d: %w", count, axis, bound, ErrSheetFull)
	}
	for _, extent := range []func() (cell.Range, bool){w.cells.Extent, w.comments.cells.Extent} {
		r, ok := extent()
		if !ok {
			continue
		}
		last := r.To.Col
		if rows {
			last = r.To.Row
		}
		if at <= last && bound-count < last {
			return fmt.Errorf("insert %d %s at %d with cells up to %s: %w", count, axis, at, r.To.Address(), ErrSheetFull)
		}
	}
	return nil
}

// InsertRows inserts count empty rows before row at.  It fails with
// ErrSheetFull if that would move an occupied row past the last one.
func (w *Worksheet[V]) InsertRows(at, count int) error {
	if count < 1 {
		return fmt.Errorf("insert %d rows: %w", count, ErrNonPositiveCount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fits(true, at, count); err != nil {
		return err
	}
	glog.V(1).Infof("%s: insert %d rows at %d", w.name, count, at)

	if err := w.cells.Insert(at, 1, count, 0); err != nil {
		return err
	}
	if err := w.comments.insert(at, 1, count, 0); err != nil {
		return err
	}
	w.names.shift(true, func(from, to int) (int, int) {
		return insert(from, to, at, count)
	})
	return nil
}

// InsertColumns inserts count empty columns before column at.  It fails
// with ErrSheetFull if that would move an occupied column past the last one.
func (w *Worksheet[V]) InsertColumns(at, count int) error {
	if count < 1 {
		return fmt.Errorf("insert %d columns: %w", count, ErrNonPositiveCount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.fits(false, at, count); err != nil {
		return err
	}
	glog.V(1).Infof("%s: insert %d columns at %d", w.name, count, at)

	if err := w.cells.Insert(1, at, 0, count); err != nil {
		return err
	}
	if err := w.comments.insert(1, at, 0, count); err != nil {
		return err
	}
	w.names.shift(false, func(from, to int) (int, int) {
		return insert(from, to, at, count)
	})
	return nil
}

// DeleteRows deletes count rows starting at row at and moves the rows below
// up.  Names whose range lies entirely in the deleted rows are dropped and
// returned.
func (w *Worksheet[V]) DeleteRows(at, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("delete %d rows: %w", count, ErrNonPositiveCount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	glog.V(1).Infof("%s: delete %d rows at %d", w.name, count, at)

	// The store only empties a few columns of the deleted rows by itself, so
	// the whole band is emptied first.
	band := cell.Range{
		From: cell.Key{Row: at, Col: math.MinInt},
		To:   cell.Key{Row: at + count - 1, Col: math.MaxInt},
	}
	w.cells.Clear(band.From.Row, band.From.Col, band.To.Row, band.To.Col)
	w.comments.clear(band)
	if err := w.cells.Delete(at, 1, count, 0, true); err != nil {
		return nil, err
	}
	if err := w.comments.delete(at, 1, count, 0); err != nil {
		return nil, err
	}
	dropped := w.names.shift(true, func(from, to int) (int, int) {
		return remove(from, to, at, count)
	})
	if 0 < len(dropped) {
		glog.V(1).Infof("%s: dropped names %v", w.name, dropped)
	}
	return dropped, nil
}

// DeleteColumns deletes count columns starting at column at and moves the
// columns to the right left.  Names whose range lies entirely in the deleted
// columns are dropped and returned.
func (w *Worksheet[V]) DeleteColumns(at, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("delete %d columns: %w", count, ErrNonPositiveCount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	glog.V(1).Infof("%s: delete %d columns at %d", w.name, count, at)

	band := cell.Range{
		From: cell.Key{Row: math.MinInt, Col: at},
		To:   cell.Key{Row: math.MaxInt, Col: at + count - 1},
	}
	w.cells.Clear(band.From.Row, band.From.Col, band.To.Row, band.To.Col)
	w.comments.clear(band)
	if err := w.cells.Delete(1, at, 0, count, true); err != nil {
		return nil, err
	}
	if err := w.comments.delete(1, at, 0, count); err != nil {
		return nil, err
	}
	dropped := w.names.shift(false, func(from, to int) (int, int) {
		return remove(from, to, at, count)
	})
	if 0 < len(dropped) {
		glog.V(1).Infof("%s: dropped names %v", w.name, dropped)
	}
	return dropped, nil
}

// AddComment attaches a comment to the given cell.
func (w *Worksheet[V]) AddComment(key cell.Key, author, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.comments.Add(key.Row, key.Col, author, text)
	return err
}

// Comment returns a copy of the comment at index i.
func (w *Worksheet[V]) Comment(i int) (Comment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, err := w.comments.At(i)
	if err != nil {
		return Comment{}, err
	}
	return *c, nil
}

// CommentAt returns a copy of the comment attached to the given cell.
func (w *Worksheet[V]) CommentAt(key cell.Key) (Comment, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	c, ok := w.comments.Lookup(key.Row, key.Col)
	if !ok {
		return Comment{}, false
	}
	return *c, true
}

// RemoveComment deletes the comment at index i.
func (w *Worksheet[V]) RemoveComment(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.comments.Remove(i)
}

// CommentCount returns the number of comments.
func (w *Worksheet[V]) CommentCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.comments.Len()
}

// DefineName binds a name to a range of the worksheet.
func (w *Worksheet[V]) DefineName(name string, r cell.Range) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.names.Define(name, r)
}

// LookupName returns the range bound to name.
func (w *Worksheet[V]) LookupName(name string) (cell.Range, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.names.Lookup(name)
}

// RemoveName deletes a name.
func (w *Worksheet[V]) RemoveName(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.names.Remove(name)
}

// Names returns the defined names.
func (w *Worksheet[V]) Names() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.names.Names()
}
