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

import "github.com/9rum/gridstore/internal/cell"

// NextCell finds the first occupied cell strictly after (row, col) in
// row-major order.  It returns the coordinates of that cell and true, or the
// given coordinates and false if there is none.
func (s *Store[V]) NextCell(row, col int) (int, int, bool) {
	if s.nav == TreeNavigation {
		return s.successor(row, col)
	}
	return s.scanNext(row, col)
}

// PrevCell finds the last occupied cell strictly before (row, col) in
// row-major order.  It returns the coordinates of that cell and true, or the
// given coordinates and false if there is none.
func (s *Store[V]) PrevCell(row, col int) (int, int, bool) {
	if s.nav == TreeNavigation {
		return s.predecessor(row, col)
	}
	return s.scanPrev(row, col)
}

// scanNext visits the bounding box row by row, starting right after
// (row, col).
func (s *Store[V]) scanNext(row, col int) (int, int, bool) {
	ext, ok := s.Extent()
	if !ok {
		return row, col, false
	}
	r, c := row, col+1
	if r < ext.From.Row {
		r, c = ext.From.Row, ext.From.Col
	}
	for ; r <= ext.To.Row; r++ {
		if c < ext.From.Col {
			c = ext.From.Col
		}
		for ; c <= ext.To.Col; c++ {
			if s.tree.Has(cell.Key{Row: r, Col: c}) {
				return r, c, true
			}
		}
		c = ext.From.Col
	}
	return row, col, false
}

// scanPrev visits the bounding box row by row in reverse, starting right
// before (row, col).
func (s *Store[V]) scanPrev(row, col int) (int, int, bool) {
	ext, ok := s.Extent()
	if !ok {
		return row, col, false
	}
	r, c := row, col-1
	if ext.To.Row < r {
		r, c = ext.To.Row, ext.To.Col
	}
	for ; ext.From.Row <= r; r-- {
		if ext.To.Col < c {
			c = ext.To.Col
		}
		for ; ext.From.Col <= c; c-- {
			if s.tree.Has(cell.Key{Row: r, Col: c}) {
				return r, c, true
			}
		}
		c = ext.To.Col
	}
	return row, col, false
}

func (s *Store[V]) successor(row, col int) (r int, c int, found bool) {
	r, c = row, col
	s.tree.AscendGreaterOrEqual(cell.Key{Row: row, Col: col + 1}, func(key cell.Key, _ V) bool {
		r, c, found = key.Row, key.Col, true
		return false
	})
	return
}

func (s *Store[V]) predecessor(row, col int) (r int, c int, found bool) {
	r, c = row, col
	s.tree.DescendLessOrEqual(cell.Key{Row: row, Col: col - 1}, func(key cell.Key, _ V) bool {
		r, c, found = key.Row, key.Col, true
		return false
	})
	return
}
