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

// Package cell provides the coordinates shared by every worksheet component:
// the composite row/column key, its row-major order, rectangular ranges and
// the sheet bounds of a document format.
package cell

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

const (
	// MaxRows is the number of rows in an OOXML worksheet.
	MaxRows = 1 << 20

	// MaxCols is the number of columns in an OOXML worksheet.
	MaxCols = 1 << 14
)

// Key identifies a cell by its 1-based row and column.
type Key struct {
	Row int
	Col int
}

// Compare orders keys row-major: by row, then by column within a row.
func Compare(a, b Key) int {
	switch {
	case a.Row < b.Row:
		return -1
	case b.Row < a.Row:
		return 1
	case a.Col < b.Col:
		return -1
	case b.Col < a.Col:
		return 1
	}
	return 0
}

// Less tests whether k comes before than in row-major order.
func (k Key) Less(than Key) bool {
	return Compare(k, than) < 0
}

func (k Key) String() string {
	return k.Address()
}

// Bounds holds the sheet maxima of a document format.
type Bounds struct {
	MaxRows int
	MaxCols int
}

// DefaultBounds returns the bounds of an OOXML worksheet.
func DefaultBounds() Bounds {
	return Bounds{MaxRows: MaxRows, MaxCols: MaxCols}
}

// Validate reports whether both maxima are positive.
func (b Bounds) Validate() error {
	if b.MaxRows < 1 || b.MaxCols < 1 {
		return fmt.Errorf("invalid bounds %dx%d", b.MaxRows, b.MaxCols)
	}
	return nil
}

// Full returns the range covering the whole sheet.
func (b Bounds) Full() Range {
	return Range{From: Key{Row: 1, Col: 1}, To: Key{Row: b.MaxRows, Col: b.MaxCols}}
}

// Clamp limits k to [1, MaxRows] x [1, MaxCols].
func (b Bounds) Clamp(k Key) Key {
	return Key{Row: clamp(k.Row, 1, b.MaxRows), Col: clamp(k.Col, 1, b.MaxCols)}
}

// clamp limits v to [lo, hi].
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if hi < v {
		return hi
	}
	return v
}

// Range is a closed rectangle of cells.
type Range struct {
	From Key
	To   Key
}

// NewRange creates a range from its corners in any order.
func NewRange(fromRow, fromCol, toRow, toCol int) Range {
	if toRow < fromRow {
		fromRow, toRow = toRow, fromRow
	}
	if toCol < fromCol {
		fromCol, toCol = toCol, fromCol
	}
	return Range{From: Key{Row: fromRow, Col: fromCol}, To: Key{Row: toRow, Col: toCol}}
}

// Contains tests whether k lies inside the rectangle.
func (r Range) Contains(k Key) bool {
	return r.From.Row <= k.Row && k.Row <= r.To.Row && r.From.Col <= k.Col && k.Col <= r.To.Col
}

// Rows returns the number of rows spanned by the range.
func (r Range) Rows() int {
	return r.To.Row - r.From.Row + 1
}

// Cols returns the number of columns spanned by the range.
func (r Range) Cols() int {
	return r.To.Col - r.From.Col + 1
}

func (r Range) String() string {
	if r.From == r.To {
		return r.From.Address()
	}
	return r.From.Address() + ":" + r.To.Address()
}
