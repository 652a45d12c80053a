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
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/9rum/gridstore/internal/cell"
	"github.com/9rum/gridstore/internal/llrb"
	gocmp "github.com/google/go-cmp/cmp"
)

func init() {
	seed := time.Now().Unix()
	fmt.Println(seed)
	rand.Seed(seed)
}

func newStore() *Store[int] {
	return NewWithOptions[int](Options{Bounds: cell.DefaultBounds(), Verify: true})
}

// keys extracts all occupied cells from a store in order as a slice.
func keys[V any](s *Store[V]) []cell.Key {
	return slices.Collect(s.Keys())
}

// scatter fills a store with n random cells inside [1, rows] x [1, cols] and
// returns them in row-major order.
func scatter(s *Store[int], n, rows, cols int) []cell.Key {
	seen := make(map[cell.Key]bool)
	for len(seen) < n {
		key := cell.Key{Row: rand.Intn(rows) + 1, Col: rand.Intn(cols) + 1}
		seen[key] = true
		s.Set(key.Row, key.Col, key.Row*1000+key.Col)
	}
	out := make([]cell.Key, 0, n)
	for key := range seen {
		out = append(out, key)
	}
	slices.SortFunc(out, cell.Compare)
	return out
}

func TestRoundTrip(t *testing.T) {
	s := newStore()
	shadow := make(map[cell.Key]int)
	for i := 0; i < 5000; i++ {
		row, col := rand.Intn(cell.MaxRows)+1, rand.Intn(cell.MaxCols)+1
		s.Set(row, col, i)
		shadow[cell.Key{Row: row, Col: col}] = i
		if got := s.Get(row, col); got != i {
			t.Fatalf("get(%d, %d): want %d, got %d", row, col, i, got)
		}
	}
	if s.Len() != len(shadow) {
		t.Fatalf("len: want %d, got %d", len(shadow), s.Len())
	}
	for key, want := range shadow {
		if got, ok := s.Lookup(key.Row, key.Col); !ok || got != want {
			t.Fatalf("lookup %s: want %d, got %d (%v)", key, want, got, ok)
		}
	}
	if err := s.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestMissingCell(t *testing.T) {
	s := newStore()
	s.Set(2, 2, 7)
	if s.Exists(2, 3) {
		t.Fatal("exists reported an empty cell")
	}
	if v, ok := s.Lookup(3, 2); ok || v != 0 {
		t.Fatalf("lookup of an empty cell: got %d, %v", v, ok)
	}
	if v := s.Get(1, 1); v != 0 {
		t.Fatalf("get of an empty cell: got %d", v)
	}
	if s.Len() != 1 {
		t.Fatalf("probing empty cells changed the store: len %d", s.Len())
	}
	if _, ok := s.Remove(9, 9); ok {
		t.Fatal("removed an empty cell")
	}
	if v, ok := s.Remove(2, 2); !ok || v != 7 || s.Len() != 0 {
		t.Fatalf("remove: got %d, %v, len %d", v, ok, s.Len())
	}
}

func TestOutOfBoundsKeys(t *testing.T) {
	s := New[string](cell.Bounds{MaxRows: 10, MaxCols: 5})
	s.Set(0, 0, "origin")
	s.Set(20, 9, "far")
	s.Set(-3, 2, "negative")
	if s.Get(0, 0) != "origin" || s.Get(20, 9) != "far" || s.Get(-3, 2) != "negative" {
		t.Fatal("out of bounds keys were not stored")
	}
	r, ok := s.Dimension()
	if !ok {
		t.Fatal("no dimension")
	}
	if want := cell.NewRange(1, 1, 10, 5); r != want {
		t.Fatalf("dimension: want %s, got %s", want, r)
	}
}

// dimension computes the bounding box of the given keys by brute force.
func dimension(keys []cell.Key, bounds cell.Bounds) (cell.Range, bool) {
	if len(keys) == 0 {
		return cell.Range{}, false
	}
	minRow, minCol, maxRow, maxCol := math.MaxInt, math.MaxInt, math.MinInt, math.MinInt
	for _, key := range keys {
		minRow, maxRow = min(minRow, key.Row), max(maxRow, key.Row)
		minCol, maxCol = min(minCol, key.Col), max(maxCol, key.Col)
	}
	return cell.Range{
		From: bounds.Clamp(cell.Key{Row: minRow, Col: minCol}),
		To:   bounds.Clamp(cell.Key{Row: maxRow, Col: maxCol}),
	}, true
}

func TestDimension(t *testing.T) {
	bounds := cell.Bounds{MaxRows: 80, MaxCols: 40}
	s := NewWithOptions[int](Options{Bounds: bounds, Verify: true})
	if _, ok := s.Dimension(); ok {
		t.Fatal("empty store has a dimension")
	}
	for i := 0; i < 2000; i++ {
		row, col := rand.Intn(100)-5, rand.Intn(50)-5
		if rand.Intn(3) == 0 {
			s.Clear(row, col, row+rand.Intn(10), col+rand.Intn(10))
		} else {
			s.Set(row, col, i)
		}
		want, wantOK := dimension(keys(s), bounds)
		got, ok := s.Dimension()
		if ok != wantOK || got != want {
			t.Fatalf("step %d: want %s (%v), got %s (%v)", i, want, wantOK, got, ok)
		}
	}

	s = newStore()
	s.Set(5, 9, 1)
	s.Set(7, 2, 1)
	s.Set(6, 30, 1)
	if got, _ := s.Dimension(); got.String() != "B5:AD7" {
		t.Fatalf("dimension: want B5:AD7, got %s", got)
	}
}

func TestInsertDeleteRows(t *testing.T) {
	s := newStore()
	s.Set(5, 5, 42)
	if err := s.Insert(3, 1, 2, 0); err != nil {
		t.Fatal(err)
	}
	if got := s.Get(7, 5); got != 42 {
		t.Fatalf("get(7, 5): want 42, got %d", got)
	}
	if s.Exists(5, 5) {
		t.Fatal("(5, 5) still occupied after insert")
	}
	if err := s.Delete(3, 1, 2, 0, true); err != nil {
		t.Fatal(err)
	}
	if got := s.Get(5, 5); got != 42 {
		t.Fatalf("get(5, 5): want 42, got %d", got)
	}
	if s.Len() != 1 {
		t.Fatalf("len: want 1, got %d", s.Len())
	}
}

func TestInsertIndependentAxes(t *testing.T) {
	s := newStore()
	s.Set(1, 1, 1)  // neither axis moves
	s.Set(1, 5, 2)  // column moves
	s.Set(5, 1, 3)  // row moves
	s.Set(5, 5, 4)  // both move
	s.Set(4, 3, 5)  // neither axis moves
	s.Set(10, 2, 6) // row moves
	if err := s.Insert(5, 3, 2, 4); err != nil {
		t.Fatal(err)
	}
	want := map[cell.Key]int{
		{Row: 1, Col: 1}:  1,
		{Row: 1, Col: 9}:  2,
		{Row: 7, Col: 1}:  3,
		{Row: 7, Col: 9}:  4,
		{Row: 4, Col: 7}:  5,
		{Row: 12, Col: 2}: 6,
	}
	got := make(map[cell.Key]int)
	for key, value := range s.All() {
		got[key] = value
	}
	if diff := gocmp.Diff(want, got); diff != "" {
		t.Fatalf("insert mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertDeleteColumns(t *testing.T) {
	s := newStore()
	s.Set(2, 2, 1)
	s.Set(2, 8, 2)
	s.Set(9, 10, 3)
	if err := s.Insert(1, 4, 0, 3); err != nil {
		t.Fatal(err)
	}
	if got := keys(s); !slices.Equal(got, []cell.Key{{Row: 2, Col: 2}, {Row: 2, Col: 11}, {Row: 9, Col: 13}}) {
		t.Fatalf("after insert: %v", got)
	}
	if err := s.Delete(1, 4, 0, 3, true); err != nil {
		t.Fatal(err)
	}
	if got := keys(s); !slices.Equal(got, []cell.Key{{Row: 2, Col: 2}, {Row: 2, Col: 8}, {Row: 9, Col: 10}}) {
		t.Fatalf("after delete: %v", got)
	}
}

func TestClearWithoutShift(t *testing.T) {
	s := newStore()
	s.Set(10, 10, 1)
	s.Set(10, 11, 2)
	s.Clear(10, 10, 10, 10)
	if s.Exists(10, 10) {
		t.Fatal("(10, 10) survived clear")
	}
	if got := s.Get(10, 11); got != 2 {
		t.Fatalf("get(10, 11): want 2, got %d", got)
	}

	s = newStore()
	all := scatter(s, 300, 40, 40)
	s.Clear(10, 5, 20, 15)
	r := cell.NewRange(10, 5, 20, 15)
	var want []cell.Key
	for _, key := range all {
		if !r.Contains(key) {
			want = append(want, key)
		}
	}
	if got := keys(s); !slices.Equal(got, want) {
		t.Fatalf("clear: %s", gocmp.Diff(want, got))
	}
	// An inverted rectangle is empty.
	s.Clear(20, 15, 10, 5)
	if got := keys(s); !slices.Equal(got, want) {
		t.Fatalf("inverted clear removed cells: %s", gocmp.Diff(want, got))
	}
}

func TestDeleteClearsWiderColumnSpan(t *testing.T) {
	s := newStore()
	for row := 1; row <= 3; row++ {
		for col := 1; col <= 8; col++ {
			s.Set(row, col, row*10+col)
		}
	}
	// Rows [2, 2] x columns [3, 3+1+1] are emptied: one row, three columns.
	if err := s.Delete(2, 3, 1, 1, false); err != nil {
		t.Fatal(err)
	}
	for col := 1; col <= 8; col++ {
		want := col < 3 || 5 < col
		if got := s.Exists(2, col); got != want {
			t.Fatalf("exists(2, %d): want %v, got %v", col, want, got)
		}
	}
	for _, row := range []int{1, 3} {
		for col := 1; col <= 8; col++ {
			if !s.Exists(row, col) {
				t.Fatalf("(%d, %d) was emptied", row, col)
			}
		}
	}

	// A pure row deletion still empties two columns only.
	s = newStore()
	s.Set(4, 1, 1)
	s.Set(4, 2, 2)
	s.Set(4, 3, 3)
	if err := s.Delete(4, 1, 1, 0, false); err != nil {
		t.Fatal(err)
	}
	if got := keys(s); !slices.Equal(got, []cell.Key{{Row: 4, Col: 3}}) {
		t.Fatalf("row delete: %v", got)
	}
}

func TestNegativeCount(t *testing.T) {
	s := newStore()
	s.Set(3, 3, 1)
	for _, err := range []error{
		s.Insert(1, 1, -1, 0),
		s.Insert(1, 1, 0, -2),
		s.Delete(1, 1, -1, 0, true),
		s.Delete(1, 1, 0, -1, false),
	} {
		if !errors.Is(err, ErrNegativeCount) {
			t.Fatalf("want ErrNegativeCount, got %v", err)
		}
	}
	if got := keys(s); !slices.Equal(got, []cell.Key{{Row: 3, Col: 3}}) {
		t.Fatalf("rejected operation changed the store: %v", got)
	}
}

func TestVerifyPanicsOnCorruption(t *testing.T) {
	s := newStore()
	inverted := false
	s.tree = llrb.New[cell.Key, int](func(a, b cell.Key) int {
		if inverted {
			return cell.Compare(b, a)
		}
		return cell.Compare(a, b)
	})
	for _, key := range []cell.Key{{Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 3, Col: 3}} {
		s.Set(key.Row, key.Col, 0)
	}
	// Flipping the order leaves every stored key on the wrong side.
	inverted = true
	defer func() {
		if recover() == nil {
			t.Fatal("shift over a corrupt tree did not panic")
		}
	}()
	s.Insert(100, 100, 1, 1)
}

func TestNavigation(t *testing.T) {
	for _, nav := range []Navigation{ScanNavigation, TreeNavigation} {
		t.Run(nav.String(), func(t *testing.T) {
			s := NewWithOptions[int](Options{Bounds: cell.DefaultBounds(), Navigation: nav})
			if _, _, ok := s.NextCell(1, 1); ok {
				t.Fatal("next cell in an empty store")
			}
			if _, _, ok := s.PrevCell(1, 1); ok {
				t.Fatal("prev cell in an empty store")
			}
			want := scatter(s, 200, 60, 30)

			var got []cell.Key
			row, col, ok := 1, 0, true
			for {
				if row, col, ok = s.NextCell(row, col); !ok {
					break
				}
				got = append(got, cell.Key{Row: row, Col: col})
			}
			if !slices.Equal(got, want) {
				t.Fatalf("next: %s", gocmp.Diff(want, got))
			}
			if last := want[len(want)-1]; row != last.Row || col != last.Col {
				t.Fatalf("failed next moved the position to (%d, %d)", row, col)
			}

			got = got[:0]
			last := want[len(want)-1]
			got = append(got, last)
			row, col = last.Row, last.Col
			for {
				if row, col, ok = s.PrevCell(row, col); !ok {
					break
				}
				got = append(got, cell.Key{Row: row, Col: col})
			}
			slices.Reverse(got)
			if !slices.Equal(got, want) {
				t.Fatalf("prev: %s", gocmp.Diff(want, got))
			}

			// The start cell itself is skipped.
			first := want[0]
			if r, c, ok := s.NextCell(first.Row, first.Col); !ok || (cell.Key{Row: r, Col: c}) != want[1] {
				t.Fatalf("next from %s: got (%d, %d) %v", first, r, c, ok)
			}
			if _, _, ok := s.NextCell(last.Row, last.Col); ok {
				t.Fatal("next cell after the last one")
			}
			if _, _, ok := s.PrevCell(first.Row, first.Col); ok {
				t.Fatal("prev cell before the first one")
			}
		})
	}
}

func TestNavigationStrategiesAgree(t *testing.T) {
	scan := NewWithOptions[int](Options{Bounds: cell.DefaultBounds(), Navigation: ScanNavigation})
	tree := NewWithOptions[int](Options{Bounds: cell.DefaultBounds(), Navigation: TreeNavigation})
	for _, key := range scatter(scan, 100, 30, 30) {
		tree.Set(key.Row, key.Col, 0)
	}
	for i := 0; i < 500; i++ {
		row, col := rand.Intn(40)-5, rand.Intn(40)-5
		r1, c1, ok1 := scan.NextCell(row, col)
		r2, c2, ok2 := tree.NextCell(row, col)
		if r1 != r2 || c1 != c2 || ok1 != ok2 {
			t.Fatalf("next(%d, %d): scan (%d, %d) %v, tree (%d, %d) %v", row, col, r1, c1, ok1, r2, c2, ok2)
		}
		r1, c1, ok1 = scan.PrevCell(row, col)
		r2, c2, ok2 = tree.PrevCell(row, col)
		if r1 != r2 || c1 != c2 || ok1 != ok2 {
			t.Fatalf("prev(%d, %d): scan (%d, %d) %v, tree (%d, %d) %v", row, col, r1, c1, ok1, r2, c2, ok2)
		}
	}
}

// model applies the structural operations of a store to a plain map.
type model map[cell.Key]int

func (m model) shift(fromRow, fromCol, rows, cols int) {
	var from []cell.Key
	for key := range m {
		if fromRow <= key.Row && rows != 0 || fromCol <= key.Col && cols != 0 {
			from = append(from, key)
		}
	}
	// Moves landing on the same cell resolve in row-major order of their
	// sources, the last one wins.
	slices.SortFunc(from, cell.Compare)
	values := make([]int, len(from))
	for i, key := range from {
		values[i] = m[key]
		delete(m, key)
	}
	for i, key := range from {
		if fromRow <= key.Row {
			key.Row += rows
		}
		if fromCol <= key.Col {
			key.Col += cols
		}
		m[key] = values[i]
	}
}

func (m model) clear(r cell.Range) {
	for key := range m {
		if r.Contains(key) {
			delete(m, key)
		}
	}
}

func TestRandomStructuralEdits(t *testing.T) {
	s := newStore()
	m := make(model)
	const ops = 3000
	for i := 0; i < ops; i++ {
		row, col := rand.Intn(200)+1, rand.Intn(60)+1
		rows, cols := rand.Intn(4), rand.Intn(3)
		switch rand.Intn(6) {
		case 0:
			if err := s.Insert(row, col, rows, cols); err != nil {
				t.Fatal(err)
			}
			m.shift(row, col, rows, cols)
		case 1:
			shift := rand.Intn(2) == 0
			if err := s.Delete(row, col, rows, cols, shift); err != nil {
				t.Fatal(err)
			}
			m.clear(cell.Range{From: cell.Key{Row: row, Col: col}, To: cell.Key{Row: row + rows - 1, Col: col + cols + 1}})
			if shift {
				m.shift(row, col, -rows, -cols)
			}
		case 2:
			s.Remove(row, col)
			delete(m, cell.Key{Row: row, Col: col})
		default:
			s.Set(row, col, i)
			m[cell.Key{Row: row, Col: col}] = i
		}
	}
	if err := s.Check(); err != nil {
		t.Fatal(err)
	}
	got := make(map[cell.Key]int)
	for key, value := range s.All() {
		got[key] = value
	}
	if diff := gocmp.Diff(map[cell.Key]int(m), got); diff != "" {
		t.Fatalf("store diverged from model (-want +got):\n%s", diff)
	}
	if bound := int(2 * math.Log2(float64(s.Len()+1))); bound < s.tree.Height() {
		t.Fatalf("height %d exceeds %d", s.tree.Height(), bound)
	}
}

func BenchmarkSet(b *testing.B) {
	s := New[int](cell.DefaultBounds())
	for i := 0; i < b.N; i++ {
		s.Set(rand.Intn(cell.MaxRows)+1, rand.Intn(cell.MaxCols)+1, i)
	}
}

func BenchmarkInsertRows(b *testing.B) {
	b.StopTimer()
	s := New[int](cell.DefaultBounds())
	scatter(s, 10000, 10000, 100)
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		s.Insert(5000, 1, 1, 0)
		s.Delete(5000, 1, 1, 0, true)
	}
}
