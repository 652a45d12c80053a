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

package worksheet

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/9rum/gridstore/internal/cell"
)

var (
	// ErrNameExists is returned when a name is defined twice.
	ErrNameExists = errors.New("name already defined")

	// ErrInvalidName is returned for names that are empty or look like a
	// cell address.
	ErrInvalidName = errors.New("invalid name")
)

// NamedRanges maps case-insensitive names to ranges of a worksheet.
type NamedRanges struct {
	ranges map[string]namedRange
}

type namedRange struct {
	name string
	rng  cell.Range
}

// NewNamedRanges creates an empty set of names.
func NewNamedRanges() *NamedRanges {
	return &NamedRanges{ranges: make(map[string]namedRange)}
}

// Len returns the number of defined names.
func (n *NamedRanges) Len() int {
	return len(n.ranges)
}

// Define binds name to r.
func (n *NamedRanges) Define(name string, r cell.Range) error {
	if name == "" || strings.ContainsAny(name, " !:") {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	if _, err := cell.ParseAddress(name); err == nil {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	key := strings.ToLower(name)
	if _, ok := n.ranges[key]; ok {
		return fmt.Errorf("%q: %w", name, ErrNameExists)
	}
	n.ranges[key] = namedRange{name: name, rng: r}
	return nil
}

// Lookup returns the range bound to name.
func (n *NamedRanges) Lookup(name string) (cell.Range, bool) {
	nr, ok := n.ranges[strings.ToLower(name)]
	return nr.rng, ok
}

// Remove deletes name, reporting whether it was defined.
func (n *NamedRanges) Remove(name string) bool {
	key := strings.ToLower(name)
	_, ok := n.ranges[key]
	delete(n.ranges, key)
	return ok
}

// Names returns the defined names in case-insensitive order.
func (n *NamedRanges) Names() []string {
	names := make([]string, 0, len(n.ranges))
	for _, nr := range n.ranges {
		names = append(names, nr.name)
	}
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return names
}

// insert grows or moves ranges for count rows (or columns) inserted at at.
func insert(from, to, at, count int) (int, int) {
	if at <= from {
		from += count
	}
	if at <= to {
		to += count
	}
	return from, to
}

// remove shrinks or moves ranges for count rows (or columns) deleted at at.
// The result is empty (to < from) when the whole span was deleted.
func remove(from, to, at, count int) (int, int) {
	end := at + count - 1
	switch {
	case end < from:
		from -= count
	case at <= from:
		from = at
	}
	switch {
	case end < to:
		to -= count
	case at <= to:
		to = at - 1
	}
	return from, to
}

// shift applies fn to the row span (rows is true) or the column span of
// every range and drops the names whose range became empty.
func (n *NamedRanges) shift(rows bool, fn func(from, to int) (int, int)) (dropped []string) {
	for key, nr := range n.ranges {
		r := nr.rng
		if rows {
			r.From.Row, r.To.Row = fn(r.From.Row, r.To.Row)
		} else {
			r.From.Col, r.To.Col = fn(r.From.Col, r.To.Col)
		}
		if r.To.Row < r.From.Row || r.To.Col < r.From.Col {
			dropped = append(dropped, nr.name)
			delete(n.ranges, key)
			continue
		}
		n.ranges[key] = namedRange{name: nr.name, rng: r}
	}
	slices.Sort(dropped)
	return
}
