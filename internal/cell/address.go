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

package cell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAddress is returned by ParseAddress and ParseRange.
var ErrInvalidAddress = errors.New("invalid cell address")

// ColumnName returns the letters of a 1-based column (1 is A, 27 is AA).
func ColumnName(col int) string {
	if col < 1 {
		return ""
	}
	var buf [8]byte
	i := len(buf)
	for 0 < col {
		i--
		buf[i] = byte('A' + (col-1)%26)
		col = (col - 1) / 26
	}
	return string(buf[i:])
}

// ColumnNumber parses column letters, case-insensitively.
func ColumnNumber(name string) (int, error) {
	if name == "" || 7 < len(name) {
		return 0, fmt.Errorf("%w: column %q", ErrInvalidAddress, name)
	}
	col := 0
	for _, r := range strings.ToUpper(name) {
		if r < 'A' || 'Z' < r {
			return 0, fmt.Errorf("%w: column %q", ErrInvalidAddress, name)
		}
		col = col*26 + int(r-'A') + 1
	}
	return col, nil
}

// Address renders the key in A1 notation.  Keys outside the positive
// quadrant have no A1 form and are rendered as R<row>C<col>.
func (k Key) Address() string {
	if k.Row < 1 || k.Col < 1 {
		return "R" + strconv.Itoa(k.Row) + "C" + strconv.Itoa(k.Col)
	}
	return ColumnName(k.Col) + strconv.Itoa(k.Row)
}

// ParseAddress parses an A1 reference such as "B7" or "$B$7".
func ParseAddress(address string) (Key, error) {
	s := strings.ReplaceAll(strings.TrimSpace(address), "$", "")
	i := strings.IndexFunc(s, func(r rune) bool {
		return '0' <= r && r <= '9'
	})
	if i <= 0 {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	col, err := ColumnNumber(s[:i])
	if err != nil {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	row, err := strconv.Atoi(s[i:])
	if err != nil || row < 1 {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return Key{Row: row, Col: col}, nil
}

// ParseRange parses "A1:C4" or a single address into a range.
func ParseRange(s string) (Range, error) {
	from, to, found := strings.Cut(s, ":")
	a, err := ParseAddress(from)
	if err != nil {
		return Range{}, err
	}
	if !found {
		return Range{From: a, To: a}, nil
	}
	b, err := ParseAddress(to)
	if err != nil {
		return Range{}, err
	}
	return NewRange(a.Row, a.Col, b.Row, b.Col), nil
}
