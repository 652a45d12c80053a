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

	"github.com/9rum/gridstore/internal/cell"
	"github.com/9rum/gridstore/internal/store"
)

var (
	// ErrInvalidIndex is returned when a comment index is outside [0, Len()).
	ErrInvalidIndex = errors.New("invalid index")

	// ErrCommentExists is returned when a cell already carries a comment.
	ErrCommentExists = errors.New("cell already has a comment")
)

// Comment is a note attached to a single cell.
type Comment struct {
	Author string
	Text   string
	key    cell.Key
}

// Key returns the cell the comment is attached to.
func (c *Comment) Key() cell.Key {
	return c.key
}

// Address returns the cell the comment is attached to in A1 notation.
func (c *Comment) Address() string {
	return c.key.Address()
}

// CommentList holds the comments of a worksheet in insertion order.  The
// cell of each comment is tracked in a sparse store so that row and column
// edits move comments along with the cells.
type CommentList struct {
	comments []*Comment
	cells    *store.Store[int]
}

// NewCommentList creates an empty comment list.
func NewCommentList(opts store.Options) *CommentList {
	return &CommentList{cells: store.NewWithOptions[int](opts)}
}

// Len returns the number of comments.
func (l *CommentList) Len() int {
	return len(l.comments)
}

// Add attaches a comment to the given cell.
func (l *CommentList) Add(row, col int, author, text string) (*Comment, error) {
	if l.cells.Exists(row, col) {
		return nil, fmt.Errorf("%s: %w", cell.Key{Row: row, Col: col}, ErrCommentExists)
	}
	c := &Comment{Author: author, Text: text, key: cell.Key{Row: row, Col: col}}
	l.cells.Set(row, col, len(l.comments))
	l.comments = append(l.comments, c)
	return c, nil
}

// At returns the comment at index i.
func (l *CommentList) At(i int) (*Comment, error) {
	if i < 0 || len(l.comments) <= i {
		return nil, fmt.Errorf("comment %d of %d: %w", i, len(l.comments), ErrInvalidIndex)
	}
	return l.comments[i], nil
}

// Lookup returns the comment attached to the given cell.
func (l *CommentList) Lookup(row, col int) (*Comment, bool) {
	i, ok := l.cells.Lookup(row, col)
	if !ok {
		return nil, false
	}
	return l.comments[i], true
}

// Remove deletes the comment at index i.  Later comments move down by one.
func (l *CommentList) Remove(i int) error {
	c, err := l.At(i)
	if err != nil {
		return err
	}
	l.cells.Remove(c.key.Row, c.key.Col)
	l.reindex()
	return nil
}

// clear removes every comment inside the closed rectangle.
func (l *CommentList) clear(r cell.Range) {
	l.cells.Clear(r.From.Row, r.From.Col, r.To.Row, r.To.Col)
	l.reindex()
}

// insert moves comments along with inserted rows and columns.
func (l *CommentList) insert(fromRow, fromCol, rows, cols int) error {
	if err := l.cells.Insert(fromRow, fromCol, rows, cols); err != nil {
		return err
	}
	l.reindex()
	return nil
}

// delete moves comments along with deleted rows and columns.  The deleted
// band must already have been cleared.
func (l *CommentList) delete(fromRow, fromCol, rows, cols int) error {
	if err := l.cells.Delete(fromRow, fromCol, rows, cols, true); err != nil {
		return err
	}
	l.reindex()
	return nil
}

// reindex resynchronizes the comment slice with the cell store after the
// store was edited: comments whose cell is gone are dropped, the others take
// their new cell, and the stored indices are renumbered.
func (l *CommentList) reindex() {
	keep := make([]bool, len(l.comments))
	for key, i := range l.cells.All() {
		keep[i] = true
		l.comments[i].key = key
	}
	comments := l.comments[:0]
	for i, c := range l.comments {
		if keep[i] {
			comments = append(comments, c)
		}
	}
	clear(l.comments[len(comments):])
	l.comments = comments
	for i, c := range l.comments {
		l.cells.Set(c.key.Row, c.key.Col, i)
	}
}
