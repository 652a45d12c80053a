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

// Package sheet exposes worksheets over gRPC.  Requests and responses are
// exchanged as JSON; cell values travel as protobuf Value messages in their
// canonical JSON form, so any JSON scalar, list or object can be stored.
// Cells, ranges and comments are addressed in A1 notation.
package sheet

import (
	"encoding/json"

	"github.com/9rum/gridstore/internal/cell"
	"github.com/9rum/gridstore/internal/store"
)

// Config holds the settings shared by every worksheet of a server.
type Config struct {
	// Bounds are the sheet maxima used to clamp dimensions and to bound full
	// sheet enumeration.
	Bounds cell.Bounds

	// Verify checks the tree invariants after every row or column shift.
	Verify bool

	// Navigation selects how the next and previous occupied cells are found.
	Navigation store.Navigation
}

// DefaultConfig returns the configuration of a server started without flags.
func DefaultConfig() Config {
	return Config{Bounds: cell.DefaultBounds()}
}

func (c Config) options() store.Options {
	return store.Options{Bounds: c.Bounds, Verify: c.Verify, Navigation: c.Navigation}
}

// Axis selects rows or columns in structural edits.
type Axis string

const (
	ROWS    Axis = "ROWS"
	COLUMNS Axis = "COLUMNS"
)

type WorksheetRequest struct {
	Worksheet string `json:"worksheet"`
}

func (x *WorksheetRequest) GetWorksheet() string {
	if x != nil {
		return x.Worksheet
	}
	return ""
}

type SetCellRequest struct {
	Worksheet string          `json:"worksheet"`
	Address   string          `json:"address"`
	Value     json.RawMessage `json:"value"`
}

type CellRequest struct {
	Worksheet string `json:"worksheet"`
	Address   string `json:"address"`
}

// Cell is an occupied cell and its value.
type Cell struct {
	Address string          `json:"address"`
	Value   json.RawMessage `json:"value,omitempty"`
}

type CellResponse struct {
	Found bool  `json:"found"`
	Cell  *Cell `json:"cell,omitempty"`
}

func (x *CellResponse) GetCell() *Cell {
	if x != nil {
		return x.Cell
	}
	return nil
}

type RangeRequest struct {
	Worksheet string `json:"worksheet"`
	// Range is in A1 notation; empty means the whole sheet.
	Range string `json:"range,omitempty"`
}

type CellsResponse struct {
	Cells []*Cell `json:"cells"`
}

func (x *CellsResponse) GetCells() []*Cell {
	if x != nil {
		return x.Cells
	}
	return nil
}

type DimensionResponse struct {
	Empty bool   `json:"empty"`
	Range string `json:"range,omitempty"`
}

type NavigateRequest struct {
	Worksheet string `json:"worksheet"`
	Address   string `json:"address"`
	Backward  bool   `json:"backward,omitempty"`
}

type ShiftRequest struct {
	Worksheet string `json:"worksheet"`
	Axis      Axis   `json:"axis"`
	At        int64  `json:"at"`
	Count     int64  `json:"count"`
}

type ShiftResponse struct {
	// Dropped lists the names whose range was deleted entirely.
	Dropped []string `json:"dropped,omitempty"`
}

type CommentRequest struct {
	Worksheet string `json:"worksheet"`
	Address   string `json:"address"`
	Author    string `json:"author"`
	Text      string `json:"text"`
}

type CommentIndexRequest struct {
	Worksheet string `json:"worksheet"`
	Index     int64  `json:"index"`
}

type CommentResponse struct {
	Address string `json:"address"`
	Author  string `json:"author"`
	Text    string `json:"text"`
}

type NameRequest struct {
	Worksheet string `json:"worksheet"`
	Name      string `json:"name"`
	Range     string `json:"range,omitempty"`
}

type NameResponse struct {
	Name  string `json:"name"`
	Range string `json:"range"`
}
