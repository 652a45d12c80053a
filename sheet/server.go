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

package sheet

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/9rum/gridstore/internal/cell"
	"github.com/9rum/gridstore/internal/store"
	"github.com/9rum/gridstore/internal/worksheet"
	"github.com/golang/glog"
	"github.com/golang/protobuf/ptypes/empty"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"golang.org/x/exp/constraints"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// NewServer creates a gRPC server serving the Sheet service.  Panics in
// handlers, including failed invariant checks, are returned to the caller as
// Internal errors.  done is closed when a client calls Shutdown.
func NewServer(done chan<- os.Signal, config Config, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			grpc_recovery.UnaryServerInterceptor(),
		),
	}, opts...)
	server := grpc.NewServer(opts...)
	RegisterSheetServer(server, NewSheetServer(done, config))
	return server
}

// sheetServer implements the server API for Sheet service.
type sheetServer struct {
	UnimplementedSheetServer
	config     Config
	mu         sync.Mutex
	worksheets map[string]*worksheet.Worksheet[*structpb.Value]
	done       chan<- os.Signal
	once       sync.Once
}

// NewSheetServer creates a new sheet server without worksheets.
func NewSheetServer(done chan<- os.Signal, config Config) SheetServer {
	return &sheetServer{
		config:     config,
		worksheets: make(map[string]*worksheet.Worksheet[*structpb.Value]),
		done:       done,
	}
}

// worksheet returns the worksheet with the given name.
func (s *sheetServer) worksheet(name string) (*worksheet.Worksheet[*structpb.Value], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.worksheets[name]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "worksheet %q not found", name)
	}
	return w, nil
}

// toStatus converts errors from the internal packages to gRPC status errors.
func toStatus(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, worksheet.ErrInvalidIndex):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, worksheet.ErrCommentExists),
		errors.Is(err, worksheet.ErrNameExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, worksheet.ErrSheetFull):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, worksheet.ErrNonPositiveCount),
		errors.Is(err, worksheet.ErrInvalidName),
		errors.Is(err, store.ErrNegativeCount),
		errors.Is(err, cell.ErrInvalidAddress):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// parseAddress parses a cell address that must lie inside the sheet.
func (s *sheetServer) parseAddress(address string) (cell.Key, error) {
	key, err := cell.ParseAddress(address)
	if err != nil {
		return key, toStatus(err)
	}
	if !s.config.Bounds.Full().Contains(key) {
		return key, status.Errorf(codes.InvalidArgument, "%s is outside the sheet %s", address, s.config.Bounds.Full())
	}
	return key, nil
}

// parseRange parses a range that must lie inside the sheet, defaulting to
// the whole sheet when empty.
func (s *sheetServer) parseRange(rng string) (cell.Range, error) {
	full := s.config.Bounds.Full()
	if rng == "" {
		return full, nil
	}
	r, err := cell.ParseRange(rng)
	if err != nil {
		return r, toStatus(err)
	}
	if !full.Contains(r.From) || !full.Contains(r.To) {
		return r, status.Errorf(codes.InvalidArgument, "%s is outside the sheet %s", rng, full)
	}
	return r, nil
}

// narrow converts a wire integer to int, rejecting values outside [lo, hi].
func narrow[T constraints.Signed](v T, lo, hi int, what string) (int, error) {
	if int64(v) < int64(lo) || int64(hi) < int64(v) {
		return 0, status.Errorf(codes.InvalidArgument, "%s %d is outside [%d, %d]", what, v, lo, hi)
	}
	return int(v), nil
}

// AddWorksheet creates an empty worksheet.
func (s *sheetServer) AddWorksheet(ctx context.Context, in *WorksheetRequest) (*empty.Empty, error) {
	glog.Infof("AddWorksheet called with name: %q", in.GetWorksheet())

	if in.GetWorksheet() == "" {
		return nil, status.Error(codes.InvalidArgument, "worksheet name is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.worksheets[in.Worksheet]; ok {
		return nil, status.Errorf(codes.AlreadyExists, "worksheet %q already exists", in.Worksheet)
	}
	s.worksheets[in.Worksheet] = worksheet.New[*structpb.Value](in.Worksheet, s.config.options())

	return new(empty.Empty), nil
}

// SetCell stores a value in a cell.
func (s *sheetServer) SetCell(ctx context.Context, in *SetCellRequest) (*empty.Empty, error) {
	w, err := s.worksheet(in.Worksheet)
	if err != nil {
		return nil, err
	}
	key, err := s.parseAddress(in.Address)
	if err != nil {
		return nil, err
	}
	value, err := decodeValue(in.Value)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "value of %s: %v", in.Address, err)
	}
	w.Set(key, value)

	return new(empty.Empty), nil
}

// GetCell returns the value of a cell.
func (s *sheetServer) GetCell(ctx context.Context, in *CellRequest) (*CellResponse, error) {
	w, err := s.worksheet(in.Worksheet)
	if err != nil {
		return nil, err
	}
	key, err := s.parseAddress(in.Address)
	if err != nil {
		return nil, err
	}
	value, ok := w.Get(key)
	if !ok {
		return &CellResponse{}, nil
	}
	raw, err := encodeValue(value)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &CellResponse{Found: true, Cell: &Cell{Address: key.Address(), Value: raw}}, nil
}

// Clear empties a range without moving any other cell.
func (s *sheetServer) Clear(ctx context.Context, in *RangeRequest) (*empty.Empty, error) {
	glog.Infof("Clear called on %q with range: %q", in.Worksheet, in.Range)

	w, err := s.worksheet(in.Worksheet)
	if err != nil {
		return nil, err
	}
	r, err := s.parseRange(in.Range)
	if err != nil {
		return nil, err
	}
	w.Clear(r)

	return new(empty.Empty), nil
}

// Range lists the occupied cells of a range in row-major order.
func (s *sheetServer) Range(ctx context.Context, in *RangeRequest) (*CellsResponse, error) {
	w, err := s.worksheet(in.Worksheet)
	if err != nil {
		return nil, err
	}
	r, err := s.parseRange(in.Range)
	if err != nil {
		return nil, err
	}
	entries := w.Range(r)
	cells := make([]*Cell, 0, len(entries))
	for _, e := range entries {
		raw, err := encodeValue(e.Value)
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		cells = append(cells, &Cell{Address: e.Key.Address(), Value: raw})
	}
	return &CellsResponse{Cells: cells}, nil
}

// Dimension returns the bounding box of the occupied cells.
func (s *sheetServer) Dimension(ctx context.Context, in *WorksheetRequest) (*DimensionResponse, error) {
	w, err := s.worksheet(in.GetWorksheet())
	if err != nil {
		return nil, err
	}
	r, ok := w.Dimension()
	if !ok {
		return &DimensionResponse{Empty: true}, nil
	}
	return &DimensionResponse{Range: r.String()}, nil
}

// Navigate finds the next or previous occupied cell in row-major order.
func (s *sheetServer) Navigate(ctx context.Context, in *NavigateRequest) (*CellResponse, error) {
	w, err := s.worksheet(in.Worksheet)
	if err != nil {
		return nil, err
	}
	key, err := s.parseAddress(in.Address)
	if err != nil {
		return nil, err
	}
	e, ok := w.Neighbor(key, in.Backward)
	if !ok {
		return &CellResponse{}, nil
	}
	raw, err := encodeValue(e.Value)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &CellResponse{Found: true, Cell: &Cell{Address: e.Key.Address(), Value: raw}}, nil
}

// shiftArgs validates a structural edit request.
func (s *sheetServer) shiftArgs(in *ShiftRequest) (*worksheet.Worksheet[*structpb.Value], int, int, error) {
	w, err := s.worksheet(in.Worksheet)
	if err != nil {
		return nil, 0, 0, err
	}
	if in.Axis != ROWS && in.Axis != COLUMNS {
		return nil, 0, 0, status.Errorf(codes.InvalidArgument, "invalid axis %q", in.Axis)
	}
	bound := s.config.Bounds.MaxCols
	if in.Axis == ROWS {
		bound = s.config.Bounds.MaxRows
	}
	at, err := narrow(in.At, 1, bound, "position")
	if err != nil {
		return nil, 0, 0, err
	}
	// The edited band must end inside the sheet.
	count, err := narrow(in.Count, 1, bound-at+1, "count")
	if err != nil {
		return nil, 0, 0, err
	}
	return w, at, count, nil
}

// Insert inserts empty rows or columns.
func (s *sheetServer) Insert(ctx context.Context, in *ShiftRequest) (*ShiftResponse, error) {
	glog.Infof("Insert called on %q with axis: %s at: %d count: %d", in.Worksheet, in.Axis, in.At, in.Count)

	w, at, count, err := s.shiftArgs(in)
	if err != nil {
		return nil, err
	}
	if in.Axis == ROWS {
		err = w.InsertRows(at, count)
	} else {
		err = w.InsertColumns(at, count)
	}
	if err != nil {
		return nil, toStatus(err)
	}
	return &ShiftResponse{}, nil
}

// Delete deletes rows or columns and moves the following ones back.
func (s *sheetServer) Delete(ctx context.Context, in *ShiftRequest) (*ShiftResponse, error) {
	glog.Infof("Delete called on %q with axis: %s at: %d count: %d", in.Worksheet, in.Axis, in.At, in.Count)

	w, at, count, err := s.shiftArgs(in)
	if err != nil {
		return nil, err
	}
	var dropped []string
	if in.Axis == ROWS {
		dropped, err = w.DeleteRows(at, count)
	} else {
		dropped, err = w.DeleteColumns(at, count)
	}
	if err != nil {
		return nil, toStatus(err)
	}
	return &ShiftResponse{Dropped: dropped}, nil
}

// AddComment attaches a comment to a cell.
func (s *sheetServer) AddComment(ctx context.Context, in *CommentRequest) (*empty.Empty, error) {
	w, err := s.worksheet(in.Worksheet)
	if err != nil {
		return nil, err
	}
	key, err := s.parseAddress(in.Address)
	if err != nil {
		return nil, err
	}
	if err = w.AddComment(key, in.Author, in.Text); err != nil {
		return nil, toStatus(err)
	}
	return new(empty.Empty), nil
}

// GetComment returns the comment at an index.
func (s *sheetServer) GetComment(ctx context.Context, in *CommentIndexRequest) (*CommentResponse, error) {
	w, err := s.worksheet(in.Worksheet)
	if err != nil {
		return nil, err
	}
	c, err := w.Comment(int(in.Index))
	if err != nil {
		return nil, toStatus(err)
	}
	return &CommentResponse{Address: c.Address(), Author: c.Author, Text: c.Text}, nil
}

// RemoveComment deletes the comment at an index.
func (s *sheetServer) RemoveComment(ctx context.Context, in *CommentIndexRequest) (*empty.Empty, error) {
	w, err := s.worksheet(in.Worksheet)
	if err != nil {
		return nil, err
	}
	if err = w.RemoveComment(int(in.Index)); err != nil {
		return nil, toStatus(err)
	}
	return new(empty.Empty), nil
}

// DefineName binds a name to a range.
func (s *sheetServer) DefineName(ctx context.Context, in *NameRequest) (*empty.Empty, error) {
	w, err := s.worksheet(in.Worksheet)
	if err != nil {
		return nil, err
	}
	if in.Range == "" {
		return nil, status.Errorf(codes.InvalidArgument, "no range for name %q", in.Name)
	}
	r, err := s.parseRange(in.Range)
	if err != nil {
		return nil, err
	}
	if err = w.DefineName(in.Name, r); err != nil {
		return nil, toStatus(err)
	}
	return new(empty.Empty), nil
}

// LookupName returns the range bound to a name.
func (s *sheetServer) LookupName(ctx context.Context, in *NameRequest) (*NameResponse, error) {
	w, err := s.worksheet(in.Worksheet)
	if err != nil {
		return nil, err
	}
	r, ok := w.LookupName(in.Name)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "name %q not found", in.Name)
	}
	return &NameResponse{Name: in.Name, Range: r.String()}, nil
}

// Shutdown stops the server after the pending calls complete.
func (s *sheetServer) Shutdown(ctx context.Context, in *empty.Empty) (*empty.Empty, error) {
	glog.Info("Shutdown called")
	defer glog.Flush()

	s.once.Do(func() {
		if s.done != nil {
			close(s.done)
		}
	})
	return new(empty.Empty), nil
}
