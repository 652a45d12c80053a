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

	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "gridstore.Sheet"

// SheetClient is the client API for Sheet service.
type SheetClient interface {
	// AddWorksheet creates an empty worksheet.
	AddWorksheet(ctx context.Context, in *WorksheetRequest, opts ...grpc.CallOption) (*empty.Empty, error)
	SetCell(ctx context.Context, in *SetCellRequest, opts ...grpc.CallOption) (*empty.Empty, error)
	GetCell(ctx context.Context, in *CellRequest, opts ...grpc.CallOption) (*CellResponse, error)
	// Clear empties a range without moving any other cell.
	Clear(ctx context.Context, in *RangeRequest, opts ...grpc.CallOption) (*empty.Empty, error)
	// Range lists the occupied cells of a range in row-major order.
	Range(ctx context.Context, in *RangeRequest, opts ...grpc.CallOption) (*CellsResponse, error)
	Dimension(ctx context.Context, in *WorksheetRequest, opts ...grpc.CallOption) (*DimensionResponse, error)
	// Navigate finds the next (or previous) occupied cell in row-major order.
	Navigate(ctx context.Context, in *NavigateRequest, opts ...grpc.CallOption) (*CellResponse, error)
	Insert(ctx context.Context, in *ShiftRequest, opts ...grpc.CallOption) (*ShiftResponse, error)
	Delete(ctx context.Context, in *ShiftRequest, opts ...grpc.CallOption) (*ShiftResponse, error)
	AddComment(ctx context.Context, in *CommentRequest, opts ...grpc.CallOption) (*empty.Empty, error)
	GetComment(ctx context.Context, in *CommentIndexRequest, opts ...grpc.CallOption) (*CommentResponse, error)
	RemoveComment(ctx context.Context, in *CommentIndexRequest, opts ...grpc.CallOption) (*empty.Empty, error)
	DefineName(ctx context.Context, in *NameRequest, opts ...grpc.CallOption) (*empty.Empty, error)
	LookupName(ctx context.Context, in *NameRequest, opts ...grpc.CallOption) (*NameResponse, error)
	// Shutdown stops the server gracefully.
	Shutdown(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error)
}

type sheetClient struct {
	cc grpc.ClientConnInterface
}

func NewSheetClient(cc grpc.ClientConnInterface) SheetClient {
	return &sheetClient{cc}
}

// invoke calls a unary method with the JSON content subtype.
func invoke[T any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*T, error) {
	out := new(T)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+serviceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sheetClient) AddWorksheet(ctx context.Context, in *WorksheetRequest, opts ...grpc.CallOption) (*empty.Empty, error) {
	return invoke[empty.Empty](ctx, c.cc, "AddWorksheet", in, opts)
}

func (c *sheetClient) SetCell(ctx context.Context, in *SetCellRequest, opts ...grpc.CallOption) (*empty.Empty, error) {
	return invoke[empty.Empty](ctx, c.cc, "SetCell", in, opts)
}

func (c *sheetClient) GetCell(ctx context.Context, in *CellRequest, opts ...grpc.CallOption) (*CellResponse, error) {
	return invoke[CellResponse](ctx, c.cc, "GetCell", in, opts)
}

func (c *sheetClient) Clear(ctx context.Context, in *RangeRequest, opts ...grpc.CallOption) (*empty.Empty, error) {
	return invoke[empty.Empty](ctx, c.cc, "Clear", in, opts)
}

func (c *sheetClient) Range(ctx context.Context, in *RangeRequest, opts ...grpc.CallOption) (*CellsResponse, error) {
	return invoke[CellsResponse](ctx, c.cc, "Range", in, opts)
}

func (c *sheetClient) Dimension(ctx context.Context, in *WorksheetRequest, opts ...grpc.CallOption) (*DimensionResponse, error) {
	return invoke[DimensionResponse](ctx, c.cc, "Dimension", in, opts)
}

func (c *sheetClient) Navigate(ctx context.Context, in *NavigateRequest, opts ...grpc.CallOption) (*CellResponse, error) {
	return invoke[CellResponse](ctx, c.cc, "Navigate", in, opts)
}

func (c *sheetClient) Insert(ctx context.Context, in *ShiftRequest, opts ...grpc.CallOption) (*ShiftResponse, error) {
	return invoke[ShiftResponse](ctx, c.cc, "Insert", in, opts)
}

func (c *sheetClient) Delete(ctx context.Context, in *ShiftRequest, opts ...grpc.CallOption) (*ShiftResponse, error) {
	return invoke[ShiftResponse](ctx, c.cc, "Delete", in, opts)
}

func (c *sheetClient) AddComment(ctx context.Context, in *CommentRequest, opts ...grpc.CallOption) (*empty.Empty, error) {
	return invoke[empty.Empty](ctx, c.cc, "AddComment", in, opts)
}

func (c *sheetClient) GetComment(ctx context.Context, in *CommentIndexRequest, opts ...grpc.CallOption) (*CommentResponse, error) {
	return invoke[CommentResponse](ctx, c.cc, "GetComment", in, opts)
}

func (c *sheetClient) RemoveComment(ctx context.Context, in *CommentIndexRequest, opts ...grpc.CallOption) (*empty.Empty, error) {
	return invoke[empty.Empty](ctx, c.cc, "RemoveComment", in, opts)
}

func (c *sheetClient) DefineName(ctx context.Context, in *NameRequest, opts ...grpc.CallOption) (*empty.Empty, error) {
	return invoke[empty.Empty](ctx, c.cc, "DefineName", in, opts)
}

func (c *sheetClient) LookupName(ctx context.Context, in *NameRequest, opts ...grpc.CallOption) (*NameResponse, error) {
	return invoke[NameResponse](ctx, c.cc, "LookupName", in, opts)
}

func (c *sheetClient) Shutdown(ctx context.Context, in *empty.Empty, opts ...grpc.CallOption) (*empty.Empty, error) {
	return invoke[empty.Empty](ctx, c.cc, "Shutdown", in, opts)
}

// SheetServer is the server API for Sheet service.
// All implementations must embed UnimplementedSheetServer
// for forward compatibility
type SheetServer interface {
	AddWorksheet(context.Context, *WorksheetRequest) (*empty.Empty, error)
	SetCell(context.Context, *SetCellRequest) (*empty.Empty, error)
	GetCell(context.Context, *CellRequest) (*CellResponse, error)
	Clear(context.Context, *RangeRequest) (*empty.Empty, error)
	Range(context.Context, *RangeRequest) (*CellsResponse, error)
	Dimension(context.Context, *WorksheetRequest) (*DimensionResponse, error)
	Navigate(context.Context, *NavigateRequest) (*CellResponse, error)
	Insert(context.Context, *ShiftRequest) (*ShiftResponse, error)
	Delete(context.Context, *ShiftRequest) (*ShiftResponse, error)
	AddComment(context.Context, *CommentRequest) (*empty.Empty, error)
	GetComment(context.Context, *CommentIndexRequest) (*CommentResponse, error)
	RemoveComment(context.Context, *CommentIndexRequest) (*empty.Empty, error)
	DefineName(context.Context, *NameRequest) (*empty.Empty, error)
	LookupName(context.Context, *NameRequest) (*NameResponse, error)
	Shutdown(context.Context, *empty.Empty) (*empty.Empty, error)
	mustEmbedUnimplementedSheetServer()
}

// UnimplementedSheetServer must be embedded to have forward compatible implementations.
type UnimplementedSheetServer struct {
}

func (UnimplementedSheetServer) AddWorksheet(context.Context, *WorksheetRequest) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddWorksheet not implemented")
}
func (UnimplementedSheetServer) SetCell(context.Context, *SetCellRequest) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetCell not implemented")
}
func (UnimplementedSheetServer) GetCell(context.Context, *CellRequest) (*CellResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCell not implemented")
}
func (UnimplementedSheetServer) Clear(context.Context, *RangeRequest) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Clear not implemented")
}
func (UnimplementedSheetServer) Range(context.Context, *RangeRequest) (*CellsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Range not implemented")
}
func (UnimplementedSheetServer) Dimension(context.Context, *WorksheetRequest) (*DimensionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Dimension not implemented")
}
func (UnimplementedSheetServer) Navigate(context.Context, *NavigateRequest) (*CellResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Navigate not implemented")
}
func (UnimplementedSheetServer) Insert(context.Context, *ShiftRequest) (*ShiftResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Insert not implemented")
}
func (UnimplementedSheetServer) Delete(context.Context, *ShiftRequest) (*ShiftResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Delete not implemented")
}
func (UnimplementedSheetServer) AddComment(context.Context, *CommentRequest) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AddComment not implemented")
}
func (UnimplementedSheetServer) GetComment(context.Context, *CommentIndexRequest) (*CommentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetComment not implemented")
}
func (UnimplementedSheetServer) RemoveComment(context.Context, *CommentIndexRequest) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RemoveComment not implemented")
}
func (UnimplementedSheetServer) DefineName(context.Context, *NameRequest) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DefineName not implemented")
}
func (UnimplementedSheetServer) LookupName(context.Context, *NameRequest) (*NameResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method LookupName not implemented")
}
func (UnimplementedSheetServer) Shutdown(context.Context, *empty.Empty) (*empty.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Shutdown not implemented")
}
func (UnimplementedSheetServer) mustEmbedUnimplementedSheetServer() {}

func RegisterSheetServer(s grpc.ServiceRegistrar, srv SheetServer) {
	s.RegisterService(&Sheet_ServiceDesc, srv)
}

// handler adapts a typed server method to a grpc.MethodDesc.
func handler[Req, Resp any](method string, call func(SheetServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(SheetServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + method,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(SheetServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Sheet_ServiceDesc is the grpc.ServiceDesc for Sheet service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var Sheet_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SheetServer)(nil),
	Methods: []grpc.MethodDesc{
		handler("AddWorksheet", SheetServer.AddWorksheet),
		handler("SetCell", SheetServer.SetCell),
		handler("GetCell", SheetServer.GetCell),
		handler("Clear", SheetServer.Clear),
		handler("Range", SheetServer.Range),
		handler("Dimension", SheetServer.Dimension),
		handler("Navigate", SheetServer.Navigate),
		handler("Insert", SheetServer.Insert),
		handler("Delete", SheetServer.Delete),
		handler("AddComment", SheetServer.AddComment),
		handler("GetComment", SheetServer.GetComment),
		handler("RemoveComment", SheetServer.RemoveComment),
		handler("DefineName", SheetServer.DefineName),
		handler("LookupName", SheetServer.LookupName),
		handler("Shutdown", SheetServer.Shutdown),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sheet/sheet.go",
}
