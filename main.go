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

// Package main implements the gridstore server.  Worksheets are created and
// edited by clients of the Sheet service; the sheet bounds, invariant
// checking and navigation strategy are fixed at startup.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/9rum/gridstore/internal/cell"
	"github.com/9rum/gridstore/internal/store"
	"github.com/9rum/gridstore/sheet"
	"github.com/golang/glog"
	"google.golang.org/grpc"
)

func main() {
	port := flag.Int("p", 50051, "The server port")
	rows := flag.Int("rows", cell.MaxRows, "The number of rows of a worksheet")
	cols := flag.Int("cols", cell.MaxCols, "The number of columns of a worksheet")
	verify := flag.Bool("verify", false, "Debug builds: re-check the tree invariants after every row or column shift and fail the request on a violation")
	nav := flag.String("nav", store.TreeNavigation.String(), "The navigation strategy: tree walks the ordered map in O(log n), scan visits every coordinate of the occupied bounding box")
	flag.Parse()

	config, err := newConfig(*rows, *cols, *verify, *nav)
	if err != nil {
		glog.Fatalf("invalid configuration: %v", err)
	}
	if err = serve(*port, config); err != nil {
		glog.Fatalf("failed to serve: %v", err)
	}
}

func newConfig(rows, cols int, verify bool, nav string) (sheet.Config, error) {
	config := sheet.Config{
		Bounds: cell.Bounds{MaxRows: rows, MaxCols: cols},
		Verify: verify,
	}
	if err := config.Bounds.Validate(); err != nil {
		return config, err
	}
	navigation, err := store.ParseNavigation(nav)
	if err != nil {
		return config, err
	}
	config.Navigation = navigation
	return config, nil
}

func serve(port int, config sheet.Config) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}

	server := newServer(config)
	glog.Infof("server listening at %v with %d rows, %d columns and %s navigation", lis.Addr(), config.Bounds.MaxRows, config.Bounds.MaxCols, config.Navigation)

	return server.Serve(lis)
}

func newServer(config sheet.Config) *grpc.Server {
	done := make(chan os.Signal)
	server := sheet.NewServer(done, config)

	go func(done <-chan os.Signal, server *grpc.Server) {
		<-done
		server.GracefulStop()
	}(done, server)

	return server
}
