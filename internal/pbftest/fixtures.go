// Copyright 2025 the original author or authors.
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

package pbftest

import (
	"google.golang.org/protobuf/proto"

	"m4o.io/osmpbf/protobuf"
)

// Sample counts of the objects in SampleBlock.
const (
	SampleNodes     = 4
	SampleWays      = 1
	SampleRelations = 1
)

// SampleStrings is the string table of SampleBlock.
var SampleStrings = []string{
	"", "highway", "residential", "name", "Baker Street",
	"amenity", "pub", "type", "route", "stop", "alice",
}

// SampleHeader returns a header block resembling one written by osmium.
func SampleHeader() *protobuf.HeaderBlock {
	return &protobuf.HeaderBlock{
		Bbox: &protobuf.HeaderBBox{
			Left:   proto.Int64(-511_482_000),
			Right:  proto.Int64(335_437_000),
			Top:    proto.Int64(51_693_440_000),
			Bottom: proto.Int64(51_285_540_000),
		},
		RequiredFeatures:            []string{"OsmSchema-V0.6", "DenseNodes"},
		Writingprogram:              proto.String("osmium/1.14.0"),
		OsmosisReplicationTimestamp: proto.Int64(1_395_698_102),
	}
}

// SampleStringTable returns SampleStrings as a StringTable.
func SampleStringTable() *protobuf.StringTable {
	st := &protobuf.StringTable{}
	for _, s := range SampleStrings {
		st.S = append(st.S, []byte(s))
	}

	return st
}

// SampleBlock returns a block holding one simple node, three dense nodes, a
// way over the dense nodes and a route relation, spread over three groups.
func SampleBlock() *protobuf.PrimitiveBlock {
	return &protobuf.PrimitiveBlock{
		Stringtable: SampleStringTable(),
		Primitivegroup: []*protobuf.PrimitiveGroup{
			{
				Nodes: []*protobuf.Node{
					{
						Id:   proto.Int64(1),
						Keys: []uint32{5},
						Vals: []uint32{6},
						Info: &protobuf.Info{
							Version:   proto.Int32(2),
							Timestamp: proto.Int64(1_600_000_000),
							Changeset: proto.Int64(77),
							Uid:       proto.Int32(42),
							UserSid:   proto.Uint32(10),
						},
						Lat: proto.Int64(515_000_000),
						Lon: proto.Int64(-1_275_000),
					},
				},
				Dense: &protobuf.DenseNodes{
					Id:       []int64{2, 1, 1},
					Lat:      []int64{515_010_000, 100, 100},
					Lon:      []int64{-1_270_000, 50, 50},
					KeysVals: []int32{3, 4, 0, 0, 1, 2, 0},
				},
			},
			{
				Ways: []*protobuf.Way{
					{
						Id:   proto.Int64(10),
						Keys: []uint32{1, 3},
						Vals: []uint32{2, 4},
						Refs: []int64{2, 1, 1},
					},
				},
			},
			{
				Relations: []*protobuf.Relation{
					{
						Id:       proto.Int64(20),
						Keys:     []uint32{7},
						Vals:     []uint32{8},
						Memids:   []int64{10, -8},
						Types:    []protobuf.Relation_MemberType{protobuf.Relation_WAY, protobuf.Relation_NODE},
						RolesSid: []int32{0, 9},
					},
				},
			},
		},
		Granularity:     proto.Int32(100),
		DateGranularity: proto.Int32(1000),
	}
}

// SampleFile returns a PBF file holding SampleHeader and n copies of
// SampleBlock.
func SampleFile(c Compression, n int) ([]byte, error) {
	blocks := make([]*protobuf.PrimitiveBlock, n)
	for i := range blocks {
		blocks[i] = SampleBlock()
	}

	return File(SampleHeader(), c, blocks...)
}
