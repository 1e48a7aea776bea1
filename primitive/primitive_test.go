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

package primitive_test

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"m4o.io/osmpbf/internal/pbftest"
	"m4o.io/osmpbf/model"
	"m4o.io/osmpbf/primitive"
	"m4o.io/osmpbf/protobuf"
)

// table is the string table used by most tests; entry i is "s<i>".
var table = []string{"", "s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9"}

func newBlock(strings []string, granularity int32, latOffset, lonOffset int64) *primitive.Block {
	st := &protobuf.StringTable{}
	for _, s := range strings {
		st.S = append(st.S, []byte(s))
	}

	return primitive.NewBlock(&protobuf.PrimitiveBlock{
		Stringtable: st,
		Granularity: proto.Int32(granularity),
		LatOffset:   proto.Int64(latOffset),
		LonOffset:   proto.Int64(lonOffset),
	})
}

func defaultBlock() *primitive.Block {
	return newBlock(table, 100, 0, 0)
}

func TestLookup(t *testing.T) {
	blk := defaultBlock()

	assert.Equal(t, "", blk.Lookup(0))
	assert.Equal(t, "s9", blk.Lookup(9))
	assert.Panics(t, func() { blk.Lookup(10) })
	assert.Panics(t, func() { blk.Lookup(-1) })
}

func TestLookupLossyUTF8(t *testing.T) {
	test_cases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"valid", "caf\xc3\xa9", "café"},
		{"encoded replacement", "a\xef\xbf\xbdb", "a\ufffdb"},
		{"two invalid bytes", "bad\xff\xfename", "bad\ufffd\ufffdname"},
		{"truncated three byte", "a\xe2\x82b", "a\ufffdb"},
		{"truncated four byte", "\xf0\x9f\x98", "\ufffd"},
		{"truncated at end", "ok\xc3", "ok\ufffd"},
		{"overlong", "\xc0\xaf", "\ufffd\ufffd"},
		{"surrogate", "\xed\xa0\x80", "\ufffd\ufffd\ufffd"},
		{"above max", "\xf4\x90\x80\x80", "\ufffd\ufffd\ufffd\ufffd"},
		{"lone continuation", "x\x80y", "x\ufffdy"},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			blk := primitive.NewBlock(&protobuf.PrimitiveBlock{
				Stringtable: &protobuf.StringTable{S: [][]byte{{}, []byte(tc.raw)}},
			})

			assert.Equal(t, tc.expected, blk.Lookup(1))
		})
	}
}

func TestTags(t *testing.T) {
	blk := defaultBlock()

	assert.Equal(t, model.Tags{"s1": "s2", "s3": "s4"}, blk.Tags([]uint32{1, 3}, []uint32{2, 4}))
	assert.Equal(t, model.Tags{"s1": "s2"}, blk.Tags([]uint32{1, 3}, []uint32{2}))
	assert.Equal(t, model.Tags{"s1": "s4"}, blk.Tags([]uint32{1, 1}, []uint32{2, 4}))
	assert.Equal(t, model.Tags{}, blk.Tags(nil, nil))
}

func TestSimpleNodes(t *testing.T) {
	blk := newBlock(table, 7, 1000, -500)
	grp := &protobuf.PrimitiveGroup{
		Nodes: []*protobuf.Node{
			{Id: proto.Int64(12), Lat: proto.Int64(10), Lon: proto.Int64(-20), Keys: []uint32{1}, Vals: []uint32{2}},
			{Id: proto.Int64(11), Lat: proto.Int64(0), Lon: proto.Int64(0)},
		},
	}

	nodes := slices.Collect(primitive.SimpleNodes(blk, grp))
	require.Len(t, nodes, 2)

	assert.Equal(t, model.ID(12), nodes[0].ID)
	assert.InDelta(t, 1e-9*(1000+7*10), float64(nodes[0].Lat), 1e-15)
	assert.InDelta(t, 1e-9*(-500+7*-20), float64(nodes[0].Lon), 1e-15)
	assert.Equal(t, model.Tags{"s1": "s2"}, nodes[0].Tags)
	assert.Nil(t, nodes[0].Info)

	assert.Equal(t, model.ID(11), nodes[1].ID)
	assert.InDelta(t, 1e-9*1000, float64(nodes[1].Lat), 1e-15)
	assert.InDelta(t, 1e-9*-500, float64(nodes[1].Lon), 1e-15)
	assert.Equal(t, model.Tags{}, nodes[1].Tags)
}

func TestDenseNodesPrefixSums(t *testing.T) {
	blk := newBlock(table, 100, 50, -50)
	grp := &protobuf.PrimitiveGroup{
		Dense: &protobuf.DenseNodes{
			Id:  []int64{100, 1, -3, 10},
			Lat: []int64{5, 5, -20, 0},
			Lon: []int64{-7, 2, 2, 2},
		},
	}

	nodes := slices.Collect(primitive.DenseNodes(blk, grp))
	require.Len(t, nodes, 4)

	ids := []model.ID{100, 101, 98, 108}
	lats := []int64{5, 10, -10, -10}
	lons := []int64{-7, -5, -3, -1}

	for i, n := range nodes {
		assert.Equal(t, ids[i], n.ID)
		assert.Equal(t, model.ToDegrees(50, 100, lats[i]), n.Lat)
		assert.Equal(t, model.ToDegrees(-50, 100, lons[i]), n.Lon)
		assert.Equal(t, model.Tags{}, n.Tags)
	}
}

func TestDenseNodesTruncatedColumns(t *testing.T) {
	grp := &protobuf.PrimitiveGroup{
		Dense: &protobuf.DenseNodes{
			Id:  []int64{1, 1, 1},
			Lat: []int64{0, 0},
			Lon: []int64{0, 0, 0},
		},
	}

	nodes := slices.Collect(primitive.DenseNodes(defaultBlock(), grp))

	assert.Len(t, nodes, 2)
}

func TestDenseNodesTags(t *testing.T) {
	test_cases := []struct {
		name     string
		keysVals []int32
		expected []model.Tags
	}{
		{"two nodes", []int32{5, 7, 0, 3, 4}, []model.Tags{{"s5": "s7"}, {"s3": "s4"}}},
		{"trailing key", []int32{5, 7, 0, 3}, []model.Tags{{"s5": "s7"}, {}}},
		{"lone key", []int32{5}, []model.Tags{{}, {}}},
		{"immediate sentinel", []int32{0, 1, 2, 0}, []model.Tags{{}, {"s1": "s2"}}},
		{"empty stream", nil, []model.Tags{{}, {}}},
		{"zero value index", []int32{3, 0, 0, 0}, []model.Tags{{"s3": ""}, {}}},
		{"several pairs", []int32{1, 2, 3, 4, 0, 5, 6, 0}, []model.Tags{{"s1": "s2", "s3": "s4"}, {"s5": "s6"}}},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			grp := &protobuf.PrimitiveGroup{
				Dense: &protobuf.DenseNodes{
					Id:       []int64{1, 1},
					Lat:      []int64{0, 0},
					Lon:      []int64{0, 0},
					KeysVals: tc.keysVals,
				},
			}

			var tags []model.Tags
			for n := range primitive.DenseNodes(defaultBlock(), grp) {
				tags = append(tags, n.Tags)
			}

			assert.Equal(t, tc.expected, tags)
		})
	}
}

func TestDenseNodesEmpty(t *testing.T) {
	blk := defaultBlock()

	assert.Empty(t, slices.Collect(primitive.DenseNodes(blk, &protobuf.PrimitiveGroup{})))
	assert.Empty(t, slices.Collect(primitive.DenseNodes(blk, &protobuf.PrimitiveGroup{Dense: &protobuf.DenseNodes{}})))
}

func TestDenseNodesInfo(t *testing.T) {
	blk := newBlock([]string{"", "alice", "bob"}, 100, 0, 0)
	grp := &protobuf.PrimitiveGroup{
		Dense: &protobuf.DenseNodes{
			Id:  []int64{1, 1, 1},
			Lat: []int64{0, 0, 0},
			Lon: []int64{0, 0, 0},
			Denseinfo: &protobuf.DenseInfo{
				Version:   []int32{3, 1, 2},
				Timestamp: []int64{1_000, 10, -5},
				Changeset: []int64{500, 1, 0},
				Uid:       []int32{7, 1, -1},
				UserSid:   []int32{1, 1, -1},
				Visible:   []bool{true, false},
			},
		},
	}

	var infos []*model.Info
	for n := range primitive.DenseNodes(blk, grp) {
		infos = append(infos, n.Info)
	}

	ts := func(s int64) time.Time { return time.Unix(s, 0).UTC() }

	assert.Equal(t, []*model.Info{
		{Version: 3, Timestamp: ts(1_000), Changeset: 500, UID: 7, User: "alice", Visible: true},
		{Version: 1, Timestamp: ts(1_010), Changeset: 501, UID: 8, User: "bob", Visible: false},
		{Version: 2, Timestamp: ts(1_005), Changeset: 501, UID: 7, User: "alice", Visible: true},
	}, infos)
}

func TestSimpleNodeInfo(t *testing.T) {
	blk := newBlock([]string{"", "alice"}, 100, 0, 0)
	grp := &protobuf.PrimitiveGroup{
		Nodes: []*protobuf.Node{
			{
				Id: proto.Int64(1),
				Info: &protobuf.Info{
					Version:   proto.Int32(4),
					Timestamp: proto.Int64(1_600_000_000),
					Changeset: proto.Int64(9),
					Uid:       proto.Int32(3),
					UserSid:   proto.Uint32(1),
					Visible:   proto.Bool(false),
				},
			},
			{Id: proto.Int64(2), Info: &protobuf.Info{}},
		},
	}

	nodes := slices.Collect(primitive.SimpleNodes(blk, grp))
	require.Len(t, nodes, 2)

	assert.Equal(t, &model.Info{
		Version:   4,
		Timestamp: time.Unix(1_600_000_000, 0).UTC(),
		Changeset: 9,
		UID:       3,
		User:      "alice",
		Visible:   false,
	}, nodes[0].Info)
	assert.Equal(t, &model.Info{Version: -1, Visible: true}, nodes[1].Info)
}

func TestNodesSimpleThenDense(t *testing.T) {
	grp := &protobuf.PrimitiveGroup{
		Nodes: []*protobuf.Node{{Id: proto.Int64(50)}, {Id: proto.Int64(40)}},
		Dense: &protobuf.DenseNodes{Id: []int64{1, 1}, Lat: []int64{0, 0}, Lon: []int64{0, 0}},
	}

	var ids []model.ID
	for n := range primitive.Nodes(defaultBlock(), grp) {
		ids = append(ids, n.ID)
	}

	assert.Equal(t, []model.ID{50, 40, 1, 2}, ids)
}

func TestWays(t *testing.T) {
	grp := &protobuf.PrimitiveGroup{
		Ways: []*protobuf.Way{
			{Id: proto.Int64(7), Refs: []int64{3, -1, 2}, Keys: []uint32{1}, Vals: []uint32{2}},
			{Id: proto.Int64(8), Refs: []int64{3, 0, 3}},
			{Id: proto.Int64(9)},
		},
	}

	ways := slices.Collect(primitive.Ways(defaultBlock(), grp))

	assert.Equal(t, []model.Way{
		{ID: 7, Tags: model.Tags{"s1": "s2"}, NodeIDs: []model.ID{3, 2, 4}},
		{ID: 8, Tags: model.Tags{}, NodeIDs: []model.ID{3, 3, 6}},
		{ID: 9, Tags: model.Tags{}, NodeIDs: []model.ID{}},
	}, ways)
}

func TestRelations(t *testing.T) {
	grp := &protobuf.PrimitiveGroup{
		Relations: []*protobuf.Relation{
			{
				Id:       proto.Int64(1),
				Keys:     []uint32{7},
				Vals:     []uint32{8},
				Memids:   []int64{10, -4, 1},
				Types:    []protobuf.Relation_MemberType{protobuf.Relation_NODE, protobuf.Relation_WAY, protobuf.Relation_RELATION},
				RolesSid: []int32{1, 0, 2},
			},
			{
				Id:       proto.Int64(2),
				Memids:   []int64{10, 5},
				Types:    []protobuf.Relation_MemberType{protobuf.Relation_WAY, protobuf.Relation_NODE},
				RolesSid: []int32{3},
			},
		},
	}

	rels := slices.Collect(primitive.Relations(defaultBlock(), grp))

	assert.Equal(t, []model.Relation{
		{
			ID:   1,
			Tags: model.Tags{"s7": "s8"},
			Refs: []model.Ref{
				{Member: model.NodeID(10), Role: "s1"},
				{Member: model.WayID(6), Role: ""},
				{Member: model.RelationID(7), Role: "s2"},
			},
		},
		{
			ID:   2,
			Tags: model.Tags{},
			Refs: []model.Ref{{Member: model.WayID(10), Role: "s3"}},
		},
	}, rels)
}

func TestRelationsUnknownMemberType(t *testing.T) {
	grp := &protobuf.PrimitiveGroup{
		Relations: []*protobuf.Relation{
			{
				Id:       proto.Int64(1),
				Memids:   []int64{10, 5, 1},
				Types:    []protobuf.Relation_MemberType{protobuf.Relation_NODE, 9, protobuf.Relation_NODE},
				RolesSid: []int32{0, 0, 0},
			},
		},
	}

	rels := slices.Collect(primitive.Relations(defaultBlock(), grp))
	require.Len(t, rels, 1)

	assert.Equal(t, []model.Ref{
		{Member: model.NodeID(10)},
		{Member: model.NodeID(16)},
	}, rels[0].Refs)
}

func TestObjectsOrder(t *testing.T) {
	grp := &protobuf.PrimitiveGroup{
		Relations: []*protobuf.Relation{{Id: proto.Int64(4)}},
		Ways:      []*protobuf.Way{{Id: proto.Int64(3)}},
		Dense:     &protobuf.DenseNodes{Id: []int64{2}, Lat: []int64{0}, Lon: []int64{0}},
		Nodes:     []*protobuf.Node{{Id: proto.Int64(1)}},
	}

	var kinds []model.EntityType
	var ids []model.ID

	for o := range primitive.Objects(defaultBlock(), grp) {
		kinds = append(kinds, o.GetType())
		ids = append(ids, o.GetID())
	}

	assert.Equal(t, []model.EntityType{model.NODE, model.NODE, model.WAY, model.RELATION}, kinds)
	assert.Equal(t, []model.ID{1, 2, 3, 4}, ids)
}

func TestObjectsEmptyGroup(t *testing.T) {
	assert.Empty(t, slices.Collect(primitive.Objects(defaultBlock(), &protobuf.PrimitiveGroup{})))
	assert.Empty(t, slices.Collect(primitive.Objects(defaultBlock(), nil)))
}

func TestObjectsEarlyTermination(t *testing.T) {
	grp := &protobuf.PrimitiveGroup{
		Dense: &protobuf.DenseNodes{Id: []int64{1, 1, 1}, Lat: []int64{0, 0, 0}, Lon: []int64{0, 0, 0}},
		Ways:  []*protobuf.Way{{Id: proto.Int64(3)}},
	}

	var n int

	for range primitive.Objects(defaultBlock(), grp) {
		n++
		if n == 2 {
			break
		}
	}

	assert.Equal(t, 2, n)
}

func TestObjectsIdempotent(t *testing.T) {
	pb := pbftest.SampleBlock()
	blk := primitive.NewBlock(pb)

	for _, grp := range pb.GetPrimitivegroup() {
		seq := primitive.Objects(blk, grp)

		assert.Equal(t, slices.Collect(seq), slices.Collect(seq))
	}

	assert.Equal(t, pbftest.SampleBlock(), pb)
}

func TestBlockObjects(t *testing.T) {
	objs := slices.Collect(primitive.BlockObjects(pbftest.SampleBlock()))

	lat := func(c int64) model.Degrees { return model.ToDegrees(0, 100, c) }

	assert.Equal(t, []model.Object{
		model.Node{
			ID:   1,
			Tags: model.Tags{"amenity": "pub"},
			Info: &model.Info{
				Version:   2,
				Timestamp: time.Unix(1_600_000_000, 0).UTC(),
				Changeset: 77,
				UID:       42,
				User:      "alice",
				Visible:   true,
			},
			Lat: lat(515_000_000),
			Lon: lat(-1_275_000),
		},
		model.Node{ID: 2, Tags: model.Tags{"name": "Baker Street"}, Lat: lat(515_010_000), Lon: lat(-1_270_000)},
		model.Node{ID: 3, Tags: model.Tags{}, Lat: lat(515_010_100), Lon: lat(-1_269_950)},
		model.Node{ID: 4, Tags: model.Tags{"highway": "residential"}, Lat: lat(515_010_200), Lon: lat(-1_269_900)},
		model.Way{
			ID:      10,
			Tags:    model.Tags{"highway": "residential", "name": "Baker Street"},
			NodeIDs: []model.ID{2, 3, 4},
		},
		model.Relation{
			ID:   20,
			Tags: model.Tags{"type": "route"},
			Refs: []model.Ref{
				{Member: model.WayID(10), Role: ""},
				{Member: model.NodeID(2), Role: "stop"},
			},
		},
	}, objs)
}
