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

package primitive

import (
	"iter"

	"m4o.io/osmpbf/model"
	"m4o.io/osmpbf/protobuf"
)

// Nodes yields the simple nodes of grp followed by its dense nodes.
func Nodes(blk *Block, grp *protobuf.PrimitiveGroup) iter.Seq[model.Node] {
	return concat(SimpleNodes(blk, grp), DenseNodes(blk, grp))
}

// SimpleNodes yields one Node per simple node record of grp, in record order.
func SimpleNodes(blk *Block, grp *protobuf.PrimitiveGroup) iter.Seq[model.Node] {
	return sequence(func() producer[model.Node] {
		return &simpleNodes{block: blk, nodes: grp.GetNodes()}
	})
}

type simpleNodes struct {
	block *Block
	nodes []*protobuf.Node
	i     int
}

func (s *simpleNodes) next() (model.Node, bool) {
	if s.i >= len(s.nodes) {
		return model.Node{}, false
	}

	node := s.nodes[s.i]
	s.i++

	return model.Node{
		ID:   model.ID(node.GetId()),
		Tags: s.block.Tags(node.GetKeys(), node.GetVals()),
		Info: s.block.Info(node.GetInfo()),
		Lat:  s.block.Lat(node.GetLat()),
		Lon:  s.block.Lon(node.GetLon()),
	}, true
}

// DenseNodes yields the dense nodes of grp.  Ids and coordinates are summed
// across the whole group; the sequence ends as soon as any of the id, lat or
// lon columns is exhausted.
func DenseNodes(blk *Block, grp *protobuf.PrimitiveGroup) iter.Seq[model.Node] {
	return sequence(func() producer[model.Node] {
		dense := grp.GetDense()

		return &denseNodes{
			block:    blk,
			ids:      dense.GetId(),
			lats:     dense.GetLat(),
			lons:     dense.GetLon(),
			keysVals: dense.GetKeysVals(),
			info:     newDenseInfo(blk, dense.GetDenseinfo()),
		}
	})
}

type denseNodes struct {
	block    *Block
	ids      []int64
	lats     []int64
	lons     []int64
	keysVals []int32
	info     *denseInfo

	i  int // next node
	kv int // next keysVals entry

	id  delta[int64]
	lat delta[int64]
	lon delta[int64]
}

func (d *denseNodes) next() (model.Node, bool) {
	i := d.i
	if i >= len(d.ids) || i >= len(d.lats) || i >= len(d.lons) {
		return model.Node{}, false
	}

	d.i++

	id := d.id.add(d.ids[i])
	lat := d.lat.add(d.lats[i])
	lon := d.lon.add(d.lons[i])

	return model.Node{
		ID:   model.ID(id),
		Tags: d.tags(),
		Info: d.info.next(i),
		Lat:  d.block.Lat(lat),
		Lon:  d.block.Lon(lon),
	}, true
}

// tags consumes one node's run of (key, value) pairs from keysVals.  The run
// ends at a 0 key, which is consumed, or at the end of the stream.  A key
// without a value is dropped.
func (d *denseNodes) tags() model.Tags {
	tags := make(model.Tags)

	for d.kv < len(d.keysVals) {
		k := d.keysVals[d.kv]
		d.kv++

		if k == 0 {
			break
		}

		key := d.block.Lookup(int(k))

		if d.kv >= len(d.keysVals) {
			break
		}

		v := d.keysVals[d.kv]
		d.kv++

		tags[key] = d.block.Lookup(int(v))
	}

	return tags
}

// denseInfo decodes the DenseInfo columns alongside the dense nodes.  Short
// columns leave the corresponding fields at their defaults.
type denseInfo struct {
	block *Block
	info  *protobuf.DenseInfo

	timestamp delta[int64]
	changeset delta[int64]
	uid       delta[int32]
	userSid   delta[int32]
}

func newDenseInfo(blk *Block, info *protobuf.DenseInfo) *denseInfo {
	if info == nil {
		return nil
	}

	return &denseInfo{block: blk, info: info}
}

func (d *denseInfo) next(i int) *model.Info {
	if d == nil {
		return nil
	}

	info := &model.Info{
		Version: protobuf.Default_Info_Version,
		Visible: true,
	}

	if versions := d.info.GetVersion(); i < len(versions) {
		info.Version = versions[i]
	}

	if timestamps := d.info.GetTimestamp(); i < len(timestamps) {
		info.Timestamp = d.block.timestamp(d.timestamp.add(timestamps[i]))
	}

	if changesets := d.info.GetChangeset(); i < len(changesets) {
		info.Changeset = d.changeset.add(changesets[i])
	}

	if uids := d.info.GetUid(); i < len(uids) {
		info.UID = model.UID(d.uid.add(uids[i]))
	}

	if userSids := d.info.GetUserSid(); i < len(userSids) {
		info.User = d.block.Lookup(int(d.userSid.add(userSids[i])))
	}

	if visibilities := d.info.GetVisible(); i < len(visibilities) {
		info.Visible = visibilities[i]
	}

	return info
}
