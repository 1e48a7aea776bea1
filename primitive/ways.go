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

// Ways yields one Way per way record of grp, in record order.  Node ids are
// delta-decoded independently for each way.
func Ways(blk *Block, grp *protobuf.PrimitiveGroup) iter.Seq[model.Way] {
	return sequence(func() producer[model.Way] {
		return &ways{block: blk, ways: grp.GetWays()}
	})
}

type ways struct {
	block *Block
	ways  []*protobuf.Way
	i     int
}

func (w *ways) next() (model.Way, bool) {
	if w.i >= len(w.ways) {
		return model.Way{}, false
	}

	way := w.ways[w.i]
	w.i++

	refs := way.GetRefs()
	nodeIDs := make([]model.ID, len(refs))

	var nodeID delta[int64]

	for j, d := range refs {
		nodeIDs[j] = model.ID(nodeID.add(d))
	}

	return model.Way{
		ID:      model.ID(way.GetId()),
		Tags:    w.block.Tags(way.GetKeys(), way.GetVals()),
		Info:    w.block.Info(way.GetInfo()),
		NodeIDs: nodeIDs,
	}, true
}
