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

// Objects yields every object of grp: simple nodes, dense nodes, ways and
// then relations, each kind in record order.
func Objects(blk *Block, grp *protobuf.PrimitiveGroup) iter.Seq[model.Object] {
	return concat(
		objects(Nodes(blk, grp)),
		objects(Ways(blk, grp)),
		objects(Relations(blk, grp)),
	)
}

// BlockObjects yields the objects of every group of blk, group by group.
func BlockObjects(blk *protobuf.PrimitiveBlock) iter.Seq[model.Object] {
	b := NewBlock(blk)
	groups := blk.GetPrimitivegroup()

	seqs := make([]iter.Seq[model.Object], len(groups))
	for i, grp := range groups {
		seqs[i] = Objects(b, grp)
	}

	return concat(seqs...)
}
