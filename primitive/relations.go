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

// Relations yields one Relation per relation record of grp, in record order.
func Relations(blk *Block, grp *protobuf.PrimitiveGroup) iter.Seq[model.Relation] {
	return sequence(func() producer[model.Relation] {
		return &relations{block: blk, relations: grp.GetRelations()}
	})
}

type relations struct {
	block     *Block
	relations []*protobuf.Relation
	i         int
}

func (r *relations) next() (model.Relation, bool) {
	if r.i >= len(r.relations) {
		return model.Relation{}, false
	}

	rel := r.relations[r.i]
	r.i++

	return model.Relation{
		ID:   model.ID(rel.GetId()),
		Tags: r.block.Tags(rel.GetKeys(), rel.GetVals()),
		Info: r.block.Info(rel.GetInfo()),
		Refs: r.block.refs(rel),
	}, true
}

// refs zips the member id, type and role columns of rel, stopping at the
// shortest.  Member ids are delta-coded within the relation.  A member of an
// unknown type is skipped but its delta still counts.
func (b *Block) refs(rel *protobuf.Relation) []model.Ref {
	memids := rel.GetMemids()
	types := rel.GetTypes()
	roles := rel.GetRolesSid()

	n := min(len(memids), len(types), len(roles))
	refs := make([]model.Ref, 0, n)

	var memid delta[int64]

	for i := range n {
		id := model.ID(memid.add(memids[i]))

		member := model.NewOsmID(memberType(types[i]), id)
		if member == nil {
			continue
		}

		refs = append(refs, model.Ref{
			Member: member,
			Role:   b.Lookup(int(roles[i])),
		})
	}

	return refs
}

// memberType converts the protobuf member type enum to an EntityType.
// Unknown values map to an EntityType that model.NewOsmID rejects.
func memberType(mt protobuf.Relation_MemberType) model.EntityType {
	switch mt {
	case protobuf.Relation_NODE:
		return model.NODE
	case protobuf.Relation_WAY:
		return model.WAY
	case protobuf.Relation_RELATION:
		return model.RELATION
	default:
		return model.EntityType(-1)
	}
}
