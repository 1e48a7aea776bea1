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

package model

//go:generate stringer -type=EntityType -linecomment

import (
	"encoding/json"
)

// EntityType is an enumeration of PBF entity types.
type EntityType int32

const (
	// NODE denotes that the member is a node.
	NODE EntityType = iota // node

	// WAY denotes that the member is a way.
	WAY // way

	// RELATION denotes that the member is a relation.
	RELATION // relation
)

// OsmID is a typed reference to a Node, Way or Relation.  The set of
// implementations is closed to NodeID, WayID and RelationID.
type OsmID interface {
	isOsmID() // prevents extensions

	// ID returns the referenced primary key.
	ID() ID

	// Type returns the kind of the referenced object.
	Type() EntityType
}

// NodeID references a Node.
type NodeID ID

func (NodeID) isOsmID() {}

func (id NodeID) ID() ID { return ID(id) }

func (NodeID) Type() EntityType { return NODE }

// WayID references a Way.
type WayID ID

func (WayID) isOsmID() {}

func (id WayID) ID() ID { return ID(id) }

func (WayID) Type() EntityType { return WAY }

// RelationID references a Relation.
type RelationID ID

func (RelationID) isOsmID() {}

func (id RelationID) ID() ID { return ID(id) }

func (RelationID) Type() EntityType { return RELATION }

// NewOsmID creates the OsmID variant matching t.  It returns nil for an
// unknown type.
func NewOsmID(t EntityType, id ID) OsmID {
	switch t {
	case NODE:
		return NodeID(id)
	case WAY:
		return WayID(id)
	case RELATION:
		return RelationID(id)
	default:
		return nil
	}
}

// Ref is a member of a Relation: a typed reference plus the role the member
// plays in the relation.  Role may be empty.
type Ref struct {
	Member OsmID
	Role   string
}

// MarshalJSON renders the member as {"type":...,"ref":...,"role":...}.
func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Ref  ID     `json:"ref"`
		Role string `json:"role"`
	}{
		Type: r.Member.Type().String(),
		Ref:  r.Member.ID(),
		Role: r.Role,
	})
}
