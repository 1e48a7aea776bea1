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

// Package osmconv converts decoded objects into their
// github.com/paulmach/osm equivalents, for use with that ecosystem and for
// OSM XML output.
package osmconv

import (
	"github.com/paulmach/osm"

	"m4o.io/osmpbf/model"
)

// Version is the OSM API version written to converted documents.
const Version = "0.6"

// Object converts a decoded Node, Way or Relation.
func Object(o model.Object) osm.Object {
	switch o := o.(type) {
	case model.Node:
		return Node(o)
	case model.Way:
		return Way(o)
	case model.Relation:
		return Relation(o)
	default:
		return nil
	}
}

// Node converts a node; a node without Info is visible.
func Node(n model.Node) *osm.Node {
	node := &osm.Node{
		ID:      osm.NodeID(n.ID),
		Lat:     float64(n.Lat),
		Lon:     float64(n.Lon),
		Tags:    Tags(n.Tags),
		Visible: true,
	}

	if i := n.Info; i != nil {
		node.User = i.User
		node.UserID = osm.UserID(i.UID)
		node.Visible = i.Visible
		node.Version = int(i.Version)
		node.ChangesetID = osm.ChangesetID(i.Changeset)
		node.Timestamp = i.Timestamp
	}

	return node
}

// Way converts a way and its node refs.
func Way(w model.Way) *osm.Way {
	way := &osm.Way{
		ID:      osm.WayID(w.ID),
		Tags:    Tags(w.Tags),
		Nodes:   make(osm.WayNodes, len(w.NodeIDs)),
		Visible: true,
	}

	for i, id := range w.NodeIDs {
		way.Nodes[i] = osm.WayNode{ID: osm.NodeID(id)}
	}

	if i := w.Info; i != nil {
		way.User = i.User
		way.UserID = osm.UserID(i.UID)
		way.Visible = i.Visible
		way.Version = int(i.Version)
		way.ChangesetID = osm.ChangesetID(i.Changeset)
		way.Timestamp = i.Timestamp
	}

	return way
}

// Relation converts a relation, skipping members of an unknown type.
func Relation(r model.Relation) *osm.Relation {
	rel := &osm.Relation{
		ID:      osm.RelationID(r.ID),
		Tags:    Tags(r.Tags),
		Members: make(osm.Members, 0, len(r.Refs)),
		Visible: true,
	}

	for _, ref := range r.Refs {
		t, ok := memberType(ref.Member.Type())
		if !ok {
			continue
		}

		rel.Members = append(rel.Members, osm.Member{
			Type: t,
			Ref:  int64(ref.Member.ID()),
			Role: ref.Role,
		})
	}

	if i := r.Info; i != nil {
		rel.User = i.User
		rel.UserID = osm.UserID(i.UID)
		rel.Visible = i.Visible
		rel.Version = int(i.Version)
		rel.ChangesetID = osm.ChangesetID(i.Changeset)
		rel.Timestamp = i.Timestamp
	}

	return rel
}

func memberType(t model.EntityType) (osm.Type, bool) {
	switch t {
	case model.NODE:
		return osm.TypeNode, true
	case model.WAY:
		return osm.TypeWay, true
	case model.RELATION:
		return osm.TypeRelation, true
	default:
		return "", false
	}
}

// Tags converts a tag map into osm.Tags ordered by key.
func Tags(t model.Tags) osm.Tags {
	tags := make(osm.Tags, 0, len(t))

	for _, k := range t.Keys() {
		tags = append(tags, osm.Tag{Key: k, Value: t[k]})
	}

	return tags
}

// Bounds converts a bounding box.  It returns nil for a nil box.
func Bounds(b *model.BoundingBox) *osm.Bounds {
	if b == nil {
		return nil
	}

	return &osm.Bounds{
		MinLat: float64(b.Bottom),
		MaxLat: float64(b.Top),
		MinLon: float64(b.Left),
		MaxLon: float64(b.Right),
	}
}

// Document starts an OSM document described by the PBF header.
func Document(hdr model.Header) *osm.OSM {
	return &osm.OSM{
		Version:   Version,
		Generator: hdr.WritingProgram,
		Bounds:    Bounds(hdr.BoundingBox),
	}
}

// Append adds the converted object to doc.
func Append(doc *osm.OSM, o model.Object) {
	switch o := o.(type) {
	case model.Node:
		doc.Nodes = append(doc.Nodes, Node(o))
	case model.Way:
		doc.Ways = append(doc.Ways, Way(o))
	case model.Relation:
		doc.Relations = append(doc.Relations, Relation(o))
	}
}
