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

package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/osmpbf/model"
)

func TestTagsKeys(t *testing.T) {
	tags := model.Tags{"name": "Tower Bridge", "bridge": "yes", "highway": "primary"}

	assert.Equal(t, []string{"bridge", "highway", "name"}, tags.Keys())
	assert.Empty(t, model.Tags{}.Keys())
}

func TestNewOsmID(t *testing.T) {
	test_cases := []struct {
		name     string
		typ      model.EntityType
		expected model.OsmID
	}{
		{"node", model.NODE, model.NodeID(7)},
		{"way", model.WAY, model.WayID(7)},
		{"relation", model.RELATION, model.RelationID(7)},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			id := model.NewOsmID(tc.typ, 7)
			assert.Equal(t, tc.expected, id)
			assert.Equal(t, model.ID(7), id.ID())
			assert.Equal(t, tc.typ, id.Type())
		})
	}

	assert.Nil(t, model.NewOsmID(model.EntityType(9), 7))
}

func TestEntityTypeString(t *testing.T) {
	assert.Equal(t, "node", model.NODE.String())
	assert.Equal(t, "way", model.WAY.String())
	assert.Equal(t, "relation", model.RELATION.String())
	assert.Equal(t, "EntityType(9)", model.EntityType(9).String())
}

func TestObjectTypes(t *testing.T) {
	objs := []model.Object{
		model.Node{ID: 1},
		model.Way{ID: 2},
		model.Relation{ID: 3},
	}

	var kinds []model.EntityType

	for _, o := range objs {
		switch v := o.(type) {
		case model.Node:
			assert.Equal(t, model.ID(1), v.ID)
		case model.Way:
			assert.Equal(t, model.ID(2), v.ID)
		case model.Relation:
			assert.Equal(t, model.ID(3), v.ID)
		}

		kinds = append(kinds, o.GetType())
	}

	assert.Equal(t, []model.EntityType{model.NODE, model.WAY, model.RELATION}, kinds)
}

func TestNodeLatLng(t *testing.T) {
	n := model.Node{Lat: 51.5, Lon: -0.125}
	ll := n.LatLng()

	assert.InDelta(t, 51.5, ll.Lat.Degrees(), 1e-9)
	assert.InDelta(t, -0.125, ll.Lng.Degrees(), 1e-9)
}

func TestRelationJSON(t *testing.T) {
	r := model.Relation{
		ID:   9,
		Tags: model.Tags{"type": "route"},
		Refs: []model.Ref{
			{Member: model.NodeID(10), Role: "stop"},
			{Member: model.WayID(6), Role: ""},
		},
	}

	b, err := json.Marshal(r)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":9,"tags":{"type":"route"},"members":[{"type":"node","ref":10,"role":"stop"},{"type":"way","ref":6,"role":""}]}`, string(b))
}
