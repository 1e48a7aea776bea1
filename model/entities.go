// Copyright 2017-25 the original author or authors.
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

// Package model contains the domain objects decoded from OpenStreetMap PBF
// data.
package model

import (
	"maps"
	"slices"
	"time"

	"github.com/golang/geo/s2"
)

// UID is the primary key for a user.
type UID int32

// Info represents metadata common to Node, Way, and Relation objects.
type Info struct {
	Version   int32     `json:"version"`
	UID       UID       `json:"uid"`
	Timestamp time.Time `json:"timestamp"`
	Changeset int64     `json:"changeset"`
	User      string    `json:"user,omitempty"`
	Visible   bool      `json:"visible"`
}

// ID is the primary key of an object.
type ID int64

// Tags maps keys to values.  Keys are unique.
type Tags map[string]string

// Keys returns the tag keys in ascending order.
func (t Tags) Keys() []string {
	return slices.Sorted(maps.Keys(t))
}

// Object is a decoded Node, Way or Relation.  The set of implementations is
// closed: a type switch over Node, Way and Relation is exhaustive.
type Object interface {
	isObject() // prevents extensions

	GetID() ID

	GetType() EntityType

	GetTags() Tags

	GetInfo() *Info
}

// Node represents a specific point on the earth's surface defined by its
// latitude and longitude. Each node comprises at least an id number and a
// pair of coordinates.
type Node struct {
	ID   ID      `json:"id"`
	Tags Tags    `json:"tags"`
	Info *Info   `json:"info,omitempty"`
	Lat  Degrees `json:"lat"`
	Lon  Degrees `json:"lon"`
}

var _ Object = Node{}

func (n Node) isObject() {}

func (n Node) GetID() ID {
	return n.ID
}

func (n Node) GetType() EntityType {
	return NODE
}

func (n Node) GetTags() Tags {
	return n.Tags
}

func (n Node) GetInfo() *Info {
	return n.Info
}

// LatLng returns the position of the node as an s2.LatLng.
func (n Node) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(float64(n.Lat), float64(n.Lon))
}

// Way is an ordered list of nodes that define a polyline.
type Way struct {
	ID      ID    `json:"id"`
	Tags    Tags  `json:"tags"`
	Info    *Info `json:"info,omitempty"`
	NodeIDs []ID  `json:"nodes"`
}

var _ Object = Way{}

func (w Way) isObject() {}

func (w Way) GetID() ID {
	return w.ID
}

func (w Way) GetType() EntityType {
	return WAY
}

func (w Way) GetTags() Tags {
	return w.Tags
}

func (w Way) GetInfo() *Info {
	return w.Info
}

// Relation is a multipurpose data structure that documents a relationship
// between two or more objects (nodes, ways, and/or other relations).
type Relation struct {
	ID   ID    `json:"id"`
	Tags Tags  `json:"tags"`
	Info *Info `json:"info,omitempty"`
	Refs []Ref `json:"members"`
}

var _ Object = Relation{}

func (r Relation) isObject() {}

func (r Relation) GetID() ID {
	return r.ID
}

func (r Relation) GetType() EntityType {
	return RELATION
}

func (r Relation) GetTags() Tags {
	return r.Tags
}

func (r Relation) GetInfo() *Info {
	return r.Info
}
