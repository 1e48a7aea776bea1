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

package protobuf

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// HeaderBBox is the bounding box of the data set, in nanodegrees.
type HeaderBBox struct {
	Left   *int64
	Right  *int64
	Top    *int64
	Bottom *int64
}

func (m *HeaderBBox) GetLeft() int64 {
	if m != nil && m.Left != nil {
		return *m.Left
	}

	return 0
}

func (m *HeaderBBox) GetRight() int64 {
	if m != nil && m.Right != nil {
		return *m.Right
	}

	return 0
}

func (m *HeaderBBox) GetTop() int64 {
	if m != nil && m.Top != nil {
		return *m.Top
	}

	return 0
}

func (m *HeaderBBox) GetBottom() int64 {
	if m != nil && m.Bottom != nil {
		return *m.Bottom
	}

	return 0
}

func (m *HeaderBBox) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		var dst **int64

		switch num {
		case 1:
			dst = &m.Left
		case 2:
			dst = &m.Right
		case 3:
			dst = &m.Top
		case 4:
			dst = &m.Bottom
		default:
			return skip, nil
		}

		v, n, err := consumeVarint(typ, b)
		*dst = ptr(asSint64(v))

		return n, err
	})
}

// HeaderBlock is the content of an OSMHeader blob.
type HeaderBlock struct {
	Bbox                             *HeaderBBox
	RequiredFeatures                 []string
	OptionalFeatures                 []string
	Writingprogram                   *string
	Source                           *string
	OsmosisReplicationTimestamp      *int64
	OsmosisReplicationSequenceNumber *int64
	OsmosisReplicationBaseUrl        *string
}

func (m *HeaderBlock) GetBbox() *HeaderBBox {
	if m != nil {
		return m.Bbox
	}

	return nil
}

func (m *HeaderBlock) GetRequiredFeatures() []string {
	if m != nil {
		return m.RequiredFeatures
	}

	return nil
}

func (m *HeaderBlock) GetOptionalFeatures() []string {
	if m != nil {
		return m.OptionalFeatures
	}

	return nil
}

func (m *HeaderBlock) GetWritingprogram() string {
	if m != nil && m.Writingprogram != nil {
		return *m.Writingprogram
	}

	return ""
}

func (m *HeaderBlock) GetSource() string {
	if m != nil && m.Source != nil {
		return *m.Source
	}

	return ""
}

func (m *HeaderBlock) GetOsmosisReplicationTimestamp() int64 {
	if m != nil && m.OsmosisReplicationTimestamp != nil {
		return *m.OsmosisReplicationTimestamp
	}

	return 0
}

func (m *HeaderBlock) GetOsmosisReplicationSequenceNumber() int64 {
	if m != nil && m.OsmosisReplicationSequenceNumber != nil {
		return *m.OsmosisReplicationSequenceNumber
	}

	return 0
}

func (m *HeaderBlock) GetOsmosisReplicationBaseUrl() string {
	if m != nil && m.OsmosisReplicationBaseUrl != nil {
		return *m.OsmosisReplicationBaseUrl
	}

	return ""
}

func (m *HeaderBlock) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			bbox, n, err := consumeMessage[HeaderBBox](typ, b)
			m.Bbox = bbox

			return n, err
		case 4, 5, 16, 17, 34:
			v, n, err := consumeView(typ, b)
			s := string(v)

			switch num {
			case 4:
				m.RequiredFeatures = append(m.RequiredFeatures, s)
			case 5:
				m.OptionalFeatures = append(m.OptionalFeatures, s)
			case 16:
				m.Writingprogram = &s
			case 17:
				m.Source = &s
			case 34:
				m.OsmosisReplicationBaseUrl = &s
			}

			return n, err
		case 32:
			v, n, err := consumeVarint(typ, b)
			m.OsmosisReplicationTimestamp = ptr(asInt64(v))

			return n, err
		case 33:
			v, n, err := consumeVarint(typ, b)
			m.OsmosisReplicationSequenceNumber = ptr(asInt64(v))

			return n, err
		default:
			return skip, nil
		}
	})
}

// StringTable holds the strings referenced by index from a PrimitiveBlock.
// Entry 0 is conventionally empty since index 0 terminates dense node tags.
type StringTable struct {
	S [][]byte
}

func (m *StringTable) GetS() [][]byte {
	if m != nil {
		return m.S
	}

	return nil
}

func (m *StringTable) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 {
			return skip, nil
		}

		v, n, err := consumeBytes(typ, b)
		m.S = append(m.S, v)

		return n, err
	})
}

// PrimitiveBlock is the content of an OSMData blob.
type PrimitiveBlock struct {
	Stringtable     *StringTable
	Primitivegroup  []*PrimitiveGroup
	Granularity     *int32
	LatOffset       *int64
	LonOffset       *int64
	DateGranularity *int32
}

// Default values of PrimitiveBlock fields.
const (
	Default_PrimitiveBlock_Granularity     = int32(100)
	Default_PrimitiveBlock_DateGranularity = int32(1000)
)

func (m *PrimitiveBlock) GetStringtable() *StringTable {
	if m != nil {
		return m.Stringtable
	}

	return nil
}

func (m *PrimitiveBlock) GetPrimitivegroup() []*PrimitiveGroup {
	if m != nil {
		return m.Primitivegroup
	}

	return nil
}

func (m *PrimitiveBlock) GetGranularity() int32 {
	if m != nil && m.Granularity != nil {
		return *m.Granularity
	}

	return Default_PrimitiveBlock_Granularity
}

func (m *PrimitiveBlock) GetLatOffset() int64 {
	if m != nil && m.LatOffset != nil {
		return *m.LatOffset
	}

	return 0
}

func (m *PrimitiveBlock) GetLonOffset() int64 {
	if m != nil && m.LonOffset != nil {
		return *m.LonOffset
	}

	return 0
}

func (m *PrimitiveBlock) GetDateGranularity() int32 {
	if m != nil && m.DateGranularity != nil {
		return *m.DateGranularity
	}

	return Default_PrimitiveBlock_DateGranularity
}

func (m *PrimitiveBlock) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			st, n, err := consumeMessage[StringTable](typ, b)
			m.Stringtable = st

			return n, err
		case 2:
			pg, n, err := consumeMessage[PrimitiveGroup](typ, b)
			if err == nil {
				m.Primitivegroup = append(m.Primitivegroup, pg)
			}

			return n, err
		case 17:
			v, n, err := consumeVarint(typ, b)
			m.Granularity = ptr(asInt32(v))

			return n, err
		case 18:
			v, n, err := consumeVarint(typ, b)
			m.DateGranularity = ptr(asInt32(v))

			return n, err
		case 19:
			v, n, err := consumeVarint(typ, b)
			m.LatOffset = ptr(asInt64(v))

			return n, err
		case 20:
			v, n, err := consumeVarint(typ, b)
			m.LonOffset = ptr(asInt64(v))

			return n, err
		default:
			return skip, nil
		}
	})
}

// PrimitiveGroup is a batch of raw records sharing one PrimitiveBlock.  Simple
// and dense nodes may both be present.
type PrimitiveGroup struct {
	Nodes     []*Node
	Dense     *DenseNodes
	Ways      []*Way
	Relations []*Relation
}

func (m *PrimitiveGroup) GetNodes() []*Node {
	if m != nil {
		return m.Nodes
	}

	return nil
}

func (m *PrimitiveGroup) GetDense() *DenseNodes {
	if m != nil {
		return m.Dense
	}

	return nil
}

func (m *PrimitiveGroup) GetWays() []*Way {
	if m != nil {
		return m.Ways
	}

	return nil
}

func (m *PrimitiveGroup) GetRelations() []*Relation {
	if m != nil {
		return m.Relations
	}

	return nil
}

func (m *PrimitiveGroup) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			node, n, err := consumeMessage[Node](typ, b)
			if err == nil {
				m.Nodes = append(m.Nodes, node)
			}

			return n, err
		case 2:
			dense, n, err := consumeMessage[DenseNodes](typ, b)
			m.Dense = dense

			return n, err
		case 3:
			way, n, err := consumeMessage[Way](typ, b)
			if err == nil {
				m.Ways = append(m.Ways, way)
			}

			return n, err
		case 4:
			rel, n, err := consumeMessage[Relation](typ, b)
			if err == nil {
				m.Relations = append(m.Relations, rel)
			}

			return n, err
		default:
			return skip, nil
		}
	})
}

// Info is the optional metadata of a Node, Way or Relation.
type Info struct {
	Version   *int32
	Timestamp *int64
	Changeset *int64
	Uid       *int32
	UserSid   *uint32
	Visible   *bool
}

// Default_Info_Version is the version reported when none is present.
const Default_Info_Version = int32(-1)

func (m *Info) GetVersion() int32 {
	if m != nil && m.Version != nil {
		return *m.Version
	}

	return Default_Info_Version
}

func (m *Info) GetTimestamp() int64 {
	if m != nil && m.Timestamp != nil {
		return *m.Timestamp
	}

	return 0
}

func (m *Info) GetChangeset() int64 {
	if m != nil && m.Changeset != nil {
		return *m.Changeset
	}

	return 0
}

func (m *Info) GetUid() int32 {
	if m != nil && m.Uid != nil {
		return *m.Uid
	}

	return 0
}

func (m *Info) GetUserSid() uint32 {
	if m != nil && m.UserSid != nil {
		return *m.UserSid
	}

	return 0
}

func (m *Info) GetVisible() bool {
	if m != nil && m.Visible != nil {
		return *m.Visible
	}

	return false
}

func (m *Info) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num < 1 || num > 6 {
			return skip, nil
		}

		v, n, err := consumeVarint(typ, b)
		if err != nil {
			return n, err
		}

		switch num {
		case 1:
			m.Version = ptr(asInt32(v))
		case 2:
			m.Timestamp = ptr(asInt64(v))
		case 3:
			m.Changeset = ptr(asInt64(v))
		case 4:
			m.Uid = ptr(asInt32(v))
		case 5:
			m.UserSid = ptr(asUint32(v))
		case 6:
			m.Visible = ptr(asBool(v))
		}

		return n, nil
	})
}

// DenseInfo is the column-oriented metadata of DenseNodes.  All columns but
// Version and Visible are delta-coded.
type DenseInfo struct {
	Version   []int32
	Timestamp []int64
	Changeset []int64
	Uid       []int32
	UserSid   []int32
	Visible   []bool
}

func (m *DenseInfo) GetVersion() []int32 {
	if m != nil {
		return m.Version
	}

	return nil
}

func (m *DenseInfo) GetTimestamp() []int64 {
	if m != nil {
		return m.Timestamp
	}

	return nil
}

func (m *DenseInfo) GetChangeset() []int64 {
	if m != nil {
		return m.Changeset
	}

	return nil
}

func (m *DenseInfo) GetUid() []int32 {
	if m != nil {
		return m.Uid
	}

	return nil
}

func (m *DenseInfo) GetUserSid() []int32 {
	if m != nil {
		return m.UserSid
	}

	return nil
}

func (m *DenseInfo) GetVisible() []bool {
	if m != nil {
		return m.Visible
	}

	return nil
}

func (m *DenseInfo) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1:
			m.Version, n, err = appendRepeated(m.Version, typ, b, asInt32)
		case 2:
			m.Timestamp, n, err = appendRepeated(m.Timestamp, typ, b, asSint64)
		case 3:
			m.Changeset, n, err = appendRepeated(m.Changeset, typ, b, asSint64)
		case 4:
			m.Uid, n, err = appendRepeated(m.Uid, typ, b, asSint32)
		case 5:
			m.UserSid, n, err = appendRepeated(m.UserSid, typ, b, asSint32)
		case 6:
			m.Visible, n, err = appendRepeated(m.Visible, typ, b, asBool)
		default:
			return skip, nil
		}

		return n, err
	})
}

// Node is a simple (non-dense) node record.  Lat and Lon are absolute
// fixed-point coordinates.
type Node struct {
	Id   *int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  *int64
	Lon  *int64
}

func (m *Node) GetId() int64 {
	if m != nil && m.Id != nil {
		return *m.Id
	}

	return 0
}

func (m *Node) GetKeys() []uint32 {
	if m != nil {
		return m.Keys
	}

	return nil
}

func (m *Node) GetVals() []uint32 {
	if m != nil {
		return m.Vals
	}

	return nil
}

func (m *Node) GetInfo() *Info {
	if m != nil {
		return m.Info
	}

	return nil
}

func (m *Node) GetLat() int64 {
	if m != nil && m.Lat != nil {
		return *m.Lat
	}

	return 0
}

func (m *Node) GetLon() int64 {
	if m != nil && m.Lon != nil {
		return *m.Lon
	}

	return 0
}

func (m *Node) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1:
			var v uint64
			v, n, err = consumeVarint(typ, b)
			m.Id = ptr(asSint64(v))
		case 2:
			m.Keys, n, err = appendRepeated(m.Keys, typ, b, asUint32)
		case 3:
			m.Vals, n, err = appendRepeated(m.Vals, typ, b, asUint32)
		case 4:
			m.Info, n, err = consumeMessage[Info](typ, b)
		case 8:
			var v uint64
			v, n, err = consumeVarint(typ, b)
			m.Lat = ptr(asSint64(v))
		case 9:
			var v uint64
			v, n, err = consumeVarint(typ, b)
			m.Lon = ptr(asSint64(v))
		default:
			return skip, nil
		}

		return n, err
	})
}

// DenseNodes packs many nodes into parallel delta-coded columns.  KeysVals
// holds (key, value) string indexes per node, each node's run terminated by 0.
type DenseNodes struct {
	Id        []int64
	Denseinfo *DenseInfo
	Lat       []int64
	Lon       []int64
	KeysVals  []int32
}

func (m *DenseNodes) GetId() []int64 {
	if m != nil {
		return m.Id
	}

	return nil
}

func (m *DenseNodes) GetDenseinfo() *DenseInfo {
	if m != nil {
		return m.Denseinfo
	}

	return nil
}

func (m *DenseNodes) GetLat() []int64 {
	if m != nil {
		return m.Lat
	}

	return nil
}

func (m *DenseNodes) GetLon() []int64 {
	if m != nil {
		return m.Lon
	}

	return nil
}

func (m *DenseNodes) GetKeysVals() []int32 {
	if m != nil {
		return m.KeysVals
	}

	return nil
}

func (m *DenseNodes) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1:
			m.Id, n, err = appendRepeated(m.Id, typ, b, asSint64)
		case 5:
			m.Denseinfo, n, err = consumeMessage[DenseInfo](typ, b)
		case 8:
			m.Lat, n, err = appendRepeated(m.Lat, typ, b, asSint64)
		case 9:
			m.Lon, n, err = appendRepeated(m.Lon, typ, b, asSint64)
		case 10:
			m.KeysVals, n, err = appendRepeated(m.KeysVals, typ, b, asInt32)
		default:
			return skip, nil
		}

		return n, err
	})
}

// Way is a way record.  Refs are delta-coded node ids.
type Way struct {
	Id   *int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64
}

func (m *Way) GetId() int64 {
	if m != nil && m.Id != nil {
		return *m.Id
	}

	return 0
}

func (m *Way) GetKeys() []uint32 {
	if m != nil {
		return m.Keys
	}

	return nil
}

func (m *Way) GetVals() []uint32 {
	if m != nil {
		return m.Vals
	}

	return nil
}

func (m *Way) GetInfo() *Info {
	if m != nil {
		return m.Info
	}

	return nil
}

func (m *Way) GetRefs() []int64 {
	if m != nil {
		return m.Refs
	}

	return nil
}

func (m *Way) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1:
			var v uint64
			v, n, err = consumeVarint(typ, b)
			m.Id = ptr(asInt64(v))
		case 2:
			m.Keys, n, err = appendRepeated(m.Keys, typ, b, asUint32)
		case 3:
			m.Vals, n, err = appendRepeated(m.Vals, typ, b, asUint32)
		case 4:
			m.Info, n, err = consumeMessage[Info](typ, b)
		case 8:
			m.Refs, n, err = appendRepeated(m.Refs, typ, b, asSint64)
		default:
			return skip, nil
		}

		return n, err
	})
}

// Relation_MemberType enumerates the kinds of relation members.
type Relation_MemberType int32

const (
	Relation_NODE     Relation_MemberType = 0
	Relation_WAY      Relation_MemberType = 1
	Relation_RELATION Relation_MemberType = 2
)

// Relation is a relation record.  Memids are delta-coded; Memids, Types and
// RolesSid are parallel.
type Relation struct {
	Id       *int64
	Keys     []uint32
	Vals     []uint32
	Info     *Info
	RolesSid []int32
	Memids   []int64
	Types    []Relation_MemberType
}

func (m *Relation) GetId() int64 {
	if m != nil && m.Id != nil {
		return *m.Id
	}

	return 0
}

func (m *Relation) GetKeys() []uint32 {
	if m != nil {
		return m.Keys
	}

	return nil
}

func (m *Relation) GetVals() []uint32 {
	if m != nil {
		return m.Vals
	}

	return nil
}

func (m *Relation) GetInfo() *Info {
	if m != nil {
		return m.Info
	}

	return nil
}

func (m *Relation) GetRolesSid() []int32 {
	if m != nil {
		return m.RolesSid
	}

	return nil
}

func (m *Relation) GetMemids() []int64 {
	if m != nil {
		return m.Memids
	}

	return nil
}

func (m *Relation) GetTypes() []Relation_MemberType {
	if m != nil {
		return m.Types
	}

	return nil
}

func (m *Relation) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1:
			var v uint64
			v, n, err = consumeVarint(typ, b)
			m.Id = ptr(asInt64(v))
		case 2:
			m.Keys, n, err = appendRepeated(m.Keys, typ, b, asUint32)
		case 3:
			m.Vals, n, err = appendRepeated(m.Vals, typ, b, asUint32)
		case 4:
			m.Info, n, err = consumeMessage[Info](typ, b)
		case 8:
			m.RolesSid, n, err = appendRepeated(m.RolesSid, typ, b, asInt32)
		case 9:
			m.Memids, n, err = appendRepeated(m.Memids, typ, b, asSint64)
		case 10:
			m.Types, n, err = appendRepeated(m.Types, typ, b, func(v uint64) Relation_MemberType {
				return Relation_MemberType(asInt32(v))
			})
		default:
			return skip, nil
		}

		return n, err
	})
}
