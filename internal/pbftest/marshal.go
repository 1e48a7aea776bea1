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

// Package pbftest builds OpenStreetMap PBF fixtures in memory for tests.
package pbftest

import (
	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/osmpbf/protobuf"
)

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)

	return protowire.AppendVarint(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendBytes(b, v)
}

func appendPacked[T any](b []byte, num protowire.Number, values []T, conv func(T) uint64) []byte {
	if len(values) == 0 {
		return b
	}

	var packed []byte
	for _, v := range values {
		packed = protowire.AppendVarint(packed, conv(v))
	}

	return appendBytes(b, num, packed)
}

func appendOptional[T any](b []byte, num protowire.Number, v *T, conv func(T) uint64) []byte {
	if v == nil {
		return b
	}

	return appendVarint(b, num, conv(*v))
}

func appendString(b []byte, num protowire.Number, v *string) []byte {
	if v == nil {
		return b
	}

	return appendBytes(b, num, []byte(*v))
}

func int32s(v int32) uint64 { return uint64(int64(v)) }

func uint32s(v uint32) uint64 { return uint64(v) }

func int64s(v int64) uint64 { return uint64(v) }

func sint32s(v int32) uint64 { return protowire.EncodeZigZag(int64(v)) & 0xffffffff }

func sint64s(v int64) uint64 { return protowire.EncodeZigZag(v) }

func bools(v bool) uint64 { return protowire.EncodeBool(v) }

func memberTypes(v protobuf.Relation_MemberType) uint64 { return int32s(int32(v)) }

// MarshalHeaderBlock encodes a HeaderBlock.
func MarshalHeaderBlock(m *protobuf.HeaderBlock) []byte {
	var b []byte

	if m.Bbox != nil {
		b = appendBytes(b, 1, marshalHeaderBBox(m.Bbox))
	}

	for _, f := range m.RequiredFeatures {
		b = appendBytes(b, 4, []byte(f))
	}

	for _, f := range m.OptionalFeatures {
		b = appendBytes(b, 5, []byte(f))
	}

	b = appendString(b, 16, m.Writingprogram)
	b = appendString(b, 17, m.Source)
	b = appendOptional(b, 32, m.OsmosisReplicationTimestamp, int64s)
	b = appendOptional(b, 33, m.OsmosisReplicationSequenceNumber, int64s)
	b = appendString(b, 34, m.OsmosisReplicationBaseUrl)

	return b
}

func marshalHeaderBBox(m *protobuf.HeaderBBox) []byte {
	var b []byte

	b = appendOptional(b, 1, m.Left, sint64s)
	b = appendOptional(b, 2, m.Right, sint64s)
	b = appendOptional(b, 3, m.Top, sint64s)
	b = appendOptional(b, 4, m.Bottom, sint64s)

	return b
}

// MarshalPrimitiveBlock encodes a PrimitiveBlock.
func MarshalPrimitiveBlock(m *protobuf.PrimitiveBlock) []byte {
	var b []byte

	var st []byte
	for _, s := range m.GetStringtable().GetS() {
		st = appendBytes(st, 1, s)
	}

	b = appendBytes(b, 1, st)

	for _, pg := range m.Primitivegroup {
		b = appendBytes(b, 2, marshalPrimitiveGroup(pg))
	}

	b = appendOptional(b, 17, m.Granularity, int32s)
	b = appendOptional(b, 18, m.DateGranularity, int32s)
	b = appendOptional(b, 19, m.LatOffset, int64s)
	b = appendOptional(b, 20, m.LonOffset, int64s)

	return b
}

func marshalPrimitiveGroup(m *protobuf.PrimitiveGroup) []byte {
	var b []byte

	for _, n := range m.Nodes {
		b = appendBytes(b, 1, marshalNode(n))
	}

	if m.Dense != nil {
		b = appendBytes(b, 2, marshalDenseNodes(m.Dense))
	}

	for _, w := range m.Ways {
		b = appendBytes(b, 3, marshalWay(w))
	}

	for _, r := range m.Relations {
		b = appendBytes(b, 4, marshalRelation(r))
	}

	return b
}

func marshalInfo(m *protobuf.Info) []byte {
	var b []byte

	b = appendOptional(b, 1, m.Version, int32s)
	b = appendOptional(b, 2, m.Timestamp, int64s)
	b = appendOptional(b, 3, m.Changeset, int64s)
	b = appendOptional(b, 4, m.Uid, int32s)
	b = appendOptional(b, 5, m.UserSid, uint32s)
	b = appendOptional(b, 6, m.Visible, bools)

	return b
}

func marshalDenseInfo(m *protobuf.DenseInfo) []byte {
	var b []byte

	b = appendPacked(b, 1, m.Version, int32s)
	b = appendPacked(b, 2, m.Timestamp, sint64s)
	b = appendPacked(b, 3, m.Changeset, sint64s)
	b = appendPacked(b, 4, m.Uid, sint32s)
	b = appendPacked(b, 5, m.UserSid, sint32s)
	b = appendPacked(b, 6, m.Visible, bools)

	return b
}

func marshalNode(m *protobuf.Node) []byte {
	var b []byte

	b = appendOptional(b, 1, m.Id, sint64s)
	b = appendPacked(b, 2, m.Keys, uint32s)
	b = appendPacked(b, 3, m.Vals, uint32s)

	if m.Info != nil {
		b = appendBytes(b, 4, marshalInfo(m.Info))
	}

	b = appendOptional(b, 8, m.Lat, sint64s)
	b = appendOptional(b, 9, m.Lon, sint64s)

	return b
}

func marshalDenseNodes(m *protobuf.DenseNodes) []byte {
	var b []byte

	b = appendPacked(b, 1, m.Id, sint64s)

	if m.Denseinfo != nil {
		b = appendBytes(b, 5, marshalDenseInfo(m.Denseinfo))
	}

	b = appendPacked(b, 8, m.Lat, sint64s)
	b = appendPacked(b, 9, m.Lon, sint64s)
	b = appendPacked(b, 10, m.KeysVals, int32s)

	return b
}

func marshalWay(m *protobuf.Way) []byte {
	var b []byte

	b = appendOptional(b, 1, m.Id, int64s)
	b = appendPacked(b, 2, m.Keys, uint32s)
	b = appendPacked(b, 3, m.Vals, uint32s)

	if m.Info != nil {
		b = appendBytes(b, 4, marshalInfo(m.Info))
	}

	b = appendPacked(b, 8, m.Refs, sint64s)

	return b
}

func marshalRelation(m *protobuf.Relation) []byte {
	var b []byte

	b = appendOptional(b, 1, m.Id, int64s)
	b = appendPacked(b, 2, m.Keys, uint32s)
	b = appendPacked(b, 3, m.Vals, uint32s)

	if m.Info != nil {
		b = appendBytes(b, 4, marshalInfo(m.Info))
	}

	b = appendPacked(b, 8, m.RolesSid, int32s)
	b = appendPacked(b, 9, m.Memids, sint64s)
	b = appendPacked(b, 10, m.Types, memberTypes)

	return b
}

// MarshalBlobHeader encodes a BlobHeader.
func MarshalBlobHeader(m *protobuf.BlobHeader) []byte {
	var b []byte

	b = appendString(b, 1, m.Type)

	if m.Indexdata != nil {
		b = appendBytes(b, 2, m.Indexdata)
	}

	b = appendOptional(b, 3, m.Datasize, int32s)

	return b
}

// MarshalBlob encodes a Blob.
func MarshalBlob(m *protobuf.Blob) []byte {
	var b []byte

	switch d := m.Data.(type) {
	case *protobuf.Blob_Raw:
		b = appendBytes(b, 1, d.Raw)
	case *protobuf.Blob_ZlibData:
		b = appendBytes(b, 3, d.ZlibData)
	case *protobuf.Blob_LzmaData:
		b = appendBytes(b, 4, d.LzmaData)
	case *protobuf.Blob_OBSOLETEBzip2Data:
		b = appendBytes(b, 5, d.OBSOLETEBzip2Data)
	case *protobuf.Blob_Lz4Data:
		b = appendBytes(b, 6, d.Lz4Data)
	case *protobuf.Blob_ZstdData:
		b = appendBytes(b, 7, d.ZstdData)
	}

	b = appendOptional(b, 2, m.RawSize, int32s)

	return b
}
