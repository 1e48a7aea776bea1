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

package protobuf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"m4o.io/osmpbf/internal/pbftest"
	"m4o.io/osmpbf/protobuf"
)

func TestUnmarshalPrimitiveBlock(t *testing.T) {
	expected := pbftest.SampleBlock()

	blk := &protobuf.PrimitiveBlock{}
	require.NoError(t, protobuf.Unmarshal(pbftest.MarshalPrimitiveBlock(expected), blk))

	assert.Equal(t, expected, blk)
}

func TestUnmarshalHeaderBlock(t *testing.T) {
	expected := pbftest.SampleHeader()

	hdr := &protobuf.HeaderBlock{}
	require.NoError(t, protobuf.Unmarshal(pbftest.MarshalHeaderBlock(expected), hdr))

	assert.Equal(t, expected, hdr)
	assert.Equal(t, int64(-511_482_000), hdr.GetBbox().GetLeft())
	assert.Equal(t, "osmium/1.14.0", hdr.GetWritingprogram())
	assert.Equal(t, "", hdr.GetSource())
}

func TestUnmarshalUnpackedRepeated(t *testing.T) {
	var b []byte

	for _, ref := range []int64{3, -1, 2} {
		b = protowire.AppendTag(b, 8, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(ref))
	}

	way := &protobuf.Way{}
	require.NoError(t, protobuf.Unmarshal(b, way))

	assert.Equal(t, []int64{3, -1, 2}, way.GetRefs())
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	var b []byte

	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "ignored")
	b = protowire.AppendTag(b, 98, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 12)
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)

	way := &protobuf.Way{}
	require.NoError(t, protobuf.Unmarshal(b, way))

	assert.Equal(t, int64(7), way.GetId())
}

func TestUnmarshalWrongWireType(t *testing.T) {
	var b []byte

	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "seven")

	err := protobuf.Unmarshal(b, &protobuf.Way{})
	assert.ErrorIs(t, err, protobuf.ErrWireType)
}

func TestUnmarshalTruncated(t *testing.T) {
	b := pbftest.MarshalPrimitiveBlock(pbftest.SampleBlock())

	err := protobuf.Unmarshal(b[:len(b)-1], &protobuf.PrimitiveBlock{})
	assert.Error(t, err)
}

func TestUnmarshalCopiesBytes(t *testing.T) {
	b := pbftest.MarshalBlob(&protobuf.Blob{Data: &protobuf.Blob_Raw{Raw: []byte("abc")}})

	blob := &protobuf.Blob{}
	require.NoError(t, protobuf.Unmarshal(b, blob))

	for i := range b {
		b[i] = 0
	}

	assert.Equal(t, []byte("abc"), blob.GetRaw())
	assert.Nil(t, blob.GetZlibData())
}

func TestGetterDefaults(t *testing.T) {
	var blk *protobuf.PrimitiveBlock

	assert.Equal(t, int32(100), blk.GetGranularity())
	assert.Equal(t, int32(1000), blk.GetDateGranularity())
	assert.Equal(t, int64(0), blk.GetLatOffset())
	assert.Nil(t, blk.GetStringtable().GetS())

	var info *protobuf.Info

	assert.Equal(t, int32(-1), info.GetVersion())
	assert.False(t, info.GetVisible())

	var dense *protobuf.DenseNodes

	assert.Empty(t, dense.GetId())
	assert.Empty(t, dense.GetDenseinfo().GetVisible())
}

func TestUnmarshalBlobVariants(t *testing.T) {
	for _, c := range pbftest.Compressions {
		t.Run(c.String(), func(t *testing.T) {
			packed, err := pbftest.Pack([]byte("payload"), c)
			require.NoError(t, err)

			blob := &protobuf.Blob{}
			require.NoError(t, protobuf.Unmarshal(pbftest.MarshalBlob(packed), blob))

			assert.Equal(t, packed, blob)
			assert.Equal(t, int32(7), blob.GetRawSize())
		})
	}
}
