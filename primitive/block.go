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

// Package primitive translates the raw records of a PBF primitive group into
// model objects.
//
// Every producer is a lazy iter.Seq: records are decoded one at a time as the
// caller ranges over the sequence, and breaking out of the range stops all
// work.  Producers never mutate the Block or the group they read, so the same
// inputs can be decoded again, or concurrently, with identical results.
//
// Malformed content is absorbed rather than reported: mismatched column
// lengths end a sequence early and a dangling dense tag key is dropped.  The
// one exception is a string table index outside the table, which panics.
package primitive

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"m4o.io/osmpbf/model"
	"m4o.io/osmpbf/protobuf"
)

// Block is the read-only decoding context shared by every group of a
// PrimitiveBlock: the resolved string table plus the coordinate and date
// scaling parameters.  A Block is safe for concurrent use.
type Block struct {
	strings         []string
	granularity     int32
	latOffset       int64
	lonOffset       int64
	dateGranularity int32
}

// NewBlock resolves the string table of blk.  Entries that are not valid
// UTF-8 have each maximal invalid subsequence replaced by U+FFFD.
func NewBlock(blk *protobuf.PrimitiveBlock) *Block {
	raw := blk.GetStringtable().GetS()
	table := make([]string, len(raw))

	for i, s := range raw {
		if utf8.Valid(s) {
			table[i] = string(s)
		} else {
			table[i] = repairUTF8(s)
		}
	}

	return &Block{
		strings:         table,
		granularity:     blk.GetGranularity(),
		latOffset:       blk.GetLatOffset(),
		lonOffset:       blk.GetLonOffset(),
		dateGranularity: blk.GetDateGranularity(),
	}
}

// repairUTF8 decodes s replacing every maximal subpart of an ill-formed
// sequence with a single U+FFFD, as the WHATWG decoder does.  A truncated
// sequence such as "\xe2\x82" is one subpart; "\xff\xfe" is two.
func repairUTF8(s []byte) string {
	var sb strings.Builder
	sb.Grow(len(s) + utf8.UTFMax)

	for len(s) > 0 {
		r, size := utf8.DecodeRune(s)
		if r == utf8.RuneError && size == 1 {
			size = maximalSubpart(s)
			sb.WriteRune(utf8.RuneError)
		} else {
			sb.Write(s[:size])
		}

		s = s[size:]
	}

	return sb.String()
}

// maximalSubpart returns the length of the longest prefix of s that starts a
// well-formed sequence, or 1 if s[0] cannot start one.
func maximalSubpart(s []byte) int {
	lo, hi := byte(0x80), byte(0xbf)

	var need int

	switch b := s[0]; {
	case b >= 0xc2 && b <= 0xdf:
		need = 1
	case b == 0xe0:
		need, lo = 2, 0xa0
	case b == 0xed:
		need, hi = 2, 0x9f
	case b >= 0xe1 && b <= 0xef:
		need = 2
	case b == 0xf0:
		need, lo = 3, 0x90
	case b == 0xf4:
		need, hi = 3, 0x8f
	case b >= 0xf1 && b <= 0xf3:
		need = 3
	default:
		return 1
	}

	n := 1
	for ; n <= need && n < len(s); n++ {
		if s[n] < lo || s[n] > hi {
			break
		}

		lo, hi = 0x80, 0xbf
	}

	return n
}

// Lookup returns the string table entry at index i.  It panics if i is
// outside the table.
func (b *Block) Lookup(i int) string {
	if i < 0 || i >= len(b.strings) {
		panic(fmt.Sprintf("string table index %d out of range [0:%d]", i, len(b.strings)))
	}

	return b.strings[i]
}

// Lat converts an absolute fixed-point latitude into degrees.
func (b *Block) Lat(c int64) model.Degrees {
	return model.ToDegrees(b.latOffset, b.granularity, c)
}

// Lon converts an absolute fixed-point longitude into degrees.
func (b *Block) Lon(c int64) model.Degrees {
	return model.ToDegrees(b.lonOffset, b.granularity, c)
}

// Tags resolves parallel key and value index arrays.  Only the common prefix
// of the two arrays is used; a repeated key keeps its last value.
func (b *Block) Tags(keys, vals []uint32) model.Tags {
	n := min(len(keys), len(vals))
	tags := make(model.Tags, n)

	for i := range n {
		tags[b.Lookup(int(keys[i]))] = b.Lookup(int(vals[i]))
	}

	return tags
}

// Info resolves the metadata of a simple node, way or relation.  It returns
// nil when info is nil.
func (b *Block) Info(info *protobuf.Info) *model.Info {
	if info == nil {
		return nil
	}

	i := &model.Info{
		Version:   info.GetVersion(),
		Changeset: info.GetChangeset(),
		UID:       model.UID(info.GetUid()),
		Visible:   true,
	}

	if info.Timestamp != nil {
		i.Timestamp = b.timestamp(info.GetTimestamp())
	}

	if info.UserSid != nil {
		i.User = b.Lookup(int(info.GetUserSid()))
	}

	if info.Visible != nil {
		i.Visible = info.GetVisible()
	}

	return i
}

// timestamp converts a timestamp in units of the date granularity to UTC.
func (b *Block) timestamp(ts int64) time.Time {
	return time.UnixMilli(ts * int64(b.dateGranularity)).UTC()
}
