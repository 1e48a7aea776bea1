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

package pbftest

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"
	"google.golang.org/protobuf/proto"

	"m4o.io/osmpbf/protobuf"
)

// Compression selects how blob data is packed.
type Compression int

const (
	RAW Compression = iota
	ZLIB
	LZMA
	LZ4
	ZSTD
)

func (c Compression) String() string {
	switch c {
	case RAW:
		return "raw"
	case ZLIB:
		return "zlib"
	case LZMA:
		return "lzma"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

// Compressions lists every supported Compression.
var Compressions = []Compression{RAW, ZLIB, LZMA, LZ4, ZSTD}

// Pack compresses data into a Blob.
func Pack(data []byte, c Compression) (*protobuf.Blob, error) {
	blob := &protobuf.Blob{RawSize: proto.Int32(int32(len(data)))}

	if c == RAW {
		blob.Data = &protobuf.Blob_Raw{Raw: data}

		return blob, nil
	}

	var buf bytes.Buffer

	w, err := newWriter(&buf, c)
	if err != nil {
		return nil, fmt.Errorf("could not create %s writer: %w", c, err)
	}

	if _, err = w.Write(data); err != nil {
		return nil, fmt.Errorf("could not compress message: %w", err)
	}

	if err = w.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	switch c {
	case ZLIB:
		blob.Data = &protobuf.Blob_ZlibData{ZlibData: buf.Bytes()}
	case LZMA:
		blob.Data = &protobuf.Blob_LzmaData{LzmaData: buf.Bytes()}
	case LZ4:
		blob.Data = &protobuf.Blob_Lz4Data{Lz4Data: buf.Bytes()}
	case ZSTD:
		blob.Data = &protobuf.Blob_ZstdData{ZstdData: buf.Bytes()}
	}

	return blob, nil
}

func newWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case ZLIB:
		return zlib.NewWriter(w), nil
	case LZMA:
		return lzma.NewWriter(w)
	case LZ4:
		return lz4.NewWriter(w), nil
	case ZSTD:
		return zstd.NewWriter(w)
	default:
		return nil, fmt.Errorf("unknown compression type: %v", c)
	}
}

// WriteBlob frames a blob of type typ, holding data, and writes it to w.
func WriteBlob(w io.Writer, typ string, data []byte, c Compression) error {
	blob, err := Pack(data, c)
	if err != nil {
		return err
	}

	return WriteRawBlob(w, typ, blob)
}

// WriteRawBlob frames an already packed blob and writes it to w.
func WriteRawBlob(w io.Writer, typ string, blob *protobuf.Blob) error {
	bb := MarshalBlob(blob)

	hb := MarshalBlobHeader(&protobuf.BlobHeader{
		Type:     proto.String(typ),
		Datasize: proto.Int32(int32(len(bb))),
	})

	if err := binary.Write(w, binary.BigEndian, uint32(len(hb))); err != nil {
		return fmt.Errorf("could not write header size: %w", err)
	}

	if _, err := w.Write(hb); err != nil {
		return fmt.Errorf("could not write blob header: %w", err)
	}

	if _, err := w.Write(bb); err != nil {
		return fmt.Errorf("could not write blob data: %w", err)
	}

	return nil
}

// File assembles a complete PBF file: an OSMHeader blob followed by one
// OSMData blob per block.
func File(hdr *protobuf.HeaderBlock, c Compression, blocks ...*protobuf.PrimitiveBlock) ([]byte, error) {
	var buf bytes.Buffer

	if err := WriteBlob(&buf, "OSMHeader", MarshalHeaderBlock(hdr), c); err != nil {
		return nil, fmt.Errorf("could not write header: %w", err)
	}

	for _, blk := range blocks {
		if err := WriteBlob(&buf, "OSMData", MarshalPrimitiveBlock(blk), c); err != nil {
			return nil, fmt.Errorf("could not write block: %w", err)
		}
	}

	return buf.Bytes(), nil
}
