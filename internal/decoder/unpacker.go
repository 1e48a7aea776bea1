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

package decoder

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"

	"m4o.io/osmpbf/internal/core"
	"m4o.io/osmpbf/protobuf"
)

var ErrUnknownCompressionType = errors.New("unknown blob compression type")

// unpack uncompresses the blob.
//
// This method is not "buried" within the readBlob function so that decompression
// of blobs can be performed concurrently.
func unpack(buf *core.PooledBuffer, blob *protobuf.Blob) ([]byte, error) {
	var factory func(blob *protobuf.Blob) (io.ReadCloser, error)

	switch blob.GetData().(type) {
	case *protobuf.Blob_Raw:
		return blob.GetRaw(), nil
	case *protobuf.Blob_ZlibData:
		factory = func(b *protobuf.Blob) (io.ReadCloser, error) {
			return zlib.NewReader(bytes.NewReader(b.GetZlibData()))
		}
	case *protobuf.Blob_LzmaData:
		factory = func(b *protobuf.Blob) (io.ReadCloser, error) {
			r, err := lzma.NewReader(bytes.NewReader(b.GetLzmaData()))
			if err != nil {
				return nil, err
			}

			return io.NopCloser(r), nil
		}
	case *protobuf.Blob_Lz4Data:
		factory = func(b *protobuf.Blob) (io.ReadCloser, error) {
			return io.NopCloser(lz4.NewReader(bytes.NewReader(b.GetLz4Data()))), nil
		}
	case *protobuf.Blob_ZstdData:
		factory = func(b *protobuf.Blob) (io.ReadCloser, error) {
			d, err := zstd.NewReader(bytes.NewReader(b.GetZstdData()), zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, err
			}

			return d.IOReadCloser(), nil
		}
	case *protobuf.Blob_OBSOLETEBzip2Data:
		return nil, fmt.Errorf("%w: bzip2 is obsolete", ErrUnknownCompressionType)
	default:
		return nil, ErrUnknownCompressionType
	}

	buf.Reset()

	rawBufferSize := int(blob.GetRawSize() + bytes.MinRead)
	if rawBufferSize > buf.Cap() {
		buf.Grow(rawBufferSize)
	}

	rdr, err := factory(blob)
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w", err)
	}
	defer rdr.Close()

	if n, err := buf.ReadFrom(rdr); err != nil {
		return nil, fmt.Errorf("unpacker read error: %w", err)
	} else if blob.RawSize != nil && n != int64(blob.GetRawSize()) {
		return nil, fmt.Errorf("raw blob data size %d but expected %d", n, blob.GetRawSize())
	}

	return buf.Bytes(), nil
}
