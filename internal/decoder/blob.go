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

// Package decoder reads the blobs of a PBF file and decodes them into model
// objects.
package decoder

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"m4o.io/osmpbf/internal/core"
	"m4o.io/osmpbf/protobuf"
)

const (
	// OSMHeaderType is the blob type of the header block.
	OSMHeaderType = "OSMHeader"

	// OSMDataType is the blob type of a primitive block.
	OSMDataType = "OSMData"

	maxBlobHeaderSize = 64 * 1024
	maxBlobSize       = 32 * 1024 * 1024
)

var (
	ErrUnknownBlobType = errors.New("unknown blob type")
	ErrBlobTooLarge    = errors.New("blob exceeds maximum size")
)

// GenerateBlobReader creates an iterator that returns the OSMData blobs read
// off of the reader.  Blobs of any other type are skipped.  The iterator ends
// at the end of the reader or when ctx is done; any other failure is yielded
// once, as the last element.
func GenerateBlobReader(ctx context.Context, reader io.Reader, bufSize int) iter.Seq2[*protobuf.Blob, error] {
	return func(yield func(*protobuf.Blob, error) bool) {
		buf := core.NewPooledBuffer()
		defer buf.Close()

		if bufSize > 0 {
			buf.Grow(bufSize)
		}

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			h, blob, err := readBlob(buf, reader)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					slog.Error("unable to read blob", "error", err)
					yield(nil, err)
				}

				return
			}

			if h.GetType() != OSMDataType {
				slog.Debug("skipping blob", "type", h.GetType(), "error", ErrUnknownBlobType)

				continue
			}

			if !yield(blob, nil) {
				return
			}
		}
	}
}

// readBlob reads the next framed blob, along with its header, from rdr.  A
// clean end of input is reported as io.EOF.
func readBlob(buf *core.PooledBuffer, rdr io.Reader) (*protobuf.BlobHeader, *protobuf.Blob, error) {
	h, err := readBlobHeader(buf, rdr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, io.EOF
		}

		return nil, nil, fmt.Errorf("error reading blob header: %w", err)
	}

	b, err := readBlobData(buf, rdr, int64(h.GetDatasize()))
	if err != nil {
		return nil, nil, fmt.Errorf("error reading %s blob: %w", h.GetType(), err)
	}

	return h, b, nil
}

// readBlobHeader unmarshals a header from an array of protobuf encoded bytes.
// The header is used when decoding blobs into OSM objects.
func readBlobHeader(buf *core.PooledBuffer, rdr io.Reader) (*protobuf.BlobHeader, error) {
	var size uint32

	if err := binary.Read(rdr, binary.BigEndian, &size); err != nil {
		return nil, err
	}

	if size > maxBlobHeaderSize {
		return nil, fmt.Errorf("%w: header of %d bytes", ErrBlobTooLarge, size)
	}

	if err := fill(buf, rdr, int64(size)); err != nil {
		return nil, err
	}

	header := &protobuf.BlobHeader{}

	if err := protobuf.Unmarshal(buf.Bytes(), header); err != nil {
		return nil, err
	}

	return header, nil
}

// readBlobData unmarshals a blob from an array of protobuf encoded bytes.  The
// blob still needs to be unpacked before it can be parsed.
func readBlobData(buf *core.PooledBuffer, rdr io.Reader, size int64) (*protobuf.Blob, error) {
	if size < 0 || size > maxBlobSize {
		return nil, fmt.Errorf("%w: blob of %d bytes", ErrBlobTooLarge, size)
	}

	if err := fill(buf, rdr, size); err != nil {
		return nil, err
	}

	blob := &protobuf.Blob{}

	if err := protobuf.Unmarshal(buf.Bytes(), blob); err != nil {
		return nil, err
	}

	return blob, nil
}

// fill replaces the contents of buf with exactly size bytes from rdr.
func fill(buf *core.PooledBuffer, rdr io.Reader, size int64) error {
	buf.Reset()

	if n, err := io.CopyN(buf, rdr, size); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("expected %d bytes, got %d: %w", size, n, io.ErrUnexpectedEOF)
		}

		return err
	}

	return nil
}
