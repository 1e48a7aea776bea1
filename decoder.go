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

// Package osmpbf decodes OpenStreetMap PBF files into the objects of package
// model.
//
// Blobs are read lazily off the input, batched, and decoded on a pool of
// goroutines.  Objects are delivered in file order.
package osmpbf

import (
	"context"
	"io"
	"iter"

	"github.com/destel/rill"

	"m4o.io/osmpbf/internal/decoder"
	"m4o.io/osmpbf/model"
)

var (
	ErrUnknownCompressionType = decoder.ErrUnknownCompressionType
	ErrMissingHeader          = decoder.ErrMissingHeader
	ErrMalformedBlock         = decoder.ErrMalformedBlock
)

// Decoder reads and decodes OpenStreetMap PBF data from an input stream.
type Decoder struct {
	Header model.Header

	objects <-chan rill.Try[[]model.Object]
	cancel  context.CancelFunc
}

// NewDecoder returns a new decoder, configured with options, that reads from
// reader.  The decoder is initialized with the OSM header.
func NewDecoder(ctx context.Context, reader io.Reader, opts ...DecoderOption) (*Decoder, error) {
	cfg := defaultDecoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	hdr, err := decoder.LoadHeader(reader)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)

	d := &Decoder{
		Header: hdr,
		cancel: cancel,
	}

	blobs := rill.FromSeq2(decoder.GenerateBlobReader(ctx, reader, cfg.protoBufferSize))
	batches := rill.Batch(blobs, cfg.protoBatchSize, -1)
	d.objects = rill.OrderedFlatMap(batches, int(cfg.nCPU), decoder.DecodeBatch)

	return d, nil
}

// Decode returns the objects of the next primitive block, in file order, or
// the error encountered.  The end of the input stream is reported by an
// io.EOF error.
func (d *Decoder) Decode() ([]model.Object, error) {
	decoded, more := <-d.objects
	if !more {
		return nil, io.EOF
	}

	return decoded.Value, decoded.Error
}

// Objects returns an iterator over every remaining object of the input.  The
// iteration ends after the first error.
func (d *Decoder) Objects() iter.Seq2[model.Object, error] {
	return func(yield func(model.Object, error) bool) {
		for objs, err := range rill.ToSeq2(d.objects) {
			if err != nil {
				yield(nil, err)

				return
			}

			for _, o := range objs {
				if !yield(o, nil) {
					return
				}
			}
		}
	}
}

// Close will cancel the background decoding pipeline.  It is safe to call
// Close more than once.
func (d *Decoder) Close() {
	d.cancel()
	rill.DrainNB(d.objects)
}
