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
	"errors"
	"fmt"
	"io"
	"time"

	"m4o.io/osmpbf/internal/core"
	"m4o.io/osmpbf/model"
	"m4o.io/osmpbf/protobuf"
)

var ErrMissingHeader = errors.New("missing OSMHeader blob")

// LoadHeader reads the OSMHeader blob that starts every PBF file.
func LoadHeader(reader io.Reader) (model.Header, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	h, blob, err := readBlob(buf, reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.Header{}, fmt.Errorf("%w: empty input", ErrMissingHeader)
		}

		return model.Header{}, err
	}

	if h.GetType() != OSMHeaderType {
		return model.Header{}, fmt.Errorf("%w: found %q", ErrMissingHeader, h.GetType())
	}

	data, err := unpack(buf, blob)
	if err != nil {
		return model.Header{}, fmt.Errorf("unable to unpack header: %w", err)
	}

	return parseHeaderBlock(data)
}

func parseHeaderBlock(data []byte) (model.Header, error) {
	hb := &protobuf.HeaderBlock{}
	if err := protobuf.Unmarshal(data, hb); err != nil {
		return model.Header{}, err
	}

	header := model.Header{
		RequiredFeatures:                 hb.GetRequiredFeatures(),
		OptionalFeatures:                 hb.GetOptionalFeatures(),
		WritingProgram:                   hb.GetWritingprogram(),
		Source:                           hb.GetSource(),
		OsmosisReplicationBaseURL:        hb.GetOsmosisReplicationBaseUrl(),
		OsmosisReplicationSequenceNumber: hb.GetOsmosisReplicationSequenceNumber(),
	}

	if bbox := hb.GetBbox(); bbox != nil {
		header.BoundingBox = &model.BoundingBox{
			Left:   model.ToDegrees(0, 1, bbox.GetLeft()),
			Right:  model.ToDegrees(0, 1, bbox.GetRight()),
			Top:    model.ToDegrees(0, 1, bbox.GetTop()),
			Bottom: model.ToDegrees(0, 1, bbox.GetBottom()),
		}
	}

	if hb.OsmosisReplicationTimestamp != nil {
		header.OsmosisReplicationTimestamp = time.Unix(hb.GetOsmosisReplicationTimestamp(), 0).UTC()
	}

	return header, nil
}
