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
	"slices"

	"m4o.io/osmpbf/model"
	"m4o.io/osmpbf/primitive"
	"m4o.io/osmpbf/protobuf"
)

var ErrMalformedBlock = errors.New("malformed primitive block")

// parsePrimitiveBlock decodes every object of a primitive block.  A string
// table index outside the table makes the whole block fail.
func parsePrimitiveBlock(buf []byte) (objs []model.Object, err error) {
	blk := &protobuf.PrimitiveBlock{}
	if err := protobuf.Unmarshal(buf, blk); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			objs, err = nil, fmt.Errorf("%w: %v", ErrMalformedBlock, r)
		}
	}()

	return slices.Collect(primitive.BlockObjects(blk)), nil
}
