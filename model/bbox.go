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

package model

import (
	"fmt"
)

// Coordinate limits.
const (
	MaxLat Degrees = 90.0
	MaxLon Degrees = 180.0
	MinLat Degrees = -90.0
	MinLon Degrees = -180.0
)

// BoundingBox is simply a bounding box.
type BoundingBox struct {
	Top    Degrees `json:"top"`
	Left   Degrees `json:"left"`
	Bottom Degrees `json:"bottom"`
	Right  Degrees `json:"right"`
}

// InitialBoundingBox creates a BoundingBox that is meant to be expanded.
func InitialBoundingBox() *BoundingBox {
	return &BoundingBox{
		Top:    MinLat,
		Left:   MaxLon,
		Bottom: MaxLat,
		Right:  MinLon,
	}
}

// EqualWithin checks if two bounding boxes are within a specific epsilon.
func (b *BoundingBox) EqualWithin(o *BoundingBox, eps Epsilon) bool {
	return b.Left.EqualWithin(o.Left, eps) &&
		b.Right.EqualWithin(o.Right, eps) &&
		b.Top.EqualWithin(o.Top, eps) &&
		b.Bottom.EqualWithin(o.Bottom, eps)
}

// Contains checks if the bounding box contains the lat lng point.
func (b *BoundingBox) Contains(lat Degrees, lng Degrees) bool {
	return b.Left <= lng && lng <= b.Right && b.Bottom <= lat && lat <= b.Top
}

// ExpandWithLatLng grows the bounding box so that it contains the point.
func (b *BoundingBox) ExpandWithLatLng(lat, lng Degrees) {
	if b.Top < lat {
		b.Top = lat
	}

	if b.Bottom > lat {
		b.Bottom = lat
	}

	if b.Left > lng {
		b.Left = lng
	}

	if b.Right < lng {
		b.Right = lng
	}
}

// ExpandWithBoundingBox grows the bounding box so that it contains bbox.
func (b *BoundingBox) ExpandWithBoundingBox(bbox *BoundingBox) {
	if b.Top < bbox.Top {
		b.Top = bbox.Top
	}

	if b.Bottom > bbox.Bottom {
		b.Bottom = bbox.Bottom
	}

	if b.Left > bbox.Left {
		b.Left = bbox.Left
	}

	if b.Right < bbox.Right {
		b.Right = bbox.Right
	}
}

// IsEmpty reports whether nothing has been added to an InitialBoundingBox.
func (b *BoundingBox) IsEmpty() bool {
	return b.Top < b.Bottom || b.Right < b.Left
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("[(%s, %s) (%s, %s)]",
		ftoa(float64(b.Top)), ftoa(float64(b.Left)),
		ftoa(float64(b.Bottom)), ftoa(float64(b.Right)))
}
