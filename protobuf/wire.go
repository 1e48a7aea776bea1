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

// Package protobuf holds the OpenStreetMap PBF message structures
// (fileformat.proto and osmformat.proto) and decodes them from the protobuf
// wire format.
//
// The structures mirror proto2 generated code: optional scalars are pointers
// and every getter is safe to call on a nil receiver, returning the field's
// declared default.
package protobuf

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

var (
	// ErrWireType is returned when a field arrives with a wire type that does
	// not match its declaration.
	ErrWireType = errors.New("protobuf: unexpected wire type")
)

// Message is implemented by every message of this package.
type Message interface {
	unmarshal(b []byte) error
}

// Unmarshal parses the wire-format bytes b into m.  Byte fields are copied,
// so b may be reused once Unmarshal returns.
func Unmarshal(b []byte, m Message) error {
	if err := m.unmarshal(b); err != nil {
		return fmt.Errorf("unable to unmarshal %T: %w", m, err)
	}

	return nil
}

// skip is returned by a field handler for fields it does not know.
const skip = -1

// fieldHandler consumes the value of field num from b and reports how many
// bytes it consumed, or skip.
type fieldHandler func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

// walk iterates over the fields of a message.
func walk(b []byte, handle fieldHandler) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}

		b = b[n:]

		n, err := handle(num, typ, b)
		if err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}

		if n == skip {
			if n = protowire.ConsumeFieldValue(num, typ, b); n < 0 {
				return protowire.ParseError(n)
			}
		}

		b = b[n:]
	}

	return nil
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, ErrWireType
	}

	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}

	return v, n, nil
}

// consumeBytes returns a copy of a length-delimited value.
func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	v, n, err := consumeView(typ, b)
	if err != nil {
		return nil, 0, err
	}

	return append(make([]byte, 0, len(v)), v...), n, nil
}

// consumeView returns a length-delimited value aliasing b.
func consumeView(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, ErrWireType
	}

	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}

	return v, n, nil
}

func consumeMessage[T any, P interface {
	*T
	Message
}](typ protowire.Type, b []byte) (P, int, error) {
	v, n, err := consumeView(typ, b)
	if err != nil {
		return nil, 0, err
	}

	m := P(new(T))
	if err := m.unmarshal(v); err != nil {
		return nil, 0, err
	}

	return m, n, nil
}

// appendRepeated decodes a repeated varint field, accepting both the packed
// and the unpacked encoding.
func appendRepeated[T any](dst []T, typ protowire.Type, b []byte, conv func(uint64) T) ([]T, int, error) {
	switch typ {
	case protowire.VarintType:
		v, n, err := consumeVarint(typ, b)
		if err != nil {
			return dst, 0, err
		}

		return append(dst, conv(v)), n, nil
	case protowire.BytesType:
		packed, n, err := consumeView(typ, b)
		if err != nil {
			return dst, 0, err
		}

		for len(packed) > 0 {
			v, m := protowire.ConsumeVarint(packed)
			if m < 0 {
				return dst, 0, protowire.ParseError(m)
			}

			dst = append(dst, conv(v))
			packed = packed[m:]
		}

		return dst, n, nil
	default:
		return dst, 0, ErrWireType
	}
}

func asInt32(v uint64) int32 { return int32(v) }

func asUint32(v uint64) uint32 { return uint32(v) }

func asInt64(v uint64) int64 { return int64(v) }

func asSint32(v uint64) int32 { return int32(protowire.DecodeZigZag(v & 0xffffffff)) }

func asSint64(v uint64) int64 { return protowire.DecodeZigZag(v) }

func asBool(v uint64) bool { return protowire.DecodeBool(v) }

func ptr[T any](v T) *T { return &v }
