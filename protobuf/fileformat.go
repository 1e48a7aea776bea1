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

package protobuf

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// BlobHeader precedes every Blob in a PBF file.
type BlobHeader struct {
	Type      *string
	Indexdata []byte
	Datasize  *int32
}

func (m *BlobHeader) GetType() string {
	if m != nil && m.Type != nil {
		return *m.Type
	}

	return ""
}

func (m *BlobHeader) GetIndexdata() []byte {
	if m != nil {
		return m.Indexdata
	}

	return nil
}

func (m *BlobHeader) GetDatasize() int32 {
	if m != nil && m.Datasize != nil {
		return *m.Datasize
	}

	return 0
}

func (m *BlobHeader) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (n int, err error) {
		switch num {
		case 1:
			var v []byte
			v, n, err = consumeView(typ, b)
			m.Type = ptr(string(v))
		case 2:
			m.Indexdata, n, err = consumeBytes(typ, b)
		case 3:
			var v uint64
			v, n, err = consumeVarint(typ, b)
			m.Datasize = ptr(asInt32(v))
		default:
			return skip, nil
		}

		return n, err
	})
}

// Blob holds the, possibly compressed, bytes of a HeaderBlock or
// PrimitiveBlock.
type Blob struct {
	RawSize *int32

	// Types that are assignable to Data:
	//
	//	*Blob_Raw
	//	*Blob_ZlibData
	//	*Blob_LzmaData
	//	*Blob_OBSOLETEBzip2Data
	//	*Blob_Lz4Data
	//	*Blob_ZstdData
	Data isBlob_Data
}

type isBlob_Data interface {
	isBlob_Data()
}

type Blob_Raw struct {
	Raw []byte
}

type Blob_ZlibData struct {
	ZlibData []byte
}

type Blob_LzmaData struct {
	LzmaData []byte
}

type Blob_OBSOLETEBzip2Data struct {
	OBSOLETEBzip2Data []byte
}

type Blob_Lz4Data struct {
	Lz4Data []byte
}

type Blob_ZstdData struct {
	ZstdData []byte
}

func (*Blob_Raw) isBlob_Data() {}

func (*Blob_ZlibData) isBlob_Data() {}

func (*Blob_LzmaData) isBlob_Data() {}

func (*Blob_OBSOLETEBzip2Data) isBlob_Data() {}

func (*Blob_Lz4Data) isBlob_Data() {}

func (*Blob_ZstdData) isBlob_Data() {}

func (m *Blob) GetRawSize() int32 {
	if m != nil && m.RawSize != nil {
		return *m.RawSize
	}

	return 0
}

func (m *Blob) GetData() isBlob_Data {
	if m != nil {
		return m.Data
	}

	return nil
}

func (m *Blob) GetRaw() []byte {
	if x, ok := m.GetData().(*Blob_Raw); ok {
		return x.Raw
	}

	return nil
}

func (m *Blob) GetZlibData() []byte {
	if x, ok := m.GetData().(*Blob_ZlibData); ok {
		return x.ZlibData
	}

	return nil
}

func (m *Blob) GetLzmaData() []byte {
	if x, ok := m.GetData().(*Blob_LzmaData); ok {
		return x.LzmaData
	}

	return nil
}

func (m *Blob) GetLz4Data() []byte {
	if x, ok := m.GetData().(*Blob_Lz4Data); ok {
		return x.Lz4Data
	}

	return nil
}

func (m *Blob) GetZstdData() []byte {
	if x, ok := m.GetData().(*Blob_ZstdData); ok {
		return x.ZstdData
	}

	return nil
}

func (m *Blob) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 2 {
			v, n, err := consumeVarint(typ, b)
			m.RawSize = ptr(asInt32(v))

			return n, err
		}

		if num < 1 || num > 7 {
			return skip, nil
		}

		v, n, err := consumeBytes(typ, b)
		if err != nil {
			return n, err
		}

		switch num {
		case 1:
			m.Data = &Blob_Raw{Raw: v}
		case 3:
			m.Data = &Blob_ZlibData{ZlibData: v}
		case 4:
			m.Data = &Blob_LzmaData{LzmaData: v}
		case 5:
			m.Data = &Blob_OBSOLETEBzip2Data{OBSOLETEBzip2Data: v}
		case 6:
			m.Data = &Blob_Lz4Data{Lz4Data: v}
		case 7:
			m.Data = &Blob_ZstdData{ZstdData: v}
		}

		return n, nil
	})
}
