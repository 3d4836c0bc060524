package models

import (
	"encoding/binary"
	"errors"
	"math"
)

// Descriptor is a fixed-length numeric embedding of a face produced by an
// external recognition model. The Euclidean distance between two descriptors
// approximates identity similarity. The expected length is configuration,
// not a property of this type.
type Descriptor []float64

// ErrDescriptorBlobCorrupted is returned by DescriptorFromBytes when the
// persisted blob length is not a multiple of the element size.
var ErrDescriptorBlobCorrupted = errors.New("descriptor blob is corrupted")

// Bytes serializes the descriptor as a little-endian float64 sequence for
// storage in a BLOB/BYTEA column.
func (d Descriptor) Bytes() []byte {
	buf := make([]byte, 8*len(d))
	for i, v := range d {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}

// DescriptorFromBytes decodes a descriptor previously serialized with
// [Descriptor.Bytes]. A nil or empty blob decodes to a nil descriptor.
func DescriptorFromBytes(blob []byte) (Descriptor, error) {
	if len(blob) == 0 {
		return nil, nil
	}
	if len(blob)%8 != 0 {
		return nil, ErrDescriptorBlobCorrupted
	}

	d := make(Descriptor, len(blob)/8)
	for i := range d {
		d[i] = math.Float64frombits(binary.LittleEndian.Uint64(blob[8*i:]))
	}
	return d, nil
}
