package onnx

import (
	"encoding/binary"
	"math"
)

// Payload returns the tensor's data as little-endian bytes.
// RawData is returned as is when present. Otherwise the first non-empty typed
// field is serialized at its natural width. String and external tensors have
// no byte payload and yield nil.
func (t *TensorProto) Payload() []byte {
	switch {
	case len(t.RawData) > 0:
		return t.RawData
	case len(t.FloatData) > 0:
		out := make([]byte, 0, 4*len(t.FloatData))
		for _, v := range t.FloatData {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
		}
		return out
	case len(t.Int32Data) > 0:
		out := make([]byte, 0, 4*len(t.Int32Data))
		for _, v := range t.Int32Data {
			out = binary.LittleEndian.AppendUint32(out, uint32(v))
		}
		return out
	case len(t.Int64Data) > 0:
		out := make([]byte, 0, 8*len(t.Int64Data))
		for _, v := range t.Int64Data {
			out = binary.LittleEndian.AppendUint64(out, uint64(v))
		}
		return out
	case len(t.DoubleData) > 0:
		out := make([]byte, 0, 8*len(t.DoubleData))
		for _, v := range t.DoubleData {
			out = binary.LittleEndian.AppendUint64(out, math.Float64bits(v))
		}
		return out
	case len(t.Uint64Data) > 0:
		out := make([]byte, 0, 8*len(t.Uint64Data))
		for _, v := range t.Uint64Data {
			out = binary.LittleEndian.AppendUint64(out, v)
		}
		return out
	}
	return nil
}

// NumElements returns the product of Dims. A scalar (no dims) has one
// element.
func (t *TensorProto) NumElements() int64 {
	n := int64(1)
	for _, d := range t.Dims {
		n *= d
	}
	return n
}
