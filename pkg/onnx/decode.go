package onnx

import (
	"bytes"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tcgraph/tcgraph/pkg/errors"
)

// Unmarshal decodes a serialized ModelProto.
// Any wire-level problem (truncation, bad tags, wrong wire type for a known
// field) fails with ErrCodeDecodeFailure. Unknown fields are skipped.
// Byte payloads are copied, so data may be reused after the call.
func Unmarshal(data []byte) (*ModelProto, error) {
	m := &ModelProto{}
	if err := decodeModel(data, m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecodeFailure, err, "decode model")
	}
	return m, nil
}

// eachField walks the top-level fields of a message. fn receives the raw,
// bounds-checked bytes of each field value.
func eachField(b []byte, fn func(num protowire.Number, typ protowire.Type, val []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return fmt.Errorf("field %d: %w", num, protowire.ParseError(m))
		}
		if err := fn(num, typ, b[:m]); err != nil {
			return err
		}
		b = b[m:]
	}
	return nil
}

func wrongType(num protowire.Number, got, want protowire.Type) error {
	return fmt.Errorf("field %d: wire type %d, want %d", num, got, want)
}

func bytesField(num protowire.Number, typ protowire.Type, val []byte) ([]byte, error) {
	if typ != protowire.BytesType {
		return nil, wrongType(num, typ, protowire.BytesType)
	}
	v, n := protowire.ConsumeBytes(val)
	if n < 0 {
		return nil, protowire.ParseError(n)
	}
	return v, nil
}

func stringField(num protowire.Number, typ protowire.Type, val []byte) (string, error) {
	v, err := bytesField(num, typ, val)
	return string(v), err
}

func varintField(num protowire.Number, typ protowire.Type, val []byte) (uint64, error) {
	if typ != protowire.VarintType {
		return 0, wrongType(num, typ, protowire.VarintType)
	}
	v, n := protowire.ConsumeVarint(val)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return v, nil
}

func float32Field(num protowire.Number, typ protowire.Type, val []byte) (float32, error) {
	if typ != protowire.Fixed32Type {
		return 0, wrongType(num, typ, protowire.Fixed32Type)
	}
	v, n := protowire.ConsumeFixed32(val)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	return math.Float32frombits(v), nil
}

// appendVarints decodes a repeated varint field in packed or unpacked form.
func appendVarints(dst []uint64, num protowire.Number, typ protowire.Type, val []byte) ([]uint64, error) {
	switch typ {
	case protowire.VarintType:
		v, err := varintField(num, typ, val)
		return append(dst, v), err
	case protowire.BytesType:
		packed, err := bytesField(num, typ, val)
		if err != nil {
			return dst, err
		}
		for len(packed) > 0 {
			v, n := protowire.ConsumeVarint(packed)
			if n < 0 {
				return dst, fmt.Errorf("field %d: %w", num, protowire.ParseError(n))
			}
			dst = append(dst, v)
			packed = packed[n:]
		}
		return dst, nil
	default:
		return dst, wrongType(num, typ, protowire.VarintType)
	}
}

// appendFixed32s decodes a repeated fixed32 field in packed or unpacked form.
func appendFixed32s(dst []uint32, num protowire.Number, typ protowire.Type, val []byte) ([]uint32, error) {
	switch typ {
	case protowire.Fixed32Type:
		v, n := protowire.ConsumeFixed32(val)
		if n < 0 {
			return dst, protowire.ParseError(n)
		}
		return append(dst, v), nil
	case protowire.BytesType:
		packed, err := bytesField(num, typ, val)
		if err != nil {
			return dst, err
		}
		if len(packed)%4 != 0 {
			return dst, fmt.Errorf("field %d: packed fixed32 length %d", num, len(packed))
		}
		for len(packed) > 0 {
			v, n := protowire.ConsumeFixed32(packed)
			dst = append(dst, v)
			packed = packed[n:]
		}
		return dst, nil
	default:
		return dst, wrongType(num, typ, protowire.Fixed32Type)
	}
}

// appendFixed64s decodes a repeated fixed64 field in packed or unpacked form.
func appendFixed64s(dst []uint64, num protowire.Number, typ protowire.Type, val []byte) ([]uint64, error) {
	switch typ {
	case protowire.Fixed64Type:
		v, n := protowire.ConsumeFixed64(val)
		if n < 0 {
			return dst, protowire.ParseError(n)
		}
		return append(dst, v), nil
	case protowire.BytesType:
		packed, err := bytesField(num, typ, val)
		if err != nil {
			return dst, err
		}
		if len(packed)%8 != 0 {
			return dst, fmt.Errorf("field %d: packed fixed64 length %d", num, len(packed))
		}
		for len(packed) > 0 {
			v, n := protowire.ConsumeFixed64(packed)
			dst = append(dst, v)
			packed = packed[n:]
		}
		return dst, nil
	default:
		return dst, wrongType(num, typ, protowire.Fixed64Type)
	}
}

func appendInt64s(dst []int64, num protowire.Number, typ protowire.Type, val []byte) ([]int64, error) {
	raw, err := appendVarints(nil, num, typ, val)
	for _, v := range raw {
		dst = append(dst, int64(v))
	}
	return dst, err
}

func appendFloat32s(dst []float32, num protowire.Number, typ protowire.Type, val []byte) ([]float32, error) {
	raw, err := appendFixed32s(nil, num, typ, val)
	for _, v := range raw {
		dst = append(dst, math.Float32frombits(v))
	}
	return dst, err
}

// message decodes a length-delimited sub-message with the given decoder.
func message[T any](num protowire.Number, typ protowire.Type, val []byte, decode func([]byte, *T) error) (T, error) {
	var msg T
	b, err := bytesField(num, typ, val)
	if err != nil {
		return msg, err
	}
	err = decode(b, &msg)
	return msg, err
}

func decodeModel(b []byte, m *ModelProto) error {
	return eachField(b, func(num protowire.Number, typ protowire.Type, val []byte) error {
		var err error
		switch num {
		case 1: // ir_version
			var v uint64
			v, err = varintField(num, typ, val)
			m.IRVersion = int64(v)
		case 2: // producer_name
			m.ProducerName, err = stringField(num, typ, val)
		case 3: // producer_version
			m.ProducerVersion, err = stringField(num, typ, val)
		case 4: // domain
			m.Domain, err = stringField(num, typ, val)
		case 5: // model_version
			var v uint64
			v, err = varintField(num, typ, val)
			m.ModelVersion = int64(v)
		case 6: // doc_string
			m.DocString, err = stringField(num, typ, val)
		case 7: // graph
			var g GraphProto
			g, err = message(num, typ, val, decodeGraph)
			m.Graph = &g
		case 8: // opset_import
			var opset OperatorSetID
			opset, err = message(num, typ, val, decodeOperatorSetID)
			m.OpsetImport = append(m.OpsetImport, opset)
		case 14: // metadata_props
			var entry StringStringEntry
			entry, err = message(num, typ, val, decodeStringStringEntry)
			m.MetadataProps = append(m.MetadataProps, entry)
		}
		return err
	})
}

func decodeGraph(b []byte, g *GraphProto) error {
	return eachField(b, func(num protowire.Number, typ protowire.Type, val []byte) error {
		var err error
		switch num {
		case 1: // node
			var node NodeProto
			node, err = message(num, typ, val, decodeNode)
			g.Nodes = append(g.Nodes, node)
		case 2: // name
			g.Name, err = stringField(num, typ, val)
		case 5: // initializer
			var t TensorProto
			t, err = message(num, typ, val, decodeTensor)
			g.Initializers = append(g.Initializers, t)
		case 10: // doc_string
			g.DocString, err = stringField(num, typ, val)
		case 11: // input
			var vi ValueInfoProto
			vi, err = message(num, typ, val, decodeValueInfo)
			g.Inputs = append(g.Inputs, vi)
		case 12: // output
			var vi ValueInfoProto
			vi, err = message(num, typ, val, decodeValueInfo)
			g.Outputs = append(g.Outputs, vi)
		case 13: // value_info
			var vi ValueInfoProto
			vi, err = message(num, typ, val, decodeValueInfo)
			g.ValueInfo = append(g.ValueInfo, vi)
		}
		return err
	})
}

func decodeNode(b []byte, n *NodeProto) error {
	return eachField(b, func(num protowire.Number, typ protowire.Type, val []byte) error {
		var err error
		switch num {
		case 1: // input
			var s string
			s, err = stringField(num, typ, val)
			n.Inputs = append(n.Inputs, s)
		case 2: // output
			var s string
			s, err = stringField(num, typ, val)
			n.Outputs = append(n.Outputs, s)
		case 3: // name
			n.Name, err = stringField(num, typ, val)
		case 4: // op_type
			n.OpType, err = stringField(num, typ, val)
		case 5: // attribute
			var attr AttributeProto
			attr, err = message(num, typ, val, decodeAttribute)
			n.Attributes = append(n.Attributes, attr)
		case 6: // doc_string
			n.DocString, err = stringField(num, typ, val)
		case 7: // domain
			n.Domain, err = stringField(num, typ, val)
		}
		return err
	})
}

func decodeTensor(b []byte, t *TensorProto) error {
	return eachField(b, func(num protowire.Number, typ protowire.Type, val []byte) error {
		var err error
		switch num {
		case 1: // dims
			t.Dims, err = appendInt64s(t.Dims, num, typ, val)
		case 2: // data_type
			var v uint64
			v, err = varintField(num, typ, val)
			t.DataType = int32(v)
		case 4: // float_data
			t.FloatData, err = appendFloat32s(t.FloatData, num, typ, val)
		case 5: // int32_data
			var raw []uint64
			raw, err = appendVarints(nil, num, typ, val)
			for _, v := range raw {
				t.Int32Data = append(t.Int32Data, int32(v))
			}
		case 6: // string_data
			var s []byte
			s, err = bytesField(num, typ, val)
			t.StringData = append(t.StringData, bytes.Clone(s))
		case 7: // int64_data
			t.Int64Data, err = appendInt64s(t.Int64Data, num, typ, val)
		case 8: // name
			t.Name, err = stringField(num, typ, val)
		case 9: // raw_data
			var raw []byte
			raw, err = bytesField(num, typ, val)
			t.RawData = bytes.Clone(raw)
		case 10: // double_data
			var raw []uint64
			raw, err = appendFixed64s(nil, num, typ, val)
			for _, v := range raw {
				t.DoubleData = append(t.DoubleData, math.Float64frombits(v))
			}
		case 11: // uint64_data
			t.Uint64Data, err = appendVarints(t.Uint64Data, num, typ, val)
		case 12: // doc_string
			t.DocString, err = stringField(num, typ, val)
		case 13: // external_data
			var entry StringStringEntry
			entry, err = message(num, typ, val, decodeStringStringEntry)
			t.ExternalData = append(t.ExternalData, entry)
		case 14: // data_location
			var v uint64
			v, err = varintField(num, typ, val)
			t.DataLocation = int32(v)
		}
		return err
	})
}

func decodeValueInfo(b []byte, vi *ValueInfoProto) error {
	return eachField(b, func(num protowire.Number, typ protowire.Type, val []byte) error {
		var err error
		switch num {
		case 1: // name
			vi.Name, err = stringField(num, typ, val)
		case 2: // type
			var tp TypeProto
			tp, err = message(num, typ, val, decodeType)
			vi.Type = &tp
		case 3: // doc_string
			vi.DocString, err = stringField(num, typ, val)
		}
		return err
	})
}

func decodeType(b []byte, tp *TypeProto) error {
	return eachField(b, func(num protowire.Number, typ protowire.Type, val []byte) error {
		var err error
		switch num {
		case 1: // tensor_type
			var tt TensorTypeProto
			tt, err = message(num, typ, val, decodeTensorType)
			tp.TensorType = &tt
		case 6: // denotation
			tp.Denotation, err = stringField(num, typ, val)
		}
		return err
	})
}

func decodeTensorType(b []byte, tt *TensorTypeProto) error {
	return eachField(b, func(num protowire.Number, typ protowire.Type, val []byte) error {
		var err error
		switch num {
		case 1: // elem_type
			var v uint64
			v, err = varintField(num, typ, val)
			tt.ElemType = int32(v)
		case 2: // shape
			var shape TensorShapeProto
			shape, err = message(num, typ, val, decodeTensorShape)
			tt.Shape = &shape
		}
		return err
	})
}

func decodeTensorShape(b []byte, s *TensorShapeProto) error {
	return eachField(b, func(num protowire.Number, typ protowire.Type, val []byte) error {
		if num != 1 { // dim
			return nil
		}
		dim, err := message(num, typ, val, decodeDimension)
		s.Dims = append(s.Dims, dim)
		return err
	})
}

func decodeDimension(b []byte, d *DimensionProto) error {
	return eachField(b, func(num protowire.Number, typ protowire.Type, val []byte) error {
		var err error
		switch num {
		case 1: // dim_value
			var v uint64
			v, err = varintField(num, typ, val)
			d.DimValue = int64(v)
		case 2: // dim_param
			d.DimParam, err = stringField(num, typ, val)
		}
		return err
	})
}

func decodeAttribute(b []byte, a *AttributeProto) error {
	return eachField(b, func(num protowire.Number, typ protowire.Type, val []byte) error {
		var err error
		switch num {
		case 1: // name
			a.Name, err = stringField(num, typ, val)
		case 2: // f
			a.F, err = float32Field(num, typ, val)
		case 3: // i
			var v uint64
			v, err = varintField(num, typ, val)
			a.I = int64(v)
		case 4: // s
			var s []byte
			s, err = bytesField(num, typ, val)
			a.S = bytes.Clone(s)
		case 5: // t
			var t TensorProto
			t, err = message(num, typ, val, decodeTensor)
			a.T = &t
		case 6: // g
			var g GraphProto
			g, err = message(num, typ, val, decodeGraph)
			a.G = &g
		case 7: // floats
			a.Floats, err = appendFloat32s(a.Floats, num, typ, val)
		case 8: // ints
			a.Ints, err = appendInt64s(a.Ints, num, typ, val)
		case 9: // strings
			var s []byte
			s, err = bytesField(num, typ, val)
			a.Strings = append(a.Strings, bytes.Clone(s))
		case 10: // tensors
			var t TensorProto
			t, err = message(num, typ, val, decodeTensor)
			a.Tensors = append(a.Tensors, t)
		case 11: // graphs
			var g GraphProto
			g, err = message(num, typ, val, decodeGraph)
			a.Graphs = append(a.Graphs, g)
		case 13: // doc_string
			a.DocString, err = stringField(num, typ, val)
		case 20: // type
			var v uint64
			v, err = varintField(num, typ, val)
			a.Type = int32(v)
		case 21: // ref_attr_name
			a.RefAttr, err = stringField(num, typ, val)
		}
		return err
	})
}

func decodeOperatorSetID(b []byte, o *OperatorSetID) error {
	return eachField(b, func(num protowire.Number, typ protowire.Type, val []byte) error {
		var err error
		switch num {
		case 1: // domain
			o.Domain, err = stringField(num, typ, val)
		case 2: // version
			var v uint64
			v, err = varintField(num, typ, val)
			o.Version = int64(v)
		}
		return err
	})
}

func decodeStringStringEntry(b []byte, e *StringStringEntry) error {
	return eachField(b, func(num protowire.Number, typ protowire.Type, val []byte) error {
		var err error
		switch num {
		case 1: // key
			e.Key, err = stringField(num, typ, val)
		case 2: // value
			e.Value, err = stringField(num, typ, val)
		}
		return err
	})
}
