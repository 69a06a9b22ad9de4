package onnx

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Marshal encodes a ModelProto in wire format.
// Zero-valued scalar fields are omitted and repeated numeric fields are
// packed, as proto3 encoders do, so Unmarshal(Marshal(m)) reproduces m.
func Marshal(m *ModelProto) []byte {
	var b []byte
	b = appendVarintField(b, 1, uint64(m.IRVersion))
	b = appendStringField(b, 2, m.ProducerName)
	b = appendStringField(b, 3, m.ProducerVersion)
	b = appendStringField(b, 4, m.Domain)
	b = appendVarintField(b, 5, uint64(m.ModelVersion))
	b = appendStringField(b, 6, m.DocString)
	if m.Graph != nil {
		b = appendMessage(b, 7, encodeGraph(m.Graph))
	}
	for i := range m.OpsetImport {
		b = appendMessage(b, 8, encodeOperatorSetID(&m.OpsetImport[i]))
	}
	for i := range m.MetadataProps {
		b = appendMessage(b, 14, encodeStringStringEntry(&m.MetadataProps[i]))
	}
	return b
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendStringField(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendRepeatedString writes every element, empty ones included, since
// position matters for node inputs and outputs.
func appendRepeatedString(b []byte, num protowire.Number, vs []string) []byte {
	for _, s := range vs {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

func appendRepeatedBytes(b []byte, num protowire.Number, vs [][]byte) []byte {
	for _, v := range vs {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendBytes(b, v)
	}
	return b
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendPackedVarints(b []byte, num protowire.Number, vs []uint64) []byte {
	if len(vs) == 0 {
		return b
	}
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, v)
	}
	return appendMessage(b, num, packed)
}

func appendPackedInt64s(b []byte, num protowire.Number, vs []int64) []byte {
	raw := make([]uint64, len(vs))
	for i, v := range vs {
		raw[i] = uint64(v)
	}
	return appendPackedVarints(b, num, raw)
}

func appendPackedFloat32s(b []byte, num protowire.Number, vs []float32) []byte {
	if len(vs) == 0 {
		return b
	}
	packed := make([]byte, 0, 4*len(vs))
	for _, v := range vs {
		packed = protowire.AppendFixed32(packed, math.Float32bits(v))
	}
	return appendMessage(b, num, packed)
}

func appendPackedFloat64s(b []byte, num protowire.Number, vs []float64) []byte {
	if len(vs) == 0 {
		return b
	}
	packed := make([]byte, 0, 8*len(vs))
	for _, v := range vs {
		packed = protowire.AppendFixed64(packed, math.Float64bits(v))
	}
	return appendMessage(b, num, packed)
}

func encodeGraph(g *GraphProto) []byte {
	var b []byte
	for i := range g.Nodes {
		b = appendMessage(b, 1, encodeNode(&g.Nodes[i]))
	}
	b = appendStringField(b, 2, g.Name)
	for i := range g.Initializers {
		b = appendMessage(b, 5, encodeTensor(&g.Initializers[i]))
	}
	b = appendStringField(b, 10, g.DocString)
	for i := range g.Inputs {
		b = appendMessage(b, 11, encodeValueInfo(&g.Inputs[i]))
	}
	for i := range g.Outputs {
		b = appendMessage(b, 12, encodeValueInfo(&g.Outputs[i]))
	}
	for i := range g.ValueInfo {
		b = appendMessage(b, 13, encodeValueInfo(&g.ValueInfo[i]))
	}
	return b
}

func encodeNode(n *NodeProto) []byte {
	var b []byte
	b = appendRepeatedString(b, 1, n.Inputs)
	b = appendRepeatedString(b, 2, n.Outputs)
	b = appendStringField(b, 3, n.Name)
	b = appendStringField(b, 4, n.OpType)
	for i := range n.Attributes {
		b = appendMessage(b, 5, encodeAttribute(&n.Attributes[i]))
	}
	b = appendStringField(b, 6, n.DocString)
	b = appendStringField(b, 7, n.Domain)
	return b
}

func encodeTensor(t *TensorProto) []byte {
	var b []byte
	b = appendPackedInt64s(b, 1, t.Dims)
	b = appendVarintField(b, 2, uint64(t.DataType))
	b = appendPackedFloat32s(b, 4, t.FloatData)
	int32s := make([]uint64, len(t.Int32Data))
	for i, v := range t.Int32Data {
		int32s[i] = uint64(int64(v))
	}
	b = appendPackedVarints(b, 5, int32s)
	b = appendRepeatedBytes(b, 6, t.StringData)
	b = appendPackedInt64s(b, 7, t.Int64Data)
	b = appendStringField(b, 8, t.Name)
	b = appendBytesField(b, 9, t.RawData)
	b = appendPackedFloat64s(b, 10, t.DoubleData)
	b = appendPackedVarints(b, 11, t.Uint64Data)
	b = appendStringField(b, 12, t.DocString)
	for i := range t.ExternalData {
		b = appendMessage(b, 13, encodeStringStringEntry(&t.ExternalData[i]))
	}
	b = appendVarintField(b, 14, uint64(t.DataLocation))
	return b
}

func encodeValueInfo(vi *ValueInfoProto) []byte {
	var b []byte
	b = appendStringField(b, 1, vi.Name)
	if vi.Type != nil {
		b = appendMessage(b, 2, encodeType(vi.Type))
	}
	b = appendStringField(b, 3, vi.DocString)
	return b
}

func encodeType(tp *TypeProto) []byte {
	var b []byte
	if tp.TensorType != nil {
		var tt []byte
		tt = appendVarintField(tt, 1, uint64(tp.TensorType.ElemType))
		if tp.TensorType.Shape != nil {
			var shape []byte
			for _, d := range tp.TensorType.Shape.Dims {
				var dim []byte
				dim = appendVarintField(dim, 1, uint64(d.DimValue))
				dim = appendStringField(dim, 2, d.DimParam)
				shape = appendMessage(shape, 1, dim)
			}
			tt = appendMessage(tt, 2, shape)
		}
		b = appendMessage(b, 1, tt)
	}
	b = appendStringField(b, 6, tp.Denotation)
	return b
}

func encodeAttribute(a *AttributeProto) []byte {
	var b []byte
	b = appendStringField(b, 1, a.Name)
	if a.F != 0 {
		b = protowire.AppendTag(b, 2, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(a.F))
	}
	b = appendVarintField(b, 3, uint64(a.I))
	b = appendBytesField(b, 4, a.S)
	if a.T != nil {
		b = appendMessage(b, 5, encodeTensor(a.T))
	}
	if a.G != nil {
		b = appendMessage(b, 6, encodeGraph(a.G))
	}
	b = appendPackedFloat32s(b, 7, a.Floats)
	b = appendPackedInt64s(b, 8, a.Ints)
	b = appendRepeatedBytes(b, 9, a.Strings)
	for i := range a.Tensors {
		b = appendMessage(b, 10, encodeTensor(&a.Tensors[i]))
	}
	for i := range a.Graphs {
		b = appendMessage(b, 11, encodeGraph(&a.Graphs[i]))
	}
	b = appendStringField(b, 13, a.DocString)
	b = appendVarintField(b, 20, uint64(a.Type))
	b = appendStringField(b, 21, a.RefAttr)
	return b
}

func encodeOperatorSetID(o *OperatorSetID) []byte {
	var b []byte
	b = appendStringField(b, 1, o.Domain)
	b = appendVarintField(b, 2, uint64(o.Version))
	return b
}

func encodeStringStringEntry(e *StringStringEntry) []byte {
	var b []byte
	b = appendStringField(b, 1, e.Key)
	b = appendStringField(b, 2, e.Value)
	return b
}
