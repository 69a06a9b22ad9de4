package onnx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tcgraph/tcgraph/pkg/errors"
)

func sampleModel() *ModelProto {
	return &ModelProto{
		IRVersion:    8,
		ProducerName: "tcgraph-test",
		OpsetImport:  []OperatorSetID{{Domain: "", Version: 17}},
		Graph: &GraphProto{
			Name: "main",
			Inputs: []ValueInfoProto{{
				Name: "X",
				Type: &TypeProto{TensorType: &TensorTypeProto{
					ElemType: TensorProtoFloat,
					Shape: &TensorShapeProto{Dims: []DimensionProto{
						{DimParam: "N"}, {DimValue: 3},
					}},
				}},
			}},
			Outputs: []ValueInfoProto{{Name: "Z"}},
			Initializers: []TensorProto{{
				Name:      "W",
				Dims:      []int64{3},
				DataType:  TensorProtoFloat,
				FloatData: []float32{1, 2, 3},
			}},
			Nodes: []NodeProto{{
				Name:    "add0",
				OpType:  "Add",
				Inputs:  []string{"X", "", "W"},
				Outputs: []string{"Z"},
				Attributes: []AttributeProto{
					{Name: "alpha", Type: AttributeProtoFloat, F: 0.5},
					{Name: "axis", Type: AttributeProtoInt, I: -1},
					{Name: "mode", Type: AttributeProtoString, S: []byte("same")},
					{Name: "perm", Type: AttributeProtoInts, Ints: []int64{0, 2, 1}},
					{Name: "scales", Type: AttributeProtoFloats, Floats: []float32{1.5, -2}},
					{Name: "tags", Type: AttributeProtoStrings, Strings: [][]byte{[]byte("a"), []byte("b")}},
				},
			}},
		},
	}
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	want := sampleModel()

	got, err := Unmarshal(Marshal(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUnmarshalEmpty(t *testing.T) {
	m, err := Unmarshal(nil)
	require.NoError(t, err)
	assert.Nil(t, m.Graph)
}

func TestUnmarshalTruncated(t *testing.T) {
	data := Marshal(sampleModel())

	_, err := Unmarshal(data[:len(data)-3])
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDecodeFailure))
}

func TestUnmarshalGarbage(t *testing.T) {
	_, err := Unmarshal([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDecodeFailure, errors.GetCode(err))
}

func TestUnmarshalWrongWireType(t *testing.T) {
	// graph (field 7) encoded as a varint
	var b []byte
	b = protowire.AppendTag(b, 7, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)

	_, err := Unmarshal(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDecodeFailure))
}

func TestUnmarshalSkipsUnknownFields(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, 99, protowire.BytesType)
	b = protowire.AppendString(b, "ignored")
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendString(b, "producer")

	m, err := Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, "producer", m.ProducerName)
}

func TestUnmarshalUnpackedRepeated(t *testing.T) {
	// Attribute with ints written one element per tag, as older writers do.
	var attr []byte
	attr = appendStringField(attr, 1, "pads")
	for _, v := range []int64{1, 2, 3} {
		attr = protowire.AppendTag(attr, 8, protowire.VarintType)
		attr = protowire.AppendVarint(attr, uint64(v))
	}
	for _, v := range []float32{0.25, 4} {
		attr = protowire.AppendTag(attr, 7, protowire.Fixed32Type)
		attr = protowire.AppendFixed32(attr, math.Float32bits(v))
	}

	var node []byte
	node = appendStringField(node, 4, "Pad")
	node = appendMessage(node, 5, attr)
	var graph []byte
	graph = appendMessage(graph, 1, node)
	var model []byte
	model = appendMessage(model, 7, graph)

	m, err := Unmarshal(model)
	require.NoError(t, err)
	require.Len(t, m.Graph.Nodes, 1)
	require.Len(t, m.Graph.Nodes[0].Attributes, 1)
	got := m.Graph.Nodes[0].Attributes[0]
	assert.Equal(t, []int64{1, 2, 3}, got.Ints)
	assert.Equal(t, []float32{0.25, 4}, got.Floats)
}

func TestUnmarshalBadPackedFixed32(t *testing.T) {
	var attr []byte
	attr = appendMessage(attr, 7, []byte{1, 2, 3})
	var node []byte
	node = appendMessage(node, 5, attr)
	var graph []byte
	graph = appendMessage(graph, 1, node)
	var model []byte
	model = appendMessage(model, 7, graph)

	_, err := Unmarshal(model)
	assert.True(t, errors.Is(err, errors.ErrCodeDecodeFailure))
}

func TestUnmarshalCopiesBytes(t *testing.T) {
	m := &ModelProto{Graph: &GraphProto{Initializers: []TensorProto{{
		Name:    "W",
		RawData: []byte{1, 2, 3, 4},
	}}}}
	data := Marshal(m)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	for i := range data {
		data[i] = 0
	}
	assert.Equal(t, []byte{1, 2, 3, 4}, got.Graph.Initializers[0].RawData)
}

func TestTensorPayload(t *testing.T) {
	tests := []struct {
		name   string
		tensor TensorProto
		want   []byte
	}{
		{"raw", TensorProto{RawData: []byte{9, 8}, FloatData: []float32{1}}, []byte{9, 8}},
		{"float", TensorProto{FloatData: []float32{1}}, []byte{0x00, 0x00, 0x80, 0x3f}},
		{"int32", TensorProto{Int32Data: []int32{-1}}, []byte{0xff, 0xff, 0xff, 0xff}},
		{"int64", TensorProto{Int64Data: []int64{2}}, []byte{2, 0, 0, 0, 0, 0, 0, 0}},
		{"double", TensorProto{DoubleData: []float64{1}}, []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f}},
		{"uint64", TensorProto{Uint64Data: []uint64{258}}, []byte{2, 1, 0, 0, 0, 0, 0, 0}},
		{"empty", TensorProto{}, nil},
		{"strings", TensorProto{StringData: [][]byte{[]byte("x")}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tensor.Payload())
		})
	}
}

func TestTensorNumElements(t *testing.T) {
	assert.Equal(t, int64(1), (&TensorProto{}).NumElements())
	assert.Equal(t, int64(24), (&TensorProto{Dims: []int64{2, 3, 4}}).NumElements())
	assert.Equal(t, int64(0), (&TensorProto{Dims: []int64{0, 5}}).NumElements())
}

func TestValueInfoShape(t *testing.T) {
	m := sampleModel()
	assert.Equal(t, []int64{-1, 3}, m.Graph.Inputs[0].Shape())
	assert.Nil(t, m.Graph.Outputs[0].Shape())
}

func TestModelOpset(t *testing.T) {
	m := &ModelProto{OpsetImport: []OperatorSetID{
		{Domain: "com.microsoft", Version: 1},
		{Domain: "ai.onnx", Version: 13},
	}}
	assert.Equal(t, int64(13), m.Opset())
	assert.Equal(t, int64(0), (&ModelProto{}).Opset())
}
