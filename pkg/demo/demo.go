// Package demo builds a small model that uses every required operator kind.
//
// The model has two independent branches:
//
//	X -> conv0 (Conv) -> relu0 (Relu) -> transpose0 (Transpose) -> X_t
//	A -> matmul0 (MatMul) -> add0 (Add) -> mul0 (Mul) -> gemm0 (Gemm) -> Y_gemm
//
// Weights are float32 initializers filled from a fixed-seed generator, so
// [Bytes] returns the same encoding on every call.
package demo

import (
	"encoding/binary"
	"math"
	"math/rand/v2"

	"github.com/tcgraph/tcgraph/pkg/graph/attr"
	"github.com/tcgraph/tcgraph/pkg/onnx"
)

const (
	// DefaultOpset is the default operator set version.
	DefaultOpset = 19

	// DefaultFile is the file name the CLI writes to.
	DefaultFile = "tc_demo.onnx"

	irVersion = 9
	producer  = "tc-demo"
	graphName = "tc_demo_graph"
	seed      = 0
)

// Bytes returns the encoded demo model.
func Bytes(opset int64) []byte {
	return onnx.Marshal(Model(opset))
}

// Model returns the demo model for the given operator set version.
func Model(opset int64) *onnx.ModelProto {
	rng := rand.New(rand.NewPCG(seed, seed))

	initializers := []onnx.TensorProto{
		randomTensor(rng, "W_conv", 4, 3, 3, 3),
		randomTensor(rng, "B_conv", 4),
		randomTensor(rng, "B_matmul", 3, 4),
		randomTensor(rng, "C_add", 2, 4),
		floatTensor("S_mul", nil, []float32{0.5}),
		randomTensor(rng, "B_gemm", 5, 4), // used with transB=1
		randomTensor(rng, "C_gemm", 2, 5),
	}

	nodes := []onnx.NodeProto{
		node("Conv", "conv0", []string{"X", "W_conv", "B_conv"}, []string{"X_conv"},
			attr.Ints("strides", []int64{1, 1}),
			attr.Ints("pads", []int64{1, 1, 1, 1}),
			attr.Ints("dilations", []int64{1, 1}),
			attr.Int("group", 1),
		),
		node("Relu", "relu0", []string{"X_conv"}, []string{"X_relu"}),
		node("Transpose", "transpose0", []string{"X_relu"}, []string{"X_t"},
			attr.Ints("perm", []int64{0, 2, 3, 1}),
		),
		node("MatMul", "matmul0", []string{"A", "B_matmul"}, []string{"Y_mm"}),
		node("Add", "add0", []string{"Y_mm", "C_add"}, []string{"Y_add"}),
		node("Mul", "mul0", []string{"Y_add", "S_mul"}, []string{"Y_mul"}),
		node("Gemm", "gemm0", []string{"Y_mul", "B_gemm", "C_gemm"}, []string{"Y_gemm"},
			attr.Float("alpha", 1.2),
			attr.Float("beta", 0.7),
			attr.Int("transA", 0),
			attr.Int("transB", 1),
		),
	}

	return &onnx.ModelProto{
		IRVersion:    irVersion,
		ProducerName: producer,
		OpsetImport:  []onnx.OperatorSetID{{Version: opset}},
		Graph: &onnx.GraphProto{
			Name:         graphName,
			Nodes:        nodes,
			Initializers: initializers,
			Inputs: []onnx.ValueInfoProto{
				floatValue("X", 1, 3, 8, 8),
				floatValue("A", 2, 3),
			},
			Outputs: []onnx.ValueInfoProto{
				floatValue("Y_gemm", 2, 5),
				floatValue("X_t", 1, 8, 8, 4),
			},
		},
	}
}

func node(opType, name string, inputs, outputs []string, attrs ...attr.Attribute) onnx.NodeProto {
	n := onnx.NodeProto{
		OpType:  opType,
		Name:    name,
		Inputs:  inputs,
		Outputs: outputs,
	}
	for _, a := range attrs {
		n.Attributes = append(n.Attributes, attr.Encode(a))
	}
	return n
}

func randomTensor(rng *rand.Rand, name string, dims ...int64) onnx.TensorProto {
	n := int64(1)
	for _, d := range dims {
		n *= d
	}
	values := make([]float32, n)
	for i := range values {
		values[i] = float32(rng.NormFloat64())
	}
	return floatTensor(name, dims, values)
}

// floatTensor stores values as little-endian raw data.
func floatTensor(name string, dims []int64, values []float32) onnx.TensorProto {
	raw := make([]byte, 0, 4*len(values))
	for _, v := range values {
		raw = binary.LittleEndian.AppendUint32(raw, math.Float32bits(v))
	}
	return onnx.TensorProto{
		Name:     name,
		Dims:     dims,
		DataType: onnx.TensorProtoFloat,
		RawData:  raw,
	}
}

func floatValue(name string, dims ...int64) onnx.ValueInfoProto {
	shape := &onnx.TensorShapeProto{Dims: make([]onnx.DimensionProto, len(dims))}
	for i, d := range dims {
		shape.Dims[i] = onnx.DimensionProto{DimValue: d}
	}
	return onnx.ValueInfoProto{
		Name: name,
		Type: &onnx.TypeProto{TensorType: &onnx.TensorTypeProto{
			ElemType: onnx.TensorProtoFloat,
			Shape:    shape,
		}},
	}
}
