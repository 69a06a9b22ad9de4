package attr

import (
	"github.com/tcgraph/tcgraph/pkg/errors"
	"github.com/tcgraph/tcgraph/pkg/onnx"
)

var protoTypeNames = map[int32]string{
	onnx.AttributeProtoUndefined:     "UNDEFINED",
	onnx.AttributeProtoFloat:         "FLOAT",
	onnx.AttributeProtoInt:           "INT",
	onnx.AttributeProtoString:        "STRING",
	onnx.AttributeProtoTensor:        "TENSOR",
	onnx.AttributeProtoGraph:         "GRAPH",
	onnx.AttributeProtoFloats:        "FLOATS",
	onnx.AttributeProtoInts:          "INTS",
	onnx.AttributeProtoStrings:       "STRINGS",
	onnx.AttributeProtoTensors:       "TENSORS",
	onnx.AttributeProtoGraphs:        "GRAPHS",
	onnx.AttributeProtoSparseTensor:  "SPARSE_TENSOR",
	onnx.AttributeProtoSparseTensors: "SPARSE_TENSORS",
	onnx.AttributeProtoTypeProto:     "TYPE_PROTO",
	onnx.AttributeProtoTypeProtos:    "TYPE_PROTOS",
}

func protoTypeName(t int32) string {
	if s, ok := protoTypeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Parse decodes source attribute records into a Map.
//
// Each record is decoded by its declared type. Records written without a type
// (older producers) take the kind of their single populated field. Tensor,
// graph and type-valued attributes are not supported and fail with
// ErrCodeUnsupportedAttributeType naming the attribute. When a name repeats,
// the last record wins.
func Parse(records []onnx.AttributeProto) (Map, error) {
	m := make(Map, len(records))
	for i := range records {
		a, err := decode(&records[i])
		if err != nil {
			return nil, err
		}
		m[a.name] = a
	}
	return m, nil
}

func decode(p *onnx.AttributeProto) (Attribute, error) {
	if p.Name == "" {
		return Attribute{}, errors.New(errors.ErrCodeInvalidInput, "attribute name must not be empty")
	}
	typ := p.Type
	if typ == onnx.AttributeProtoUndefined {
		typ = inferType(p)
	}
	switch typ {
	case onnx.AttributeProtoInt:
		return Int(p.Name, p.I), nil
	case onnx.AttributeProtoFloat:
		return Float(p.Name, p.F), nil
	case onnx.AttributeProtoString:
		return String(p.Name, string(p.S)), nil
	case onnx.AttributeProtoInts:
		return Ints(p.Name, p.Ints), nil
	case onnx.AttributeProtoFloats:
		return Floats(p.Name, p.Floats), nil
	case onnx.AttributeProtoStrings:
		strs := make([]string, len(p.Strings))
		for i, s := range p.Strings {
			strs[i] = string(s)
		}
		return Attribute{name: p.Name, kind: KindStrings, strings: strs}, nil
	}
	return Attribute{}, errors.New(errors.ErrCodeUnsupportedAttributeType,
		"attribute %q has unsupported type %s", p.Name, protoTypeName(p.Type))
}

// inferType returns the type implied by the only populated payload field, or
// AttributeProtoUndefined when none or several are set.
func inferType(p *onnx.AttributeProto) int32 {
	var found []int32
	if p.F != 0 {
		found = append(found, onnx.AttributeProtoFloat)
	}
	if p.I != 0 {
		found = append(found, onnx.AttributeProtoInt)
	}
	if len(p.S) > 0 {
		found = append(found, onnx.AttributeProtoString)
	}
	if p.T != nil {
		found = append(found, onnx.AttributeProtoTensor)
	}
	if p.G != nil {
		found = append(found, onnx.AttributeProtoGraph)
	}
	if len(p.Floats) > 0 {
		found = append(found, onnx.AttributeProtoFloats)
	}
	if len(p.Ints) > 0 {
		found = append(found, onnx.AttributeProtoInts)
	}
	if len(p.Strings) > 0 {
		found = append(found, onnx.AttributeProtoStrings)
	}
	if len(p.Tensors) > 0 {
		found = append(found, onnx.AttributeProtoTensors)
	}
	if len(p.Graphs) > 0 {
		found = append(found, onnx.AttributeProtoGraphs)
	}
	if len(found) != 1 {
		return onnx.AttributeProtoUndefined
	}
	return found[0]
}

// Encode returns the source record for an attribute. Parse(Encode(a))
// reproduces a.
func Encode(a Attribute) onnx.AttributeProto {
	p := onnx.AttributeProto{Name: a.name}
	switch a.kind {
	case KindInt:
		p.Type, p.I = onnx.AttributeProtoInt, a.i
	case KindFloat:
		p.Type, p.F = onnx.AttributeProtoFloat, a.f
	case KindString:
		p.Type, p.S = onnx.AttributeProtoString, []byte(a.s)
	case KindInts:
		p.Type, p.Ints = onnx.AttributeProtoInts, a.ints
	case KindFloats:
		p.Type, p.Floats = onnx.AttributeProtoFloats, a.floats
	case KindStrings:
		p.Type = onnx.AttributeProtoStrings
		for _, s := range a.strings {
			p.Strings = append(p.Strings, []byte(s))
		}
	}
	return p
}
