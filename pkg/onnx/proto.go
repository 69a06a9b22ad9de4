package onnx

// ModelProto is the top-level model record.
type ModelProto struct {
	IRVersion       int64
	OpsetImport     []OperatorSetID
	ProducerName    string
	ProducerVersion string
	Domain          string
	ModelVersion    int64
	DocString       string
	Graph           *GraphProto
	MetadataProps   []StringStringEntry
}

// GraphProto is a computation graph.
type GraphProto struct {
	Name         string
	Nodes        []NodeProto
	Initializers []TensorProto
	DocString    string
	Inputs       []ValueInfoProto
	Outputs      []ValueInfoProto
	ValueInfo    []ValueInfoProto
}

// NodeProto is a single operation record. Inputs and Outputs are tensor
// names in positional order; an empty input name marks an optional input
// that is not supplied.
type NodeProto struct {
	Inputs     []string
	Outputs    []string
	Name       string
	OpType     string
	Domain     string
	Attributes []AttributeProto
	DocString  string
}

// TensorProto is a constant tensor, used for initializers and tensor-valued
// attributes.
type TensorProto struct {
	Dims         []int64
	DataType     int32
	FloatData    []float32
	Int32Data    []int32
	StringData   [][]byte
	Int64Data    []int64
	Name         string
	DocString    string
	RawData      []byte
	DoubleData   []float64
	Uint64Data   []uint64
	ExternalData []StringStringEntry
	DataLocation int32
}

// ValueInfoProto declares a named value with optional type information.
type ValueInfoProto struct {
	Name      string
	Type      *TypeProto
	DocString string
}

// TypeProto carries the type of a value. Only tensor types are decoded.
type TypeProto struct {
	TensorType *TensorTypeProto
	Denotation string
}

// TensorTypeProto is an element type plus an optional shape.
type TensorTypeProto struct {
	ElemType int32
	Shape    *TensorShapeProto
}

// TensorShapeProto is an ordered list of dimensions.
type TensorShapeProto struct {
	Dims []DimensionProto
}

// DimensionProto is either a fixed size (DimValue) or a symbolic one
// (DimParam). Both empty means unknown.
type DimensionProto struct {
	DimValue int64
	DimParam string
}

// AttributeProto is a named attribute of a node. Type says which of the
// payload fields is meaningful.
type AttributeProto struct {
	Name      string
	F         float32
	I         int64
	S         []byte
	T         *TensorProto
	G         *GraphProto
	Floats    []float32
	Ints      []int64
	Strings   [][]byte
	Tensors   []TensorProto
	Graphs    []GraphProto
	DocString string
	Type      int32
	RefAttr   string
}

// OperatorSetID identifies an imported operator set.
type OperatorSetID struct {
	Domain  string
	Version int64
}

// StringStringEntry is a key-value pair.
type StringStringEntry struct {
	Key   string
	Value string
}

// Tensor element types (TensorProto.DataType).
const (
	TensorProtoUndefined  = 0
	TensorProtoFloat      = 1
	TensorProtoUint8      = 2
	TensorProtoInt8       = 3
	TensorProtoUint16     = 4
	TensorProtoInt16      = 5
	TensorProtoInt32      = 6
	TensorProtoInt64      = 7
	TensorProtoString     = 8
	TensorProtoBool       = 9
	TensorProtoFloat16    = 10
	TensorProtoDouble     = 11
	TensorProtoUint32     = 12
	TensorProtoUint64     = 13
	TensorProtoComplex64  = 14
	TensorProtoComplex128 = 15
	TensorProtoBfloat16   = 16
)

// Tensor data locations (TensorProto.DataLocation).
const (
	DataLocationDefault  = 0
	DataLocationExternal = 1
)

// Attribute types (AttributeProto.Type).
const (
	AttributeProtoUndefined     = 0
	AttributeProtoFloat         = 1
	AttributeProtoInt           = 2
	AttributeProtoString        = 3
	AttributeProtoTensor        = 4
	AttributeProtoGraph         = 5
	AttributeProtoFloats        = 6
	AttributeProtoInts          = 7
	AttributeProtoStrings       = 8
	AttributeProtoTensors       = 9
	AttributeProtoGraphs        = 10
	AttributeProtoSparseTensor  = 11
	AttributeProtoSparseTensors = 12
	AttributeProtoTypeProto     = 13
	AttributeProtoTypeProtos    = 14
)

// Opset returns the version of the default ("" or "ai.onnx") operator set,
// or 0 if the model does not import it.
func (m *ModelProto) Opset() int64 {
	for _, opset := range m.OpsetImport {
		if opset.Domain == "" || opset.Domain == "ai.onnx" {
			return opset.Version
		}
	}
	return 0
}

// Shape returns the declared dimensions of a tensor-typed value, with
// symbolic dimensions reported as -1. It returns nil when the value has no
// tensor shape.
func (v *ValueInfoProto) Shape() []int64 {
	if v.Type == nil || v.Type.TensorType == nil || v.Type.TensorType.Shape == nil {
		return nil
	}
	dims := make([]int64, len(v.Type.TensorType.Shape.Dims))
	for i, d := range v.Type.TensorType.Shape.Dims {
		if d.DimParam != "" {
			dims[i] = -1
			continue
		}
		dims[i] = d.DimValue
	}
	return dims
}
