package graph

import "github.com/tcgraph/tcgraph/pkg/errors"

// OpKind is the closed set of supported operator kinds.
type OpKind int

const (
	OpAdd OpKind = iota + 1
	OpMul
	OpConv
	OpRelu
	OpMatMul
	OpGemm
	OpTranspose
	OpSub
	OpDiv
	OpSigmoid
	OpTanh
	OpSoftmax
	OpReshape
	OpFlatten
	OpConcat
	OpMaxPool
	OpAveragePool
	OpGlobalAveragePool
	OpBatchNormalization
	OpIdentity
	OpConstant
	OpGather
	OpUnsqueeze
	OpSqueeze
	OpDropout
	OpLeakyRelu
	OpClip
)

// opKindNames holds the operator type strings as they appear in models.
var opKindNames = map[OpKind]string{
	OpAdd:                "Add",
	OpMul:                "Mul",
	OpConv:               "Conv",
	OpRelu:               "Relu",
	OpMatMul:             "MatMul",
	OpGemm:               "Gemm",
	OpTranspose:          "Transpose",
	OpSub:                "Sub",
	OpDiv:                "Div",
	OpSigmoid:            "Sigmoid",
	OpTanh:               "Tanh",
	OpSoftmax:            "Softmax",
	OpReshape:            "Reshape",
	OpFlatten:            "Flatten",
	OpConcat:             "Concat",
	OpMaxPool:            "MaxPool",
	OpAveragePool:        "AveragePool",
	OpGlobalAveragePool:  "GlobalAveragePool",
	OpBatchNormalization: "BatchNormalization",
	OpIdentity:           "Identity",
	OpConstant:           "Constant",
	OpGather:             "Gather",
	OpUnsqueeze:          "Unsqueeze",
	OpSqueeze:            "Squeeze",
	OpDropout:            "Dropout",
	OpLeakyRelu:          "LeakyRelu",
	OpClip:               "Clip",
}

var opKindsByName = func() map[string]OpKind {
	m := make(map[string]OpKind, len(opKindNames))
	for k, s := range opKindNames {
		m[s] = k
	}
	return m
}()

func (k OpKind) String() string {
	if s, ok := opKindNames[k]; ok {
		return s
	}
	return "<unknown>"
}

// ParseOpKind resolves an operator type string. Matching is case-sensitive,
// as in the model format. Unknown strings fail with
// ErrCodeUnsupportedOperatorKind carrying the string.
func ParseOpKind(s string) (OpKind, error) {
	if k, ok := opKindsByName[s]; ok {
		return k, nil
	}
	return 0, errors.New(errors.ErrCodeUnsupportedOperatorKind, "unsupported operator kind %q", s)
}

// OpKinds lists every supported kind in declaration order.
func OpKinds() []OpKind {
	out := make([]OpKind, 0, len(opKindNames))
	for k := OpAdd; k <= OpClip; k++ {
		out = append(out, k)
	}
	return out
}
