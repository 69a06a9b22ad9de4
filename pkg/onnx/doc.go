// Package onnx decodes and encodes the subset of the ONNX model format that
// tcgraph consumes.
//
// The decoded form is a plain tree of records: a [ModelProto] holds a
// [GraphProto], which holds graph inputs and outputs ([ValueInfoProto]),
// initializers ([TensorProto]) and operation records ([NodeProto]) with their
// [AttributeProto] lists. Field names and numbers follow onnx.proto; fields
// tcgraph has no use for are skipped on decode.
//
// Wire handling is built on google.golang.org/protobuf/encoding/protowire, so
// no generated code is needed:
//
//	model, err := onnx.Unmarshal(data)
//	if err != nil {
//	    return err // DECODE_FAILURE
//	}
//	for _, node := range model.Graph.Nodes {
//	    fmt.Println(node.Name, node.OpType)
//	}
//
// [Marshal] is the inverse of [Unmarshal] for every decoded field. It is used
// to build test fixtures and the demo model.
package onnx
