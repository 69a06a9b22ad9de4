// Package attr holds the typed, named attributes attached to graph operations.
//
// An [Attribute] carries exactly one of six value kinds: a 64-bit integer, a
// 32-bit float, a string, or a list of any of those. Attributes are decoded
// from source records with [Parse] and looked up by name with [Find]:
//
//	attrs, err := attr.Parse(node.Attributes)
//	if err != nil {
//	    return err // UNSUPPORTED_ATTRIBUTE_TYPE
//	}
//	if a, ok := attr.Find(attrs, "axis"); ok {
//	    axis, err := attr.As[int64](a)
//	    ...
//	}
//
// Reading an attribute as the wrong type is a caller error and is reported as
// ATTRIBUTE_TYPE_MISMATCH rather than returning a zero value.
package attr
