package attr

import (
	"strconv"
	"strings"
)

// String formats the attribute as name=value with every list element shown.
func (a Attribute) String() string {
	return a.name + "=" + a.FormatValue(0)
}

// FormatValue formats the attribute value. Strings are double-quoted, lists
// are bracketed and comma-separated. A maxItems above zero cuts lists after
// that many elements and marks the cut with ",...".
func (a Attribute) FormatValue(maxItems int) string {
	switch a.kind {
	case KindInt:
		return strconv.FormatInt(a.i, 10)
	case KindFloat:
		return formatFloat(a.f)
	case KindString:
		return strconv.Quote(a.s)
	case KindInts:
		return joinList(a.ints, maxItems, func(v int64) string { return strconv.FormatInt(v, 10) })
	case KindFloats:
		return joinList(a.floats, maxItems, formatFloat)
	case KindStrings:
		return joinList(a.strings, maxItems, strconv.Quote)
	}
	return "<undefined>"
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func joinList[T any](vs []T, maxItems int, format func(T) string) string {
	n := len(vs)
	if maxItems > 0 && maxItems < n {
		n = maxItems
	}
	var b strings.Builder
	b.WriteByte('[')
	for i := range n {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(format(vs[i]))
	}
	if n < len(vs) {
		b.WriteString(",...")
	}
	b.WriteByte(']')
	return b.String()
}
