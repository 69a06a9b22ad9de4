package dot

import (
	"github.com/tcgraph/tcgraph/pkg/errors"
	"github.com/tcgraph/tcgraph/pkg/observability"
)

// Options configures DOT rendering.
type Options struct {
	// ShowValues draws value nodes and the edges between values and
	// operations. When false only operation boxes are drawn.
	ShowValues bool
	// ShowEdgeIndices labels edges with the slot they connect ("in0", "out1").
	ShowEdgeIndices bool
	// LeftToRight lays the graph out horizontally (rankdir=LR).
	LeftToRight bool
	// ShowAttrs includes attribute summaries in operation labels.
	ShowAttrs bool
	// MaxAttrItems caps attribute lines per operation and elements per list.
	// 0 means unlimited.
	MaxAttrItems int
	// MaxAttrChars caps the attribute text per operation. 0 means unlimited.
	MaxAttrChars int

	// Hooks receives render events. Nil means no events.
	Hooks observability.RenderHooks
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		ShowValues:   true,
		ShowAttrs:    true,
		MaxAttrItems: 16,
		MaxAttrChars: 256,
	}
}

// Validate rejects negative budgets with ErrCodeInvalidInput.
func (o Options) Validate() error {
	if o.MaxAttrItems < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max attribute items must be >= 0, got %d", o.MaxAttrItems)
	}
	if o.MaxAttrChars < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max attribute chars must be >= 0, got %d", o.MaxAttrChars)
	}
	return nil
}

func (o Options) hooks() observability.RenderHooks {
	if o.Hooks == nil {
		return observability.NoopRenderHooks{}
	}
	return o.Hooks
}
