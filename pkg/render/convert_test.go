package render

import (
	"context"
	"testing"

	"github.com/tcgraph/tcgraph/pkg/errors"
)

func TestToPDFMissingConverter(t *testing.T) {
	orig := rsvgConvert
	rsvgConvert = "tcgraph-no-such-converter"
	t.Cleanup(func() { rsvgConvert = orig })

	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("error = %v, want FILE_NOT_FOUND", err)
	}
	if msg := errors.UserMessage(err); msg == "" {
		t.Error("UserMessage should explain how to install librsvg")
	}
}
