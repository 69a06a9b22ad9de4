package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/minio/highwayhash"
	"github.com/viant/afs"

	"github.com/tcgraph/tcgraph/pkg/errors"
)

// fingerprintKey seeds the model fingerprint. Changing it changes every
// fingerprint shown by inspect.
var fingerprintKey = []byte("tcgraph-model-fingerprint-key-01")

// readSource downloads the model at location. Plain paths are read from the
// local filesystem; URLs (file://, mem://, s3://, ...) go through whatever
// storage manager afs has registered for their scheme.
func readSource(ctx context.Context, fs afs.Service, location string) ([]byte, error) {
	url := location
	if !strings.Contains(location, "://") {
		abs, err := filepath.Abs(location)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", location)
		}
		url = abs
	}

	ok, err := fs.Exists(ctx, url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "stat %s", location)
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeFileNotFound, "model %s not found", location)
	}

	data, err := fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", location)
	}
	return data, nil
}

// fingerprint returns a 64-bit HighwayHash of the serialized model.
func fingerprint(data []byte) (uint64, error) {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "fingerprint")
	}
	if _, err := h.Write(data); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "fingerprint")
	}
	return h.Sum64(), nil
}
