package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"
)

// Fingerprint hashes the full contents of path. Refresh uses it to decide
// whether a source actually changed before paying for a reload.
func Fingerprint(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingSource, path)
	}
	defer func() { _ = f.Close() }()

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrMissingSource, path, err)
	}
	return h.Sum64(), nil
}
