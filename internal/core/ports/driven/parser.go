package driven

import (
	"context"

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
)

// RecordParser extracts a metric record from one model file on disk.
// Implementations handle transparent decompression; a file that cannot
// be read fails with a domain.ReadError so the caller can skip it and
// continue the batch.
type RecordParser interface {
	// ParseFile reads and parses a single model file. The returned
	// extraction errors cover individual metrics whose matched line
	// would not parse; the record itself is still valid.
	ParseFile(ctx context.Context, path string) (*domain.Record, []error, error)
}
