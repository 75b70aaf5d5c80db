package driving

import (
	"context"

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
)

// ProgressFunc reports per-file parsing progress during a load.
// done counts files parsed so far out of total uncached files.
type ProgressFunc func(done, total int, file string)

// LoadOptions controls a group load.
type LoadOptions struct {
	// UseCache enables the per-directory metric cache. When false
	// every model file is re-parsed and the cache rewritten.
	UseCache bool

	// OnProgress, when set, receives per-file progress updates while
	// uncached files are parsed. Parsing is slow for large batches.
	OnProgress ProgressFunc
}

// GroupLoader loads model groups from directories.
type GroupLoader interface {
	// LoadGroup scans one directory into a group, merging previously
	// cached records with freshly parsed ones. It fails with a
	// *domain.DirectoryError for unusable directories and a
	// *domain.MetricError when fewer than two numeric metrics are
	// found.
	LoadGroup(ctx context.Context, directory string, opts LoadOptions) (*domain.Group, error)

	// LoadGroups loads several directories in the given order. The
	// first failure aborts the whole call; there is no partial
	// result.
	LoadGroups(ctx context.Context, directories []string, opts LoadOptions) (*domain.Collection, error)
}
