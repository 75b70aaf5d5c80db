package driven

import (
	"context"

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
)

// CacheStore persists one directory's parsed metric records so later
// loads can skip re-parsing. The cache is a best-effort accelerator:
// it is keyed purely by model file base name, never detects stale or
// deleted files, and a corrupt cache reads as a miss, not a failure.
type CacheStore interface {
	// Load returns the cached records for a directory, in their
	// stored order. It returns domain.ErrCacheMiss when no usable
	// cache exists, including when the cache is corrupt.
	Load(ctx context.Context, directory string) ([]*domain.Record, error)

	// Save rewrites the directory's cache with the full record set.
	// The previous cache, if any, is replaced outright.
	Save(ctx context.Context, directory string, records []*domain.Record) error
}
