package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driven"
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driving"
	"github.com/kortemme-lab/smd-cli/internal/logger"
)

// DefaultModelGlob matches the model files a design pipeline writes,
// compressed or not.
const DefaultModelGlob = "*.pdb*"

// Ensure Loader implements the interface.
var _ driving.GroupLoader = (*Loader)(nil)

// Loader loads model groups from directories, merging cached records
// with freshly parsed ones. Cached records always win for file names
// already cached; changed or deleted files are not detected. That is
// an accepted trade-off of keying the cache by file name alone.
type Loader struct {
	parser      driven.RecordParser
	cache       driven.CacheStore
	annotations driven.AnnotationStore
	glob        string
}

// NewLoader creates a loader. An empty glob falls back to
// DefaultModelGlob.
func NewLoader(
	parser driven.RecordParser,
	cache driven.CacheStore,
	annotations driven.AnnotationStore,
	glob string,
) *Loader {
	if glob == "" {
		glob = DefaultModelGlob
	}
	return &Loader{
		parser:      parser,
		cache:       cache,
		annotations: annotations,
		glob:        glob,
	}
}

// LoadGroup implements driving.GroupLoader.
func (l *Loader) LoadGroup(
	ctx context.Context,
	directory string,
	opts driving.LoadOptions,
) (*domain.Group, error) {
	modelPaths, err := l.findModels(directory)
	if err != nil {
		return nil, err
	}

	cached := l.loadCache(ctx, directory, opts.UseCache)

	// Membership ignores stray cache rows without a path, but they
	// stay in the table.
	cachedPaths := make(map[string]bool, len(cached))
	for _, record := range cached {
		if record.Path != "" {
			cachedPaths[record.Path] = true
		}
	}

	var uncached []string
	for _, path := range modelPaths {
		if !cachedPaths[filepath.Base(path)] {
			uncached = append(uncached, path)
		}
	}

	parsed, err := l.parseAll(ctx, uncached, opts.OnProgress)
	if err != nil {
		return nil, err
	}

	table := domain.NewTable(append(cached, parsed...))
	group := domain.NewGroup(directory, table)
	if err := group.Validate(); err != nil {
		return nil, err
	}

	// Rewrite the cache with the merged table. A failed rewrite costs
	// a reparse next time, nothing more.
	if table.Len() > 0 {
		if err := l.cache.Save(ctx, directory, table.Rows()); err != nil {
			logger.Warn("failed to rewrite cache for %q: %v", directory, err)
		}
	}

	l.loadAnnotations(group)
	return group, nil
}

// LoadGroups implements driving.GroupLoader.
func (l *Loader) LoadGroups(
	ctx context.Context,
	directories []string,
	opts driving.LoadOptions,
) (*domain.Collection, error) {
	collection := domain.NewCollection()
	for _, directory := range directories {
		group, err := l.LoadGroup(ctx, directory, opts)
		if err != nil {
			return nil, err
		}
		collection.Add(group)
	}
	return collection, nil
}

// findModels validates the directory and enumerates its model files,
// non-recursively, in lexical order.
func (l *Loader) findModels(directory string) ([]string, error) {
	info, err := os.Stat(directory)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, &domain.DirectoryError{Directory: directory, Reason: "does not exist"}
	case err != nil:
		return nil, fmt.Errorf("inspecting directory %q: %w", directory, err)
	case !info.IsDir():
		return nil, &domain.DirectoryError{Directory: directory, Reason: "is not a directory"}
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("listing directory %q: %w", directory, err)
	}
	if len(entries) == 0 {
		return nil, &domain.DirectoryError{Directory: directory, Reason: "is empty"}
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := filepath.Match(l.glob, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("matching %q against %q: %w", entry.Name(), l.glob, err)
		}
		if matched {
			paths = append(paths, filepath.Join(directory, entry.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, &domain.DirectoryError{
			Directory: directory,
			Reason:    fmt.Sprintf("contains no model files matching %q", l.glob),
		}
	}
	return paths, nil
}

// loadCache returns previously cached records, or nil when caching is
// disabled or nothing usable exists. Cache failures degrade to a full
// reparse, never to a load failure.
func (l *Loader) loadCache(ctx context.Context, directory string, useCache bool) []*domain.Record {
	if !useCache {
		return nil
	}

	records, err := l.cache.Load(ctx, directory)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Warn("ignoring unreadable cache for %q: %v", directory, err)
		}
		return nil
	}
	logger.Debug("cache for %q holds %d records", directory, len(records))
	return records
}

// parseAll runs the parser over every uncached model file. Unreadable
// files are skipped with a diagnostic; the batch continues.
func (l *Loader) parseAll(
	ctx context.Context,
	paths []string,
	onProgress driving.ProgressFunc,
) ([]*domain.Record, error) {
	var records []*domain.Record
	for i, path := range paths {
		record, extractErrs, err := l.parser.ParseFile(ctx, path)
		if err != nil {
			var readErr *domain.ReadError
			if errors.As(err, &readErr) {
				logger.Warn("skipping model: %v", readErr)
				continue
			}
			return nil, err
		}

		for _, extractErr := range extractErrs {
			logger.Warn("%s: %v", path, extractErr)
		}

		records = append(records, record)
		if onProgress != nil {
			onProgress(i+1, len(paths), path)
		}
	}
	return records, nil
}

// loadAnnotations attaches the sidecar notes and representative
// override. Absent sidecars mean defaults; unreadable ones are treated
// the same way, with a diagnostic.
func (l *Loader) loadAnnotations(group *domain.Group) {
	notes, err := l.annotations.LoadNotes(group.Directory)
	if err != nil {
		logger.Warn("ignoring unreadable notes for %q: %v", group.Directory, err)
		notes = ""
	}
	group.SetNotes(notes)

	rep, err := l.annotations.LoadRepresentative(group.Directory)
	if err != nil {
		logger.Warn("ignoring unreadable representative for %q: %v", group.Directory, err)
		rep = nil
	}
	group.SetRepresentativeOverride(rep)
}
