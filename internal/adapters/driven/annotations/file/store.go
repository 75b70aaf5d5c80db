// Package file implements the annotation store as plain-text sidecar
// files living next to the models: notes.txt for free-text notes and
// representative.txt for the pinned representative row index. An
// absent sidecar means the default; an empty annotation deletes its
// sidecar so "no notes" directories stay clean.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kortemme-lab/smd-cli/internal/core/ports/driven"
)

const (
	// NotesFile is the notes sidecar base name.
	NotesFile = "notes.txt"

	// RepresentativeFile is the representative sidecar base name.
	RepresentativeFile = "representative.txt"
)

// Ensure Store implements the interface.
var _ driven.AnnotationStore = (*Store)(nil)

// Store reads and writes annotation sidecar files. Each mutation is a
// full synchronous rewrite; the store assumes a single process owns
// the directory.
type Store struct{}

// NewStore creates a sidecar annotation store.
func NewStore() *Store {
	return &Store{}
}

// NotesPath returns the notes sidecar path for a directory.
func (s *Store) NotesPath(directory string) string {
	return filepath.Join(directory, NotesFile)
}

// RepresentativePath returns the representative sidecar path for a
// directory.
func (s *Store) RepresentativePath(directory string) string {
	return filepath.Join(directory, RepresentativeFile)
}

// LoadNotes implements driven.AnnotationStore.
func (s *Store) LoadNotes(directory string) (string, error) {
	data, err := os.ReadFile(s.NotesPath(directory))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading notes sidecar: %w", err)
	}
	return string(data), nil
}

// SaveNotes implements driven.AnnotationStore.
func (s *Store) SaveNotes(directory, notes string) error {
	path := s.NotesPath(directory)
	if notes == "" {
		return removeIfPresent(path)
	}
	if err := os.WriteFile(path, []byte(notes), 0644); err != nil {
		return fmt.Errorf("writing notes sidecar: %w", err)
	}
	return nil
}

// LoadRepresentative implements driven.AnnotationStore.
func (s *Store) LoadRepresentative(directory string) (*int, error) {
	data, err := os.ReadFile(s.RepresentativePath(directory))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading representative sidecar: %w", err)
	}

	index, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing representative sidecar: %w", err)
	}
	return &index, nil
}

// SaveRepresentative implements driven.AnnotationStore.
func (s *Store) SaveRepresentative(directory string, index *int) error {
	path := s.RepresentativePath(directory)
	if index == nil {
		return removeIfPresent(path)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(*index)), 0644); err != nil {
		return fmt.Errorf("writing representative sidecar: %w", err)
	}
	return nil
}

// removeIfPresent deletes a sidecar, tolerating its absence.
func removeIfPresent(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing sidecar: %w", err)
	}
	return nil
}
