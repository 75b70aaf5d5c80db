package services

import (
	"context"
	"path/filepath"

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
)

// mockParser synthesises records keyed by file base name and tracks
// which files it was asked to parse.
type mockParser struct {
	records  map[string]*domain.Record
	failWith map[string]error
	calls    []string
}

func newMockParser() *mockParser {
	return &mockParser{
		records:  make(map[string]*domain.Record),
		failWith: make(map[string]error),
	}
}

func (m *mockParser) addModel(base string, score, rmsd float64) {
	r := domain.NewRecord(base)
	r.SetNumber(domain.TotalScore, score)
	r.SetNumber("loop_rmsd", rmsd)
	m.records[base] = r
}

func (m *mockParser) ParseFile(_ context.Context, path string) (*domain.Record, []error, error) {
	base := filepath.Base(path)
	m.calls = append(m.calls, base)

	if err, ok := m.failWith[base]; ok {
		return nil, nil, err
	}
	if r, ok := m.records[base]; ok {
		return r, nil, nil
	}

	r := domain.NewRecord(base)
	r.SetNumber(domain.TotalScore, -300)
	r.SetNumber("loop_rmsd", 1)
	return r, nil, nil
}

// mockCache is an in-memory cache store.
type mockCache struct {
	records map[string][]*domain.Record
	saved   map[string][]*domain.Record
	loadErr error
	saveErr error
}

func newMockCache() *mockCache {
	return &mockCache{
		records: make(map[string][]*domain.Record),
		saved:   make(map[string][]*domain.Record),
	}
}

func (m *mockCache) Load(_ context.Context, directory string) ([]*domain.Record, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	records, ok := m.records[directory]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return records, nil
}

func (m *mockCache) Save(_ context.Context, directory string, records []*domain.Record) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved[directory] = records
	return nil
}

// mockAnnotations is an in-memory annotation store.
type mockAnnotations struct {
	notes    map[string]string
	reps     map[string]*int
	notesErr error
	repErr   error
	saveErr  error
}

func newMockAnnotations() *mockAnnotations {
	return &mockAnnotations{
		notes: make(map[string]string),
		reps:  make(map[string]*int),
	}
}

func (m *mockAnnotations) LoadNotes(directory string) (string, error) {
	if m.notesErr != nil {
		return "", m.notesErr
	}
	return m.notes[directory], nil
}

func (m *mockAnnotations) SaveNotes(directory, notes string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.notes[directory] = notes
	return nil
}

func (m *mockAnnotations) LoadRepresentative(directory string) (*int, error) {
	if m.repErr != nil {
		return nil, m.repErr
	}
	return m.reps[directory], nil
}

func (m *mockAnnotations) SaveRepresentative(directory string, index *int) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.reps[directory] = index
	return nil
}
