// Package parser extracts metric records from model files. Model files
// are line-oriented text, optionally gzip-compressed, where specific
// line prefixes carry numeric quality metrics. Which prefixes map to
// which metrics is configuration owned by the metric registry; the
// parser itself is mechanism only.
package parser

import (
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driven"
)

// GzipExtension marks model files that need transparent decompression.
const GzipExtension = ".gz"

// Ensure Parser implements the interface.
var _ driven.RecordParser = (*Parser)(nil)

// Parser parses model files against a metric registry.
type Parser struct {
	registry *domain.Registry
}

// New creates a parser over the given registry.
func New(registry *domain.Registry) *Parser {
	return &Parser{registry: registry}
}

// ParseFile reads one model file and extracts its metric record. The
// record's path field is the file's base name. Unreadable or
// undecompressable files fail with a *domain.ReadError; extraction
// failures on individual metrics are returned alongside a still-valid
// record.
func (p *Parser) ParseFile(ctx context.Context, path string) (*domain.Record, []error, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	lines, err := readLines(path)
	if err != nil {
		return nil, nil, &domain.ReadError{Path: path, Err: err}
	}

	record, extractErrs := p.ParseRecord(lines, filepath.Base(path))
	return record, extractErrs, nil
}

// ParseRecord extracts a record from the lines of one model file.
// For each registered metric the first matching line wins; a metric
// whose matched line will not parse is dropped from the record and
// reported as an extraction error. A file matching no metrics at all
// yields a record holding only its path, which is valid.
func (p *Parser) ParseRecord(lines []string, sourceName string) (*domain.Record, []error) {
	record := domain.NewRecord(sourceName)

	var extractErrs []error
	for _, metric := range p.registry.Metrics() {
		for _, line := range lines {
			if !metric.Match(line) {
				continue
			}
			value, err := metric.Extract(line)
			if err != nil {
				extractErrs = append(extractErrs, err)
			} else {
				record.SetNumber(metric.Name, value)
			}
			break
		}
	}
	return record, extractErrs
}

// readLines reads a model file into lines, decompressing when the file
// carries the gzip extension.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, GzipExtension) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}

	var lines []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
