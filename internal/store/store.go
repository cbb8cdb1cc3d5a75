// Package store handles file I/O at the pipeline boundary: JSON data
// files from the crawler and CSV tables for the plotting stage.
package store

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Store reads and writes pipeline data files.
type Store struct {
	log *zap.Logger
}

// New creates a store.
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{log: logger}
}

// LoadJSON reads a JSON file into v. Crawled files arrive with mixed
// encodings, so a UTF-8 BOM is stripped and non-UTF-8 content is decoded
// as Latin-1 before parsing.
func (s *Store) LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		data = latin1ToUTF8(data)
		s.log.Debug("decoded file as latin-1", zap.String("path", path))
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// SaveJSON writes v as indented JSON, creating parent directories as
// needed.
func (s *Store) SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.log.Debug("saved JSON", zap.String("path", path))
	return nil
}

// WriteCSV writes a header row plus data rows, creating parent
// directories as needed. An empty row set still produces a file with the
// header so downstream readers see the schema.
func (s *Store) WriteCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows to %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	s.log.Debug("saved CSV", zap.String("path", path), zap.Int("rows", len(rows)))
	return nil
}

// ReadCSV reads a CSV file, returning the header and the data rows.
func (s *Store) ReadCSV(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}
	return records[0], records[1:], nil
}

// Conferences returns the sorted conference names found in dir by
// stripping suffix from matching file names. A missing directory yields an
// empty list, not an error.
func (s *Store) Conferences(dir, suffix string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var conferences []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), suffix)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		conferences = append(conferences, name)
	}

	sort.Strings(conferences)
	return conferences
}

// EnsureDirs creates the given directories under root.
func EnsureDirs(root string, dirs ...string) error {
	for _, dir := range dirs {
		path := dir
		if !filepath.IsAbs(dir) {
			path = filepath.Join(root, dir)
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
	}
	return nil
}

// latin1ToUTF8 reinterprets bytes as Latin-1 code points. Every byte maps
// to a rune, so this cannot fail; it only needs to make the parser happy
// for the handful of crawled files with stray high bytes.
func latin1ToUTF8(data []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(data) + len(data)/8)
	for _, b := range data {
		buf.WriteRune(rune(b))
	}
	return buf.Bytes()
}
