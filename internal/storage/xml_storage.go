package storage

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iliyamo/cinema-planner/internal/planner"
)

// Saver persists a planner state.
type Saver interface {
	Save(p planner.ReadOnlyPlanner) error
}

// Storage loads and saves the planner at one path.
type Storage interface {
	Saver
	Load() (*planner.Planner, error)
	Path() string
}

// XMLStorage keeps the planner as a plaintext XML document.
type XMLStorage struct {
	path string
	opts []planner.Option // applied to planners built by Load
}

// NewXMLStorage returns storage for path. opts configure loaded planners.
func NewXMLStorage(path string, opts ...planner.Option) *XMLStorage {
	return &XMLStorage{path: path, opts: opts}
}

func (s *XMLStorage) Path() string { return s.path }

// Load reads and parses the data file. A missing file gives ErrFileNotFound.
func (s *XMLStorage) Load() (*planner.Planner, error) {
	data, err := readFile(s.path)
	if err != nil {
		return nil, err
	}
	return decode(s.path, data, s.opts...)
}

// Save replaces the data file with the serialized state of p.
func (s *XMLStorage) Save(p planner.ReadOnlyPlanner) error {
	data, err := encode(p)
	if err != nil {
		return &IOError{Op: "encode", Path: s.path, Err: err}
	}
	return writeFile(s.path, data)
}

// Load reads the plaintext planner at path.
func Load(path string) (*planner.Planner, error) {
	return NewXMLStorage(path).Load()
}

// Save writes p as plaintext XML to path.
func Save(p planner.ReadOnlyPlanner, path string) error {
	return NewXMLStorage(path).Save(p)
}

func encode(p planner.ReadOnlyPlanner) ([]byte, error) {
	body, err := xml.MarshalIndent(toDocument(p), "", "  ")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body) + 1)
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func decode(path string, data []byte, opts ...planner.Option) (*planner.Planner, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &FormatError{Path: path, Entity: "planner", Index: -1, Err: ErrEmptyDocument}
	}
	var doc xmlPlanner
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Path: path, Entity: "planner", Index: -1, Err: err}
	}
	return fromDocument(path, doc, opts...)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, ErrFileNotFound)
	}
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &IOError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
