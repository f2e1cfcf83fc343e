package db

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileName = "db.json"

// Store owns the backing JSON file. Each View/Update re-reads the file,
// runs the callback against the decoded Document, and (for Update)
// rewrites the file in full. The mutex covers the whole
// read-mutate-write sequence so concurrent requests cannot lose updates.
type Store struct {
	path string

	mu sync.Mutex
}

// Open ensures the data directory exists and that the backing file holds
// a parseable Document, creating an empty one if the file is missing.
// A present-but-corrupt file is a startup error; no repair is attempted.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{path: filepath.Join(dir, fileName)}

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	if err := s.write(doc); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// View runs fn against a freshly loaded Document. Mutations made by fn
// are discarded.
func (s *Store) View(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	return fn(&doc)
}

// Update runs fn against a freshly loaded Document and persists the
// result. If fn returns an error nothing is written.
func (s *Store) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.write(doc)
}

func (s *Store) read() (Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultDocument(), nil
		}
		return Document{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return defaultDocument(), nil
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	doc.normalize()
	return doc, nil
}

func (s *Store) write(doc Document) error {
	doc.normalize()
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
