package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Backend is the storage contract Store drives from its owning
// goroutine: load the whole document, and persist it back.
type Backend interface {
	Load() (Document, error)
	Save(Document) error
}

// FileBackend persists the document as one JSON file, writing through a
// temp file plus rename so a crash mid-write never leaves a truncated
// or partially-written document behind. No SQL driver appears anywhere
// in the example pack (see DESIGN.md), so a flat JSON file grounded on
// gherlein-gocat's pkg/config/storage.go SaveToFile/LoadFromFile is the
// idiomatic substitute.
type FileBackend struct {
	Path string
}

// NewFileBackend builds a FileBackend writing to path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

// Load reads and unmarshals the document, returning a fresh empty
// Document if the file does not yet exist.
func (b *FileBackend) Load() (Document, error) {
	data, err := os.ReadFile(b.Path)
	if os.IsNotExist(err) {
		return newDocument(), nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("store: read %s: %w", b.Path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("store: unmarshal %s: %w", b.Path, err)
	}
	return doc, nil
}

// Save marshals doc and writes it atomically: encode to a sibling temp
// file, fsync, then rename over the real path.
func (b *FileBackend) Save(doc Document) error {
	dir := filepath.Dir(b.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal document: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*.tmp")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("store: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, b.Path); err != nil {
		return fmt.Errorf("store: rename into place: %w", err)
	}
	return nil
}
