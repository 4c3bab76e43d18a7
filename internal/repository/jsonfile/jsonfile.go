// Package jsonfile persists the crop collection as a single JSON array in
// one file, mirroring the one-slot key-value layout the product originally
// used. The whole collection is rewritten on every append; concurrent
// writers from separate processes are last-write-wins.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/pavans5097/EVS-pro/internal/domain"
)

// Store implements domain.CropRepository over a single JSON file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a file-backed crop store. The file is created lazily on
// the first append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// List reads the whole collection. A missing or malformed file reads as an
// empty collection; malformed data is logged, never propagated.
func (s *Store) List(ctx context.Context) ([]domain.Crop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

// Append loads the collection, appends, and writes the full collection
// back. Within one process the store lock serializes writers.
func (s *Store) Append(ctx context.Context, crop domain.Crop) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	crops := append(s.load(), crop)

	data, err := json.MarshalIndent(crops, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: failed to encode crops: %w", err)
	}

	// Write-then-rename so a crash mid-write never corrupts the slot.
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("jsonfile: failed to create store directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("jsonfile: failed to write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("jsonfile: failed to replace store: %w", err)
	}
	return nil
}

// FindByID scans the collection for the given id.
func (s *Store) FindByID(ctx context.Context, id string) (domain.Crop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.load() {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Crop{}, domain.ErrCropNotFound
}

// Health reports whether the store directory is usable. A directory that
// does not exist yet is healthy; the first append creates it.
func (s *Store) Health(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("jsonfile: store directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("jsonfile: %s is not a directory", dir)
	}
	return nil
}

func (s *Store) load() []domain.Crop {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var crops []domain.Crop
	if err := json.Unmarshal(data, &crops); err != nil {
		log.Printf("jsonfile: malformed crop store at %s, treating as empty: %v", s.path, err)
		return nil
	}
	return crops
}
