// Package store writes display fragments to disk, one text file per
// output key, for consumption by streaming overlays.
package store

import (
	"os"
	"path/filepath"
)

type TextStore struct {
	Root string // e.g. "output"
}

func NewTextStore(root string) *TextStore {
	return &TextStore{Root: root}
}

func (s *TextStore) Path(key string) string {
	return filepath.Join(s.Root, key+".txt")
}

func (s *TextStore) Exists(key string) bool {
	_, err := os.Stat(s.Path(key))
	return err == nil
}

// Write replaces the file for one output key.
func (s *TextStore) Write(key, value string) error {
	path := s.Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(value), 0o644)
}

// WriteAll writes every key of an output mapping. The first failure stops
// the batch.
func (s *TextStore) WriteAll(values map[string]string) error {
	for key, value := range values {
		if err := s.Write(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Read returns the current contents for one output key.
func (s *TextStore) Read(key string) (string, error) {
	b, err := os.ReadFile(s.Path(key))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
