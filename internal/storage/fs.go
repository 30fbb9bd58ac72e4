package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FSStore keeps one JSON file per key under base.
type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

func (s *FSStore) path(key string) string {
	return filepath.Join(s.base, filepath.Base(filepath.Clean(key))+".json")
}

func (s *FSStore) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("empty key")
	}
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

// Put replaces the file through a rename, readers see either the old or the
// new payload.
func (s *FSStore) Put(_ context.Context, key string, data []byte) error {
	if key == "" {
		return errors.New("empty key")
	}
	dst := s.path(key)
	tmp, err := os.CreateTemp(s.base, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
