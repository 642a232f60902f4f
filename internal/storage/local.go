package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Store persists uploaded documents and returns an opaque handle.
type Store interface {
	Save(filename string, r io.Reader) (string, error)
}

// LocalStore writes files under a single directory, naming them by upload
// timestamp plus the original extension.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(filename string, r io.Reader) (string, error) {
	handle := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(filename))
	file, err := os.Create(filepath.Join(s.dir, handle))
	if err != nil {
		return "", err
	}
	defer file.Close()
	if _, err := io.Copy(file, r); err != nil {
		return "", err
	}
	return handle, nil
}
