package persist

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File stores one JSON file per key under a base directory.
type File struct {
	mu       sync.Mutex
	basePath string
}

func NewFile(basePath string) (*File, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("persist: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("persist: ensure base path: %w", err)
	}
	return &File{basePath: basePath}, nil
}

func (f *File) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Save writes to a temp file then renames it over the target.
func (f *File) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("persist: write file: %w", err)
	}
	return os.Rename(tmp, path)
}

// path maps key onto a single file name inside basePath. The name is the
// unpadded URL-safe base64 of the key, so distinct keys never share a file.
func (f *File) path(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("persist: key is required")
	}
	name := base64.RawURLEncoding.EncodeToString([]byte(key))
	return filepath.Join(f.basePath, name+".json"), nil
}
