package sheetFs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalSource reads sheets from a directory tree on the local filesystem.
type LocalSource struct {
	Root string
}

// NewLocalSource creates a source rooted at root ("." when empty).
func NewLocalSource(root string) *LocalSource {
	if root == "" {
		root = "."
	}
	return &LocalSource{Root: filepath.Clean(root)}
}

func (s *LocalSource) path(key string) string {
	return filepath.Join(s.Root, filepath.FromSlash(key))
}

// Exists stats the file. Directories and stat errors count as missing.
func (s *LocalSource) Exists(_ context.Context, key string) bool {
	info, err := os.Stat(s.path(key))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ReadAll reads the whole file. The context is only checked before the read.
func (s *LocalSource) ReadAll(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, err
	}
	return b, nil
}

func (s *LocalSource) Describe() string {
	return "local:" + s.Root
}
