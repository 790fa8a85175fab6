package sheetFs

import (
	"context"
	"fmt"
	"sync"
)

// MemorySource keeps objects in a map. Packages built on Source use it in
// their tests.
type MemorySource struct {
	mu      sync.RWMutex
	objects map[string][]byte
	reads   map[string]int
}

// NewMemorySource creates an empty in-memory source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		objects: make(map[string][]byte),
		reads:   make(map[string]int),
	}
}

// Put stores data under key, replacing any previous object.
func (s *MemorySource) Put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
}

// Delete removes key.
func (s *MemorySource) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
}

// Reads returns how many times key was read.
func (s *MemorySource) Reads(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reads[key]
}

func (s *MemorySource) Exists(_ context.Context, key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}

func (s *MemorySource) ReadAll(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads[key]++
	b, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return b, nil
}

func (s *MemorySource) Describe() string {
	return "memory"
}
