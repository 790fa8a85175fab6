package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"cutscene-player/pkg/sharedTypes"
)

// DefaultEntries is the registry used when no catalog file exists.
func DefaultEntries() []sharedTypes.VideoDescriptor {
	return []sharedTypes.VideoDescriptor{
		{Name: "intro1", Title: "Intro"},
		{Name: "c_berlin", Title: "Berlin"},
	}
}

// LoadEntries reads a JSON array of video entries from filename. A missing
// file yields DefaultEntries.
func LoadEntries(filename string) ([]sharedTypes.VideoDescriptor, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Catalog: %s not found, using default entries", filename)
			return DefaultEntries(), nil
		}
		return nil, err
	}

	var entries []sharedTypes.VideoDescriptor
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", filename, err)
	}

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog: entry %d has no name", i)
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("catalog: duplicate entry %q", e.Name)
		}
		seen[e.Name] = true
	}
	return entries, nil
}
