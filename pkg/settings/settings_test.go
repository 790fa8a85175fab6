package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "absent.json"))
	if s != Defaults() {
		t.Errorf("expected defaults, got %+v", s)
	}
}

func TestLoadMalformedFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if s := Load(path); s != Defaults() {
		t.Errorf("expected defaults, got %+v", s)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	want := Settings{Volume: -2, Muted: true, LastVideo: "c_berlin"}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := Load(path); got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadClampsVolume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"volume": 12}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Load(path).Volume; got != MaxVolume {
		t.Errorf("Volume = %v, want %v", got, MaxVolume)
	}
}
