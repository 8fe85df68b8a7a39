package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadProgressMissingFile(t *testing.T) {
	p, err := LoadProgress(filepath.Join(t.TempDir(), "progress.json"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if p.LastIndex != 0 {
		t.Errorf("fresh progress LastIndex = %d, want 0", p.LastIndex)
	}
	if p.NextIndex() != 1 {
		t.Errorf("fresh progress NextIndex = %d, want 1", p.NextIndex())
	}
}

func TestProgressRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "progress.json")

	p := &Progress{}
	p.Record(37, 202)
	if err := p.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadProgress(path)
	if err != nil {
		t.Fatalf("LoadProgress failed: %v", err)
	}
	if loaded.LastIndex != 37 || loaded.TileCount != 202 {
		t.Errorf("loaded %+v, want last_index=37 tile_count=202", loaded)
	}
	if loaded.UpdatedAt.IsZero() {
		t.Error("UpdatedAt must be set by Record")
	}
	if loaded.NextIndex() != 38 {
		t.Errorf("NextIndex = %d, want 38", loaded.NextIndex())
	}
}

func TestLoadProgressCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := (&Progress{}).Save(path); err != nil {
		t.Fatal(err)
	}
	// Overwrite with junk.
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProgress(path); err == nil {
		t.Fatal("corrupt file must surface an error, not silently reset")
	}
}
