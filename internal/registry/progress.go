package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Progress records how far a UI download run got, so a later run started with
// --resume can pick up after the last processed tile. It is only meaningful
// against the same enumeration: tile positions are not stable identifiers,
// so TileCount is stored for the operator to sanity-check against.
type Progress struct {
	LastIndex int       `json:"last_index"`
	TileCount int       `json:"tile_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoadProgress reads the record at path. A missing file is a fresh start, not
// an error.
func LoadProgress(path string) (*Progress, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Progress{}, nil
		}
		return nil, err
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save writes the record, creating parent directories as needed.
func (p *Progress) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Record notes one more processed tile.
func (p *Progress) Record(pos, tileCount int) {
	p.LastIndex = pos
	p.TileCount = tileCount
	p.UpdatedAt = time.Now()
}

// NextIndex is where a resumed run should start.
func (p *Progress) NextIndex() int {
	if p.LastIndex < 1 {
		return 1
	}
	return p.LastIndex + 1
}
