package gobfile

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"docrag/internal/domain"
)

// Load reads a persisted index from path. A missing file reports
// domain.ErrIndexNotFound; an unreadable or undecodable file reports
// domain.ErrIndexCorrupt. Callers branch: ingestion creates a fresh
// index on not-found, queries treat it as an empty result set.
func Load(path string) (*Index, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, domain.ErrIndexNotFound)
		}
		return nil, fmt.Errorf("%s: %w: %v", path, domain.ErrIndexCorrupt, err)
	}
	defer file.Close()

	var ix Index
	if err := gob.NewDecoder(file).Decode(&ix); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, domain.ErrIndexCorrupt, err)
	}
	if ix.Dimension <= 0 {
		return nil, fmt.Errorf("%s: dimension %d: %w", path, ix.Dimension, domain.ErrIndexCorrupt)
	}
	return &ix, nil
}

// Save persists the full index state to path, creating parent
// directories as needed. The write goes to a temp file first and is
// renamed into place so a crashed save never leaves a torn index.
func Save(path string, ix *Index) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(file).Encode(ix); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
