// Package analytics accumulates completed pomodoros and derives statistics.
package analytics

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store persists the record sequence. Implementations may fail; Analytics
// treats every store error as non-fatal.
type Store interface {
	Load() ([]Record, error)
	Save([]Record) error
}

// fileDocument is the on-disk shape: {"records": [...]}.
type fileDocument struct {
	Records []Record `json:"records"`
}

// FileStore persists records as pretty-printed JSON at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path. The parent directory is
// created on the first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the analytics file. A missing file yields an
// empty record list; decode errors surface to the caller, which degrades
// them to empty as well.
func (s *FileStore) Load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Records, nil
}

// Save rewrites the analytics file in full. The write goes through a temp
// file in the same directory so os.Rename replaces the old content
// atomically.
func (s *FileStore) Save(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(fileDocument{Records: records}, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "analytics-*.json.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
