package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mrlokans/library/internal/entities"
)

// JSONFile stores the collection as a JSON array in a single file.
type JSONFile struct {
	path string
}

// NewJSONFile creates an adapter for the file at path. The file is not
// touched until Load or Save is called.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file path.
func (j *JSONFile) Path() string {
	return j.path
}

// Load reads the collection. A missing file is an empty collection.
func (j *JSONFile) Load() ([]entities.Book, error) {
	data, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []entities.Book{}, nil
	}
	if err != nil {
		return []entities.Book{}, fmt.Errorf("%w: read %s: %v", ErrUnreadable, j.path, err)
	}

	var books []entities.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return []entities.Book{}, fmt.Errorf("%w: decode %s: %v", ErrUnreadable, j.path, err)
	}
	if books == nil {
		books = []entities.Book{}
	}
	return books, nil
}

// Save overwrites the file with the full collection.
// The content is written to a temp file in the same directory and renamed
// over the target so a failed write never truncates existing state.
func (j *JSONFile) Save(books []entities.Book) error {
	if books == nil {
		books = []entities.Book{}
	}

	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}

	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create library directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".library_tmp_")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // no-op after a successful rename
	}()

	// CreateTemp uses 0600; match a plainly written file.
	if err := tmpFile.Chmod(0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("write library: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("write library: %w", err)
	}

	if err := os.Rename(tmpPath, j.path); err != nil {
		return fmt.Errorf("replace %s: %w", j.path, err)
	}
	return nil
}

// Check verifies the directory holding the file exists and is writable.
func (j *JSONFile) Check() error {
	dir := filepath.Dir(j.path)
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".library_probe_")
	if err != nil {
		return fmt.Errorf("directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}

var (
	_ Adapter = (*JSONFile)(nil)
	_ Checker = (*JSONFile)(nil)
)
