package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/mitrajit-55/password-manager/internal/vault"
)

// blobFilename is the well-known key the record collection is persisted
// under inside the base directory.
const blobFilename = "passwords.json"

// FileStore keeps the whole record collection in memory and mirrors it to a
// single JSON blob: read once at Initialize, rewritten in full on every
// mutation. It serves both as the server's zero-dependency backend and as
// the client's device-local vault.
type FileStore struct {
	baseDir string

	mu      sync.RWMutex
	records []vault.Record
}

// NewFileStore creates a file-backed store rooted at baseDir.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

func (f *FileStore) path() string {
	return filepath.Join(f.baseDir, blobFilename)
}

func (f *FileStore) Initialize(ctx context.Context) error {
	if err := os.MkdirAll(f.baseDir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", f.baseDir, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path())
	if err != nil {
		if os.IsNotExist(err) {
			f.records = nil
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", f.path(), err)
	}
	if err := json.Unmarshal(data, &f.records); err != nil {
		return fmt.Errorf("failed to parse %s: %w", f.path(), err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

func (f *FileStore) Health(ctx context.Context) error {
	_, err := os.Stat(f.baseDir)
	return err
}

func (f *FileStore) List(ctx context.Context) ([]vault.Record, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]vault.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *FileStore) Create(ctx context.Context, fields vault.Fields) (vault.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := vault.Record{ID: uuid.NewString(), Fields: fields}
	f.records = append(f.records, rec)
	if err := f.saveLocked(); err != nil {
		f.records = f.records[:len(f.records)-1]
		return vault.Record{}, err
	}
	return rec, nil
}

func (f *FileStore) Update(ctx context.Context, id string, fields vault.Fields) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.records {
		if f.records[i].ID != id {
			continue
		}
		if f.records[i].Fields == fields {
			// Mirrors the document stores: rewriting identical
			// values counts as zero records modified.
			return false, nil
		}
		prev := f.records[i].Fields
		f.records[i].Fields = fields
		if err := f.saveLocked(); err != nil {
			f.records[i].Fields = prev
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (f *FileStore) Delete(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.records {
		if f.records[i].ID != id {
			continue
		}
		removed := f.records[i]
		f.records = append(f.records[:i], f.records[i+1:]...)
		if err := f.saveLocked(); err != nil {
			f.records = append(f.records[:i], append([]vault.Record{removed}, f.records[i:]...)...)
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// saveLocked rewrites the full blob. Callers hold the write lock.
func (f *FileStore) saveLocked() error {
	records := f.records
	if records == nil {
		records = []vault.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	tmp := f.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	return os.Rename(tmp, f.path())
}
