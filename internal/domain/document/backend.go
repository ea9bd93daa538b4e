package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrTooLarge   = errors.New("document exceeds size limit")
	ErrUnsafePath = errors.New("document path escapes data directory")
)

// Backend holds the serialized document.
type Backend interface {
	// Read returns ErrNotFound when nothing is stored yet and ErrTooLarge
	// when the stored payload exceeds limit bytes.
	Read(ctx context.Context, limit int64) ([]byte, error)
	// Write replaces the stored payload so readers never see a partial write.
	Write(ctx context.Context, data []byte) error
	Location() string
}

// FileBackend stores the document as a single file inside a data directory.
type FileBackend struct {
	dir  string
	name string
}

func NewFileBackend(dir, name string) *FileBackend {
	return &FileBackend{dir: dir, name: name}
}

func (b *FileBackend) Location() string {
	return filepath.Join(b.dir, b.name)
}

// path resolves the document path and refuses names that leave the data
// directory.
func (b *FileBackend) path() (string, string, error) {
	dir, err := filepath.Abs(b.dir)
	if err != nil {
		return "", "", fmt.Errorf("resolve data dir: %w", err)
	}
	name := strings.TrimSpace(b.name)
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", "", ErrUnsafePath
	}
	full := filepath.Join(dir, name)
	rel, err := filepath.Rel(dir, full)
	if err != nil || rel != name {
		return "", "", ErrUnsafePath
	}
	return dir, full, nil
}

func (b *FileBackend) Read(_ context.Context, limit int64) ([]byte, error) {
	_, full, err := b.path()
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer f.Close()

	reader := io.Reader(f)
	if limit > 0 {
		reader = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, ErrTooLarge
	}
	return data, nil
}

// Write writes to a temp file in the same directory and renames it over the
// document.
func (b *FileBackend) Write(_ context.Context, data []byte) error {
	dir, full, err := b.path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, b.name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, full); err != nil {
		cleanup()
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
