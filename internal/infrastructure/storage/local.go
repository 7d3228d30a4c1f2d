// Package storage keeps uploaded images on the local filesystem.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrEmptyFile       = errors.New("empty file")
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type Stored struct {
	Name     string
	URL      string
	MIMEType string
	Size     int64
}

type LocalStorage struct {
	dir      string
	prefix   string
	maxBytes int64
}

func NewLocalStorage(dir, publicPrefix string, maxBytes int64) (*LocalStorage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create dir: %w", err)
	}
	prefix := "/" + strings.Trim(publicPrefix, "/")
	return &LocalStorage{dir: dir, prefix: prefix, maxBytes: maxBytes}, nil
}

func (s *LocalStorage) Dir() string { return s.dir }

func (s *LocalStorage) PublicPrefix() string { return s.prefix }

func (s *LocalStorage) MaxBytes() int64 { return s.maxBytes }

// SaveImage sniffs r and writes it under a random name. The original file
// name is never used on disk.
func (s *LocalStorage) SaveImage(ctx context.Context, r io.Reader) (Stored, error) {
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}

	limit := s.maxBytes
	if limit <= 0 {
		limit = 5 << 20
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Stored{}, fmt.Errorf("storage: read: %w", err)
	}
	if len(b) == 0 {
		return Stored{}, ErrEmptyFile
	}
	if int64(len(b)) > limit {
		return Stored{}, ErrTooLarge
	}

	mt := mimetype.Detect(b)
	ext, ok := allowedImageTypes[mt.String()]
	if !ok {
		return Stored{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return Stored{}, fmt.Errorf("storage: create: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, bytes.NewReader(b)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return Stored{}, fmt.Errorf("storage: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return Stored{}, fmt.Errorf("storage: close: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return Stored{}, fmt.Errorf("storage: rename: %w", err)
	}

	return Stored{
		Name:     name,
		URL:      path.Join(s.prefix, name),
		MIMEType: mt.String(),
		Size:     int64(len(b)),
	}, nil
}
