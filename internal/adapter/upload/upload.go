package upload

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var ErrNotAllowed = errors.New("file type is not allowed")

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".svg": true, ".avif": true,
}

// DiskStore saves uploaded images under dir.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (DiskStore, error) {
	const op = "upload.NewDiskStore"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return DiskStore{}, fmt.Errorf("%s: %w", op, err)
	}
	return DiskStore{dir}, nil
}

func (s DiskStore) Dir() string {
	return s.dir
}

// FileName builds the stored name: slug of the base name, a uuid and the
// lowercased extension.
func FileName(original string) (string, error) {
	ext := strings.ToLower(filepath.Ext(original))
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w: %q", ErrNotAllowed, ext)
	}

	base := slug.Make(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s-%s%s", base, uuid.NewString(), ext), nil
}

// Save writes fh to disk and returns the stored file name.
func (s DiskStore) Save(fh *multipart.FileHeader) (string, error) {
	const op = "DiskStore.Save"

	name, err := FileName(fh.Filename)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, name)
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return name, nil
}

// SaveAll saves every file or none.
func (s DiskStore) SaveAll(fhs []*multipart.FileHeader) ([]string, error) {
	names := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		name, err := s.Save(fh)
		if err != nil {
			s.Remove(names...)
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// Remove deletes stored files, logging failures.
func (s DiskStore) Remove(names ...string) {
	const op = "DiskStore.Remove"
	for _, n := range names {
		if n == "" || n != filepath.Base(n) {
			continue
		}
		err := os.Remove(filepath.Join(s.dir, n))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to remove file", "op", op, "file", n, "err", err)
		}
	}
}
