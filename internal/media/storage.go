package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// Storage stores media bytes and hands back a URL the storefront can serve.
// Implementations may fail with size or I/O errors; callers surface those
// to the operator rather than substituting placeholders.
type Storage interface {
	Store(ctx context.Context, r io.Reader, filename string, kind Kind) (string, error)
}

// DiskStorage writes uploads beneath a single directory and serves them
// under /uploads/.
type DiskStorage struct {
	dir string
}

func NewDiskStorage(dir string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStorage{dir: dir}, nil
}

func (d *DiskStorage) Store(ctx context.Context, r io.Reader, filename string, kind Kind) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := d.uniqueName(filename)
	path := filepath.Join(d.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, &contextReader{ctx: ctx, r: r}); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}

	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}

	return "/uploads/" + name, nil
}

// contextReader aborts the copy once ctx is done, so a timed-out upload
// removes its partial file instead of leaving a complete orphan nothing
// ever references.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func (d *DiskStorage) uniqueName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := slugify(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if base == "" {
		return uuid.New().String() + ext
	}

	candidate := base + ext
	if !d.exists(candidate) {
		return candidate
	}

	return fmt.Sprintf("%s-%s%s", base, uuid.New().String()[:8], ext)
}

func (d *DiskStorage) exists(name string) bool {
	_, err := os.Stat(filepath.Join(d.dir, name))
	return err == nil
}
