package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"perfume-shop-backend/internal/media"
)

type UploadService struct {
	storage media.Storage

	imageMaxSize int64
	videoMaxSize int64
	imageTimeout time.Duration
	videoTimeout time.Duration

	imageExts []string
	videoExts []string
}

var ErrUploadFailed = errors.New("upload failed")

func NewUploadService(storage media.Storage, imageMaxSize, videoMaxSize int64, imageTimeout, videoTimeout time.Duration) *UploadService {
	return &UploadService{
		storage:      storage,
		imageMaxSize: imageMaxSize,
		videoMaxSize: videoMaxSize,
		imageTimeout: imageTimeout,
		videoTimeout: videoTimeout,
		imageExts:    []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		videoExts:    []string{".mp4", ".m4v", ".mov", ".webm"},
	}
}

// Upload validates and stores one media file, returning its public URL.
// The whole operation runs under a bounded deadline; video uploads get a
// longer allowance than images since payloads are larger. On any failure
// the underlying reason is returned, never a placeholder URL.
func (s *UploadService) Upload(ctx context.Context, file *multipart.FileHeader, kind media.Kind) (string, error) {
	if file == nil {
		return "", fmt.Errorf("%w: file is required", ErrValidation)
	}

	maxSize, timeout, exts := s.limitsFor(kind)
	if exts == nil {
		return "", fmt.Errorf("%w: unsupported media kind %q", ErrValidation, kind)
	}

	if file.Size > maxSize {
		return "", fmt.Errorf("%w: file size %d exceeds limit %d", ErrValidation, file.Size, maxSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !contains(exts, ext) {
		return "", fmt.Errorf("%w: file type %s not allowed", ErrValidation, ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		url string
		err error
	}
	done := make(chan result, 1)
	go func() {
		url, err := s.storage.Store(ctx, src, file.Filename, kind)
		done <- result{url, err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w after %s", ErrUploadTimeout, timeout)
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("%w: %v", ErrUploadFailed, res.err)
		}
		return res.url, nil
	}
}

func (s *UploadService) limitsFor(kind media.Kind) (int64, time.Duration, []string) {
	switch kind {
	case media.KindImage:
		return s.imageMaxSize, s.imageTimeout, s.imageExts
	case media.KindVideo:
		return s.videoMaxSize, s.videoTimeout, s.videoExts
	}
	return 0, 0, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
