package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

// Backend is a filesystem implementation of the pagewright.BlobStore
// interface. Object keys map to paths under the base directory, so the
// placeholder objects that mark virtual folders become ordinary files.
type Backend struct {
	mu        sync.RWMutex
	baseDir   string
	urlPrefix string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir   string // Base directory for storing files
	URLPrefix string // Optional URL prefix for download URLs
}

// New creates a new filesystem storage backend
func New(config Config) (pagewright.BlobStore, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir:   config.BaseDir,
		urlPrefix: config.URLPrefix,
	}, nil
}

// GetObjectMeta retrieves metadata for an object in the filesystem
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*pagewright.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	filePath := filepath.Join(b.baseDir, objectKey)

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, pagewright.ErrBlobNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if info.IsDir() {
		return nil, pagewright.ErrBlobNotFound
	}

	return &pagewright.ObjectMeta{
		Key:         objectKey,
		Size:        info.Size(),
		ContentType: detectContentType(filePath),
		UpdatedAt:   info.ModTime(),
	}, nil
}

// Exists reports whether an object with the exact key exists
func (b *Backend) Exists(ctx context.Context, objectKey string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	info, err := os.Stat(filepath.Join(b.baseDir, objectKey))
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to check file: %w", err)
	}
	return !info.IsDir(), nil
}

// Upload uploads content directly to the filesystem
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.writeFile(objectKey, reader)
}

// UploadWithParams uploads content with parameters. The filesystem backend
// detects MIME type on read, so the declared type is not stored.
func (b *Backend) UploadWithParams(ctx context.Context, reader io.Reader, params pagewright.UploadParams) error {
	return b.Upload(ctx, params.ObjectKey, reader)
}

// CreateIfAbsent writes a zero-byte object unless the key already exists.
// O_EXCL makes the check-and-create atomic on the filesystem.
func (b *Backend) CreateIfAbsent(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	filePath := filepath.Join(b.baseDir, objectKey)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return pagewright.ErrBlobExists
		}
		return fmt.Errorf("failed to create file: %w", err)
	}
	return file.Close()
}

// GetDownloadURL returns a URL for downloading content
func (b *Backend) GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error) {
	if b.urlPrefix == "" {
		return "", errors.New("direct download required for filesystem backend")
	}

	if downloadFilename != "" {
		return fmt.Sprintf("%s/download/%s?filename=%s", b.urlPrefix, objectKey, downloadFilename), nil
	}
	return fmt.Sprintf("%s/download/%s", b.urlPrefix, objectKey), nil
}

// Download downloads content directly from the filesystem
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	file, err := os.Open(filepath.Join(b.baseDir, objectKey))
	if os.IsNotExist(err) {
		return nil, pagewright.ErrBlobNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete deletes content from the filesystem. Deleting an absent key
// succeeds.
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	filePath := filepath.Join(b.baseDir, objectKey)
	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	b.cleanupEmptyDirectories(filepath.Dir(filePath))
	return nil
}

// ListPage lists one page of direct-child objects under the prefix, plus the
// immediate subfolder prefixes. Subfolder prefixes are reported on the first
// page only; the continuation token is the last key of the previous page.
func (b *Backend) ListPage(ctx context.Context, req pagewright.ListPageRequest) (*pagewright.ListPageResult, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	dir := filepath.Join(b.baseDir, filepath.FromSlash(strings.TrimSuffix(req.Prefix, "/")))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return &pagewright.ListPageResult{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var direct []string
	var prefixes []string
	for _, entry := range entries {
		if entry.IsDir() {
			prefixes = append(prefixes, req.Prefix+entry.Name()+"/")
			continue
		}
		direct = append(direct, req.Prefix+entry.Name())
	}
	sort.Strings(direct)
	sort.Strings(prefixes)

	result := &pagewright.ListPageResult{}
	if req.ContinuationToken == "" {
		result.Prefixes = prefixes
	}

	start := 0
	if req.ContinuationToken != "" {
		start = sort.SearchStrings(direct, req.ContinuationToken)
		if start < len(direct) && direct[start] == req.ContinuationToken {
			start++
		}
	}

	end := len(direct)
	if req.PageSize > 0 && start+int(req.PageSize) < end {
		end = start + int(req.PageSize)
	}

	for _, key := range direct[start:end] {
		info, err := os.Stat(filepath.Join(b.baseDir, filepath.FromSlash(key)))
		if err != nil {
			continue
		}
		result.Objects = append(result.Objects, pagewright.ObjectMeta{
			Key:         key,
			Size:        info.Size(),
			ContentType: detectContentType(filepath.Join(b.baseDir, filepath.FromSlash(key))),
			UpdatedAt:   info.ModTime(),
		})
	}

	if end < len(direct) {
		result.IsTruncated = true
		result.NextContinuationToken = direct[end-1]
	}

	return result, nil
}

func (b *Backend) writeFile(objectKey string, reader io.Reader) error {
	filePath := filepath.Join(b.baseDir, objectKey)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func detectContentType(filePath string) string {
	contentType := "application/octet-stream"
	if file, err := os.Open(filePath); err == nil {
		defer file.Close()
		buffer := make([]byte, 512)
		if n, err := file.Read(buffer); err == nil {
			contentType = http.DetectContentType(buffer[:n])
		}
	}
	return contentType
}

// cleanupEmptyDirectories recursively removes empty directories up to baseDir
func (b *Backend) cleanupEmptyDirectories(dir string) {
	if dir == b.baseDir {
		return
	}

	if entries, err := os.ReadDir(dir); err == nil && len(entries) == 0 {
		if os.Remove(dir) == nil {
			b.cleanupEmptyDirectories(filepath.Dir(dir))
		}
	}
}
