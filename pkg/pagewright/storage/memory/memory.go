package memory

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

// Backend is an in-memory implementation of the pagewright.BlobStore
// interface, used by tests and local development.
type Backend struct {
	mu              sync.RWMutex
	objects         map[string][]byte
	objectsMimeType map[string]string
	objectsModified map[string]time.Time
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects:         make(map[string][]byte),
		objectsMimeType: make(map[string]string),
		objectsModified: make(map[string]time.Time),
	}
}

// GetObjectMeta retrieves metadata for an object in memory
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*pagewright.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, pagewright.ErrBlobNotFound
	}

	return &pagewright.ObjectMeta{
		Key:         objectKey,
		Size:        int64(len(data)),
		ContentType: b.objectsMimeType[objectKey],
		UpdatedAt:   b.objectsModified[objectKey],
	}, nil
}

// Exists reports whether an object with the exact key exists
func (b *Backend) Exists(ctx context.Context, objectKey string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.objects[objectKey]
	return exists, nil
}

// Upload uploads content directly
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.objects[objectKey] = data
	b.objectsModified[objectKey] = time.Now().UTC()
	if _, exists := b.objectsMimeType[objectKey]; !exists {
		b.objectsMimeType[objectKey] = "application/octet-stream"
	}
	return nil
}

// UploadWithParams uploads content with parameters
func (b *Backend) UploadWithParams(ctx context.Context, reader io.Reader, params pagewright.UploadParams) error {
	if err := b.Upload(ctx, params.ObjectKey, reader); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objectsMimeType[params.ObjectKey] = params.MimeType
	return nil
}

// CreateIfAbsent writes a zero-byte object unless the key already exists.
// The check and write share one lock, so the create is atomic.
func (b *Backend) CreateIfAbsent(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; exists {
		return pagewright.ErrBlobExists
	}

	b.objects[objectKey] = nil
	b.objectsMimeType[objectKey] = "application/octet-stream"
	b.objectsModified[objectKey] = time.Now().UTC()
	return nil
}

// GetDownloadURL returns a synthetic URL for downloading content
func (b *Backend) GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if _, exists := b.objects[objectKey]; !exists {
		return "", pagewright.ErrBlobNotFound
	}
	return "memory://" + objectKey, nil
}

// Download downloads content directly
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, pagewright.ErrBlobNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete deletes content. Deleting an absent key succeeds.
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.objects, objectKey)
	delete(b.objectsMimeType, objectKey)
	delete(b.objectsModified, objectKey)
	return nil
}

// ListPage lists one page of direct-child objects under the prefix, plus the
// immediate subfolder prefixes. Subfolder prefixes are reported on the first
// page only; the continuation token is the last key of the previous page.
func (b *Backend) ListPage(ctx context.Context, req pagewright.ListPageRequest) (*pagewright.ListPageResult, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var direct []string
	prefixSet := make(map[string]struct{})

	for key := range b.objects {
		if !strings.HasPrefix(key, req.Prefix) {
			continue
		}
		rest := key[len(req.Prefix):]
		if rest == "" {
			continue
		}
		if idx := strings.Index(rest, "/"); idx >= 0 {
			prefixSet[req.Prefix+rest[:idx+1]] = struct{}{}
			continue
		}
		direct = append(direct, key)
	}
	sort.Strings(direct)

	result := &pagewright.ListPageResult{}

	if req.ContinuationToken == "" {
		for p := range prefixSet {
			result.Prefixes = append(result.Prefixes, p)
		}
		sort.Strings(result.Prefixes)
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
		result.Objects = append(result.Objects, pagewright.ObjectMeta{
			Key:         key,
			Size:        int64(len(b.objects[key])),
			ContentType: b.objectsMimeType[key],
			UpdatedAt:   b.objectsModified[key],
		})
	}

	if end < len(direct) {
		result.IsTruncated = true
		result.NextContinuationToken = direct[end-1]
	}

	return result, nil
}
