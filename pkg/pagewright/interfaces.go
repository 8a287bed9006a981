package pagewright

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// BlobStore defines the interface for object-store backends
type BlobStore interface {
	// Upload uploads content directly
	Upload(ctx context.Context, objectKey string, reader io.Reader) error

	// UploadWithParams uploads content with additional parameters
	UploadWithParams(ctx context.Context, reader io.Reader, params UploadParams) error

	// CreateIfAbsent writes a zero-byte object only when the key does not
	// exist yet, returning ErrBlobExists otherwise. Used for folder
	// placeholder markers.
	CreateIfAbsent(ctx context.Context, objectKey string) error

	// Download downloads content directly
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete deletes content. Deleting an absent key is not an error.
	Delete(ctx context.Context, objectKey string) error

	// Exists reports whether an object with the exact key exists.
	Exists(ctx context.Context, objectKey string) (bool, error)

	// GetObjectMeta retrieves metadata for an object
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)

	// GetDownloadURL returns a URL for downloading content
	GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error)

	// ListPage lists one page of objects and common prefixes under a prefix.
	ListPage(ctx context.Context, req ListPageRequest) (*ListPageResult, error)
}

// ObjectMeta contains metadata about an object in storage
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
}

// UploadParams contains parameters for uploading an object
type UploadParams struct {
	ObjectKey string
	MimeType  string
}

// ListPageRequest asks for one page of a hierarchical listing. The
// continuation token is opaque and supplied by the store; callers hold it
// between pages.
type ListPageRequest struct {
	Prefix            string
	ContinuationToken string
	PageSize          int32
}

// ListPageResult is one page of objects directly under the prefix plus the
// immediate subfolder prefixes.
type ListPageResult struct {
	Objects               []ObjectMeta
	Prefixes              []string
	NextContinuationToken string
	IsTruncated           bool
}

// Repository defines the interface for CMS persistence
type Repository interface {
	// Website operations
	GetWebsite(ctx context.Context, id int64) (*Website, error)

	// Library provider link operations
	ListProviderLinks(ctx context.Context, websiteID int64) ([]ProviderLink, error)
	CreateProviderLink(ctx context.Context, link *ProviderLink) error
	DeleteProviderLink(ctx context.Context, websiteID int64, providerName string) error

	// Page operations
	CreatePage(ctx context.Context, page *Page) error
	GetPage(ctx context.Context, id int64) (*Page, error)
	UpdatePage(ctx context.Context, page *Page) error
	ListPagesByWebsite(ctx context.Context, websiteID int64) ([]*Page, error)

	// Page template operations
	GetPageTemplate(ctx context.Context, id int64) (*PageTemplate, error)

	// Content template operations
	CreateContentTemplate(ctx context.Context, tmpl *ContentTemplate) error
	GetContentTemplate(ctx context.Context, id int64) (*ContentTemplate, error)
	GetContentTemplatesByIDs(ctx context.Context, ids []int64) (map[int64]*ContentTemplate, error)
	GetContentTemplateBySlug(ctx context.Context, slug string) (*ContentTemplate, error)
	UpdateContentTemplate(ctx context.Context, tmpl *ContentTemplate) error

	// Page content block operations
	ListPageBlocks(ctx context.Context, pageID int64) ([]PageContentBlock, error)
	ReplacePageBlocks(ctx context.Context, pageID int64, blocks []PageContentBlock) error

	// Shared content operations
	CreateSharedContent(ctx context.Context, sc *SharedContent) error
	GetSharedContent(ctx context.Context, id int64) (*SharedContent, error)
	ListSharedContentByWebsite(ctx context.Context, websiteID int64) ([]*SharedContent, error)
	UpdateSharedContent(ctx context.Context, sc *SharedContent) error
	DeleteSharedContent(ctx context.Context, id int64) error

	// Notification operations
	CreateNotification(ctx context.Context, n *Notification) error
	ListNotificationsByUser(ctx context.Context, userID string) ([]*Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
}

// ProviderCache caches a website's provider links in front of the repository.
// Implementations must treat a miss and an error identically safe: the
// registry falls through to the repository either way.
type ProviderCache interface {
	Get(ctx context.Context, websiteID int64) ([]ProviderLink, bool, error)
	Set(ctx context.Context, websiteID int64, links []ProviderLink) error
	Invalidate(ctx context.Context, websiteID int64) error
}
