package pagewright

import (
	"context"

	"github.com/google/uuid"
)

// Service is the main interface for the CMS core.
type Service interface {
	// Library browsing and folder lifecycle
	AllowedProviders(ctx context.Context, websiteID int64) []ProviderLink
	ResolveFolder(ctx context.Context, websiteID int64, folderName string) *ProviderMatch
	Browse(ctx context.Context, req BrowseRequest) (*BrowseResult, error)
	UploadFiles(ctx context.Context, req UploadRequest) (*UploadResult, error)
	CreateFolder(ctx context.Context, req CreateFolderRequest) error
	DeleteFolder(ctx context.Context, req DeleteFolderRequest) error

	// Pages and composition
	CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error)
	GetPage(ctx context.Context, id int64) (*Page, error)
	UpdatePage(ctx context.Context, req UpdatePageRequest) (*Page, error)
	ListPages(ctx context.Context, websiteID int64) ([]*Page, error)
	ComposeForPublish(ctx context.Context, pageID int64, zoneContent map[string][]BlockRef) (string, error)
	ComposeForPreview(ctx context.Context, pageID int64) (string, error)
	PublishPage(ctx context.Context, req PublishRequest) (string, error)

	// Shared content
	CreateSharedContent(ctx context.Context, req CreateSharedContentRequest) (*SharedContent, error)
	GetSharedContent(ctx context.Context, id int64) (*SharedContent, error)
	ListSharedContent(ctx context.Context, websiteID int64) ([]*SharedContent, error)
	UpdateSharedContent(ctx context.Context, req UpdateSharedContentRequest) (*SharedContent, error)
	DeleteSharedContent(ctx context.Context, id int64) error

	// Notifications
	ListNotifications(ctx context.Context, userID string) ([]*Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
}
