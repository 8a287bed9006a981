package pagewright

import (
	"time"

	"github.com/google/uuid"
)

// Block tokens: ContentTemplateID values that do not reference a content
// template row. Blocks carrying one of these render as tagged placeholder
// comments instead of template markup.
const (
	BlockTokenEmpty      = "empty"
	BlockTokenJavaScript = "javascript"
	BlockTokenCSS        = "css"
)

// FolderPlaceholderSuffix is the zero-byte marker object appended to a prefix
// to make an empty folder visible in an object store without directories.
const FolderPlaceholderSuffix = ".folderplaceholder"

// BrowsePageSize is the fixed page size for blob listings.
const BrowsePageSize = 24

// SharedBlockSlugPrefix prefixes the synthetic content-template slug that
// mirrors a shared content row ("shared-block-<id>").
const SharedBlockSlugPrefix = "shared-block-"

// Website is a managed site. It owns library provider links and pages.
type Website struct {
	ID        int64     `json:"id"`
	Domain    string    `json:"domain"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProviderLink registers an allowed image-library folder for a website.
// ProviderName is the canonical, case-sensitive key as stored in the object
// store; DisplayName is the human label shown in the folder browser.
type ProviderLink struct {
	WebsiteID    int64  `json:"website_id"`
	ProviderName string `json:"provider_name"`
	DisplayName  string `json:"display_name"`
}

// ProviderMatch is the result of resolving a requested folder name against a
// website's provider links. Variant is the concrete key form that matched.
type ProviderMatch struct {
	ProviderName string `json:"provider_name"`
	DisplayName  string `json:"display_name"`
	Variant      string `json:"variant"`
}

// VirtualFolder is a browse-response folder entry. It exists only for the
// duration of a response; Path is the logical path the UI navigates with,
// which may differ from the literal storage prefix for provider folders.
type VirtualFolder struct {
	Name           string `json:"name"`
	Path           string `json:"path"`
	ActualProvider string `json:"actualProvider,omitempty"`
	ProviderID     string `json:"providerId,omitempty"`
}

// BlobFile is a browse-response file entry, fetched live from the object
// store and never persisted.
type BlobFile struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	URL          string    `json:"url,omitempty"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// PageTemplate holds the HTML structure a page is composed into. Placeholder
// zones are elements addressable by id.
type PageTemplate struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	HTMLStructure string    `json:"html_structure"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ContentTemplate is a reusable content fragment referenced from pages by id.
// A shared block is mirrored here under a synthetic "shared-block-<id>" slug.
type ContentTemplate struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug,omitempty"`
	HTMLContent string    `json:"html_content"`
	CSSContent  string    `json:"css_content,omitempty"`
	JSContent   string    `json:"js_content,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SharedContent is the independent source of truth for a shared block,
// scoped to a website and unique by (WebsiteID, Name).
type SharedContent struct {
	ID          int64     `json:"id"`
	WebsiteID   int64     `json:"website_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	HTMLContent string    `json:"html_content"`
	CSSContent  string    `json:"css_content,omitempty"`
	JSContent   string    `json:"js_content,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Page is a managed page belonging to a website. It owns an ordered list of
// content blocks keyed by placeholder.
type Page struct {
	ID             int64     `json:"id"`
	WebsiteID      int64     `json:"website_id"`
	Title          string    `json:"title"`
	Path           string    `json:"path"`
	PageTemplateID int64     `json:"page_template_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PageContentBlock is one block placed on a page. ContentTemplateID is either
// the decimal id of a ContentTemplate or one of the block tokens. Instance
// content fields override the template's content for this placement.
type PageContentBlock struct {
	ID                int64  `json:"id"`
	PageID            int64  `json:"page_id"`
	PlaceholderID     string `json:"placeholder_id"`
	ContentTemplateID string `json:"content_template_id"`
	SortOrder         int    `json:"sort_order"`
	InstanceName      string `json:"instance_name,omitempty"`
	HTMLContent       string `json:"html_content,omitempty"`
	CSSContent        string `json:"css_content,omitempty"`
	JSContent         string `json:"js_content,omitempty"`
}

// BlockRef references a block within publish zone content. ID is a decimal
// content-template id or a block token.
type BlockRef struct {
	ID string `json:"id"`
}

// Notification is one entry in a user's in-app feed.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
