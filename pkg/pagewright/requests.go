package pagewright

import "io"

// BrowseRequest asks for one page of the virtual folder listing.
type BrowseRequest struct {
	WebsiteID         int64
	Prefix            string
	ContinuationToken string
}

// BrowseResult is one page of folders and files under a logical prefix.
// Folders are only populated on the first page of a prefix.
type BrowseResult struct {
	Prefix            string          `json:"prefix"`
	Folders           []VirtualFolder `json:"folders"`
	Files             []BlobFile      `json:"files"`
	ContinuationToken string          `json:"continuationToken,omitempty"`
}

// UploadFile is one file within an upload batch.
type UploadFile struct {
	Name     string
	MimeType string
	Size     int64
	Reader   io.Reader
}

// UploadRequest uploads a batch of files into a logical folder.
type UploadRequest struct {
	WebsiteID  int64
	FolderPath string
	Files      []UploadFile
}

// FileResult reports the outcome for a single file in an upload batch.
// Status is "uploaded" or "conflict".
type FileResult struct {
	Name   string `json:"name"`
	Key    string `json:"key,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// UploadSummary totals an upload batch.
type UploadSummary struct {
	Success   int `json:"success"`
	Conflicts int `json:"conflicts"`
	Total     int `json:"total"`
}

// UploadResult reports the full outcome of an upload batch. Each file's
// outcome is independent; a conflict never aborts the batch.
type UploadResult struct {
	UploadedFiles []string      `json:"uploadedFiles"`
	Results       []FileResult  `json:"results"`
	Summary       UploadSummary `json:"summary"`
}

// CreateFolderRequest creates a virtual folder.
type CreateFolderRequest struct {
	WebsiteID  int64
	FolderPath string
	FolderName string
}

// DeleteFolderRequest deletes an empty virtual folder.
type DeleteFolderRequest struct {
	WebsiteID  int64
	FolderPath string
}

// CreatePageRequest creates a page.
type CreatePageRequest struct {
	WebsiteID      int64
	Title          string
	Path           string
	PageTemplateID int64
}

// UpdatePageRequest updates a page and optionally replaces its blocks.
type UpdatePageRequest struct {
	PageID         int64
	Title          string
	Path           string
	PageTemplateID int64
	Blocks         []PageContentBlock
}

// PublishRequest publishes a page from editor zone content. ZoneContent maps
// placeholder zone ids to ordered block references.
type PublishRequest struct {
	PageID      int64
	UserID      string
	ZoneContent map[string][]BlockRef
}

// CreateSharedContentRequest creates a shared block.
type CreateSharedContentRequest struct {
	WebsiteID   int64
	Name        string
	Description string
	HTMLContent string
	CSSContent  string
	JSContent   string
}

// UpdateSharedContentRequest updates a shared block and best-effort mirrors
// it into the content template referenced by pages.
type UpdateSharedContentRequest struct {
	ID          int64
	Name        string
	Description string
	HTMLContent string
	CSSContent  string
	JSContent   string
}
