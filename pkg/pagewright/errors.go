package pagewright

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrNotAuthenticated indicates the request has no session user.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrMissingWebsite indicates no website context was supplied.
	ErrMissingWebsite = errors.New("missing website context")

	// ErrForbiddenPath indicates a path outside the browsable roots.
	ErrForbiddenPath = errors.New("path outside allowed roots")

	// ErrProviderNotAllowed indicates a folder that is not one of the
	// website's registered library providers.
	ErrProviderNotAllowed = errors.New("provider not allowed for website")

	// ErrInvalidFolderName indicates a folder name rejected by sanitization.
	ErrInvalidFolderName = errors.New("invalid folder name")

	// ErrFolderExists indicates a create-folder conflict.
	ErrFolderExists = errors.New("folder already exists")

	// ErrFolderNotEmpty indicates a delete on a folder with real content.
	ErrFolderNotEmpty = errors.New("folder is not empty")

	// ErrBlobExists indicates a conditional write found an existing object.
	ErrBlobExists = errors.New("blob already exists")

	// ErrBlobNotFound indicates an object was not found in storage.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrPageNotFound indicates a page row was not found.
	ErrPageNotFound = errors.New("page not found")

	// ErrTemplateNotFound indicates a page template row was not found.
	ErrTemplateNotFound = errors.New("page template not found")

	// ErrContentTemplateNotFound indicates a content template row was not found.
	ErrContentTemplateNotFound = errors.New("content template not found")

	// ErrSharedContentNotFound indicates a shared content row was not found.
	ErrSharedContentNotFound = errors.New("shared content not found")

	// ErrSharedContentExists indicates a (website, name) uniqueness conflict.
	ErrSharedContentExists = errors.New("shared content already exists")

	// ErrNotificationNotFound indicates a notification row was not found.
	ErrNotificationNotFound = errors.New("notification not found")
)

// FolderError represents an error from a folder lifecycle operation.
type FolderError struct {
	Path string
	Op   string
	Err  error
}

func (e *FolderError) Error() string {
	return fmt.Sprintf("folder operation %s failed for path %s: %v", e.Op, e.Path, e.Err)
}

func (e *FolderError) Unwrap() error {
	return e.Err
}

// ComposeError represents an error from page composition.
type ComposeError struct {
	PageID int64
	Op     string
	Err    error
}

func (e *ComposeError) Error() string {
	return fmt.Sprintf("compose operation %s failed for page %d: %v", e.Op, e.PageID, e.Err)
}

func (e *ComposeError) Unwrap() error {
	return e.Err
}

// StorageError represents an error from an object-store operation.
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
