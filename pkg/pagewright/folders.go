package pagewright

import (
	"context"
	"errors"
	"strings"
)

// SanitizeFolderName strips traversal characters from a requested folder
// name and rejects embedded path separators. The sanitized name is what gets
// written to storage and, for images/ children, into the provider registry.
func SanitizeFolderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidFolderName
	}
	if strings.ContainsAny(name, "/\\") {
		return "", ErrInvalidFolderName
	}

	name = strings.ReplaceAll(name, "..", "")
	name = strings.Trim(name, ". ")
	if name == "" {
		return "", ErrInvalidFolderName
	}
	return name, nil
}

// CreateFolder creates a virtual folder by writing a zero-byte placeholder
// marker, and registers direct images/ children as library providers. Nested
// folders inside images/ require their provider segment to resolve against
// the website's registry.
func (s *service) CreateFolder(ctx context.Context, req CreateFolderRequest) error {
	if req.WebsiteID == 0 {
		return ErrMissingWebsite
	}

	name, err := SanitizeFolderName(req.FolderName)
	if err != nil {
		return err
	}

	parent := normalizePrefix(req.FolderPath)
	if !prefixAllowed(parent) {
		return ErrForbiddenPath
	}

	if inner, ok := strings.CutPrefix(parent, imagesRoot); ok && inner != "" {
		seg, _, _ := strings.Cut(inner, "/")
		if s.ResolveFolder(ctx, req.WebsiteID, seg) == nil {
			return ErrProviderNotAllowed
		}
	}

	target := parent + name + "/"

	exists, err := s.prefixHasContent(ctx, target)
	if err != nil {
		return &FolderError{Path: target, Op: "create", Err: err}
	}
	if exists {
		return ErrFolderExists
	}

	// Conditional write narrows the check-then-create race where the store
	// supports it; the registry row below stays eventually consistent with
	// storage either way.
	if err := s.blobStore.CreateIfAbsent(ctx, target+FolderPlaceholderSuffix); err != nil {
		if errors.Is(err, ErrBlobExists) {
			return ErrFolderExists
		}
		return &FolderError{Path: target, Op: "create", Err: err}
	}

	if parent == imagesRoot {
		link := &ProviderLink{
			WebsiteID:    req.WebsiteID,
			ProviderName: name,
			DisplayName:  name,
		}
		if err := s.repository.CreateProviderLink(ctx, link); err != nil {
			s.logger.Error("failed to register provider for new folder",
				"website_id", req.WebsiteID, "provider", name, "error", err)
			return &FolderError{Path: target, Op: "register", Err: err}
		}
		s.invalidateProviders(ctx, req.WebsiteID)
	}

	s.logger.Info("folder created", "website_id", req.WebsiteID, "path", target)
	return nil
}

// DeleteFolder removes an empty virtual folder: the placeholder marker is
// deleted (tolerating absence) and, for direct images/ children, the
// provider registry row is removed best-effort. Folders holding any real
// blob or subfolder are rejected.
func (s *service) DeleteFolder(ctx context.Context, req DeleteFolderRequest) error {
	if req.WebsiteID == 0 {
		return ErrMissingWebsite
	}

	target := normalizePrefix(req.FolderPath)
	if target == "" || target == imagesRoot || target == docsRoot || !prefixAllowed(target) {
		return ErrForbiddenPath
	}

	placeholder := target + FolderPlaceholderSuffix

	page, err := s.blobStore.ListPage(ctx, ListPageRequest{Prefix: target, PageSize: BrowsePageSize})
	if err != nil {
		return &FolderError{Path: target, Op: "delete", Err: err}
	}
	if len(page.Prefixes) > 0 || page.IsTruncated {
		return ErrFolderNotEmpty
	}
	for _, obj := range page.Objects {
		if obj.Key != placeholder {
			return ErrFolderNotEmpty
		}
	}

	if err := s.blobStore.Delete(ctx, placeholder); err != nil && !errors.Is(err, ErrBlobNotFound) {
		return &FolderError{Path: target, Op: "delete", Err: err}
	}

	if inner := strings.TrimPrefix(target, imagesRoot); inner != target {
		name := strings.TrimSuffix(inner, "/")
		if !strings.Contains(name, "/") {
			// Direct images/ child: drop the registry row. Storage deletion
			// already happened and is not rolled back on failure here.
			providerName := name
			if match := s.ResolveFolder(ctx, req.WebsiteID, name); match != nil {
				providerName = match.ProviderName
			}
			if err := s.repository.DeleteProviderLink(ctx, req.WebsiteID, providerName); err != nil {
				s.logger.Error("failed to remove provider for deleted folder",
					"website_id", req.WebsiteID, "provider", providerName, "error", err)
			}
			s.invalidateProviders(ctx, req.WebsiteID)
		}
	}

	s.logger.Info("folder deleted", "website_id", req.WebsiteID, "path", target)
	return nil
}
