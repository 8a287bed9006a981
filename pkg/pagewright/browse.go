package pagewright

import (
	"context"
	"strings"
)

// browsable roots; anything else is rejected before touching storage.
const (
	imagesRoot = "images/"
	docsRoot   = "docs/"
)

// thumbnail artifacts and folder markers are internal and never listed.
var hiddenKeyMarkers = []string{"tmb-0", "tmb-thumbnail", FolderPlaceholderSuffix}

// Browse returns one page of the virtual folder listing for a logical
// prefix. At the images/ root it synthesizes one folder per allowed provider;
// inside any folder it pages through the object store under the literal
// requested prefix, keeping paths in the caller's virtual naming.
func (s *service) Browse(ctx context.Context, req BrowseRequest) (*BrowseResult, error) {
	if req.WebsiteID == 0 {
		return nil, ErrMissingWebsite
	}

	prefix := normalizePrefix(req.Prefix)
	if !prefixAllowed(prefix) {
		return nil, ErrForbiddenPath
	}

	if prefix == imagesRoot && req.ContinuationToken == "" {
		return s.browseImagesRoot(ctx, req.WebsiteID)
	}

	return s.browsePrefix(ctx, req.WebsiteID, prefix, req.ContinuationToken)
}

// browseImagesRoot synthesizes the virtual provider folders. For each allowed
// provider the first variant with content in storage names the folder path;
// a provider with no content at all still appears under its exact variant so
// uploads can target it before anything exists. The provider list is
// enumerated fully, never paged.
func (s *service) browseImagesRoot(ctx context.Context, websiteID int64) (*BrowseResult, error) {
	result := &BrowseResult{
		Prefix:  imagesRoot,
		Folders: []VirtualFolder{},
		Files:   []BlobFile{},
	}

	for _, link := range s.AllowedProviders(ctx, websiteID) {
		variants := ProviderVariants(link.ProviderName)
		chosen := variants[0]
		for _, variant := range variants {
			exists, err := s.prefixHasContent(ctx, imagesRoot+variant+"/")
			if err != nil {
				s.logger.Warn("variant probe failed", "provider", link.ProviderName, "variant", variant, "error", err)
				continue
			}
			if exists {
				chosen = variant
				break
			}
		}

		result.Folders = append(result.Folders, VirtualFolder{
			Name:           link.DisplayName,
			Path:           imagesRoot + chosen + "/",
			ActualProvider: chosen,
			ProviderID:     link.ProviderName,
		})
	}

	return result, nil
}

// browsePrefix lists one page under the literal requested prefix. Subfolder
// entries reuse the requested prefix so virtual provider naming survives at
// depth, and are only emitted on the first page to avoid duplicates.
func (s *service) browsePrefix(ctx context.Context, websiteID int64, prefix, token string) (*BrowseResult, error) {
	var match *ProviderMatch
	if folder, ok := strings.CutPrefix(prefix, imagesRoot); ok {
		if seg, _, found := strings.Cut(folder, "/"); found {
			match = s.ResolveFolder(ctx, websiteID, seg)
		}
	}

	page, err := s.blobStore.ListPage(ctx, ListPageRequest{
		Prefix:            prefix,
		ContinuationToken: token,
		PageSize:          BrowsePageSize,
	})
	if err != nil {
		return nil, &StorageError{Key: prefix, Op: "list", Err: err}
	}

	result := &BrowseResult{
		Prefix:            prefix,
		Folders:           []VirtualFolder{},
		Files:             []BlobFile{},
		ContinuationToken: page.NextContinuationToken,
	}

	if token == "" {
		for _, sub := range page.Prefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(sub, prefix), "/")
			if name == "" {
				continue
			}
			folder := VirtualFolder{
				Name: name,
				Path: prefix + name + "/",
			}
			if match != nil {
				folder.ProviderID = match.ProviderName
			}
			result.Folders = append(result.Folders, folder)
		}
	}

	for _, obj := range page.Objects {
		if hiddenKey(obj.Key) {
			continue
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if name == "" {
			continue
		}
		url, err := s.blobStore.GetDownloadURL(ctx, obj.Key, name)
		if err != nil {
			s.logger.Warn("failed to build download url", "key", obj.Key, "error", err)
		}
		result.Files = append(result.Files, BlobFile{
			Name:         name,
			Path:         prefix + name,
			URL:          url,
			Size:         obj.Size,
			LastModified: obj.UpdatedAt,
		})
	}

	return result, nil
}

// prefixHasContent reports whether any object lives under the prefix.
func (s *service) prefixHasContent(ctx context.Context, prefix string) (bool, error) {
	page, err := s.blobStore.ListPage(ctx, ListPageRequest{Prefix: prefix, PageSize: 1})
	if err != nil {
		return false, err
	}
	return len(page.Objects) > 0 || len(page.Prefixes) > 0, nil
}

func normalizePrefix(prefix string) string {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}

func prefixAllowed(prefix string) bool {
	return prefix == "" ||
		strings.HasPrefix(prefix, imagesRoot) ||
		strings.HasPrefix(prefix, docsRoot)
}

func hiddenKey(key string) bool {
	for _, marker := range hiddenKeyMarkers {
		if strings.Contains(key, marker) {
			return true
		}
	}
	return false
}
