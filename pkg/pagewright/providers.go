package pagewright

import (
	"context"
	"strings"
	"unicode"
)

// ProviderVariants returns the object-store key variants to probe for a
// provider name: the stored value, its full lowercase, and its
// first-character-lowercased form, de-duplicated and order preserving.
// Historical data was written with inconsistent casing; probing variants
// finds whichever form actually has content without a key migration.
func ProviderVariants(name string) []string {
	if name == "" {
		return nil
	}

	candidates := []string{name, strings.ToLower(name), lowerFirst(name)}

	variants := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, v := range candidates {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}
	return variants
}

func lowerFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// AllowedProviders returns the website's registered library providers in
// registry order. A zero website id or a failed lookup yields an empty list;
// callers treat "no providers" and "lookup failed" identically, so browsing
// stays available when the link table is unreachable.
func (s *service) AllowedProviders(ctx context.Context, websiteID int64) []ProviderLink {
	if websiteID == 0 {
		return nil
	}

	if s.cache != nil {
		links, ok, err := s.cache.Get(ctx, websiteID)
		if err != nil {
			s.logger.Warn("provider cache read failed", "website_id", websiteID, "error", err)
		} else if ok {
			return links
		}
	}

	links, err := s.repository.ListProviderLinks(ctx, websiteID)
	if err != nil {
		s.logger.Error("failed to list provider links", "website_id", websiteID, "error", err)
		return nil
	}

	for i := range links {
		if links[i].DisplayName == "" {
			links[i].DisplayName = links[i].ProviderName
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, websiteID, links); err != nil {
			s.logger.Warn("provider cache write failed", "website_id", websiteID, "error", err)
		}
	}

	return links
}

// ResolveFolder matches a requested folder name against the website's
// providers. It returns the first provider in registry order with a variant
// equal to the folder name component, or nil when none match. Browse, upload
// and folder creation all authorize through this single implementation.
func (s *service) ResolveFolder(ctx context.Context, websiteID int64, folderName string) *ProviderMatch {
	if folderName == "" {
		return nil
	}

	for _, link := range s.AllowedProviders(ctx, websiteID) {
		for _, variant := range ProviderVariants(link.ProviderName) {
			if variant == folderName {
				return &ProviderMatch{
					ProviderName: link.ProviderName,
					DisplayName:  link.DisplayName,
					Variant:      variant,
				}
			}
		}
	}
	return nil
}

func (s *service) invalidateProviders(ctx context.Context, websiteID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, websiteID); err != nil {
		s.logger.Warn("provider cache invalidation failed", "website_id", websiteID, "error", err)
	}
}
