package pagewright

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Shared content operations

func (s *service) CreateSharedContent(ctx context.Context, req CreateSharedContentRequest) (*SharedContent, error) {
	now := time.Now().UTC()
	sc := &SharedContent{
		WebsiteID:   req.WebsiteID,
		Name:        req.Name,
		Description: req.Description,
		HTMLContent: req.HTMLContent,
		CSSContent:  req.CSSContent,
		JSContent:   req.JSContent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repository.CreateSharedContent(ctx, sc); err != nil {
		return nil, err
	}

	s.logger.Info("shared content created", "id", sc.ID, "website_id", sc.WebsiteID, "name", sc.Name)
	return sc, nil
}

func (s *service) GetSharedContent(ctx context.Context, id int64) (*SharedContent, error) {
	return s.repository.GetSharedContent(ctx, id)
}

func (s *service) ListSharedContent(ctx context.Context, websiteID int64) ([]*SharedContent, error) {
	return s.repository.ListSharedContentByWebsite(ctx, websiteID)
}

// UpdateSharedContent updates the shared block and mirrors its content into
// the "shared-block-<id>" content template so pages referencing the mirror
// pick up the change. The mirror is best-effort: a shared block never placed
// on a page has no mirrored row, and a failed mirror write does not roll
// back the primary update.
func (s *service) UpdateSharedContent(ctx context.Context, req UpdateSharedContentRequest) (*SharedContent, error) {
	sc, err := s.repository.GetSharedContent(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		sc.Name = req.Name
	}
	sc.Description = req.Description
	sc.HTMLContent = req.HTMLContent
	sc.CSSContent = req.CSSContent
	sc.JSContent = req.JSContent
	sc.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateSharedContent(ctx, sc); err != nil {
		return nil, err
	}

	s.mirrorSharedContent(ctx, sc)

	return sc, nil
}

func (s *service) mirrorSharedContent(ctx context.Context, sc *SharedContent) {
	slug := fmt.Sprintf("%s%d", SharedBlockSlugPrefix, sc.ID)

	mirror, err := s.repository.GetContentTemplateBySlug(ctx, slug)
	if err != nil {
		if !errors.Is(err, ErrContentTemplateNotFound) {
			s.logger.Warn("shared block mirror lookup failed", "slug", slug, "error", err)
		}
		return
	}

	mirror.Name = sc.Name
	mirror.HTMLContent = sc.HTMLContent
	mirror.CSSContent = sc.CSSContent
	mirror.JSContent = sc.JSContent
	mirror.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdateContentTemplate(ctx, mirror); err != nil {
		s.logger.Warn("shared block mirror update failed", "slug", slug, "error", err)
	}
}

func (s *service) DeleteSharedContent(ctx context.Context, id int64) error {
	if err := s.repository.DeleteSharedContent(ctx, id); err != nil {
		return err
	}
	s.logger.Info("shared content deleted", "id", id)
	return nil
}
