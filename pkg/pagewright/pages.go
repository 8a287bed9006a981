package pagewright

import (
	"context"
	"time"
)

// Page operations

func (s *service) CreatePage(ctx context.Context, req CreatePageRequest) (*Page, error) {
	now := time.Now().UTC()
	page := &Page{
		WebsiteID:      req.WebsiteID,
		Title:          req.Title,
		Path:           req.Path,
		PageTemplateID: req.PageTemplateID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repository.CreatePage(ctx, page); err != nil {
		return nil, err
	}

	s.logger.Info("page created", "page_id", page.ID, "website_id", page.WebsiteID)
	return page, nil
}

func (s *service) GetPage(ctx context.Context, id int64) (*Page, error) {
	return s.repository.GetPage(ctx, id)
}

func (s *service) ListPages(ctx context.Context, websiteID int64) ([]*Page, error) {
	return s.repository.ListPagesByWebsite(ctx, websiteID)
}

// UpdatePage updates page fields and, when Blocks is non-nil, replaces the
// page's persisted content blocks (the preview path's input).
func (s *service) UpdatePage(ctx context.Context, req UpdatePageRequest) (*Page, error) {
	page, err := s.repository.GetPage(ctx, req.PageID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		page.Title = req.Title
	}
	if req.Path != "" {
		page.Path = req.Path
	}
	if req.PageTemplateID != 0 {
		page.PageTemplateID = req.PageTemplateID
	}
	page.UpdatedAt = time.Now().UTC()

	if err := s.repository.UpdatePage(ctx, page); err != nil {
		return nil, err
	}

	if req.Blocks != nil {
		if err := s.repository.ReplacePageBlocks(ctx, page.ID, req.Blocks); err != nil {
			return nil, err
		}
	}

	s.logger.Info("page updated", "page_id", page.ID)
	return page, nil
}
