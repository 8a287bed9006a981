package pagewright

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ComposeForPublish renders a page's final markup from editor zone content.
// The page template is parsed as a document; each zone id present in
// zoneContent addresses the template element with that id, whose inner
// content is replaced by the zone's blocks in list order. Template-backed
// blocks render as a wrapper div carrying the template id; token blocks
// render as tagged comments. Zone ids with no matching element are dropped
// with a warning. The result is returned, not persisted.
func (s *service) ComposeForPublish(ctx context.Context, pageID int64, zoneContent map[string][]BlockRef) (string, error) {
	page, err := s.repository.GetPage(ctx, pageID)
	if err != nil {
		return "", err
	}

	tmpl, err := s.repository.GetPageTemplate(ctx, page.PageTemplateID)
	if err != nil {
		return "", err
	}

	templates, err := s.fetchReferencedTemplates(ctx, zoneContent)
	if err != nil {
		return "", &ComposeError{PageID: pageID, Op: "fetch blocks", Err: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tmpl.HTMLStructure))
	if err != nil {
		return "", &ComposeError{PageID: pageID, Op: "parse template", Err: err}
	}

	for zoneID, blocks := range zoneContent {
		sel := doc.Find(fmt.Sprintf("[id=%q]", zoneID))
		if sel.Length() == 0 {
			s.logger.Warn("zone not present in template, content dropped",
				"page_id", pageID, "zone", zoneID)
			continue
		}
		sel.First().SetHtml(s.renderZone(pageID, zoneID, blocks, templates))
	}

	html, err := renderDocument(doc, tmpl.HTMLStructure)
	if err != nil {
		return "", &ComposeError{PageID: pageID, Op: "serialize", Err: err}
	}
	return html, nil
}

// fetchReferencedTemplates batch-loads every numeric block id referenced
// across all zones. Block tokens and non-numeric ids are skipped.
func (s *service) fetchReferencedTemplates(ctx context.Context, zoneContent map[string][]BlockRef) (map[int64]*ContentTemplate, error) {
	var ids []int64
	seen := make(map[int64]struct{})
	for _, blocks := range zoneContent {
		for _, ref := range blocks {
			if isBlockToken(ref.ID) {
				continue
			}
			id, err := strconv.ParseInt(ref.ID, 10, 64)
			if err != nil {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return map[int64]*ContentTemplate{}, nil
	}
	return s.repository.GetContentTemplatesByIDs(ctx, ids)
}

func (s *service) renderZone(pageID int64, zoneID string, blocks []BlockRef, templates map[int64]*ContentTemplate) string {
	var b strings.Builder
	for _, ref := range blocks {
		if isBlockToken(ref.ID) {
			b.WriteString("<!-- block:" + ref.ID + " -->")
			continue
		}

		id, err := strconv.ParseInt(ref.ID, 10, 64)
		if err != nil {
			s.logger.Warn("skipping non-numeric block reference",
				"page_id", pageID, "zone", zoneID, "ref", ref.ID)
			continue
		}

		tmpl, ok := templates[id]
		if !ok {
			s.logger.Warn("skipping block with missing content template",
				"page_id", pageID, "zone", zoneID, "template_id", id)
			continue
		}

		fmt.Fprintf(&b, `<div data-template-id="%d">%s</div>`, id, tmpl.HTMLContent)
	}
	return b.String()
}

func isBlockToken(id string) bool {
	switch id {
	case BlockTokenEmpty, BlockTokenJavaScript, BlockTokenCSS:
		return true
	}
	return false
}

// renderDocument serializes a parsed template. Fragment templates (no <html>
// element in the source) come back as body inner HTML so the parser's
// document scaffolding does not leak into the output.
func renderDocument(doc *goquery.Document, source string) (string, error) {
	if strings.Contains(strings.ToLower(source), "<html") {
		return doc.Html()
	}
	return doc.Find("body").Html()
}

// PublishPage composes the page for publish and records an in-app
// notification. The generated HTML is returned to the caller only; nothing
// durable is written.
func (s *service) PublishPage(ctx context.Context, req PublishRequest) (string, error) {
	html, err := s.ComposeForPublish(ctx, req.PageID, req.ZoneContent)
	if err != nil {
		return "", err
	}

	page, err := s.repository.GetPage(ctx, req.PageID)
	if err != nil {
		return "", err
	}

	if req.UserID != "" {
		s.notify(ctx, req.UserID,
			fmt.Sprintf("Page %q was published", page.Title),
			fmt.Sprintf("/pages/%d", page.ID))
	}

	s.logger.Info("page published", "page_id", page.ID, "bytes", len(html))
	return html, nil
}
