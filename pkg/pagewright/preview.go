package pagewright

import (
	"context"
	"html"
	"regexp"
	"sort"
	"strings"
)

// layout-placeholder markers in template HTML, keyed by their id attribute.
var placeholderPattern = regexp.MustCompile(`(?s)<div class="layout-placeholder" id="([^"]+)">.*?</div>`)

// ComposeForPreview renders a draft of the page from its persisted content
// blocks. Unlike the publish path this is a literal string substitution over
// layout-placeholder markers keyed by PlaceholderID: blocks without their
// own HTML render a visible fallback wrapper, block CSS/JS is inlined next
// to the block markup, and markers with no content are stripped.
func (s *service) ComposeForPreview(ctx context.Context, pageID int64) (string, error) {
	page, err := s.repository.GetPage(ctx, pageID)
	if err != nil {
		return "", err
	}

	tmpl, err := s.repository.GetPageTemplate(ctx, page.PageTemplateID)
	if err != nil {
		return "", err
	}

	blocks, err := s.repository.ListPageBlocks(ctx, pageID)
	if err != nil {
		return "", &ComposeError{PageID: pageID, Op: "load blocks", Err: err}
	}

	grouped := groupBlocksByPlaceholder(blocks)

	out := placeholderPattern.ReplaceAllStringFunc(tmpl.HTMLStructure, func(marker string) string {
		m := placeholderPattern.FindStringSubmatch(marker)
		group, ok := grouped[m[1]]
		if !ok {
			return ""
		}
		var b strings.Builder
		for _, block := range group {
			b.WriteString(renderPreviewBlock(block))
		}
		return b.String()
	})

	return out, nil
}

// groupBlocksByPlaceholder buckets blocks by zone and orders each bucket by
// SortOrder.
func groupBlocksByPlaceholder(blocks []PageContentBlock) map[string][]PageContentBlock {
	grouped := make(map[string][]PageContentBlock)
	for _, block := range blocks {
		grouped[block.PlaceholderID] = append(grouped[block.PlaceholderID], block)
	}
	for id := range grouped {
		group := grouped[id]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].SortOrder < group[j].SortOrder
		})
		grouped[id] = group
	}
	return grouped
}

func renderPreviewBlock(block PageContentBlock) string {
	var b strings.Builder

	if block.CSSContent != "" {
		b.WriteString("<style>")
		b.WriteString(block.CSSContent)
		b.WriteString("</style>")
	}

	if block.HTMLContent != "" {
		b.WriteString(block.HTMLContent)
	} else {
		title := block.InstanceName
		if title == "" {
			title = "Content block"
		}
		b.WriteString(`<div class="content-block-fallback"><h3>`)
		b.WriteString(html.EscapeString(title))
		b.WriteString(`</h3><p>No content available</p></div>`)
	}

	if block.JSContent != "" {
		b.WriteString("<script>")
		b.WriteString(block.JSContent)
		b.WriteString("</script>")
	}

	return b.String()
}
