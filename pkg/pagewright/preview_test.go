package pagewright_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

const previewTemplate = `<html><body>` +
	`<div class="layout-placeholder" id="main">placeholder</div>` +
	`<div class="layout-placeholder" id="side">placeholder</div>` +
	`</body></html>`

func TestComposeForPreview(t *testing.T) {
	ctx := context.Background()

	t.Run("renders saved blocks into their placeholders", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID, previewTemplate)

		_, err := svc.UpdatePage(ctx, pagewright.UpdatePageRequest{
			PageID: pageID,
			Blocks: []pagewright.PageContentBlock{
				{PlaceholderID: "main", ContentTemplateID: "1", SortOrder: 0, HTMLContent: "<p>hello</p>"},
			},
		})
		require.NoError(t, err)

		html, err := svc.ComposeForPreview(ctx, pageID)
		require.NoError(t, err)

		assert.Contains(t, html, "<p>hello</p>")
		assert.NotContains(t, html, "layout-placeholder", "markers are consumed")
	})

	t.Run("empty placeholders are stripped", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID, previewTemplate)

		html, err := svc.ComposeForPreview(ctx, pageID)
		require.NoError(t, err)

		assert.NotContains(t, html, "layout-placeholder")
		assert.NotContains(t, html, "placeholder")
		assert.Contains(t, html, "<body>")
	})

	t.Run("blocks render in sort order", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID, previewTemplate)

		_, err := svc.UpdatePage(ctx, pagewright.UpdatePageRequest{
			PageID: pageID,
			Blocks: []pagewright.PageContentBlock{
				{PlaceholderID: "main", ContentTemplateID: "1", SortOrder: 2, HTMLContent: "<p>second</p>"},
				{PlaceholderID: "main", ContentTemplateID: "2", SortOrder: 1, HTMLContent: "<p>first</p>"},
			},
		})
		require.NoError(t, err)

		html, err := svc.ComposeForPreview(ctx, pageID)
		require.NoError(t, err)
		assert.Contains(t, html, "<p>first</p><p>second</p>")
	})

	t.Run("block without html renders the fallback", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID, previewTemplate)

		_, err := svc.UpdatePage(ctx, pagewright.UpdatePageRequest{
			PageID: pageID,
			Blocks: []pagewright.PageContentBlock{
				{PlaceholderID: "main", ContentTemplateID: "empty", InstanceName: "Promo <Banner>"},
			},
		})
		require.NoError(t, err)

		html, err := svc.ComposeForPreview(ctx, pageID)
		require.NoError(t, err)

		assert.Contains(t, html, `<div class="content-block-fallback">`)
		assert.Contains(t, html, "<h3>Promo &lt;Banner&gt;</h3>", "instance name is escaped")
		assert.Contains(t, html, "<p>No content available</p>")
	})

	t.Run("unnamed block falls back to a generic title", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID, previewTemplate)

		_, err := svc.UpdatePage(ctx, pagewright.UpdatePageRequest{
			PageID: pageID,
			Blocks: []pagewright.PageContentBlock{
				{PlaceholderID: "main", ContentTemplateID: "empty"},
			},
		})
		require.NoError(t, err)

		html, err := svc.ComposeForPreview(ctx, pageID)
		require.NoError(t, err)
		assert.Contains(t, html, "<h3>Content block</h3>")
	})

	t.Run("inlines block css before and js after the markup", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID, previewTemplate)

		_, err := svc.UpdatePage(ctx, pagewright.UpdatePageRequest{
			PageID: pageID,
			Blocks: []pagewright.PageContentBlock{
				{
					PlaceholderID:     "main",
					ContentTemplateID: "1",
					HTMLContent:       "<p>styled</p>",
					CSSContent:        "p{color:red}",
					JSContent:         "console.log(1)",
				},
			},
		})
		require.NoError(t, err)

		html, err := svc.ComposeForPreview(ctx, pageID)
		require.NoError(t, err)
		assert.Contains(t, html, "<style>p{color:red}</style><p>styled</p><script>console.log(1)</script>")
	})

	t.Run("missing page", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, err := svc.ComposeForPreview(ctx, 42)
		assert.ErrorIs(t, err, pagewright.ErrPageNotFound)
	})
}
