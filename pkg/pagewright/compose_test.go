package pagewright_test

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewright/pagewright/pkg/pagewright"
	"github.com/pagewright/pagewright/pkg/pagewright/repo/memory"
)

// composeFixture seeds a page on a template and returns the page id.
func composeFixture(t *testing.T, svc pagewright.Service, repo *memory.Repository, websiteID int64, templateHTML string) int64 {
	t.Helper()

	tmpl := &pagewright.PageTemplate{Name: "layout", HTMLStructure: templateHTML}
	repo.AddPageTemplate(tmpl)

	page, err := svc.CreatePage(context.Background(), pagewright.CreatePageRequest{
		WebsiteID:      websiteID,
		Title:          "Home",
		Path:           "/",
		PageTemplateID: tmpl.ID,
	})
	require.NoError(t, err)
	return page.ID
}

func newContentTemplate(t *testing.T, repo *memory.Repository, name, html string) int64 {
	t.Helper()
	tmpl := &pagewright.ContentTemplate{Name: name, HTMLContent: html}
	require.NoError(t, repo.CreateContentTemplate(context.Background(), tmpl))
	return tmpl.ID
}

func TestComposeForPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("substitutes zone content by element id", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID,
			`<html><head></head><body><div id="main"></div><div id="side"><p>keep</p></div></body></html>`)
		heroID := newContentTemplate(t, repo, "hero", "<p>Hi</p>")

		html, err := svc.ComposeForPublish(ctx, pageID, map[string][]pagewright.BlockRef{
			"main": {{ID: strconv.FormatInt(heroID, 10)}},
		})
		require.NoError(t, err)

		assert.Contains(t, html, fmt.Sprintf(`<div data-template-id="%d"><p>Hi</p></div>`, heroID))
		assert.Contains(t, html, "<p>keep</p>", "untouched zones keep their markup")
	})

	t.Run("orders blocks within a zone", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID,
			`<html><body><div id="main"></div></body></html>`)
		firstID := newContentTemplate(t, repo, "first", "<p>one</p>")
		secondID := newContentTemplate(t, repo, "second", "<p>two</p>")

		html, err := svc.ComposeForPublish(ctx, pageID, map[string][]pagewright.BlockRef{
			"main": {
				{ID: strconv.FormatInt(firstID, 10)},
				{ID: strconv.FormatInt(secondID, 10)},
			},
		})
		require.NoError(t, err)

		one := fmt.Sprintf(`<div data-template-id="%d"><p>one</p></div>`, firstID)
		two := fmt.Sprintf(`<div data-template-id="%d"><p>two</p></div>`, secondID)
		assert.Contains(t, html, one+two)
	})

	t.Run("renders block tokens as tagged comments", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID,
			`<html><body><div id="main"></div></body></html>`)

		html, err := svc.ComposeForPublish(ctx, pageID, map[string][]pagewright.BlockRef{
			"main": {
				{ID: pagewright.BlockTokenEmpty},
				{ID: pagewright.BlockTokenJavaScript},
				{ID: pagewright.BlockTokenCSS},
			},
		})
		require.NoError(t, err)

		assert.Contains(t, html, "<!-- block:empty -->")
		assert.Contains(t, html, "<!-- block:javascript -->")
		assert.Contains(t, html, "<!-- block:css -->")
	})

	t.Run("unknown zone is dropped without failing", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID,
			`<html><body><div id="main"></div></body></html>`)
		heroID := newContentTemplate(t, repo, "hero", "<p>Hi</p>")

		html, err := svc.ComposeForPublish(ctx, pageID, map[string][]pagewright.BlockRef{
			"no-such-zone": {{ID: strconv.FormatInt(heroID, 10)}},
		})
		require.NoError(t, err)
		assert.NotContains(t, html, "Hi")
	})

	t.Run("missing template reference is skipped", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID,
			`<html><body><div id="main"></div></body></html>`)

		html, err := svc.ComposeForPublish(ctx, pageID, map[string][]pagewright.BlockRef{
			"main": {{ID: "99999"}},
		})
		require.NoError(t, err)
		assert.NotContains(t, html, "data-template-id")
	})

	t.Run("fragment template is returned without document scaffolding", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID, `<div id="main"></div>`)
		heroID := newContentTemplate(t, repo, "hero", "<p>Hi</p>")

		html, err := svc.ComposeForPublish(ctx, pageID, map[string][]pagewright.BlockRef{
			"main": {{ID: strconv.FormatInt(heroID, 10)}},
		})
		require.NoError(t, err)
		assert.NotContains(t, html, "<html")
		assert.NotContains(t, html, "<body")
		assert.Contains(t, html, `<div id="main">`)
	})

	t.Run("missing page", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, err := svc.ComposeForPublish(ctx, 42, nil)
		assert.ErrorIs(t, err, pagewright.ErrPageNotFound)
	})

	t.Run("missing page template", func(t *testing.T) {
		svc, _, _, websiteID := newTestService(t)
		page, err := svc.CreatePage(ctx, pagewright.CreatePageRequest{
			WebsiteID:      websiteID,
			Title:          "Orphan",
			PageTemplateID: 999,
		})
		require.NoError(t, err)

		_, err = svc.ComposeForPublish(ctx, page.ID, nil)
		assert.ErrorIs(t, err, pagewright.ErrTemplateNotFound)
	})
}

func TestPublishPage(t *testing.T) {
	ctx := context.Background()

	t.Run("returns html and records a notification", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID,
			`<html><body><div id="main"></div></body></html>`)
		heroID := newContentTemplate(t, repo, "hero", "<p>Hi</p>")

		html, err := svc.PublishPage(ctx, pagewright.PublishRequest{
			PageID: pageID,
			UserID: "editor-1",
			ZoneContent: map[string][]pagewright.BlockRef{
				"main": {{ID: strconv.FormatInt(heroID, 10)}},
			},
		})
		require.NoError(t, err)
		assert.Contains(t, html, "<p>Hi</p>")

		notifications, err := svc.ListNotifications(ctx, "editor-1")
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Contains(t, notifications[0].Message, `"Home"`)
		assert.Equal(t, fmt.Sprintf("/pages/%d", pageID), notifications[0].Link)
		assert.False(t, notifications[0].Read)
	})

	t.Run("anonymous publish skips the notification", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)
		pageID := composeFixture(t, svc, repo, websiteID,
			`<html><body><div id="main"></div></body></html>`)

		_, err := svc.PublishPage(ctx, pagewright.PublishRequest{PageID: pageID})
		require.NoError(t, err)

		notifications, err := svc.ListNotifications(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, notifications)
	})
}
