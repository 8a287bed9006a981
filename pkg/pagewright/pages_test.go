package pagewright_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

func TestPageCRUD(t *testing.T) {
	ctx := context.Background()

	t.Run("create and list", func(t *testing.T) {
		svc, _, _, websiteID := newTestService(t)

		home, err := svc.CreatePage(ctx, pagewright.CreatePageRequest{
			WebsiteID:      websiteID,
			Title:          "Home",
			Path:           "/",
			PageTemplateID: 1,
		})
		require.NoError(t, err)
		require.NotZero(t, home.ID)

		_, err = svc.CreatePage(ctx, pagewright.CreatePageRequest{
			WebsiteID:      websiteID,
			Title:          "About",
			Path:           "/about",
			PageTemplateID: 1,
		})
		require.NoError(t, err)

		pages, err := svc.ListPages(ctx, websiteID)
		require.NoError(t, err)
		assert.Len(t, pages, 2)
	})

	t.Run("update keeps unset fields", func(t *testing.T) {
		svc, _, _, websiteID := newTestService(t)

		page, err := svc.CreatePage(ctx, pagewright.CreatePageRequest{
			WebsiteID:      websiteID,
			Title:          "Home",
			Path:           "/",
			PageTemplateID: 7,
		})
		require.NoError(t, err)

		updated, err := svc.UpdatePage(ctx, pagewright.UpdatePageRequest{
			PageID: page.ID,
			Title:  "Homepage",
		})
		require.NoError(t, err)
		assert.Equal(t, "Homepage", updated.Title)
		assert.Equal(t, "/", updated.Path)
		assert.Equal(t, int64(7), updated.PageTemplateID)
	})

	t.Run("update of unknown page fails", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, err := svc.UpdatePage(ctx, pagewright.UpdatePageRequest{PageID: 404, Title: "x"})
		assert.ErrorIs(t, err, pagewright.ErrPageNotFound)
	})
}

func TestNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("mark read", func(t *testing.T) {
		svc, repo, _, websiteID := newTestService(t)

		pageID := composeFixture(t, svc, repo, websiteID,
			`<html><body><div id="main"></div></body></html>`)

		_, err := svc.PublishPage(ctx, pagewright.PublishRequest{PageID: pageID, UserID: "editor-1"})
		require.NoError(t, err)

		notifications, err := svc.ListNotifications(ctx, "editor-1")
		require.NoError(t, err)
		require.Len(t, notifications, 1)

		require.NoError(t, svc.MarkNotificationRead(ctx, notifications[0].ID))

		notifications, err = svc.ListNotifications(ctx, "editor-1")
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.True(t, notifications[0].Read)
	})

	t.Run("mark read of unknown notification fails", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		err := svc.MarkNotificationRead(ctx, uuid.New())
		assert.ErrorIs(t, err, pagewright.ErrNotificationNotFound)
	})
}
