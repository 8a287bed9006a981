package pagewright_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

func TestBrowseGuards(t *testing.T) {
	ctx := context.Background()
	svc, _, _, websiteID := newTestService(t)

	t.Run("missing website", func(t *testing.T) {
		_, err := svc.Browse(ctx, pagewright.BrowseRequest{Prefix: "images/"})
		assert.ErrorIs(t, err, pagewright.ErrMissingWebsite)
	})

	t.Run("path outside allowed roots", func(t *testing.T) {
		_, err := svc.Browse(ctx, pagewright.BrowseRequest{WebsiteID: websiteID, Prefix: "etc/passwd"})
		assert.ErrorIs(t, err, pagewright.ErrForbiddenPath)
	})
}

func TestBrowseImagesRoot(t *testing.T) {
	ctx := context.Background()

	t.Run("synthesizes one folder per provider", func(t *testing.T) {
		svc, repo, store, websiteID := newTestService(t)
		addProvider(t, repo, websiteID, "Getty", "Getty Images")
		addProvider(t, repo, websiteID, "unsplash", "Unsplash")

		// Getty's content was historically written under the lowercase key.
		putObject(t, store, "images/getty/photo.jpg", "jpg")

		result, err := svc.Browse(ctx, pagewright.BrowseRequest{WebsiteID: websiteID, Prefix: "images/"})
		require.NoError(t, err)
		require.Len(t, result.Folders, 2)

		getty := result.Folders[0]
		assert.Equal(t, "Getty Images", getty.Name)
		assert.Equal(t, "images/getty/", getty.Path)
		assert.Equal(t, "getty", getty.ActualProvider)
		assert.Equal(t, "Getty", getty.ProviderID)

		// No content anywhere: the exact variant names the folder.
		unsplash := result.Folders[1]
		assert.Equal(t, "Unsplash", unsplash.Name)
		assert.Equal(t, "images/unsplash/", unsplash.Path)
	})

	t.Run("exact variant wins when it has content", func(t *testing.T) {
		svc, repo, store, websiteID := newTestService(t)
		addProvider(t, repo, websiteID, "Getty", "Getty Images")
		putObject(t, store, "images/Getty/photo.jpg", "jpg")

		result, err := svc.Browse(ctx, pagewright.BrowseRequest{WebsiteID: websiteID, Prefix: "images/"})
		require.NoError(t, err)
		require.Len(t, result.Folders, 1)
		assert.Equal(t, "images/Getty/", result.Folders[0].Path)
	})

	t.Run("each provider appears exactly once", func(t *testing.T) {
		svc, repo, store, websiteID := newTestService(t)
		addProvider(t, repo, websiteID, "MyStock", "My Stock")

		// Content under two different variants must not duplicate the folder.
		putObject(t, store, "images/MyStock/a.jpg", "a")
		putObject(t, store, "images/mystock/b.jpg", "b")

		result, err := svc.Browse(ctx, pagewright.BrowseRequest{WebsiteID: websiteID, Prefix: "images/"})
		require.NoError(t, err)
		require.Len(t, result.Folders, 1)
		assert.Equal(t, "images/MyStock/", result.Folders[0].Path)
	})

	t.Run("no providers yields empty listing", func(t *testing.T) {
		svc, _, _, websiteID := newTestService(t)

		result, err := svc.Browse(ctx, pagewright.BrowseRequest{WebsiteID: websiteID, Prefix: "images/"})
		require.NoError(t, err)
		assert.Empty(t, result.Folders)
		assert.Empty(t, result.Files)
	})
}

func TestBrowsePrefix(t *testing.T) {
	ctx := context.Background()

	t.Run("lists files and labels subfolders with the provider", func(t *testing.T) {
		svc, repo, store, websiteID := newTestService(t)
		addProvider(t, repo, websiteID, "Getty", "Getty Images")

		putObject(t, store, "images/getty/photo.jpg", "jpg")
		putObject(t, store, "images/getty/nature/tree.jpg", "jpg")

		result, err := svc.Browse(ctx, pagewright.BrowseRequest{WebsiteID: websiteID, Prefix: "images/getty/"})
		require.NoError(t, err)

		require.Len(t, result.Folders, 1)
		assert.Equal(t, "nature", result.Folders[0].Name)
		assert.Equal(t, "images/getty/nature/", result.Folders[0].Path)
		assert.Equal(t, "Getty", result.Folders[0].ProviderID)

		require.Len(t, result.Files, 1)
		assert.Equal(t, "photo.jpg", result.Files[0].Name)
		assert.Equal(t, "images/getty/photo.jpg", result.Files[0].Path)
		assert.NotEmpty(t, result.Files[0].URL)
	})

	t.Run("hides thumbnails and folder placeholders", func(t *testing.T) {
		svc, _, store, websiteID := newTestService(t)

		putObject(t, store, "docs/reports/q1.pdf", "pdf")
		putObject(t, store, "docs/reports/tmb-0-q1.pdf", "thumb")
		putObject(t, store, "docs/reports/tmb-thumbnail-q1.pdf", "thumb")
		putObject(t, store, "docs/reports/.folderplaceholder", "")

		result, err := svc.Browse(ctx, pagewright.BrowseRequest{WebsiteID: websiteID, Prefix: "docs/reports/"})
		require.NoError(t, err)
		require.Len(t, result.Files, 1)
		assert.Equal(t, "q1.pdf", result.Files[0].Name)
	})

	t.Run("pages through large folders", func(t *testing.T) {
		svc, _, store, websiteID := newTestService(t)

		total := pagewright.BrowsePageSize + 5
		for i := 0; i < total; i++ {
			putObject(t, store, fmt.Sprintf("docs/archive/file-%03d.txt", i), "x")
		}
		putObject(t, store, "docs/archive/older/keep.txt", "x")

		first, err := svc.Browse(ctx, pagewright.BrowseRequest{WebsiteID: websiteID, Prefix: "docs/archive/"})
		require.NoError(t, err)
		assert.Len(t, first.Files, pagewright.BrowsePageSize)
		assert.Len(t, first.Folders, 1)
		require.NotEmpty(t, first.ContinuationToken)

		second, err := svc.Browse(ctx, pagewright.BrowseRequest{
			WebsiteID:         websiteID,
			Prefix:            "docs/archive/",
			ContinuationToken: first.ContinuationToken,
		})
		require.NoError(t, err)
		assert.Len(t, second.Files, total-pagewright.BrowsePageSize)
		assert.Empty(t, second.Folders, "folders repeat only on the first page")
		assert.Empty(t, second.ContinuationToken)

		seen := make(map[string]bool)
		for _, f := range append(first.Files, second.Files...) {
			assert.False(t, seen[f.Name], "file %s listed twice", f.Name)
			seen[f.Name] = true
		}
		assert.Len(t, seen, total)
	})

	t.Run("missing trailing slash is normalized", func(t *testing.T) {
		svc, _, store, websiteID := newTestService(t)
		putObject(t, store, "docs/notes/a.txt", "a")

		result, err := svc.Browse(ctx, pagewright.BrowseRequest{WebsiteID: websiteID, Prefix: "docs/notes"})
		require.NoError(t, err)
		assert.Equal(t, "docs/notes/", result.Prefix)
		assert.Len(t, result.Files, 1)
	})
}
