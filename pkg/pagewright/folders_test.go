package pagewright_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

func TestSanitizeFolderName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "plain name passes", input: "holiday", expected: "holiday"},
		{name: "surrounding whitespace trimmed", input: "  holiday  ", expected: "holiday"},
		{name: "traversal dots stripped", input: "..holiday..", expected: "holiday"},
		{name: "trailing dots trimmed", input: "holiday.", expected: "holiday"},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "whitespace only rejected", input: "   ", wantErr: true},
		{name: "forward slash rejected", input: "a/b", wantErr: true},
		{name: "backslash rejected", input: `a\b`, wantErr: true},
		{name: "dots only rejected", input: "...", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pagewright.SanitizeFolderName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, pagewright.ErrInvalidFolderName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCreateFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("missing website", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		err := svc.CreateFolder(ctx, pagewright.CreateFolderRequest{FolderPath: "docs/", FolderName: "a"})
		assert.ErrorIs(t, err, pagewright.ErrMissingWebsite)
	})

	t.Run("images root child registers a provider", func(t *testing.T) {
		svc, _, store, websiteID := newTestService(t)

		err := svc.CreateFolder(ctx, pagewright.CreateFolderRequest{
			WebsiteID:  websiteID,
			FolderPath: "images/",
			FolderName: "Acme",
		})
		require.NoError(t, err)

		exists, err := store.Exists(ctx, "images/Acme/.folderplaceholder")
		require.NoError(t, err)
		assert.True(t, exists)

		match := svc.ResolveFolder(ctx, websiteID, "Acme")
		require.NotNil(t, match)
		assert.Equal(t, "Acme", match.ProviderName)

		// The new folder shows up in the root listing immediately.
		result, err := svc.Browse(ctx, pagewright.BrowseRequest{WebsiteID: websiteID, Prefix: "images/"})
		require.NoError(t, err)
		require.Len(t, result.Folders, 1)
		assert.Equal(t, "images/Acme/", result.Folders[0].Path)
	})

	t.Run("nested folder requires a registered provider", func(t *testing.T) {
		svc, _, _, websiteID := newTestService(t)

		err := svc.CreateFolder(ctx, pagewright.CreateFolderRequest{
			WebsiteID:  websiteID,
			FolderPath: "images/rogue/",
			FolderName: "sub",
		})
		assert.ErrorIs(t, err, pagewright.ErrProviderNotAllowed)
	})

	t.Run("nested folder inside a provider succeeds", func(t *testing.T) {
		svc, repo, store, websiteID := newTestService(t)
		addProvider(t, repo, websiteID, "Getty", "Getty Images")

		err := svc.CreateFolder(ctx, pagewright.CreateFolderRequest{
			WebsiteID:  websiteID,
			FolderPath: "images/getty/",
			FolderName: "nature",
		})
		require.NoError(t, err)

		exists, err := store.Exists(ctx, "images/getty/nature/.folderplaceholder")
		require.NoError(t, err)
		assert.True(t, exists)

		// Nested folders never touch the registry.
		assert.Nil(t, svc.ResolveFolder(ctx, websiteID, "nature"))
	})

	t.Run("existing folder conflicts without writing", func(t *testing.T) {
		svc, _, store, websiteID := newTestService(t)
		putObject(t, store, "docs/reports/q1.pdf", "pdf")

		err := svc.CreateFolder(ctx, pagewright.CreateFolderRequest{
			WebsiteID:  websiteID,
			FolderPath: "docs/",
			FolderName: "reports",
		})
		assert.ErrorIs(t, err, pagewright.ErrFolderExists)

		exists, err := store.Exists(ctx, "docs/reports/.folderplaceholder")
		require.NoError(t, err)
		assert.False(t, exists, "conflicting create must not write a placeholder")
	})

	t.Run("invalid name rejected before storage", func(t *testing.T) {
		svc, _, _, websiteID := newTestService(t)
		err := svc.CreateFolder(ctx, pagewright.CreateFolderRequest{
			WebsiteID:  websiteID,
			FolderPath: "docs/",
			FolderName: "a/b",
		})
		assert.ErrorIs(t, err, pagewright.ErrInvalidFolderName)
	})

	t.Run("path outside allowed roots rejected", func(t *testing.T) {
		svc, _, _, websiteID := newTestService(t)
		err := svc.CreateFolder(ctx, pagewright.CreateFolderRequest{
			WebsiteID:  websiteID,
			FolderPath: "secrets/",
			FolderName: "x",
		})
		assert.ErrorIs(t, err, pagewright.ErrForbiddenPath)
	})
}

func TestDeleteFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("roots cannot be deleted", func(t *testing.T) {
		svc, _, _, websiteID := newTestService(t)
		for _, path := range []string{"images/", "docs/", ""} {
			err := svc.DeleteFolder(ctx, pagewright.DeleteFolderRequest{WebsiteID: websiteID, FolderPath: path})
			assert.ErrorIs(t, err, pagewright.ErrForbiddenPath, "path %q", path)
		}
	})

	t.Run("folder with content is rejected", func(t *testing.T) {
		svc, _, store, websiteID := newTestService(t)
		putObject(t, store, "docs/reports/.folderplaceholder", "")
		putObject(t, store, "docs/reports/q1.pdf", "pdf")

		err := svc.DeleteFolder(ctx, pagewright.DeleteFolderRequest{WebsiteID: websiteID, FolderPath: "docs/reports/"})
		assert.ErrorIs(t, err, pagewright.ErrFolderNotEmpty)
	})

	t.Run("folder with subfolders is rejected", func(t *testing.T) {
		svc, _, store, websiteID := newTestService(t)
		putObject(t, store, "docs/reports/2024/q1.pdf", "pdf")

		err := svc.DeleteFolder(ctx, pagewright.DeleteFolderRequest{WebsiteID: websiteID, FolderPath: "docs/reports/"})
		assert.ErrorIs(t, err, pagewright.ErrFolderNotEmpty)
	})

	t.Run("empty folder is removed along with its registry row", func(t *testing.T) {
		svc, _, store, websiteID := newTestService(t)

		require.NoError(t, svc.CreateFolder(ctx, pagewright.CreateFolderRequest{
			WebsiteID:  websiteID,
			FolderPath: "images/",
			FolderName: "Acme",
		}))
		require.NotNil(t, svc.ResolveFolder(ctx, websiteID, "Acme"))

		err := svc.DeleteFolder(ctx, pagewright.DeleteFolderRequest{WebsiteID: websiteID, FolderPath: "images/Acme/"})
		require.NoError(t, err)

		exists, err := store.Exists(ctx, "images/Acme/.folderplaceholder")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Nil(t, svc.ResolveFolder(ctx, websiteID, "Acme"))
	})

	t.Run("variant path resolves to the canonical registry row", func(t *testing.T) {
		svc, repo, store, websiteID := newTestService(t)
		addProvider(t, repo, websiteID, "Getty", "Getty Images")
		putObject(t, store, "images/getty/.folderplaceholder", "")

		err := svc.DeleteFolder(ctx, pagewright.DeleteFolderRequest{WebsiteID: websiteID, FolderPath: "images/getty/"})
		require.NoError(t, err)
		assert.Nil(t, svc.ResolveFolder(ctx, websiteID, "Getty"))
	})

	t.Run("missing placeholder is tolerated", func(t *testing.T) {
		svc, _, _, websiteID := newTestService(t)

		err := svc.DeleteFolder(ctx, pagewright.DeleteFolderRequest{WebsiteID: websiteID, FolderPath: "docs/ghost/"})
		assert.NoError(t, err)
	})
}
