package memory_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagewright/pagewright/pkg/pagewright"
	"github.com/pagewright/pagewright/pkg/pagewright/storage/memory"
)

func put(t *testing.T, b *memory.Backend, key, content string) {
	t.Helper()
	require.NoError(t, b.Upload(context.Background(), key, strings.NewReader(content)))
}

func TestUploadDownload(t *testing.T) {
	ctx := context.Background()
	b := memory.New()

	put(t, b, "docs/a.txt", "hello")

	reader, err := b.Download(ctx, "docs/a.txt")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = b.Download(ctx, "docs/missing.txt")
	assert.ErrorIs(t, err, pagewright.ErrBlobNotFound)
}

func TestCreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	b := memory.New()

	require.NoError(t, b.CreateIfAbsent(ctx, "docs/x/.folderplaceholder"))

	err := b.CreateIfAbsent(ctx, "docs/x/.folderplaceholder")
	assert.ErrorIs(t, err, pagewright.ErrBlobExists)

	meta, err := b.GetObjectMeta(ctx, "docs/x/.folderplaceholder")
	require.NoError(t, err)
	assert.Zero(t, meta.Size)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	b := memory.New()

	put(t, b, "docs/a.txt", "hello")
	require.NoError(t, b.Delete(ctx, "docs/a.txt"))
	require.NoError(t, b.Delete(ctx, "docs/a.txt"))

	exists, err := b.Exists(ctx, "docs/a.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListPage(t *testing.T) {
	ctx := context.Background()

	t.Run("direct children and subfolder prefixes", func(t *testing.T) {
		b := memory.New()
		put(t, b, "docs/a.txt", "a")
		put(t, b, "docs/b.txt", "b")
		put(t, b, "docs/sub/c.txt", "c")
		put(t, b, "other/d.txt", "d")

		result, err := b.ListPage(ctx, pagewright.ListPageRequest{Prefix: "docs/", PageSize: 10})
		require.NoError(t, err)

		require.Len(t, result.Objects, 2)
		assert.Equal(t, "docs/a.txt", result.Objects[0].Key)
		assert.Equal(t, "docs/b.txt", result.Objects[1].Key)
		assert.Equal(t, []string{"docs/sub/"}, result.Prefixes)
		assert.False(t, result.IsTruncated)
	})

	t.Run("pagination with continuation token", func(t *testing.T) {
		b := memory.New()
		put(t, b, "docs/a.txt", "a")
		put(t, b, "docs/b.txt", "b")
		put(t, b, "docs/c.txt", "c")
		put(t, b, "docs/sub/d.txt", "d")

		first, err := b.ListPage(ctx, pagewright.ListPageRequest{Prefix: "docs/", PageSize: 2})
		require.NoError(t, err)
		require.Len(t, first.Objects, 2)
		assert.True(t, first.IsTruncated)
		assert.NotEmpty(t, first.NextContinuationToken)
		assert.Len(t, first.Prefixes, 1)

		second, err := b.ListPage(ctx, pagewright.ListPageRequest{
			Prefix:            "docs/",
			PageSize:          2,
			ContinuationToken: first.NextContinuationToken,
		})
		require.NoError(t, err)
		require.Len(t, second.Objects, 1)
		assert.Equal(t, "docs/c.txt", second.Objects[0].Key)
		assert.False(t, second.IsTruncated)
		assert.Empty(t, second.Prefixes, "prefixes are first-page only")
	})

	t.Run("empty prefix lists nothing under absent folder", func(t *testing.T) {
		b := memory.New()
		result, err := b.ListPage(ctx, pagewright.ListPageRequest{Prefix: "ghost/", PageSize: 10})
		require.NoError(t, err)
		assert.Empty(t, result.Objects)
		assert.Empty(t, result.Prefixes)
	})
}
