package jobs

import (
	"context"
	"testing"

	"robolibrary/models"
	"robolibrary/stores"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepRemovesOrphans(t *testing.T) {
	folders := stores.NewMemoryFolderStore()
	contents := stores.NewMemoryContentStore()
	ctx := context.Background()

	kept, err := folders.Create(ctx, "Kept", models.RootFolderID)
	require.NoError(t, err)
	doomed, err := folders.Create(ctx, "Doomed", models.RootFolderID)
	require.NoError(t, err)

	keptContent, err := contents.Create(ctx, &models.Content{
		Title: "kept notes", Type: models.ContentTypePDF, URL: "u", FolderID: &kept.ID,
	})
	require.NoError(t, err)
	rootContent, err := contents.Create(ctx, &models.Content{
		Title: "root notes", Type: models.ContentTypePDF, URL: "u",
	})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := contents.Create(ctx, &models.Content{
			Title: "stranded", Type: models.ContentTypePDF, URL: "u", FolderID: &doomed.ID,
		})
		require.NoError(t, err)
	}

	// Delete the folder out from under its content, simulating a cascade that
	// died between the folder delete and the content delete.
	require.NoError(t, folders.Delete(ctx, doomed.ID.Hex()))

	sweeper := NewOrphanSweeper(folders, contents)
	removed, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = contents.Get(ctx, keptContent.ID.Hex())
	assert.NoError(t, err)
	_, err = contents.Get(ctx, rootContent.ID.Hex())
	assert.NoError(t, err)

	stranded, err := contents.ListByFolder(ctx, doomed.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, stranded)
}

func TestSweepReclaimsOrphanedFolders(t *testing.T) {
	folders := stores.NewMemoryFolderStore()
	contents := stores.NewMemoryContentStore()
	ctx := context.Background()

	top, err := folders.Create(ctx, "Top", models.RootFolderID)
	require.NoError(t, err)
	mid, err := folders.Create(ctx, "Mid", top.ID.Hex())
	require.NoError(t, err)
	leaf, err := folders.Create(ctx, "Leaf", mid.ID.Hex())
	require.NoError(t, err)
	_, err = contents.Create(ctx, &models.Content{
		Title: "mid notes", Type: models.ContentTypePDF, URL: "u", FolderID: &mid.ID,
	})
	require.NoError(t, err)
	_, err = contents.Create(ctx, &models.Content{
		Title: "leaf notes", Type: models.ContentTypePDF, URL: "u", FolderID: &leaf.ID,
	})
	require.NoError(t, err)

	// Drop the top folder without cascading, stranding the whole subtree.
	require.NoError(t, folders.Delete(ctx, top.ID.Hex()))

	sweeper := NewOrphanSweeper(folders, contents)
	removed, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), removed) // two folders, two content records

	for _, folderID := range []string{mid.ID.Hex(), leaf.ID.Hex()} {
		_, err := folders.Get(ctx, folderID)
		assert.True(t, models.IsNotFound(err), "folder %s should be gone", folderID)

		items, err := contents.ListByFolder(ctx, folderID)
		require.NoError(t, err)
		assert.Empty(t, items)
	}
}

func TestSweepCleanStoreIsNoop(t *testing.T) {
	folders := stores.NewMemoryFolderStore()
	contents := stores.NewMemoryContentStore()
	ctx := context.Background()

	folder, err := folders.Create(ctx, "Healthy", models.RootFolderID)
	require.NoError(t, err)
	_, err = contents.Create(ctx, &models.Content{
		Title: "fine", Type: models.ContentTypeVideo, URL: "u", FolderID: &folder.ID,
	})
	require.NoError(t, err)

	sweeper := NewOrphanSweeper(folders, contents)
	removed, err := sweeper.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}
