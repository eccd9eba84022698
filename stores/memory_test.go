package stores

import (
	"context"
	"testing"

	"robolibrary/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParentObjectID(t *testing.T) {
	objID, err := parentObjectID("")
	require.NoError(t, err)
	assert.Nil(t, objID)

	objID, err = parentObjectID(models.RootFolderID)
	require.NoError(t, err)
	assert.Nil(t, objID)

	objID, err = parentObjectID("64b0c8c2a7e1d2f3a4b5c6d7")
	require.NoError(t, err)
	require.NotNil(t, objID)
	assert.Equal(t, "64b0c8c2a7e1d2f3a4b5c6d7", objID.Hex())

	_, err = parentObjectID("not-hex")
	assert.True(t, models.IsValidation(err))
}

func TestMemoryFolderStoreListChildrenSorted(t *testing.T) {
	store := NewMemoryFolderStore()
	ctx := context.Background()

	for _, name := range []string{"zebra", "apple", "mango"} {
		_, err := store.Create(ctx, name, models.RootFolderID)
		require.NoError(t, err)
	}

	children, err := store.ListChildren(ctx, models.RootFolderID)
	require.NoError(t, err)
	require.Len(t, children, 3)
	assert.Equal(t, "apple", children[0].Name)
	assert.Equal(t, "mango", children[1].Name)
	assert.Equal(t, "zebra", children[2].Name)
}

func TestMemoryFolderStoreSetParent(t *testing.T) {
	store := NewMemoryFolderStore()
	ctx := context.Background()

	parent, err := store.Create(ctx, "parent", models.RootFolderID)
	require.NoError(t, err)
	child, err := store.Create(ctx, "child", models.RootFolderID)
	require.NoError(t, err)

	require.NoError(t, store.SetParent(ctx, child.ID.Hex(), parent.ID.Hex()))
	moved, err := store.Get(ctx, child.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, parent.ID.Hex(), moved.ParentRef())

	require.NoError(t, store.SetParent(ctx, child.ID.Hex(), ""))
	moved, err = store.Get(ctx, child.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.RootFolderID, moved.ParentRef())

	err = store.SetParent(ctx, "64b0c8c2a7e1d2f3a4b5c6d7", "")
	assert.True(t, models.IsNotFound(err))
}

func TestMemoryContentStoreDeleteByFolder(t *testing.T) {
	store := NewMemoryContentStore()
	ctx := context.Background()

	folder, err := NewMemoryFolderStore().Create(ctx, "f", models.RootFolderID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := store.Create(ctx, &models.Content{Title: "in folder", FolderID: &folder.ID})
		require.NoError(t, err)
	}
	rootItem, err := store.Create(ctx, &models.Content{Title: "at root"})
	require.NoError(t, err)

	deleted, err := store.DeleteByFolder(ctx, folder.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	_, err = store.Get(ctx, rootItem.ID.Hex())
	assert.NoError(t, err)

	// Deleting from an already-empty folder is a zero-count success.
	deleted, err = store.DeleteByFolder(ctx, folder.ID.Hex())
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestMemoryContentStoreFolderRefsExcludesRoot(t *testing.T) {
	store := NewMemoryContentStore()
	ctx := context.Background()

	folder, err := NewMemoryFolderStore().Create(ctx, "f", models.RootFolderID)
	require.NoError(t, err)

	_, err = store.Create(ctx, &models.Content{Title: "rooted"})
	require.NoError(t, err)
	_, err = store.Create(ctx, &models.Content{Title: "a", FolderID: &folder.ID})
	require.NoError(t, err)
	_, err = store.Create(ctx, &models.Content{Title: "b", FolderID: &folder.ID})
	require.NoError(t, err)

	refs, err := store.FolderRefs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{folder.ID.Hex()}, refs)
}

func TestMemoryFolderStoreParentRefsExcludesRoot(t *testing.T) {
	store := NewMemoryFolderStore()
	ctx := context.Background()

	parent, err := store.Create(ctx, "parent", models.RootFolderID)
	require.NoError(t, err)
	_, err = store.Create(ctx, "child a", parent.ID.Hex())
	require.NoError(t, err)
	_, err = store.Create(ctx, "child b", parent.ID.Hex())
	require.NoError(t, err)

	refs, err := store.ParentRefs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{parent.ID.Hex()}, refs)
}

func TestMemoryContentStoreCourses(t *testing.T) {
	store := NewMemoryContentStore()
	ctx := context.Background()

	content, err := store.Create(ctx, &models.Content{Title: "c"})
	require.NoError(t, err)
	id := content.ID.Hex()

	require.NoError(t, store.AttachCourse(ctx, id, "c1"))
	require.NoError(t, store.AttachCourse(ctx, id, "c1"))
	require.NoError(t, store.AttachCourse(ctx, id, "c2"))

	snapshot, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, snapshot.CourseIDs)

	require.NoError(t, store.DetachCourse(ctx, id, "c1"))
	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"c2"}, got.CourseIDs)

	// A record handed out before the detach must not mutate under the caller.
	assert.Equal(t, []string{"c1", "c2"}, snapshot.CourseIDs)

	assert.True(t, models.IsNotFound(store.AttachCourse(ctx, "64b0c8c2a7e1d2f3a4b5c6d7", "c1")))
}

func TestMemoryStoresRejectMalformedIDs(t *testing.T) {
	folders := NewMemoryFolderStore()
	contents := NewMemoryContentStore()
	ctx := context.Background()

	_, err := folders.Get(ctx, "not-hex")
	assert.True(t, models.IsValidation(err))
	assert.True(t, models.IsValidation(folders.Rename(ctx, "not-hex", "x")))
	assert.True(t, models.IsValidation(folders.SetParent(ctx, "not-hex", "")))
	assert.True(t, models.IsValidation(folders.Delete(ctx, "not-hex")))
	_, err = folders.ListChildren(ctx, "not-hex")
	assert.True(t, models.IsValidation(err))

	_, err = contents.Get(ctx, "not-hex")
	assert.True(t, models.IsValidation(err))
	assert.True(t, models.IsValidation(contents.Rename(ctx, "not-hex", "x")))
	assert.True(t, models.IsValidation(contents.Delete(ctx, "not-hex")))
	assert.True(t, models.IsValidation(contents.AttachCourse(ctx, "not-hex", "c1")))
	_, err = contents.ListByFolder(ctx, "not-hex")
	assert.True(t, models.IsValidation(err))
	_, err = contents.DeleteByFolder(ctx, "not-hex")
	assert.True(t, models.IsValidation(err))
}
