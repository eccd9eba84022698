package services

import (
	"context"
	"testing"

	"robolibrary/models"
	"robolibrary/stores"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchEmptyQuery(t *testing.T) {
	svc := NewSearchService(stores.NewMemoryFolderStore(), stores.NewMemoryContentStore())

	result, err := svc.Search(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, result.Folders)
	assert.Empty(t, result.Contents)
}

func TestSearchMatchesFoldersAndContents(t *testing.T) {
	folders := stores.NewMemoryFolderStore()
	contents := stores.NewMemoryContentStore()
	library := NewLibraryService(folders, contents)
	svc := NewSearchService(folders, contents)
	ctx := context.Background()

	arduino, err := library.CreateFolder(ctx, "Arduino Basics", models.RootFolderID)
	require.NoError(t, err)
	_, err = library.CreateFolder(ctx, "Chemistry", models.RootFolderID)
	require.NoError(t, err)

	_, err = library.UploadContent(ctx, ContentFields{
		Title:    "Arduino Wiring Guide",
		Type:     models.ContentTypePDF,
		URL:      "https://example.com/wiring",
		FolderID: arduino.ID.Hex(),
	})
	require.NoError(t, err)
	_, err = library.UploadContent(ctx, ContentFields{
		Title:       "Sensor Overview",
		Type:        models.ContentTypeDoc,
		URL:         "https://example.com/sensors",
		Description: "Covers arduino-compatible sensors",
	})
	require.NoError(t, err)

	result, err := svc.Search(ctx, "arduino", 10)
	require.NoError(t, err)

	require.Len(t, result.Folders, 1)
	assert.Equal(t, "Arduino Basics", result.Folders[0].Name)

	// Title match and description match both count.
	require.Len(t, result.Contents, 2)
	assert.Equal(t, "Arduino Wiring Guide", result.Contents[0].Title)
	assert.Equal(t, "Sensor Overview", result.Contents[1].Title)
}

func TestSearchClampsLimit(t *testing.T) {
	folders := stores.NewMemoryFolderStore()
	contents := stores.NewMemoryContentStore()
	library := NewLibraryService(folders, contents)
	svc := NewSearchService(folders, contents)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := library.CreateFolder(ctx, "Module", models.RootFolderID)
		require.NoError(t, err)
	}

	result, err := svc.Search(ctx, "module", 2)
	require.NoError(t, err)
	assert.Len(t, result.Folders, 2)
}
