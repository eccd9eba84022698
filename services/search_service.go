package services

import (
	"context"

	"robolibrary/models"
	"robolibrary/stores"
)

const defaultSearchLimit = 50

type SearchService struct {
	folders  stores.FolderStore
	contents stores.ContentStore
}

type SearchResult struct {
	Folders  []models.Folder  `json:"folders"`
	Contents []models.Content `json:"contents"`
}

func NewSearchService(folders stores.FolderStore, contents stores.ContentStore) *SearchService {
	return &SearchService{folders: folders, contents: contents}
}

// Search runs a case-insensitive match over folder names and content
// titles/descriptions. An empty query returns empty results rather than the
// whole library.
func (s *SearchService) Search(ctx context.Context, query string, limit int64) (*SearchResult, error) {
	if query == "" {
		return &SearchResult{Folders: []models.Folder{}, Contents: []models.Content{}}, nil
	}
	if limit <= 0 || limit > defaultSearchLimit {
		limit = defaultSearchLimit
	}

	folders, err := s.folders.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	contents, err := s.contents.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if folders == nil {
		folders = []models.Folder{}
	}
	if contents == nil {
		contents = []models.Content{}
	}

	return &SearchResult{Folders: folders, Contents: contents}, nil
}
