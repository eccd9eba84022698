package stores

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"robolibrary/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryFolderStore is an in-memory FolderStore used by tests and local
// development. It mirrors the Mongo implementation's semantics, including
// sentinel handling and name-sorted listings.
type MemoryFolderStore struct {
	mu      sync.RWMutex
	folders map[string]models.Folder
}

func NewMemoryFolderStore() *MemoryFolderStore {
	return &MemoryFolderStore{folders: make(map[string]models.Folder)}
}

func (s *MemoryFolderStore) Get(ctx context.Context, id string) (*models.Folder, error) {
	if err := checkFolderID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	folder, ok := s.folders[id]
	if !ok {
		return nil, models.NewNotFound("folder %q not found", id)
	}
	return &folder, nil
}

func (s *MemoryFolderStore) ListChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	if _, err := parentObjectID(parentID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var children []models.Folder
	for _, folder := range s.folders {
		if folder.ParentRef() == normalizeRef(parentID) {
			children = append(children, folder)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	return children, nil
}

func (s *MemoryFolderStore) Create(ctx context.Context, name, parentID string) (*models.Folder, error) {
	parentObjID, err := parentObjectID(parentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	folder := models.Folder{
		ID:        primitive.NewObjectID(),
		Name:      name,
		ParentID:  parentObjID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.folders[folder.ID.Hex()] = folder
	return &folder, nil
}

func (s *MemoryFolderStore) Rename(ctx context.Context, id, newName string) error {
	if err := checkFolderID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folder, ok := s.folders[id]
	if !ok {
		return models.NewNotFound("folder %q not found", id)
	}
	folder.Name = newName
	folder.UpdatedAt = time.Now()
	s.folders[id] = folder
	return nil
}

func (s *MemoryFolderStore) SetParent(ctx context.Context, id, parentID string) error {
	if err := checkFolderID(id); err != nil {
		return err
	}
	parentObjID, err := parentObjectID(parentID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folder, ok := s.folders[id]
	if !ok {
		return models.NewNotFound("folder %q not found", id)
	}
	folder.ParentID = parentObjID
	folder.UpdatedAt = time.Now()
	s.folders[id] = folder
	return nil
}

func (s *MemoryFolderStore) Delete(ctx context.Context, id string) error {
	if err := checkFolderID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[id]; !ok {
		return models.NewNotFound("folder %q not found", id)
	}
	delete(s.folders, id)
	return nil
}

func (s *MemoryFolderStore) ParentRefs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var refs []string
	for _, folder := range s.folders {
		ref := folder.ParentRef()
		if ref == models.RootFolderID || seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs, nil
}

func (s *MemoryFolderStore) Search(ctx context.Context, query string, limit int64) ([]models.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	var matches []models.Folder
	for _, folder := range s.folders {
		if strings.Contains(strings.ToLower(folder.Name), needle) {
			matches = append(matches, folder)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	if limit > 0 && int64(len(matches)) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// MemoryContentStore is the in-memory counterpart of MongoContentStore.
type MemoryContentStore struct {
	mu       sync.RWMutex
	contents map[string]models.Content
}

func NewMemoryContentStore() *MemoryContentStore {
	return &MemoryContentStore{contents: make(map[string]models.Content)}
}

func (s *MemoryContentStore) Get(ctx context.Context, id string) (*models.Content, error) {
	if err := checkContentID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.contents[id]
	if !ok {
		return nil, models.NewNotFound("content %q not found", id)
	}
	return &content, nil
}

func (s *MemoryContentStore) ListByFolder(ctx context.Context, folderID string) ([]models.Content, error) {
	if _, err := parentObjectID(folderID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []models.Content
	for _, content := range s.contents {
		if content.FolderRef() == normalizeRef(folderID) {
			items = append(items, content)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Title < items[j].Title })
	return items, nil
}

func (s *MemoryContentStore) Create(ctx context.Context, content *models.Content) (*models.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	record := *content
	record.ID = primitive.NewObjectID()
	record.CreatedAt = now
	record.UpdatedAt = now
	s.contents[record.ID.Hex()] = record
	return &record, nil
}

func (s *MemoryContentStore) Rename(ctx context.Context, id, newTitle string) error {
	if err := checkContentID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.contents[id]
	if !ok {
		return models.NewNotFound("content %q not found", id)
	}
	content.Title = newTitle
	content.LastModified = time.Now().Format("2006-01-02")
	content.UpdatedAt = time.Now()
	s.contents[id] = content
	return nil
}

func (s *MemoryContentStore) Delete(ctx context.Context, id string) error {
	if err := checkContentID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contents[id]; !ok {
		return models.NewNotFound("content %q not found", id)
	}
	delete(s.contents, id)
	return nil
}

func (s *MemoryContentStore) DeleteByFolder(ctx context.Context, folderID string) (int64, error) {
	if _, err := parentObjectID(folderID); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, content := range s.contents {
		if content.FolderRef() == normalizeRef(folderID) {
			delete(s.contents, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryContentStore) AttachCourse(ctx context.Context, id, courseID string) error {
	if err := checkContentID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.contents[id]
	if !ok {
		return models.NewNotFound("content %q not found", id)
	}
	for _, existing := range content.CourseIDs {
		if existing == courseID {
			return nil
		}
	}
	content.CourseIDs = append(content.CourseIDs, courseID)
	content.UpdatedAt = time.Now()
	s.contents[id] = content
	return nil
}

func (s *MemoryContentStore) DetachCourse(ctx context.Context, id, courseID string) error {
	if err := checkContentID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	content, ok := s.contents[id]
	if !ok {
		return models.NewNotFound("content %q not found", id)
	}
	// Fresh slice: the old backing array is shared with copies handed out by Get.
	kept := make([]string, 0, len(content.CourseIDs))
	for _, existing := range content.CourseIDs {
		if existing != courseID {
			kept = append(kept, existing)
		}
	}
	content.CourseIDs = kept
	content.UpdatedAt = time.Now()
	s.contents[id] = content
	return nil
}

func (s *MemoryContentStore) FolderRefs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var refs []string
	for _, content := range s.contents {
		ref := content.FolderRef()
		if ref == models.RootFolderID || seen[ref] {
			continue
		}
		seen[ref] = true
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs, nil
}

func (s *MemoryContentStore) Search(ctx context.Context, query string, limit int64) ([]models.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	var matches []models.Content
	for _, content := range s.contents {
		if strings.Contains(strings.ToLower(content.Title), needle) ||
			strings.Contains(strings.ToLower(content.Description), needle) {
			matches = append(matches, content)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Title < matches[j].Title })
	if limit > 0 && int64(len(matches)) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func normalizeRef(id string) string {
	if id == "" {
		return models.RootFolderID
	}
	return id
}

func checkFolderID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return models.NewValidation("invalid folder id %q", id)
	}
	return nil
}

func checkContentID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return models.NewValidation("invalid content id %q", id)
	}
	return nil
}
