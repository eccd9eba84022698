package services

import (
	"context"
	"fmt"
	"time"

	"robolibrary/models"
	"robolibrary/stores"
	"robolibrary/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// ItemKind discriminates the two entity types the library mutates.
type ItemKind string

const (
	KindFolder ItemKind = "folder"
	KindFile   ItemKind = "file"
)

// FolderInfo is the caller-facing view of a folder, covering both persisted
// folders and the virtual root.
type FolderInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// Breadcrumb is one step of the ancestor trail, ordered root-first.
type Breadcrumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ContentCounts struct {
	Subfolders int `json:"subfolders"`
	Files      int `json:"files"`
}

// LibraryContents is the navigable view of one folder: its metadata, direct
// children and the breadcrumb trail back to the root.
type LibraryContents struct {
	Folder      FolderInfo       `json:"folder"`
	Subfolders  []models.Folder  `json:"subfolders"`
	Files       []models.Content `json:"files"`
	Breadcrumbs []Breadcrumb     `json:"breadcrumbs"`
	Counts      ContentCounts    `json:"counts"`
}

// ContentFields carries the caller-supplied fields for UploadContent.
type ContentFields struct {
	Title       string             `json:"title"`
	Type        models.ContentType `json:"type"`
	URL         string             `json:"url"`
	FileURL     string             `json:"file_url"`
	FolderID    string             `json:"folder_id"`
	Size        string             `json:"size"`
	Description string             `json:"description"`
	CourseIDs   []string           `json:"course_ids"`
}

// LibraryService orchestrates the folder and content stores into a single
// tree view and enforces the cascade semantics neither store knows about.
// It is stateless between calls; both stores are injected.
type LibraryService struct {
	folders  stores.FolderStore
	contents stores.ContentStore
}

func NewLibraryService(folders stores.FolderStore, contents stores.ContentStore) *LibraryService {
	return &LibraryService{folders: folders, contents: contents}
}

// GetContents returns the folder's metadata, direct subfolders, direct
// content items and the breadcrumb trail from the root. The three top-level
// reads are independent and run concurrently; the breadcrumb walk is
// sequential because each step depends on the previous ancestor. Any failed
// read fails the whole call.
func (s *LibraryService) GetContents(ctx context.Context, folderID string) (*LibraryContents, error) {
	if folderID == "" {
		folderID = models.RootFolderID
	}

	var (
		info       FolderInfo
		subfolders []models.Folder
		files      []models.Content
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if folderID == models.RootFolderID {
			// The root has no persisted document; synthesize it.
			info = FolderInfo{ID: models.RootFolderID, Name: models.RootFolderName}
			return nil
		}
		folder, err := s.folders.Get(gctx, folderID)
		if err != nil {
			return err
		}
		info = FolderInfo{ID: folder.ID.Hex(), Name: folder.Name, ParentID: folder.ParentRef()}
		return nil
	})

	g.Go(func() error {
		var err error
		subfolders, err = s.folders.ListChildren(gctx, folderID)
		return err
	})

	g.Go(func() error {
		var err error
		files, err = s.contents.ListByFolder(gctx, folderID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	breadcrumbs, err := s.buildBreadcrumbs(ctx, info)
	if err != nil {
		return nil, err
	}

	if subfolders == nil {
		subfolders = []models.Folder{}
	}
	if files == nil {
		files = []models.Content{}
	}

	return &LibraryContents{
		Folder:      info,
		Subfolders:  subfolders,
		Files:       files,
		Breadcrumbs: breadcrumbs,
		Counts:      ContentCounts{Subfolders: len(subfolders), Files: len(files)},
	}, nil
}

// buildBreadcrumbs walks parent links upward from the resolved folder,
// prepending each ancestor until the sentinel is reached. The walk tracks
// visited ids so a corrupted tree cannot loop it forever.
func (s *LibraryService) buildBreadcrumbs(ctx context.Context, info FolderInfo) ([]Breadcrumb, error) {
	crumbs := []Breadcrumb{{ID: info.ID, Name: info.Name}}
	if info.ID == models.RootFolderID {
		return crumbs, nil
	}

	seen := map[string]bool{info.ID: true}
	parentID := info.ParentID

	for parentID != models.RootFolderID {
		if seen[parentID] {
			return nil, models.NewPersistence(nil, "folder tree cycle detected at %q", parentID)
		}
		seen[parentID] = true

		parent, err := s.folders.Get(ctx, parentID)
		if err != nil {
			return nil, err
		}

		crumbs = append([]Breadcrumb{{ID: parent.ID.Hex(), Name: parent.Name}}, crumbs...)
		parentID = parent.ParentRef()
	}

	return append([]Breadcrumb{{ID: models.RootFolderID, Name: models.RootFolderName}}, crumbs...), nil
}

// CreateFolder creates a folder under the given parent. The parent must
// resolve to an existing folder or be the root sentinel; a dangling parent is
// a validation failure, not a silent orphan. Duplicate names under one parent
// are permitted.
func (s *LibraryService) CreateFolder(ctx context.Context, name, parentID string) (*models.Folder, error) {
	if err := utils.ValidateFolderName(name); err != nil {
		return nil, err
	}
	if parentID == "" {
		parentID = models.RootFolderID
	}

	if parentID != models.RootFolderID {
		if _, err := s.folders.Get(ctx, parentID); err != nil {
			if models.IsNotFound(err) {
				return nil, models.NewValidation("parent folder %q does not exist", parentID)
			}
			return nil, err
		}
	}

	return s.folders.Create(ctx, name, parentID)
}

// UploadContent records a new content item. The owning folder must exist,
// the type must be one of the closed set, and at least one locator (url or
// file_url) must be populated. Status is always Published on creation.
func (s *LibraryService) UploadContent(ctx context.Context, fields ContentFields) (*models.Content, error) {
	if err := utils.ValidateContentTitle(fields.Title); err != nil {
		return nil, err
	}
	if !fields.Type.Valid() {
		return nil, models.NewValidation("unknown content type %q", fields.Type)
	}
	if fields.URL == "" && fields.FileURL == "" {
		return nil, models.NewValidation("content needs a url or an uploaded file")
	}

	folderID := fields.FolderID
	if folderID == "" {
		folderID = models.RootFolderID
	}

	var folderObjID *primitive.ObjectID
	if folderID != models.RootFolderID {
		folder, err := s.folders.Get(ctx, folderID)
		if err != nil {
			if models.IsNotFound(err) {
				return nil, models.NewValidation("folder %q does not exist", folderID)
			}
			return nil, err
		}
		folderObjID = &folder.ID
	}

	content := &models.Content{
		Title:        fields.Title,
		Type:         fields.Type,
		URL:          fields.URL,
		FileURL:      fields.FileURL,
		FolderID:     folderObjID,
		Size:         fields.Size,
		LastModified: time.Now().Format("2006-01-02"),
		Status:       models.ContentStatusPublished,
		CourseIDs:    dedupe(fields.CourseIDs),
		Description:  fields.Description,
	}

	return s.contents.Create(ctx, content)
}

// GetContent is a point lookup of a single content record.
func (s *LibraryService) GetContent(ctx context.Context, id string) (*models.Content, error) {
	return s.contents.Get(ctx, id)
}

// DeleteItem removes a single content item, or a folder together with its
// entire subtree. The cascade collects every descendant folder first, then
// deletes content before folders and folders leaf-to-root, so a retry after
// a partial failure converges instead of erroring on already-gone records.
func (s *LibraryService) DeleteItem(ctx context.Context, id string, kind ItemKind) error {
	switch kind {
	case KindFile:
		return s.contents.Delete(ctx, id)
	case KindFolder:
		return s.deleteFolderTree(ctx, id)
	default:
		return models.NewValidation("unknown item kind %q", kind)
	}
}

func (s *LibraryService) deleteFolderTree(ctx context.Context, id string) error {
	if id == models.RootFolderID {
		return models.NewValidation("the root folder cannot be deleted")
	}
	if _, err := s.folders.Get(ctx, id); err != nil {
		return err
	}

	order, err := s.collectSubtree(ctx, id)
	if err != nil {
		return err
	}

	// Content first, so no content record ever points at a still-listed
	// folder while its items are already gone.
	for _, folderID := range order {
		if _, err := s.contents.DeleteByFolder(ctx, folderID); err != nil {
			return fmt.Errorf("cascade delete of folder %s: %w", id, err)
		}
	}

	// Folders leaf-to-root, target last. A descendant already deleted by an
	// earlier partial run is fine.
	for i := len(order) - 1; i >= 0; i-- {
		if err := s.folders.Delete(ctx, order[i]); err != nil {
			if models.IsNotFound(err) && order[i] != id {
				continue
			}
			return fmt.Errorf("cascade delete of folder %s: %w", id, err)
		}
	}

	return nil
}

// collectSubtree returns the target folder and every descendant folder id in
// discovery (parent-before-child) order.
func (s *LibraryService) collectSubtree(ctx context.Context, id string) ([]string, error) {
	var order []string
	seen := map[string]bool{}
	queue := []string{id}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if seen[current] {
			return nil, models.NewPersistence(nil, "folder tree cycle detected at %q", current)
		}
		seen[current] = true
		order = append(order, current)

		children, err := s.folders.ListChildren(ctx, current)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			queue = append(queue, child.ID.Hex())
		}
	}

	return order, nil
}

// RenameItem renames a folder or retitles a content item in place; the id
// never changes.
func (s *LibraryService) RenameItem(ctx context.Context, id string, kind ItemKind, newName string) error {
	switch kind {
	case KindFolder:
		if err := utils.ValidateFolderName(newName); err != nil {
			return err
		}
		return s.folders.Rename(ctx, id, newName)
	case KindFile:
		if err := utils.ValidateContentTitle(newName); err != nil {
			return err
		}
		return s.contents.Rename(ctx, id, newName)
	default:
		return models.NewValidation("unknown item kind %q", kind)
	}
}

// MoveFolder re-parents a folder. Moving a folder into itself or any of its
// descendants would cut the subtree loose from the root, so the destination
// ancestry is checked before anything is written.
func (s *LibraryService) MoveFolder(ctx context.Context, id, newParentID string) error {
	if id == models.RootFolderID {
		return models.NewValidation("the root folder cannot be moved")
	}
	if newParentID == "" {
		newParentID = models.RootFolderID
	}
	if newParentID == id {
		return models.NewValidation("cannot move a folder into itself")
	}

	if _, err := s.folders.Get(ctx, id); err != nil {
		return err
	}

	if newParentID != models.RootFolderID {
		seen := map[string]bool{}
		current := newParentID
		for current != models.RootFolderID {
			if current == id {
				return models.NewValidation("cannot move a folder into its own subtree")
			}
			if seen[current] {
				return models.NewPersistence(nil, "folder tree cycle detected at %q", current)
			}
			seen[current] = true

			ancestor, err := s.folders.Get(ctx, current)
			if err != nil {
				return err
			}
			current = ancestor.ParentRef()
		}
	}

	return s.folders.SetParent(ctx, id, newParentID)
}

// AttachCourse associates a content item with an external course id.
func (s *LibraryService) AttachCourse(ctx context.Context, id, courseID string) error {
	if courseID == "" {
		return models.NewValidation("course id cannot be empty")
	}
	return s.contents.AttachCourse(ctx, id, courseID)
}

// DetachCourse removes a course association from a content item.
func (s *LibraryService) DetachCourse(ctx context.Context, id, courseID string) error {
	if courseID == "" {
		return models.NewValidation("course id cannot be empty")
	}
	return s.contents.DetachCourse(ctx, id, courseID)
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
