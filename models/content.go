package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContentType string

const (
	ContentTypeVideo ContentType = "Video"
	ContentTypePDF   ContentType = "PDF"
	ContentTypeImage ContentType = "Image"
	ContentTypeDoc   ContentType = "Doc"
	ContentTypeOther ContentType = "Other"
)

// Valid reports whether t is one of the closed set of content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeVideo, ContentTypePDF, ContentTypeImage, ContentTypeDoc, ContentTypeOther:
		return true
	}
	return false
}

type ContentStatus string

const (
	ContentStatusPublished ContentStatus = "Published"
	ContentStatusDraft     ContentStatus = "Draft"
	ContentStatusArchived  ContentStatus = "Archived"
)

// Content is a leaf record in the library: an uploadable or linkable asset
// owned by exactly one folder. FolderID is nil when the item sits directly
// under the root sentinel.
type Content struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title        string              `bson:"title" json:"title"`
	Type         ContentType         `bson:"type" json:"type"`
	URL          string              `bson:"url,omitempty" json:"url,omitempty"`
	FileURL      string              `bson:"file_url,omitempty" json:"file_url,omitempty"`
	FolderID     *primitive.ObjectID `bson:"folder_id,omitempty" json:"folder_id,omitempty"`
	Size         string              `bson:"size,omitempty" json:"size,omitempty"`
	LastModified string              `bson:"last_modified" json:"last_modified"`
	Status       ContentStatus       `bson:"status" json:"status"`
	CourseIDs    []string            `bson:"course_ids,omitempty" json:"course_ids,omitempty"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at" json:"updated_at"`
}

// Locator returns the usable asset reference, preferring the stored file over
// an external link when both are set.
func (c *Content) Locator() string {
	if c.FileURL != "" {
		return c.FileURL
	}
	return c.URL
}

// FolderRef returns the owning folder as a caller-facing id string, mapping a
// nil folder to the root sentinel.
func (c *Content) FolderRef() string {
	if c.FolderID == nil {
		return RootFolderID
	}
	return c.FolderID.Hex()
}
