package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RootFolderID is the sentinel identifier for the top of the library tree.
// The root has no persisted document; stores translate it to a nil parent.
const RootFolderID = "root"

// RootFolderName is the display name dashboards show for the virtual root.
const RootFolderName = "Home"

type Folder struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name      string              `bson:"name" json:"name"`
	ParentID  *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}

// ParentRef returns the parent as a caller-facing id string, mapping a nil
// parent to the root sentinel.
func (f *Folder) ParentRef() string {
	if f.ParentID == nil {
		return RootFolderID
	}
	return f.ParentID.Hex()
}
