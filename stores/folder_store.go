package stores

import (
	"context"
	"time"

	"robolibrary/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FolderStore is durable CRUD for folder nodes, queryable by id and parent.
// Ids are ObjectID hex strings; models.RootFolderID is accepted anywhere a
// parent id is, and maps to documents with no parent.
type FolderStore interface {
	Get(ctx context.Context, id string) (*models.Folder, error)
	ListChildren(ctx context.Context, parentID string) ([]models.Folder, error)
	Create(ctx context.Context, name, parentID string) (*models.Folder, error)
	Rename(ctx context.Context, id, newName string) error
	SetParent(ctx context.Context, id, parentID string) error
	Delete(ctx context.Context, id string) error
	ParentRefs(ctx context.Context) ([]string, error)
	Search(ctx context.Context, query string, limit int64) ([]models.Folder, error)
}

type MongoFolderStore struct {
	collection *mongo.Collection
}

func NewMongoFolderStore(db *mongo.Database) *MongoFolderStore {
	return &MongoFolderStore{collection: db.Collection("folders")}
}

// parentObjectID translates a caller-facing parent reference into the stored
// form: nil for the root sentinel, otherwise the decoded ObjectID.
func parentObjectID(parentID string) (*primitive.ObjectID, error) {
	if parentID == "" || parentID == models.RootFolderID {
		return nil, nil
	}
	objID, err := primitive.ObjectIDFromHex(parentID)
	if err != nil {
		return nil, models.NewValidation("invalid folder id %q", parentID)
	}
	return &objID, nil
}

func (s *MongoFolderStore) Get(ctx context.Context, id string) (*models.Folder, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewValidation("invalid folder id %q", id)
	}

	var folder models.Folder
	err = s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&folder)
	if err == mongo.ErrNoDocuments {
		return nil, models.NewNotFound("folder %q not found", id)
	} else if err != nil {
		return nil, models.NewPersistence(err, "failed to fetch folder %q", id)
	}

	return &folder, nil
}

func (s *MongoFolderStore) ListChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	parentObjID, err := parentObjectID(parentID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"parent_id": nil}
	if parentObjID != nil {
		filter["parent_id"] = *parentObjID
	}

	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, models.NewPersistence(err, "failed to list subfolders of %q", parentID)
	}
	defer cursor.Close(ctx)

	var folders []models.Folder
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, models.NewPersistence(err, "failed to decode subfolders of %q", parentID)
	}

	return folders, nil
}

func (s *MongoFolderStore) Create(ctx context.Context, name, parentID string) (*models.Folder, error) {
	parentObjID, err := parentObjectID(parentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	folder := models.Folder{
		ID:        primitive.NewObjectID(),
		Name:      name,
		ParentID:  parentObjID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.collection.InsertOne(ctx, folder); err != nil {
		return nil, models.NewPersistence(err, "failed to create folder %q", name)
	}

	return &folder, nil
}

func (s *MongoFolderStore) Rename(ctx context.Context, id, newName string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewValidation("invalid folder id %q", id)
	}

	update := bson.M{"$set": bson.M{
		"name":       newName,
		"updated_at": time.Now(),
	}}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return models.NewPersistence(err, "failed to rename folder %q", id)
	}
	if result.MatchedCount == 0 {
		return models.NewNotFound("folder %q not found", id)
	}

	return nil
}

func (s *MongoFolderStore) SetParent(ctx context.Context, id, parentID string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewValidation("invalid folder id %q", id)
	}
	parentObjID, err := parentObjectID(parentID)
	if err != nil {
		return err
	}

	var update bson.M
	if parentObjID == nil {
		update = bson.M{
			"$unset": bson.M{"parent_id": ""},
			"$set":   bson.M{"updated_at": time.Now()},
		}
	} else {
		update = bson.M{"$set": bson.M{
			"parent_id":  *parentObjID,
			"updated_at": time.Now(),
		}}
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return models.NewPersistence(err, "failed to move folder %q", id)
	}
	if result.MatchedCount == 0 {
		return models.NewNotFound("folder %q not found", id)
	}

	return nil
}

func (s *MongoFolderStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewValidation("invalid folder id %q", id)
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return models.NewPersistence(err, "failed to delete folder %q", id)
	}
	if result.DeletedCount == 0 {
		return models.NewNotFound("folder %q not found", id)
	}

	return nil
}

// ParentRefs returns the distinct set of parent ids referenced by folder
// documents. The root sentinel is excluded: top-level folders can never be
// orphaned.
func (s *MongoFolderStore) ParentRefs(ctx context.Context) ([]string, error) {
	values, err := s.collection.Distinct(ctx, "parent_id", bson.M{"parent_id": bson.M{"$ne": nil}})
	if err != nil {
		return nil, models.NewPersistence(err, "failed to collect parent references")
	}

	refs := make([]string, 0, len(values))
	for _, v := range values {
		if objID, ok := v.(primitive.ObjectID); ok {
			refs = append(refs, objID.Hex())
		}
	}

	return refs, nil
}

func (s *MongoFolderStore) Search(ctx context.Context, query string, limit int64) ([]models.Folder, error) {
	filter := bson.M{"name": bson.M{"$regex": query, "$options": "i"}}

	opts := options.Find().SetSort(bson.M{"name": 1}).SetLimit(limit)
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, models.NewPersistence(err, "folder search failed")
	}
	defer cursor.Close(ctx)

	var folders []models.Folder
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, models.NewPersistence(err, "failed to decode folder search results")
	}

	return folders, nil
}
