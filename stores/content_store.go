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

// ContentStore is durable CRUD for content records, queryable by id and by
// owning folder. Referential meaning of folder ids belongs to the library
// service; the store does not verify them.
type ContentStore interface {
	Get(ctx context.Context, id string) (*models.Content, error)
	ListByFolder(ctx context.Context, folderID string) ([]models.Content, error)
	Create(ctx context.Context, content *models.Content) (*models.Content, error)
	Rename(ctx context.Context, id, newTitle string) error
	Delete(ctx context.Context, id string) error
	DeleteByFolder(ctx context.Context, folderID string) (int64, error)
	AttachCourse(ctx context.Context, id, courseID string) error
	DetachCourse(ctx context.Context, id, courseID string) error
	FolderRefs(ctx context.Context) ([]string, error)
	Search(ctx context.Context, query string, limit int64) ([]models.Content, error)
}

type MongoContentStore struct {
	collection *mongo.Collection
}

func NewMongoContentStore(db *mongo.Database) *MongoContentStore {
	return &MongoContentStore{collection: db.Collection("contents")}
}

func (s *MongoContentStore) Get(ctx context.Context, id string) (*models.Content, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.NewValidation("invalid content id %q", id)
	}

	var content models.Content
	err = s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&content)
	if err == mongo.ErrNoDocuments {
		return nil, models.NewNotFound("content %q not found", id)
	} else if err != nil {
		return nil, models.NewPersistence(err, "failed to fetch content %q", id)
	}

	return &content, nil
}

func (s *MongoContentStore) ListByFolder(ctx context.Context, folderID string) ([]models.Content, error) {
	folderObjID, err := parentObjectID(folderID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"folder_id": nil}
	if folderObjID != nil {
		filter["folder_id"] = *folderObjID
	}

	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"title": 1}))
	if err != nil {
		return nil, models.NewPersistence(err, "failed to list contents of folder %q", folderID)
	}
	defer cursor.Close(ctx)

	var contents []models.Content
	if err := cursor.All(ctx, &contents); err != nil {
		return nil, models.NewPersistence(err, "failed to decode contents of folder %q", folderID)
	}

	return contents, nil
}

func (s *MongoContentStore) Create(ctx context.Context, content *models.Content) (*models.Content, error) {
	now := time.Now()
	record := *content
	record.ID = primitive.NewObjectID()
	record.CreatedAt = now
	record.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		return nil, models.NewPersistence(err, "failed to create content %q", content.Title)
	}

	return &record, nil
}

func (s *MongoContentStore) Rename(ctx context.Context, id, newTitle string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewValidation("invalid content id %q", id)
	}

	update := bson.M{"$set": bson.M{
		"title":         newTitle,
		"last_modified": time.Now().Format("2006-01-02"),
		"updated_at":    time.Now(),
	}}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return models.NewPersistence(err, "failed to rename content %q", id)
	}
	if result.MatchedCount == 0 {
		return models.NewNotFound("content %q not found", id)
	}

	return nil
}

func (s *MongoContentStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewValidation("invalid content id %q", id)
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return models.NewPersistence(err, "failed to delete content %q", id)
	}
	if result.DeletedCount == 0 {
		return models.NewNotFound("content %q not found", id)
	}

	return nil
}

func (s *MongoContentStore) DeleteByFolder(ctx context.Context, folderID string) (int64, error) {
	folderObjID, err := parentObjectID(folderID)
	if err != nil {
		return 0, err
	}

	filter := bson.M{"folder_id": nil}
	if folderObjID != nil {
		filter["folder_id"] = *folderObjID
	}

	result, err := s.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, models.NewPersistence(err, "failed to delete contents of folder %q", folderID)
	}

	return result.DeletedCount, nil
}

func (s *MongoContentStore) AttachCourse(ctx context.Context, id, courseID string) error {
	return s.patchCourses(ctx, id, bson.M{"$addToSet": bson.M{"course_ids": courseID}})
}

func (s *MongoContentStore) DetachCourse(ctx context.Context, id, courseID string) error {
	return s.patchCourses(ctx, id, bson.M{"$pull": bson.M{"course_ids": courseID}})
}

func (s *MongoContentStore) patchCourses(ctx context.Context, id string, patch bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NewValidation("invalid content id %q", id)
	}

	patch["$set"] = bson.M{"updated_at": time.Now()}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": objID}, patch)
	if err != nil {
		return models.NewPersistence(err, "failed to update courses of content %q", id)
	}
	if result.MatchedCount == 0 {
		return models.NewNotFound("content %q not found", id)
	}

	return nil
}

// FolderRefs returns the distinct set of folder ids referenced by content
// records. The root sentinel is excluded: root-level content can never be
// orphaned.
func (s *MongoContentStore) FolderRefs(ctx context.Context) ([]string, error) {
	values, err := s.collection.Distinct(ctx, "folder_id", bson.M{"folder_id": bson.M{"$ne": nil}})
	if err != nil {
		return nil, models.NewPersistence(err, "failed to collect folder references")
	}

	refs := make([]string, 0, len(values))
	for _, v := range values {
		if objID, ok := v.(primitive.ObjectID); ok {
			refs = append(refs, objID.Hex())
		}
	}

	return refs, nil
}

func (s *MongoContentStore) Search(ctx context.Context, query string, limit int64) ([]models.Content, error) {
	searchRegex := bson.M{"$regex": query, "$options": "i"}
	filter := bson.M{"$or": []bson.M{
		{"title": searchRegex},
		{"description": searchRegex},
	}}

	opts := options.Find().SetSort(bson.M{"title": 1}).SetLimit(limit)
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, models.NewPersistence(err, "content search failed")
	}
	defer cursor.Close(ctx)

	var contents []models.Content
	if err := cursor.All(ctx, &contents); err != nil {
		return nil, models.NewPersistence(err, "failed to decode content search results")
	}

	return contents, nil
}
