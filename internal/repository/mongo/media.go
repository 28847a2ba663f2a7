package mongo

import (
	"context"
	"fmt"

	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MediaRepository stores media records in the media collection
type MediaRepository struct {
	col *mongo.Collection
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{col: db.Collection(mediaCollection)}
}

func (r *MediaRepository) CreateMany(ctx context.Context, media []*models.Media) error {
	if len(media) == 0 {
		return nil
	}
	docs := make([]any, 0, len(media))
	for _, m := range media {
		doc := toMediaDoc(m)
		m.ID = doc.ID.Hex()
		docs = append(docs, doc)
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert media: %w", err)
	}
	return nil
}

func (r *MediaRepository) find(ctx context.Context, filter any) ([]*models.Media, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find media: %w", err)
	}
	return decodeAll(ctx, cur, (*mediaDoc).toModel)
}

func (r *MediaRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Media, error) {
	return r.find(ctx, bson.M{"event": eventID})
}

func (r *MediaRepository) All(ctx context.Context) ([]*models.Media, error) {
	return r.find(ctx, bson.D{})
}

func (r *MediaRepository) Delete(ctx context.Context, id string) (*models.Media, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc mediaDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err := notFound(err); err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("delete media: %w", err)
	}
	return doc.toModel(), nil
}
