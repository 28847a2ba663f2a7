package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventRepository stores events in the events collection
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{col: db.Collection(eventsCollection)}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	doc := toEventDoc(event)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	event.ID = doc.ID.Hex()
	event.ImageURLs = doc.ImageURLs
	event.VideoURLs = doc.VideoURLs
	event.Followers = doc.Followers
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc eventDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err := notFound(err); err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return doc.toModel(), nil
}

func (r *EventRepository) find(ctx context.Context, filter any) ([]*models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return decodeAll(ctx, cur, (*eventDoc).toModel)
}

func (r *EventRepository) List(ctx context.Context) ([]*models.Event, error) {
	return r.find(ctx, bson.D{})
}

func (r *EventRepository) ListByAuthor(ctx context.Context, userID string) ([]*models.Event, error) {
	return r.find(ctx, bson.M{"author.userId": userID})
}

func (r *EventRepository) findOneAndUpdate(ctx context.Context, filter, update any) (*models.Event, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc eventDoc
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if err := notFound(err); err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return doc.toModel(), nil
}

func (r *EventRepository) Update(ctx context.Context, id string, update models.EventUpdate) (*models.Event, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.CoverPhoto != nil {
		set["coverPhoto"] = *update.CoverPhoto
	}

	doc := bson.M{"$set": set}
	push := bson.M{}
	if len(update.AppendImages) > 0 {
		push["imageUrls"] = bson.M{"$each": update.AppendImages}
	}
	if len(update.AppendVideos) > 0 {
		push["videoUrls"] = bson.M{"$each": update.AppendVideos}
	}
	if len(push) > 0 {
		doc["$push"] = push
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, doc)
}

func (r *EventRepository) SetPassword(ctx context.Context, id, hashedPassword string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"password":  hashedPassword,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update event password: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) AddFollower(ctx context.Context, eventID, userID string) (*models.Event, error) {
	oid, err := objectID(eventID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid, "followers": bson.M{"$ne": userID}}
	update := bson.M{
		"$push": bson.M{"followers": userID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	event, err := r.findOneAndUpdate(ctx, filter, update)
	if !errors.Is(err, repository.ErrNotFound) {
		return event, err
	}

	// filter missed: the event is gone or userID already follows it
	if _, err := r.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return nil, repository.ErrDuplicate
}

func (r *EventRepository) RemoveFollower(ctx context.Context, eventID, userID string) (*models.Event, error) {
	oid, err := objectID(eventID)
	if err != nil {
		return nil, err
	}
	update := bson.M{
		"$pull": bson.M{"followers": userID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, update)
}
