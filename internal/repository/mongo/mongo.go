// Package mongo implements the repositories on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-media-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	usersCollection         = "users"
	eventsCollection        = "events"
	mediaCollection         = "media"
	notificationsCollection = "notifications"
	adminsCollection        = "admins"
)

// Open connects to MongoDB and pings it
func Open(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// New connects to the database named in uri (or dbName when set), ensures
// indexes and returns the store
func New(ctx context.Context, uri, dbName string) (*repository.Store, error) {
	client, err := Open(ctx, uri)
	if err != nil {
		return nil, err
	}

	if dbName == "" {
		dbName = "eventmedia"
	}
	db := client.Database(dbName)

	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &repository.Store{
		Users:         NewUserRepository(db),
		Events:        NewEventRepository(db),
		Media:         NewMediaRepository(db),
		Notifications: NewNotificationRepository(db),
		Admins:        NewAdminRepository(db),
		ValidID:       ValidID,
		Close:         client.Disconnect,
	}, nil
}

// EnsureIndexes creates the unique and lookup indexes
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = db.Collection(eventsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "author.userId", Value: 1}},
			Options: options.Index().SetName("events_author_user_id"),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("events_created_at"),
		},
	})
	if err != nil {
		return fmt.Errorf("events indexes: %w", err)
	}

	_, err = db.Collection(mediaCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "event", Value: 1}},
		Options: options.Index().SetName("media_event"),
	})
	if err != nil {
		return fmt.Errorf("media indexes: %w", err)
	}

	_, err = db.Collection(notificationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "recipient", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("notifications_recipient"),
	})
	if err != nil {
		return fmt.Errorf("notifications indexes: %w", err)
	}

	_, err = db.Collection(adminsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("admins_email_unique"),
	})
	if err != nil {
		return fmt.Errorf("admins indexes: %w", err)
	}
	return nil
}

// ValidID accepts 24-character hex ObjectIDs
func ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// objectID converts a hex id; malformed ids cannot match any document
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

func newObjectID(id string) primitive.ObjectID {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return primitive.NewObjectID()
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return err
}

func decodeAll[D any, M any](ctx context.Context, cur *mongo.Cursor, convert func(*D) *M) ([]*M, error) {
	defer cur.Close(ctx)

	out := make([]*M, 0)
	for cur.Next(ctx) {
		var doc D
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		out = append(out, convert(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", err)
	}
	return out, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
