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

// UserRepository stores users in the users collection
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	doc := toUserDoc(user)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = doc.ID.Hex()
	user.Followers = doc.Followers
	user.Following = doc.Following
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter any) (*models.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err := notFound(err); err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs(ids)}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	return decodeAll(ctx, cur, (*userDoc).toModel)
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return decodeAll(ctx, cur, (*userDoc).toModel)
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	n, err := r.col.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return int(n), nil
}

func (r *UserRepository) updateOne(ctx context.Context, filter, update any) (*models.User, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})
	var doc userDoc
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if err := notFound(err); err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toModel(), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, profile models.Profile) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.updateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"profile": profile}})
}

func (r *UserRepository) SetVerified(ctx context.Context, id string, verified bool) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.updateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"verified": verified}})
}

func (r *UserRepository) VerifyByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.updateOne(ctx, bson.M{"username": username}, bson.M{"$set": bson.M{"verified": true}})
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddFollower uses $addToSet on each document; both updates are idempotent
// and commute with a concurrent RemoveFollower.
func (r *UserRepository) AddFollower(ctx context.Context, userID, followerID string) error {
	return r.edges(ctx, "$addToSet", userID, followerID)
}

// RemoveFollower uses $pull on each document
func (r *UserRepository) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return r.edges(ctx, "$pull", userID, followerID)
}

func (r *UserRepository) edges(ctx context.Context, op, userID, followerID string) error {
	uid, err := objectID(userID)
	if err != nil {
		return nil
	}
	fid, err := objectID(followerID)
	if err != nil {
		return nil
	}

	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{op: bson.M{"followers": followerID}}); err != nil {
		return fmt.Errorf("update followers: %w", err)
	}
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": fid}, bson.M{op: bson.M{"following": userID}}); err != nil {
		return fmt.Errorf("update following: %w", err)
	}
	return nil
}
