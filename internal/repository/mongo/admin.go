package mongo

import (
	"context"
	"fmt"

	"event-media-backend/internal/models"
	"event-media-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AdminRepository stores admin accounts
type AdminRepository struct {
	col *mongo.Collection
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{col: db.Collection(adminsCollection)}
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	doc := toAdminDoc(admin)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	admin.ID = doc.ID.Hex()
	return nil
}

func (r *AdminRepository) findOne(ctx context.Context, filter any) (*models.Admin, error) {
	var doc adminDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err := notFound(err); err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return doc.toModel(), nil
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}
