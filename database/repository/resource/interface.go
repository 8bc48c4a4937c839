// File: database/repository/resource/interface.go
package resourceRepo

import (
	"context"

	"innoviahub/database"
	"innoviahub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ResourceRepository is the directory of concrete bookable resources.
// The booking core never creates or destroys resources; it only reads
// the pool in the directory's native enumeration order.
type ResourceRepository interface {
	GetAll(ctx context.Context) ([]models.Resource, error)
	GetBookableByType(ctx context.Context, resourceTypeID int) ([]models.Resource, error)
	Seed(ctx context.Context) error
}

type mongoResourceRepo struct {
	coll *mongo.Collection
}

// NewMongoResourceRepo constructs a new MongoDB ResourceRepository.
func NewMongoResourceRepo() ResourceRepository {
	db := database.MongoClient.Database("innoviahub")
	return &mongoResourceRepo{
		coll: db.Collection("resources"),
	}
}
