// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"innoviahub/database"
	resourceRepo "innoviahub/database/repository/resource"
	"innoviahub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository is the transactional store for bookings. Create and
// Update allocate a concrete resource internally (commit-time allocation)
// and fail with ErrNoAvailability when the pool is exhausted for the
// requested type, date and slot.
type BookingRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	ListByDateForUser(ctx context.Context, date, userID string) ([]models.Booking, error)
	FindByDetails(ctx context.Context, userID, date, timeSlot string, resourceTypeID int) (*models.Booking, error)
	FindAvailableResources(ctx context.Context, resourceTypeID int, date, timeSlot string) ([]models.Resource, error)
	Create(ctx context.Context, date, timeSlot string, resourceTypeID int, userID string) (*models.Booking, error)
	Update(ctx context.Context, bookingID, newDate, newTimeSlot string, newResourceTypeID int) (*models.Booking, error)
	Delete(ctx context.Context, bookingID string) (bool, error)
	EnsureIndexes() error
}

type mongoBookingRepo struct {
	coll      *mongo.Collection
	resources resourceRepo.ResourceRepository
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository backed by
// the given resource directory.
func NewMongoBookingRepo(resources resourceRepo.ResourceRepository) BookingRepository {
	db := database.MongoClient.Database("innoviahub")
	return &mongoBookingRepo{
		coll:      db.Collection("bookings"),
		resources: resources,
	}
}
