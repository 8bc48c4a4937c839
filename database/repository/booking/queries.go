// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"innoviahub/models"
)

func (r *mongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time_slot", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *mongoBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"date": date})
}

func (r *mongoBookingRepo) ListByDateForUser(ctx context.Context, date, userID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"date": date, "user_id": userID})
}

// FindByDetails locates a user's booking by date, slot and resource type.
// Candidates are compared on the normalized slot in memory so that stored
// and submitted spellings always match. Returns nil when nothing matches.
func (r *mongoBookingRepo) FindByDetails(ctx context.Context, userID, date, timeSlot string, resourceTypeID int) (*models.Booking, error) {
	normalized := models.NormalizeTimeSlot(timeSlot)

	candidates, err := r.list(ctx, bson.M{
		"user_id":          userID,
		"date":             date,
		"resource_type_id": resourceTypeID,
	})
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		if models.NormalizeTimeSlot(candidates[i].TimeSlot) == normalized {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// FindAvailableResources returns the bookable resources of the given type
// with no conflicting booking at (date, slot), in directory enumeration
// order. An empty result is the expected no-availability outcome.
func (r *mongoBookingRepo) FindAvailableResources(ctx context.Context, resourceTypeID int, date, timeSlot string) ([]models.Resource, error) {
	normalized := models.NormalizeTimeSlot(timeSlot)

	pool, err := r.resources.GetBookableByType(ctx, resourceTypeID)
	if err != nil {
		return nil, err
	}

	booked, err := r.list(ctx, bson.M{"date": date, "resource_type_id": resourceTypeID})
	if err != nil {
		return nil, err
	}

	taken := make(map[int]bool, len(booked))
	for _, b := range booked {
		if models.NormalizeTimeSlot(b.TimeSlot) == normalized {
			taken[b.ResourceID] = true
		}
	}

	var available []models.Resource
	for _, res := range pool {
		if !taken[res.ID] {
			available = append(available, res)
		}
	}
	return available, nil
}
