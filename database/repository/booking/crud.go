// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"innoviahub/models"
)

// Create allocates the first free resource of the requested type and
// persists the booking. The incoming slot is normalized before the
// availability check so storage and comparisons stay consistent. A
// duplicate-key failure from the uniqueness index means another commit won
// the slot in between; it is reported as ErrNoAvailability.
func (r *mongoBookingRepo) Create(ctx context.Context, date, timeSlot string, resourceTypeID int, userID string) (*models.Booking, error) {
	normalized := models.NormalizeTimeSlot(timeSlot)

	available, err := r.FindAvailableResources(ctx, resourceTypeID, date, normalized)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, ErrNoAvailability
	}

	booking := models.Booking{
		ID:             uuid.New().String(),
		UserID:         userID,
		Date:           date,
		TimeSlot:       normalized,
		ResourceTypeID: resourceTypeID,
		ResourceID:     available[0].ID,
		CreatedAt:      time.Now(),
	}

	insertCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(insertCtx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrNoAvailability
		}
		return nil, err
	}
	return &booking, nil
}

// Update reassigns an existing booking to new details, reallocating a
// concrete resource for the new target. The booking id is preserved.
func (r *mongoBookingRepo) Update(ctx context.Context, bookingID, newDate, newTimeSlot string, newResourceTypeID int) (*models.Booking, error) {
	findCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(findCtx, bson.M{"id": bookingID}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	normalized := models.NormalizeTimeSlot(newTimeSlot)
	available, err := r.FindAvailableResources(ctx, newResourceTypeID, newDate, normalized)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, ErrNoAvailability
	}

	booking.Date = newDate
	booking.TimeSlot = normalized
	booking.ResourceTypeID = newResourceTypeID
	booking.ResourceID = available[0].ID

	updateCtx, cancel2 := context.WithTimeout(ctx, 5*time.Second)
	defer cancel2()
	update := bson.M{"$set": bson.M{
		"date":             booking.Date,
		"time_slot":        booking.TimeSlot,
		"resource_type_id": booking.ResourceTypeID,
		"resource_id":      booking.ResourceID,
	}}
	if _, err := r.coll.UpdateOne(updateCtx, bson.M{"id": bookingID}, update); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrNoAvailability
		}
		return nil, err
	}
	return &booking, nil
}

// Delete removes a booking by id. Returns false when no booking matched.
func (r *mongoBookingRepo) Delete(ctx context.Context, bookingID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": bookingID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
