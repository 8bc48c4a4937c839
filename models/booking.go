package models

import "time"

// Booking represents a confirmed booking record.
//
// At most one booking may exist for a given (resource, date, time slot);
// the uniqueness is enforced by the persistence layer.
type Booking struct {
	ID             string    `bson:"id" json:"id"`                            // Unique booking identifier (UUID)
	UserID         string    `bson:"user_id" json:"userId"`                   // User who owns the booking
	Date           string    `bson:"date" json:"date"`                        // Calendar day in "YYYY-MM-DD" format, no time component
	TimeSlot       string    `bson:"time_slot" json:"timeSlot"`               // Canonical slot form, e.g. "08-10"
	ResourceTypeID int       `bson:"resource_type_id" json:"resourceTypeId"`  // Category of the booked resource
	ResourceID     int       `bson:"resource_id" json:"resourceId"`           // Concrete resource instance
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}
