package models

import "time"

// ActionKind identifies a pending mutating action awaiting confirmation.
type ActionKind string

const (
	ActionCreate ActionKind = "create"
	ActionDelete ActionKind = "delete"
	ActionEdit   ActionKind = "edit"
)

// PendingBooking is the proposed booking detail shown to the user
// between proposal and resolution.
type PendingBooking struct {
	Date             string `json:"date"`
	TimeSlot         string `json:"timeSlot"`
	ResourceTypeID   int    `json:"resourceTypeId"`
	ResourceTypeName string `json:"resourceTypeName"`
}

// PendingAction is an unconfirmed create/delete/edit request. At most one
// exists per user; a new proposal overwrites any prior unresolved one.
type PendingAction struct {
	Kind             ActionKind `json:"kind"`
	BookingID        string     `json:"bookingId,omitempty"` // set for delete/edit
	Date             string     `json:"date,omitempty"`      // target values applied on commit
	TimeSlot         string     `json:"timeSlot,omitempty"`
	ResourceTypeID   int        `json:"resourceTypeId,omitempty"`
	ResourceTypeName string     `json:"resourceTypeName,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}
