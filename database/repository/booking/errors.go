// File: database/repository/booking/errors.go
package bookingRepo

import "errors"

// ErrNoAvailability signals that no free resource matches the requested
// type, date and slot. An expected business outcome, never fatal.
var ErrNoAvailability = errors.New("no available resources for the selected type, date, and timeslot")

// ErrNotFound signals that no booking matched the given id or details.
var ErrNotFound = errors.New("booking not found")
