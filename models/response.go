package models

// ActionResponse is the uniform contract returned by every propose/show path.
type ActionResponse struct {
	Answer               string          `json:"answer"`
	PendingBooking       *PendingBooking `json:"pendingBooking"`
	AwaitingConfirmation bool            `json:"awaitingConfirmation"`
	ActionType           string          `json:"actionType,omitempty"`
}

// ConfirmResponse is returned when a pending action is resolved.
type ConfirmResponse struct {
	Message   string `json:"message"`
	BookingID string `json:"bookingId,omitempty"`
}
