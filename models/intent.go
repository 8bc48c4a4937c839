package models

// IntentKind is the tagged discriminator of an extracted intent.
type IntentKind string

const (
	IntentCreate IntentKind = "create"
	IntentDelete IntentKind = "delete"
	IntentEdit   IntentKind = "edit"
	IntentShow   IntentKind = "show"
	IntentReply  IntentKind = "reply"
)

// BookingArguments carries the arguments of a create or delete intent.
type BookingArguments struct {
	Date           string `json:"date"`
	TimeSlot       string `json:"timeSlot"`
	ResourceTypeID int    `json:"resourceTypeId"`
}

// EditBookingArguments carries the current booking details and the new
// desired details of an edit intent.
type EditBookingArguments struct {
	CurrentDate           string `json:"currentDate"`
	CurrentTimeSlot       string `json:"currentTimeSlot"`
	CurrentResourceTypeID int    `json:"currentResourceTypeId"`
	NewDate               string `json:"newDate"`
	NewTimeSlot           string `json:"newTimeSlot"`
	NewResourceTypeID     int    `json:"newResourceTypeId"`
}

// ShowBookingsArguments optionally restricts a show intent to one date.
type ShowBookingsArguments struct {
	Date string `json:"date,omitempty"`
}

// Intent is the structured result of intent extraction. Exactly the fields
// matching Kind are populated; Reply holds the free-text answer when the
// extractor produced no actionable intent.
type Intent struct {
	Kind   IntentKind             `json:"kind"`
	Create *BookingArguments      `json:"create,omitempty"`
	Delete *BookingArguments      `json:"delete,omitempty"`
	Edit   *EditBookingArguments  `json:"edit,omitempty"`
	Show   *ShowBookingsArguments `json:"show,omitempty"`
	Reply  string                 `json:"reply,omitempty"`
}
