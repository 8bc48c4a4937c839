package assistant

import (
	"testing"

	"innoviahub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntentCreateBooking(t *testing.T) {
	raw := `{"action":"create_booking","arguments":{"date":"2025-10-10","timeSlot":"08:00-10:00","resourceTypeId":2}}`

	intent := ParseIntent(raw)
	assert.Equal(t, models.IntentCreate, intent.Kind)
	require.NotNil(t, intent.Create)
	assert.Equal(t, "2025-10-10", intent.Create.Date)
	assert.Equal(t, "08:00-10:00", intent.Create.TimeSlot)
	assert.Equal(t, 2, intent.Create.ResourceTypeID)
}

func TestParseIntentDeleteBooking(t *testing.T) {
	raw := `{"action":"delete_booking","arguments":{"date":"2025-10-10","timeSlot":"14-16","resourceTypeId":1}}`

	intent := ParseIntent(raw)
	assert.Equal(t, models.IntentDelete, intent.Kind)
	require.NotNil(t, intent.Delete)
	assert.Equal(t, 1, intent.Delete.ResourceTypeID)
}

func TestParseIntentEditBooking(t *testing.T) {
	raw := `{"action":"edit_booking","arguments":{"currentDate":"2025-10-10","currentTimeSlot":"08-10","currentResourceTypeId":2,"newDate":"2025-10-11","newTimeSlot":"14-16","newResourceTypeId":3}}`

	intent := ParseIntent(raw)
	assert.Equal(t, models.IntentEdit, intent.Kind)
	require.NotNil(t, intent.Edit)
	assert.Equal(t, "2025-10-10", intent.Edit.CurrentDate)
	assert.Equal(t, "2025-10-11", intent.Edit.NewDate)
	assert.Equal(t, 3, intent.Edit.NewResourceTypeID)
}

func TestParseIntentShowBookings(t *testing.T) {
	intent := ParseIntent(`{"action":"show_bookings","arguments":{"date":"2025-10-10"}}`)
	assert.Equal(t, models.IntentShow, intent.Kind)
	require.NotNil(t, intent.Show)
	assert.Equal(t, "2025-10-10", intent.Show.Date)

	// arguments may be omitted entirely for an unfiltered listing
	intent = ParseIntent(`{"action":"show_bookings"}`)
	assert.Equal(t, models.IntentShow, intent.Kind)
	require.NotNil(t, intent.Show)
	assert.Empty(t, intent.Show.Date)
}

func TestParseIntentReply(t *testing.T) {
	intent := ParseIntent(`{"action":"reply","text":"We are open 08:00 to 20:00."}`)
	assert.Equal(t, models.IntentReply, intent.Kind)
	assert.Equal(t, "We are open 08:00 to 20:00.", intent.Reply)
}

func TestParseIntentStripsCodeFences(t *testing.T) {
	raw := "```json\n{\"action\":\"create_booking\",\"arguments\":{\"date\":\"2025-10-10\",\"timeSlot\":\"10-12\",\"resourceTypeId\":4}}\n```"

	intent := ParseIntent(raw)
	assert.Equal(t, models.IntentCreate, intent.Kind)
	require.NotNil(t, intent.Create)
	assert.Equal(t, 4, intent.Create.ResourceTypeID)
}

func TestParseIntentFallsBackToReply(t *testing.T) {
	// plain prose instead of JSON
	intent := ParseIntent("Sure, I can help you with that!")
	assert.Equal(t, models.IntentReply, intent.Kind)
	assert.Equal(t, "Sure, I can help you with that!", intent.Reply)

	// valid JSON but an unknown action
	raw := `{"action":"launch_rocket","arguments":{}}`
	intent = ParseIntent(raw)
	assert.Equal(t, models.IntentReply, intent.Kind)
	assert.Equal(t, raw, intent.Reply)

	// recognized action with malformed arguments
	raw = `{"action":"create_booking","arguments":"not an object"}`
	intent = ParseIntent(raw)
	assert.Equal(t, models.IntentReply, intent.Kind)
	assert.Equal(t, raw, intent.Reply)
}
