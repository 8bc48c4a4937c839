// File: services/assistant/interface.go
package assistant

import (
	"context"

	"innoviahub/models"
)

// Service is the conversational collaborator of the booking core. Intent
// extraction and reply phrasing are external concerns; the core only
// depends on this contract.
type Service interface {
	// ExtractIntent turns the conversation so far into one structured
	// intent. When the user's message is not an actionable booking
	// request, the intent kind is IntentReply carrying the free-text
	// answer.
	ExtractIntent(ctx context.Context, history *models.Conversation) (models.Intent, error)

	// Phrase generates user-facing text following the given instruction,
	// using the history for language and context. It never fails: any
	// error yields the fallback string.
	Phrase(ctx context.Context, history *models.Conversation, instruction, fallback string) string
}
