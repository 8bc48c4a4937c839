// File: services/assistant/gemini.go
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"innoviahub/models"
)

// GeminiAssistant implements Service on top of the Gemini API.
type GeminiAssistant struct {
	model *genai.GenerativeModel
}

func NewGeminiAssistant(apiKey string) (*GeminiAssistant, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiAssistant{model: model}, nil
}

// extractedCall is the JSON shape the extraction prompt asks the model for.
type extractedCall struct {
	Action    string          `json:"action"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Text      string          `json:"text,omitempty"`
}

const extractionContract = `You are the booking assistant for InnoviaHub, a shared workspace with
drop-in desks (resourceTypeId 1), meeting rooms (2), VR headsets (3) and an AI server (4).
Bookable time slots are exactly: "08:00-10:00", "10:00-12:00", "12:00-14:00", "14:00-16:00", "16:00-18:00", "18:00-20:00".
Today's date is %s and the current hour is %d. You cannot book time slots that have already passed.
Reply in the language the user speaks.

Answer with a single JSON object, nothing else. One of:
{"action":"create_booking","arguments":{"date":"YYYY-MM-DD","timeSlot":"...","resourceTypeId":N}}
{"action":"delete_booking","arguments":{"date":"YYYY-MM-DD","timeSlot":"...","resourceTypeId":N}}
{"action":"edit_booking","arguments":{"currentDate":"...","currentTimeSlot":"...","currentResourceTypeId":N,"newDate":"...","newTimeSlot":"...","newResourceTypeId":N}}
{"action":"show_bookings","arguments":{"date":"YYYY-MM-DD or empty for all"}}
{"action":"reply","text":"a helpful conversational answer"}

When the user references a booking ID from a previously shown list, extract the
corresponding date, time slot and resource type from the conversation history.`

// ExtractIntent asks the model for a structured intent over the history.
// Anything that does not parse as an actionable call becomes a free-text
// reply intent, so extraction failures never fault the request.
func (g *GeminiAssistant) ExtractIntent(ctx context.Context, history *models.Conversation) (models.Intent, error) {
	now := time.Now()
	var sb strings.Builder
	fmt.Fprintf(&sb, extractionContract, now.Format("2006-01-02"), now.Hour())
	sb.WriteString("\n\nConversation so far:\n")
	for _, msg := range history.Messages {
		fmt.Fprintf(&sb, "%s: %s\n", msg.Role, msg.Content)
	}

	raw, err := g.generate(ctx, sb.String())
	if err != nil {
		return models.Intent{}, fmt.Errorf("intent extraction failed: %w", err)
	}

	return ParseIntent(raw), nil
}

// ParseIntent maps the model's JSON answer onto the intent union. Raw text
// that is not a recognizable call is treated as the freeform reply.
func ParseIntent(raw string) models.Intent {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var call extractedCall
	if err := json.Unmarshal([]byte(cleaned), &call); err != nil {
		return models.Intent{Kind: models.IntentReply, Reply: raw}
	}

	switch call.Action {
	case "create_booking":
		var args models.BookingArguments
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			break
		}
		return models.Intent{Kind: models.IntentCreate, Create: &args}
	case "delete_booking":
		var args models.BookingArguments
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			break
		}
		return models.Intent{Kind: models.IntentDelete, Delete: &args}
	case "edit_booking":
		var args models.EditBookingArguments
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			break
		}
		return models.Intent{Kind: models.IntentEdit, Edit: &args}
	case "show_bookings":
		var args models.ShowBookingsArguments
		if call.Arguments != nil {
			if err := json.Unmarshal(call.Arguments, &args); err != nil {
				break
			}
		}
		return models.Intent{Kind: models.IntentShow, Show: &args}
	case "reply":
		return models.Intent{Kind: models.IntentReply, Reply: call.Text}
	}

	return models.Intent{Kind: models.IntentReply, Reply: raw}
}

// Phrase generates user-facing text for the given instruction. The history
// is included for language context. Any failure yields the fallback.
func (g *GeminiAssistant) Phrase(ctx context.Context, history *models.Conversation, instruction, fallback string) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful booking assistant for InnoviaHub. Reply in the language the user speaks.\n\n")
	if history != nil {
		sb.WriteString("Conversation so far:\n")
		for _, msg := range history.Messages {
			fmt.Fprintf(&sb, "%s: %s\n", msg.Role, msg.Content)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(instruction)

	text, err := g.generate(ctx, sb.String())
	if err != nil || strings.TrimSpace(text) == "" {
		return fallback
	}
	return text
}

func (g *GeminiAssistant) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
