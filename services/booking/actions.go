// File: services/booking/actions.go
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"innoviahub/models"

	"go.uber.org/zap"
)

// Dispatch routes a structured intent to its handler. The switch is
// exhaustive over the intent kinds; an unknown kind falls through to a
// plain reply so a malformed extraction never faults the request.
func (s *DefaultActionService) Dispatch(ctx context.Context, userID string, intent models.Intent, history *models.Conversation) (*models.ActionResponse, error) {
	switch intent.Kind {
	case models.IntentCreate:
		return s.HandleCreate(ctx, userID, *intent.Create, history)
	case models.IntentDelete:
		return s.HandleDelete(ctx, userID, *intent.Delete, history)
	case models.IntentEdit:
		return s.HandleEdit(ctx, userID, *intent.Edit, history)
	case models.IntentShow:
		args := models.ShowBookingsArguments{}
		if intent.Show != nil {
			args = *intent.Show
		}
		return s.HandleShow(ctx, userID, args, history)
	case models.IntentReply:
		history.Append("assistant", intent.Reply)
		return &models.ActionResponse{Answer: intent.Reply}, nil
	}

	s.Logger.Warn("Unknown intent kind", zap.String("kind", string(intent.Kind)))
	answer := "I'm not sure what you'd like to do. You can create, change, delete or show your bookings."
	history.Append("assistant", answer)
	return &models.ActionResponse{Answer: answer}, nil
}

// HandleCreate stores a create proposal and asks the user to confirm it.
// No availability check happens here: allocation is deferred to commit
// time so a resource is never held through an unbounded confirmation
// delay.
func (s *DefaultActionService) HandleCreate(ctx context.Context, userID string, args models.BookingArguments, history *models.Conversation) (*models.ActionResponse, error) {
	resourceTypeName := models.ResourceTypeName(args.ResourceTypeID)

	pendingBooking := &models.PendingBooking{
		Date:             args.Date,
		TimeSlot:         args.TimeSlot,
		ResourceTypeID:   args.ResourceTypeID,
		ResourceTypeName: resourceTypeName,
	}

	state := PendingState{
		Action: models.PendingAction{
			Kind:             models.ActionCreate,
			Date:             args.Date,
			TimeSlot:         args.TimeSlot,
			ResourceTypeID:   args.ResourceTypeID,
			ResourceTypeName: resourceTypeName,
		},
		Booking: pendingBooking,
	}
	if err := s.Pending.Propose(ctx, userID, state); err != nil {
		return nil, fmt.Errorf("failed to store pending action: %w", err)
	}

	answer := s.Assistant.Phrase(ctx, history,
		fmt.Sprintf("Write a friendly, natural message to the user to confirm a proposed booking of a %s on %s at %s. Keep it short and pleasant. The current time is %d and you cannot book time slots if the time has already passed. You cannot book by yourself - the user needs to press the confirm button.",
			resourceTypeName, args.Date, args.TimeSlot, time.Now().Hour()),
		"I found an available time!",
	)
	history.Append("assistant", answer)

	return &models.ActionResponse{
		Answer:               answer,
		PendingBooking:       pendingBooking,
		AwaitingConfirmation: true,
		ActionType:           string(models.ActionCreate),
	}, nil
}

// HandleDelete looks up the booking by details and, when found, stores a
// delete proposal carrying its id. A miss is an immediate reply with no
// pending state.
func (s *DefaultActionService) HandleDelete(ctx context.Context, userID string, args models.BookingArguments, history *models.Conversation) (*models.ActionResponse, error) {
	resourceTypeName := models.ResourceTypeName(args.ResourceTypeID)

	existing, err := s.Repo.FindByDetails(ctx, userID, args.Date, args.TimeSlot, args.ResourceTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up booking: %w", err)
	}
	if existing == nil {
		answer := "I couldn't find a booking with those details."
		history.Append("assistant", answer)
		return &models.ActionResponse{Answer: answer}, nil
	}

	state := PendingState{
		Action: models.PendingAction{
			Kind:             models.ActionDelete,
			BookingID:        existing.ID,
			Date:             args.Date,
			TimeSlot:         args.TimeSlot,
			ResourceTypeID:   args.ResourceTypeID,
			ResourceTypeName: resourceTypeName,
		},
		Booking: &models.PendingBooking{
			Date:             args.Date,
			TimeSlot:         args.TimeSlot,
			ResourceTypeID:   args.ResourceTypeID,
			ResourceTypeName: resourceTypeName,
		},
	}
	if err := s.Pending.Propose(ctx, userID, state); err != nil {
		return nil, fmt.Errorf("failed to store pending action: %w", err)
	}

	answer := s.Assistant.Phrase(ctx, history,
		fmt.Sprintf("Write a friendly message asking the user to confirm deletion of their booking for %s on %s at %s. Keep it short and ask for confirmation.",
			resourceTypeName, args.Date, args.TimeSlot),
		"Are you sure you want to delete this booking?",
	)
	history.Append("assistant", answer)

	return &models.ActionResponse{
		Answer:               answer,
		PendingBooking:       state.Booking,
		AwaitingConfirmation: true,
		ActionType:           string(models.ActionDelete),
	}, nil
}

// HandleEdit looks up the current booking and stores an edit proposal
// carrying its id and the new target values.
func (s *DefaultActionService) HandleEdit(ctx context.Context, userID string, args models.EditBookingArguments, history *models.Conversation) (*models.ActionResponse, error) {
	existing, err := s.Repo.FindByDetails(ctx, userID, args.CurrentDate, args.CurrentTimeSlot, args.CurrentResourceTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up booking: %w", err)
	}
	if existing == nil {
		answer := "I couldn't find a booking with those details to edit."
		history.Append("assistant", answer)
		return &models.ActionResponse{Answer: answer}, nil
	}

	newResourceTypeName := models.ResourceTypeName(args.NewResourceTypeID)

	state := PendingState{
		Action: models.PendingAction{
			Kind:             models.ActionEdit,
			BookingID:        existing.ID,
			Date:             args.NewDate,
			TimeSlot:         args.NewTimeSlot,
			ResourceTypeID:   args.NewResourceTypeID,
			ResourceTypeName: newResourceTypeName,
		},
		Booking: &models.PendingBooking{
			Date:             args.NewDate,
			TimeSlot:         args.NewTimeSlot,
			ResourceTypeID:   args.NewResourceTypeID,
			ResourceTypeName: newResourceTypeName,
		},
	}
	if err := s.Pending.Propose(ctx, userID, state); err != nil {
		return nil, fmt.Errorf("failed to store pending action: %w", err)
	}

	currentResourceName := models.ResourceTypeName(args.CurrentResourceTypeID)
	answer := s.Assistant.Phrase(ctx, history,
		fmt.Sprintf("Write a friendly message asking the user to confirm changing their booking from %s on %s at %s to %s on %s at %s. Keep it short and clear.",
			currentResourceName, args.CurrentDate, args.CurrentTimeSlot,
			newResourceTypeName, args.NewDate, args.NewTimeSlot),
		"Would you like to change your booking?",
	)
	history.Append("assistant", answer)

	return &models.ActionResponse{
		Answer:               answer,
		PendingBooking:       state.Booking,
		AwaitingConfirmation: true,
		ActionType:           string(models.ActionEdit),
	}, nil
}

// HandleShow is a pure read: it lists the user's bookings, optionally
// restricted to one date, and never touches pending state.
func (s *DefaultActionService) HandleShow(ctx context.Context, userID string, args models.ShowBookingsArguments, history *models.Conversation) (*models.ActionResponse, error) {
	var bookings []models.Booking
	var err error
	if args.Date != "" {
		bookings, err = s.Repo.ListByDateForUser(ctx, args.Date, userID)
	} else {
		bookings, err = s.Repo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	var bookingsInfo string
	if len(bookings) == 0 {
		bookingsInfo = "No bookings found."
	} else {
		lines := make([]string, 0, len(bookings))
		for _, b := range bookings {
			lines = append(lines, fmt.Sprintf("- %s at %s, Resource: %s (ID: %s)",
				b.Date, b.TimeSlot, models.ResourceTypeName(b.ResourceTypeID), b.ID))
		}
		bookingsInfo = strings.Join(lines, "\n")
	}

	answer := s.Assistant.Phrase(ctx, history,
		fmt.Sprintf("Here are the bookings:\n%s\n\nPresent these in a friendly, clear format to the user. Always include the booking ID so the user can refer to it for deletion or editing.", bookingsInfo),
		"Here are your bookings:\n"+bookingsInfo,
	)
	history.Append("assistant", answer)

	return &models.ActionResponse{Answer: answer}, nil
}
