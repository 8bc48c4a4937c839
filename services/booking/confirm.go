// File: services/booking/confirm.go
package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "innoviahub/database/repository/booking"
	"innoviahub/models"

	"go.uber.org/zap"
)

// Confirm resolves the user's pending proposal. The proposal is consumed
// atomically up front, so it is applied at most once: a failed commit
// never leaves a stale pending action for a later unrelated confirm.
//
// Domain-expected outcomes (cancelled, slot taken) come back as normal
// responses; ErrNoPendingAction flags a confirm with nothing outstanding;
// any other error is an infrastructure failure with state already cleared.
func (s *DefaultActionService) Confirm(ctx context.Context, userID string, confirm bool, history *models.Conversation) (*models.ConfirmResponse, error) {
	state, err := s.Pending.Take(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending action: %w", err)
	}
	if state == nil {
		return nil, ErrNoPendingAction
	}

	if !confirm {
		message := s.Assistant.Phrase(ctx, history,
			"Write a short, friendly message confirming that the requested action was cancelled.",
			"Action cancelled.",
		)
		return &models.ConfirmResponse{Message: message}, nil
	}

	action := state.Action
	switch action.Kind {
	case models.ActionCreate:
		return s.commitCreate(ctx, userID, state, history)
	case models.ActionDelete:
		return s.commitDelete(ctx, action, history)
	case models.ActionEdit:
		return s.commitEdit(ctx, action, history)
	}

	return nil, fmt.Errorf("unknown pending action kind %q", action.Kind)
}

// commitCreate runs the first real allocation attempt for the proposed
// values. Two users may propose the same slot concurrently; only one
// commit succeeds and the loser gets a graceful slot-taken message.
func (s *DefaultActionService) commitCreate(ctx context.Context, userID string, state *PendingState, history *models.Conversation) (*models.ConfirmResponse, error) {
	pending := state.Booking
	if pending == nil {
		return nil, ErrNoPendingAction
	}

	booking, err := s.Repo.Create(ctx, pending.Date, pending.TimeSlot, pending.ResourceTypeID, userID)
	if errors.Is(err, bookingRepo.ErrNoAvailability) {
		message := s.Assistant.Phrase(ctx, history,
			fmt.Sprintf("Inform the user in a short friendly sentence that the selected time slot %s on %s is already taken and suggest choosing another time or date.",
				pending.TimeSlot, pending.Date),
			"Sorry, that time slot is already taken. Please choose another time or date.",
		)
		return &models.ConfirmResponse{Message: message}, nil
	}
	if err != nil {
		s.Logger.Error("Booking commit failed", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}

	message := s.Assistant.Phrase(ctx, history,
		fmt.Sprintf("Write a short friendly confirmation message: the booking for %s on %s at %s has been created.",
			pending.ResourceTypeName, pending.Date, pending.TimeSlot),
		fmt.Sprintf("Booking confirmed! %s on %s at %s.", pending.ResourceTypeName, pending.Date, pending.TimeSlot),
	)
	return &models.ConfirmResponse{Message: message, BookingID: booking.ID}, nil
}

func (s *DefaultActionService) commitDelete(ctx context.Context, action models.PendingAction, history *models.Conversation) (*models.ConfirmResponse, error) {
	deleted, err := s.Repo.Delete(ctx, action.BookingID)
	if err != nil {
		s.Logger.Error("Booking deletion failed", zap.String("bookingID", action.BookingID), zap.Error(err))
		return nil, err
	}
	if !deleted {
		s.Logger.Warn("Pending delete referenced a booking that no longer exists", zap.String("bookingID", action.BookingID))
	}

	message := s.Assistant.Phrase(ctx, history,
		fmt.Sprintf("Write a short friendly message confirming deletion: the booking for %s on %s at %s has been deleted.",
			action.ResourceTypeName, action.Date, action.TimeSlot),
		fmt.Sprintf("Booking deleted successfully. %s on %s at %s.", action.ResourceTypeName, action.Date, action.TimeSlot),
	)
	return &models.ConfirmResponse{Message: message}, nil
}

func (s *DefaultActionService) commitEdit(ctx context.Context, action models.PendingAction, history *models.Conversation) (*models.ConfirmResponse, error) {
	_, err := s.Repo.Update(ctx, action.BookingID, action.Date, action.TimeSlot, action.ResourceTypeID)
	if errors.Is(err, bookingRepo.ErrNoAvailability) {
		message := s.Assistant.Phrase(ctx, history,
			fmt.Sprintf("Inform the user in a short friendly sentence that the new time slot %s on %s is already taken and suggest choosing another time or date.",
				action.TimeSlot, action.Date),
			"Sorry, that time slot is already taken. Please choose another time or date.",
		)
		return &models.ConfirmResponse{Message: message}, nil
	}
	if err != nil {
		s.Logger.Error("Booking update failed", zap.String("bookingID", action.BookingID), zap.Error(err))
		return nil, err
	}

	message := s.Assistant.Phrase(ctx, history,
		fmt.Sprintf("Write a short friendly message confirming the update: new booking is %s on %s at %s.",
			action.ResourceTypeName, action.Date, action.TimeSlot),
		fmt.Sprintf("Booking updated! New booking: %s on %s at %s.", action.ResourceTypeName, action.Date, action.TimeSlot),
	)
	return &models.ConfirmResponse{Message: message}, nil
}
