// File: services/booking/interface.go
package booking

import (
	"context"

	bookingRepo "innoviahub/database/repository/booking"
	"innoviahub/models"
	"innoviahub/services/assistant"

	"go.uber.org/zap"
)

// ActionService drives the conversational booking lifecycle: it routes a
// structured intent to the matching handler and later resolves the user's
// pending proposal on an explicit confirm or cancel signal.
type ActionService interface {
	Dispatch(ctx context.Context, userID string, intent models.Intent, history *models.Conversation) (*models.ActionResponse, error)
	HandleCreate(ctx context.Context, userID string, args models.BookingArguments, history *models.Conversation) (*models.ActionResponse, error)
	HandleDelete(ctx context.Context, userID string, args models.BookingArguments, history *models.Conversation) (*models.ActionResponse, error)
	HandleEdit(ctx context.Context, userID string, args models.EditBookingArguments, history *models.Conversation) (*models.ActionResponse, error)
	HandleShow(ctx context.Context, userID string, args models.ShowBookingsArguments, history *models.Conversation) (*models.ActionResponse, error)
	Confirm(ctx context.Context, userID string, confirm bool, history *models.Conversation) (*models.ConfirmResponse, error)
}

// DefaultActionService implements ActionService.
type DefaultActionService struct {
	Repo      bookingRepo.BookingRepository
	Pending   PendingStore
	Assistant assistant.Service
	Logger    *zap.Logger
}
