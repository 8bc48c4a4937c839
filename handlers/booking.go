// File: handlers/booking.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	bookingRepo "innoviahub/database/repository/booking"
	"innoviahub/models"
	"innoviahub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the direct REST surface over the booking store,
// bypassing the chat layer.
type BookingHandler struct {
	Repo   bookingRepo.BookingRepository
	Logger *zap.Logger
}

func NewBookingHandler(repo bookingRepo.BookingRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Repo: repo, Logger: logger}
}

// ListMyBookings handles GET /api/bookings.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bookings, err := h.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("Failed to list bookings", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListMyBookingsByDate handles GET /api/bookings/date/:date.
func (h *BookingHandler) ListMyBookingsByDate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	date := c.Param("date")
	bookings, err := h.Repo.ListByDateForUser(c.Request.Context(), date, userID)
	if err != nil {
		h.Logger.Error("Failed to list bookings by date", zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CreateBookingRequest is the direct (non-conversational) booking payload.
type CreateBookingRequest struct {
	Date           string `json:"date" binding:"required"`
	TimeSlot       string `json:"timeSlot" binding:"required"`
	ResourceTypeID int    `json:"resourceTypeId" binding:"required"`
}

// CreateBooking handles POST /api/bookings. The repository allocates the
// concrete resource; an exhausted pool is a 409, not a server fault.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if !models.IsValidTimeSlot(req.TimeSlot) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid time slot", "expected one of the two-hour bands between 08-10 and 18-20")
		return
	}

	booking, err := h.Repo.Create(c.Request.Context(), req.Date, req.TimeSlot, req.ResourceTypeID, userID)
	if errors.Is(err, bookingRepo.ErrNoAvailability) {
		c.JSON(http.StatusConflict, gin.H{"error": "No available resources for the selected type, date, and timeslot."})
		return
	}
	if err != nil {
		h.Logger.Error("Failed to create booking", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// DeleteBooking handles DELETE /api/bookings/:id. Users can only delete
// their own bookings.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bookingID := c.Param("id")
	owned, err := h.Repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error("Failed to verify booking ownership", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete booking", err.Error())
		return
	}

	var found bool
	for _, b := range owned {
		if b.ID == bookingID {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	deleted, err := h.Repo.Delete(c.Request.Context(), bookingID)
	if err != nil {
		h.Logger.Error("Failed to delete booking", zap.String("bookingID", bookingID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete booking", err.Error())
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

// GetAvailability handles GET /api/bookings/availability. It reports which
// concrete resources are still free for a type, date and slot.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	timeSlot := c.Query("timeSlot")
	typeParam := c.Query("resourceTypeId")
	resourceTypeID, err := strconv.Atoi(typeParam)
	if date == "" || timeSlot == "" || err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", "date, timeSlot and resourceTypeId query parameters are required")
		return
	}

	available, err := h.Repo.FindAvailableResources(c.Request.Context(), resourceTypeID, date, timeSlot)
	if err != nil {
		h.Logger.Error("Failed to compute availability", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to compute availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}
