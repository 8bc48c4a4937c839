package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	bookingRepo "innoviahub/database/repository/booking"
	"innoviahub/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBookingRepo is an in-memory BookingRepository enforcing the same
// allocation and uniqueness semantics as the Mongo implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	pool     []models.Resource
	bookings map[string]models.Booking
	failWith error
}

func newFakeBookingRepo(pool ...models.Resource) *fakeBookingRepo {
	return &fakeBookingRepo{pool: pool, bookings: make(map[string]models.Booking)}
}

func (f *fakeBookingRepo) insert(b models.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[b.ID] = b
}

func (f *fakeBookingRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

func (f *fakeBookingRepo) availableLocked(resourceTypeID int, date, normalized string) []models.Resource {
	taken := make(map[int]bool)
	for _, b := range f.bookings {
		if b.Date == date && models.NormalizeTimeSlot(b.TimeSlot) == normalized {
			taken[b.ResourceID] = true
		}
	}
	var available []models.Resource
	for _, r := range f.pool {
		if r.ResourceTypeID == resourceTypeID && r.IsBookable && !taken[r.ID] {
			available = append(available, r)
		}
	}
	return available
}

func (f *fakeBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByDateForUser(ctx context.Context, date, userID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Date == date && b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByDetails(ctx context.Context, userID, date, timeSlot string, resourceTypeID int) (*models.Booking, error) {
	normalized := models.NormalizeTimeSlot(timeSlot)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.UserID == userID && b.Date == date && b.ResourceTypeID == resourceTypeID &&
			models.NormalizeTimeSlot(b.TimeSlot) == normalized {
			found := b
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindAvailableResources(ctx context.Context, resourceTypeID int, date, timeSlot string) ([]models.Resource, error) {
	normalized := models.NormalizeTimeSlot(timeSlot)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.availableLocked(resourceTypeID, date, normalized), nil
}

func (f *fakeBookingRepo) Create(ctx context.Context, date, timeSlot string, resourceTypeID int, userID string) (*models.Booking, error) {
	normalized := models.NormalizeTimeSlot(timeSlot)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	available := f.availableLocked(resourceTypeID, date, normalized)
	if len(available) == 0 {
		return nil, bookingRepo.ErrNoAvailability
	}
	booking := models.Booking{
		ID:             uuid.New().String(),
		UserID:         userID,
		Date:           date,
		TimeSlot:       normalized,
		ResourceTypeID: resourceTypeID,
		ResourceID:     available[0].ID,
	}
	f.bookings[booking.ID] = booking
	return &booking, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, bookingID, newDate, newTimeSlot string, newResourceTypeID int) (*models.Booking, error) {
	normalized := models.NormalizeTimeSlot(newTimeSlot)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	booking, ok := f.bookings[bookingID]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	available := f.availableLocked(newResourceTypeID, newDate, normalized)
	if len(available) == 0 {
		return nil, bookingRepo.ErrNoAvailability
	}
	booking.Date = newDate
	booking.TimeSlot = normalized
	booking.ResourceTypeID = newResourceTypeID
	booking.ResourceID = available[0].ID
	f.bookings[bookingID] = booking
	return &booking, nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, bookingID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	if _, ok := f.bookings[bookingID]; !ok {
		return false, nil
	}
	delete(f.bookings, bookingID)
	return true, nil
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

// stubAssistant always answers with the deterministic fallback.
type stubAssistant struct{}

func (stubAssistant) ExtractIntent(ctx context.Context, history *models.Conversation) (models.Intent, error) {
	return models.Intent{Kind: models.IntentReply, Reply: "ok"}, nil
}

func (stubAssistant) Phrase(ctx context.Context, history *models.Conversation, instruction, fallback string) string {
	return fallback
}

func newTestService(pool ...models.Resource) (*DefaultActionService, *fakeBookingRepo) {
	repo := newFakeBookingRepo(pool...)
	svc := &DefaultActionService{
		Repo:      repo,
		Pending:   NewMemoryPendingStore(0),
		Assistant: stubAssistant{},
		Logger:    zap.NewNop(),
	}
	return svc, repo
}

func meetingRoomPool(n int) []models.Resource {
	var pool []models.Resource
	for i := 1; i <= n; i++ {
		pool = append(pool, models.Resource{
			ID:             i,
			Name:           fmt.Sprintf("Meeting Room %d", i),
			ResourceTypeID: models.ResourceTypeMeetingRoom,
			IsBookable:     true,
		})
	}
	return pool
}

func TestHandleCreateProposesWithoutAllocating(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(meetingRoomPool(1)...)
	history := &models.Conversation{}

	resp, err := svc.HandleCreate(ctx, "u1", models.BookingArguments{
		Date:           "2025-10-10",
		TimeSlot:       "08:00-10:00",
		ResourceTypeID: models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)

	assert.True(t, resp.AwaitingConfirmation)
	assert.Equal(t, "create", resp.ActionType)
	require.NotNil(t, resp.PendingBooking)
	assert.Equal(t, "meeting room", resp.PendingBooking.ResourceTypeName)
	// allocation is deferred: nothing persisted before the confirm
	assert.Equal(t, 0, repo.count())
	// the generated answer joins the conversation
	require.NotEmpty(t, history.Messages)
	assert.Equal(t, "assistant", history.Messages[len(history.Messages)-1].Role)
}

func TestCreateConfirmCommitsNormalizedBooking(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(meetingRoomPool(1)...)
	history := &models.Conversation{}

	_, err := svc.HandleCreate(ctx, "u1", models.BookingArguments{
		Date:           "2025-10-10",
		TimeSlot:       "08:00-10:00",
		ResourceTypeID: models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)

	resp, err := svc.Confirm(ctx, "u1", true, history)
	require.NoError(t, err)
	require.NotEmpty(t, resp.BookingID)
	assert.Contains(t, resp.Message, "meeting room")

	bookings, _ := repo.ListByUser(ctx, "u1")
	require.Len(t, bookings, 1)
	assert.Equal(t, "08-10", bookings[0].TimeSlot)
	assert.Equal(t, "2025-10-10", bookings[0].Date)

	// the proposal is consumed
	_, err = svc.Confirm(ctx, "u1", true, history)
	assert.ErrorIs(t, err, ErrNoPendingAction)
}

func TestCreateConfirmNoAvailabilityConsumesProposal(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(meetingRoomPool(1)...)
	repo.insert(models.Booking{
		ID: "taken", UserID: "other", Date: "2025-10-10",
		TimeSlot: "08-10", ResourceTypeID: models.ResourceTypeMeetingRoom, ResourceID: 1,
	})
	history := &models.Conversation{}

	_, err := svc.HandleCreate(ctx, "u1", models.BookingArguments{
		Date:           "2025-10-10",
		TimeSlot:       "08:00-10:00",
		ResourceTypeID: models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)

	resp, err := svc.Confirm(ctx, "u1", true, history)
	require.NoError(t, err)
	assert.Empty(t, resp.BookingID)
	assert.Contains(t, resp.Message, "already taken")
	assert.Equal(t, 1, repo.count())

	// a failed commit must not leave a stale proposal behind
	_, err = svc.Confirm(ctx, "u1", true, history)
	assert.ErrorIs(t, err, ErrNoPendingAction)
}

func TestConfirmWithoutPendingAction(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Confirm(ctx, "u1", true, &models.Conversation{})
	assert.ErrorIs(t, err, ErrNoPendingAction)

	_, err = svc.Confirm(ctx, "u1", false, &models.Conversation{})
	assert.ErrorIs(t, err, ErrNoPendingAction)
}

func TestCancelClearsPendingState(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(meetingRoomPool(1)...)
	history := &models.Conversation{}

	_, err := svc.HandleCreate(ctx, "u1", models.BookingArguments{
		Date:           "2025-10-10",
		TimeSlot:       "10-12",
		ResourceTypeID: models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)

	resp, err := svc.Confirm(ctx, "u1", false, history)
	require.NoError(t, err)
	assert.Equal(t, "Action cancelled.", resp.Message)
	assert.Equal(t, 0, repo.count())

	_, err = svc.Confirm(ctx, "u1", true, history)
	assert.ErrorIs(t, err, ErrNoPendingAction)
	_, err = svc.Confirm(ctx, "u1", false, history)
	assert.ErrorIs(t, err, ErrNoPendingAction)
}

func TestNewProposalOverwritesPrevious(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(meetingRoomPool(2)...)
	repo.insert(models.Booking{
		ID: "existing", UserID: "u1", Date: "2025-10-10",
		TimeSlot: "08-10", ResourceTypeID: models.ResourceTypeMeetingRoom, ResourceID: 1,
	})
	history := &models.Conversation{}

	// proposal A: delete the existing booking
	respA, err := svc.HandleDelete(ctx, "u1", models.BookingArguments{
		Date:           "2025-10-10",
		TimeSlot:       "08-10",
		ResourceTypeID: models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)
	require.True(t, respA.AwaitingConfirmation)

	// proposal B silently supersedes A
	_, err = svc.HandleCreate(ctx, "u1", models.BookingArguments{
		Date:           "2025-11-11",
		TimeSlot:       "14-16",
		ResourceTypeID: models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)

	resp, err := svc.Confirm(ctx, "u1", true, history)
	require.NoError(t, err)
	require.NotEmpty(t, resp.BookingID)

	// B committed, A was discarded: the original booking still exists
	bookings, _ := repo.ListByUser(ctx, "u1")
	assert.Len(t, bookings, 2)
}

func TestDeleteIntentNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(meetingRoomPool(1)...)
	history := &models.Conversation{}

	resp, err := svc.HandleDelete(ctx, "u1", models.BookingArguments{
		Date:           "2025-10-10",
		TimeSlot:       "08-10",
		ResourceTypeID: models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)

	assert.False(t, resp.AwaitingConfirmation)
	assert.Nil(t, resp.PendingBooking)
	assert.Contains(t, resp.Answer, "couldn't find")

	// nothing was stored
	_, err = svc.Confirm(ctx, "u1", true, history)
	assert.ErrorIs(t, err, ErrNoPendingAction)
}

func TestDeleteConfirmRemovesBooking(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(meetingRoomPool(1)...)
	repo.insert(models.Booking{
		ID: "b1", UserID: "u1", Date: "2025-10-10",
		TimeSlot: "08-10", ResourceTypeID: models.ResourceTypeMeetingRoom, ResourceID: 1,
	})
	history := &models.Conversation{}

	// lookup matches even when the caller uses the colon-qualified form
	resp, err := svc.HandleDelete(ctx, "u1", models.BookingArguments{
		Date:           "2025-10-10",
		TimeSlot:       "08:00-10:00",
		ResourceTypeID: models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)
	require.True(t, resp.AwaitingConfirmation)
	assert.Equal(t, "delete", resp.ActionType)

	_, err = svc.Confirm(ctx, "u1", true, history)
	require.NoError(t, err)
	assert.Equal(t, 0, repo.count())
}

func TestEditConfirmReassignsBooking(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(meetingRoomPool(1)...)
	repo.insert(models.Booking{
		ID: "b1", UserID: "u1", Date: "2025-10-10",
		TimeSlot: "08-10", ResourceTypeID: models.ResourceTypeMeetingRoom, ResourceID: 1,
	})
	history := &models.Conversation{}

	resp, err := svc.HandleEdit(ctx, "u1", models.EditBookingArguments{
		CurrentDate:           "2025-10-10",
		CurrentTimeSlot:       "08:00-10:00",
		CurrentResourceTypeID: models.ResourceTypeMeetingRoom,
		NewDate:               "2025-10-11",
		NewTimeSlot:           "14:00-16:00",
		NewResourceTypeID:     models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)
	require.True(t, resp.AwaitingConfirmation)
	assert.Equal(t, "edit", resp.ActionType)

	_, err = svc.Confirm(ctx, "u1", true, history)
	require.NoError(t, err)

	bookings, _ := repo.ListByUser(ctx, "u1")
	require.Len(t, bookings, 1)
	assert.Equal(t, "b1", bookings[0].ID)
	assert.Equal(t, "2025-10-11", bookings[0].Date)
	assert.Equal(t, "14-16", bookings[0].TimeSlot)
}

func TestEditIntentNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(meetingRoomPool(1)...)
	history := &models.Conversation{}

	resp, err := svc.HandleEdit(ctx, "u1", models.EditBookingArguments{
		CurrentDate:           "2025-10-10",
		CurrentTimeSlot:       "08-10",
		CurrentResourceTypeID: models.ResourceTypeMeetingRoom,
		NewDate:               "2025-10-11",
		NewTimeSlot:           "14-16",
		NewResourceTypeID:     models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)
	assert.False(t, resp.AwaitingConfirmation)
	assert.Contains(t, resp.Answer, "couldn't find")
}

func TestEditConfirmNoAvailabilityConsumesProposal(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(meetingRoomPool(1)...)
	repo.insert(models.Booking{
		ID: "b1", UserID: "u1", Date: "2025-10-10",
		TimeSlot: "08-10", ResourceTypeID: models.ResourceTypeMeetingRoom, ResourceID: 1,
	})
	// the only room is taken by someone else at the target slot
	repo.insert(models.Booking{
		ID: "b2", UserID: "other", Date: "2025-10-11",
		TimeSlot: "14-16", ResourceTypeID: models.ResourceTypeMeetingRoom, ResourceID: 1,
	})
	history := &models.Conversation{}

	_, err := svc.HandleEdit(ctx, "u1", models.EditBookingArguments{
		CurrentDate:           "2025-10-10",
		CurrentTimeSlot:       "08-10",
		CurrentResourceTypeID: models.ResourceTypeMeetingRoom,
		NewDate:               "2025-10-11",
		NewTimeSlot:           "14-16",
		NewResourceTypeID:     models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)

	resp, err := svc.Confirm(ctx, "u1", true, history)
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "already taken")

	// booking unchanged, proposal consumed
	bookings, _ := repo.ListByUser(ctx, "u1")
	require.Len(t, bookings, 1)
	assert.Equal(t, "08-10", bookings[0].TimeSlot)
	_, err = svc.Confirm(ctx, "u1", true, history)
	assert.ErrorIs(t, err, ErrNoPendingAction)
}

func TestShowBookingsListsIDs(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(meetingRoomPool(1)...)
	repo.insert(models.Booking{
		ID: "b1", UserID: "u1", Date: "2025-10-10",
		TimeSlot: "08-10", ResourceTypeID: models.ResourceTypeMeetingRoom, ResourceID: 1,
	})
	history := &models.Conversation{}

	resp, err := svc.HandleShow(ctx, "u1", models.ShowBookingsArguments{}, history)
	require.NoError(t, err)
	assert.False(t, resp.AwaitingConfirmation)
	assert.Contains(t, resp.Answer, "b1")
	assert.Contains(t, resp.Answer, "2025-10-10")

	// date filter excludes other days
	resp, err = svc.HandleShow(ctx, "u1", models.ShowBookingsArguments{Date: "2025-12-24"}, history)
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "No bookings found")
}

func TestShowNeverTouchesPendingState(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(meetingRoomPool(1)...)
	history := &models.Conversation{}

	_, err := svc.HandleCreate(ctx, "u1", models.BookingArguments{
		Date: "2025-10-10", TimeSlot: "08-10", ResourceTypeID: models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)

	_, err = svc.HandleShow(ctx, "u1", models.ShowBookingsArguments{}, history)
	require.NoError(t, err)

	// the proposal is still there
	resp, err := svc.Confirm(ctx, "u1", true, history)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.BookingID)
}

func TestPersistenceFailureSurfacesAndClearsState(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(meetingRoomPool(1)...)
	repo.failWith = errors.New("connection reset")
	history := &models.Conversation{}

	_, err := svc.HandleCreate(ctx, "u1", models.BookingArguments{
		Date: "2025-10-10", TimeSlot: "08-10", ResourceTypeID: models.ResourceTypeMeetingRoom,
	}, history)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, "u1", true, history)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoPendingAction)

	// no poisoned retry loop: the proposal is gone
	_, err = svc.Confirm(ctx, "u1", true, history)
	assert.ErrorIs(t, err, ErrNoPendingAction)
}

func TestConcurrentCommitsAllocateAtMostOnePerSlot(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(meetingRoomPool(1)...)
	args := models.BookingArguments{
		Date: "2025-10-10", TimeSlot: "08:00-10:00", ResourceTypeID: models.ResourceTypeMeetingRoom,
	}

	// both users may propose the same slot
	_, err := svc.HandleCreate(ctx, "u1", args, &models.Conversation{})
	require.NoError(t, err)
	_, err = svc.HandleCreate(ctx, "u2", args, &models.Conversation{})
	require.NoError(t, err)

	results := make(chan *models.ConfirmResponse, 2)
	var wg sync.WaitGroup
	for _, user := range []string{"u1", "u2"} {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			resp, err := svc.Confirm(ctx, userID, true, &models.Conversation{})
			assert.NoError(t, err)
			results <- resp
		}(user)
	}
	wg.Wait()
	close(results)

	var committed, rejected int
	for resp := range results {
		if resp.BookingID != "" {
			committed++
		} else {
			assert.Contains(t, resp.Message, "already taken")
			rejected++
		}
	}
	assert.Equal(t, 1, committed)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 1, repo.count())
}

func TestDoubleConfirmCommitsOnce(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(meetingRoomPool(2)...)

	_, err := svc.HandleCreate(ctx, "u1", models.BookingArguments{
		Date: "2025-10-10", TimeSlot: "08-10", ResourceTypeID: models.ResourceTypeMeetingRoom,
	}, &models.Conversation{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Confirm(ctx, "u1", true, &models.Conversation{})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, noPending int
	for err := range errs {
		if err == nil {
			succeeded++
		} else if errors.Is(err, ErrNoPendingAction) {
			noPending++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, noPending)
	assert.Equal(t, 1, repo.count())
}

func TestDispatchRoutesReply(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	history := &models.Conversation{}

	resp, err := svc.Dispatch(ctx, "u1", models.Intent{
		Kind: models.IntentReply, Reply: "We are open 08:00 to 20:00.",
	}, history)
	require.NoError(t, err)
	assert.Equal(t, "We are open 08:00 to 20:00.", resp.Answer)
	assert.False(t, resp.AwaitingConfirmation)
	require.Len(t, history.Messages, 1)
}
