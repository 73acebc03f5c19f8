package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BackofficeService/internal/service/bookings/models"
	"github.com/m04kA/SMC-BackofficeService/pkg/ptr"
	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	onDate   []*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.CustomerID != nil && b.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive() && filter.Status == nil {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetForAssignmentOnDate(_ context.Context, _ time.Time, _, _ *int64) ([]*domain.Booking, error) {
	return f.onDate, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	if _, ok := f.bookings[booking.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, value string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return ts
}

func testBooking(t *testing.T, id int64, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:              id,
		CustomerID:      1,
		PackageID:       10,
		ServiceDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       mustTime(t, "10:00"),
		DurationMinutes: 120,
		Status:          status,
		Price:           100,
		PriceMode:       domain.PriceModePackage,
	}
}

func TestService_GetByID(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, domain.StatusPending))
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), fakeTxManager{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Update_ChangesFields(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, domain.StatusPending))
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		StartTime:       ptr.Ptr("14:00"),
		DurationMinutes: ptr.Ptr(90),
	})

	require.NoError(t, err)
	assert.Equal(t, "14:00", resp.Booking.StartTime)
	assert.Equal(t, 90, resp.Booking.DurationMinutes)
	assert.Empty(t, resp.Warnings)
}

func TestService_Update_PriceOverridesMode(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, domain.StatusPending))
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		Price: ptr.Ptr(250.0),
	})

	require.NoError(t, err)
	assert.Equal(t, 250.0, resp.Booking.Price)
	assert.Equal(t, string(domain.PriceModeOverride), resp.Booking.PriceMode)
}

func TestService_Update_TerminalStatusRejected(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, domain.StatusCompleted))
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		DurationMinutes: ptr.Ptr(60),
	})

	assert.ErrorIs(t, err, ErrCannotUpdate)
}

func TestService_Update_BothAssignmentsRejected(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, domain.StatusPending))
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		StaffID: ptr.Ptr(int64(5)),
		TeamID:  ptr.Ptr(int64(7)),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_OverlapReturnsWarning(t *testing.T) {
	booking := testBooking(t, 1, domain.StatusPending)
	booking.StaffID = ptr.Ptr(int64(5))

	other := testBooking(t, 2, domain.StatusConfirmed)
	other.StaffID = ptr.Ptr(int64(5))
	other.StartTime = mustTime(t, "11:00")

	repo := newFakeBookingRepo(booking)
	repo.onDate = []*domain.Booking{other}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		DurationMinutes: ptr.Ptr(120),
	})

	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "overlaps with booking 2")
}

func TestService_Cancel(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, domain.StatusConfirmed))
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{CancellationReason: "client request"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
}

func TestService_Cancel_InProgressRejected(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, domain.StatusInProgress))
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestService_UpdateStatus_ValidTransition(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, domain.StatusPending))
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
}

func TestService_UpdateStatus_InvalidTransition(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, domain.StatusPending))
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_UpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeBookingRepo(testBooking(t, 1, domain.StatusPending))
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "paused"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_BulkAction_PartialFailure(t *testing.T) {
	repo := newFakeBookingRepo(
		testBooking(t, 1, domain.StatusPending),
		testBooking(t, 2, domain.StatusCompleted),
	)
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	resp, err := svc.BulkAction(context.Background(), &models.BulkActionRequest{
		BookingIDs: []int64{1, 2, 3},
		Action:     "cancel",
		Reason:     ptr.Ptr("schedule change"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 2, resp.Failed)
	require.Len(t, resp.Results, 3)
	assert.True(t, resp.Results[0].Success)
	assert.False(t, resp.Results[1].Success)
	assert.False(t, resp.Results[2].Success)
}

func TestService_BulkAction_UnknownAction(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), fakeTxManager{}, nopLogger{})

	_, err := svc.BulkAction(context.Background(), &models.BulkActionRequest{
		BookingIDs: []int64{1},
		Action:     "archive",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
