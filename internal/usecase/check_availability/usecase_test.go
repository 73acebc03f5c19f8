package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	staffRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/staff"
	teamRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/team"
	"github.com/m04kA/SMC-BackofficeService/pkg/ptr"
	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetForAssignmentOnDate(_ context.Context, _ time.Time, _, _ *int64) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeStaffRepo struct {
	staff map[int64]*domain.Staff
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	return s, nil
}

type fakeTeamRepo struct {
	teams map[int64]*domain.Team
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int64) (*domain.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, teamRepo.ErrTeamNotFound
	}
	return t, nil
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

func newTestUseCase(bookings *fakeBookingRepo) *UseCase {
	return NewUseCase(
		bookings,
		&fakeStaffRepo{staff: map[int64]*domain.Staff{
			5: {ID: 5, Name: "Anna", IsActive: true},
		}},
		&fakeTeamRepo{teams: map[int64]*domain.Team{
			1: {ID: 1, Name: "Alpha", IsActive: true},
		}},
		nopLogger{},
	)
}

func testDate() time.Time {
	return time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
}

func TestUseCase_Execute_FreeSlot(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:         ptr.Ptr(int64(5)),
		Date:            testDate(),
		StartTime:       mustTime(t, "10:00"),
		DurationMinutes: 120,
	})

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.Conflicts)
}

func TestUseCase_Execute_ReportsOverlap(t *testing.T) {
	staffID := int64(5)
	uc := newTestUseCase(&fakeBookingRepo{bookings: []*domain.Booking{
		{
			ID: 99, StaffID: &staffID, Status: domain.StatusConfirmed,
			CustomerName: "Ivan Petrov",
			ServiceDate:  testDate(),
			StartTime:    mustTime(t, "11:00"), DurationMinutes: 60,
		},
	}})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:         &staffID,
		Date:            testDate(),
		StartTime:       mustTime(t, "10:00"),
		DurationMinutes: 120,
	})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(99), resp.Conflicts[0].BookingID)
	assert.Equal(t, "Ivan Petrov", resp.Conflicts[0].CustomerName)
	assert.Equal(t, "11:00", resp.Conflicts[0].StartTime)
	assert.Equal(t, "12:00", resp.Conflicts[0].EndTime)
}

func TestUseCase_Execute_CancelledBookingIgnored(t *testing.T) {
	staffID := int64(5)
	uc := newTestUseCase(&fakeBookingRepo{bookings: []*domain.Booking{
		{
			ID: 99, StaffID: &staffID, Status: domain.StatusCancelled,
			ServiceDate: testDate(),
			StartTime:   mustTime(t, "10:00"), DurationMinutes: 120,
		},
	}})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:         &staffID,
		Date:            testDate(),
		StartTime:       mustTime(t, "10:00"),
		DurationMinutes: 120,
	})

	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestUseCase_Execute_BoundaryTouchIsFree(t *testing.T) {
	staffID := int64(5)
	uc := newTestUseCase(&fakeBookingRepo{bookings: []*domain.Booking{
		{
			ID: 99, StaffID: &staffID, Status: domain.StatusConfirmed,
			ServiceDate: testDate(),
			StartTime:   mustTime(t, "08:00"), DurationMinutes: 120,
		},
	}})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:         &staffID,
		Date:            testDate(),
		StartTime:       mustTime(t, "10:00"),
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	assert.True(t, resp.Available)
}

func TestUseCase_Execute_BothAssignmentsRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:         ptr.Ptr(int64(5)),
		TeamID:          ptr.Ptr(int64(1)),
		Date:            testDate(),
		StartTime:       mustTime(t, "10:00"),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrAmbiguousAssignment)
}

func TestUseCase_Execute_NoAssignmentRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		Date:            testDate(),
		StartTime:       mustTime(t, "10:00"),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_UnknownStaffRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:         ptr.Ptr(int64(404)),
		Date:            testDate(),
		StartTime:       mustTime(t, "10:00"),
		DurationMinutes: 60,
	})

	assert.ErrorIs(t, err, ErrStaffNotFound)
}
