package staff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	staffRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-BackofficeService/internal/service/staff/models"
	"github.com/m04kA/SMC-BackofficeService/pkg/ptr"
)

type fakeStaffRepo struct {
	staff  map[int64]*domain.Staff
	nextID int64
}

func newFakeStaffRepo(members ...*domain.Staff) *fakeStaffRepo {
	repo := &fakeStaffRepo{staff: make(map[int64]*domain.Staff), nextID: 100}
	for _, m := range members {
		repo.staff[m.ID] = m
	}
	return repo
}

func (f *fakeStaffRepo) Create(_ context.Context, member *domain.Staff) (*domain.Staff, error) {
	f.nextID++
	member.ID = f.nextID
	f.staff[member.ID] = member
	return member, nil
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	m, ok := f.staff[id]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	clone := *m
	return &clone, nil
}

func (f *fakeStaffRepo) List(_ context.Context, filter domain.StaffFilter) ([]*domain.Staff, error) {
	result := make([]*domain.Staff, 0)
	for _, m := range f.staff {
		if filter.Role != nil && m.Role != *filter.Role {
			continue
		}
		if filter.ActiveOnly && !m.IsActive {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func (f *fakeStaffRepo) Update(_ context.Context, member *domain.Staff) error {
	if _, ok := f.staff[member.ID]; !ok {
		return staffRepo.ErrStaffNotFound
	}
	clone := *member
	f.staff[member.ID] = &clone
	return nil
}

func (f *fakeStaffRepo) Deactivate(_ context.Context, id int64) error {
	m, ok := f.staff[id]
	if !ok {
		return staffRepo.ErrStaffNotFound
	}
	m.IsActive = false
	return nil
}

type fakeMembershipRepo struct {
	byStaff map[int64][]*domain.TeamMembership
	byTeam  map[int64][]*domain.TeamMembership
}

func (f *fakeMembershipRepo) GetMembershipsByStaff(_ context.Context, staffID int64) ([]*domain.TeamMembership, error) {
	return f.byStaff[staffID], nil
}

func (f *fakeMembershipRepo) GetMembershipsByTeam(_ context.Context, teamID int64) ([]*domain.TeamMembership, error) {
	return f.byTeam[teamID], nil
}

type fakeStaffBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeStaffBookingRepo) GetForStaffOrTeams(_ context.Context, _ int64, _ []int64, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeReviewRepo struct {
	reviews []*domain.Review
}

func (f *fakeReviewRepo) GetByStaffOrTeams(_ context.Context, _ int64, _ []int64) ([]*domain.Review, error) {
	return f.reviews, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func membership(teamID, staffID int64, joined time.Time, left *time.Time) *domain.TeamMembership {
	return &domain.TeamMembership{
		TeamID:   teamID,
		StaffID:  staffID,
		JoinedAt: joined,
		LeftAt:   left,
	}
}

func teamBooking(id, teamID int64, status domain.BookingStatus, price float64, createdAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		TeamID:    &teamID,
		Status:    status,
		Price:     price,
		CreatedAt: createdAt,
	}
}

func directBooking(id, staffID int64, status domain.BookingStatus, price float64, createdAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		StaffID:   &staffID,
		Status:    status,
		Price:     price,
		CreatedAt: createdAt,
	}
}

func TestService_Create(t *testing.T) {
	repo := newFakeStaffRepo()
	svc := NewService(repo, &fakeMembershipRepo{}, &fakeStaffBookingRepo{}, &fakeReviewRepo{}, nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateStaffRequest{
		Name: "Anna", Email: "anna@example.com", Phone: "+100", Role: "cleaner",
	})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "cleaner", resp.Role)
	assert.True(t, resp.IsActive)
}

func TestService_Create_InvalidRole(t *testing.T) {
	svc := NewService(newFakeStaffRepo(), &fakeMembershipRepo{}, &fakeStaffBookingRepo{}, &fakeReviewRepo{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateStaffRequest{Name: "Anna", Role: "director"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(newFakeStaffRepo(), &fakeMembershipRepo{}, &fakeStaffBookingRepo{}, &fakeReviewRepo{}, nopLogger{})

	_, err := svc.Update(context.Background(), 404, &models.UpdateStaffRequest{Name: ptr.Ptr("New")})

	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestService_GetBookings_MembershipWindow(t *testing.T) {
	// Сотрудник 5 состоял в команде 1 с 1 марта по 1 июня
	staffID := int64(5)
	left := day(2025, 6, 1)
	memberships := &fakeMembershipRepo{
		byStaff: map[int64][]*domain.TeamMembership{
			staffID: {membership(1, staffID, day(2025, 3, 1), &left)},
		},
	}
	bookings := &fakeStaffBookingRepo{bookings: []*domain.Booking{
		teamBooking(1, 1, domain.StatusCompleted, 100, day(2025, 4, 10)), // внутри периода
		teamBooking(2, 1, domain.StatusCompleted, 100, day(2025, 7, 1)),  // после выхода
		teamBooking(3, 1, domain.StatusCompleted, 100, day(2025, 2, 1)),  // до вступления
		directBooking(4, staffID, domain.StatusPending, 50, day(2025, 8, 1)),
	}}
	svc := NewService(newFakeStaffRepo(), memberships, bookings, &fakeReviewRepo{}, nopLogger{})

	resp, err := svc.GetBookings(context.Background(), staffID, &models.StaffBookingsRequest{})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
	assert.Equal(t, int64(4), resp.Bookings[1].ID)
}

func TestService_GetBookings_BoundaryDates(t *testing.T) {
	// Интервал полуоткрытый: день вступления включён, день выхода - нет
	staffID := int64(5)
	left := day(2025, 6, 1)
	memberships := &fakeMembershipRepo{
		byStaff: map[int64][]*domain.TeamMembership{
			staffID: {membership(1, staffID, day(2025, 3, 1), &left)},
		},
	}
	bookings := &fakeStaffBookingRepo{bookings: []*domain.Booking{
		teamBooking(1, 1, domain.StatusCompleted, 100, day(2025, 3, 1)),
		teamBooking(2, 1, domain.StatusCompleted, 100, day(2025, 6, 1)),
	}}
	svc := NewService(newFakeStaffRepo(), memberships, bookings, &fakeReviewRepo{}, nopLogger{})

	resp, err := svc.GetBookings(context.Background(), staffID, &models.StaffBookingsRequest{})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
}

func TestService_GetStats_SplitsTeamRevenue(t *testing.T) {
	// Команда 1 из трёх человек на момент создания бронирования
	staffID := int64(5)
	memberships := &fakeMembershipRepo{
		byStaff: map[int64][]*domain.TeamMembership{
			staffID: {membership(1, staffID, day(2025, 1, 1), nil)},
		},
		byTeam: map[int64][]*domain.TeamMembership{
			1: {
				membership(1, staffID, day(2025, 1, 1), nil),
				membership(1, 6, day(2025, 1, 1), nil),
				membership(1, 7, day(2025, 1, 1), nil),
			},
		},
	}
	bookings := &fakeStaffBookingRepo{bookings: []*domain.Booking{
		teamBooking(1, 1, domain.StatusCompleted, 100, day(2025, 4, 10)),
		directBooking(2, staffID, domain.StatusCompleted, 50, day(2025, 4, 11)),
		directBooking(3, staffID, domain.StatusPending, 500, day(2025, 4, 12)),
	}}
	reviews := &fakeReviewRepo{reviews: []*domain.Review{
		{ID: 1, StaffID: &staffID, Rating: 5, CreatedAt: day(2025, 4, 15)},
		{ID: 2, TeamID: ptr.Ptr(int64(1)), Rating: 4, CreatedAt: day(2025, 4, 16)},
	}}
	svc := NewService(newFakeStaffRepo(), memberships, bookings, reviews, nopLogger{})

	stats, err := svc.GetStats(context.Background(), staffID, &models.StaffBookingsRequest{})

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalBookings)
	assert.Equal(t, 2, stats.CompletedBookings)
	// 100/3 = 33.33 (доля) + 50 (прямое назначение)
	assert.InDelta(t, 83.33, stats.Revenue, 0.001)
	assert.Equal(t, 2, stats.ReviewCount)
	assert.InDelta(t, 4.5, stats.AverageRating, 0.001)
}

func TestService_GetStats_TeamSharesSumToPrice(t *testing.T) {
	// Доли трёх участников за одно бронирование складываются в его цену:
	// остаток округления достаётся последнему в порядке вступления
	teamMemberships := []*domain.TeamMembership{
		membership(1, 5, day(2025, 1, 1), nil),
		membership(1, 6, day(2025, 1, 1), nil),
		membership(1, 7, day(2025, 1, 1), nil),
	}
	bookings := &fakeStaffBookingRepo{bookings: []*domain.Booking{
		teamBooking(1, 1, domain.StatusCompleted, 100, day(2025, 4, 10)),
	}}

	var sum float64
	for i, staffID := range []int64{5, 6, 7} {
		memberships := &fakeMembershipRepo{
			byStaff: map[int64][]*domain.TeamMembership{
				staffID: {teamMemberships[i]},
			},
			byTeam: map[int64][]*domain.TeamMembership{1: teamMemberships},
		}
		svc := NewService(newFakeStaffRepo(), memberships, bookings, &fakeReviewRepo{}, nopLogger{})

		stats, err := svc.GetStats(context.Background(), staffID, &models.StaffBookingsRequest{})
		require.NoError(t, err)
		sum += stats.Revenue
	}

	assert.InDelta(t, 100.0, sum, 0.001)
}

func TestService_GetStats_LastMemberGetsRemainder(t *testing.T) {
	teamMemberships := []*domain.TeamMembership{
		membership(1, 5, day(2025, 1, 1), nil),
		membership(1, 6, day(2025, 1, 1), nil),
		membership(1, 7, day(2025, 1, 1), nil),
	}
	memberships := &fakeMembershipRepo{
		byStaff: map[int64][]*domain.TeamMembership{
			7: {teamMemberships[2]},
		},
		byTeam: map[int64][]*domain.TeamMembership{1: teamMemberships},
	}
	bookings := &fakeStaffBookingRepo{bookings: []*domain.Booking{
		teamBooking(1, 1, domain.StatusCompleted, 100, day(2025, 4, 10)),
	}}
	svc := NewService(newFakeStaffRepo(), memberships, bookings, &fakeReviewRepo{}, nopLogger{})

	stats, err := svc.GetStats(context.Background(), 7, &models.StaffBookingsRequest{})

	require.NoError(t, err)
	assert.InDelta(t, 33.34, stats.Revenue, 0.001)
}

func TestService_GetStats_ReviewsFilteredByRange(t *testing.T) {
	staffID := int64(5)
	memberships := &fakeMembershipRepo{
		byStaff: map[int64][]*domain.TeamMembership{
			staffID: {membership(1, staffID, day(2025, 1, 1), nil)},
		},
	}
	reviews := &fakeReviewRepo{reviews: []*domain.Review{
		{ID: 1, StaffID: &staffID, Rating: 5, CreatedAt: day(2025, 4, 15)},
		{ID: 2, StaffID: &staffID, Rating: 1, CreatedAt: day(2025, 8, 1)},
	}}
	svc := NewService(newFakeStaffRepo(), memberships, &fakeStaffBookingRepo{}, reviews, nopLogger{})

	stats, err := svc.GetStats(context.Background(), staffID, &models.StaffBookingsRequest{
		StartDate: ptr.Ptr("2025-04-01"),
		EndDate:   ptr.Ptr("2025-04-30"),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.ReviewCount)
	assert.InDelta(t, 5.0, stats.AverageRating, 0.001)
}

func TestService_GetStats_TeamReviewOutsideMembershipHidden(t *testing.T) {
	staffID := int64(5)
	left := day(2025, 6, 1)
	memberships := &fakeMembershipRepo{
		byStaff: map[int64][]*domain.TeamMembership{
			staffID: {membership(1, staffID, day(2025, 3, 1), &left)},
		},
	}
	reviews := &fakeReviewRepo{reviews: []*domain.Review{
		{ID: 1, TeamID: ptr.Ptr(int64(1)), Rating: 5, CreatedAt: day(2025, 7, 1)},
	}}
	svc := NewService(newFakeStaffRepo(), memberships, &fakeStaffBookingRepo{}, reviews, nopLogger{})

	stats, err := svc.GetStats(context.Background(), staffID, &models.StaffBookingsRequest{})

	require.NoError(t, err)
	assert.Equal(t, 0, stats.ReviewCount)
	assert.Equal(t, 0.0, stats.AverageRating)
}
