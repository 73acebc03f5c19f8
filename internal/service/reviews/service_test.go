package reviews

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/review"
	teamRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/team"
	"github.com/m04kA/SMC-BackofficeService/internal/service/reviews/models"
	"github.com/m04kA/SMC-BackofficeService/pkg/ptr"
)

type fakeReviewRepo struct {
	reviews []*domain.Review
	nextID  int64
	exists  bool
}

func (f *fakeReviewRepo) Create(_ context.Context, review *domain.Review) (*domain.Review, error) {
	if f.exists {
		return nil, reviewRepo.ErrReviewExists
	}
	f.nextID++
	review.ID = f.nextID
	review.CreatedAt = time.Now()
	f.reviews = append(f.reviews, review)
	return review, nil
}

func (f *fakeReviewRepo) GetByStaffOrTeams(_ context.Context, _ int64, _ []int64) ([]*domain.Review, error) {
	return f.reviews, nil
}

func (f *fakeReviewRepo) GetByTeam(_ context.Context, teamID int64) ([]*domain.Review, error) {
	result := make([]*domain.Review, 0)
	for _, r := range f.reviews {
		if r.TeamID != nil && *r.TeamID == teamID {
			result = append(result, r)
		}
	}
	return result, nil
}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

type fakeMembershipRepo struct {
	memberships []*domain.TeamMembership
}

func (f *fakeMembershipRepo) GetMembershipsByStaff(_ context.Context, _ int64) ([]*domain.TeamMembership, error) {
	return f.memberships, nil
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

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_Create_CopiesAttributionFromBooking(t *testing.T) {
	teamID := int64(3)
	reviews := &fakeReviewRepo{}
	svc := NewService(
		reviews,
		&fakeBookingRepo{bookings: map[int64]*domain.Booking{
			7: {ID: 7, CustomerID: 1, TeamID: &teamID, Status: domain.StatusCompleted},
		}},
		&fakeMembershipRepo{},
		&fakeTeamRepo{},
		nopLogger{},
	)

	resp, err := svc.Create(context.Background(), &models.CreateReviewRequest{
		BookingID: 7,
		Rating:    5,
		Comment:   ptr.Ptr("отлично"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.BookingID)
	assert.Equal(t, int64(1), resp.CustomerID)
	assert.Nil(t, resp.StaffID)
	require.NotNil(t, resp.TeamID)
	assert.Equal(t, teamID, *resp.TeamID)
}

func TestService_Create_InvalidRatingRejected(t *testing.T) {
	svc := NewService(&fakeReviewRepo{}, &fakeBookingRepo{}, &fakeMembershipRepo{}, &fakeTeamRepo{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateReviewRequest{BookingID: 7, Rating: 6})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Create_SecondReviewRejected(t *testing.T) {
	svc := NewService(
		&fakeReviewRepo{exists: true},
		&fakeBookingRepo{bookings: map[int64]*domain.Booking{
			7: {ID: 7, CustomerID: 1, Status: domain.StatusCompleted},
		}},
		&fakeMembershipRepo{},
		&fakeTeamRepo{},
		nopLogger{},
	)

	_, err := svc.Create(context.Background(), &models.CreateReviewRequest{BookingID: 7, Rating: 4})

	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestService_Create_UnknownBookingRejected(t *testing.T) {
	svc := NewService(&fakeReviewRepo{}, &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}, &fakeMembershipRepo{}, &fakeTeamRepo{}, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateReviewRequest{BookingID: 404, Rating: 4})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_ListByStaff_MembershipFilterApplied(t *testing.T) {
	staffID := int64(5)
	otherStaff := int64(9)
	teamID := int64(3)
	left := date(2025, 6, 1)

	reviews := &fakeReviewRepo{reviews: []*domain.Review{
		// Прямой отзыв виден всегда
		{ID: 1, StaffID: &staffID, Rating: 5, CreatedAt: date(2025, 8, 1)},
		// Командный отзыв в период членства
		{ID: 2, TeamID: &teamID, Rating: 4, CreatedAt: date(2025, 3, 10)},
		// Командный отзыв после выхода из команды
		{ID: 3, TeamID: &teamID, Rating: 1, CreatedAt: date(2025, 7, 1)},
		// Чужой прямой отзыв
		{ID: 4, StaffID: &otherStaff, Rating: 2, CreatedAt: date(2025, 3, 15)},
	}}

	svc := NewService(
		reviews,
		&fakeBookingRepo{},
		&fakeMembershipRepo{memberships: []*domain.TeamMembership{
			{ID: 1, TeamID: teamID, StaffID: staffID, JoinedAt: date(2025, 1, 1), LeftAt: &left},
		}},
		&fakeTeamRepo{},
		nopLogger{},
	)

	resp, err := svc.ListByStaff(context.Background(), staffID)

	require.NoError(t, err)
	require.Len(t, resp.Reviews, 2)
	assert.Equal(t, int64(1), resp.Reviews[0].ID)
	assert.Equal(t, int64(2), resp.Reviews[1].ID)
	assert.InDelta(t, 4.5, resp.AverageRating, 0.001)
}

func TestService_ListByTeam(t *testing.T) {
	teamID := int64(3)
	svc := NewService(
		&fakeReviewRepo{reviews: []*domain.Review{
			{ID: 1, TeamID: &teamID, Rating: 4},
			{ID: 2, TeamID: ptr.Ptr(int64(8)), Rating: 2},
		}},
		&fakeBookingRepo{},
		&fakeMembershipRepo{},
		&fakeTeamRepo{teams: map[int64]*domain.Team{3: {ID: 3, Name: "Alpha", IsActive: true}}},
		nopLogger{},
	)

	resp, err := svc.ListByTeam(context.Background(), teamID)

	require.NoError(t, err)
	require.Len(t, resp.Reviews, 1)
	assert.Equal(t, int64(1), resp.Reviews[0].ID)
}

func TestService_ListByTeam_UnknownTeam(t *testing.T) {
	svc := NewService(&fakeReviewRepo{}, &fakeBookingRepo{}, &fakeMembershipRepo{}, &fakeTeamRepo{teams: map[int64]*domain.Team{}}, nopLogger{})

	_, err := svc.ListByTeam(context.Background(), 404)

	assert.ErrorIs(t, err, ErrTeamNotFound)
}
