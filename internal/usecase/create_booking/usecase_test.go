package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	customerRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/customer"
	packageRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/servicepackage"
	staffRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/staff"
	teamRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/team"
	"github.com/m04kA/SMC-BackofficeService/pkg/ptr"
	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  *domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	booking.ID = f.nextID
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetForAssignmentOnDate(_ context.Context, _ time.Time, _, _ *int64) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeCustomerRepo struct {
	customers map[int64]*domain.Customer
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return c, nil
}

type fakePackageRepo struct {
	packages map[int64]*domain.ServicePackage
}

func (f *fakePackageRepo) GetByID(_ context.Context, id int64) (*domain.ServicePackage, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, packageRepo.ErrPackageNotFound
	}
	return p, nil
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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
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
	uc := NewUseCase(
		bookings,
		&fakeCustomerRepo{customers: map[int64]*domain.Customer{
			1: {ID: 1, Name: "Ivan Petrov", Phone: "+1"},
		}},
		&fakePackageRepo{packages: map[int64]*domain.ServicePackage{
			10: {
				ID: 10, Name: "Deep cleaning", Version: domain.PackageV2,
				BasePrice: 200, DurationMinutes: 120, IsActive: true,
				Tiers: []domain.PriceTier{
					{ID: 1, AreaMin: 0, AreaMax: 50, Frequency: domain.FrequencyWeekly, Price: 80},
					{ID: 2, AreaMin: 50, AreaMax: 120, Frequency: domain.FrequencyWeekly, Price: 140},
				},
			},
			11: {ID: 11, Name: "Old package", Version: domain.PackageV1, BasePrice: 90, DurationMinutes: 60, IsActive: false},
		}},
		&fakeStaffRepo{staff: map[int64]*domain.Staff{
			5: {ID: 5, Name: "Anna", IsActive: true},
			6: {ID: 6, Name: "Former", IsActive: false},
		}},
		&fakeTeamRepo{teams: map[int64]*domain.Team{
			1: {ID: 1, Name: "Alpha", IsActive: true},
		}},
		fakeTxManager{},
		nopLogger{},
	)
	uc.timeProvider = fixedTimeProvider{now: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest(t *testing.T) *Request {
	return &Request{
		CustomerID: 1,
		PackageID:  10,
		Date:       time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  mustTime(t, "10:00"),
		PriceMode:  "package",
	}
}

func TestUseCase_Execute_PackageModeQuotesTier(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings)

	req := validRequest(t)
	req.Area = ptr.Ptr(75.0)
	req.Frequency = ptr.Ptr("weekly")

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 140.0, resp.Price)
	assert.Equal(t, "package", resp.PriceMode)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, 120, resp.DurationMinutes)
	assert.Equal(t, "Ivan Petrov", resp.CustomerName)
	assert.Equal(t, "Deep cleaning", resp.PackageName)
}

func TestUseCase_Execute_PackageModeFallsBackToBasePrice(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	req := validRequest(t)
	req.Area = ptr.Ptr(500.0)
	req.Frequency = ptr.Ptr("weekly")

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 200.0, resp.Price)
}

func TestUseCase_Execute_OverrideMode(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	req := validRequest(t)
	req.PriceMode = "override"
	req.Price = ptr.Ptr(175.0)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 175.0, resp.Price)
	assert.Equal(t, "override", resp.PriceMode)
}

func TestUseCase_Execute_OverrideWithoutPriceRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	req := validRequest(t)
	req.PriceMode = "override"

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidPricing)
}

func TestUseCase_Execute_CustomModeRequiresName(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	req := validRequest(t)
	req.PriceMode = "custom"
	req.Price = ptr.Ptr(60.0)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPricing)

	req.CustomName = ptr.Ptr("Window washing")
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 60.0, resp.Price)
	assert.Equal(t, "Window washing", *resp.CustomName)
}

func TestUseCase_Execute_PackageModeRejectsExplicitPrice(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	req := validRequest(t)
	req.Price = ptr.Ptr(100.0)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidPricing)
}

func TestUseCase_Execute_OverlapWarnsButCreates(t *testing.T) {
	staffID := int64(5)
	bookings := &fakeBookingRepo{existing: []*domain.Booking{
		{
			ID: 99, StaffID: &staffID, Status: domain.StatusConfirmed,
			ServiceDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime:   mustTime(t, "11:00"), DurationMinutes: 120,
		},
	}}
	uc := newTestUseCase(bookings)

	req := validRequest(t)
	req.StaffID = &staffID

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "overlaps with booking 99")
	assert.NotZero(t, resp.ID)
}

func TestUseCase_Execute_BoundaryTouchNoWarning(t *testing.T) {
	// Конец одного бронирования совпадает с началом другого - не пересечение
	staffID := int64(5)
	bookings := &fakeBookingRepo{existing: []*domain.Booking{
		{
			ID: 99, StaffID: &staffID, Status: domain.StatusConfirmed,
			ServiceDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime:   mustTime(t, "08:00"), DurationMinutes: 120,
		},
	}}
	uc := newTestUseCase(bookings)

	req := validRequest(t)
	req.StaffID = &staffID

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, resp.Warnings)
}

func TestUseCase_Execute_BothAssignmentsRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	req := validRequest(t)
	req.StaffID = ptr.Ptr(int64(5))
	req.TeamID = ptr.Ptr(int64(1))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAmbiguousAssignment)
}

func TestUseCase_Execute_InactiveStaffRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	req := validRequest(t)
	req.StaffID = ptr.Ptr(int64(6))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrStaffInactive)
}

func TestUseCase_Execute_InactivePackageRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	req := validRequest(t)
	req.PackageID = 11

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPackageInactive)
}

func TestUseCase_Execute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	req := validRequest(t)
	req.Date = time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_UnknownCustomerRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{})

	req := validRequest(t)
	req.CustomerID = 404

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
