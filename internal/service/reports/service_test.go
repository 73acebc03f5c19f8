package reports

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	reportsRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/reports"
	teamRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/team"
	"github.com/m04kA/SMC-BackofficeService/internal/service/reports/models"
	"github.com/m04kA/SMC-BackofficeService/pkg/ptr"
	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

type fakeReportsRepo struct {
	totals       *reportsRepo.Totals
	statusCounts []reportsRepo.StatusCount
	revenueByDay []reportsRepo.DayRevenue
	topPackages  []reportsRepo.PackageStat
	byTeam       []reportsRepo.TeamStat
}

func (f *fakeReportsRepo) GetTotals(_ context.Context, _, _ time.Time) (*reportsRepo.Totals, error) {
	return f.totals, nil
}

func (f *fakeReportsRepo) GetStatusCounts(_ context.Context, _, _ time.Time) ([]reportsRepo.StatusCount, error) {
	return f.statusCounts, nil
}

func (f *fakeReportsRepo) GetRevenueByDay(_ context.Context, _, _ time.Time) ([]reportsRepo.DayRevenue, error) {
	return f.revenueByDay, nil
}

func (f *fakeReportsRepo) GetTopPackages(_ context.Context, _, _ time.Time, limit int) ([]reportsRepo.PackageStat, error) {
	if limit < len(f.topPackages) {
		return f.topPackages[:limit], nil
	}
	return f.topPackages, nil
}

func (f *fakeReportsRepo) GetRevenueByPackage(_ context.Context, _, _ time.Time) ([]reportsRepo.PackageStat, error) {
	return f.topPackages, nil
}

func (f *fakeReportsRepo) GetRevenueByTeam(_ context.Context, _, _ time.Time) ([]reportsRepo.TeamStat, error) {
	return f.byTeam, nil
}

type fakeBookingLister struct {
	bookings []*domain.Booking
}

func (f *fakeBookingLister) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeTeamLookup struct {
	teams map[int64]*domain.Team
}

func (f *fakeTeamLookup) GetByID(_ context.Context, id int64) (*domain.Team, error) {
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

func period(start, end string) *models.PeriodRequest {
	return &models.PeriodRequest{StartDate: start, EndDate: end}
}

func TestService_Dashboard(t *testing.T) {
	repo := &fakeReportsRepo{
		totals: &reportsRepo.Totals{
			TotalBookings: 10, TotalRevenue: 1500,
			CompletedBookings: 6, CancelledBookings: 2,
		},
		statusCounts: []reportsRepo.StatusCount{
			{Status: domain.StatusCompleted, Count: 6},
			{Status: domain.StatusCancelled, Count: 2},
			{Status: domain.StatusPending, Count: 2},
		},
		revenueByDay: []reportsRepo.DayRevenue{
			{Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), Revenue: 700, Bookings: 5},
			{Date: time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC), Revenue: 800, Bookings: 5},
		},
		topPackages: []reportsRepo.PackageStat{
			{PackageID: 1, PackageName: "Deep cleaning", Bookings: 7, Revenue: 1100},
		},
	}
	svc := NewService(repo, &fakeBookingLister{}, &fakeTeamLookup{}, nopLogger{})

	resp, err := svc.Dashboard(context.Background(), period("2025-10-01", "2025-10-31"))

	require.NoError(t, err)
	assert.Equal(t, 10, resp.TotalBookings)
	assert.Equal(t, 1500.0, resp.TotalRevenue)
	assert.Len(t, resp.ByStatus, 3)
	assert.Len(t, resp.RevenueByDay, 2)
	require.Len(t, resp.TopPackages, 1)
	assert.Equal(t, "Deep cleaning", resp.TopPackages[0].PackageName)
	assert.Equal(t, "2025-10-01", resp.RevenueByDay[0].Date)
}

func TestService_Dashboard_InvalidPeriod(t *testing.T) {
	svc := NewService(&fakeReportsRepo{}, &fakeBookingLister{}, &fakeTeamLookup{}, nopLogger{})

	_, err := svc.Dashboard(context.Background(), period("2025-10-31", "2025-10-01"))

	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestService_RevenueReport_ResolvesTeamNames(t *testing.T) {
	repo := &fakeReportsRepo{
		revenueByDay: []reportsRepo.DayRevenue{
			{Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), Revenue: 500, Bookings: 3},
		},
		byTeam: []reportsRepo.TeamStat{
			{TeamID: 1, Bookings: 3, Revenue: 500},
		},
	}
	teams := &fakeTeamLookup{teams: map[int64]*domain.Team{
		1: {ID: 1, Name: "Alpha"},
	}}
	svc := NewService(repo, &fakeBookingLister{}, teams, nopLogger{})

	resp, err := svc.RevenueReport(context.Background(), &models.RevenueReportRequest{
		PeriodRequest: *period("2025-10-01", "2025-10-31"),
	})

	require.NoError(t, err)
	assert.Equal(t, 500.0, resp.TotalRevenue)
	require.Len(t, resp.ByTeam, 1)
	assert.Equal(t, "Alpha", resp.ByTeam[0].TeamName)
	assert.Empty(t, resp.ByPackage)
}

func TestService_RevenueReport_GroupByPackage(t *testing.T) {
	repo := &fakeReportsRepo{
		revenueByDay: []reportsRepo.DayRevenue{
			{Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), Revenue: 500, Bookings: 3},
		},
		topPackages: []reportsRepo.PackageStat{
			{PackageID: 1, PackageName: "Deep cleaning", Bookings: 3, Revenue: 500},
		},
	}
	svc := NewService(repo, &fakeBookingLister{}, &fakeTeamLookup{}, nopLogger{})

	resp, err := svc.RevenueReport(context.Background(), &models.RevenueReportRequest{
		PeriodRequest: *period("2025-10-01", "2025-10-31"),
		GroupBy:       models.GroupByPackage,
	})

	require.NoError(t, err)
	require.Len(t, resp.ByPackage, 1)
	assert.Equal(t, "Deep cleaning", resp.ByPackage[0].PackageName)
	assert.Empty(t, resp.ByTeam)
}

func TestService_RevenueReport_UnknownGroupBy(t *testing.T) {
	svc := NewService(&fakeReportsRepo{}, &fakeBookingLister{}, &fakeTeamLookup{}, nopLogger{})

	_, err := svc.RevenueReport(context.Background(), &models.RevenueReportRequest{
		PeriodRequest: *period("2025-10-01", "2025-10-31"),
		GroupBy:       "customer",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ExportBookingsCSV(t *testing.T) {
	startTime, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)

	bookings := &fakeBookingLister{bookings: []*domain.Booking{
		{
			ID: 1, CustomerName: "Ivan Petrov", PackageName: "Deep cleaning",
			ServiceDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
			StartTime:   startTime, DurationMinutes: 120,
			Status: domain.StatusCompleted, Price: 140, PriceMode: domain.PriceModePackage,
		},
		{
			ID: 2, CustomerName: "Anna", PackageName: "Basic",
			ServiceDate: time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
			StartTime:   startTime, DurationMinutes: 60,
			Status: domain.StatusPending, Price: 75.5, PriceMode: domain.PriceModeCustom,
			CustomName: ptr.Ptr("Window washing"),
		},
	}}
	svc := NewService(&fakeReportsRepo{}, bookings, &fakeTeamLookup{}, nopLogger{})

	var buf bytes.Buffer
	err = svc.ExportBookingsCSV(context.Background(), period("2025-10-01", "2025-10-31"), &buf)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,customer,package,service_date,start_time,duration_minutes,status,price,price_mode", lines[0])
	assert.Equal(t, "1,Ivan Petrov,Deep cleaning,2025-10-15,10:00,120,completed,140.00,package", lines[1])
	// Для custom бронирования выгружается произвольное название услуги
	assert.Equal(t, "2,Anna,Window washing,2025-10-16,10:00,60,pending,75.50,custom", lines[2])
}

func TestService_TopPackages_LimitApplied(t *testing.T) {
	repo := &fakeReportsRepo{topPackages: []reportsRepo.PackageStat{
		{PackageID: 1, PackageName: "A"},
		{PackageID: 2, PackageName: "B"},
		{PackageID: 3, PackageName: "C"},
	}}
	svc := NewService(repo, &fakeBookingLister{}, &fakeTeamLookup{}, nopLogger{})

	resp, err := svc.TopPackages(context.Background(), &models.TopPackagesRequest{
		PeriodRequest: models.PeriodRequest{StartDate: "2025-10-01", EndDate: "2025-10-31"},
		Limit:         2,
	})

	require.NoError(t, err)
	assert.Len(t, resp, 2)
}
