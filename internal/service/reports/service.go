package reports

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	reportsRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/reports"
	teamRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/team"
	"github.com/m04kA/SMC-BackofficeService/internal/service/reports/models"
)

// DefaultTopPackagesLimit количество пакетов в топе по умолчанию
const DefaultTopPackagesLimit = 5

// csvExportHeader заголовок CSV выгрузки бронирований
var csvExportHeader = []string{
	"id", "customer", "package", "service_date", "start_time",
	"duration_minutes", "status", "price", "price_mode",
}

// Service сервис аналитических отчётов
type Service struct {
	reportsRepo ReportsRepository
	bookingRepo BookingRepository
	teamRepo    TeamRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса отчётов
func NewService(
	reportsRepo ReportsRepository,
	bookingRepo BookingRepository,
	teamRepo TeamRepository,
	logger Logger,
) *Service {
	return &Service{
		reportsRepo: reportsRepo,
		bookingRepo: bookingRepo,
		teamRepo:    teamRepo,
		logger:      logger,
	}
}

// Dashboard собирает сводный отчёт за период. Четыре агрегирующих запроса
// выполняются параллельно.
func (s *Service) Dashboard(ctx context.Context, req *models.PeriodRequest) (*models.DashboardResponse, error) {
	from, to, err := s.parsePeriod(req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Dashboard: building report for %s - %s",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	var (
		totals       *reportsRepo.Totals
		statusCounts []reportsRepo.StatusCount
		revenueByDay []reportsRepo.DayRevenue
		topPackages  []reportsRepo.PackageStat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.reportsRepo.GetTotals(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		statusCounts, err = s.reportsRepo.GetStatusCounts(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		revenueByDay, err = s.reportsRepo.GetRevenueByDay(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		topPackages, err = s.reportsRepo.GetTopPackages(gctx, from, to, DefaultTopPackagesLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("Dashboard: repository error: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - repository error: %v", ErrInternal, err)
	}

	resp := &models.DashboardResponse{
		TotalBookings:     totals.TotalBookings,
		TotalRevenue:      totals.TotalRevenue,
		CompletedBookings: totals.CompletedBookings,
		CancelledBookings: totals.CancelledBookings,
		ByStatus:          make([]models.StatusCountResponse, 0, len(statusCounts)),
		RevenueByDay:      make([]models.DayRevenueResponse, 0, len(revenueByDay)),
		TopPackages:       make([]models.PackageStatResponse, 0, len(topPackages)),
	}

	for _, sc := range statusCounts {
		resp.ByStatus = append(resp.ByStatus, models.StatusCountResponse{
			Status: string(sc.Status),
			Count:  sc.Count,
		})
	}
	for _, day := range revenueByDay {
		resp.RevenueByDay = append(resp.RevenueByDay, models.DayRevenueResponse{
			Date:     day.Date.Format(domain.DateFormat),
			Revenue:  day.Revenue,
			Bookings: day.Bookings,
		})
	}
	for _, pkg := range topPackages {
		resp.TopPackages = append(resp.TopPackages, models.PackageStatResponse{
			PackageID:   pkg.PackageID,
			PackageName: pkg.PackageName,
			Bookings:    pkg.Bookings,
			Revenue:     pkg.Revenue,
		})
	}

	s.logger.Info("Dashboard: report ready, total=%d revenue=%.2f", resp.TotalBookings, resp.TotalRevenue)
	return resp, nil
}

// RevenueReport собирает отчёт по выручке: по дням плюс разрез по
// командам (по умолчанию) или по пакетам услуг
func (s *Service) RevenueReport(ctx context.Context, req *models.RevenueReportRequest) (*models.RevenueReportResponse, error) {
	from, to, err := s.parsePeriod(&req.PeriodRequest)
	if err != nil {
		return nil, err
	}

	groupBy := req.GroupBy
	if groupBy == "" {
		groupBy = models.GroupByTeam
	}
	if groupBy != models.GroupByTeam && groupBy != models.GroupByPackage {
		s.logger.Warn("RevenueReport: unknown groupBy=%s", req.GroupBy)
		return nil, fmt.Errorf("%w: unknown groupBy %q", ErrInvalidInput, req.GroupBy)
	}

	s.logger.Info("RevenueReport: building report for %s - %s, groupBy=%s",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat), groupBy)

	var (
		revenueByDay []reportsRepo.DayRevenue
		byTeam       []reportsRepo.TeamStat
		byPackage    []reportsRepo.PackageStat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		revenueByDay, err = s.reportsRepo.GetRevenueByDay(gctx, from, to)
		return err
	})
	if groupBy == models.GroupByTeam {
		g.Go(func() error {
			var err error
			byTeam, err = s.reportsRepo.GetRevenueByTeam(gctx, from, to)
			return err
		})
	} else {
		g.Go(func() error {
			var err error
			byPackage, err = s.reportsRepo.GetRevenueByPackage(gctx, from, to)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("RevenueReport: repository error: %v", err)
		return nil, fmt.Errorf("%w: RevenueReport - repository error: %v", ErrInternal, err)
	}

	resp := &models.RevenueReportResponse{
		RevenueByDay: make([]models.DayRevenueResponse, 0, len(revenueByDay)),
	}

	for _, day := range revenueByDay {
		resp.TotalRevenue += day.Revenue
		resp.RevenueByDay = append(resp.RevenueByDay, models.DayRevenueResponse{
			Date:     day.Date.Format(domain.DateFormat),
			Revenue:  day.Revenue,
			Bookings: day.Bookings,
		})
	}

	for _, stat := range byTeam {
		teamName := ""
		team, err := s.teamRepo.GetByID(ctx, stat.TeamID)
		if err != nil {
			if !errors.Is(err, teamRepo.ErrTeamNotFound) {
				s.logger.Error("RevenueReport: team lookup error for team=%d: %v", stat.TeamID, err)
				return nil, fmt.Errorf("%w: RevenueReport - team lookup error: %v", ErrInternal, err)
			}
		} else {
			teamName = team.Name
		}
		resp.ByTeam = append(resp.ByTeam, models.TeamStatResponse{
			TeamID:   stat.TeamID,
			TeamName: teamName,
			Bookings: stat.Bookings,
			Revenue:  stat.Revenue,
		})
	}

	for _, stat := range byPackage {
		resp.ByPackage = append(resp.ByPackage, models.PackageStatResponse{
			PackageID:   stat.PackageID,
			PackageName: stat.PackageName,
			Bookings:    stat.Bookings,
			Revenue:     stat.Revenue,
		})
	}

	s.logger.Info("RevenueReport: report ready, total=%.2f", resp.TotalRevenue)
	return resp, nil
}

// TopPackages возвращает пакеты с наибольшей выручкой за период
func (s *Service) TopPackages(ctx context.Context, req *models.TopPackagesRequest) ([]models.PackageStatResponse, error) {
	from, to, err := s.parsePeriod(&req.PeriodRequest)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultTopPackagesLimit
	}

	stats, err := s.reportsRepo.GetTopPackages(ctx, from, to, limit)
	if err != nil {
		s.logger.Error("TopPackages: repository error: %v", err)
		return nil, fmt.Errorf("%w: TopPackages - repository error: %v", ErrInternal, err)
	}

	resp := make([]models.PackageStatResponse, 0, len(stats))
	for _, pkg := range stats {
		resp = append(resp, models.PackageStatResponse{
			PackageID:   pkg.PackageID,
			PackageName: pkg.PackageName,
			Bookings:    pkg.Bookings,
			Revenue:     pkg.Revenue,
		})
	}

	return resp, nil
}

// ExportBookingsCSV выгружает бронирования периода в CSV
func (s *Service) ExportBookingsCSV(ctx context.Context, req *models.PeriodRequest, w io.Writer) error {
	from, to, err := s.parsePeriod(req)
	if err != nil {
		return err
	}

	s.logger.Info("ExportBookingsCSV: exporting bookings for %s - %s",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		StartDate:       &from,
		EndDate:         &to,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("ExportBookingsCSV: repository error: %v", err)
		return fmt.Errorf("%w: ExportBookingsCSV - repository error: %v", ErrInternal, err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvExportHeader); err != nil {
		return fmt.Errorf("%w: ExportBookingsCSV - write header: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		record := []string{
			strconv.FormatInt(b.ID, 10),
			b.CustomerName,
			exportName(b),
			b.ServiceDate.Format(domain.DateFormat),
			b.StartTime.String(),
			strconv.Itoa(b.DurationMinutes),
			string(b.Status),
			strconv.FormatFloat(b.Price, 'f', 2, 64),
			string(b.PriceMode),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("%w: ExportBookingsCSV - write record: %v", ErrInternal, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: ExportBookingsCSV - flush: %v", ErrInternal, err)
	}

	s.logger.Info("ExportBookingsCSV: exported %d bookings", len(bookings))
	return nil
}

// exportName возвращает название услуги для выгрузки: для custom
// бронирований это произвольное название вместо имени пакета
func exportName(b *domain.Booking) string {
	if b.PriceMode == domain.PriceModeCustom && b.CustomName != nil {
		return *b.CustomName
	}
	return b.PackageName
}

// parsePeriod валидирует и парсит период отчёта
func (s *Service) parsePeriod(req *models.PeriodRequest) (time.Time, time.Time, error) {
	from, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		s.logger.Warn("parsePeriod: invalid start date=%s", req.StartDate)
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start date", ErrInvalidPeriod)
	}
	to, err := time.Parse(domain.DateFormat, req.EndDate)
	if err != nil {
		s.logger.Warn("parsePeriod: invalid end date=%s", req.EndDate)
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end date", ErrInvalidPeriod)
	}
	if to.Before(from) {
		s.logger.Warn("parsePeriod: end date %s before start date %s", req.EndDate, req.StartDate)
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date before start date", ErrInvalidPeriod)
	}
	return from, to, nil
}
