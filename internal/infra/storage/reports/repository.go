package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	"github.com/m04kA/SMC-BackofficeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BackofficeService/pkg/psqlbuilder"
)

// Totals сводные показатели за период
type Totals struct {
	TotalBookings     int
	TotalRevenue      float64
	CompletedBookings int
	CancelledBookings int
}

// StatusCount количество бронирований в одном статусе
type StatusCount struct {
	Status domain.BookingStatus
	Count  int
}

// DayRevenue выручка за один день
type DayRevenue struct {
	Date     time.Time
	Revenue  float64
	Bookings int
}

// PackageStat агрегат по одному пакету услуг
type PackageStat struct {
	PackageID   int64
	PackageName string
	Bookings    int
	Revenue     float64
}

// TeamStat агрегат по одной команде
type TeamStat struct {
	TeamID   int64
	Bookings int
	Revenue  float64
}

// revenueStatuses статусы, учитываемые в выручке: отменённые и no-show
// в выручку не входят
var revenueStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
	string(domain.StatusInProgress),
	string(domain.StatusCompleted),
}

// Repository репозиторий агрегирующих запросов для отчётов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отчётов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTotals получает сводные показатели за период
func (r *Repository) GetTotals(ctx context.Context, from, to time.Time) (*Totals, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		fmt.Sprintf("COALESCE(SUM(price) FILTER (WHERE status IN ('%s','%s','%s','%s')), 0)",
			domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress, domain.StatusCompleted),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.StatusCompleted),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.StatusCancelled),
	).
		From("bookings").
		Where(squirrel.GtOrEq{"service_date": from}).
		Where(squirrel.LtOrEq{"service_date": to}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTotals - build select query: %v", ErrBuildQuery, err)
	}

	var totals Totals
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&totals.TotalBookings,
		&totals.TotalRevenue,
		&totals.CompletedBookings,
		&totals.CancelledBookings,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTotals - scan totals: %v", ErrScanRow, err)
	}

	return &totals, nil
}

// GetStatusCounts получает распределение бронирований по статусам за период
func (r *Repository) GetStatusCounts(ctx context.Context, from, to time.Time) ([]StatusCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("bookings").
		Where(squirrel.GtOrEq{"service_date": from}).
		Where(squirrel.LtOrEq{"service_date": to}).
		GroupBy("status").
		OrderBy("status ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStatusCounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatusCounts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]StatusCount, 0)
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("%w: GetStatusCounts - scan row: %v", ErrScanRow, err)
		}
		counts = append(counts, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStatusCounts - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// GetRevenueByDay получает выручку по дням за период
func (r *Repository) GetRevenueByDay(ctx context.Context, from, to time.Time) ([]DayRevenue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_date", "COALESCE(SUM(price), 0)", "COUNT(*)").
		From("bookings").
		Where(squirrel.GtOrEq{"service_date": from}).
		Where(squirrel.LtOrEq{"service_date": to}).
		Where(squirrel.Eq{"status": revenueStatuses}).
		GroupBy("service_date").
		OrderBy("service_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRevenueByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRevenueByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]DayRevenue, 0)
	for rows.Next() {
		var day DayRevenue
		if err := rows.Scan(&day.Date, &day.Revenue, &day.Bookings); err != nil {
			return nil, fmt.Errorf("%w: GetRevenueByDay - scan row: %v", ErrScanRow, err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRevenueByDay - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

// GetTopPackages получает пакеты услуг с наибольшей выручкой за период
func (r *Repository) GetTopPackages(ctx context.Context, from, to time.Time, limit int) ([]PackageStat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("package_id", "package_name", "COUNT(*)", "COALESCE(SUM(price), 0)").
		From("bookings").
		Where(squirrel.GtOrEq{"service_date": from}).
		Where(squirrel.LtOrEq{"service_date": to}).
		Where(squirrel.Eq{"status": revenueStatuses}).
		GroupBy("package_id", "package_name").
		OrderBy("SUM(price) DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTopPackages - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTopPackages - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := make([]PackageStat, 0)
	for rows.Next() {
		var stat PackageStat
		if err := rows.Scan(&stat.PackageID, &stat.PackageName, &stat.Bookings, &stat.Revenue); err != nil {
			return nil, fmt.Errorf("%w: GetTopPackages - scan row: %v", ErrScanRow, err)
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTopPackages - rows error: %v", ErrScanRow, err)
	}

	return stats, nil
}

// GetRevenueByPackage получает выручку по пакетам услуг за период
func (r *Repository) GetRevenueByPackage(ctx context.Context, from, to time.Time) ([]PackageStat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("package_id", "package_name", "COUNT(*)", "COALESCE(SUM(price), 0)").
		From("bookings").
		Where(squirrel.GtOrEq{"service_date": from}).
		Where(squirrel.LtOrEq{"service_date": to}).
		Where(squirrel.Eq{"status": revenueStatuses}).
		GroupBy("package_id", "package_name").
		OrderBy("SUM(price) DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRevenueByPackage - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRevenueByPackage - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := make([]PackageStat, 0)
	for rows.Next() {
		var stat PackageStat
		if err := rows.Scan(&stat.PackageID, &stat.PackageName, &stat.Bookings, &stat.Revenue); err != nil {
			return nil, fmt.Errorf("%w: GetRevenueByPackage - scan row: %v", ErrScanRow, err)
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRevenueByPackage - rows error: %v", ErrScanRow, err)
	}

	return stats, nil
}

// GetRevenueByTeam получает выручку по командам за период
func (r *Repository) GetRevenueByTeam(ctx context.Context, from, to time.Time) ([]TeamStat, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("team_id", "COUNT(*)", "COALESCE(SUM(price), 0)").
		From("bookings").
		Where(squirrel.GtOrEq{"service_date": from}).
		Where(squirrel.LtOrEq{"service_date": to}).
		Where(squirrel.Eq{"status": revenueStatuses}).
		Where(squirrel.NotEq{"team_id": nil}).
		GroupBy("team_id").
		OrderBy("SUM(price) DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRevenueByTeam - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRevenueByTeam - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := make([]TeamStat, 0)
	for rows.Next() {
		var stat TeamStat
		if err := rows.Scan(&stat.TeamID, &stat.Bookings, &stat.Revenue); err != nil {
			return nil, fmt.Errorf("%w: GetRevenueByTeam - scan row: %v", ErrScanRow, err)
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRevenueByTeam - rows error: %v", ErrScanRow, err)
	}

	return stats, nil
}
