package reports

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	reportsRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/reports"
)

// ReportsRepository интерфейс репозитория агрегирующих запросов
type ReportsRepository interface {
	GetTotals(ctx context.Context, from, to time.Time) (*reportsRepo.Totals, error)
	GetStatusCounts(ctx context.Context, from, to time.Time) ([]reportsRepo.StatusCount, error)
	GetRevenueByDay(ctx context.Context, from, to time.Time) ([]reportsRepo.DayRevenue, error)
	GetTopPackages(ctx context.Context, from, to time.Time, limit int) ([]reportsRepo.PackageStat, error)
	GetRevenueByPackage(ctx context.Context, from, to time.Time) ([]reportsRepo.PackageStat, error)
	GetRevenueByTeam(ctx context.Context, from, to time.Time) ([]reportsRepo.TeamStat, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TeamRepository интерфейс репозитория команд
type TeamRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
