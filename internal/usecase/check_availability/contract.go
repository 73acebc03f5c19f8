package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetForAssignmentOnDate(ctx context.Context, date time.Time, staffID, teamID *int64) ([]*domain.Booking, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
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
