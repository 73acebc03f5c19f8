package reviews

import (
	"context"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByStaffOrTeams(ctx context.Context, staffID int64, teamIDs []int64) ([]*domain.Review, error)
	GetByTeam(ctx context.Context, teamID int64) ([]*domain.Review, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// MembershipRepository интерфейс репозитория членства в командах
type MembershipRepository interface {
	GetMembershipsByStaff(ctx context.Context, staffID int64) ([]*domain.TeamMembership, error)
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
