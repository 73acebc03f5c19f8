package staff

import (
	"context"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
)

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	Create(ctx context.Context, member *domain.Staff) (*domain.Staff, error)
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	List(ctx context.Context, filter domain.StaffFilter) ([]*domain.Staff, error)
	Update(ctx context.Context, member *domain.Staff) error
	Deactivate(ctx context.Context, id int64) error
}

// MembershipRepository интерфейс репозитория членства в командах
type MembershipRepository interface {
	GetMembershipsByStaff(ctx context.Context, staffID int64) ([]*domain.TeamMembership, error)
	GetMembershipsByTeam(ctx context.Context, teamID int64) ([]*domain.TeamMembership, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetForStaffOrTeams(ctx context.Context, staffID int64, teamIDs []int64, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	GetByStaffOrTeams(ctx context.Context, staffID int64, teamIDs []int64) ([]*domain.Review, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
