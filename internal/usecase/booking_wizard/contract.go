package booking_wizard

import (
	"context"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	"github.com/m04kA/SMC-BackofficeService/internal/usecase/create_booking"
)

// SessionStore интерфейс хранилища сессий мастера
type SessionStore interface {
	Create(createdBy int64) *domain.WizardSession
	Get(id string) (*domain.WizardSession, error)
	Save(session *domain.WizardSession)
	Delete(id string)
}

// BookingCreator интерфейс создания бронирования. Отправка мастера идёт
// через тот же транзакционный путь, что и быстрое создание.
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// PackageRepository интерфейс репозитория пакетов услуг
type PackageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServicePackage, error)
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
