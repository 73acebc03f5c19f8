package packages

import (
	"context"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
)

// PackageRepository интерфейс репозитория пакетов услуг
type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.ServicePackage) (*domain.ServicePackage, error)
	GetByID(ctx context.Context, id int64) (*domain.ServicePackage, error)
	List(ctx context.Context, filter domain.PackageFilter) ([]*domain.ServicePackage, error)
	Update(ctx context.Context, pkg *domain.ServicePackage) error
	Deactivate(ctx context.Context, id int64) error
	ReplaceTiers(ctx context.Context, packageID int64, tiers []domain.PriceTier) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
