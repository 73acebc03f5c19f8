package packages

import (
	"context"

	"github.com/m04kA/SMC-BackofficeService/internal/service/packages/models"
)

type PackageService interface {
	Create(ctx context.Context, req *models.CreatePackageRequest) (*models.PackageResponse, error)
	GetByID(ctx context.Context, id int64) (*models.PackageResponse, error)
	List(ctx context.Context, req *models.ListPackagesRequest) (*models.PackageListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdatePackageRequest) (*models.PackageResponse, error)
	Deactivate(ctx context.Context, id int64) error
	Quote(ctx context.Context, id int64, req *models.QuoteRequest) (*models.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
