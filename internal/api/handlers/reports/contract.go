package reports

import (
	"context"
	"io"

	"github.com/m04kA/SMC-BackofficeService/internal/service/reports/models"
)

type ReportService interface {
	Dashboard(ctx context.Context, req *models.PeriodRequest) (*models.DashboardResponse, error)
	RevenueReport(ctx context.Context, req *models.RevenueReportRequest) (*models.RevenueReportResponse, error)
	TopPackages(ctx context.Context, req *models.TopPackagesRequest) ([]models.PackageStatResponse, error)
	ExportBookingsCSV(ctx context.Context, req *models.PeriodRequest, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
