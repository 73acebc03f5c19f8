package staff

import (
	"context"

	reviewModels "github.com/m04kA/SMC-BackofficeService/internal/service/reviews/models"
	"github.com/m04kA/SMC-BackofficeService/internal/service/staff/models"
)

type StaffService interface {
	Create(ctx context.Context, req *models.CreateStaffRequest) (*models.StaffResponse, error)
	GetByID(ctx context.Context, id int64) (*models.StaffResponse, error)
	List(ctx context.Context, req *models.ListStaffRequest) (*models.StaffListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateStaffRequest) (*models.StaffResponse, error)
	Deactivate(ctx context.Context, id int64) error
	GetBookings(ctx context.Context, staffID int64, req *models.StaffBookingsRequest) (*models.StaffBookingsResponse, error)
	GetStats(ctx context.Context, staffID int64, req *models.StaffBookingsRequest) (*models.StaffStatsResponse, error)
}

type ReviewService interface {
	ListByStaff(ctx context.Context, staffID int64) (*reviewModels.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
