package bookings

import (
	"context"

	"github.com/m04kA/SMC-BackofficeService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-BackofficeService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type BookingService interface {
	GetByID(ctx context.Context, id int64) (*models.BookingResponse, error)
	List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.UpdateBookingResponse, error)
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error
	Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) error
	BulkAction(ctx context.Context, req *models.BulkActionRequest) (*models.BulkActionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
