package bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	"github.com/m04kA/SMC-BackofficeService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-BackofficeService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerID      int64    `json:"customerId"`
	PackageID       int64    `json:"packageId"`
	StaffID         *int64   `json:"staffId,omitempty"`
	TeamID          *int64   `json:"teamId,omitempty"`
	ServiceDate     string   `json:"serviceDate"` // "2025-10-15"
	StartTime       string   `json:"startTime"`   // "10:00"
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	PriceMode       string   `json:"priceMode"` // "package", "override" или "custom"
	Price           *float64 `json:"price,omitempty"`
	CustomName      *string  `json:"customName,omitempty"`
	Area            *float64 `json:"area,omitempty"`
	Frequency       *string  `json:"frequency,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID              int64    `json:"id"`
	CustomerID      int64    `json:"customerId"`
	PackageID       int64    `json:"packageId"`
	StaffID         *int64   `json:"staffId,omitempty"`
	TeamID          *int64   `json:"teamId,omitempty"`
	ServiceDate     string   `json:"serviceDate"`
	StartTime       string   `json:"startTime"`
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	Price           float64  `json:"price"`
	PriceMode       string   `json:"priceMode"`
	CustomName      *string  `json:"customName,omitempty"`
	CustomerName    string   `json:"customerName"`
	PackageName     string   `json:"packageName"`
	Notes           *string  `json:"notes,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	serviceDate, err := time.Parse(domain.DateFormat, r.ServiceDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:      r.CustomerID,
		PackageID:       r.PackageID,
		StaffID:         r.StaffID,
		TeamID:          r.TeamID,
		Date:            serviceDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		PriceMode:       r.PriceMode,
		Price:           r.Price,
		CustomName:      r.CustomName,
		Area:            r.Area,
		Frequency:       r.Frequency,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		PackageID:       resp.PackageID,
		StaffID:         resp.StaffID,
		TeamID:          resp.TeamID,
		ServiceDate:     resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Price:           resp.Price,
		PriceMode:       resp.PriceMode,
		CustomName:      resp.CustomName,
		CustomerName:    resp.CustomerName,
		PackageName:     resp.PackageName,
		Notes:           resp.Notes,
		Warnings:        resp.Warnings,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

// listRequestFromQuery собирает фильтр списка из query-параметров
func listRequestFromQuery(r *http.Request) (*models.ListBookingsRequest, error) {
	query := r.URL.Query()
	req := &models.ListBookingsRequest{}

	var err error
	if req.CustomerID, err = queryInt64(query.Get("customerId")); err != nil {
		return nil, err
	}
	if req.StaffID, err = queryInt64(query.Get("staffId")); err != nil {
		return nil, err
	}
	if req.TeamID, err = queryInt64(query.Get("teamId")); err != nil {
		return nil, err
	}

	req.StartDate = queryString(query.Get("startDate"))
	req.EndDate = queryString(query.Get("endDate"))
	req.Status = queryString(query.Get("status"))
	req.IncludeInactive = query.Get("includeInactive") == "true"

	return req, nil
}

func queryInt64(value string) (*int64, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func queryString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
