package wizard

import (
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	bookingWizard "github.com/m04kA/SMC-BackofficeService/internal/usecase/booking_wizard"
	createBooking "github.com/m04kA/SMC-BackofficeService/internal/usecase/create_booking"
)

// ApplyStepRequest данные текущего шага мастера
type ApplyStepRequest struct {
	CustomerID      *int64   `json:"customerId,omitempty"`
	PackageID       *int64   `json:"packageId,omitempty"`
	ServiceDate     *string  `json:"serviceDate,omitempty"` // "2025-10-15"
	StartTime       *string  `json:"startTime,omitempty"`   // "10:00"
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Area            *float64 `json:"area,omitempty"`
	Frequency       *string  `json:"frequency,omitempty"`
	StaffID         *int64   `json:"staffId,omitempty"`
	TeamID          *int64   `json:"teamId,omitempty"`
	ClearAssignment bool     `json:"clearAssignment,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	CustomName      *string  `json:"customName,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// ToStepData конвертирует HTTP запрос в модель use case
func (r *ApplyStepRequest) ToStepData() *bookingWizard.StepData {
	return &bookingWizard.StepData{
		CustomerID:      r.CustomerID,
		PackageID:       r.PackageID,
		Date:            r.ServiceDate,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		Area:            r.Area,
		Frequency:       r.Frequency,
		StaffID:         r.StaffID,
		TeamID:          r.TeamID,
		ClearAssignment: r.ClearAssignment,
		Price:           r.Price,
		CustomName:      r.CustomName,
		Notes:           r.Notes,
	}
}

// ChangePricingModeRequest запрос на смену режима ценообразования
type ChangePricingModeRequest struct {
	Mode    string `json:"mode"` // "package", "override" или "custom"
	Confirm bool   `json:"confirm,omitempty"`
}

// SubmitResponse HTTP response с созданным бронированием
type SubmitResponse struct {
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

// FromUseCaseResponse конвертирует созданное бронирование в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *SubmitResponse {
	return &SubmitResponse{
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
