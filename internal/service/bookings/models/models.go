package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на получение бронирований с фильтрацией
type ListBookingsRequest struct {
	CustomerID      *int64  `json:"customerId,omitempty"`      // Фильтр по клиенту (опционально)
	StaffID         *int64  `json:"staffId,omitempty"`         // Фильтр по исполнителю (опционально)
	TeamID          *int64  `json:"teamId,omitempty"`          // Фильтр по команде (опционально)
	StartDate       *string `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *string `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool    `json:"includeInactive,omitempty"` // Включить отменённые и no-show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CustomerID:      r.CustomerID,
		StaffID:         r.StaffID,
		TeamID:          r.TeamID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.StartDate != nil {
		start, err := time.Parse(domain.DateFormat, *r.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &start
	}
	if r.EndDate != nil {
		end, err := time.Parse(domain.DateFormat, *r.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &end
	}
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateBookingRequest запрос на обновление бронирования.
// Все поля опциональны, обновляются только переданные.
type UpdateBookingRequest struct {
	ServiceDate     *string  `json:"serviceDate,omitempty"`
	StartTime       *string  `json:"startTime,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	StaffID         *int64   `json:"staffId,omitempty"`
	TeamID          *int64   `json:"teamId,omitempty"`
	ClearAssignment bool     `json:"clearAssignment,omitempty"` // Снять назначение исполнителя
	Price           *float64 `json:"price,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BulkActionRequest запрос на массовое действие над бронированиями
type BulkActionRequest struct {
	BookingIDs []int64 `json:"bookingIds"`
	Action     string  `json:"action"`           // "cancel" или "set_status"
	Status     *string `json:"status,omitempty"` // Целевой статус для set_status
	Reason     *string `json:"reason,omitempty"` // Причина для cancel
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customerId"`
	PackageID  int64  `json:"packageId"`
	StaffID    *int64 `json:"staffId,omitempty"`
	TeamID     *int64 `json:"teamId,omitempty"`

	ServiceDate     string `json:"serviceDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	Price      float64 `json:"price"`
	PriceMode  string  `json:"priceMode"`
	CustomName *string `json:"customName,omitempty"`

	// Денормализованные данные
	CustomerName string  `json:"customerName"`
	PackageName  string  `json:"packageName"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// UpdateBookingResponse ответ на обновление с предупреждениями о пересечениях
type UpdateBookingResponse struct {
	Booking  *BookingResponse `json:"booking"`
	Warnings []string         `json:"warnings,omitempty"`
}

// BulkItemResult результат массового действия для одного бронирования
type BulkItemResult struct {
	BookingID int64   `json:"bookingId"`
	Success   bool    `json:"success"`
	Error     *string `json:"error,omitempty"`
}

// BulkActionResponse ответ на массовое действие с результатами по каждому ID
type BulkActionResponse struct {
	Results   []BulkItemResult `json:"results"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		PackageID:          b.PackageID,
		StaffID:            b.StaffID,
		TeamID:             b.TeamID,
		ServiceDate:        b.ServiceDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		Price:              b.Price,
		PriceMode:          string(b.PriceMode),
		CustomName:         b.CustomName,
		CustomerName:       b.CustomerName,
		PackageName:        b.PackageName,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	for _, valid := range domain.ValidStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// ToDomainTimeString конвертирует строку "HH:MM" в types.TimeString с валидацией
func ToDomainTimeString(value string) (types.TimeString, error) {
	return types.NewTimeStringFromString(value)
}
