package domain

import (
	"time"

	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// PriceMode describes how the booking price was determined
type PriceMode string

const (
	// PriceModePackage price taken from the service package (or its tier quote)
	PriceModePackage PriceMode = "package"
	// PriceModeOverride package selected, but the price was manually overridden
	PriceModeOverride PriceMode = "override"
	// PriceModeCustom ad-hoc service with a custom label and price
	PriceModeCustom PriceMode = "custom"
)

// Booking represents a scheduled service appointment
type Booking struct {
	ID         int64
	CustomerID int64
	PackageID  int64

	// Assignment: at most one of StaffID / TeamID is set
	StaffID *int64
	TeamID  *int64

	ServiceDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	Price      float64
	PriceMode  PriceMode
	CustomName *string // label for PriceModeCustom bookings

	// Denormalized data for history
	CustomerName string
	PackageName  string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking counts against availability
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking fields can still be edited
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// IsAssigned returns true if the booking has a staff or team assignment
func (b *Booking) IsAssigned() bool {
	return b.StaffID != nil || b.TeamID != nil
}

// EndTime returns the end of the booking's time window
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// statusTransitions allowed status transitions
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// CanTransitionTo reports whether the booking status may change to target
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range statusTransitions[b.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Overlaps reports whether the booking's time window overlaps the given
// window on the same date. Boundary-touching windows do not overlap.
func (b *Booking) Overlaps(date time.Time, start types.TimeString, durationMinutes int) bool {
	if !sameDay(b.ServiceDate, date) {
		return false
	}

	windowEnd, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	bookingEnd, err := b.EndTime()
	if err != nil {
		return false
	}

	return b.StartTime.IsBefore(windowEnd) && bookingEnd.IsAfter(start)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	CustomerID      *int64         // Фильтр по клиенту (опционально)
	StaffID         *int64         // Фильтр по исполнителю (опционально)
	TeamID          *int64         // Фильтр по команде (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show
}
