package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
)

var (
	// ErrInvalidRole возвращается при некорректной роли сотрудника
	ErrInvalidRole = errors.New("invalid staff role")
)

// Request модели

// CreateStaffRequest запрос на создание сотрудника
type CreateStaffRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// UpdateStaffRequest запрос на обновление сотрудника.
// Все поля опциональны, обновляются только переданные.
type UpdateStaffRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Role  *string `json:"role,omitempty"`
}

// ListStaffRequest запрос на получение сотрудников
type ListStaffRequest struct {
	Role       *string `json:"role,omitempty"`       // Фильтр по роли (опционально)
	ActiveOnly bool    `json:"activeOnly,omitempty"` // Только активные сотрудники
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListStaffRequest) ToDomainFilter() (domain.StaffFilter, error) {
	filter := domain.StaffFilter{ActiveOnly: r.ActiveOnly}

	if r.Role != nil {
		role, err := ToDomainStaffRole(*r.Role)
		if err != nil {
			return filter, err
		}
		filter.Role = &role
	}

	return filter, nil
}

// StaffBookingsRequest запрос на получение бронирований сотрудника
type StaffBookingsRequest struct {
	StartDate       *string `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate         *string `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status          *string `json:"status,omitempty"`    // Фильтр по статусу (опционально)
	IncludeInactive bool    `json:"includeInactive,omitempty"`
}

// Response модели

// StaffResponse ответ с данными сотрудника
type StaffResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StaffListResponse ответ со списком сотрудников
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// StaffBookingResponse бронирование в списке сотрудника
type StaffBookingResponse struct {
	ID              int64   `json:"id"`
	CustomerName    string  `json:"customerName"`
	PackageName     string  `json:"packageName"`
	ServiceDate     string  `json:"serviceDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Price           float64 `json:"price"`
	TeamID          *int64  `json:"teamId,omitempty"` // Заполнено для командных бронирований
}

// StaffBookingsResponse ответ со списком бронирований сотрудника
type StaffBookingsResponse struct {
	Bookings []StaffBookingResponse `json:"bookings"`
}

// StaffStatsResponse статистика сотрудника за период
type StaffStatsResponse struct {
	StaffID           int64   `json:"staffId"`
	TotalBookings     int     `json:"totalBookings"`
	CompletedBookings int     `json:"completedBookings"`
	Revenue           float64 `json:"revenue"` // Доля сотрудника с учётом командных долей
	AverageRating     float64 `json:"averageRating"`
	ReviewCount       int     `json:"reviewCount"`
}

// Методы конвертации

// FromDomainStaff конвертирует domain модель в DTO
func FromDomainStaff(s *domain.Staff) *StaffResponse {
	if s == nil {
		return nil
	}

	return &StaffResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Role:      string(s.Role),
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainStaffList конвертирует список domain моделей в DTO
func FromDomainStaffList(staff []*domain.Staff) *StaffListResponse {
	resp := &StaffListResponse{
		Staff: make([]StaffResponse, 0, len(staff)),
	}

	for _, member := range staff {
		if memberResp := FromDomainStaff(member); memberResp != nil {
			resp.Staff = append(resp.Staff, *memberResp)
		}
	}

	return resp
}

// FromDomainStaffBooking конвертирует бронирование в строку списка сотрудника
func FromDomainStaffBooking(b *domain.Booking) StaffBookingResponse {
	return StaffBookingResponse{
		ID:              b.ID,
		CustomerName:    b.CustomerName,
		PackageName:     b.PackageName,
		ServiceDate:     b.ServiceDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Price:           b.Price,
		TeamID:          b.TeamID,
	}
}

// ToDomainStaffRole конвертирует строку в domain.StaffRole с валидацией
func ToDomainStaffRole(role string) (domain.StaffRole, error) {
	r := domain.StaffRole(role)

	for _, valid := range domain.ValidStaffRoles {
		if r == valid {
			return r, nil
		}
	}

	return "", ErrInvalidRole
}
