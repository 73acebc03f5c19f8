package booking_wizard

import (
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	"github.com/m04kA/SMC-BackofficeService/internal/usecase/create_booking"
)

// StepData данные шага мастера. Usecase применяет только поля,
// относящиеся к текущему шагу сессии, остальные игнорируются.
type StepData struct {
	// Шаг выбора клиента
	CustomerID *int64

	// Шаг выбора услуги и расписания
	PackageID       *int64
	Date            *string // Формат "2006-01-02"
	StartTime       *string // Формат "HH:MM"
	DurationMinutes *int
	Area            *float64
	Frequency       *string

	// Шаг назначения исполнителя
	StaffID         *int64
	TeamID          *int64
	ClearAssignment bool

	// Шаг подтверждения
	Price      *float64
	CustomName *string
	Notes      *string
}

// DraftResponse накопленный черновик бронирования
type DraftResponse struct {
	CustomerID      *int64   `json:"customerId,omitempty"`
	PackageID       *int64   `json:"packageId,omitempty"`
	Date            *string  `json:"serviceDate,omitempty"`
	StartTime       *string  `json:"startTime,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Area            *float64 `json:"area,omitempty"`
	Frequency       *string  `json:"frequency,omitempty"`
	StaffID         *int64   `json:"staffId,omitempty"`
	TeamID          *int64   `json:"teamId,omitempty"`
	PricingMode     string   `json:"pricingMode"`
	Price           *float64 `json:"price,omitempty"`
	CustomName      *string  `json:"customName,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// SessionResponse состояние сессии мастера
type SessionResponse struct {
	SessionID string        `json:"sessionId"`
	Step      string        `json:"step"`
	Draft     DraftResponse `json:"draft"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

// SubmitResponse результат отправки мастера - созданное бронирование
type SubmitResponse struct {
	Booking *create_booking.Response
}

func toSessionResponse(session *domain.WizardSession) *SessionResponse {
	draft := session.Draft

	resp := &SessionResponse{
		SessionID: session.ID,
		Step:      string(session.Step),
		ExpiresAt: session.ExpiresAt,
		Draft: DraftResponse{
			CustomerID:      draft.CustomerID,
			PackageID:       draft.PackageID,
			DurationMinutes: draft.DurationMinutes,
			Area:            draft.Area,
			StaffID:         draft.StaffID,
			TeamID:          draft.TeamID,
			PricingMode:     string(draft.PricingMode),
			Price:           draft.Price,
			CustomName:      draft.CustomName,
			Notes:           draft.Notes,
		},
	}

	if draft.ServiceDate != nil {
		date := draft.ServiceDate.Format(domain.DateFormat)
		resp.Draft.Date = &date
	}
	if !draft.StartTime.IsZero() {
		startTime := draft.StartTime.String()
		resp.Draft.StartTime = &startTime
	}
	if draft.Frequency != nil {
		freq := string(*draft.Frequency)
		resp.Draft.Frequency = &freq
	}

	return resp
}
