package check_availability

import (
	"time"

	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

// Request модель запроса проверки занятости исполнителя
type Request struct {
	StaffID *int64 // Сотрудник (опционально)
	TeamID  *int64 // Команда (опционально)

	Date            time.Time        // Дата оказания услуги
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
}

// Conflict описание пересечения с существующим бронированием
type Conflict struct {
	BookingID    int64  `json:"booking_id"`
	CustomerName string `json:"customer_name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Status       string `json:"status"`
}

// Response результат проверки. Пересечения носят справочный характер
// и не запрещают создание бронирования.
type Response struct {
	Available bool       `json:"available"`
	Conflicts []Conflict `json:"conflicts"`
}
