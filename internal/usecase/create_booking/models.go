package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64            // ID клиента
	PackageID  int64            // ID пакета услуг
	StaffID    *int64           // Назначенный сотрудник (опционально)
	TeamID     *int64           // Назначенная команда (опционально)
	Date       time.Time        // Дата оказания услуги (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")

	DurationMinutes *int // Длительность (опционально, по умолчанию из пакета)

	PriceMode  string   // "package", "override" или "custom"
	Price      *float64 // Цена для режимов override и custom
	CustomName *string  // Название услуги для режима custom

	Area      *float64 // Площадь для расчёта по тарифам V2 (опционально)
	Frequency *string  // Частота для расчёта по тарифам V2 (опционально)

	Notes *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64            // ID созданного бронирования
	CustomerID int64            // ID клиента
	PackageID  int64            // ID пакета услуг
	StaffID    *int64           // Назначенный сотрудник
	TeamID     *int64           // Назначенная команда
	Date       time.Time        // Дата оказания услуги
	StartTime  types.TimeString // Время начала

	DurationMinutes int     // Длительность в минутах
	Status          string  // Статус бронирования
	Price           float64 // Итоговая цена
	PriceMode       string  // Режим ценообразования
	CustomName      *string // Название услуги для custom режима

	// Денормализованные данные
	CustomerName string  // Имя клиента
	PackageName  string  // Название пакета
	Notes        *string // Заметки

	// Warnings предупреждения о пересечениях с другими бронированиями
	// того же исполнителя. Пересечения не блокируют создание.
	Warnings []string

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
