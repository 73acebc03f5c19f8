package domain

import "time"

// Customer represents a client of the business
type Customer struct {
	ID      int64
	Name    string
	Email   *string
	Phone   string
	Address *string
	Notes   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerFilter фильтр для выборки клиентов
type CustomerFilter struct {
	Search *string // Поиск по префиксу имени или телефона (опционально)
}
