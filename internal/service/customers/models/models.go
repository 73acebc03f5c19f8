package models

import (
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
)

// Request модели

// CreateCustomerRequest запрос на создание клиента
type CreateCustomerRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   string  `json:"phone"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// UpdateCustomerRequest запрос на обновление клиента.
// Все поля опциональны, обновляются только переданные.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// ListCustomersRequest запрос на получение клиентов
type ListCustomersRequest struct {
	Search *string `json:"search,omitempty"` // Поиск по имени или префиксу телефона (опционально)
}

// Response модели

// CustomerResponse ответ с данными клиента
type CustomerResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   string  `json:"phone"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerListResponse ответ со списком клиентов
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

// Методы конвертации

// FromDomainCustomer конвертирует domain модель в DTO
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}

	return &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromDomainCustomerList конвертирует список domain моделей в DTO
func FromDomainCustomerList(customers []*domain.Customer) *CustomerListResponse {
	resp := &CustomerListResponse{
		Customers: make([]CustomerResponse, 0, len(customers)),
	}

	for _, customer := range customers {
		if customerResp := FromDomainCustomer(customer); customerResp != nil {
			resp.Customers = append(resp.Customers, *customerResp)
		}
	}

	return resp
}
