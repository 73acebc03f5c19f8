package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	customerRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-BackofficeService/internal/service/customers/models"
)

// Service сервис для работы с клиентами
type Service struct {
	customerRepo CustomerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(customerRepo CustomerRepository, logger Logger) *Service {
	return &Service{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create создает нового клиента
func (s *Service) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("Create: creating customer name=%s", req.Name)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	customer := &domain.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	}

	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created customer id=%d", created.ID)
	return models.FromDomainCustomer(created), nil
}

// GetByID получает клиента по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.CustomerResponse, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetByID: customer id=%d not found", id)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetByID: repository error for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCustomer(customer), nil
}

// List получает клиентов с поиском по имени или префиксу телефона
func (s *Service) List(ctx context.Context, req *models.ListCustomersRequest) (*models.CustomerListResponse, error) {
	customers, err := s.customerRepo.List(ctx, domain.CustomerFilter{Search: req.Search})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d customers", len(customers))
	return models.FromDomainCustomerList(customers), nil
}

// Update обновляет данные клиента
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("Update: updating customer id=%d", id)

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Update: customer id=%d not found", id)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("Update: repository error for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = req.Email
	}
	if req.Phone != nil {
		if *req.Phone == "" {
			return nil, fmt.Errorf("%w: phone cannot be empty", ErrInvalidInput)
		}
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = req.Address
	}
	if req.Notes != nil {
		customer.Notes = req.Notes
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("Update: repository error for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated customer id=%d", id)
	return models.FromDomainCustomer(customer), nil
}

// Delete удаляет клиента. Клиент с бронированиями не удаляется:
// история бронирований должна сохраняться.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting customer id=%d", id)

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Delete: customer id=%d not found", id)
			return ErrCustomerNotFound
		}
		if errors.Is(err, customerRepo.ErrCustomerHasBookings) {
			s.logger.Warn("Delete: customer id=%d has bookings", id)
			return ErrCustomerHasBookings
		}
		s.logger.Error("Delete: repository error for customer id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted customer id=%d", id)
	return nil
}
