package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
)

var (
	// ErrInvalidServiceType возвращается при некорректном типе услуги
	ErrInvalidServiceType = errors.New("invalid service type")

	// ErrInvalidVersion возвращается при некорректной версии пакета
	ErrInvalidVersion = errors.New("invalid package version")

	// ErrInvalidFrequency возвращается при некорректной частоте
	ErrInvalidFrequency = errors.New("invalid frequency")
)

// Request модели

// TierPayload один тариф в запросе на создание или обновление пакета
type TierPayload struct {
	AreaMin   float64 `json:"areaMin"`
	AreaMax   float64 `json:"areaMax"`
	Frequency string  `json:"frequency"`
	Price     float64 `json:"price"`
}

// CreatePackageRequest запрос на создание пакета услуг
type CreatePackageRequest struct {
	Name            string        `json:"name"`
	Description     *string       `json:"description,omitempty"`
	ServiceType     string        `json:"serviceType"`
	Version         string        `json:"version"`
	BasePrice       float64       `json:"basePrice"`
	DurationMinutes int           `json:"durationMinutes"`
	Tiers           []TierPayload `json:"tiers,omitempty"` // Только для V2
}

// UpdatePackageRequest запрос на обновление пакета услуг.
// Tiers заменяет весь набор тарифов целиком.
type UpdatePackageRequest struct {
	Name            *string        `json:"name,omitempty"`
	Description     *string        `json:"description,omitempty"`
	BasePrice       *float64       `json:"basePrice,omitempty"`
	DurationMinutes *int           `json:"durationMinutes,omitempty"`
	Tiers           *[]TierPayload `json:"tiers,omitempty"`
}

// ListPackagesRequest запрос на получение пакетов
type ListPackagesRequest struct {
	ServiceType *string `json:"serviceType,omitempty"` // Фильтр по типу услуги (опционально)
	Version     *string `json:"version,omitempty"`     // Фильтр по версии (опционально)
	ActiveOnly  bool    `json:"activeOnly,omitempty"`
}

// QuoteRequest запрос на расчёт цены пакета
type QuoteRequest struct {
	Area      *float64 `json:"area,omitempty"`      // Площадь, кв.м (для V2)
	Frequency *string  `json:"frequency,omitempty"` // Частота (для V2)
}

// Response модели

// TierResponse один тариф пакета
type TierResponse struct {
	ID        int64   `json:"id"`
	AreaMin   float64 `json:"areaMin"`
	AreaMax   float64 `json:"areaMax"`
	Frequency string  `json:"frequency"`
	Price     float64 `json:"price"`
}

// PackageResponse ответ с данными пакета услуг
type PackageResponse struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Description     *string        `json:"description,omitempty"`
	ServiceType     string         `json:"serviceType"`
	Version         string         `json:"version"`
	BasePrice       float64        `json:"basePrice"`
	DurationMinutes int            `json:"durationMinutes"`
	IsActive        bool           `json:"isActive"`
	Tiers           []TierResponse `json:"tiers,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PackageListResponse ответ со списком пакетов
type PackageListResponse struct {
	Packages []PackageResponse `json:"packages"`
}

// QuoteResponse ответ с расчётом цены
type QuoteResponse struct {
	PackageID int64         `json:"packageId"`
	Price     float64       `json:"price"`
	Matched   bool          `json:"matched"` // Нашёлся ли подходящий тариф
	Tier      *TierResponse `json:"tier,omitempty"`
}

// Методы конвертации

// FromDomainPackage конвертирует domain модель в DTO
func FromDomainPackage(p *domain.ServicePackage) *PackageResponse {
	if p == nil {
		return nil
	}

	resp := &PackageResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		ServiceType:     string(p.ServiceType),
		Version:         string(p.Version),
		BasePrice:       p.BasePrice,
		DurationMinutes: p.DurationMinutes,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}

	for _, tier := range p.Tiers {
		resp.Tiers = append(resp.Tiers, FromDomainTier(tier))
	}

	return resp
}

// FromDomainPackageList конвертирует список domain моделей в DTO
func FromDomainPackageList(packages []*domain.ServicePackage) *PackageListResponse {
	resp := &PackageListResponse{
		Packages: make([]PackageResponse, 0, len(packages)),
	}

	for _, pkg := range packages {
		if pkgResp := FromDomainPackage(pkg); pkgResp != nil {
			resp.Packages = append(resp.Packages, *pkgResp)
		}
	}

	return resp
}

// FromDomainTier конвертирует тариф в DTO
func FromDomainTier(t domain.PriceTier) TierResponse {
	return TierResponse{
		ID:        t.ID,
		AreaMin:   t.AreaMin,
		AreaMax:   t.AreaMax,
		Frequency: string(t.Frequency),
		Price:     t.Price,
	}
}

// ToDomainTiers конвертирует тарифы запроса в domain модели
func ToDomainTiers(payloads []TierPayload) ([]domain.PriceTier, error) {
	tiers := make([]domain.PriceTier, 0, len(payloads))
	for _, p := range payloads {
		freq, err := ToDomainFrequency(p.Frequency)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, domain.PriceTier{
			AreaMin:   p.AreaMin,
			AreaMax:   p.AreaMax,
			Frequency: freq,
			Price:     p.Price,
		})
	}
	return tiers, nil
}

// ToDomainServiceType конвертирует строку в domain.ServiceType с валидацией
func ToDomainServiceType(value string) (domain.ServiceType, error) {
	t := domain.ServiceType(value)
	for _, valid := range domain.ValidServiceTypes {
		if t == valid {
			return t, nil
		}
	}
	return "", ErrInvalidServiceType
}

// ToDomainVersion конвертирует строку в domain.PackageVersion с валидацией
func ToDomainVersion(value string) (domain.PackageVersion, error) {
	v := domain.PackageVersion(value)
	if v == domain.PackageV1 || v == domain.PackageV2 {
		return v, nil
	}
	return "", ErrInvalidVersion
}

// ToDomainFrequency конвертирует строку в domain.Frequency с валидацией
func ToDomainFrequency(value string) (domain.Frequency, error) {
	f := domain.Frequency(value)
	for _, valid := range domain.ValidFrequencies {
		if f == valid {
			return f, nil
		}
	}
	return "", ErrInvalidFrequency
}
