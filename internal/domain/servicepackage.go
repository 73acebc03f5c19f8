package domain

import (
	"errors"
	"time"
)

// PackageVersion distinguishes fixed-price (V1) and tiered (V2) packages
type PackageVersion string

const (
	PackageV1 PackageVersion = "v1" // fixed base price
	PackageV2 PackageVersion = "v2" // area/frequency pricing tiers
)

// ServiceType category of the offered service
type ServiceType string

const (
	ServiceCleaning ServiceType = "cleaning"
	ServiceTraining ServiceType = "training"
	ServiceOther    ServiceType = "other"
)

// ValidServiceTypes все допустимые типы услуг
var ValidServiceTypes = []ServiceType{
	ServiceCleaning,
	ServiceTraining,
	ServiceOther,
}

// Frequency of a recurring service, used by V2 tier matching
type Frequency string

const (
	FrequencyOnce     Frequency = "once"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// ValidFrequencies все допустимые частоты
var ValidFrequencies = []Frequency{
	FrequencyOnce,
	FrequencyWeekly,
	FrequencyBiweekly,
	FrequencyMonthly,
}

var (
	// ErrTierOverlap returned when V2 tiers overlap within one frequency
	ErrTierOverlap = errors.New("domain: price tiers overlap within frequency")

	// ErrInvalidTierRange returned when a tier's area range is malformed
	ErrInvalidTierRange = errors.New("domain: invalid price tier area range")
)

// PriceTier is one V2 pricing rule: a half-open area range [AreaMin, AreaMax)
// for a given frequency.
type PriceTier struct {
	ID        int64
	PackageID int64
	AreaMin   float64
	AreaMax   float64
	Frequency Frequency
	Price     float64
}

// Matches reports whether the tier applies to the given area and frequency
func (t PriceTier) Matches(area float64, freq Frequency) bool {
	return t.Frequency == freq && area >= t.AreaMin && area < t.AreaMax
}

// ServicePackage represents a priced service offering
type ServicePackage struct {
	ID              int64
	Name            string
	Description     *string
	ServiceType     ServiceType
	Version         PackageVersion
	BasePrice       float64
	DurationMinutes int
	IsActive        bool

	// Tiers is populated only for V2 packages
	Tiers []PriceTier

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTiered returns true for V2 packages
func (p *ServicePackage) IsTiered() bool {
	return p.Version == PackageV2
}

// Quote returns the price for the given area and frequency.
// V1 packages always return the base price. V2 packages return the price
// of the matching tier; when no tier matches (or area/frequency are not
// provided), the base price is the fallback.
func (p *ServicePackage) Quote(area *float64, freq *Frequency) (price float64, tier *PriceTier) {
	if !p.IsTiered() || area == nil || freq == nil {
		return p.BasePrice, nil
	}

	for i := range p.Tiers {
		if p.Tiers[i].Matches(*area, *freq) {
			return p.Tiers[i].Price, &p.Tiers[i]
		}
	}

	return p.BasePrice, nil
}

// ValidateTiers checks tier ranges: AreaMin < AreaMax, non-negative prices,
// and no overlapping ranges within the same frequency.
func ValidateTiers(tiers []PriceTier) error {
	for _, t := range tiers {
		if t.AreaMin < 0 || t.AreaMax <= t.AreaMin {
			return ErrInvalidTierRange
		}
		if t.Price < 0 {
			return ErrInvalidTierRange
		}
	}

	for i := 0; i < len(tiers); i++ {
		for j := i + 1; j < len(tiers); j++ {
			if tiers[i].Frequency != tiers[j].Frequency {
				continue
			}
			// Half-open intervals overlap iff each starts before the other ends
			if tiers[i].AreaMin < tiers[j].AreaMax && tiers[j].AreaMin < tiers[i].AreaMax {
				return ErrTierOverlap
			}
		}
	}

	return nil
}

// PackageFilter фильтр для выборки пакетов услуг
type PackageFilter struct {
	ServiceType *ServiceType    // Фильтр по типу услуги (опционально)
	Version     *PackageVersion // Фильтр по версии (опционально)
	ActiveOnly  bool            // Только активные пакеты
}
