package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

// WizardStep is one step of the guided booking flow
type WizardStep string

const (
	StepCustomer   WizardStep = "customer"
	StepService    WizardStep = "service"
	StepAssignment WizardStep = "assignment"
	StepConfirm    WizardStep = "confirm"
)

// wizardStepOrder forward order of the wizard steps
var wizardStepOrder = []WizardStep{
	StepCustomer,
	StepService,
	StepAssignment,
	StepConfirm,
}

var (
	// ErrStepIncomplete returned when advancing past a step that fails validation
	ErrStepIncomplete = errors.New("domain: wizard step is incomplete")

	// ErrNoNextStep returned when advancing past the last step
	ErrNoNextStep = errors.New("domain: already at the last wizard step")

	// ErrNoPrevStep returned when going back from the first step
	ErrNoPrevStep = errors.New("domain: already at the first wizard step")

	// ErrNotOnConfirmStep returned when submitting from any step but Confirm
	ErrNotOnConfirmStep = errors.New("domain: submit is only allowed on the confirm step")

	// ErrPricingChangeNeedsConfirm returned when switching pricing mode
	// over an already-set price without the confirm flag
	ErrPricingChangeNeedsConfirm = errors.New("domain: pricing mode change requires confirmation")

	// ErrInvalidPricing returned when the pricing data does not satisfy the mode
	ErrInvalidPricing = errors.New("domain: invalid pricing data")

	// ErrAmbiguousAssignment returned when both staff and team are set
	ErrAmbiguousAssignment = errors.New("domain: booking may be assigned to staff or team, not both")
)

// WizardDraft accumulates the booking fields entered across wizard steps
type WizardDraft struct {
	// Customer step
	CustomerID *int64

	// Service/Schedule step
	PackageID       *int64
	ServiceDate     *time.Time
	StartTime       types.TimeString
	DurationMinutes *int
	Area            *float64
	Frequency       *Frequency

	// Assignment step (optional: booking may stay unassigned)
	StaffID *int64
	TeamID  *int64

	// Pricing: mode is a three-way variant, price semantics depend on it
	PricingMode PriceMode
	Price       *float64
	CustomName  *string

	Notes *string
}

// WizardSession is a server-side wizard in progress
type WizardSession struct {
	ID        string
	CreatedBy int64
	Step      WizardStep
	Draft     WizardDraft

	CreatedAt time.Time
	UpdatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the session has passed its TTL
func (s *WizardSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// NewWizardDraft returns a draft with default pricing mode
func NewWizardDraft() WizardDraft {
	return WizardDraft{PricingMode: PriceModePackage}
}

// ValidateStep checks that the data required by the given step is present
// and well-formed. Existence checks against the database are the caller's
// responsibility.
func (d *WizardDraft) ValidateStep(step WizardStep) error {
	switch step {
	case StepCustomer:
		if d.CustomerID == nil || *d.CustomerID <= 0 {
			return fmt.Errorf("%w: customer is required", ErrStepIncomplete)
		}

	case StepService:
		if d.PackageID == nil || *d.PackageID <= 0 {
			return fmt.Errorf("%w: service package is required", ErrStepIncomplete)
		}
		if d.ServiceDate == nil || d.ServiceDate.IsZero() {
			return fmt.Errorf("%w: service date is required", ErrStepIncomplete)
		}
		if d.StartTime.IsZero() {
			return fmt.Errorf("%w: start time is required", ErrStepIncomplete)
		}
		if err := d.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrStepIncomplete, err)
		}
		if d.DurationMinutes != nil &&
			(*d.DurationMinutes < MinDurationMinutes || *d.DurationMinutes > MaxDurationMinutes) {
			return fmt.Errorf("%w: duration out of range", ErrStepIncomplete)
		}

	case StepAssignment:
		if d.StaffID != nil && d.TeamID != nil {
			return ErrAmbiguousAssignment
		}

	case StepConfirm:
		if err := d.ValidatePricing(); err != nil {
			return err
		}
	}

	return nil
}

// ValidateAll runs every step's validation; used as the final gate
// before submission.
func (d *WizardDraft) ValidateAll() error {
	for _, step := range wizardStepOrder {
		if err := d.ValidateStep(step); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePricing checks the pricing data against the selected mode
func (d *WizardDraft) ValidatePricing() error {
	switch d.PricingMode {
	case PriceModePackage:
		// Price comes from the package quote at submit time
		return nil
	case PriceModeOverride:
		if d.Price == nil || *d.Price <= 0 {
			return fmt.Errorf("%w: override price must be positive", ErrInvalidPricing)
		}
		return nil
	case PriceModeCustom:
		if d.Price == nil || *d.Price <= 0 {
			return fmt.Errorf("%w: custom price must be positive", ErrInvalidPricing)
		}
		if d.CustomName == nil || *d.CustomName == "" {
			return fmt.Errorf("%w: custom service requires a label", ErrInvalidPricing)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown pricing mode %q", ErrInvalidPricing, d.PricingMode)
	}
}

// ChangePricingMode switches the draft to a new pricing mode.
// Once a price has been entered, switching modes discards it, so the
// transition is gated on an explicit confirm flag.
func (d *WizardDraft) ChangePricingMode(mode PriceMode, confirm bool) error {
	valid := false
	for _, m := range ValidPriceModes {
		if m == mode {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: unknown pricing mode %q", ErrInvalidPricing, mode)
	}

	if mode == d.PricingMode {
		return nil
	}

	if d.Price != nil && !confirm {
		return ErrPricingChangeNeedsConfirm
	}

	d.PricingMode = mode
	d.Price = nil
	if mode != PriceModeCustom {
		d.CustomName = nil
	}

	return nil
}

// NextStep advances the session one step forward after validating the
// current step.
func (s *WizardSession) NextStep() error {
	if err := s.Draft.ValidateStep(s.Step); err != nil {
		return err
	}

	idx := stepIndex(s.Step)
	if idx < 0 || idx == len(wizardStepOrder)-1 {
		return ErrNoNextStep
	}

	s.Step = wizardStepOrder[idx+1]
	return nil
}

// PrevStep moves the session one step back. Entered data is kept.
func (s *WizardSession) PrevStep() error {
	idx := stepIndex(s.Step)
	if idx <= 0 {
		return ErrNoPrevStep
	}

	s.Step = wizardStepOrder[idx-1]
	return nil
}

// CanSubmit checks the full-state validation gate: the session must be on
// the confirm step and every step must revalidate.
func (s *WizardSession) CanSubmit() error {
	if s.Step != StepConfirm {
		return ErrNotOnConfirmStep
	}
	return s.Draft.ValidateAll()
}

func stepIndex(step WizardStep) int {
	for i, st := range wizardStepOrder {
		if st == step {
			return i
		}
	}
	return -1
}
