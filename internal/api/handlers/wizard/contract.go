package wizard

import (
	"context"

	bookingWizard "github.com/m04kA/SMC-BackofficeService/internal/usecase/booking_wizard"
)

type WizardUseCase interface {
	Start(ctx context.Context, createdBy int64) (*bookingWizard.SessionResponse, error)
	Get(ctx context.Context, sessionID string) (*bookingWizard.SessionResponse, error)
	ApplyStep(ctx context.Context, sessionID string, data *bookingWizard.StepData) (*bookingWizard.SessionResponse, error)
	Next(ctx context.Context, sessionID string) (*bookingWizard.SessionResponse, error)
	Back(ctx context.Context, sessionID string) (*bookingWizard.SessionResponse, error)
	ChangePricingMode(ctx context.Context, sessionID string, mode string, confirm bool) (*bookingWizard.SessionResponse, error)
	Submit(ctx context.Context, sessionID string) (*bookingWizard.SubmitResponse, error)
	Cancel(ctx context.Context, sessionID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
