package wizardstore

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия мастера не найдена или истекла
	ErrSessionNotFound = errors.New("wizardstore: session not found")
)
