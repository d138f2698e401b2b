package confirm_code

import (
	"context"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
)

type VerificationService interface {
	ConfirmOutOfBand(ctx context.Context, method domain.VerifyMethod, contact, draftID, externalActorID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
