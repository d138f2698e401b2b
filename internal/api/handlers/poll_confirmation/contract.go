package poll_confirmation

import (
	"context"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/service/verification"
)

type VerificationService interface {
	Poll(ctx context.Context, method domain.VerifyMethod, contact, draftID string) (verification.PollStatus, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
