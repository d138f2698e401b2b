package verify_code

import (
	"context"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
	"github.com/aknyshev/salon-booking-engine/internal/service/verification"
)

type VerificationService interface {
	VerifyCode(ctx context.Context, method domain.VerifyMethod, contact, draftID, code string) (verification.VerifyResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
