package issue_code

import (
	"context"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
)

type VerificationService interface {
	IssueCode(ctx context.Context, method domain.VerifyMethod, contact, draftID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
