package create_draft

import (
	"time"

	createDraft "github.com/aknyshev/salon-booking-engine/internal/usecase/create_draft"
)

// CreateDraftRequest HTTP request model
type CreateDraftRequest struct {
	Source    string    `json:"source"`
	ServiceID int64     `json:"serviceId"`
	MasterID  int64     `json:"masterId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`

	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`

	TelegramChatID *int64  `json:"telegramChatId,omitempty"`
	ExternalUserID *string `json:"externalUserId,omitempty"`
}

// CreateDraftResponse HTTP response model
type CreateDraftResponse struct {
	DraftID   string    `json:"draftId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateDraftRequest) ToUseCaseRequest() *createDraft.Request {
	return &createDraft.Request{
		Source:         r.Source,
		ServiceID:      r.ServiceID,
		MasterID:       r.MasterID,
		StartAt:        r.StartAt,
		EndAt:          r.EndAt,
		Name:           r.Name,
		Phone:          r.Phone,
		Email:          r.Email,
		TelegramChatID: r.TelegramChatID,
		ExternalUserID: r.ExternalUserID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createDraft.Response) *CreateDraftResponse {
	return &CreateDraftResponse{
		DraftID:   resp.DraftID,
		ExpiresAt: resp.ExpiresAt,
	}
}
