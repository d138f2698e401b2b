package confirm_code

// ConfirmCodeRequest HTTP request model.
// Запрос приходит не от клиента, а от внешнего канала подтверждения
// (например, callback телеграм-бота)
type ConfirmCodeRequest struct {
	Method          string `json:"method"`
	Contact         string `json:"contact"`
	ExternalActorID string `json:"externalActorId,omitempty"`
}

// ConfirmCodeResponse HTTP response model
type ConfirmCodeResponse struct {
	Status string `json:"status"`
}
