package poll_confirmation

// PollConfirmationResponse HTTP response model
type PollConfirmationResponse struct {
	Status string `json:"status"` // confirmed | pending | expired
}
