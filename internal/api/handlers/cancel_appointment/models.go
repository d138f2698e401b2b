package cancel_appointment

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	Status string `json:"status"`
}
