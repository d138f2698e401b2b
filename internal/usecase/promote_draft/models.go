package promote_draft

// Request модель запроса на промоушен черновика в запись
type Request struct {
	DraftID string
}

// Response модель ответа с созданной (или ранее созданной) записью
type Response struct {
	AppointmentID int64
	// AlreadyExisted true, если черновик был промоушен раньше и запрос
	// идемпотентно вернул существующую запись
	AlreadyExisted bool
}
