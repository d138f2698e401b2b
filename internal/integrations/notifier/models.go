package notifier

import "time"

// CodeMessage запрос на доставку одноразового кода
type CodeMessage struct {
	Method  string `json:"method"`  // sms | email | telegram
	Contact string `json:"contact"` // телефон, email или chat_id
	Code    string `json:"code"`
}

// AppointmentMessage уведомление о созданной записи
type AppointmentMessage struct {
	AppointmentID int64     `json:"appointmentId"`
	MasterID      int64     `json:"masterId"`
	ServiceName   string    `json:"serviceName"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	ClientName    string    `json:"clientName,omitempty"`
	ClientPhone   string    `json:"clientPhone,omitempty"`
	ClientEmail   string    `json:"clientEmail,omitempty"`
}
