package mailservice

import "time"

// AppointmentDetails данные бронирования для письма-подтверждения
type AppointmentDetails struct {
	CustomerName  string
	CustomerEmail string
	ServiceName   string
	Date          time.Time
	Start         time.Time
	End           time.Time
}

// sendRequest тело запроса к почтовому сервису
type sendRequest struct {
	To          string        `json:"to"`
	Subject     string        `json:"subject"`
	Body        string        `json:"body"`
	HTML        bool          `json:"html,omitempty"`
	Attachments []attachment  `json:"attachments,omitempty"`
}

// attachment вложение письма (base64 в JSON)
type attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

// ErrorResponse модель ошибки от почтового сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
