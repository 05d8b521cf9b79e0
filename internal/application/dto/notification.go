package dto

// SendConfirmationRequest is the body of the send-confirmation endpoint.
type SendConfirmationRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required"`
}

// SuccessResponse is the success marker returned by the notification endpoint.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the JSON error envelope every endpoint uses.
type ErrorResponse struct {
	Error string `json:"error"`
}
