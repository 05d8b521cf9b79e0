package dto

import (
	"nailstudio/internal/domain/constant"
	"nailstudio/internal/domain/entity"
	"time"
)

// AppointmentResponse is the DTO returned to the dashboard and the reservation form.
type AppointmentResponse struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	Phone       string                     `json:"phone"`
	ContactID   *string                    `json:"contactId"`
	Date        string                     `json:"date"`
	TimeSlot    string                     `json:"timeSlot"`
	Services    []string                   `json:"services"`
	Style       string                     `json:"style"`
	Status      constant.AppointmentStatus `json:"status"`
	StatusLabel string                     `json:"status_label"`
	UserID      *string                    `json:"user_id"`
	CreatedAt   time.Time                  `json:"created_at"`
}

// ToAppointmentResponse converts an entity.Appointment to an AppointmentResponse DTO.
func ToAppointmentResponse(a *entity.Appointment) AppointmentResponse {
	services := a.Services
	if services == nil {
		services = []string{}
	}
	status := a.GetStatus()
	return AppointmentResponse{
		ID:          a.ID,
		Name:        a.Name,
		Phone:       a.Phone,
		ContactID:   a.ContactID,
		Date:        a.Date,
		TimeSlot:    a.TimeSlot,
		Services:    services,
		Style:       a.Style,
		Status:      status,
		StatusLabel: status.Label(),
		UserID:      a.UserID,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAppointmentResponseList converts a slice of entity.Appointment to AppointmentResponse DTOs.
func ToAppointmentResponseList(appointments []*entity.Appointment) []AppointmentResponse {
	list := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		list[i] = ToAppointmentResponse(a)
	}
	return list
}

// CreateAppointmentRequest is the reservation form submission.
type CreateAppointmentRequest struct {
	Name      string   `json:"name" validate:"required,notblank"`
	Phone     string   `json:"phone" validate:"required,notblank"`
	ContactID string   `json:"contactId"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot  string   `json:"timeSlot" validate:"required,timeslot"`
	Services  []string `json:"services" validate:"required,min=1,dive,service"`
	Style     string   `json:"style" validate:"required,nailstyle"`
	UserID    string   `json:"user_id"`
}

// UpdateAppointmentRequest is an admin edit. Omitted fields are left unchanged.
// Status accepts the stored code or the dashboard label.
type UpdateAppointmentRequest struct {
	Date     *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TimeSlot *string `json:"timeSlot" validate:"omitempty,timeslot"`
	Status   *string `json:"status" validate:"omitempty,status"`
}

// ConfirmationPreviewResponse carries the text a confirmation would push.
type ConfirmationPreviewResponse struct {
	Message string `json:"message"`
}

// StatusOption is one entry of the status picker.
type StatusOption struct {
	Code  constant.AppointmentStatus `json:"code"`
	Label string                     `json:"label"`
}

// CatalogResponse lists what the reservation form and dashboard offer.
type CatalogResponse struct {
	Services  []string       `json:"services"`
	Styles    []string       `json:"styles"`
	TimeSlots []string       `json:"time_slots"`
	Statuses  []StatusOption `json:"statuses"`
}
