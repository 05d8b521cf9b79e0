package service

import (
	"context"
	"nailstudio/internal/application/dto"
)

// AppointmentService defines the interface for appointment-related business logic.
type AppointmentService interface {
	// Create stores a reservation. The status is always PENDING regardless of input.
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	// List retrieves every appointment ordered by date and time slot.
	List(ctx context.Context) ([]dto.AppointmentResponse, error)
	// Get retrieves an appointment by its ID.
	Get(ctx context.Context, id string) (*dto.AppointmentResponse, error)
	// Update applies an admin edit of date, time slot or status.
	Update(ctx context.Context, id string, req dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	// Delete removes an appointment.
	Delete(ctx context.Context, id string) error
	// ConfirmationMessage returns the text a confirmation push would carry.
	ConfirmationMessage(ctx context.Context, id string) (string, error)
	// Catalog lists services, styles, time slots and statuses.
	Catalog() dto.CatalogResponse
}
