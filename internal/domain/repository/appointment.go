package repository

import (
	"context"
	"nailstudio/internal/domain/constant"
	"nailstudio/internal/domain/entity"
)

// AppointmentUpdate carries the fields an admin edit may change. Nil fields are left untouched.
type AppointmentUpdate struct {
	Date     *string
	TimeSlot *string
	Status   *constant.AppointmentStatus
}

// AppointmentRepository defines the interface for appointment data operations.
type AppointmentRepository interface {
	// FindByID retrieves an appointment by its ID.
	FindByID(ctx context.Context, id string) (*entity.Appointment, error)
	// FindAll retrieves all appointments ordered by date and time slot.
	FindAll(ctx context.Context) ([]*entity.Appointment, error)
	// Create inserts a new appointment and returns its ID.
	Create(ctx context.Context, appointment *entity.Appointment) (string, error)
	// Update applies the non-nil fields of upd to the appointment.
	Update(ctx context.Context, id string, upd AppointmentUpdate) error
	// UpdateStatus sets only the status column.
	UpdateStatus(ctx context.Context, id string, status constant.AppointmentStatus) error
	// Delete deletes an appointment by its ID.
	Delete(ctx context.Context, id string) error
}
