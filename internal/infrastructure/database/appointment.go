package database

import (
	"context"
	"errors"
	"fmt"
	"nailstudio/internal/domain/constant"
	"nailstudio/internal/domain/entity"
	"nailstudio/internal/domain/repository"
	appErrors "nailstudio/internal/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new instance of AppointmentRepository.
func NewAppointmentRepository(db *gorm.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

// FindByID retrieves an appointment by its ID.
func (r *appointmentRepository) FindByID(ctx context.Context, id string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrAppointmentNotFound, id)
		}
		return nil, fmt.Errorf("%w: find appointment %s: %v", appErrors.ErrDatabaseOperation, id, err)
	}
	return &appointment, nil
}

// FindAll retrieves all appointments ordered by date and time slot.
func (r *appointmentRepository) FindAll(ctx context.Context) ([]*entity.Appointment, error) {
	var appointments []*entity.Appointment
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timeSlot"}}).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list appointments: %v", appErrors.ErrDatabaseOperation, err)
	}
	return appointments, nil
}

// Create inserts a new appointment and returns its ID.
func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) (string, error) {
	if err := r.db.WithContext(ctx).Create(appointment).Error; err != nil {
		return "", fmt.Errorf("%w: create appointment for %s: %v", appErrors.ErrDatabaseOperation, appointment.Name, err)
	}
	return appointment.ID, nil
}

// Update applies the non-nil fields of upd. Other columns are never written.
func (r *appointmentRepository) Update(ctx context.Context, id string, upd repository.AppointmentUpdate) error {
	fields := map[string]interface{}{}
	if upd.Date != nil {
		fields["date"] = *upd.Date
	}
	if upd.TimeSlot != nil {
		fields["timeSlot"] = *upd.TimeSlot
	}
	if upd.Status != nil {
		fields["status"] = string(*upd.Status)
	}
	if len(fields) == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}
	return r.updateColumns(ctx, id, fields)
}

// UpdateStatus sets only the status column.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status constant.AppointmentStatus) error {
	return r.updateColumns(ctx, id, map[string]interface{}{"status": string(status)})
}

func (r *appointmentRepository) updateColumns(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&entity.Appointment{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("%w: update appointment %s: %v", appErrors.ErrDatabaseOperation, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", appErrors.ErrAppointmentNotFound, id)
	}
	return nil
}

// Delete deletes an appointment by its ID.
func (r *appointmentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{})
	if res.Error != nil {
		return fmt.Errorf("%w: delete appointment %s: %v", appErrors.ErrDatabaseOperation, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", appErrors.ErrAppointmentNotFound, id)
	}
	return nil
}
