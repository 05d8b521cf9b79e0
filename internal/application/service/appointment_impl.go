package service

import (
	"context"
	"fmt"
	"nailstudio/internal/application/dto"
	"nailstudio/internal/domain/constant"
	"nailstudio/internal/domain/entity"
	"nailstudio/internal/domain/repository"
	appErrors "nailstudio/internal/pkg/errors"
	"nailstudio/internal/pkg/logger"
	"nailstudio/internal/pkg/metrics"
	"strings"
)

// Validator checks request DTOs.
type Validator interface {
	Validate(i interface{}) error
}

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	validator       Validator
	metrics         metrics.Recorder
	log             logger.Logger
}

// NewAppointmentService creates a new instance of AppointmentService implementation.
func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	validator Validator,
	recorder metrics.Recorder,
	log logger.Logger,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		validator:       validator,
		metrics:         recorder,
		log:             log,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create stores a reservation with status PENDING.
func (s *appointmentService) Create(ctx context.Context, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		ContactID: optional(req.ContactID),
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Services:  req.Services,
		Style:     req.Style,
		Status:    constant.StatusPending,
		UserID:    optional(req.UserID),
	}
	id, err := s.appointmentRepo.Create(ctx, appointment)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to create appointment for %s on %s %s", req.Name, req.Date, req.TimeSlot), err)
		return nil, err
	}
	s.metrics.RecordAppointmentCreated()
	s.log.Info(fmt.Sprintf("Created appointment %s on %s %s", id, appointment.Date, appointment.TimeSlot))

	resp := dto.ToAppointmentResponse(appointment)
	return &resp, nil
}

// List retrieves every appointment.
func (s *appointmentService) List(ctx context.Context) ([]dto.AppointmentResponse, error) {
	appointments, err := s.appointmentRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list appointments", err)
		return nil, err
	}
	return dto.ToAppointmentResponseList(appointments), nil
}

// Get retrieves an appointment by its ID.
func (s *appointmentService) Get(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToAppointmentResponse(appointment)
	return &resp, nil
}

// Update applies an admin edit. A status change must be allowed by the transition table.
func (s *appointmentService) Update(ctx context.Context, id string, req dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	current, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	upd := repository.AppointmentUpdate{Date: req.Date, TimeSlot: req.TimeSlot}
	if req.Status != nil {
		next, err := constant.ParseStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", appErrors.ErrValidation, err)
		}
		if !current.GetStatus().CanTransition(next) {
			s.log.Warn(fmt.Sprintf("Rejected status change of appointment %s from %s to %s", id, current.GetStatus(), next))
			return nil, fmt.Errorf("%w: %s to %s", appErrors.ErrInvalidTransition, current.GetStatus(), next)
		}
		upd.Status = &next
	}

	if err := s.appointmentRepo.Update(ctx, id, upd); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update appointment %s", id), err)
		return nil, err
	}

	updated, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info(fmt.Sprintf("Updated appointment %s (%s %s, %s)", id, updated.Date, updated.TimeSlot, updated.GetStatus()))
	resp := dto.ToAppointmentResponse(updated)
	return &resp, nil
}

// Delete removes an appointment.
func (s *appointmentService) Delete(ctx context.Context, id string) error {
	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(fmt.Sprintf("Deleted appointment %s", id))
	return nil
}

// ConfirmationMessage returns the text a confirmation push would carry.
func (s *appointmentService) ConfirmationMessage(ctx context.Context, id string) (string, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return appointment.ConfirmationText(), nil
}

// Catalog lists services, styles, time slots and statuses.
func (s *appointmentService) Catalog() dto.CatalogResponse {
	statuses := make([]dto.StatusOption, 0, len(constant.Statuses()))
	for _, st := range constant.Statuses() {
		statuses = append(statuses, dto.StatusOption{Code: st, Label: st.Label()})
	}
	return dto.CatalogResponse{
		Services:  constant.Services(),
		Styles:    constant.Styles(),
		TimeSlots: constant.TimeSlots(),
		Statuses:  statuses,
	}
}
