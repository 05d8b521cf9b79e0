package service

import (
	"context"
	"fmt"
	"nailstudio/internal/domain/constant"
	"nailstudio/internal/domain/repository"
	appErrors "nailstudio/internal/pkg/errors"
	"nailstudio/internal/pkg/logger"
	"nailstudio/internal/pkg/metrics"
)

type notificationService struct {
	ready           func() error
	appointmentRepo repository.AppointmentRepository
	directory       repository.IdentityDirectory
	pusher          MessagePusher
	metrics         metrics.Recorder
	log             logger.Logger
}

// NewNotificationService creates a new instance of NotificationService implementation.
// ready reports missing messaging configuration; pusher may be nil when it does.
func NewNotificationService(
	ready func() error,
	appointmentRepo repository.AppointmentRepository,
	directory repository.IdentityDirectory,
	pusher MessagePusher,
	recorder metrics.Recorder,
	log logger.Logger,
) NotificationService {
	return &notificationService{
		ready:           ready,
		appointmentRepo: appointmentRepo,
		directory:       directory,
		pusher:          pusher,
		metrics:         recorder,
		log:             log,
	}
}

// Ready checks the messaging secrets and the LINE client.
func (s *notificationService) Ready() error {
	if s.ready != nil {
		if err := s.ready(); err != nil {
			return err
		}
	}
	if s.pusher == nil {
		return fmt.Errorf("%w: LINE messaging client", appErrors.ErrConfiguration)
	}
	return nil
}

// SendConfirmation pushes the message first and only then writes the status column.
func (s *notificationService) SendConfirmation(ctx context.Context, appointmentID string) (err error) {
	defer func() {
		if err != nil {
			s.metrics.RecordNotification(metrics.ResultFailure)
			return
		}
		s.metrics.RecordNotification(metrics.ResultSuccess)
	}()

	if err := s.Ready(); err != nil {
		s.log.Error("Send confirmation refused", err)
		return err
	}
	if appointmentID == "" {
		return fmt.Errorf("%w: appointment_id is required", appErrors.ErrClientInput)
	}

	appointment, err := s.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !appointment.GetStatus().CanTransition(constant.StatusConfirmed) {
		return fmt.Errorf("%w: %s appointment cannot be confirmed", appErrors.ErrInvalidTransition, appointment.GetStatus())
	}
	if appointment.UserID == nil || *appointment.UserID == "" {
		return fmt.Errorf("%w: appointment %s has no owner", appErrors.ErrUserNotFound, appointmentID)
	}

	identity, err := s.directory.GetIdentityByID(ctx, *appointment.UserID)
	if err != nil {
		return err
	}
	lineUserID := identity.LineUserID()
	if lineUserID == "" {
		s.log.Warn(fmt.Sprintf("Identity %s has no LINE user id, not notifying appointment %s", identity.ID, appointmentID))
		return appErrors.ErrNoLinkedLineAccount
	}

	if err := s.pusher.PushText(ctx, lineUserID, appointment.ConfirmationText()); err != nil {
		s.log.Error(fmt.Sprintf("Failed to push confirmation for appointment %s", appointmentID), err)
		return err
	}
	s.log.Info(fmt.Sprintf("Pushed confirmation for appointment %s to %s", appointmentID, lineUserID))

	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, constant.StatusConfirmed); err != nil {
		s.log.Error(fmt.Sprintf("Pushed confirmation but failed to confirm appointment %s", appointmentID), err)
		return err
	}
	return nil
}
