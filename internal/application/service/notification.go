package service

import "context"

// MessagePusher sends a text message to a LINE user.
type MessagePusher interface {
	PushText(ctx context.Context, to, text string) error
}

// NotificationService defines the interface for customer notifications.
type NotificationService interface {
	// Ready reports missing messaging configuration as ErrConfiguration.
	Ready() error
	// SendConfirmation pushes the confirmation message to the appointment's owner
	// and marks the appointment CONFIRMED.
	SendConfirmation(ctx context.Context, appointmentID string) error
}
