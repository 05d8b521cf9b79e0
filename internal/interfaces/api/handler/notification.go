package handler

import (
	"nailstudio/internal/application/dto"
	"nailstudio/internal/application/service"
	"nailstudio/internal/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
)

// NotificationHandler serves the confirmation push endpoints.
type NotificationHandler struct {
	notificationService service.NotificationService
	log                 logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService, log logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		log:                 log,
	}
}

// SendConfirmation takes {"appointment_id": "..."} in the body.
// Missing configuration is reported before the body is read.
func (h *NotificationHandler) SendConfirmation(c echo.Context) error {
	if err := h.notificationService.Ready(); err != nil {
		return respondError(c, h.log, err)
	}
	var req dto.SendConfirmationRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.log, bindError(err))
	}
	return h.send(c, req.AppointmentID)
}

// ConfirmAppointment takes the appointment id from the path.
func (h *NotificationHandler) ConfirmAppointment(c echo.Context) error {
	return h.send(c, c.Param("id"))
}

func (h *NotificationHandler) send(c echo.Context, appointmentID string) error {
	if err := h.notificationService.SendConfirmation(c.Request().Context(), appointmentID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
