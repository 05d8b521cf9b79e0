package handler

import (
	"nailstudio/internal/application/dto"
	"nailstudio/internal/application/service"
	"nailstudio/internal/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AppointmentHandler serves the reservation form and the admin dashboard.
type AppointmentHandler struct {
	appointmentService service.AppointmentService
	log                logger.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointmentService service.AppointmentService, log logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		log:                log,
	}
}

// Create stores a reservation submitted by the public form.
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req dto.CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.log, bindError(err))
	}
	created, err := h.appointmentService.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// List returns every appointment.
func (h *AppointmentHandler) List(c echo.Context) error {
	list, err := h.appointmentService.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, list)
}

// Get returns one appointment.
func (h *AppointmentHandler) Get(c echo.Context) error {
	appointment, err := h.appointmentService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, appointment)
}

// Update applies an admin edit of date, time slot or status.
func (h *AppointmentHandler) Update(c echo.Context) error {
	var req dto.UpdateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.log, bindError(err))
	}
	updated, err := h.appointmentService.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an appointment.
func (h *AppointmentHandler) Delete(c echo.Context) error {
	if err := h.appointmentService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ConfirmationPreview returns the message a confirmation would push.
func (h *AppointmentHandler) ConfirmationPreview(c echo.Context) error {
	msg, err := h.appointmentService.ConfirmationMessage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto.ConfirmationPreviewResponse{Message: msg})
}

// Catalog lists the bookable services, styles, time slots and statuses.
func (h *AppointmentHandler) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, h.appointmentService.Catalog())
}

// Health reports liveness.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
