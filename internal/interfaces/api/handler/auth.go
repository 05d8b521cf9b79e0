package handler

import (
	"nailstudio/internal/application/dto"
	"nailstudio/internal/application/service"
	"nailstudio/internal/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves the LINE login endpoints.
type AuthHandler struct {
	authService service.AuthService
	log         logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// LineAuth dispatches on the action query parameter: init or callback.
func (h *AuthHandler) LineAuth(c echo.Context) error {
	switch c.QueryParam("action") {
	case "init":
		return h.Init(c)
	case "callback":
		return h.Callback(c)
	default:
		return c.String(http.StatusBadRequest, "Invalid action")
	}
}

// Init redirects the browser to LINE's authorize endpoint.
func (h *AuthHandler) Init(c echo.Context) error {
	authURL, err := h.authService.InitLogin(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Redirect(http.StatusFound, authURL)
}

// Callback completes the login and redirects to the session link.
func (h *AuthHandler) Callback(c echo.Context) error {
	req := dto.LoginCallbackRequest{
		Action: c.QueryParam("action"),
		Code:   c.QueryParam("code"),
		State:  c.QueryParam("state"),
	}
	redirect, err := h.authService.HandleCallback(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Redirect(http.StatusFound, redirect)
}
