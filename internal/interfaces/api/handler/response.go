package handler

import (
	"errors"
	"fmt"
	"nailstudio/internal/application/dto"
	appErrors "nailstudio/internal/pkg/errors"
	"nailstudio/internal/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
)

// respondError writes err as the JSON error envelope with the status its kind maps to.
func respondError(c echo.Context, log logger.Logger, err error) error {
	status := appErrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("%s %s failed", c.Request().Method, c.Path()), err)
	}
	return c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

// bindError turns a binder failure into a client input error.
func bindError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fmt.Errorf("%w: %v", appErrors.ErrClientInput, he.Message)
	}
	return fmt.Errorf("%w: %v", appErrors.ErrClientInput, err)
}

// ErrorHandler renders errors raised by echo itself (unknown route, wrong method,
// middleware rejections) in the same JSON envelope.
func ErrorHandler(log logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		msg := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprint(he.Message)
		} else {
			log.Error(fmt.Sprintf("Unhandled error on %s %s", c.Request().Method, c.Request().URL.Path), err)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, dto.ErrorResponse{Error: msg})
	}
}
