package router

import (
	"crypto/subtle"
	"fmt"
	"nailstudio/internal/application/dto"
	"nailstudio/internal/interfaces/api/handler"
	"nailstudio/internal/pkg/logger"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Config holds the dependencies for the router.
// An empty AdminAPIKey denies every admin call. ReservationRateLimit is requests
// per second per client IP on the public reservation form; zero disables it.
type Config struct {
	AuthHandler          *handler.AuthHandler
	NotificationHandler  *handler.NotificationHandler
	AppointmentHandler   *handler.AppointmentHandler
	MetricsHandler       http.Handler
	AdminAPIKey          string
	ReservationRateLimit float64
	Logger               logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler(cfg.Logger)

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
		MaxAge:       300,
	}))

	admin := adminAuth(cfg.AdminAPIKey)
	reservationLimit := reservationLimiter(cfg.ReservationRateLimit)

	// Routes
	e.GET("/healthz", handler.Health)
	if cfg.MetricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(cfg.MetricsHandler))
	}

	// Function-style endpoints keep the paths the frontend already calls.
	functions := e.Group("/functions/v1")
	functions.GET("/line-auth", cfg.AuthHandler.LineAuth)
	functions.POST("/send-confirmation", cfg.NotificationHandler.SendConfirmation, admin)

	lineAuth := e.Group("/auth/line")
	lineAuth.GET("/login", cfg.AuthHandler.Init)
	lineAuth.GET("/callback", cfg.AuthHandler.Callback)

	api := e.Group("/api")
	api.GET("/catalog", cfg.AppointmentHandler.Catalog)
	api.POST("/appointments", cfg.AppointmentHandler.Create, reservationLimit)
	api.GET("/appointments", cfg.AppointmentHandler.List, admin)
	api.GET("/appointments/:id", cfg.AppointmentHandler.Get, admin)
	api.PATCH("/appointments/:id", cfg.AppointmentHandler.Update, admin)
	api.DELETE("/appointments/:id", cfg.AppointmentHandler.Delete, admin)
	api.GET("/appointments/:id/confirmation-preview", cfg.AppointmentHandler.ConfirmationPreview, admin)
	api.POST("/appointments/:id/confirm", cfg.NotificationHandler.ConfirmAppointment, admin)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}

// adminAuth checks "Authorization: Bearer <key>" against the admin key.
func adminAuth(adminKey string) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(key string, c echo.Context) (bool, error) {
			if adminKey == "" {
				return false, nil
			}
			return subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) == 1, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "unauthorized"})
		},
	})
}

// reservationLimiter throttles the public reservation form per client IP.
func reservationLimiter(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(perSecond),
			Burst: max(1, int(perSecond)),
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "could not identify client"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: "too many requests"})
		},
	})
}
