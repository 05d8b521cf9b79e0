package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"nailstudio/internal/application/dto"
	"nailstudio/internal/domain/constant"
	appErrors "nailstudio/internal/pkg/errors"
	"nailstudio/internal/pkg/logger"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	initURL  string
	redirect string
	err      error
	got      dto.LoginCallbackRequest
}

func (s *stubAuthService) InitLogin(ctx context.Context) (string, error) {
	return s.initURL, s.err
}

func (s *stubAuthService) HandleCallback(ctx context.Context, req dto.LoginCallbackRequest) (string, error) {
	s.got = req
	return s.redirect, s.err
}

type stubNotificationService struct {
	id       string
	err      error
	readyErr error
}

func (s *stubNotificationService) Ready() error {
	return s.readyErr
}

func (s *stubNotificationService) SendConfirmation(ctx context.Context, appointmentID string) error {
	s.id = appointmentID
	return s.err
}

type stubAppointmentService struct {
	appointment dto.AppointmentResponse
	err         error
	created     dto.CreateAppointmentRequest
	updated     dto.UpdateAppointmentRequest
	deleted     string
}

func (s *stubAppointmentService) Create(ctx context.Context, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &s.appointment, nil
}

func (s *stubAppointmentService) List(ctx context.Context) ([]dto.AppointmentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []dto.AppointmentResponse{s.appointment}, nil
}

func (s *stubAppointmentService) Get(ctx context.Context, id string) (*dto.AppointmentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &s.appointment, nil
}

func (s *stubAppointmentService) Update(ctx context.Context, id string, req dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	s.updated = req
	if s.err != nil {
		return nil, s.err
	}
	return &s.appointment, nil
}

func (s *stubAppointmentService) Delete(ctx context.Context, id string) error {
	s.deleted = id
	return s.err
}

func (s *stubAppointmentService) ConfirmationMessage(ctx context.Context, id string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "您好！您的預約已確認。", nil
}

func (s *stubAppointmentService) Catalog() dto.CatalogResponse {
	return dto.CatalogResponse{TimeSlots: constant.TimeSlots()}
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestLineAuth_Dispatch(t *testing.T) {
	svc := &stubAuthService{initURL: "https://access.line.me/oauth2/v2.1/authorize?state=s", redirect: "https://ref.supabase.co/auth/v1/verify?token=t"}
	h := NewAuthHandler(svc, logger.NewNop())

	c, rec := newContext(http.MethodGet, "/functions/v1/line-auth?action=init", "")
	require.NoError(t, h.LineAuth(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, svc.initURL, rec.Header().Get(echo.HeaderLocation))

	c, rec = newContext(http.MethodGet, "/functions/v1/line-auth?action=callback&code=abc&state=s", "")
	require.NoError(t, h.LineAuth(c))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, svc.redirect, rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, dto.LoginCallbackRequest{Action: "callback", Code: "abc", State: "s"}, svc.got)

	c, rec = newContext(http.MethodGet, "/functions/v1/line-auth?action=logout", "")
	require.NoError(t, h.LineAuth(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid action", rec.Body.String())
}

func TestCallback_ErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: No code provided", appErrors.ErrClientInput), http.StatusBadRequest},
		{fmt.Errorf("%w: state expired", appErrors.ErrInvalidState), http.StatusBadRequest},
		{fmt.Errorf("%w: LINE_CHANNEL_ID", appErrors.ErrConfiguration), http.StatusInternalServerError},
		{fmt.Errorf("%w: invalid authorization code", appErrors.ErrUpstreamProvider), http.StatusInternalServerError},
		{fmt.Errorf("%w: line_u1@line.login", appErrors.ErrResolution), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{err: tt.err}, logger.NewNop())
			c, rec := newContext(http.MethodGet, "/auth/line/callback", "")
			require.NoError(t, h.Callback(c))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.err.Error(), decodeError(t, rec))
		})
	}
}

func TestSendConfirmation(t *testing.T) {
	svc := &stubNotificationService{}
	h := NewNotificationHandler(svc, logger.NewNop())

	c, rec := newContext(http.MethodPost, "/functions/v1/send-confirmation", `{"appointment_id":"a-1"}`)
	require.NoError(t, h.SendConfirmation(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, "a-1", svc.id)

	svc.err = appErrors.ErrNoLinkedLineAccount
	c, rec = newContext(http.MethodPost, "/functions/v1/send-confirmation", `{"appointment_id":"a-1"}`)
	require.NoError(t, h.SendConfirmation(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "user does not have a linked LINE account", decodeError(t, rec))

	c, rec = newContext(http.MethodPost, "/functions/v1/send-confirmation", `{"appointment_id":`)
	require.NoError(t, h.SendConfirmation(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendConfirmation_ConfigCheckedBeforeBody(t *testing.T) {
	svc := &stubNotificationService{readyErr: fmt.Errorf("%w: LINE_CHANNEL_ACCESS_TOKEN", appErrors.ErrConfiguration)}
	h := NewNotificationHandler(svc, logger.NewNop())

	c, rec := newContext(http.MethodPost, "/functions/v1/send-confirmation", `{"appointment_id":`)
	require.NoError(t, h.SendConfirmation(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "missing configuration: LINE_CHANNEL_ACCESS_TOKEN", decodeError(t, rec))
	assert.Empty(t, svc.id)
}

func TestConfirmAppointment_UsesPathID(t *testing.T) {
	svc := &stubNotificationService{}
	h := NewNotificationHandler(svc, logger.NewNop())

	c, rec := newContext(http.MethodPost, "/api/appointments/a-9/confirm", "")
	c.SetParamNames("id")
	c.SetParamValues("a-9")
	require.NoError(t, h.ConfirmAppointment(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a-9", svc.id)
}

func TestAppointmentHandler(t *testing.T) {
	svc := &stubAppointmentService{appointment: dto.AppointmentResponse{ID: "a-1", Status: constant.StatusPending}}
	h := NewAppointmentHandler(svc, logger.NewNop())

	c, rec := newContext(http.MethodPost, "/api/appointments", `{"name":"王小美","phone":"0912-345-678","date":"2025-06-01","timeSlot":"13:00","services":["單色凝膠"],"style":"純色簡約","status":"COMPLETED"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "王小美", svc.created.Name)
	assert.Equal(t, []string{"單色凝膠"}, svc.created.Services)

	c, rec = newContext(http.MethodGet, "/api/appointments", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	var list []dto.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	c, rec = newContext(http.MethodPatch, "/api/appointments/a-1", `{"status":"已確認"}`)
	c.SetParamNames("id")
	c.SetParamValues("a-1")
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updated.Status)
	assert.Equal(t, "已確認", *svc.updated.Status)
	assert.Nil(t, svc.updated.Date)

	c, rec = newContext(http.MethodDelete, "/api/appointments/a-1", "")
	c.SetParamNames("id")
	c.SetParamValues("a-1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "a-1", svc.deleted)

	c, rec = newContext(http.MethodGet, "/api/appointments/a-1/confirmation-preview", "")
	require.NoError(t, h.ConfirmationPreview(c))
	assert.JSONEq(t, `{"message":"您好！您的預約已確認。"}`, rec.Body.String())

	c, rec = newContext(http.MethodGet, "/api/catalog", "")
	require.NoError(t, h.Catalog(c))
	assert.Contains(t, rec.Body.String(), `"time_slots":["10:00","13:00","16:00","19:00"]`)
}

func TestAppointmentHandler_ErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: name is required", appErrors.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: CANCELLED to PENDING", appErrors.ErrInvalidTransition), http.StatusConflict},
		{fmt.Errorf("%w: a-1", appErrors.ErrAppointmentNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: disk full", appErrors.ErrDatabaseOperation), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewAppointmentHandler(&stubAppointmentService{err: tt.err}, logger.NewNop())
			c, rec := newContext(http.MethodPatch, "/api/appointments/a-1", `{}`)
			require.NoError(t, h.Update(c))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.err.Error(), decodeError(t, rec))
		})
	}
}

func TestErrorHandler_RendersJSON(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(logger.NewNop())
	e.GET("/healthz", Health)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", decodeError(t, rec))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
