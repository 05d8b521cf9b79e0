package service

import (
	"context"
	"errors"
	"fmt"
	"nailstudio/internal/domain/constant"
	"nailstudio/internal/domain/entity"
	"nailstudio/internal/domain/repository"
	"nailstudio/internal/infrastructure/database"
	appErrors "nailstudio/internal/pkg/errors"
	"nailstudio/internal/pkg/logger"
	"nailstudio/internal/pkg/metrics"
	"nailstudio/internal/pkg/validate"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationFixture struct {
	svc          NotificationService
	appointments AppointmentService
	repo         repository.AppointmentRepository
	directory    *fakeDirectory
	pusher       *fakePusher
	readyErr     error
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()
	f := &notificationFixture{
		repo:      database.NewAppointmentRepository(openTestDB(t)),
		directory: newFakeDirectory(),
		pusher:    &fakePusher{},
	}
	f.appointments = NewAppointmentService(f.repo, validate.New(), metrics.NewNop(), logger.NewNop())
	f.svc = NewNotificationService(
		func() error { return f.readyErr },
		f.repo,
		f.directory,
		f.pusher,
		metrics.NewNop(),
		logger.NewNop(),
	)
	return f
}

func (f *notificationFixture) book(t *testing.T, userID string) string {
	t.Helper()
	req := reservation()
	req.UserID = userID
	created, err := f.appointments.Create(context.Background(), req)
	require.NoError(t, err)
	return created.ID
}

func (f *notificationFixture) load(t *testing.T, id string) *entity.Appointment {
	t.Helper()
	a, err := f.repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return a
}

func TestSendConfirmation_EndToEnd(t *testing.T) {
	f := newNotificationFixture(t)
	f.directory.add("auth-1", "line_u1@line.login", map[string]interface{}{"line_user_id": "U1"})
	id := f.book(t, "auth-1")

	before := f.load(t, id)
	assert.Equal(t, constant.StatusPending, before.Status)

	require.NoError(t, f.svc.SendConfirmation(context.Background(), id))

	require.Len(t, f.pusher.pushes, 1)
	assert.Equal(t, "U1", f.pusher.pushes[0].to)
	assert.Contains(t, f.pusher.pushes[0].text, "時間: 2025-06-01 13:00")
	assert.Contains(t, f.pusher.pushes[0].text, "項目: 純色簡約")

	after := f.load(t, id)
	assert.Equal(t, constant.StatusConfirmed, after.Status)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.Phone, after.Phone)
	assert.Equal(t, before.Date, after.Date)
	assert.Equal(t, before.TimeSlot, after.TimeSlot)
	assert.Equal(t, before.Services, after.Services)
	assert.Equal(t, before.Style, after.Style)
	assert.Equal(t, before.UserID, after.UserID)
}

func TestSendConfirmation_NoLinkedLineAccount(t *testing.T) {
	f := newNotificationFixture(t)
	f.directory.add("auth-1", "someone@example.com", map[string]interface{}{"full_name": "Mei"})
	id := f.book(t, "auth-1")

	err := f.svc.SendConfirmation(context.Background(), id)
	assert.True(t, errors.Is(err, appErrors.ErrNoLinkedLineAccount))
	assert.Empty(t, f.pusher.pushes)
	assert.Equal(t, constant.StatusPending, f.load(t, id).Status)
}

func TestSendConfirmation_Failures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f *notificationFixture) string
		wantErr error
	}{
		{
			name: "missing configuration",
			setup: func(t *testing.T, f *notificationFixture) string {
				f.readyErr = fmt.Errorf("%w: LINE_CHANNEL_ACCESS_TOKEN", appErrors.ErrConfiguration)
				return "any"
			},
			wantErr: appErrors.ErrConfiguration,
		},
		{
			name:    "missing appointment id",
			setup:   func(t *testing.T, f *notificationFixture) string { return "" },
			wantErr: appErrors.ErrClientInput,
		},
		{
			name:    "unknown appointment",
			setup:   func(t *testing.T, f *notificationFixture) string { return "missing" },
			wantErr: appErrors.ErrAppointmentNotFound,
		},
		{
			name:    "owner missing from directory",
			setup:   func(t *testing.T, f *notificationFixture) string { return f.book(t, "ghost") },
			wantErr: appErrors.ErrUserNotFound,
		},
		{
			name:    "appointment without owner",
			setup:   func(t *testing.T, f *notificationFixture) string { return f.book(t, "") },
			wantErr: appErrors.ErrUserNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newNotificationFixture(t)
			id := tt.setup(t, f)
			err := f.svc.SendConfirmation(context.Background(), id)
			assert.True(t, errors.Is(err, tt.wantErr), err)
			assert.Empty(t, f.pusher.pushes)
		})
	}
}

func TestSendConfirmation_CancelledCannotBeConfirmed(t *testing.T) {
	f := newNotificationFixture(t)
	f.directory.add("auth-1", "line_u1@line.login", map[string]interface{}{"line_user_id": "U1"})
	id := f.book(t, "auth-1")
	require.NoError(t, f.repo.UpdateStatus(context.Background(), id, constant.StatusCancelled))

	err := f.svc.SendConfirmation(context.Background(), id)
	assert.True(t, errors.Is(err, appErrors.ErrInvalidTransition))
	assert.Empty(t, f.pusher.pushes)
	assert.Equal(t, constant.StatusCancelled, f.load(t, id).Status)
}

func TestSendConfirmation_PushFailureLeavesStatus(t *testing.T) {
	f := newNotificationFixture(t)
	f.directory.add("auth-1", "line_u1@line.login", map[string]interface{}{"line_user_id": "U1"})
	id := f.book(t, "auth-1")
	f.pusher.err = fmt.Errorf(`%w: LINE API Error: {"message":"Invalid reply token"}`, appErrors.ErrUpstreamProvider)

	err := f.svc.SendConfirmation(context.Background(), id)
	assert.True(t, errors.Is(err, appErrors.ErrUpstreamProvider))
	assert.Contains(t, err.Error(), "LINE API Error")
	assert.Equal(t, constant.StatusPending, f.load(t, id).Status)
}

func TestSendConfirmation_NilPusherIsConfigurationError(t *testing.T) {
	repo := database.NewAppointmentRepository(openTestDB(t))
	svc := NewNotificationService(nil, repo, newFakeDirectory(), nil, metrics.NewNop(), logger.NewNop())
	err := svc.SendConfirmation(context.Background(), "any")
	assert.True(t, errors.Is(err, appErrors.ErrConfiguration))
}

func TestReady(t *testing.T) {
	f := newNotificationFixture(t)
	assert.NoError(t, f.svc.Ready())

	f.readyErr = fmt.Errorf("%w: SUPABASE_SERVICE_ROLE_KEY", appErrors.ErrConfiguration)
	err := f.svc.Ready()
	assert.True(t, errors.Is(err, appErrors.ErrConfiguration))
	assert.Contains(t, err.Error(), "SUPABASE_SERVICE_ROLE_KEY")

	repo := database.NewAppointmentRepository(openTestDB(t))
	svc := NewNotificationService(nil, repo, newFakeDirectory(), nil, metrics.NewNop(), logger.NewNop())
	assert.True(t, errors.Is(svc.Ready(), appErrors.ErrConfiguration))
}
