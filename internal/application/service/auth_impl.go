package service

import (
	"context"
	"fmt"
	"nailstudio/internal/application/dto"
	"nailstudio/internal/domain/entity"
	"nailstudio/internal/domain/repository"
	appErrors "nailstudio/internal/pkg/errors"
	"nailstudio/internal/pkg/logger"
	"nailstudio/internal/pkg/metrics"
	"time"

	"github.com/google/uuid"
)

// AuthConfig holds the login settings resolved at startup.
// Ready reports missing login configuration and is checked before any outbound call.
type AuthConfig struct {
	Ready                func() error
	PostLoginRedirectURL string
	StateTTL             time.Duration
}

type authService struct {
	cfg      AuthConfig
	provider LoginProvider
	states   repository.OAuthStateRepository
	identity IdentityService
	sessions repository.SessionIssuer
	metrics  metrics.Recorder
	log      logger.Logger
	now      func() time.Time
}

// NewAuthService creates a new instance of AuthService implementation.
func NewAuthService(
	cfg AuthConfig,
	provider LoginProvider,
	states repository.OAuthStateRepository,
	identity IdentityService,
	sessions repository.SessionIssuer,
	recorder metrics.Recorder,
	log logger.Logger,
) AuthService {
	return &authService{
		cfg:      cfg,
		provider: provider,
		states:   states,
		identity: identity,
		sessions: sessions,
		metrics:  recorder,
		log:      log,
		now:      time.Now,
	}
}

func (s *authService) ready() error {
	if s.cfg.Ready == nil {
		return nil
	}
	return s.cfg.Ready()
}

// InitLogin stores a single-use state that expires after StateTTL.
func (s *authService) InitLogin(ctx context.Context) (string, error) {
	if err := s.ready(); err != nil {
		s.log.Error("Login init refused", err)
		return "", err
	}

	state := &entity.OAuthState{
		State:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.cfg.StateTTL),
	}
	if err := s.states.Create(ctx, state); err != nil {
		s.log.Error("Failed to store oauth state", err)
		return "", err
	}
	s.log.Debug(fmt.Sprintf("Issued oauth state expiring at %s", state.ExpiresAt.Format(time.RFC3339)))
	return s.provider.AuthCodeURL(state.State), nil
}

// HandleCallback validates the callback, resolves the identity and issues a session link.
func (s *authService) HandleCallback(ctx context.Context, req dto.LoginCallbackRequest) (redirect string, err error) {
	defer func() {
		if err != nil {
			s.metrics.RecordLogin(metrics.ResultFailure)
			return
		}
		s.metrics.RecordLogin(metrics.ResultSuccess)
	}()

	if err := s.ready(); err != nil {
		s.log.Error("Login callback refused", err)
		return "", err
	}
	if req.Code == "" {
		return "", fmt.Errorf("%w: No code provided", appErrors.ErrClientInput)
	}
	if err := s.consumeState(ctx, req.State); err != nil {
		s.log.Warn(fmt.Sprintf("Rejected login callback: %v", err))
		return "", err
	}

	tok, err := s.provider.Exchange(ctx, req.Code)
	if err != nil {
		s.log.Error("LINE token exchange failed", err)
		return "", err
	}
	profile, err := s.provider.GetProfile(ctx, tok)
	if err != nil {
		s.log.Error("LINE profile fetch failed", err)
		return "", err
	}

	identity, err := s.identity.Resolve(ctx, profile)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to resolve identity for LINE user %s", profile.UserID), err)
		return "", err
	}

	link, err := s.sessions.IssueSession(ctx, entity.LocalEmail(profile.UserID), s.cfg.PostLoginRedirectURL)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to issue session for identity %s", identity.ID), err)
		return "", err
	}
	s.log.Info(fmt.Sprintf("LINE user %s signed in as %s", profile.UserID, identity.ID))
	return link, nil
}

func (s *authService) consumeState(ctx context.Context, state string) error {
	if state == "" {
		return fmt.Errorf("%w: missing state", appErrors.ErrInvalidState)
	}
	stored, err := s.states.Consume(ctx, state)
	if err != nil {
		return err
	}
	if stored.Expired(s.now()) {
		return fmt.Errorf("%w: state expired", appErrors.ErrInvalidState)
	}
	return nil
}
