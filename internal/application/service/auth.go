package service

import (
	"context"
	"nailstudio/internal/application/dto"
	"nailstudio/internal/domain/entity"

	"golang.org/x/oauth2"
)

// LoginProvider is the LINE Login authorization code flow.
type LoginProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	GetProfile(ctx context.Context, tok *oauth2.Token) (*entity.LineProfile, error)
}

// AuthService defines the interface for LINE login.
type AuthService interface {
	// InitLogin stores a fresh state and returns the LINE authorize URL carrying it.
	InitLogin(ctx context.Context) (string, error)
	// HandleCallback completes the login and returns the URL that signs the browser in.
	HandleCallback(ctx context.Context, req dto.LoginCallbackRequest) (string, error)
}
