package repository

import (
	"context"
	"nailstudio/internal/domain/entity"
)

// CreateIdentityParams is the payload for creating an identity in the auth directory.
type CreateIdentityParams struct {
	Email        string
	Password     string
	EmailConfirm bool
	UserMetadata map[string]interface{}
}

// IdentityDirectory is the external auth store's user directory.
// CreateIdentity returns appErrors.ErrIdentityExists when the email is already registered.
type IdentityDirectory interface {
	CreateIdentity(ctx context.Context, params CreateIdentityParams) (*entity.Identity, error)
	ListIdentities(ctx context.Context, page, perPage int) ([]*entity.Identity, error)
	GetIdentityByID(ctx context.Context, id string) (*entity.Identity, error)
	UpdateIdentityMetadata(ctx context.Context, id string, metadata map[string]interface{}) (*entity.Identity, error)
}

// SessionIssuer mints a URL that signs the identity with email in and lands on redirectTo.
type SessionIssuer interface {
	IssueSession(ctx context.Context, email, redirectTo string) (string, error)
}
