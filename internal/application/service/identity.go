package service

import (
	"context"
	"nailstudio/internal/domain/entity"
)

// IdentityService resolves a LINE profile to exactly one auth directory identity.
type IdentityService interface {
	// Resolve creates the identity for profile, or finds and refreshes the existing one.
	Resolve(ctx context.Context, profile *entity.LineProfile) (*entity.Identity, error)
}
