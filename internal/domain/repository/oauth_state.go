package repository

import (
	"context"
	"nailstudio/internal/domain/entity"
	"time"
)

// OAuthStateRepository stores login state tokens between init and callback.
type OAuthStateRepository interface {
	// Create stores a new state.
	Create(ctx context.Context, state *entity.OAuthState) error
	// Consume deletes the state and returns it. A state can be consumed once.
	Consume(ctx context.Context, state string) (*entity.OAuthState, error)
	// DeleteExpired removes states that expired before now and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
