package database

import (
	"context"
	"errors"
	"fmt"
	"nailstudio/internal/domain/entity"
	"nailstudio/internal/domain/repository"
	appErrors "nailstudio/internal/pkg/errors"
	"time"

	"gorm.io/gorm"
)

type oauthStateRepository struct {
	db *gorm.DB
}

// NewOAuthStateRepository creates a new instance of OAuthStateRepository.
func NewOAuthStateRepository(db *gorm.DB) repository.OAuthStateRepository {
	return &oauthStateRepository{db: db}
}

// Create stores a new state.
func (r *oauthStateRepository) Create(ctx context.Context, state *entity.OAuthState) error {
	if err := r.db.WithContext(ctx).Create(state).Error; err != nil {
		return fmt.Errorf("%w: store oauth state: %v", appErrors.ErrDatabaseOperation, err)
	}
	return nil
}

// Consume deletes the state and returns it. Only the caller whose delete removed
// the row gets the state back, so concurrent callbacks cannot both redeem it.
func (r *oauthStateRepository) Consume(ctx context.Context, state string) (*entity.OAuthState, error) {
	var stored entity.OAuthState
	if err := r.db.WithContext(ctx).Where("state = ?", state).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown state", appErrors.ErrInvalidState)
		}
		return nil, fmt.Errorf("%w: load oauth state: %v", appErrors.ErrDatabaseOperation, err)
	}

	res := r.db.WithContext(ctx).Where("state = ?", state).Delete(&entity.OAuthState{})
	if res.Error != nil {
		return nil, fmt.Errorf("%w: consume oauth state: %v", appErrors.ErrDatabaseOperation, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: state already used", appErrors.ErrInvalidState)
	}
	return &stored, nil
}

// DeleteExpired removes states that expired before now.
func (r *oauthStateRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&entity.OAuthState{})
	if res.Error != nil {
		return 0, fmt.Errorf("%w: delete expired oauth states: %v", appErrors.ErrDatabaseOperation, res.Error)
	}
	return res.RowsAffected, nil
}
