package database

import (
	"context"
	"errors"
	"fmt"
	"nailstudio/internal/domain/entity"
	"nailstudio/internal/domain/repository"
	appErrors "nailstudio/internal/pkg/errors"

	"gorm.io/gorm"
)

type lineAccountRepository struct {
	db *gorm.DB
}

// NewLineAccountRepository creates a new instance of LineAccountRepository.
func NewLineAccountRepository(db *gorm.DB) repository.LineAccountRepository {
	return &lineAccountRepository{db: db}
}

// FindByLineUserID retrieves the link for a LINE user.
func (r *lineAccountRepository) FindByLineUserID(ctx context.Context, lineUserID string) (*entity.LineAccount, error) {
	var account entity.LineAccount
	if err := r.db.WithContext(ctx).Where("line_user_id = ?", lineUserID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no link for LINE user %s", appErrors.ErrUserNotFound, lineUserID)
		}
		return nil, fmt.Errorf("%w: find line account %s: %v", appErrors.ErrDatabaseOperation, lineUserID, err)
	}
	return &account, nil
}

// FirstOrCreate returns the existing link or stores account. When two callers
// race, the unique index rejects one insert and that caller reads the winner's row.
// A link pointing at a different identity is repointed to account.AuthUserID.
func (r *lineAccountRepository) FirstOrCreate(ctx context.Context, account *entity.LineAccount) (*entity.LineAccount, error) {
	var out entity.LineAccount
	err := r.db.WithContext(ctx).
		Where(entity.LineAccount{LineUserID: account.LineUserID}).
		Attrs(entity.LineAccount{AuthUserID: account.AuthUserID, Email: account.Email}).
		FirstOrCreate(&out).Error
	if err != nil {
		existing, findErr := r.FindByLineUserID(ctx, account.LineUserID)
		if findErr != nil {
			return nil, fmt.Errorf("%w: link line account %s: %v", appErrors.ErrDatabaseOperation, account.LineUserID, err)
		}
		out = *existing
	}

	if out.AuthUserID != account.AuthUserID {
		out.AuthUserID = account.AuthUserID
		out.Email = account.Email
		if err := r.db.WithContext(ctx).Save(&out).Error; err != nil {
			return nil, fmt.Errorf("%w: relink line account %s: %v", appErrors.ErrDatabaseOperation, account.LineUserID, err)
		}
	}
	return &out, nil
}
