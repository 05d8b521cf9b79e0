package repository

import (
	"context"
	"nailstudio/internal/domain/entity"
)

// LineAccountRepository maps LINE user ids to auth directory identities.
type LineAccountRepository interface {
	// FindByLineUserID retrieves the link for a LINE user.
	FindByLineUserID(ctx context.Context, lineUserID string) (*entity.LineAccount, error)
	// FirstOrCreate returns the existing link for account.LineUserID, or stores account.
	FirstOrCreate(ctx context.Context, account *entity.LineAccount) (*entity.LineAccount, error)
}
