package service

import (
	"context"
	"errors"
	"fmt"
	"nailstudio/internal/domain/entity"
	"nailstudio/internal/domain/repository"
	appErrors "nailstudio/internal/pkg/errors"
	"nailstudio/internal/pkg/logger"
	"strings"

	"github.com/google/uuid"
)

type identityService struct {
	directory    repository.IdentityDirectory
	lineAccounts repository.LineAccountRepository
	pageSize     int
	log          logger.Logger
}

// NewIdentityService creates a new instance of IdentityService implementation.
// pageSize bounds the directory scan used when an existing identity has no local link.
func NewIdentityService(
	directory repository.IdentityDirectory,
	lineAccounts repository.LineAccountRepository,
	pageSize int,
	log logger.Logger,
) IdentityService {
	return &identityService{
		directory:    directory,
		lineAccounts: lineAccounts,
		pageSize:     pageSize,
		log:          log,
	}
}

// Resolve creates the identity, falling back to lookup when the email is already registered.
func (s *identityService) Resolve(ctx context.Context, profile *entity.LineProfile) (*entity.Identity, error) {
	email := entity.LocalEmail(profile.UserID)
	metadata := profile.Metadata()

	identity, err := s.directory.CreateIdentity(ctx, repository.CreateIdentityParams{
		Email:        email,
		Password:     uuid.NewString(),
		EmailConfirm: true,
		UserMetadata: metadata,
	})
	switch {
	case err == nil:
		s.log.Info(fmt.Sprintf("Created identity %s for LINE user %s", identity.ID, profile.UserID))
	case errors.Is(err, appErrors.ErrIdentityExists):
		identity, err = s.findExisting(ctx, profile.UserID, email)
		if err != nil {
			return nil, err
		}
		if _, err := s.directory.UpdateIdentityMetadata(ctx, identity.ID, metadata); err != nil {
			s.log.Warn(fmt.Sprintf("Failed to refresh metadata of identity %s: %v", identity.ID, err))
		} else {
			identity.UserMetadata = metadata
		}
	default:
		return nil, err
	}

	if _, err := s.lineAccounts.FirstOrCreate(ctx, &entity.LineAccount{
		LineUserID: profile.UserID,
		AuthUserID: identity.ID,
		Email:      email,
	}); err != nil {
		s.log.Error(fmt.Sprintf("Failed to link LINE user %s to identity %s", profile.UserID, identity.ID), err)
		return nil, err
	}
	return identity, nil
}

// findExisting prefers the local link and falls back to scanning one directory page.
func (s *identityService) findExisting(ctx context.Context, lineUserID, email string) (*entity.Identity, error) {
	if link, err := s.lineAccounts.FindByLineUserID(ctx, lineUserID); err == nil {
		identity, err := s.directory.GetIdentityByID(ctx, link.AuthUserID)
		switch {
		case err == nil && strings.EqualFold(identity.Email, email):
			return identity, nil
		case err == nil, errors.Is(err, appErrors.ErrUserNotFound):
			s.log.Warn(fmt.Sprintf("Stale link for LINE user %s to identity %s", lineUserID, link.AuthUserID))
		default:
			return nil, err
		}
	} else if !errors.Is(err, appErrors.ErrUserNotFound) {
		return nil, err
	}

	identities, err := s.directory.ListIdentities(ctx, 1, s.pageSize)
	if err != nil {
		return nil, err
	}
	for _, identity := range identities {
		if strings.EqualFold(identity.Email, email) {
			return identity, nil
		}
	}
	s.log.Warn(fmt.Sprintf("Could not find %s among %d listed identities", email, len(identities)))
	return nil, fmt.Errorf("%w: %s", appErrors.ErrResolution, email)
}
