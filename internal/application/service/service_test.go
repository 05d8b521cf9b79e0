package service

import (
	"context"
	"fmt"
	"nailstudio/internal/domain/entity"
	"nailstudio/internal/domain/repository"
	"nailstudio/internal/infrastructure/database"
	"nailstudio/internal/pkg/config"
	appErrors "nailstudio/internal/pkg/errors"
	"nailstudio/internal/pkg/logger"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}, logger.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func strPtr(s string) *string { return &s }

// fakeDirectory is an in-memory auth directory with unique emails.
type fakeDirectory struct {
	mu          sync.Mutex
	byID        map[string]*entity.Identity
	creates     int
	lists       int
	gets        int
	updates     int
	failUpdates bool
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{byID: map[string]*entity.Identity{}}
}

func (d *fakeDirectory) add(id, email string, metadata map[string]interface{}) *entity.Identity {
	d.mu.Lock()
	defer d.mu.Unlock()
	identity := &entity.Identity{ID: id, Email: email, UserMetadata: metadata}
	d.byID[id] = identity
	return identity
}

func (d *fakeDirectory) byEmail(email string) []*entity.Identity {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*entity.Identity
	for _, identity := range d.byID {
		if strings.EqualFold(identity.Email, email) {
			out = append(out, identity)
		}
	}
	return out
}

func (d *fakeDirectory) CreateIdentity(ctx context.Context, params repository.CreateIdentityParams) (*entity.Identity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.creates++
	for _, identity := range d.byID {
		if strings.EqualFold(identity.Email, params.Email) {
			return nil, fmt.Errorf("%w: A user with this email address has already been registered", appErrors.ErrIdentityExists)
		}
	}
	identity := &entity.Identity{ID: uuid.NewString(), Email: params.Email, UserMetadata: params.UserMetadata}
	d.byID[identity.ID] = identity
	return identity, nil
}

func (d *fakeDirectory) ListIdentities(ctx context.Context, page, perPage int) ([]*entity.Identity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lists++
	out := make([]*entity.Identity, 0, len(d.byID))
	for _, identity := range d.byID {
		out = append(out, identity)
	}
	return out, nil
}

func (d *fakeDirectory) GetIdentityByID(ctx context.Context, id string) (*entity.Identity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gets++
	identity, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", appErrors.ErrUserNotFound, id)
	}
	return identity, nil
}

func (d *fakeDirectory) UpdateIdentityMetadata(ctx context.Context, id string, metadata map[string]interface{}) (*entity.Identity, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.updates++
	if d.failUpdates {
		return nil, fmt.Errorf("%w: update failed", appErrors.ErrUpstreamProvider)
	}
	identity, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", appErrors.ErrUserNotFound, id)
	}
	identity.UserMetadata = metadata
	return identity, nil
}

// fakeSessions issues a predictable magic link per email.
type fakeSessions struct {
	mu     sync.Mutex
	issued []string
}

func (s *fakeSessions) IssueSession(ctx context.Context, email, redirectTo string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued = append(s.issued, email)
	return fmt.Sprintf("https://ref.supabase.co/auth/v1/verify?email=%s&redirect_to=%s", email, redirectTo), nil
}

// fakeProvider stands in for LINE Login and counts outbound calls.
type fakeProvider struct {
	mu        sync.Mutex
	profile   entity.LineProfile
	exchanges int
	exchErr   error
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://access.line.me/oauth2/v2.1/authorize?state=" + state
}

func (p *fakeProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exchanges++
	if p.exchErr != nil {
		return nil, p.exchErr
	}
	return &oauth2.Token{AccessToken: "at-" + code}, nil
}

func (p *fakeProvider) GetProfile(ctx context.Context, tok *oauth2.Token) (*entity.LineProfile, error) {
	profile := p.profile
	return &profile, nil
}

func (p *fakeProvider) exchangeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exchanges
}

type pushed struct {
	to   string
	text string
}

// fakePusher records pushes instead of calling LINE.
type fakePusher struct {
	mu     sync.Mutex
	pushes []pushed
	err    error
}

func (p *fakePusher) PushText(ctx context.Context, to, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.pushes = append(p.pushes, pushed{to: to, text: text})
	return nil
}
