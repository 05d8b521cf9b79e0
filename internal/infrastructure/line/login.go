package line

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"nailstudio/internal/domain/entity"
	appErrors "nailstudio/internal/pkg/errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	authorizePath = "/oauth2/v2.1/authorize"
	tokenPath     = "/oauth2/v2.1/token"
	profilePath   = "/v2/profile"
)

// LoginScopes is the fixed scope requested on authorize: profile claims only.
var LoginScopes = []string{"profile", "openid"}

// LoginConfig configures the LINE Login channel.
type LoginConfig struct {
	ChannelID     string
	ChannelSecret string
	RedirectURI   string
	AuthBaseURL   string
	APIBaseURL    string
}

// LoginProvider performs the LINE Login authorization code flow.
type LoginProvider struct {
	oauth      *oauth2.Config
	profileURL string
	httpClient *http.Client
}

// NewLoginProvider builds the oauth2 configuration for LINE Login.
// Client credentials go in the token request body, as LINE expects.
func NewLoginProvider(cfg LoginConfig) *LoginProvider {
	authBase := strings.TrimRight(cfg.AuthBaseURL, "/")
	apiBase := strings.TrimRight(cfg.APIBaseURL, "/")
	return &LoginProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ChannelID,
			ClientSecret: cfg.ChannelSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authBase + authorizePath,
				TokenURL:  apiBase + tokenPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			RedirectURL: cfg.RedirectURI,
			Scopes:      LoginScopes,
		},
		profileURL: apiBase + profilePath,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthCodeURL returns the authorize URL carrying response_type=code, client id,
// redirect URI, state and scope.
func (p *LoginProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token.
// A rejection by LINE surfaces its error_description.
func (p *LoginProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := p.oauth.Exchange(p.withClient(ctx), code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			msg := re.ErrorDescription
			if msg == "" {
				msg = "Failed to exchange token"
			}
			return nil, fmt.Errorf("%w: %s", appErrors.ErrUpstreamProvider, msg)
		}
		return nil, fmt.Errorf("%w: failed to exchange token: %v", appErrors.ErrUpstreamProvider, err)
	}
	return tok, nil
}

// GetProfile fetches the logged-in user's profile with the access token.
func (p *LoginProvider) GetProfile(ctx context.Context, tok *oauth2.Token) (*entity.LineProfile, error) {
	client := p.oauth.Client(p.withClient(ctx), tok)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		return nil, err
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch profile: %v", appErrors.ErrUpstreamProvider, err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch profile: %d %s", appErrors.ErrUpstreamProvider, res.StatusCode, strings.TrimSpace(string(body)))
	}

	var profile entity.LineProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("%w: decode profile: %v", appErrors.ErrUpstreamProvider, err)
	}
	if profile.UserID == "" {
		return nil, fmt.Errorf("%w: profile has no userId", appErrors.ErrUpstreamProvider)
	}
	return &profile, nil
}

func (p *LoginProvider) withClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}
