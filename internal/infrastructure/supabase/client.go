package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"nailstudio/internal/domain/entity"
	"nailstudio/internal/domain/repository"
	appErrors "nailstudio/internal/pkg/errors"
	"nailstudio/internal/pkg/logger"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	adminUsersPath   = "/auth/v1/admin/users"
	generateLinkPath = "/auth/v1/admin/generate_link"

	duplicateEmailMsg = "A user with this email address has already been registered"
)

// Client talks to the Supabase auth (GoTrue) admin API with the service role key.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	log        logger.Logger
}

var (
	_ repository.IdentityDirectory = (*Client)(nil)
	_ repository.SessionIssuer     = (*Client)(nil)
)

// NewClient creates an admin client. baseURL is the project URL (https://<ref>.supabase.co).
func NewClient(baseURL, serviceKey string, log logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

type adminUserParams struct {
	Email        string                 `json:"email,omitempty"`
	Password     string                 `json:"password,omitempty"`
	EmailConfirm bool                   `json:"email_confirm,omitempty"`
	UserMetaData map[string]interface{} `json:"user_metadata,omitempty"`
}

type user struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetaData map[string]interface{} `json:"user_metadata"`
}

func (u *user) toEntity() *entity.Identity {
	return &entity.Identity{ID: u.ID, Email: u.Email, UserMetadata: u.UserMetaData}
}

type listUsersResponse struct {
	Users []*user `json:"users"`
	Aud   string  `json:"aud"`
}

type generateLinkParams struct {
	Type       string `json:"type"`
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

type generateLinkResponse struct {
	ActionLink       string `json:"action_link"`
	VerificationType string `json:"verification_type"`
	RedirectTo       string `json:"redirect_to"`
	// Older releases nest link fields under properties.
	Properties *struct {
		ActionLink string `json:"action_link"`
	} `json:"properties"`
}

// apiError is the error body GoTrue returns.
type apiError struct {
	Code             int    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e *apiError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// StatusError is returned for any non-2xx answer from the admin API.
type StatusError struct {
	Status    int
	ErrorCode string
	Message   string
}

func (e *StatusError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("supabase auth: %d %s: %s", e.Status, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("supabase auth: %d: %s", e.Status, e.Message)
}

func (e *StatusError) alreadyExists() bool {
	if e.ErrorCode == "email_exists" || e.ErrorCode == "user_already_exists" {
		return true
	}
	return e.Status == http.StatusUnprocessableEntity && strings.Contains(e.Message, duplicateEmailMsg)
}

// CreateIdentity creates a user. A duplicate email yields appErrors.ErrIdentityExists.
func (c *Client) CreateIdentity(ctx context.Context, params repository.CreateIdentityParams) (*entity.Identity, error) {
	body := adminUserParams{
		Email:        params.Email,
		Password:     params.Password,
		EmailConfirm: params.EmailConfirm,
		UserMetaData: params.UserMetadata,
	}
	var u user
	if err := c.do(ctx, http.MethodPost, adminUsersPath, nil, body, &u); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.alreadyExists() {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrIdentityExists, se.Message)
		}
		return nil, fmt.Errorf("%w: create user: %v", appErrors.ErrUpstreamProvider, err)
	}
	c.log.Debug(fmt.Sprintf("Created auth user %s", u.ID))
	return u.toEntity(), nil
}

// ListIdentities returns one page of users.
func (c *Client) ListIdentities(ctx context.Context, page, perPage int) ([]*entity.Identity, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var resp listUsersResponse
	if err := c.do(ctx, http.MethodGet, adminUsersPath, q, nil, &resp); err != nil {
		return nil, fmt.Errorf("%w: list users failed: %v", appErrors.ErrUpstreamProvider, err)
	}
	out := make([]*entity.Identity, 0, len(resp.Users))
	for _, u := range resp.Users {
		out = append(out, u.toEntity())
	}
	return out, nil
}

// GetIdentityByID loads one user. A 404 yields appErrors.ErrUserNotFound.
func (c *Client) GetIdentityByID(ctx context.Context, id string) (*entity.Identity, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty user id", appErrors.ErrUserNotFound)
	}
	var u user
	if err := c.do(ctx, http.MethodGet, adminUsersPath+"/"+url.PathEscape(id), nil, nil, &u); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", appErrors.ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("%w: get user %s: %v", appErrors.ErrUpstreamProvider, id, err)
	}
	return u.toEntity(), nil
}

// UpdateIdentityMetadata replaces the user's user_metadata.
func (c *Client) UpdateIdentityMetadata(ctx context.Context, id string, metadata map[string]interface{}) (*entity.Identity, error) {
	var u user
	body := adminUserParams{UserMetaData: metadata}
	if err := c.do(ctx, http.MethodPut, adminUsersPath+"/"+url.PathEscape(id), nil, body, &u); err != nil {
		return nil, fmt.Errorf("%w: update user %s: %v", appErrors.ErrUpstreamProvider, id, err)
	}
	return u.toEntity(), nil
}

// IssueSession generates a magic link for email that lands on redirectTo once verified.
func (c *Client) IssueSession(ctx context.Context, email, redirectTo string) (string, error) {
	body := generateLinkParams{Type: "magiclink", Email: email, RedirectTo: redirectTo}
	var resp generateLinkResponse
	if err := c.do(ctx, http.MethodPost, generateLinkPath, nil, body, &resp); err != nil {
		return "", fmt.Errorf("%w: failed to generate login link: %v", appErrors.ErrUpstreamProvider, err)
	}
	link := resp.ActionLink
	if link == "" && resp.Properties != nil {
		link = resp.Properties.ActionLink
	}
	if link == "" {
		return "", fmt.Errorf("%w: generate_link returned no action_link", appErrors.ErrUpstreamProvider)
	}
	return link, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		se := &StatusError{Status: res.StatusCode, Message: strings.TrimSpace(string(raw))}
		var ae apiError
		if json.Unmarshal(raw, &ae) == nil {
			se.ErrorCode = ae.ErrorCode
			if t := ae.text(); t != "" {
				se.Message = t
			}
		}
		c.log.Debug(fmt.Sprintf("Supabase auth %s %s returned %d", method, path, res.StatusCode))
		return se
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
