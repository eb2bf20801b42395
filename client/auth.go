package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bizcurrency/bizcli/auth"
	"github.com/rs/zerolog/log"
)

// AuthClient talks to the authentication endpoints. It deliberately uses a
// plain HTTP client rather than the authorizing Transport: the refresh
// exchange must never recurse into the refresh coordinator, and a rejected
// login must surface as bad credentials instead of triggering a retry of
// itself.
type AuthClient struct {
	cfg  Config
	http *http.Client
}

// NewAuthClient creates the login/refresh client for the given API.
func NewAuthClient(cfg Config) *AuthClient {
	return &AuthClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type tokenEnvelope struct {
	AccessToken                 string `json:"accessToken"`
	AccessTokenExpiresInMinutes int64  `json:"accessTokenExpiresInMinutes"`
	RefreshToken                string `json:"refreshToken"`
	RefreshTokenExpiresInHours  int64  `json:"refreshTokenExpiresInHours"`
}

type userSettings struct {
	UserID            string `json:"userId"`
	UserName          string `json:"userName"`
	OrganizationID    string `json:"organizationId"`
	OrganizationName  string `json:"organizationName"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	EmailAddress      string `json:"emailAddress"`
	BranchName        string `json:"branchName"`
	BaseCurrencyCode  string `json:"baseCurrencyCode"`
	PreferredLanguage string `json:"preferredLanguage"`
}

type authResponse struct {
	Tokens       *tokenEnvelope `json:"tokens"`
	UserSettings *userSettings  `json:"userSettings"`
	Problems     []Problem      `json:"problems"`
}

// Login exchanges the credentials for tokens and the user profile.
// Implements auth.Authenticator.
func (c *AuthClient) Login(ctx context.Context, username, password string) (auth.Identity, auth.TokenPair, error) {
	payload := map[string]any{
		"loginId":                             username,
		"password":                            password,
		"callerId":                            c.cfg.CallerID,
		"includeUserSettingsInResponse":       true,
		"includeAccessRightsWithUserSettings": false,
	}

	resp, err := c.post(ctx, endpointAuthenticate, payload)
	if err != nil {
		return auth.Identity{}, auth.TokenPair{}, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return auth.Identity{}, auth.TokenPair{}, auth.ErrAuthenticationFailed
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return auth.Identity{}, auth.TokenPair{}, fmt.Errorf("login: unexpected HTTP status %d", resp.StatusCode)
	}

	var body authResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return auth.Identity{}, auth.TokenPair{}, fmt.Errorf("%w: %v", auth.ErrMalformedResponse, err)
	}
	if len(body.Problems) > 0 {
		return auth.Identity{}, auth.TokenPair{}, fmt.Errorf("%w: %s", auth.ErrAuthenticationFailed, body.Problems[0].Description)
	}
	if body.Tokens == nil || body.Tokens.AccessToken == "" || body.Tokens.RefreshToken == "" || body.UserSettings == nil {
		return auth.Identity{}, auth.TokenPair{}, auth.ErrMalformedResponse
	}

	identity := body.UserSettings.toIdentity()
	pair := body.Tokens.toPair()
	log.Debug().Str("user", identity.UserName).Time("expires_at", pair.ExpiresAt).Msg("Authenticated")
	return identity, pair, nil
}

// Refresh exchanges the current token pair for a fresh one. Implements
// auth.RefreshExecutor. The call carries its own bounded timeout so a hung
// endpoint cannot hold the refresh flight open indefinitely.
func (c *AuthClient) Refresh(ctx context.Context, current auth.TokenPair) (auth.TokenPair, error) {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	payload := map[string]string{
		"accessToken":  current.AccessToken,
		"refreshToken": current.RefreshToken,
	}

	resp, err := c.post(ctx, endpointAuthRefresh, payload)
	if err != nil {
		return auth.TokenPair{}, fmt.Errorf("%w: %v", auth.ErrTransientFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized ||
		resp.StatusCode == http.StatusForbidden ||
		resp.StatusCode == http.StatusBadRequest:
		return auth.TokenPair{}, auth.ErrRefreshRejected
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return auth.TokenPair{}, fmt.Errorf("%w: HTTP status %d", auth.ErrTransientFailure, resp.StatusCode)
	}

	var body authResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return auth.TokenPair{}, fmt.Errorf("%w: %v", auth.ErrMalformedResponse, err)
	}
	if body.Tokens == nil || body.Tokens.AccessToken == "" || body.Tokens.RefreshToken == "" {
		return auth.TokenPair{}, auth.ErrMalformedResponse
	}
	return body.Tokens.toPair(), nil
}

func (c *AuthClient) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

func (t *tokenEnvelope) toPair() auth.TokenPair {
	return auth.TokenPair{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(t.AccessTokenExpiresInMinutes) * time.Minute),
	}
}

func (u *userSettings) toIdentity() auth.Identity {
	return auth.Identity{
		UserID:            u.UserID,
		UserName:          u.UserName,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		OrganizationID:    u.OrganizationID,
		OrganizationName:  u.OrganizationName,
		Email:             u.EmailAddress,
		BranchName:        u.BranchName,
		BaseCurrency:      u.BaseCurrencyCode,
		PreferredLanguage: u.PreferredLanguage,
	}
}
