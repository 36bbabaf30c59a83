package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/parkwise/parking-client/internal/core/domain"
	"github.com/parkwise/parking-client/internal/core/ports"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// credentialResponse is the envelope returned by login and register.
type credentialResponse struct {
	Message      string              `json:"message,omitempty"`
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token"`
	User         *domain.UserSummary `json:"user"`
}

// Login authenticates against the requested role's account space and persists
// the returned credential. The role reported by the server wins; the requested
// role only fills the gap when the server omits it.
func (c *Client) Login(ctx context.Context, username, password, role string) (domain.Credential, error) {
	if role == "" {
		role = domain.RoleUser
	}

	var out credentialResponse
	err := c.d.SendJSON(ctx, http.MethodPost, "/auth/login", loginRequest{
		Username: username,
		Password: password,
		Role:     role,
	}, &out)
	if err != nil {
		return domain.Credential{}, err
	}

	cred := credentialFrom(out, role)
	if err := c.creds.Set(cred); err != nil {
		return domain.Credential{}, fmt.Errorf("persist credential: %w", err)
	}
	c.log.Info().Str("username", username).Str("role", cred.Role()).Msg("logged in")
	return cred, nil
}

// Register creates a new end-user account. The server logs the account in
// immediately; the returned credential is persisted like a login.
func (c *Client) Register(ctx context.Context, input ports.RegisterInput) (domain.Credential, error) {
	var out credentialResponse
	if err := c.d.SendJSON(ctx, http.MethodPost, "/auth/register", input, &out); err != nil {
		return domain.Credential{}, err
	}

	cred := credentialFrom(out, domain.RoleUser)
	if err := c.creds.Set(cred); err != nil {
		return domain.Credential{}, fmt.Errorf("persist credential: %w", err)
	}
	c.log.Info().Str("username", input.Username).Msg("registered")
	return cred, nil
}

// Logout revokes the access token server-side and clears the stored
// credential. The clear happens even when the revocation call fails — local
// state must never outlive the user's intent to leave.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.d.SendJSON(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		c.log.Warn().Err(err).Msg("server-side logout failed")
	}
	if err := c.creds.Clear(); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

func credentialFrom(resp credentialResponse, fallbackRole string) domain.Credential {
	user := resp.User
	if user != nil && user.Role == "" {
		user.Role = fallbackRole
	}
	return domain.Credential{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         user,
	}
}
