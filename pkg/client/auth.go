package client

import (
	"context"
	"time"
)

// UserInfo is the identity slice of a session: enough to greet the user and
// to route by role.
type UserInfo struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthSession is what the server returns from register, login and refresh.
type AuthSession struct {
	Token          string    `json:"token"`
	TokenExpires   time.Time `json:"tokenExpires"`
	RefreshToken   string    `json:"refreshToken"`
	RefreshExpires time.Time `json:"refreshExpires"`
	User           UserInfo  `json:"user"`
}

// RegisterInput is validated before any request is sent: operator accounts
// must carry the register code, caught client-side.
type RegisterInput struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Role         string `json:"role" validate:"required,oneof=user operator"`
	RegisterCode string `json:"registerCode" validate:"required_if=Role operator"`
}

// Register creates an account, stores the returned bearer token and returns
// the full session.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*AuthSession, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}
	var sess AuthSession
	if err := c.post(ctx, "/api/auth/register", in, &sess); err != nil {
		return nil, err
	}
	if err := c.Tokens.Save(sess.Token); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Login authenticates, stores the bearer token and returns the session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthSession, error) {
	body := map[string]string{"email": email, "password": password}
	var sess AuthSession
	if err := c.post(ctx, "/api/auth/login", body, &sess); err != nil {
		return nil, err
	}
	if err := c.Tokens.Save(sess.Token); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Refresh exchanges a refresh token for a new session and stores the new
// bearer token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthSession, error) {
	body := map[string]string{"refreshToken": refreshToken}
	var sess AuthSession
	if err := c.post(ctx, "/api/auth/refresh", body, &sess); err != nil {
		return nil, err
	}
	if err := c.Tokens.Save(sess.Token); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Logout revokes the session server-side and clears the stored token. The
// local token is cleared even when the server call fails so the client never
// keeps a token it tried to discard.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	var body any
	if refreshToken != "" {
		body = map[string]string{"refreshToken": refreshToken}
	}
	err := c.post(ctx, "/api/auth/logout", body, nil)
	if clearErr := c.Tokens.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// ChangePassword rotates the password. The server revokes all refresh
// tokens, so callers should expect to log in again afterwards.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.post(ctx, "/api/auth/change-password", body, nil)
}

// Me resolves the stored bearer token to the user it belongs to. Used by
// SessionStore to rehydrate a persisted session.
func (c *Client) Me(ctx context.Context) (*UserInfo, error) {
	var resp struct {
		User UserInfo `json:"user"`
	}
	if err := c.get(ctx, "/api/auth/me", &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
