package client

import (
	"context"
	"errors"
	"sync"

	"github.com/stayloop/hotel-booking/pkg/model"
)

// SessionState describes what the store currently knows about the session.
type SessionState int

const (
	// SessionLoading means a persisted token is being resolved; guards
	// should wait rather than redirect.
	SessionLoading SessionState = iota
	SessionAnonymous
	SessionAuthenticated
)

// Session is the authenticated identity a SessionStore holds.
type Session struct {
	UserID uint64
	Email  string
	Role   string
}

// Home is the navigation target for this session's role.
func (s Session) Home() string {
	return model.RoleHome(s.Role)
}

// SessionStore tracks the current session. A store built over a token store
// that holds a persisted token starts in SessionLoading until Rehydrate
// resolves the token against the server; everything else starts anonymous.
type SessionStore struct {
	client *Client

	mu      sync.RWMutex
	state   SessionState
	session Session
}

// NewSessionStore wires a store to the client. When the client's token store
// holds a token the state starts as SessionLoading and the caller should run
// Rehydrate; otherwise the store starts anonymous.
func NewSessionStore(c *Client) *SessionStore {
	s := &SessionStore{client: c, state: SessionAnonymous}
	if token, err := c.Tokens.Load(); err == nil && token != "" {
		s.state = SessionLoading
	}
	return s
}

// Rehydrate resolves a persisted token into a session via the server. An
// invalid or expired token clears the store back to anonymous; transport
// failures leave the persisted token in place and return the error with the
// state set to anonymous for this process.
func (s *SessionStore) Rehydrate(ctx context.Context) error {
	token, err := s.client.Tokens.Load()
	if err != nil || token == "" {
		s.setAnonymous()
		return err
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			_ = s.client.Tokens.Clear()
		}
		s.setAnonymous()
		return err
	}

	s.mu.Lock()
	s.state = SessionAuthenticated
	s.session = Session{UserID: user.ID, Email: user.Email, Role: user.Role}
	s.mu.Unlock()
	return nil
}

// Login authenticates and installs the resulting session.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*AuthSession, error) {
	auth, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.state = SessionAuthenticated
	s.session = Session{UserID: auth.User.ID, Email: auth.User.Email, Role: auth.User.Role}
	s.mu.Unlock()
	return auth, nil
}

// Logout revokes the session and resets the store to anonymous regardless of
// whether the server call succeeded.
func (s *SessionStore) Logout(ctx context.Context, refreshToken string) error {
	err := s.client.Logout(ctx, refreshToken)
	s.setAnonymous()
	return err
}

// Current returns the store's state and, when authenticated, the session.
func (s *SessionStore) Current() (SessionState, Session) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.session
}

func (s *SessionStore) setAnonymous() {
	s.mu.Lock()
	s.state = SessionAnonymous
	s.session = Session{}
	s.mu.Unlock()
}
