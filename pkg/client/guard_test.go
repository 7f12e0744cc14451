package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stayloop/hotel-booking/pkg/model"
)

func TestGuardRoute(t *testing.T) {
	userSess := Session{UserID: 1, Email: "a@b.com", Role: model.RoleUser}
	operatorSess := Session{UserID: 2, Email: "op@b.com", Role: model.RoleOperator}

	tests := []struct {
		name         string
		state        SessionState
		sess         Session
		requiredRole string
		wantAction   GuardAction
		wantRedirect string
	}{
		{"loading waits", SessionLoading, Session{}, model.RoleUser, GuardWait, ""},
		{"anonymous redirects to login", SessionAnonymous, Session{}, model.RoleUser, GuardRedirect, "/login"},
		{"user allowed into user view", SessionAuthenticated, userSess, model.RoleUser, GuardAllow, ""},
		{"operator allowed into operator view", SessionAuthenticated, operatorSess, model.RoleOperator, GuardAllow, ""},
		{"user bounced from operator view to user home", SessionAuthenticated, userSess, model.RoleOperator, GuardRedirect, "/"},
		{"operator bounced from user view to operator home", SessionAuthenticated, operatorSess, model.RoleUser, GuardRedirect, "/operator"},
		{"user allowed into role-free view", SessionAuthenticated, userSess, "", GuardAllow, ""},
		{"operator allowed into role-free view", SessionAuthenticated, operatorSess, "", GuardAllow, ""},
		{"anonymous still redirected from role-free view", SessionAnonymous, Session{}, "", GuardRedirect, "/login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GuardRoute(tt.state, tt.sess, tt.requiredRole)
			assert.Equal(t, tt.wantAction, got.Action)
			assert.Equal(t, tt.wantRedirect, got.Redirect)
		})
	}
}

// A non-operator session navigating to an operator view must never be allowed
// through, whatever its role string says.
func TestGuardRoute_NeverAllowsWrongRole(t *testing.T) {
	for _, role := range []string{model.RoleUser, "admin", "", "OPERATOR"} {
		got := GuardRoute(SessionAuthenticated, Session{UserID: 9, Role: role}, model.RoleOperator)
		assert.NotEqual(t, GuardAllow, got.Action, "role %q must not enter operator views", role)
	}
}

func TestGuardRoute_Deterministic(t *testing.T) {
	sess := Session{UserID: 1, Role: model.RoleUser}
	first := GuardRoute(SessionAuthenticated, sess, model.RoleOperator)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, GuardRoute(SessionAuthenticated, sess, model.RoleOperator))
	}
}

func TestGuardGuest(t *testing.T) {
	assert.Equal(t, GuardWait, GuardGuest(SessionLoading, Session{}).Action)
	assert.Equal(t, GuardAllow, GuardGuest(SessionAnonymous, Session{}).Action)

	got := GuardGuest(SessionAuthenticated, Session{Role: model.RoleOperator})
	assert.Equal(t, GuardRedirect, got.Action)
	assert.Equal(t, "/operator", got.Redirect)

	got = GuardGuest(SessionAuthenticated, Session{Role: model.RoleUser})
	assert.Equal(t, GuardRedirect, got.Action)
	assert.Equal(t, "/", got.Redirect)
}
