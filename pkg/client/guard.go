package client

import "github.com/stayloop/hotel-booking/pkg/model"

// GuardDecision is the outcome of evaluating a navigation against the
// current session. Redirect decisions carry the target path.
type GuardDecision struct {
	Action   GuardAction
	Redirect string
}

type GuardAction int

const (
	// GuardWait means the session is still rehydrating; render nothing and
	// re-evaluate once the store settles.
	GuardWait GuardAction = iota
	GuardAllow
	GuardRedirect
)

// LoginPath is where unauthenticated navigations to protected views land.
const LoginPath = "/login"

// GuardRoute decides whether the current session may enter a view that
// requires the given role. An empty requiredRole admits any authenticated
// session. The decision is pure: it never mutates the store and the same
// inputs always produce the same outcome.
//
//	loading session  -> wait
//	no session       -> redirect to login
//	wrong role       -> redirect to the session's own role home
//	matching role    -> allow
func GuardRoute(state SessionState, sess Session, requiredRole string) GuardDecision {
	switch state {
	case SessionLoading:
		return GuardDecision{Action: GuardWait}
	case SessionAnonymous:
		return GuardDecision{Action: GuardRedirect, Redirect: LoginPath}
	}
	if requiredRole != "" && sess.Role != requiredRole {
		return GuardDecision{Action: GuardRedirect, Redirect: model.RoleHome(sess.Role)}
	}
	return GuardDecision{Action: GuardAllow}
}

// GuardGuest mirrors GuardRoute for views that only make sense without a
// session, like the login and register forms. An authenticated session is
// sent to its role home instead.
func GuardGuest(state SessionState, sess Session) GuardDecision {
	switch state {
	case SessionLoading:
		return GuardDecision{Action: GuardWait}
	case SessionAuthenticated:
		return GuardDecision{Action: GuardRedirect, Redirect: model.RoleHome(sess.Role)}
	}
	return GuardDecision{Action: GuardAllow}
}
