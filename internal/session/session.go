package session

import (
	"sync"

	"github.com/schoolquest/tui/internal/credential"
	"github.com/schoolquest/tui/internal/model"
)

// Session is the explicit session service: it owns the authenticated
// user and the bearer token, is constructed once at startup, started
// at login, and cleared at logout. Nothing else holds ambient
// authentication state.
type Session struct {
	mu    sync.RWMutex
	user  *model.User
	token string
}

// New creates an empty (logged out) session.
func New() *Session {
	return &Session{}
}

// Restore loads a previously stored token from the system keyring.
// It reports whether a token was found; the caller still has to
// validate it against the API before trusting it.
func (s *Session) Restore() bool {
	tok, err := credential.Get(credential.TokenKey)
	if err != nil || tok == "" {
		return false
	}

	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
	return true
}

// AdoptToken installs a freshly issued token before the user profile
// has been fetched. Nothing is persisted until Start confirms the
// token works.
func (s *Session) AdoptToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Start activates the session with the given user and token and
// persists the token to the keyring.
func (s *Session) Start(user model.User, token string) {
	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	// Keyring failures are non-fatal: the session still works, it just
	// won't survive a restart.
	_ = credential.Set(credential.TokenKey, token)
}

// SetUser replaces the cached user (e.g. after a profile refresh).
func (s *Session) SetUser(user model.User) {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// Clear wipes the session and removes the stored token. It is the
// single teardown path for logout and forced auth loss.
func (s *Session) Clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	_ = credential.Delete(credential.TokenKey)
}

// Token returns the current bearer token, or "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the authenticated user, or nil when logged out.
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Active reports whether a user is logged in.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}
