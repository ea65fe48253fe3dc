// ABOUTME: Session state for the leavectl client
// ABOUTME: Persists the bearer token in the XDG config directory across runs

package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/leavedesk/leavectl/internal/client"
)

const tokenFileName = "token"

// Session holds the bearer token and the current user profile. The token
// survives restarts via a file in the config directory; the profile is
// in-memory only and is refreshed together with the token, never
// independently.
//
// Token is read from request goroutines while the UI loop writes it, so
// access is mutex-guarded. Writers are the auth flow and logout only.
type Session struct {
	configDir string

	mu    sync.RWMutex
	token string
	user  *client.User
}

// New creates a session rooted at the given config directory.
func New(configDir string) *Session {
	return &Session{configDir: configDir}
}

func (s *Session) tokenFile() string {
	return filepath.Join(s.configDir, tokenFileName)
}

// Token returns the current bearer token, or "" when logged out.
// Implements client.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current user profile, or nil when none is loaded.
func (s *Session) User() *client.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAdmin reports whether the current user holds the admin role. The
// check reads live session state so callers re-evaluate it on every
// refresh rather than caching the answer.
func (s *Session) IsAdmin() bool {
	return s.User().IsAdmin()
}

// Restore loads a previously persisted token. It reports false when no
// token is stored; the caller is expected to fetch the profile next and
// call Clear on failure.
func (s *Session) Restore() bool {
	data, err := os.ReadFile(s.tokenFile())
	if err != nil {
		return false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return false
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return true
}

// SetToken stores the token in memory and on disk. The in-memory profile
// is dropped so it cannot outlive the token it belonged to.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	s.token = token
	s.user = nil
	s.mu.Unlock()

	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.tokenFile(), []byte(token), 0600)
}

// SetUser records the profile fetched for the current token.
func (s *Session) SetUser(user *client.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// Clear removes the durable token and resets the session to logged out.
// Removing the file first means a later start never attempts restoration.
func (s *Session) Clear() error {
	err := os.Remove(s.tokenFile())
	if os.IsNotExist(err) {
		err = nil
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	return err
}
