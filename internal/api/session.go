package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNoSession is returned when an authenticated call is attempted
// without a stored session token
var ErrNoSession = errors.New("no active session: run 'login' first")

// Session represents a persisted login session
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	User      string    `json:"user,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionManager manages the login session lifecycle: it loads the
// session from disk on startup, hands the bearer token to the client,
// and persists new sessions after login.
type SessionManager struct {
	mu          sync.RWMutex
	sessionFile string
	session     *Session
	logger      *zap.Logger
}

// NewSessionManager creates a new session manager
func NewSessionManager(sessionFile string, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		sessionFile: sessionFile,
		logger:      logger,
	}
}

// Load loads the session from file. A missing file is not an error;
// the manager simply has no session until the next login.
func (sm *SessionManager) Load() error {
	data, err := os.ReadFile(sm.sessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	sm.mu.Lock()
	sm.session = &session
	sm.mu.Unlock()

	sm.logger.Info("Session loaded",
		zap.String("email", session.Email),
		zap.Time("expires_at", session.ExpiresAt))

	return nil
}

// Save persists the current session to file
func (sm *SessionManager) Save() error {
	sm.mu.RLock()
	session := sm.session
	sm.mu.RUnlock()

	if session == nil {
		return fmt.Errorf("no session to save")
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(sm.sessionFile), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	// 0600: the file holds a bearer token
	if err := os.WriteFile(sm.sessionFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	sm.logger.Info("Session saved",
		zap.String("email", session.Email))

	return nil
}

// SetSession stores a freshly obtained session and persists it
func (sm *SessionManager) SetSession(session *Session) error {
	sm.mu.Lock()
	sm.session = session
	sm.mu.Unlock()

	return sm.Save()
}

// Clear drops the session and removes the session file
func (sm *SessionManager) Clear() error {
	sm.mu.Lock()
	sm.session = nil
	sm.mu.Unlock()

	if err := os.Remove(sm.sessionFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}

	sm.logger.Info("Session cleared")
	return nil
}

// Token returns the current bearer token. It fails before any network
// call is made when no session exists or the session has expired.
func (sm *SessionManager) Token() (string, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if sm.session == nil || sm.session.Token == "" {
		return "", ErrNoSession
	}

	if !sm.session.ExpiresAt.IsZero() && time.Now().After(sm.session.ExpiresAt) {
		return "", fmt.Errorf("session expired at %s: %w",
			sm.session.ExpiresAt.Format(time.RFC3339), ErrNoSession)
	}

	return sm.session.Token, nil
}

// Current returns the active session, or nil when logged out
func (sm *SessionManager) Current() *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.session
}
