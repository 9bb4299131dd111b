// Package session is the single source of truth for "who is logged in".
// It drives the two-step challenge flow (request a one-time code by email,
// redeem the code for a session token), keeps the token persisted, and
// reacts to 401-class failures by clearing local state.
//
// All session mutation goes through the Manager; no other component writes
// session state.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dverenev/priceadmin/internal/client/api"
	"github.com/dverenev/priceadmin/internal/client/models"
	"github.com/dverenev/priceadmin/internal/client/notify"
	"github.com/dverenev/priceadmin/internal/client/transport"
	"github.com/dverenev/priceadmin/internal/common"
	"github.com/dverenev/priceadmin/internal/logging"
	"github.com/dverenev/priceadmin/internal/validation"
)

// AuthAPI is the remote surface the Manager depends on. *api.AuthAPI
// satisfies it; tests provide a fake.
type AuthAPI interface {
	SendVerificationCode(ctx context.Context, email string) (string, error)
	VerifyCode(ctx context.Context, email, code string) (*api.VerifyResult, error)
	Profile(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) (string, error)
}

// TokenStore persists the opaque session token between runs.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Notifier is the slice of the notification center the Manager uses.
type Notifier interface {
	Successf(msg string) notify.Toast
	Errorf(msg string) notify.Toast
	Warningf(msg string) notify.Toast
	Infof(msg string) notify.Toast
}

// Snapshot is a consistent read of the session state.
type Snapshot struct {
	User            *models.User
	IsAuthenticated bool
	IsLoading       bool
	IsInitialized   bool
}

// Manager holds session state behind a mutex. Construct with New, then call
// Init once at startup; the Manager performs the initial auth check there.
type Manager struct {
	auth   AuthAPI
	tokens TokenStore
	notes  Notifier
	log    logging.Logger

	initOnce sync.Once

	mu            sync.Mutex
	user          *models.User
	authenticated bool
	loading       bool
	initialized   bool
	pendingEmail  string
}

func New(auth AuthAPI, tokens TokenStore, notes Notifier, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{auth: auth, tokens: tokens, notes: notes, log: log}
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	var user *models.User
	if m.user != nil {
		u := *m.user
		user = &u
	}
	return Snapshot{
		User:            user,
		IsAuthenticated: m.authenticated,
		IsLoading:       m.loading,
		IsInitialized:   m.initialized,
	}
}

// PendingEmail returns the email a verification code was last sent to, or ""
// when no code exchange is in progress.
func (m *Manager) PendingEmail() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingEmail
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// Init runs the startup auth check exactly once. Safe to call repeatedly.
func (m *Manager) Init(ctx context.Context) {
	m.initOnce.Do(func() {
		if err := m.CheckStatus(ctx); err != nil {
			m.log.Error(ctx, "startup auth check failed", "error", err)
		}
	})
}

// CheckStatus resolves the UNINITIALIZED state: a persisted token whose
// profile fetch succeeds means authenticated; anything else means not.
// Idempotent: without intervening state changes, repeated calls agree.
func (m *Manager) CheckStatus(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	token, err := m.tokens.Token(ctx)
	if err != nil {
		m.becomeUnauthenticated(ctx, false)
		return fmt.Errorf("failed to read stored token: %w", err)
	}
	if token == "" {
		m.becomeUnauthenticated(ctx, false)
		return nil
	}

	user, err := m.auth.Profile(ctx)
	if err != nil {
		// Stored token is invalid or expired.
		m.becomeUnauthenticated(ctx, true)
		m.log.Warn(ctx, "stored token rejected", "error", err)
		return nil
	}

	m.mu.Lock()
	m.user = user
	m.authenticated = true
	m.initialized = true
	m.mu.Unlock()
	return nil
}

func (m *Manager) becomeUnauthenticated(ctx context.Context, clearToken bool) {
	if clearToken {
		if err := m.tokens.ClearToken(ctx); err != nil {
			m.log.Error(ctx, "failed to clear stored token", "error", err)
		}
	}
	m.mu.Lock()
	m.user = nil
	m.authenticated = false
	m.initialized = true
	m.mu.Unlock()
}

// RequestCode validates the email locally, then asks the server to send a
// one-time code. Session state is left unchanged either way.
func (m *Manager) RequestCode(ctx context.Context, email string) error {
	if !validation.ValidEmail(email) {
		return fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}

	m.setLoading(true)
	defer m.setLoading(false)

	msg, err := m.auth.SendVerificationCode(ctx, email)
	if err != nil {
		m.notes.Errorf(userMessage(err, "Failed to send verification code. Please try again."))
		return err
	}

	m.mu.Lock()
	m.pendingEmail = email
	m.mu.Unlock()

	if msg == "" {
		msg = "Verification code sent! Check your email."
	}
	m.notes.Successf(msg)
	return nil
}

// RedeemCode exchanges email+code for a session token. The code is
// normalized the way the input field does it: non-digits stripped,
// truncated to six characters. On failure the session stays
// unauthenticated and the entered code is left for correction.
func (m *Manager) RedeemCode(ctx context.Context, email, code string) error {
	if !validation.ValidEmail(email) {
		return fmt.Errorf("%w: invalid email address", common.ErrorValidation)
	}
	code = validation.NormalizeCode(code)
	if !validation.ValidCode(code) {
		return fmt.Errorf("%w: code must be exactly 6 digits", common.ErrorValidation)
	}

	m.setLoading(true)
	defer m.setLoading(false)

	res, err := m.auth.VerifyCode(ctx, email, code)
	if err != nil {
		m.notes.Errorf(userMessage(err, "Invalid verification code. Please try again."))
		return err
	}

	if err := m.tokens.SetToken(ctx, res.Token); err != nil {
		m.notes.Errorf("Failed to store session. Please try again.")
		return fmt.Errorf("failed to persist token: %w", err)
	}

	m.mu.Lock()
	user := res.User
	m.user = &user
	m.authenticated = true
	m.initialized = true
	m.pendingEmail = ""
	m.mu.Unlock()

	m.notes.Successf("Login successful! Welcome back.")
	return nil
}

// Logout ends the session. The remote call is best-effort: local state and
// the stored token are always cleared, because the user's intent to log out
// must be honored locally.
func (m *Manager) Logout(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	remoteErr := m.auth.Logout(ctx)

	m.becomeUnauthenticated(ctx, true)

	if remoteErr != nil {
		m.log.Warn(ctx, "remote logout failed", "error", remoteErr)
		m.notes.Warningf("Logout completed locally.")
		return nil
	}

	m.notes.Infof("You have been logged out successfully.")
	return nil
}

// RefreshProfile re-fetches the identity record. A 401 forces a logout.
// No-op while unauthenticated.
func (m *Manager) RefreshProfile(ctx context.Context) error {
	m.mu.Lock()
	authenticated := m.authenticated
	m.mu.Unlock()
	if !authenticated {
		return nil
	}

	user, err := m.auth.Profile(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to refresh profile", "error", err)
		if transport.IsUnauthorized(err) {
			return m.Logout(ctx)
		}
		return err
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return nil
}

// Refresh exchanges the current token for a new one. Single attempt: on
// failure the session is cleared rather than retried.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	authenticated := m.authenticated
	m.mu.Unlock()
	if !authenticated {
		return common.ErrorUnauthorized
	}

	token, err := m.auth.Refresh(ctx)
	if err != nil {
		m.log.Warn(ctx, "token refresh failed, clearing session", "error", err)
		m.becomeUnauthenticated(ctx, true)
		m.notes.Errorf("Your session has expired. Please log in again.")
		return err
	}

	if err := m.tokens.SetToken(ctx, token); err != nil {
		return fmt.Errorf("failed to persist refreshed token: %w", err)
	}
	return nil
}

// StartProfileRefresh keeps the session warm with a periodic profile fetch
// while authenticated. Blocks until ctx is done; run it in a goroutine.
func (m *Manager) StartProfileRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := m.RefreshProfile(ctx); err != nil {
				m.log.Warn(ctx, "periodic profile refresh failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// userMessage prefers the server-provided message on transport errors.
func userMessage(err error, fallback string) string {
	var te *transport.Error
	if errors.As(err, &te) && te.Message != "" {
		return te.Message
	}
	return fallback
}
