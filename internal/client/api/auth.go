// Package api wraps the remote endpoints in typed operations. It holds no
// state of its own: session and cache packages own the state that these
// calls feed.
package api

import (
	"context"
	"time"

	"github.com/dverenev/priceadmin/internal/client/models"
	"github.com/dverenev/priceadmin/internal/client/transport"
)

const (
	epLogin   = "/auth/login"
	epVerify  = "/auth/verify"
	epProfile = "/auth/profile"
	epLogout  = "/auth/logout"
	epRefresh = "/auth/refresh"
)

// AuthAPI talks to the /auth endpoints.
type AuthAPI struct {
	t *transport.Client
}

func NewAuthAPI(t *transport.Client) *AuthAPI {
	return &AuthAPI{t: t}
}

type sendCodeRequest struct {
	Email string `json:"email"`
}

type sendCodeResponse struct {
	Message string `json:"message"`
}

// SendVerificationCode asks the server to email a one-time code. Returns the
// confirmation message to show the user.
func (a *AuthAPI) SendVerificationCode(ctx context.Context, email string) (string, error) {
	var out sendCodeResponse
	env, err := a.t.Post(ctx, epLogin, sendCodeRequest{Email: email}, &out, nil)
	if err != nil {
		return "", err
	}
	if out.Message != "" {
		return out.Message, nil
	}
	return env.Message, nil
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyResult is the payload of a successful code redemption.
type VerifyResult struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// VerifyCode redeems email+code for a session token and identity record.
func (a *AuthAPI) VerifyCode(ctx context.Context, email, code string) (*VerifyResult, error) {
	var out VerifyResult
	if _, err := a.t.Post(ctx, epVerify, verifyRequest{Email: email, Code: code}, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the identity record for the current token.
func (a *AuthAPI) Profile(ctx context.Context) (*models.User, error) {
	var out models.User
	if _, err := a.t.Get(ctx, epProfile, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout invalidates the session server-side.
func (a *AuthAPI) Logout(ctx context.Context) error {
	_, err := a.t.Post(ctx, epLogout, nil, nil, nil)
	return err
}

type refreshResponse struct {
	Token string `json:"token"`
}

// Refresh exchanges the current token for a new one.
func (a *AuthAPI) Refresh(ctx context.Context) (string, error) {
	var out refreshResponse
	if _, err := a.t.Post(ctx, epRefresh, nil, &out, nil); err != nil {
		return "", err
	}
	return out.Token, nil
}
