package devserver

import (
	"encoding/json"
	"net/http"
	"time"
)

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// handleLogin issues a verification code for the given email. The code is
// written to the server log; a real deployment would email it.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	s.store.userByEmail(req.Email)

	code, err := s.codes.issue(req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue verification code")
		return
	}
	s.log.Info(r.Context(), "verification code issued", "email", req.Email, "code", code)

	respondMessage(w, http.StatusOK, nil, "Verification code sent! Check your email.")
}

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type verifyResponse struct {
	User      *user     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleVerify redeems a pending code for a session token.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "email and a six-digit code are required")
		return
	}

	if err := s.codes.redeem(req.Email, req.Code); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid or expired verification code")
		return
	}

	s.store.markVerified(req.Email)
	u := s.store.userByEmail(req.Email)

	token, expiresAt, err := generateToken(u.ID, s.secret, s.tokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue session token")
		return
	}

	respondData(w, http.StatusOK, verifyResponse{User: u, Token: token, ExpiresAt: expiresAt})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	u := s.store.userByID(userIDFromContext(r.Context()))
	if u == nil {
		respondError(w, http.StatusUnauthorized, "unknown user")
		return
	}
	respondData(w, http.StatusOK, u)
}

// handleLogout acknowledges the logout. Tokens are stateless, so there is
// nothing to revoke here; the client discards its copy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	respondMessage(w, http.StatusOK, nil, "Logged out.")
}

type refreshResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	token, expiresAt, err := generateToken(userID, s.secret, s.tokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to issue session token")
		return
	}
	respondData(w, http.StatusOK, refreshResponse{Token: token, ExpiresAt: expiresAt})
}
