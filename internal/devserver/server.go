package devserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/dverenev/priceadmin/internal/common"
	"github.com/dverenev/priceadmin/internal/logging"
)

const defaultTokenTTL = 24 * time.Hour

type ctxKey string

const ctxKeyUserID ctxKey = "userID"

// Options configures a Server.
type Options struct {
	// Secret signs session tokens. Required.
	Secret []byte
	// TokenTTL bounds issued session tokens. Defaults to 24h.
	TokenTTL time.Duration
	// CodeTTL bounds pending verification codes. Defaults to 10m.
	CodeTTL time.Duration
	Logger  logging.Logger
}

// Server is the in-memory development backend.
type Server struct {
	store    *store
	codes    *codeIssuer
	secret   []byte
	tokenTTL time.Duration
	log      logging.Logger
	validate *validator.Validate
	router   chi.Router
}

func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	tokenTTL := opts.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}

	s := &Server{
		store:    newStore(),
		codes:    newCodeIssuer(opts.CodeTTL),
		secret:   opts.Secret,
		tokenTTL: tokenTTL,
		log:      log,
		validate: validator.New(),
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/verify", s.handleVerify)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/profile", s.handleProfile)
			r.Post("/logout", s.handleLogout)
			r.Post("/refresh", s.handleRefresh)
		})
	})

	r.Route("/price-lists", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Get("/check-name", s.handleCheckName)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})

	return r
}

// requireAuth rejects requests without a valid bearer token and stores the
// authenticated user id in the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			respondError(w, http.StatusUnauthorized, "missing token")
			return
		}

		userID, err := userIDFromToken(strings.TrimPrefix(header, common.BearerPrefix), s.secret)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyUserID).(string)
	return id
}
