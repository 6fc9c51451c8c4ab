package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/http/handlers"
	"github.com/mauv0809/padel-draw/internal/role"
	"github.com/slack-go/slack"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	roleKey contextKey = "role"
)

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		// Handle 'dry_run' and add it to the request context.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), handlers.DryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func isDryRunFromContext(r *http.Request) bool {
	return handlers.IsDryRunFromContext(r)
}

// authMiddleware resolves the caller's role from a bearer token. Requests
// without a token continue as guests; a bad token is rejected. Browsers
// cannot set headers on websocket upgrades, so access_token is accepted as a
// query parameter too.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			token = r.URL.Query().Get("access_token")
		}
		var caller role.Role = role.Guest{}
		if token != "" {
			parsed, err := s.Verifier.Verify(token)
			if err != nil {
				log.Warn("Rejected token", "error", err)
				handlers.RespondError(w, err)
				return
			}
			caller = parsed
		}
		log.Debug("Caller resolved", "role", caller.Kind())
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), roleKey, caller)))
	})
}

// roleFromContext returns the caller's role, Guest when unknown.
func roleFromContext(r *http.Request) role.Role {
	if caller, ok := r.Context().Value(roleKey).(role.Role); ok {
		return caller
	}
	return role.Guest{}
}

// slackVerifyMiddleware rejects requests that do not carry a valid Slack
// signature for the signing secret.
func slackVerifyMiddleware(signingSecret string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			verifier, err := slack.NewSecretsVerifier(r.Header, signingSecret)
			if err != nil {
				log.Warn("Slack request without valid signature headers", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			body, err := io.ReadAll(io.TeeReader(r.Body, &verifier))
			if err != nil {
				http.Error(w, "Failed to read request body", http.StatusBadRequest)
				return
			}
			if err := verifier.Ensure(); err != nil {
				log.Warn("Slack signature mismatch", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}
