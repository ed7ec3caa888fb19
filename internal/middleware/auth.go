package middleware

import (
	"net/http"
	"strings"

	"github.com/totalfit/backend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// ApiKeyMiddlewareHandler guards mutating endpoints with the shared backend
// API key (X-API-Key header, sent by the web app server-side routes).
type ApiKeyMiddlewareHandler struct {
	apiKey               string
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewApiKeyMiddlewareHandler(apiKey string) *ApiKeyMiddlewareHandler {
	return &ApiKeyMiddlewareHandler{
		apiKey: apiKey,
		allowedPaths: map[string]bool{
			"/api/health": true,
			"/version":    true,
		},
		allowedPathsPrefixes: []string{
			// the google fit consent redirect comes straight from the browser
			"/api/auth/google-fit/",
		},
	}
}

func (h *ApiKeyMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *ApiKeyMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			// read-only listing endpoints stay open, writes need the key
			if r.Method == http.MethodGet {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			if apiKey := r.Header.Get("X-API-Key"); apiKey != h.apiKey {
				log.Tracef("[invalid api key] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-api-key")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
