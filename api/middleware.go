package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"watchstore/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// authMiddleware resolves the Authorization bearer token to an account and
// stores it in the request context.
func (a *App) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}
		user, err := a.auth.UserFromToken(r.Context(), token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token.")
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole gates a subrouter to accounts holding one of the given roles.
func (a *App) requireRole(roles ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := userFrom(r)
			if !ok {
				respondError(w, http.StatusUnauthorized, "Authentication required.")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondError(w, http.StatusForbidden, fmt.Sprintf(
				"Access denied. Required role: %s. Your role: %s",
				strings.Join(roles, " or "), user.Role))
		})
	}
}

// userFrom returns the authenticated account placed by authMiddleware.
func userFrom(r *http.Request) (domain.User, bool) {
	user, ok := r.Context().Value(userContextKey).(domain.User)
	return user, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// metricsMiddleware records request counts and latency per route template.
func (a *App) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		handler := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				handler = tmpl
			}
		}
		elapsed := time.Since(start)
		if a.metrics != nil {
			a.metrics.Requests.WithLabelValues(handler, fmt.Sprintf("%d", rec.status)).Inc()
			a.metrics.LatencyMS.WithLabelValues(handler).Observe(float64(elapsed.Milliseconds()))
		}
		slog.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "duration_ms", elapsed.Milliseconds())
	})
}
