package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"drumbun/internal/adminauth"
	"drumbun/internal/obs"
)

func withMiddleware(h http.Handler, logger *slog.Logger, metrics *obs.Metrics) http.Handler {
	return securityHeaders(requestLogger(h, logger, metrics))
}

// requireAdmin gates a handler behind the hosted admin-verification
// endpoint. Non-admin and unverifiable credentials both get a 401; the
// distinction only matters in the log.
func requireAdmin(next http.Handler, verifier adminauth.Verifier, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeAuthError(w, http.StatusUnauthorized, "autentificare necesară")
			return
		}

		v, err := verifier.Verify(r.Context(), token)
		if err != nil {
			if !errors.Is(err, adminauth.ErrUnauthorized) {
				logger.Error("admin verification failed", "error", err)
			}
			writeAuthError(w, http.StatusUnauthorized, "autentificare necesară")
			return
		}
		if !v.IsAdmin {
			logger.Warn("non-admin attempted admin action", "email", v.Email, "path", r.URL.Path)
			writeAuthError(w, http.StatusForbidden, "acces interzis")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}

func requestLogger(next http.Handler, logger *slog.Logger, metrics *obs.Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(sw, r)
		elapsed := time.Since(start)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", elapsed.Round(time.Microsecond),
		)
		metrics.ObserveRequest(pathLabel(r.URL.Path), sw.status, elapsed)
	})
}

// pathLabel truncates a request path to its first two segments so metric
// label cardinality stays bounded regardless of slugs in the URL.
func pathLabel(p string) string {
	parts := strings.SplitN(strings.TrimPrefix(p, "/"), "/", 3)
	switch {
	case len(parts) >= 2 && parts[1] != "":
		return "/" + parts[0] + "/" + parts[1]
	case parts[0] != "":
		return "/" + parts[0]
	default:
		return "/"
	}
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
