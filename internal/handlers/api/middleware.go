package api

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/KirkDiggler/pokerledger/internal/models"
)

// Identity headers set by the proxy in front of the API
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserName = "X-User-Name"
)

type contextKey string

const identityContextKey contextKey = "identity"

// identityFromContext returns the caller, if the request carried one
func identityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(models.Identity)
	return identity, ok && identity.UserID != ""
}

// actorFromContext names the caller for ledger entries
func actorFromContext(ctx context.Context) string {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return "anonymous"
	}
	if identity.DisplayName != "" {
		return identity.DisplayName
	}
	return identity.UserID
}

// Identity reads the caller from the identity headers. Requests without them
// are still served; handlers that need a user reject them.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID != "" {
			identity := models.Identity{
				UserID:      userID,
				DisplayName: strings.TrimSpace(r.Header.Get(HeaderUserName)),
			}
			r = r.WithContext(context.WithValue(r.Context(), identityContextKey, identity))
		}
		next.ServeHTTP(w, r)
	})
}

// responseWriter captures the status code and size
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Flush implements http.Flusher for the event stream
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Logging logs every request
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			logger.Info("http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.status),
				slog.Int("size", wrapped.size),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Recovery turns a panic into a 500 response
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)
					writeError(w, &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
