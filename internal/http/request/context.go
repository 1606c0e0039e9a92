package request

import (
	"context"
	"net/http"
)

type contextKey int

const (
	usernameContextKey contextKey = iota
	requestIDContextKey
)

// WithUsername stores the authenticated username on the request context.
func WithUsername(r *http.Request, username string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), usernameContextKey, username))
}

// GetUsername returns the authenticated username, empty when anonymous.
func GetUsername(r *http.Request) string {
	if v, ok := r.Context().Value(usernameContextKey).(string); ok {
		return v
	}
	return ""
}

// WithRequestID stores the per-request id used in logs.
func WithRequestID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestIDContextKey, id))
}

// GetRequestID returns the per-request id, empty when none was assigned.
func GetRequestID(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDContextKey).(string); ok {
		return v
	}
	return ""
}

// FindClientIP returns the best guess of the client address.
func FindClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	return r.RemoteAddr
}
