package middleware // import "github.com/isidore-books/isidore/internal/middleware"

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isidore-books/isidore/internal/api/auth"
	"github.com/isidore-books/isidore/internal/config"
	"github.com/isidore-books/isidore/internal/http/request"
	"github.com/isidore-books/isidore/internal/http/response"
	"github.com/isidore-books/isidore/internal/log"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

func (m *Middleware) HandleCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "X-Auth-Token, Authorization, Content-Type, Accept")
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Max-Age", "7200")
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoggingRequest tags every request with a uuid and logs method, path and
// duration.
func (m *Middleware) LoggingRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		r = request.WithRequestID(r, requestID)

		started := time.Now()
		next.ServeHTTP(w, r)

		log.Debug("Request handled",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("client_ip", request.FindClientIP(r)),
			zap.Duration("duration", time.Since(started)),
		)
	})
}

// AuthenticationInterceptor validates a Bearer or cookie JWT against the
// configured users and stores the username on the context.
func (m *Middleware) AuthenticationInterceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := getAccessToken(r)
		if token == "" {
			response.Unauthorized(w, r)
			return
		}

		username, err := auth.ValidateAccessToken(token, []byte(config.Opts.JWTSecret))
		if err != nil {
			log.Debug("Rejected access token", zap.Error(err))
			response.Unauthorized(w, r)
			return
		}
		if config.Opts.FindUser(username) == nil {
			response.Unauthorized(w, r)
			return
		}

		next.ServeHTTP(w, request.WithUsername(r, username))
	})
}

// BasicAuthInterceptor protects the OPDS routes; e-reader clients speak HTTP
// Basic, not JWT. When no users are configured the catalog is open.
func (m *Middleware) BasicAuthInterceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(config.Opts.Users) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="isidore"`)
			response.Unauthorized(w, r)
			return
		}

		user := config.Opts.FindUser(username)
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="isidore"`)
			response.Unauthorized(w, r)
			return
		}

		next.ServeHTTP(w, request.WithUsername(r, username))
	})
}

func getAccessToken(r *http.Request) string {
	// Check the HTTP Authorization header first
	authorizationHeader := r.Header.Get("Authorization")
	if authorizationHeader != "" {
		splitToken := strings.Split(authorizationHeader, "Bearer ")
		if len(splitToken) == 2 {
			return splitToken[1]
		}
	}

	// Check the cookie header
	for _, cookie := range r.Cookies() {
		if cookie.Name == auth.AccessTokenCookieName {
			return cookie.Value
		}
	}
	return ""
}
