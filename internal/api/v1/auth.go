package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/isidore-books/isidore/internal/api/auth"
	"github.com/isidore-books/isidore/internal/config"
	"github.com/isidore-books/isidore/internal/http/response"
	"github.com/isidore-books/isidore/internal/log"
	"github.com/isidore-books/isidore/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var signin model.UserSigninRequest
	if err := json.NewDecoder(r.Body).Decode(&signin); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	user := config.Opts.FindUser(signin.Username)
	if user == nil {
		log.Warn("User not found", zap.String("username", signin.Username))
		response.Unauthorized(w, r)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(signin.Password)); err != nil {
		log.Warn("Invalid password", zap.String("username", signin.Username))
		response.Unauthorized(w, r)
		return
	}

	if config.Opts.JWTSecret == "" {
		response.ServerError(w, r, errors.New("JWT secret is not set"))
		return
	}

	expireTime := time.Now().Add(auth.AccessTokenDuration)
	accessToken, err := auth.GenerateAccessToken(user.Username, expireTime, []byte(config.Opts.JWTSecret))
	if err != nil {
		log.Error("Failed to generate access token", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookieName,
		Value:    accessToken,
		Path:     "/",
		Expires:  expireTime,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	response.OK(w, r, map[string]any{
		"username":     user.Username,
		"access_token": accessToken,
		"expires_at":   expireTime,
	})
}
