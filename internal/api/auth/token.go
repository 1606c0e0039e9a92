package auth // import "github.com/isidore-books/isidore/internal/api/auth"

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	// AccessTokenDuration is the default lifetime of an issued token.
	AccessTokenDuration = 7 * 24 * time.Hour
	// AccessTokenCookieName carries the token for browser clients.
	AccessTokenCookieName = "isidore.access-token"
	Issuer                = "isidore"
)

type ClaimsMessage struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a token for username expiring at expirationTime.
func GenerateAccessToken(username string, expirationTime time.Time, secret []byte) (string, error) {
	registeredClaims := jwt.RegisteredClaims{
		Issuer:   Issuer,
		IssuedAt: jwt.NewNumericDate(time.Now()),
		Subject:  username,
	}
	if !expirationTime.IsZero() {
		registeredClaims.ExpiresAt = jwt.NewNumericDate(expirationTime)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &ClaimsMessage{
		Name:             username,
		RegisteredClaims: registeredClaims,
	})
	return token.SignedString(secret)
}

// ValidateAccessToken parses and verifies a token, returning the username.
func ValidateAccessToken(tokenString string, secret []byte) (string, error) {
	claims := &ClaimsMessage{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", errors.Wrap(err, "invalid access token")
	}
	if !token.Valid {
		return "", errors.New("invalid access token")
	}
	return claims.Name, nil
}
