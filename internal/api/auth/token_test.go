package auth

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateAccessToken("reader", time.Now().Add(time.Hour), secret)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	username, err := ValidateAccessToken(token, secret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if username != "reader" {
		t.Fatalf("Unexpected username: %q", username)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("reader", time.Now().Add(time.Hour), []byte("one"))
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := ValidateAccessToken(token, []byte("two")); err == nil {
		t.Fatal("A token signed with another secret must not validate")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateAccessToken("reader", time.Now().Add(-time.Minute), secret)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := ValidateAccessToken(token, secret); err == nil {
		t.Fatal("An expired token must not validate")
	}
}

func TestAccessTokenGarbage(t *testing.T) {
	if _, err := ValidateAccessToken("not-a-token", []byte("s")); err == nil {
		t.Fatal("Garbage input must not validate")
	}
}
