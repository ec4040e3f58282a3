package authtoken

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{
		"sub": "user-42",
		"iss": "allergycare-api",
		"exp": exp.Unix(),
	})

	claims, err := Inspect(token)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if claims.Subject != "user-42" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if claims.Issuer != "allergycare-api" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
	if !claims.ExpiresAt.Equal(exp) {
		t.Errorf("expiresAt = %v, want %v", claims.ExpiresAt, exp)
	}
	if claims.Expired(time.Now()) {
		t.Error("future expiry reported as expired")
	}
}

func TestInspectExpiredToken(t *testing.T) {
	// Inspect never validates, so an expired token still parses; only
	// Expired() flags it.
	token := signedToken(t, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	claims, err := Inspect(token)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !claims.Expired(time.Now()) {
		t.Error("past expiry not reported")
	}
}

func TestInspectNoExpiry(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-42"})
	claims, err := Inspect(token)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if claims.Expired(time.Now()) {
		t.Error("token without exp must never count as expired")
	}
}

func TestInspectGarbage(t *testing.T) {
	for _, input := range []string{"", "not-a-jwt", "a.b"} {
		if _, err := Inspect(input); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Inspect(%q) err = %v, want ErrInvalidToken", input, err)
		}
	}
}
