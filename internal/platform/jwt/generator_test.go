package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestNewGenerator は各種設定でGeneratorが正しく生成されることを検証します。
func TestNewGenerator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
	}{
		{"standard config", "my-secret-key", time.Hour},
		{"long expiration", "secret", 24 * time.Hour * 30},
		{"short expiration", "s", time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator(tt.secret, tt.expiration)

			if string(gen.secret) != tt.secret {
				t.Errorf("expected secret %q, got %q", tt.secret, string(gen.secret))
			}
			if gen.expiration != tt.expiration {
				t.Errorf("expected expiration %v, got %v", tt.expiration, gen.expiration)
			}
		})
	}
}

// TestGenerator_GenerateToken は生成されたJWTトークンが有効で正しいクレームを含むことを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	gen := NewGenerator("test-secret", 30*24*time.Hour)
	gen.now = func() time.Time { return issued }

	tokenStr, err := gen.GenerateToken("ops")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return issued.Add(time.Minute) }))
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	if claims.Subject != "ops" {
		t.Errorf("expected sub %q, got %q", "ops", claims.Subject)
	}
	if !claims.IssuedAt.Time.Equal(issued) {
		t.Errorf("expected iat %v, got %v", issued, claims.IssuedAt.Time)
	}
	if want := issued.Add(30 * 24 * time.Hour); !claims.ExpiresAt.Time.Equal(want) {
		t.Errorf("expected exp %v, got %v", want, claims.ExpiresAt.Time)
	}
}

// TestGenerator_GenerateToken_EmptySubject は空の subject ではトークンを発行しないことを検証します。
func TestGenerator_GenerateToken_EmptySubject(t *testing.T) {
	t.Parallel()

	if _, err := NewGenerator("s", time.Hour).GenerateToken(""); err == nil {
		t.Error("expected error for empty subject")
	}
}
