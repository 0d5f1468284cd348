package utils

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/config"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager(config.JWTConfig{
		Secret:        "access-secret-access-secret-access-secret",
		RefreshSecret: "refresh-secret-refresh-secret-refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
}

func testUser() *models.User {
	u := &models.User{Email: "admin@example.com", Role: models.RoleSuperAdmin}
	u.ID = "6f1c8a52-3a4b-4c6d-9e8f-0a1b2c3d4e5f"
	return u
}

func TestTokenPairRoundTrip(t *testing.T) {
	m := newTestTokenManager()
	access, refresh, err := m.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	claims, err := m.VerifyAccessToken(access)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.UserID != testUser().ID || claims.Email != "admin@example.com" || claims.Role != models.RoleSuperAdmin {
		t.Fatalf("claims = %+v", claims)
	}

	if _, err := m.VerifyRefreshToken(refresh); err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := newTestTokenManager()
	access, refresh, err := m.GenerateTokenPair(testUser())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.VerifyAccessToken(refresh); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("refresh token as access: err = %v; want ErrTokenInvalid", err)
	}
	if _, err := m.VerifyRefreshToken(access); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("access token as refresh: err = %v; want ErrTokenInvalid", err)
	}
}

func TestExpiredTokenIsDistinctFromTampered(t *testing.T) {
	m := newTestTokenManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := m.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatal(err)
	}

	_, err = m.VerifyAccessToken(expired)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expired token: err = %v; want ErrTokenExpired", err)
	}
	if e := TokenError(err); e.Code != apperr.CodeTokenExpired || e.Status != http.StatusUnauthorized {
		t.Fatalf("TokenError(expired) = %s %d", e.Code, e.Status)
	}

	m.now = time.Now
	valid, err := m.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(valid, ".")
	sig := []byte(parts[2])
	if sig[0] == 'a' {
		sig[0] = 'b'
	} else {
		sig[0] = 'a'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.VerifyAccessToken(tampered)
	if !errors.Is(err, ErrTokenInvalid) || errors.Is(err, ErrTokenExpired) {
		t.Fatalf("tampered token: err = %v; want ErrTokenInvalid only", err)
	}
	if e := TokenError(err); e.Code != apperr.CodeInvalidToken {
		t.Fatalf("TokenError(tampered) = %s", e.Code)
	}

	if _, err := m.VerifyAccessToken("not.a.jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("garbage token: err = %v", err)
	}
}
