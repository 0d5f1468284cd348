package utils

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/config"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
)

const tokenIssuer = "bangla-quotes"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the payload of both access and refresh tokens.
type Claims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies access/refresh token pairs. The two kinds
// are signed with different secrets so one can never stand in for the other.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(cfg.Secret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

func (m *TokenManager) GenerateAccessToken(user *models.User) (string, error) {
	return m.sign(user, m.accessSecret, m.accessTTL)
}

func (m *TokenManager) GenerateRefreshToken(user *models.User) (string, error) {
	return m.sign(user, m.refreshSecret, m.refreshTTL)
}

func (m *TokenManager) GenerateTokenPair(user *models.User) (access, refresh string, err error) {
	if access, err = m.GenerateAccessToken(user); err != nil {
		return "", "", err
	}
	if refresh, err = m.GenerateRefreshToken(user); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (m *TokenManager) VerifyAccessToken(token string) (*Claims, error) {
	return m.parse(token, m.accessSecret)
}

func (m *TokenManager) VerifyRefreshToken(token string) (*Claims, error) {
	return m.parse(token, m.refreshSecret)
}

func (m *TokenManager) sign(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// parse returns ErrTokenExpired for a well-formed but stale token and
// ErrTokenInvalid for everything else.
func (m *TokenManager) parse(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// TokenError maps a verification failure onto a 401.
func TokenError(err error) *apperr.Error {
	if errors.Is(err, ErrTokenExpired) {
		return apperr.New(http.StatusUnauthorized, apperr.CodeTokenExpired, "Token has expired")
	}
	return apperr.New(http.StatusUnauthorized, apperr.CodeInvalidToken, "Invalid token")
}
