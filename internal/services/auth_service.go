package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/repositories"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgAccountDisabled    = "Your account has been deactivated"
)

type AuthService struct {
	users    *repositories.UserRepository
	tokens   *utils.TokenManager
	activity *ActivityLogService
}

func NewAuthService(db *gorm.DB, tokens *utils.TokenManager, activity *ActivityLogService) *AuthService {
	return &AuthService{
		users:    repositories.NewUserRepository(db),
		tokens:   tokens,
		activity: activity,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, apperr.FromDB(err)
	}
	if exists {
		return nil, apperr.Conflict("User with this email already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := models.User{
		Email:    email,
		Password: hash,
		Name:     strings.TrimSpace(req.Name),
		Role:     models.RoleUser,
		IsActive: true,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if apperr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("User with this email already exists")
		}
		return nil, apperr.FromDB(err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("user registered")

	return s.issue(&user)
}

// Login checks the account state before the password, so a deactivated
// account is reported as such whatever password is given.
func (s *AuthService) Login(ctx context.Context, actor Actor, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, apperr.FromDB(err)
	}

	if !user.IsActive {
		return nil, apperr.Forbidden(msgAccountDisabled)
	}
	if !utils.VerifyPassword(user.Password, req.Password) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	actor.UserID = user.ID
	s.activity.Log(actor, models.ActionLogin, models.EntityUser, user.ID, nil)

	return s.issue(user)
}

// Refresh exchanges a refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, utils.TokenError(err)
	}

	user, err := s.activeUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &models.AuthResponse{User: user, AccessToken: access}, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID string, req *models.ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return notFound(err, "User not found")
	}
	if !utils.VerifyPassword(user.Password, req.CurrentPassword) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	if _, err := s.users.Updates(ctx, userID, map[string]interface{}{"password": hash}); err != nil {
		return apperr.FromDB(err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return user, nil
}

// Authenticate resolves an access token to a live, active user.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, utils.TokenError(err)
	}
	return s.activeUser(ctx, claims.UserID)
}

func (s *AuthService) activeUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("User not found")
		}
		return nil, apperr.FromDB(err)
	}
	if !user.IsActive {
		return nil, apperr.Forbidden(msgAccountDisabled)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*models.AuthResponse, error) {
	access, refresh, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &models.AuthResponse{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
