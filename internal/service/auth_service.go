package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"kgtransfer/config"
	"kgtransfer/internal/auth"
	"kgtransfer/internal/domain"
	"kgtransfer/internal/models"
	"kgtransfer/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCreds  = errors.New("invalid email or password")
	ErrWrongPassword = errors.New("current password is incorrect")
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthService struct {
	cfg    *config.Config
	admins *repository.AdminUserRepository
}

func NewAuthService(cfg *config.Config, admins *repository.AdminUserRepository) *AuthService {
	return &AuthService{cfg: cfg, admins: admins}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AdminUser, *TokenPair, error) {
	u, err := s.admins.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCreds
		}
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCreds
	}
	tokens, err := s.issue(u)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	if err := s.admins.TouchLogin(ctx, u.ID, now); err != nil {
		return nil, nil, fmt.Errorf("record login: %w", err)
	}
	u.LastLoginAt = &now
	return u, tokens, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	id, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return nil, err
	}
	u, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	return s.issue(u)
}

func (s *AuthService) GetAdmin(ctx context.Context, id uint) (*models.AdminUser, error) {
	return s.admins.GetByID(ctx, id)
}

func (s *AuthService) ChangePassword(ctx context.Context, adminID uint, current, next string) error {
	u, err := s.admins.GetByID(ctx, adminID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
		return ErrWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.admins.UpdatePassword(ctx, u.ID, string(hash))
}

// SeedAdmin creates the configured admin account when no admin exists yet.
func (s *AuthService) SeedAdmin(ctx context.Context) (bool, error) {
	n, err := s.admins.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	u := &models.AdminUser{
		Email:        normalizeEmail(s.cfg.Admin.Email),
		Name:         s.cfg.Admin.Name,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := s.admins.Create(ctx, u); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

func (s *AuthService) issue(u *models.AdminUser) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.cfg.JWT.AccessExpiry / time.Second),
	}, nil
}
