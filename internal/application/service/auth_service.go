package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/serviceops/receipts-api/internal/domain/entity"
	"github.com/serviceops/receipts-api/internal/domain/repository"
	"github.com/serviceops/receipts-api/pkg/apperror"
	"github.com/serviceops/receipts-api/pkg/email"
	"github.com/serviceops/receipts-api/pkg/utils"
)

// AuthService handles authentication operations
type AuthService struct {
	profileRepo    repository.ProfileRepository
	resetTokenRepo repository.PasswordResetTokenRepository
	jwtManager     *utils.JWTManager
	emailService   *email.Service
}

// NewAuthService creates a new auth service
func NewAuthService(
	profileRepo repository.ProfileRepository,
	resetTokenRepo repository.PasswordResetTokenRepository,
	jwtManager *utils.JWTManager,
	emailService *email.Service,
) *AuthService {
	return &AuthService{
		profileRepo:    profileRepo,
		resetTokenRepo: resetTokenRepo,
		jwtManager:     jwtManager,
		emailService:   emailService,
	}
}

// AuthTokens is the token pair issued on login and refresh.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginResult bundles the authenticated profile with its tokens.
type LoginResult struct {
	User   *entity.Profile `json:"user"`
	Tokens AuthTokens      `json:"tokens"`
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, userEmail, password string) (*LoginResult, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, profile.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(profile)
}

// Register creates a new user account with the default role
func (s *AuthService) Register(ctx context.Context, userEmail, password string) (*LoginResult, error) {
	existing, err := s.profileRepo.GetByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("An account with this email already exists")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	profile := &entity.Profile{
		Email:    userEmail,
		Password: hashed,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return s.issueTokens(profile)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginResult, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(profile)
}

// ForgotPassword issues a reset token and emails it to the user. The
// response is identical whether or not the account exists.
func (s *AuthService) ForgotPassword(ctx context.Context, userEmail string) error {
	profile, err := s.profileRepo.GetByEmail(ctx, userEmail)
	if err != nil {
		return err
	}
	if profile == nil {
		return nil
	}

	if err := s.resetTokenRepo.DeleteByEmail(ctx, userEmail); err != nil {
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	resetToken := &entity.PasswordResetToken{
		Email:     userEmail,
		Token:     token,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := s.resetTokenRepo.Create(ctx, resetToken); err != nil {
		return err
	}

	return s.emailService.SendPasswordResetEmail(userEmail, token)
}

// ResetPassword sets a new password for a valid, unused reset token
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	resetToken, err := s.resetTokenRepo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if resetToken == nil || !resetToken.IsValid() {
		return apperror.ErrInvalidToken
	}

	profile, err := s.profileRepo.GetByEmail(ctx, resetToken.Email)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperror.ErrInvalidToken
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	profile.Password = hashed

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return err
	}

	return s.resetTokenRepo.MarkAsUsed(ctx, token)
}

// GetProfile returns the profile for the given user ID
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return profile, nil
}

func (s *AuthService) issueTokens(profile *entity.Profile) (*LoginResult, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(
		profile.ID, profile.Email, string(profile.Role), profile.Permissions())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(profile.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		User:   profile,
		Tokens: AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken},
	}, nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
