package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/config"
	"github.com/ketomate/backend/internal/dto"
	"github.com/ketomate/backend/internal/identity"
	"github.com/ketomate/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email address not confirmed")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrInvalidCode        = errors.New("invalid or expired code")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db         *gorm.DB
	cfg        *config.Config
	profiles   *ProfileService
	mailer     *Mailer
	googleJWKS *GoogleJWKSClient
}

func NewAuthService(db *gorm.DB, cfg *config.Config, profiles *ProfileService, mailer *Mailer) *AuthService {
	return &AuthService{
		db:         db,
		cfg:        cfg,
		profiles:   profiles,
		mailer:     mailer,
		googleJWKS: NewGoogleJWKSClient(),
	}
}

// Register creates the user, a minimal profile row, and a signup one-time
// code delivered by email. The session is withheld until the code comes
// back through the auth callback.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		Password:     string(hash),
		AuthProvider: "email",
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.profiles.EnsureExists(user.ID, user.Email); err != nil {
		slog.Error("profile creation at sign-up failed", "error", err, "user_id", user.ID.String())
	}

	code, err := s.IssueCode(user.ID, models.CodePurposeSignup, s.cfg.SignupCodeExpiry)
	if err != nil {
		return nil, err
	}

	link := s.callbackLink(code, models.CodePurposeSignup)
	if err := s.mailer.SendConfirmationEmail(user.Email, link); err != nil {
		// The account exists; the user can request a fresh link.
		slog.Error("confirmation email failed", "error", err, "user_id", user.ID.String())
	}

	return &dto.RegisterResponse{ConfirmationRequired: true}, nil
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.AuthProvider == "email" && user.EmailConfirmedAt == nil {
		return nil, ErrEmailNotConfirmed
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (s *AuthService) DeleteAccount(userID uuid.UUID, password string) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if user.AuthProvider != "google" {
		if password == "" {
			return errors.New("password is required")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, owned := range userOwnedModels() {
			if err := tx.Scopes(identity.ForUser(userID)).Delete(owned).Error; err != nil {
				return fmt.Errorf("failed to delete user data: %w", err)
			}
		}
		if err := tx.Where("id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		return tx.Delete(&user).Error
	})
}

// userOwnedModels lists every user-keyed table cleared when an account is
// deleted. RecipeFavorite rows must go before Recipe rows.
func userOwnedModels() []interface{} {
	return []interface{}{
		&models.RefreshToken{},
		&models.OneTimeCode{},
		&models.Log{},
		&models.PantryItem{},
		&models.RecipeFavorite{},
		&models.FastingSession{},
		&models.Recipe{},
	}
}

// GoogleSignIn verifies a Google id_token and upserts the user. The caller
// mints an OAuth one-time code so the web client can finish through the
// auth callback like every other flow.
func (s *AuthService) GoogleSignIn(req *dto.GoogleSignInRequest) (*models.User, error) {
	if req.IdentityToken == "" {
		return nil, errors.New("identity token is required")
	}

	claims, err := s.googleJWKS.VerifyToken(req.IdentityToken, s.cfg.GoogleClientID)
	if err != nil {
		slog.Error("google token verification failed", "error", err)
		return nil, fmt.Errorf("failed to verify Google identity token: %w", err)
	}

	googleUserID := claims.Sub
	email := claims.Email
	if email == "" {
		email = req.Email
	}
	if email == "" {
		return nil, errors.New("google account has no email")
	}

	var user models.User
	err = s.db.Where("google_user_id = ? OR email = ?", googleUserID, email).First(&user).Error

	if err != nil {
		now := time.Now().UTC()
		user = models.User{
			ID:               uuid.New(),
			Email:            email,
			Password:         "",
			GoogleUserID:     &googleUserID,
			AuthProvider:     "google",
			EmailConfirmedAt: &now,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create Google user: %w", err)
		}
	} else if user.GoogleUserID == nil {
		now := time.Now().UTC()
		s.db.Model(&user).Updates(map[string]interface{}{
			"google_user_id":     googleUserID,
			"auth_provider":      "google",
			"email_confirmed_at": now,
		})
		user.GoogleUserID = &googleUserID
		user.AuthProvider = "google"
		user.EmailConfirmedAt = &now
	}

	return &user, nil
}

// RequestPasswordReset mints a recovery code and emails the reset link.
// The response never reveals whether the address is registered.
func (s *AuthService) RequestPasswordReset(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil
	}

	code, err := s.IssueCode(user.ID, models.CodePurposeRecovery, s.cfg.RecoveryCodeExpiry)
	if err != nil {
		return err
	}

	link := s.callbackLink(code, models.CodePurposeRecovery)
	if err := s.mailer.SendRecoveryEmail(user.Email, link); err != nil {
		slog.Error("recovery email failed", "error", err, "user_id", user.ID.String())
		return fmt.Errorf("failed to send recovery email: %w", err)
	}
	return nil
}

// ResetPassword sets a new password for an already-authenticated user (the
// recovery code was exchanged for a session by the callback).
func (s *AuthService) ResetPassword(userID uuid.UUID, newPassword string) error {
	if len(newPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("password", string(hash))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	// A password change invalidates every outstanding refresh token.
	return s.db.Model(&models.RefreshToken{}).
		Scopes(identity.ForUser(userID)).
		Update("revoked", true).Error
}

// callbackLink builds the absolute URL an emailed one-time code points at.
// Every code must land on CallbackPath or the exchange never happens.
func (s *AuthService) callbackLink(code, typ string) string {
	link := s.cfg.SiteURL + CallbackPath + "?code=" + code
	if typ != "" {
		link += "&type=" + typ
	}
	return link
}

// IssueCode mints a one-time exchange code. Only its hash is stored.
func (s *AuthService) IssueCode(userID uuid.UUID, purpose string, ttl time.Duration) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	raw := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.OneTimeCode{
		ID:        uuid.New(),
		UserID:    userID,
		CodeHash:  hashToken(raw),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(ttl),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store one-time code: %w", err)
	}
	return raw, nil
}

// ExchangeCodeForSession consumes a one-time code of the given purpose and
// returns a fresh session for its user. A signup exchange also confirms
// the email address.
func (s *AuthService) ExchangeCodeForSession(code, purpose string) (*dto.AuthResponse, *models.User, error) {
	codeHash := hashToken(code)

	var stored models.OneTimeCode
	if err := s.db.Where("code_hash = ? AND consumed_at IS NULL", codeHash).First(&stored).Error; err != nil {
		return nil, nil, ErrInvalidCode
	}

	if stored.Purpose != purpose || time.Now().After(stored.ExpiresAt) {
		return nil, nil, ErrInvalidCode
	}

	now := time.Now().UTC()
	if err := s.db.Model(&stored).Update("consumed_at", now).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to consume code: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, nil, ErrUserNotFound
	}

	if purpose == models.CodePurposeSignup && user.EmailConfirmedAt == nil {
		s.db.Model(&user).Update("email_confirmed_at", now)
		user.EmailConfirmedAt = &now
	}

	session, err := s.generateTokenPair(&user)
	if err != nil {
		return nil, nil, err
	}
	return session, &user, nil
}

func (s *AuthService) GetUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// ParseAccessToken validates an access token and returns the user id, for
// callers outside the JWT middleware (the callback's session fallback).
func (s *AuthService) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	return uuid.Parse(sub)
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:             user.ID,
			Email:          user.Email,
			EmailConfirmed: user.EmailConfirmedAt != nil,
			IsGoogleUser:   user.AuthProvider == "google",
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}

// normalizeEmail is used before uniqueness checks.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
