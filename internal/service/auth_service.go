package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"gitlab.com/aungkhant/divvy/internal/auth"
	"gitlab.com/aungkhant/divvy/internal/database"
	"gitlab.com/aungkhant/divvy/internal/logger"
	"gitlab.com/aungkhant/divvy/internal/models"
	"gitlab.com/aungkhant/divvy/internal/repository"
)

// ErrInvalidCredentials marks a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles registration, login and profile management.
type AuthService struct {
	users    *repository.UserRepository
	profiles *repository.ProfileRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates an AuthService.
func NewAuthService(users *repository.UserRepository, profiles *repository.ProfileRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, profiles: profiles, tokens: tokens}
}

// Register creates a new account and returns the user with a session token.
func (s *AuthService) Register(ctx context.Context, username, email, password, firstName, lastName string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, "", fmt.Errorf("username and email are required: %w", ErrInvalidInput)
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, "", fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, "", fmt.Errorf("username or email already taken: %w", ErrConflict)
		}
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(user.ID)).
		Msg("User registered")
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	logger.Log.Info().
		Str("user", logger.HashUserID(user.ID)).
		Msg("User logged in")
	return user, token, nil
}

// GetUser retrieves a user by id.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile retrieves the acting user's profile settings.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// UpdateProfile saves the acting user's profile settings.
func (s *AuthService) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	return s.profiles.Upsert(ctx, profile)
}
