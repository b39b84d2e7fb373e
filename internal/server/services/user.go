// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, token verification and
// plain user creation and lookup.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cosmospt/internal/common"
	"github.com/dmitrijs2005/cosmospt/internal/logging"
	"github.com/dmitrijs2005/cosmospt/internal/server/auth"
	"github.com/dmitrijs2005/cosmospt/internal/server/config"
	"github.com/dmitrijs2005/cosmospt/internal/server/models"
	"github.com/dmitrijs2005/cosmospt/internal/server/repositories/repomanager"
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// CreateUserInput carries the fields accepted by CreateUser. Points is
// optional; nil means zero.
type CreateUserInput struct {
	Name     string
	Password string
	Points   *int
}

type UserService struct {
	repomanager   repomanager.RepositoryManager
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		repomanager:   m,
		logger:        logger.With("module", "user_service"),
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Register creates a user with the starter achievements and returns it
// together with a fresh token. An existing name yields common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, name, password string) (*AuthResult, error) {
	user, err := s.create(ctx, name, password)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies the password and returns the user with a fresh token.
// An unknown name yields common.ErrorNotFound, a wrong password
// common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, name, password string) (*AuthResult, error) {
	user, err := s.repomanager.Users().GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// ValidateToken returns the user id bound to token.
func (s *UserService) ValidateToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

// CreateUser stores a user without issuing a token. Name and password are
// required; the password is hashed like on registration.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	user := models.NewUser("", in.Name, "")
	if in.Points != nil {
		user.SetPoints(*in.Points)
	}
	return s.store(ctx, user, in.Password)
}

// GetUser returns the user with id or common.ErrorNotFound.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users().GetByID(ctx, id)
}

func (s *UserService) create(ctx context.Context, name, password string) (*models.User, error) {
	return s.store(ctx, models.NewUser("", name, ""), password)
}

func (s *UserService) store(ctx context.Context, user *models.User, password string) (*models.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	if user.Name == "" || password == "" {
		return nil, fmt.Errorf("%w: name and password are required", common.ErrorValidation)
	}

	repo := s.repomanager.Users()

	if _, err := repo.GetByName(ctx, user.Name); err == nil {
		return nil, common.ErrorConflict
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	user.PasswordHash = hash

	// the store's unique index still catches a racing registration
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

func (s *UserService) generateToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}
