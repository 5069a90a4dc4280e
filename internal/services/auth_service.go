package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/manav1337/Task-manager/internal/apperrors"
	"github.com/manav1337/Task-manager/internal/auth/service"
	"github.com/manav1337/Task-manager/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user. Its ID and CreatedAt
	// fields are filled in on success.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by username.
	//
	// "username" parameter is used to retrieve a user by username.
	//
	// If user with such username does not exist, apperrors.ErrUserNotFound
	// will be returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method ExistsByUsername checks if a user with such username exists.
	//
	// "username" parameter is used to check if a user with such username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// "email" parameter is used to check if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	tokenGenerator *service.TokenGenerator
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenGenerator *service.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Register creates a new user account with role USER and returns its public
// summary. The username check runs before the email check, so a request that
// collides on both reports the username conflict.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	usernameExists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameExists {
		return nil, apperrors.ErrUsernameTaken
	}

	emailExists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if emailExists {
		return nil, apperrors.ErrEmailTaken
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser, // Default role
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	return user.Summary(), nil
}

// Login authenticates a user and issues an access token. An unknown username
// and a wrong password both yield apperrors.ErrInvalidCredentials so the two
// cases cannot be told apart by the caller.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.UserSummary, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	// Verify password. A malformed stored hash fails comparison the same way
	// a wrong password does.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.Generate(user.ID, user.Username, int(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user logged in", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	return user.Summary(), token, nil
}
