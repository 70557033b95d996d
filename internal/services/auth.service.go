package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skserveur/storefront/internal/model"
	"github.com/skserveur/storefront/internal/repository"
	"github.com/skserveur/storefront/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type SessionStore interface {
	Create(userID int64) (string, error)
	Resolve(token string) (int64, error)
	Destroy(token string) error
}

type AuthService struct {
	userRepo AuthUserRepository
	sessions SessionStore
}

func NewAuthService(userRepo AuthUserRepository, sessions SessionStore) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

func (s *AuthService) Register(ctx context.Context, p model.RegisterRequest) (*model.User, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)

	if p.Username == "" {
		return nil, ErrUsernameRequired
	}
	if p.Password != p.Password2 {
		return nil, ErrPasswordMismatch
	}
	if len(p.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, &model.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return created, nil
}

// Login verifies credentials and opens a session. The same generic error
// covers unknown usernames and wrong passwords.
func (s *AuthService) Login(ctx context.Context, p model.LoginRequest) (*model.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(p.Username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(p.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) Logout(token string) error {
	return s.sessions.Destroy(token)
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	userID, err := s.sessions.Resolve(token)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// EnsureAdminUser seeds the bootstrap admin account at startup. No-op when the
// env vars are unset or the username already exists.
func (s *AuthService) EnsureAdminUser(ctx context.Context, username, email, password string) error {
	if username == "" || password == "" {
		return nil
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.userRepo.Create(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
	})
	if err != nil {
		// Lost a race against a concurrent boot, the account is there.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil
		}
		return err
	}

	logger.Info("bootstrap admin account created", "username", username)
	return nil
}
