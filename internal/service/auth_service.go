package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"
	"github.com/san98215/fitness-app/internal/session"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken          = &ValidationError{Message: "An account with this email already exists"}
	ErrUsernameTaken       = &ValidationError{Message: "Username is already taken"}
	ErrInvalidCredentials  = &AuthenticationError{Message: "Invalid credentials"}
	ErrInvalidSession      = &AuthenticationError{Message: "Invalid authentication"}
	ErrSessionUserNotFound = &AuthenticationError{Message: "User not found"}
)

// AuthService registers users and manages their sessions.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (token string, user *domain.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	// Logout revokes token. Tokens that no longer verify are ignored.
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a token to the user it was issued for.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	SessionTTL() time.Duration
}

// authService implements the AuthService interface.
type authService struct {
	users    repository.UserRepository
	tokens   *session.TokenManager
	denylist session.Denylist
	log      logrus.FieldLogger
}

// NewAuthService creates a new instance of authService. A nil denylist
// disables revocation.
func NewAuthService(users repository.UserRepository, tokens *session.TokenManager, denylist session.Denylist, log logrus.FieldLogger) AuthService {
	if denylist == nil {
		denylist = session.NopDenylist{}
	}
	return &authService{
		users:    users,
		tokens:   tokens,
		denylist: denylist,
		log:      log,
	}
}

func (s *authService) SessionTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *authService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateRegistration(registration{Username: username, Email: email, Password: password}); err != nil {
		return "", nil, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return "", nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, fmt.Errorf("check email: %w", err)
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return "", nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return "", nil, s.duplicateField(ctx, email, username)
		}
		return "", nil, err
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	s.log.WithField("user_id", user.ID).Info("user registered")
	return token, user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, &ValidationError{Message: msgFillAllFields}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidSession
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionUserNotFound
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}
	return user, nil
}

// duplicateField reports which unique field a rejected insert collided on,
// checking email first like the pre-insert lookups do.
func (s *authService) duplicateField(ctx context.Context, email, username string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	}
	return ErrEmailTaken
}
