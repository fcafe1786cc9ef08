package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Skotchmaster/snake_catalogue/internal/models"
	"github.com/Skotchmaster/snake_catalogue/internal/mykafka"
	"github.com/Skotchmaster/snake_catalogue/internal/repo"
	"github.com/Skotchmaster/snake_catalogue/pkg/logging"
)

type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenService interface {
	Issue(subject string, ttl time.Duration) (string, time.Time, error)
	Verify(token string) (string, error)
}

// Identity is the authenticated principal of a request.
type Identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Active   bool   `json:"active"`
}

type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

type AuthService struct {
	Store  CredentialStore
	Hasher PasswordHasher
	Tokens TokenService
	TTL    time.Duration
	Events mykafka.Publisher

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(store CredentialStore, hasher PasswordHasher, tokens TokenService, ttl time.Duration, events mykafka.Publisher) *AuthService {
	if events == nil {
		events = mykafka.NopPublisher{}
	}
	return &AuthService{
		Store:  store,
		Hasher: hasher,
		Tokens: tokens,
		TTL:    ttl,
		Events: events,
	}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	pwHash, err := s.Hasher.Hash(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: pwHash}
	if err := s.Store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "status", 400, "reason", "username already registered")
			return nil, fmt.Errorf("%w: username already registered", ErrConflict)
		}
		l.Error("register_error", "status", 500, "reason", "cannot create user", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	mykafka.Publish(ctx, s.Events, mykafka.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})
	return user, nil
}

// Login checks the credentials and issues an access token for the
// username. An unknown user and a wrong password fail the same way.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	username = strings.TrimSpace(username)
	user, err := s.Store.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, repo.ErrUserNotFound):
		s.Hasher.Verify(password, s.placeholderHash())
		l.Warn("login failed", "status", 401, "reason", "invalid username or password")
		return nil, ErrInvalidCredentials
	case err != nil:
		l.Error("login failed", "status", 500, "error", err)
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.Hasher.Verify(password, user.PasswordHash) {
		l.Warn("login failed", "status", 401, "reason", "invalid username or password")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Issue(user.Username, s.TTL)
	if err != nil {
		l.Error("login failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, fmt.Errorf("issue token: %w", err)
	}

	mykafka.Publish(ctx, s.Events, mykafka.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   exp,
	}, nil
}

// Resolve turns a bearer token into the identity of its subject. Any token
// failure and a subject that no longer exists are ErrUnauthenticated.
func (s *AuthService) Resolve(ctx context.Context, token string) (*Identity, error) {
	subject, err := s.Tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := s.Store.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &Identity{ID: user.ID, Username: user.Username, Active: user.Active()}, nil
}

func (s *AuthService) RequireActive(id *Identity) (*Identity, error) {
	if id == nil {
		return nil, ErrUnauthenticated
	}
	if !id.Active {
		return nil, ErrInactiveAccount
	}
	return id, nil
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash("placeholder-password")
	})
	return s.dummyHash
}
