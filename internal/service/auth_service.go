package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/backoffice-api/internal/auth"
	"github.com/spec-kit/backoffice-api/internal/config"
	"github.com/spec-kit/backoffice-api/internal/domain"
	"github.com/spec-kit/backoffice-api/internal/events"
	"github.com/spec-kit/backoffice-api/internal/repository"
	apperrors "github.com/spec-kit/backoffice-api/pkg/util/errorutil"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordLength = 72
)

var errInvalidCredentials = apperrors.NewUnauthorized("invalid credentials")

// AuthResult is returned by successful registration and login.
type AuthResult struct {
	Account   *domain.Document[domain.Account]
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	accounts   repository.Collection[domain.Account]
	tokens     *auth.TokenManager
	events     events.Dispatcher
	bcryptCost int
	// dummyHash is compared against when the username is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash string
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	Accounts repository.Collection[domain.Account]
	Tokens   *auth.TokenManager
	Events   events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) (*AuthService, error) {
	if deps.Accounts == nil || deps.Tokens == nil {
		return nil, errors.New("auth service requires accounts and tokens")
	}
	dummy, err := auth.HashPassword("not-a-real-password", cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		accounts:   deps.Accounts,
		tokens:     deps.Tokens,
		events:     deps.Events,
		bcryptCost: cfg.BcryptCost,
		dummyHash:  dummy,
	}, nil
}

// Register creates a new account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, username, password, displayName string) (*AuthResult, error) {
	account, err := s.createAccount(ctx, username, password, displayName)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{Type: events.EventAccountRegistered, Actor: account.ID})
	return s.issue(account)
}

// Login verifies a username/password pair and issues a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	key := domain.NormalizeUsername(username)
	if key == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}

	account, err := s.accounts.Get(ctx, key)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}

	hash := s.dummyHash
	if account != nil {
		hash = account.Body.PasswordHash
	}
	if cmpErr := auth.ComparePassword(hash, password); cmpErr != nil || account == nil {
		s.publish(ctx, events.Event{Type: events.EventLoginFailed, Actor: key})
		return nil, errInvalidCredentials
	}

	s.publish(ctx, events.Event{Type: events.EventLoginSucceeded, Actor: account.ID})
	s.upgradeHash(ctx, account, password)
	return s.issue(account)
}

// upgradeHash re-hashes the password when the configured bcrypt cost changed since
// the account was stored. Failures leave the old hash in place.
func (s *AuthService) upgradeHash(ctx context.Context, account *domain.Document[domain.Account], password string) {
	if !auth.NeedsRehash(account.Body.PasswordHash, s.bcryptCost) {
		return
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return
	}
	updated := &domain.Document[domain.Account]{ID: account.ID, Body: account.Body}
	updated.Body.PasswordHash = hash
	if err := s.accounts.Replace(ctx, updated); err != nil {
		return
	}
	account.Body.PasswordHash = hash
	account.UpdatedAt = updated.UpdatedAt
}

// EnsureBootstrapAccount creates the account if it does not exist yet.
func (s *AuthService) EnsureBootstrapAccount(ctx context.Context, username, password string) (bool, error) {
	_, err := s.accounts.Get(ctx, domain.NormalizeUsername(username))
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if _, err := s.createAccount(ctx, username, password, ""); err != nil {
		if apperrors.HasCode(err, apperrors.CodeConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *AuthService) createAccount(ctx context.Context, username, password, displayName string) (*domain.Document[domain.Account], error) {
	if n := len(password); n < minPasswordLength || n > maxPasswordLength {
		return nil, apperrors.NewValidationError("invalid account", map[string]any{
			"password": "must be between 8 and 72 bytes",
		})
	}

	body := domain.Account{Username: username, DisplayName: displayName}.Normalize()
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	body.PasswordHash = hash
	if err := body.Validate(); err != nil {
		return nil, validationError("account", err)
	}

	doc := &domain.Document[domain.Account]{ID: body.Username, Body: body}
	if err := s.accounts.Insert(ctx, doc); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflict("username already taken", map[string]any{"username": body.Username})
		}
		return nil, apperrors.MapError(err)
	}
	return doc, nil
}

func (s *AuthService) issue(account *domain.Document[domain.Account]) (*AuthResult, error) {
	identity, err := auth.NewIdentity(account.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	token, exp, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{Account: account, Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event)
}
