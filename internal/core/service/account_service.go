package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/aegisflow/aegisflow-api/internal/core/domain"
	"github.com/aegisflow/aegisflow-api/internal/core/ports"
)

const maxUsernameLength = 50

// AccountService implements signup, login and account administration.
type AccountService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	logger   zerolog.Logger

	// dummyHash is verified against when the username is unknown so that
	// both login failure paths cost one hash comparison.
	dummyHash string
}

// NewAccountService wires the account use cases. A nil throttle disables
// login throttling.
func NewAccountService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	throttle ports.LoginThrottle,
	logger zerolog.Logger,
) *AccountService {
	if throttle == nil {
		throttle = noopThrottle{}
	}
	dummy, err := hasher.Hash("aegisflow/unknown-user")
	if err != nil {
		logger.Warn().Err(err).Msg("could not prepare dummy password hash")
	}
	return &AccountService{
		users:     users,
		roles:     roles,
		hasher:    hasher,
		tokens:    tokens,
		throttle:  throttle,
		logger:    logger,
		dummyHash: dummy,
	}
}

// Signup registers a new active account with the default "user" role.
func (s *AccountService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, domain.ErrInvalidInput
	}

	return s.createAccount(ctx, username, password, domain.RoleUser)
}

func (s *AccountService) createAccount(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	ok, err := s.roles.Exists(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("lookup role %q: %w", role, err)
	}
	if !ok {
		s.logger.Error().Str("role", role.String()).Msg("role catalog is missing a default role")
		return nil, domain.ErrRoleNotConfigured
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", role.String()).Msg("account created")
	return created, nil
}

// Login verifies credentials and returns a bearer token for the account.
// Unknown usernames and wrong passwords produce the same error.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	blocked, err := s.throttle.Blocked(ctx, username)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle unavailable")
	}
	if blocked {
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("login lookup: %w", err)
	}
	if user == nil {
		s.hasher.Verify(password, s.dummyHash)
		s.recordFailure(ctx, username)
		return "", domain.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, username)
		return "", domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", domain.ErrInactiveUser
	}

	if err := s.throttle.Reset(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle reset failed")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}
	s.logger.Debug().Str("user_id", user.ID).Msg("login succeeded")
	return token, nil
}

func (s *AccountService) recordFailure(ctx context.Context, username string) {
	s.logger.Debug().Str("username", username).Msg("login rejected")
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle record failed")
	}
}

// GetSelf returns the principal's own account.
func (s *AccountService) GetSelf(_ context.Context, principal *domain.Principal) (*domain.User, error) {
	if principal == nil {
		return nil, domain.ErrUnauthenticated
	}
	u := principal.User
	return &u, nil
}

func (s *AccountService) ListUsers(ctx context.Context, principal *domain.Principal, page domain.Page) ([]domain.User, error) {
	if err := RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return s.users.List(ctx, page)
}

func (s *AccountService) UpdateRole(ctx context.Context, principal *domain.Principal, userID, roleName string) (*domain.User, error) {
	if err := RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(roleName)
	if err != nil {
		return nil, err
	}
	ok, err := s.roles.Exists(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("lookup role %q: %w", role, err)
	}
	if !ok {
		return nil, domain.ErrInvalidRole
	}

	updated, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("admin_id", principal.ID).Str("user_id", userID).Str("role", role.String()).Msg("role updated")
	return updated, nil
}

// UpdateStatus activates or deactivates an account. Admins cannot deactivate
// themselves.
func (s *AccountService) UpdateStatus(ctx context.Context, principal *domain.Principal, userID string, active bool) (*domain.User, error) {
	if err := RequireRole(principal, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if !active {
		// Compare stored ids; the path id may be an alias a store resolves
		// to the same account.
		target, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if target.ID == principal.ID {
			return nil, domain.ErrSelfDeactivation
		}
		userID = target.ID
	}

	updated, err := s.users.UpdateStatus(ctx, userID, active)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("admin_id", principal.ID).Str("user_id", userID).Bool("is_active", active).Msg("status updated")
	return updated, nil
}

// EnsureAdmin creates username as an active admin, or promotes and
// reactivates it when it already exists. The stored password of an existing
// account is left unchanged.
func (s *AccountService) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return s.createAccount(ctx, username, password, domain.RoleAdmin)
	}
	if err != nil {
		return nil, err
	}

	if existing.Role != domain.RoleAdmin {
		if existing, err = s.users.UpdateRole(ctx, existing.ID, domain.RoleAdmin); err != nil {
			return nil, err
		}
	}
	if !existing.IsActive {
		if existing, err = s.users.UpdateStatus(ctx, existing.ID, true); err != nil {
			return nil, err
		}
	}
	return existing, nil
}

type noopThrottle struct{}

func (noopThrottle) Blocked(context.Context, string) (bool, error) { return false, nil }
func (noopThrottle) RecordFailure(context.Context, string) error   { return nil }
func (noopThrottle) Reset(context.Context, string) error           { return nil }
