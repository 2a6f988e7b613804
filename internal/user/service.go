package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/rsydfhmy03/SEA-Catering/internal/apperr"
	"github.com/rsydfhmy03/SEA-Catering/internal/auth"
	"github.com/rsydfhmy03/SEA-Catering/internal/logger"
	"github.com/rsydfhmy03/SEA-Catering/internal/metrics"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Welcomer greets newly registered users. A failed greeting never fails
// the registration.
type Welcomer interface {
	SendWelcome(ctx context.Context, email, name string) error
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context, q ListQuery) ([]User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*User, error)
}

type service struct {
	repo     Repository
	tokens   *auth.TokenIssuer
	welcomer Welcomer
}

func NewService(repo Repository, tokens *auth.TokenIssuer, welcomer Welcomer) Service {
	return &service{
		repo:     repo,
		tokens:   tokens,
		welcomer: welcomer,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emailTaken() *apperr.Error {
	return apperr.Validation(apperr.Field("email", "Email already registered."))
}

func invalidCredentials() *apperr.Error {
	return apperr.New(apperr.KindUnauthenticated, "Invalid credentials.")
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, emailTaken()
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, strings.TrimSpace(req.FullName), email, passwordHash, auth.RoleUser)
	if err != nil {
		// Lost a race with a concurrent registration for the same address.
		if errors.Is(err, ErrEmailTaken) {
			return nil, emailTaken()
		}
		return nil, err
	}

	metrics.RecordRegistration()
	logger.Info("user registered", "user_id", user.ID.String())

	if s.welcomer != nil {
		if err := s.welcomer.SendWelcome(ctx, user.Email, user.FullName); err != nil {
			logger.Warn("failed to queue welcome email", "user_id", user.ID.String(), "error", err)
		}
	}

	return s.issue(user)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			metrics.RecordLogin("failure")
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		metrics.RecordLogin("failure")
		return nil, invalidCredentials()
	}

	metrics.RecordLogin("success")
	return s.issue(user)
}

// Refresh re-reads the user so a role change takes effect on the next pair.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	p, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidTokenType) {
			return nil, apperr.New(apperr.KindUnauthenticated, "Invalid token type.")
		}
		return nil, apperr.New(apperr.KindUnauthenticated, "Invalid or expired refresh token.")
	}

	id, err := uuid.Parse(p.UserID)
	if err != nil {
		return nil, apperr.New(apperr.KindUnauthenticated, "Invalid or expired refresh token.")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.New(apperr.KindUnauthenticated, "Invalid or expired refresh token.")
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *service) issue(user *User) (*AuthResponse, error) {
	pair, err := s.tokens.GenerateTokens(user.Principal())
	if err != nil {
		return nil, err
	}
	return &AuthResponse{TokenPair: pair, User: *user}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "User not found.")
		}
		return nil, err
	}
	return user, nil
}

func (s *service) List(ctx context.Context, q ListQuery) ([]User, error) {
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return s.repo.List(ctx, q)
}

func (s *service) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*User, error) {
	if role != auth.RoleUser && role != auth.RoleAdmin {
		return nil, apperr.Validation(apperr.Field("role", "role must be one of: user, admin"))
	}

	user, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "User not found.")
		}
		return nil, err
	}

	logger.Info("user role updated", "user_id", id.String(), "role", role)
	return user, nil
}
