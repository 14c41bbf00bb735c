package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	"github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// AuthService coordinates sign-up, login and password recovery.
type AuthService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
	resetTTL   time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	Dispatcher events.Dispatcher
}

// SignUpInput describes the sign-up payload.
type SignUpInput struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	RoleID    string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users: deps.UserRepo,
		roles: deps.RoleRepo,
		tokenMgr: auth.NewTokenManager(
			cfg.Auth.AccessTokenSecret,
			cfg.Auth.AccessTokenTTLMinutes,
			cfg.Auth.RefreshTokenSecret,
			cfg.Auth.RefreshTokenTTLMinutes,
		),
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   cfg.Auth.ResetTokenTTL(),
	}
}

// SignUp creates a new account. Username and email must both be free and the
// role id must resolve; the unique indexes back the pre-check.
func (s *AuthService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, *auth.TokenPair, error) {
	if _, err := s.users.GetByUsernameOrEmail(ctx, input.Username, input.Email); err == nil {
		return nil, nil, errorutil.NewConflict("username or email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, errorutil.MapError(err)
	}

	if _, err := s.roles.GetByID(ctx, input.RoleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, errorutil.NewValidationError("role does not exist", map[string]any{"role": input.RoleID})
		}
		return nil, nil, errorutil.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, errorutil.MapError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		RoleID:       input.RoleID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, errorutil.MapError(err)
	}

	pair, err := s.tokenMgr.GeneratePair(user.ID)
	if err != nil {
		return nil, nil, errorutil.MapError(err)
	}
	return user, pair, nil
}

// Login authenticates by username. Unknown users and wrong passwords produce
// the same generic message.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *auth.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, errorutil.NewUnauthorized("invalid credentials")
		}
		return nil, nil, errorutil.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, errorutil.NewUnauthorized("invalid credentials")
	}

	pair, err := s.tokenMgr.GeneratePair(user.ID)
	if err != nil {
		return nil, nil, errorutil.MapError(err)
	}
	return user, pair, nil
}

// ForgotPassword stores an opaque reset token on the user record and hands it
// to the delivery collaborator via the event dispatcher.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errorutil.NewNotFound("user", map[string]any{"email": email})
		}
		return "", errorutil.MapError(err)
	}

	token, err := generateResetToken()
	if err != nil {
		return "", errorutil.MapError(err)
	}
	expiresAt := time.Now().Add(s.resetTTL)

	user.ResetToken = &token
	user.ResetExpiresAt = &expiresAt
	if err := s.users.Update(ctx, user); err != nil {
		return "", errorutil.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventPasswordResetRequested,
		ActorID: user.ID,
		Payload: events.PasswordResetRequestedPayload{
			UserID:    user.ID,
			Email:     user.Email,
			Token:     token,
			ExpiresAt: expiresAt,
		},
	})
	return token, nil
}

// ResetPassword replaces the password and clears the reset token fields.
func (s *AuthService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errorutil.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return errorutil.MapError(err)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return errorutil.MapError(err)
	}

	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetExpiresAt = nil
	if err := s.users.Update(ctx, user); err != nil {
		return errorutil.MapError(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateResetToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
