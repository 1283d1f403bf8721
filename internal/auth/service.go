package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/danindra/workforce-scheduling/internal"
	userDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/user"
	"github.com/danindra/workforce-scheduling/internal/rbac"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository resolves registered identities.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetSystemAdmin(ctx context.Context) (*userDatamodel.User, error)
	GetFirstByRoleClass(ctx context.Context, companyID int64, class string) (*userDatamodel.User, error)
	TouchLastLogin(ctx context.Context, userID int64) error
}

// SessionRepository persists principal snapshots keyed by session id.
type SessionRepository interface {
	Create(ctx context.Context, id string, userID int64, principal string, expiresAt time.Time) error
	GetPayload(ctx context.Context, id string) (string, time.Time, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	users       UserRepository
	sessions    SessionRepository
	tokens      TokenGenerator
	bcryptCost  int
	sessionTTL  time.Duration
	demoSwitch  bool
	logger      *slog.Logger
}

func NewService(users UserRepository, sessions SessionRepository, tokens TokenGenerator, bcryptCost int, sessionTTL time.Duration, demoSwitch bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:      users,
		sessions:   sessions,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		sessionTTL: sessionTTL,
		demoSwitch: demoSwitch,
		logger:     logger,
	}
}

// SignIn validates credentials and activates a principal. Lookup misses and
// password mismatches are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, dto LoginDTO) (*AuthResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return s.activate(ctx, user)
}

// SignInWithSSO activates the administrative demo account without a
// credential check. Placeholder for a federated exchange: a real provider
// integration must keep the activate-on-success contract.
func (s *Service) SignInWithSSO(ctx context.Context) (*AuthResult, error) {
	user, err := s.users.GetSystemAdmin(ctx)
	if err != nil {
		s.logger.Error("sso sign-in: no administrative account available", "error", err)
		return nil, ErrInvalidCredentials
	}
	return s.activate(ctx, user)
}

// SignOut clears the session referenced by the token. Idempotent: invalid or
// already-cleared tokens are a no-op.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		s.logger.Warn("sign-out: failed to delete session", "session_id", claims.SessionID, "error", err)
	}
	return nil
}

// RestoreSession rebuilds the active principal from a persisted snapshot.
// Any defect in the stored data behaves as "no session": the error values
// returned here are mapped to an unauthenticated response, never a crash.
func (s *Service) RestoreSession(ctx context.Context, token string) (*internal.Principal, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	payload, expiresAt, err := s.sessions.GetPayload(ctx, claims.SessionID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(expiresAt) {
		_ = s.sessions.Delete(ctx, claims.SessionID)
		return nil, ErrTokenExpired
	}

	var principal internal.Principal
	if err := json.Unmarshal([]byte(payload), &principal); err != nil || principal.ID == 0 {
		s.logger.Warn("restore: discarding malformed session payload", "session_id", claims.SessionID)
		_ = s.sessions.Delete(ctx, claims.SessionID)
		return nil, ErrMalformedSession
	}

	if !principal.IsActive {
		return nil, ErrUserInactive
	}

	return &principal, nil
}

// SwitchRole reassigns the session to a seeded principal of the requested
// role class so a single demo session can preview all three experiences.
// Disabled outside demo configurations.
func (s *Service) SwitchRole(ctx context.Context, current *internal.Principal, class rbac.RoleClass) (*AuthResult, error) {
	if !s.demoSwitch {
		return nil, ErrNoDemoAccount
	}

	user, err := s.users.GetFirstByRoleClass(ctx, current.CompanyID, class.String())
	if err != nil {
		return nil, ErrNoDemoAccount
	}

	return s.activate(ctx, user)
}

// DemoSwitchEnabled reports whether the demo role-switch endpoint is wired.
func (s *Service) DemoSwitchEnabled() bool {
	return s.demoSwitch
}

func (s *Service) activate(ctx context.Context, user *userDatamodel.User) (*AuthResult, error) {
	principal := principalFromUser(user)

	payload, err := json.Marshal(principal)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(s.sessionTTL)
	if err := s.sessions.Create(ctx, sessionID, user.ID, string(payload), expiresAt); err != nil {
		return nil, err
	}

	token, tokenExpiry, err := s.tokens.GenerateToken(sessionID, user.ID, user.Email)
	if err != nil {
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, err
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	s.logger.Info("principal activated", "user_id", user.ID, "role_id", user.RoleID)

	return &AuthResult{
		AccessToken: token,
		ExpiresAt:   tokenExpiry,
		Principal:   principal,
	}, nil
}

func principalFromUser(user *userDatamodel.User) *internal.Principal {
	return &internal.Principal{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		RoleID:       user.RoleID,
		CompanyID:    user.CompanyID,
		DepartmentID: user.DepartmentID,
		ManagerID:    user.ManagerID,
		JobTitle:     user.JobTitle,
		AvatarURL:    user.AvatarURL,
		IsActive:     user.IsActive,
	}
}

// HashPassword creates a bcrypt hash with the service's configured cost.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
