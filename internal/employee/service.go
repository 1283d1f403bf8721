package employee

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/danindra/workforce-scheduling/internal"
	userDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/user"
	"github.com/danindra/workforce-scheduling/internal/rbac"
)

type RepositoryAPI interface {
	List(ctx context.Context, companyID int64, filter ListFilter) ([]*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	Create(ctx context.Context, user *userDatamodel.User) error
	Update(ctx context.Context, user *userDatamodel.User) error
	SetActive(ctx context.Context, id int64, active bool) error
	DefaultRoleID(ctx context.Context, companyID int64) (int64, error)
}

type Service struct {
	repo       RepositoryAPI
	registry   *rbac.Registry
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, registry *rbac.Registry, bcryptCost int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		registry:   registry,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) List(ctx context.Context, principal *internal.Principal, filter ListFilter) ([]*Employee, error) {
	users, err := s.repo.List(ctx, principal.CompanyID, filter)
	if err != nil {
		s.logger.Error("failed to list employees", "company_id", principal.CompanyID, "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}

	employees := make([]*Employee, len(users))
	for i, u := range users {
		employees[i] = s.withRoleName(FromDataModel(u))
	}
	return employees, nil
}

func (s *Service) Get(ctx context.Context, principal *internal.Principal, id int64) (*Employee, error) {
	u, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return s.withRoleName(FromDataModel(u)), nil
}

// Create provisions an account. The email must be unique system-wide; when no
// role is named the company's default role is assigned.
func (s *Service) Create(ctx context.Context, principal *internal.Principal, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, _ := s.repo.GetByEmail(ctx, dto.Email); existing != nil {
		return nil, internal.ErrEmailTaken
	}

	roleID, err := s.resolveRole(ctx, principal, dto.RoleID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &userDatamodel.User{
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: string(hash),
		RoleID:       roleID,
		CompanyID:    principal.CompanyID,
		DepartmentID: dto.DepartmentID,
		ManagerID:    dto.ManagerID,
		JobTitle:     dto.JobTitle,
		PhoneNumber:  dto.PhoneNumber,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("failed to create employee", "email", dto.Email, "error", err)
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee created", "employee_id", u.ID, "actor_id", principal.ID)
	return s.withRoleName(FromDataModel(u)), nil
}

// Update edits profile fields, including role reassignment. The new role takes
// effect on the holder's next session restore.
func (s *Service) Update(ctx context.Context, principal *internal.Principal, id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if dto.RoleID != nil && *dto.RoleID != u.RoleID {
		if !s.registry.BelongsTo(*dto.RoleID, principal.CompanyID) {
			return nil, internal.ErrRoleNotFound
		}
		u.RoleID = *dto.RoleID
	}

	u.Name = dto.Name
	u.DepartmentID = dto.DepartmentID
	u.ManagerID = dto.ManagerID
	u.JobTitle = dto.JobTitle
	u.PhoneNumber = dto.PhoneNumber
	u.AvatarURL = dto.AvatarURL

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("failed to update employee", "employee_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update employee", err)
	}

	s.logger.Info("employee updated", "employee_id", id, "actor_id", principal.ID)
	return s.withRoleName(FromDataModel(u)), nil
}

// Deactivate is the delete operation for accounts. The row stays so schedule
// history keeps its author, but sign-in and session restore are refused.
func (s *Service) Deactivate(ctx context.Context, principal *internal.Principal, id int64) error {
	return s.setActive(ctx, principal, id, false)
}

func (s *Service) Reactivate(ctx context.Context, principal *internal.Principal, id int64) error {
	return s.setActive(ctx, principal, id, true)
}

func (s *Service) setActive(ctx context.Context, principal *internal.Principal, id int64, active bool) error {
	if _, err := s.getScoped(ctx, principal, id); err != nil {
		return err
	}

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		s.logger.Error("failed to change employee status", "employee_id", id, "error", err)
		return internal.NewInternalError("failed to change employee status", err)
	}

	s.logger.Info("employee status changed", "employee_id", id, "active", active, "actor_id", principal.ID)
	return nil
}

func (s *Service) getScoped(ctx context.Context, principal *internal.Principal, id int64) (*userDatamodel.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil || u == nil {
		return nil, internal.ErrEmployeeNotFound
	}
	if u.CompanyID != principal.CompanyID {
		return nil, internal.ErrEmployeeNotFound
	}
	return u, nil
}

func (s *Service) resolveRole(ctx context.Context, principal *internal.Principal, roleID *int64) (int64, error) {
	if roleID != nil {
		if !s.registry.BelongsTo(*roleID, principal.CompanyID) {
			return 0, internal.ErrRoleNotFound
		}
		return *roleID, nil
	}
	id, err := s.repo.DefaultRoleID(ctx, principal.CompanyID)
	if err != nil {
		return 0, internal.NewInternalError("no default role configured", err)
	}
	return id, nil
}

func (s *Service) withRoleName(e *Employee) *Employee {
	e.RoleName = s.registry.DisplayNameFor(e.RoleID)
	return e
}
