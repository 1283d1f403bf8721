package role

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danindra/workforce-scheduling/internal"
	roleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/role"
	"github.com/danindra/workforce-scheduling/internal/rbac"
)

type RepositoryAPI interface {
	rbac.RoleProvider

	ListByCompany(ctx context.Context, companyID int64) ([]*roleDatamodel.Role, error)
	GetByID(ctx context.Context, id int64) (*roleDatamodel.Role, error)
	GetByName(ctx context.Context, companyID int64, name string) (*roleDatamodel.Role, error)
	PermissionsFor(ctx context.Context, roleID int64) ([]string, error)
	Create(ctx context.Context, role *roleDatamodel.Role, permissions []string) error
	Update(ctx context.Context, role *roleDatamodel.Role, permissions []string) error
	Delete(ctx context.Context, id int64) error
	CountUsers(ctx context.Context, roleID int64) (int64, error)
}

type Service struct {
	repo     RepositoryAPI
	registry *rbac.Registry
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, registry *rbac.Registry, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		registry: registry,
		logger:   logger,
	}
}

// List returns the principal's company roles with their permission sets and
// holder counts.
func (s *Service) List(ctx context.Context, principal *internal.Principal) ([]*RoleResponse, error) {
	models, err := s.repo.ListByCompany(ctx, principal.CompanyID)
	if err != nil {
		s.logger.Error("failed to list roles", "company_id", principal.CompanyID, "error", err)
		return nil, internal.NewInternalError("failed to list roles", err)
	}

	responses := make([]*RoleResponse, 0, len(models))
	for _, m := range models {
		resp, err := s.toResponse(ctx, m)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *Service) Get(ctx context.Context, principal *internal.Principal, id int64) (*RoleResponse, error) {
	m, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, m)
}

func (s *Service) Create(ctx context.Context, principal *internal.Principal, dto CreateRoleDTO) (*RoleResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, _ := s.repo.GetByName(ctx, principal.CompanyID, dto.Name); existing != nil {
		return nil, internal.ErrRoleNameTaken
	}

	class := rbac.ParseRoleClass(dto.Class)
	model := &roleDatamodel.Role{
		Name:        dto.Name,
		DisplayName: dto.DisplayName,
		Class:       class.String(),
		CompanyID:   principal.CompanyID,
	}

	perms := parsePermissions(dto.Permissions)
	if err := s.repo.Create(ctx, model, permissionNames(perms)); err != nil {
		s.logger.Error("failed to create role", "name", dto.Name, "error", err)
		return nil, internal.NewInternalError("failed to create role", err)
	}

	s.reloadRegistry(ctx)
	s.logger.Info("role created", "role_id", model.ID, "name", model.Name, "actor_id", principal.ID)

	return s.toResponse(ctx, model)
}

func (s *Service) Update(ctx context.Context, principal *internal.Principal, id int64, dto UpdateRoleDTO) (*RoleResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if m.IsSystemDefined {
		return nil, internal.ErrSystemRoleImmutable
	}

	m.DisplayName = dto.DisplayName
	perms := parsePermissions(dto.Permissions)
	if err := s.repo.Update(ctx, m, permissionNames(perms)); err != nil {
		s.logger.Error("failed to update role", "role_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update role", err)
	}

	s.reloadRegistry(ctx)
	s.logger.Info("role updated", "role_id", id, "actor_id", principal.ID)

	return s.toResponse(ctx, m)
}

// Clone copies a role, including a system-defined one, into a fresh mutable
// role. Cloning is the supported way to customize a system role.
func (s *Service) Clone(ctx context.Context, principal *internal.Principal, id int64) (*RoleResponse, error) {
	source, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	perms, err := s.repo.PermissionsFor(ctx, source.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role permissions", err)
	}

	clone := &roleDatamodel.Role{
		Name:        s.availableName(ctx, principal.CompanyID, source.Name+"_copy"),
		DisplayName: "Copy of " + source.DisplayName,
		Class:       source.Class,
		CompanyID:   source.CompanyID,
	}

	if err := s.repo.Create(ctx, clone, perms); err != nil {
		s.logger.Error("failed to clone role", "source_role_id", id, "error", err)
		return nil, internal.NewInternalError("failed to clone role", err)
	}

	s.reloadRegistry(ctx)
	s.logger.Info("role cloned", "source_role_id", id, "role_id", clone.ID, "actor_id", principal.ID)

	return s.toResponse(ctx, clone)
}

// Delete removes a role. Refused while any user still references it, and
// always refused for system-defined roles.
func (s *Service) Delete(ctx context.Context, principal *internal.Principal, id int64) error {
	m, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return err
	}

	if m.IsSystemDefined {
		return internal.ErrSystemRoleImmutable
	}

	holders, err := s.repo.CountUsers(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to count role holders", err)
	}
	if holders > 0 {
		return internal.ErrRoleInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete role", "role_id", id, "error", err)
		return internal.NewInternalError("failed to delete role", err)
	}

	s.reloadRegistry(ctx)
	s.logger.Info("role deleted", "role_id", id, "actor_id", principal.ID)

	return nil
}

// getScoped loads a role and enforces tenant isolation: a role belonging to
// another company is reported as not found, not as forbidden.
func (s *Service) getScoped(ctx context.Context, principal *internal.Principal, id int64) (*roleDatamodel.Role, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, internal.ErrRoleNotFound
	}
	if m.CompanyID != principal.CompanyID {
		return nil, internal.ErrRoleNotFound
	}
	return m, nil
}

func (s *Service) toResponse(ctx context.Context, m *roleDatamodel.Role) (*RoleResponse, error) {
	perms, err := s.repo.PermissionsFor(ctx, m.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load role permissions", err)
	}

	holders, err := s.repo.CountUsers(ctx, m.ID)
	if err != nil {
		return nil, internal.NewInternalError("failed to count role holders", err)
	}

	return &RoleResponse{
		Role:      FromDataModel(m, parsePermissions(perms)),
		UserCount: holders,
	}, nil
}

// availableName appends a numeric suffix until the machine name is free.
func (s *Service) availableName(ctx context.Context, companyID int64, base string) string {
	name := base
	for i := 2; ; i++ {
		existing, _ := s.repo.GetByName(ctx, companyID, name)
		if existing == nil {
			return name
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
}

func (s *Service) reloadRegistry(ctx context.Context) {
	if err := s.registry.Reload(ctx, s.repo); err != nil {
		s.logger.Error("failed to reload role registry", "error", err)
	}
}

func permissionNames(perms []rbac.Permission) []string {
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = p.String()
	}
	return names
}
