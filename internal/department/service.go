package department

import (
	"context"
	"log/slog"

	"github.com/danindra/workforce-scheduling/internal"
	departmentDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	ListByCompany(ctx context.Context, companyID int64) ([]*departmentDatamodel.Department, error)
	GetByID(ctx context.Context, id int64) (*departmentDatamodel.Department, error)
	Create(ctx context.Context, dept *departmentDatamodel.Department) error
	Update(ctx context.Context, dept *departmentDatamodel.Department) error
	Delete(ctx context.Context, id int64) error
	CountMembers(ctx context.Context, departmentID int64) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, principal *internal.Principal) ([]*Department, error) {
	models, err := s.repo.ListByCompany(ctx, principal.CompanyID)
	if err != nil {
		s.logger.Error("failed to list departments", "company_id", principal.CompanyID, "error", err)
		return nil, internal.NewInternalError("failed to list departments", err)
	}

	departments := make([]*Department, len(models))
	for i, m := range models {
		count, err := s.repo.CountMembers(ctx, m.ID)
		if err != nil {
			return nil, internal.NewInternalError("failed to count department members", err)
		}
		departments[i] = FromDataModel(m, count)
	}
	return departments, nil
}

func (s *Service) Get(ctx context.Context, principal *internal.Principal, id int64) (*Department, error) {
	m, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountMembers(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to count department members", err)
	}
	return FromDataModel(m, count), nil
}

func (s *Service) Create(ctx context.Context, principal *internal.Principal, dto DepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m := &departmentDatamodel.Department{
		Name:        dto.Name,
		Description: dto.Description,
		CompanyID:   principal.CompanyID,
		ManagerID:   dto.ManagerID,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("failed to create department", "name", dto.Name, "error", err)
		return nil, internal.NewInternalError("failed to create department", err)
	}

	s.logger.Info("department created", "department_id", m.ID, "actor_id", principal.ID)
	return FromDataModel(m, 0), nil
}

func (s *Service) Update(ctx context.Context, principal *internal.Principal, id int64, dto DepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	m.Name = dto.Name
	m.Description = dto.Description
	m.ManagerID = dto.ManagerID

	if err := s.repo.Update(ctx, m); err != nil {
		s.logger.Error("failed to update department", "department_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update department", err)
	}

	count, err := s.repo.CountMembers(ctx, id)
	if err != nil {
		return nil, internal.NewInternalError("failed to count department members", err)
	}

	s.logger.Info("department updated", "department_id", id, "actor_id", principal.ID)
	return FromDataModel(m, count), nil
}

// Delete refuses while employees are still assigned to the department.
func (s *Service) Delete(ctx context.Context, principal *internal.Principal, id int64) error {
	if _, err := s.getScoped(ctx, principal, id); err != nil {
		return err
	}

	members, err := s.repo.CountMembers(ctx, id)
	if err != nil {
		return internal.NewInternalError("failed to count department members", err)
	}
	if members > 0 {
		return internal.ErrDepartmentInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete department", "department_id", id, "error", err)
		return internal.NewInternalError("failed to delete department", err)
	}

	s.logger.Info("department deleted", "department_id", id, "actor_id", principal.ID)
	return nil
}

func (s *Service) getScoped(ctx context.Context, principal *internal.Principal, id int64) (*departmentDatamodel.Department, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, internal.ErrDepartmentNotFound
	}
	if m.CompanyID != principal.CompanyID {
		return nil, internal.ErrDepartmentNotFound
	}
	return m, nil
}
