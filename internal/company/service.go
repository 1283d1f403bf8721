package company

import (
	"context"
	"log/slog"

	"github.com/danindra/workforce-scheduling/internal"
	companyDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/company"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*companyDatamodel.Company, error)
	Update(ctx context.Context, company *companyDatamodel.Company) error
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

// Get returns the caller's own company. There is no cross-company read.
func (s *Service) Get(ctx context.Context, principal *internal.Principal) (*Company, error) {
	m, err := s.repo.GetByID(ctx, principal.CompanyID)
	if err != nil || m == nil {
		return nil, internal.ErrCompanyNotFound
	}
	return FromDataModel(m), nil
}

func (s *Service) Update(ctx context.Context, principal *internal.Principal, dto UpdateCompanyDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.repo.GetByID(ctx, principal.CompanyID)
	if err != nil || m == nil {
		return nil, internal.ErrCompanyNotFound
	}

	m.Name = dto.Name
	m.LogoURL = dto.LogoURL
	if dto.Settings != nil {
		m.TimeZone = dto.Settings.TimeZone
		m.WorkWeekStart = dto.Settings.WorkWeekStart
		m.DefaultShiftHours = dto.Settings.DefaultShiftHours
		m.AllowShiftSwapping = dto.Settings.AllowShiftSwapping
		m.RequireManagerApproval = dto.Settings.RequireManagerApproval
	}

	if err := s.repo.Update(ctx, m); err != nil {
		s.logger.Error("failed to update company", "company_id", m.ID, "error", err)
		return nil, internal.NewInternalError("failed to update company", err)
	}

	s.logger.Info("company updated", "company_id", m.ID, "actor_id", principal.ID)
	return FromDataModel(m), nil
}

// AllowsShiftSwapping implements the swap policy consulted before any swap
// request is filed.
func (s *Service) AllowsShiftSwapping(ctx context.Context, companyID int64) (bool, error) {
	m, err := s.repo.GetByID(ctx, companyID)
	if err != nil || m == nil {
		return false, internal.ErrCompanyNotFound
	}
	return m.AllowShiftSwapping, nil
}
