package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/danindra/workforce-scheduling/internal"
)

type RepositoryAPI interface {
	EmployeeStats(ctx context.Context, companyID int64, from, to time.Time) ([]EmployeeStats, error)
	CompanyStats(ctx context.Context, companyID int64, from, to time.Time) (*CompanyStats, error)
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

// EmployeeStats reports per-employee workload within the window.
func (s *Service) EmployeeStats(ctx context.Context, principal *internal.Principal, window Window) ([]EmployeeStats, error) {
	window = normalize(window)
	stats, err := s.repo.EmployeeStats(ctx, principal.CompanyID, window.From, window.To)
	if err != nil {
		s.logger.Error("failed to compute employee stats", "company_id", principal.CompanyID, "error", err)
		return nil, internal.NewInternalError("failed to compute employee stats", err)
	}
	return stats, nil
}

// CompanyStats reports the company-wide roll-up within the window.
func (s *Service) CompanyStats(ctx context.Context, principal *internal.Principal, window Window) (*CompanyStats, error) {
	window = normalize(window)
	stats, err := s.repo.CompanyStats(ctx, principal.CompanyID, window.From, window.To)
	if err != nil {
		s.logger.Error("failed to compute company stats", "company_id", principal.CompanyID, "error", err)
		return nil, internal.NewInternalError("failed to compute company stats", err)
	}
	return stats, nil
}

func normalize(w Window) Window {
	if w.From.IsZero() || w.To.IsZero() || !w.To.After(w.From) {
		return DefaultWindow()
	}
	return w
}
