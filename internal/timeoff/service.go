package timeoff

import (
	"context"
	"log/slog"
	"time"

	"github.com/danindra/workforce-scheduling/internal"
	requestDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/request"
	"github.com/danindra/workforce-scheduling/internal/core/events"
)

type RepositoryAPI interface {
	List(ctx context.Context, companyID int64, filter ListFilter) ([]*requestDatamodel.TimeOffRequest, error)
	GetByID(ctx context.Context, id int64) (*requestDatamodel.TimeOffRequest, error)
	Create(ctx context.Context, req *requestDatamodel.TimeOffRequest) error
	Update(ctx context.Context, req *requestDatamodel.TimeOffRequest) error
}

type Service struct {
	repo   RepositoryAPI
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// Create files a time-off request for the caller. Everyone may request time
// off for themselves.
func (s *Service) Create(ctx context.Context, principal *internal.Principal, dto CreateRequestDTO) (*Request, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m := &requestDatamodel.TimeOffRequest{
		UserID:    principal.ID,
		ManagerID: principal.ManagerID,
		CompanyID: principal.CompanyID,
		StartDate: dto.StartDate,
		EndDate:   dto.EndDate,
		Reason:    dto.Reason,
		Status:    StatusPending,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("failed to create time-off request", "user_id", principal.ID, "error", err)
		return nil, internal.NewInternalError("failed to create time-off request", err)
	}

	s.logger.Info("time-off request created", "request_id", m.ID, "user_id", principal.ID)
	return FromDataModel(m), nil
}

// List returns the company's requests. Used by reviewers.
func (s *Service) List(ctx context.Context, principal *internal.Principal, filter ListFilter) ([]*Request, error) {
	models, err := s.repo.List(ctx, principal.CompanyID, filter)
	if err != nil {
		s.logger.Error("failed to list time-off requests", "company_id", principal.CompanyID, "error", err)
		return nil, internal.NewInternalError("failed to list time-off requests", err)
	}

	requests := make([]*Request, len(models))
	for i, m := range models {
		requests[i] = FromDataModel(m)
	}
	return requests, nil
}

// ListOwn returns the caller's own requests.
func (s *Service) ListOwn(ctx context.Context, principal *internal.Principal, filter ListFilter) ([]*Request, error) {
	filter.UserID = &principal.ID
	return s.List(ctx, principal, filter)
}

func (s *Service) Get(ctx context.Context, principal *internal.Principal, id int64) (*Request, error) {
	m, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(m), nil
}

func (s *Service) Approve(ctx context.Context, principal *internal.Principal, id int64, dto ReviewDTO) (*Request, error) {
	return s.review(ctx, principal, id, StatusApproved, dto.Notes)
}

func (s *Service) Reject(ctx context.Context, principal *internal.Principal, id int64, dto ReviewDTO) (*Request, error) {
	return s.review(ctx, principal, id, StatusRejected, dto.Notes)
}

// review settles a pending request. Settled requests stay settled: a second
// review attempt is a conflict, not a state change.
func (s *Service) review(ctx context.Context, principal *internal.Principal, id int64, status, notes string) (*Request, error) {
	m, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if m.Status != StatusPending {
		return nil, internal.ErrRequestNotPending
	}

	now := time.Now()
	m.Status = status
	m.Notes = notes
	m.ReviewedAt = &now
	m.ReviewedBy = &principal.ID

	if err := s.repo.Update(ctx, m); err != nil {
		s.logger.Error("failed to review time-off request", "request_id", id, "error", err)
		return nil, internal.NewInternalError("failed to review time-off request", err)
	}

	eventType := events.EventTypeTimeOffApproved
	if status == StatusRejected {
		eventType = events.EventTypeTimeOffRejected
	}
	s.bus.Publish(ctx, events.NewTimeOffReviewedEvent(eventType, m.ID, m.UserID, principal.ID, m.StartDate, m.EndDate))

	s.logger.Info("time-off request reviewed",
		"request_id", id, "status", status, "reviewer_id", principal.ID)

	return FromDataModel(m), nil
}

func (s *Service) getScoped(ctx context.Context, principal *internal.Principal, id int64) (*requestDatamodel.TimeOffRequest, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, internal.ErrRequestNotFound
	}
	if m.CompanyID != principal.CompanyID {
		return nil, internal.ErrRequestNotFound
	}
	return m, nil
}
