package shiftswap

import (
	"context"
	"log/slog"
	"time"

	"github.com/danindra/workforce-scheduling/internal"
	requestDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/request"
	scheduleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/schedule"
	"github.com/danindra/workforce-scheduling/internal/core/events"
)

type RepositoryAPI interface {
	List(ctx context.Context, companyID int64, filter ListFilter) ([]*requestDatamodel.ShiftSwapRequest, error)
	GetByID(ctx context.Context, id int64) (*requestDatamodel.ShiftSwapRequest, error)
	Create(ctx context.Context, swap *requestDatamodel.ShiftSwapRequest) error
	Update(ctx context.Context, swap *requestDatamodel.ShiftSwapRequest) error
	// ApproveSwap persists the settled swap and both shift reassignments
	// atomically. Either all three rows change or none do.
	ApproveSwap(ctx context.Context, swap *requestDatamodel.ShiftSwapRequest) error
}

// ShiftStore is the slice of the schedule repository swaps need to validate
// a proposal.
type ShiftStore interface {
	GetByID(ctx context.Context, id int64) (*scheduleDatamodel.Shift, error)
}

// SwapPolicy answers whether the company allows shift swapping at all.
type SwapPolicy interface {
	AllowsShiftSwapping(ctx context.Context, companyID int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	shifts ShiftStore
	policy SwapPolicy
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, shifts ShiftStore, policy SwapPolicy, bus *events.EventBus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		shifts: shifts,
		policy: policy,
		bus:    bus,
		logger: logger,
	}
}

// Create files a swap proposal. The requester must own the offered shift and
// the target shift must belong to the named colleague, both in the same
// company.
func (s *Service) Create(ctx context.Context, principal *internal.Principal, dto CreateSwapDTO) (*Swap, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	allowed, err := s.policy.AllowsShiftSwapping(ctx, principal.CompanyID)
	if err != nil {
		return nil, internal.NewInternalError("failed to read company policy", err)
	}
	if !allowed {
		return nil, internal.ErrSwapsDisabled
	}

	requesterShift, err := s.shiftScoped(ctx, principal, dto.RequesterShiftID)
	if err != nil {
		return nil, err
	}
	if requesterShift.UserID != principal.ID {
		return nil, internal.ErrShiftNotOwned
	}

	targetShift, err := s.shiftScoped(ctx, principal, dto.TargetShiftID)
	if err != nil {
		return nil, err
	}
	if targetShift.UserID != dto.TargetUserID {
		return nil, internal.NewValidationFieldError("target_shift_id",
			"target shift does not belong to the named employee", internal.ErrCodeValidationFailed)
	}

	m := &requestDatamodel.ShiftSwapRequest{
		RequesterID:      principal.ID,
		TargetUserID:     dto.TargetUserID,
		RequesterShiftID: dto.RequesterShiftID,
		TargetShiftID:    dto.TargetShiftID,
		CompanyID:        principal.CompanyID,
		Reason:           dto.Reason,
		Status:           StatusPending,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("failed to create swap request", "requester_id", principal.ID, "error", err)
		return nil, internal.NewInternalError("failed to create swap request", err)
	}

	s.logger.Info("swap request created", "swap_id", m.ID, "requester_id", principal.ID)
	return FromDataModel(m), nil
}

func (s *Service) List(ctx context.Context, principal *internal.Principal, filter ListFilter) ([]*Swap, error) {
	models, err := s.repo.List(ctx, principal.CompanyID, filter)
	if err != nil {
		s.logger.Error("failed to list swap requests", "company_id", principal.CompanyID, "error", err)
		return nil, internal.NewInternalError("failed to list swap requests", err)
	}

	swaps := make([]*Swap, len(models))
	for i, m := range models {
		swaps[i] = FromDataModel(m)
	}
	return swaps, nil
}

// ListOwn returns swaps the caller proposed or was named in.
func (s *Service) ListOwn(ctx context.Context, principal *internal.Principal, filter ListFilter) ([]*Swap, error) {
	filter.UserID = &principal.ID
	return s.List(ctx, principal, filter)
}

func (s *Service) Get(ctx context.Context, principal *internal.Principal, id int64) (*Swap, error) {
	m, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(m), nil
}

// Approve settles the swap and exchanges the two shifts' assignees. The
// reassignment happens once, on the pending-to-approved transition.
func (s *Service) Approve(ctx context.Context, principal *internal.Principal, id int64) (*Swap, error) {
	m, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if m.Status != StatusPending {
		return nil, internal.ErrRequestNotPending
	}

	now := time.Now()
	m.Status = StatusApproved
	m.ReviewedAt = &now
	m.ReviewedBy = &principal.ID

	if err := s.repo.ApproveSwap(ctx, m); err != nil {
		m.Status = StatusPending
		m.ReviewedAt = nil
		m.ReviewedBy = nil
		s.logger.Error("failed to approve swap request", "swap_id", m.ID, "error", err)
		return nil, internal.NewInternalError("failed to approve swap request", err)
	}

	s.logger.Info("swap request reviewed", "swap_id", m.ID, "status", StatusApproved, "reviewer_id", principal.ID)

	s.bus.Publish(ctx, events.NewShiftSwapApprovedEvent(
		m.ID, m.RequesterID, m.TargetUserID, m.RequesterShiftID, m.TargetShiftID))

	return FromDataModel(m), nil
}

func (s *Service) Reject(ctx context.Context, principal *internal.Principal, id int64) (*Swap, error) {
	m, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if m.Status != StatusPending {
		return nil, internal.ErrRequestNotPending
	}

	if err := s.settle(ctx, m, principal, StatusRejected); err != nil {
		return nil, err
	}
	return FromDataModel(m), nil
}

func (s *Service) settle(ctx context.Context, m *requestDatamodel.ShiftSwapRequest, principal *internal.Principal, status string) error {
	now := time.Now()
	m.Status = status
	m.ReviewedAt = &now
	m.ReviewedBy = &principal.ID

	if err := s.repo.Update(ctx, m); err != nil {
		s.logger.Error("failed to settle swap request", "swap_id", m.ID, "error", err)
		return internal.NewInternalError("failed to settle swap request", err)
	}

	s.logger.Info("swap request reviewed", "swap_id", m.ID, "status", status, "reviewer_id", principal.ID)
	return nil
}

func (s *Service) getScoped(ctx context.Context, principal *internal.Principal, id int64) (*requestDatamodel.ShiftSwapRequest, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, internal.ErrRequestNotFound
	}
	if m.CompanyID != principal.CompanyID {
		return nil, internal.ErrRequestNotFound
	}
	return m, nil
}

func (s *Service) shiftScoped(ctx context.Context, principal *internal.Principal, id int64) (*scheduleDatamodel.Shift, error) {
	shift, err := s.shifts.GetByID(ctx, id)
	if err != nil || shift == nil {
		return nil, internal.ErrShiftNotFound
	}
	if shift.CompanyID != principal.CompanyID {
		return nil, internal.ErrShiftNotFound
	}
	return shift, nil
}
