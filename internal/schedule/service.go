package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/danindra/workforce-scheduling/internal"
	scheduleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/schedule"
	"github.com/danindra/workforce-scheduling/internal/core/events"
)

type RepositoryAPI interface {
	List(ctx context.Context, companyID int64, filter ListFilter) ([]*scheduleDatamodel.Shift, error)
	GetByID(ctx context.Context, id int64) (*scheduleDatamodel.Shift, error)
	Create(ctx context.Context, shift *scheduleDatamodel.Shift) error
	Update(ctx context.Context, shift *scheduleDatamodel.Shift) error
	Delete(ctx context.Context, id int64) error
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

// List returns the stored shifts matching the filter, company scoped.
func (s *Service) List(ctx context.Context, principal *internal.Principal, filter ListFilter) ([]*Shift, error) {
	models, err := s.repo.List(ctx, principal.CompanyID, filter)
	if err != nil {
		s.logger.Error("failed to list shifts", "company_id", principal.CompanyID, "error", err)
		return nil, internal.NewInternalError("failed to list shifts", err)
	}

	shifts := make([]*Shift, len(models))
	for i, m := range models {
		shifts[i] = FromDataModel(m)
	}
	return shifts, nil
}

// ListOwn returns the calling employee's shifts regardless of filter user.
func (s *Service) ListOwn(ctx context.Context, principal *internal.Principal, filter ListFilter) ([]*Shift, error) {
	filter.UserID = &principal.ID
	return s.List(ctx, principal, filter)
}

// Calendar expands shifts, recurring ones included, into concrete occurrences
// within the window.
func (s *Service) Calendar(ctx context.Context, principal *internal.Principal, filter ListFilter) ([]Occurrence, error) {
	if filter.From.IsZero() || filter.To.IsZero() || !filter.To.After(filter.From) {
		return nil, internal.NewValidationFieldError("from", "a from/to window is required", internal.ErrCodeValidationFailed)
	}

	shifts, err := s.List(ctx, principal, filter)
	if err != nil {
		return nil, err
	}

	var occurrences []Occurrence
	for _, shift := range shifts {
		occurrences = append(occurrences, shift.Occurrences(filter.From, filter.To)...)
	}
	return occurrences, nil
}

func (s *Service) Get(ctx context.Context, principal *internal.Principal, id int64) (*Shift, error) {
	m, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(m), nil
}

func (s *Service) Create(ctx context.Context, principal *internal.Principal, dto CreateShiftDTO) (*Shift, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m := &scheduleDatamodel.Shift{
		UserID:       dto.UserID,
		ManagerID:    principal.ID,
		CompanyID:    principal.CompanyID,
		DepartmentID: dto.DepartmentID,
		Title:        dto.Title,
		StartTime:    dto.StartTime,
		EndTime:      dto.EndTime,
		Status:       StatusActive,
		Notes:        dto.Notes,
	}
	applyRecurrence(m, dto.Recurrence)

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("failed to create shift", "user_id", dto.UserID, "error", err)
		return nil, internal.NewInternalError("failed to create shift", err)
	}

	s.bus.Publish(ctx, events.NewShiftAssignedEvent(m.ID, m.UserID, m.ManagerID, m.StartTime))
	s.logger.Info("shift created", "shift_id", m.ID, "user_id", m.UserID, "actor_id", principal.ID)

	return FromDataModel(m), nil
}

func (s *Service) Update(ctx context.Context, principal *internal.Principal, id int64, dto UpdateShiftDTO) (*Shift, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m, err := s.getScoped(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	m.Title = dto.Title
	m.StartTime = dto.StartTime
	m.EndTime = dto.EndTime
	m.Notes = dto.Notes
	if dto.Status != "" {
		m.Status = dto.Status
	}
	applyRecurrence(m, dto.Recurrence)

	if err := s.repo.Update(ctx, m); err != nil {
		s.logger.Error("failed to update shift", "shift_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update shift", err)
	}

	s.logger.Info("shift updated", "shift_id", id, "actor_id", principal.ID)
	return FromDataModel(m), nil
}

func (s *Service) Delete(ctx context.Context, principal *internal.Principal, id int64) error {
	if _, err := s.getScoped(ctx, principal, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete shift", "shift_id", id, "error", err)
		return internal.NewInternalError("failed to delete shift", err)
	}

	s.logger.Info("shift deleted", "shift_id", id, "actor_id", principal.ID)
	return nil
}

// ShiftsBetween is used by the analytics roll-up and by swap validation.
func (s *Service) ShiftsBetween(ctx context.Context, principal *internal.Principal, from, to time.Time) ([]*Shift, error) {
	return s.List(ctx, principal, ListFilter{From: from, To: to})
}

func (s *Service) getScoped(ctx context.Context, principal *internal.Principal, id int64) (*scheduleDatamodel.Shift, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, internal.ErrShiftNotFound
	}
	if m.CompanyID != principal.CompanyID {
		return nil, internal.ErrShiftNotFound
	}
	return m, nil
}

func applyRecurrence(m *scheduleDatamodel.Shift, dto *RecurrenceDTO) {
	if dto == nil {
		m.IsRecurring = false
		m.RecurType = nil
		m.RecurEvery = nil
		m.RecurDays = ""
		m.RecurEndDate = nil
		return
	}

	recurType := dto.Type
	every := dto.Every
	m.IsRecurring = true
	m.RecurType = &recurType
	m.RecurEvery = &every
	m.RecurDays = formatRecurDays(dto.Days)
	m.RecurEndDate = dto.EndDate
}
