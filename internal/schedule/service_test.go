package schedule_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/danindra/workforce-scheduling/internal"
	scheduleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/schedule"
	"github.com/danindra/workforce-scheduling/internal/core/events"
	"github.com/danindra/workforce-scheduling/internal/schedule"
)

func TestScheduleService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Schedule Service Suite")
}

type mockShiftRepository struct {
	shifts map[int64]*scheduleDatamodel.Shift
	nextID int64
}

func newMockShiftRepository() *mockShiftRepository {
	return &mockShiftRepository{shifts: make(map[int64]*scheduleDatamodel.Shift), nextID: 1}
}

func (m *mockShiftRepository) List(_ context.Context, companyID int64, filter schedule.ListFilter) ([]*scheduleDatamodel.Shift, error) {
	out := make([]*scheduleDatamodel.Shift, 0)
	for _, s := range m.shifts {
		if s.CompanyID != companyID {
			continue
		}
		if filter.UserID != nil && s.UserID != *filter.UserID {
			continue
		}
		if filter.DepartmentID != nil && (s.DepartmentID == nil || *s.DepartmentID != *filter.DepartmentID) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockShiftRepository) GetByID(_ context.Context, id int64) (*scheduleDatamodel.Shift, error) {
	s, ok := m.shifts[id]
	if !ok {
		return nil, errors.New("shift not found")
	}
	return s, nil
}

func (m *mockShiftRepository) Create(_ context.Context, s *scheduleDatamodel.Shift) error {
	s.ID = m.nextID
	m.nextID++
	m.shifts[s.ID] = s
	return nil
}

func (m *mockShiftRepository) Update(_ context.Context, s *scheduleDatamodel.Shift) error {
	m.shifts[s.ID] = s
	return nil
}

func (m *mockShiftRepository) Delete(_ context.Context, id int64) error {
	delete(m.shifts, id)
	return nil
}

var _ = Describe("Schedule Service", func() {
	var (
		repo    *mockShiftRepository
		bus     *events.EventBus
		service *schedule.Service
	)

	manager := &internal.Principal{ID: 1, RoleID: 10, CompanyID: 1, IsActive: true}
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	BeforeEach(func() {
		repo = newMockShiftRepository()
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
		service = schedule.NewService(repo, bus, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("Create", func() {
		It("stores the shift stamped with the acting manager and company", func() {
			shift, err := service.Create(context.Background(), manager, schedule.CreateShiftDTO{
				UserID:    7,
				Title:     "Morning shift",
				StartTime: start,
				EndTime:   end,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(shift.ManagerID).To(Equal(int64(1)))
			Expect(shift.CompanyID).To(Equal(int64(1)))
			Expect(shift.Status).To(Equal(schedule.StatusActive))
		})

		It("publishes a shift assigned event", func() {
			var (
				mu       sync.Mutex
				received events.Event
			)
			done := make(chan struct{})
			bus.Subscribe(events.EventTypeShiftAssigned, func(_ context.Context, e events.Event) error {
				mu.Lock()
				received = e
				mu.Unlock()
				close(done)
				return nil
			})

			_, err := service.Create(context.Background(), manager, schedule.CreateShiftDTO{
				UserID:    7,
				Title:     "Morning shift",
				StartTime: start,
				EndTime:   end,
			})
			Expect(err).NotTo(HaveOccurred())

			Eventually(done).Should(BeClosed())
			mu.Lock()
			defer mu.Unlock()
			Expect(received.EventType()).To(Equal(events.EventTypeShiftAssigned))
		})

		It("rejects an inverted time window", func() {
			_, err := service.Create(context.Background(), manager, schedule.CreateShiftDTO{
				UserID:    7,
				Title:     "Backwards",
				StartTime: end,
				EndTime:   start,
			})
			Expect(err).To(HaveOccurred())
			Expect(repo.shifts).To(BeEmpty())
		})

		It("persists the recurrence pattern", func() {
			shift, err := service.Create(context.Background(), manager, schedule.CreateShiftDTO{
				UserID:    7,
				Title:     "Weekly standup cover",
				StartTime: start,
				EndTime:   end,
				Recurrence: &schedule.RecurrenceDTO{
					Type:  schedule.RecurWeekly,
					Every: 1,
					Days:  []int{1, 3, 5},
				},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(shift.Recurrence).NotTo(BeNil())
			Expect(shift.Recurrence.Days).To(Equal([]int{1, 3, 5}))

			stored := repo.shifts[shift.ID]
			Expect(stored.IsRecurring).To(BeTrue())
			Expect(stored.RecurDays).To(Equal("1,3,5"))
		})
	})

	Describe("Calendar", func() {
		It("requires an explicit window", func() {
			_, err := service.Calendar(context.Background(), manager, schedule.ListFilter{})
			Expect(err).To(HaveOccurred())
		})

		It("expands recurring shifts into occurrences", func() {
			_, err := service.Create(context.Background(), manager, schedule.CreateShiftDTO{
				UserID:    7,
				Title:     "Daily open",
				StartTime: start,
				EndTime:   end,
				Recurrence: &schedule.RecurrenceDTO{
					Type:  schedule.RecurDaily,
					Every: 1,
				},
			})
			Expect(err).NotTo(HaveOccurred())

			occ, err := service.Calendar(context.Background(), manager, schedule.ListFilter{
				From: start.AddDate(0, 0, -1),
				To:   start.AddDate(0, 0, 6),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(occ).To(HaveLen(6))
		})
	})

	Describe("ListOwn", func() {
		It("pins the filter to the caller regardless of the requested user", func() {
			other := int64(99)
			_, err := service.Create(context.Background(), manager, schedule.CreateShiftDTO{
				UserID: 7, Title: "Theirs", StartTime: start, EndTime: end,
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(context.Background(), manager, schedule.CreateShiftDTO{
				UserID: 1, Title: "Mine", StartTime: start, EndTime: end,
			})
			Expect(err).NotTo(HaveOccurred())

			own, err := service.ListOwn(context.Background(), manager, schedule.ListFilter{UserID: &other})
			Expect(err).NotTo(HaveOccurred())
			Expect(own).To(HaveLen(1))
			Expect(own[0].Title).To(Equal("Mine"))
		})
	})

	Describe("tenant scoping", func() {
		It("hides another company's shift", func() {
			foreign := &scheduleDatamodel.Shift{
				UserID: 5, ManagerID: 6, CompanyID: 2,
				Title: "Foreign", StartTime: start, EndTime: end, Status: schedule.StatusActive,
			}
			Expect(repo.Create(context.Background(), foreign)).To(Succeed())

			_, err := service.Get(context.Background(), manager, foreign.ID)
			Expect(err).To(MatchError(internal.ErrShiftNotFound))

			Expect(service.Delete(context.Background(), manager, foreign.ID)).
				To(MatchError(internal.ErrShiftNotFound))
			Expect(repo.shifts).To(HaveKey(foreign.ID))
		})
	})

	Describe("Update", func() {
		It("can cancel a shift", func() {
			shift, err := service.Create(context.Background(), manager, schedule.CreateShiftDTO{
				UserID: 7, Title: "Morning shift", StartTime: start, EndTime: end,
			})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Update(context.Background(), manager, shift.ID, schedule.UpdateShiftDTO{
				Title:     "Morning shift",
				StartTime: start,
				EndTime:   end,
				Status:    schedule.StatusCancelled,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(schedule.StatusCancelled))
		})

		It("clears the recurrence when the update omits it", func() {
			shift, err := service.Create(context.Background(), manager, schedule.CreateShiftDTO{
				UserID: 7, Title: "Daily open", StartTime: start, EndTime: end,
				Recurrence: &schedule.RecurrenceDTO{Type: schedule.RecurDaily, Every: 1},
			})
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Update(context.Background(), manager, shift.ID, schedule.UpdateShiftDTO{
				Title: "Daily open", StartTime: start, EndTime: end,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Recurrence).To(BeNil())
			Expect(repo.shifts[shift.ID].IsRecurring).To(BeFalse())
		})
	})
})
