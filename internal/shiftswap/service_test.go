package shiftswap_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/danindra/workforce-scheduling/internal"
	requestDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/request"
	scheduleDatamodel "github.com/danindra/workforce-scheduling/internal/core/datamodel/schedule"
	"github.com/danindra/workforce-scheduling/internal/core/events"
	"github.com/danindra/workforce-scheduling/internal/shiftswap"
)

func TestShiftSwapService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ShiftSwap Service Suite")
}

type mockSwapRepository struct {
	swaps      map[int64]*requestDatamodel.ShiftSwapRequest
	nextID     int64
	shifts     *mockShiftStore
	approveErr error
}

func newMockSwapRepository(shifts *mockShiftStore) *mockSwapRepository {
	return &mockSwapRepository{
		swaps:  make(map[int64]*requestDatamodel.ShiftSwapRequest),
		nextID: 1,
		shifts: shifts,
	}
}

func (m *mockSwapRepository) List(_ context.Context, companyID int64, filter shiftswap.ListFilter) ([]*requestDatamodel.ShiftSwapRequest, error) {
	out := make([]*requestDatamodel.ShiftSwapRequest, 0)
	for _, s := range m.swaps {
		if s.CompanyID != companyID {
			continue
		}
		if filter.UserID != nil && s.RequesterID != *filter.UserID && s.TargetUserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSwapRepository) GetByID(_ context.Context, id int64) (*requestDatamodel.ShiftSwapRequest, error) {
	s, ok := m.swaps[id]
	if !ok {
		return nil, errors.New("swap not found")
	}
	return s, nil
}

func (m *mockSwapRepository) Create(_ context.Context, s *requestDatamodel.ShiftSwapRequest) error {
	s.ID = m.nextID
	m.nextID++
	m.swaps[s.ID] = s
	return nil
}

func (m *mockSwapRepository) Update(_ context.Context, s *requestDatamodel.ShiftSwapRequest) error {
	m.swaps[s.ID] = s
	return nil
}

// ApproveSwap mimics the transactional repository: nothing changes unless
// every write succeeds.
func (m *mockSwapRepository) ApproveSwap(_ context.Context, s *requestDatamodel.ShiftSwapRequest) error {
	if m.approveErr != nil {
		return m.approveErr
	}
	if err := m.shifts.reassign(s.RequesterShiftID, s.TargetUserID); err != nil {
		return err
	}
	if err := m.shifts.reassign(s.TargetShiftID, s.RequesterID); err != nil {
		return err
	}
	m.swaps[s.ID] = s
	return nil
}

type mockShiftStore struct {
	shifts        map[int64]*scheduleDatamodel.Shift
	reassignments []int64
}

func newMockShiftStore() *mockShiftStore {
	return &mockShiftStore{shifts: make(map[int64]*scheduleDatamodel.Shift)}
}

func (m *mockShiftStore) GetByID(_ context.Context, id int64) (*scheduleDatamodel.Shift, error) {
	s, ok := m.shifts[id]
	if !ok {
		return nil, errors.New("shift not found")
	}
	return s, nil
}

func (m *mockShiftStore) reassign(shiftID, userID int64) error {
	s, ok := m.shifts[shiftID]
	if !ok {
		return errors.New("shift not found")
	}
	s.UserID = userID
	m.reassignments = append(m.reassignments, shiftID)
	return nil
}

type mockSwapPolicy struct {
	allowed bool
	err     error
}

func (m *mockSwapPolicy) AllowsShiftSwapping(context.Context, int64) (bool, error) {
	return m.allowed, m.err
}

var _ = Describe("ShiftSwap Service", func() {
	var (
		repo    *mockSwapRepository
		shifts  *mockShiftStore
		policy  *mockSwapPolicy
		bus     *events.EventBus
		service *shiftswap.Service
	)

	requester := &internal.Principal{ID: 7, RoleID: 20, CompanyID: 1, IsActive: true}
	reviewer := &internal.Principal{ID: 2, RoleID: 10, CompanyID: 1, IsActive: true}

	start := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		shifts = newMockShiftStore()
		repo = newMockSwapRepository(shifts)
		policy = &mockSwapPolicy{allowed: true}
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
		service = shiftswap.NewService(repo, shifts, policy, bus, slog.New(slog.NewTextHandler(io.Discard, nil)))

		shifts.shifts[10] = &scheduleDatamodel.Shift{
			ID: 10, UserID: 7, ManagerID: 2, CompanyID: 1,
			Title: "Monday open", StartTime: start, EndTime: start.Add(8 * time.Hour), Status: "active",
		}
		shifts.shifts[11] = &scheduleDatamodel.Shift{
			ID: 11, UserID: 8, ManagerID: 2, CompanyID: 1,
			Title: "Tuesday close", StartTime: start.AddDate(0, 0, 1), EndTime: start.AddDate(0, 0, 1).Add(8 * time.Hour), Status: "active",
		}
	})

	propose := func() *shiftswap.Swap {
		swap, err := service.Create(context.Background(), requester, shiftswap.CreateSwapDTO{
			TargetUserID:     8,
			RequesterShiftID: 10,
			TargetShiftID:    11,
			Reason:           "appointment",
		})
		Expect(err).NotTo(HaveOccurred())
		return swap
	}

	Describe("Create", func() {
		It("files a pending swap between two colleagues", func() {
			swap := propose()
			Expect(swap.Status).To(Equal(shiftswap.StatusPending))
			Expect(swap.RequesterID).To(Equal(int64(7)))
			Expect(swap.TargetUserID).To(Equal(int64(8)))
		})

		It("is refused when the company disables swapping", func() {
			policy.allowed = false
			_, err := service.Create(context.Background(), requester, shiftswap.CreateSwapDTO{
				TargetUserID: 8, RequesterShiftID: 10, TargetShiftID: 11,
			})
			Expect(err).To(MatchError(internal.ErrSwapsDisabled))
		})

		It("requires the requester to own the offered shift", func() {
			_, err := service.Create(context.Background(), requester, shiftswap.CreateSwapDTO{
				TargetUserID: 7, RequesterShiftID: 11, TargetShiftID: 10,
			})
			Expect(err).To(MatchError(internal.ErrShiftNotOwned))
		})

		It("requires the target shift to belong to the named colleague", func() {
			_, err := service.Create(context.Background(), requester, shiftswap.CreateSwapDTO{
				TargetUserID: 99, RequesterShiftID: 10, TargetShiftID: 11,
			})
			Expect(err).To(HaveOccurred())
			Expect(repo.swaps).To(BeEmpty())
		})

		It("rejects swapping a shift with itself", func() {
			_, err := service.Create(context.Background(), requester, shiftswap.CreateSwapDTO{
				TargetUserID: 8, RequesterShiftID: 10, TargetShiftID: 10,
			})
			Expect(err).To(HaveOccurred())
		})

		It("hides shifts from another company", func() {
			shifts.shifts[30] = &scheduleDatamodel.Shift{
				ID: 30, UserID: 7, ManagerID: 9, CompanyID: 2,
				Title: "Elsewhere", StartTime: start, EndTime: start.Add(8 * time.Hour), Status: "active",
			}
			_, err := service.Create(context.Background(), requester, shiftswap.CreateSwapDTO{
				TargetUserID: 8, RequesterShiftID: 30, TargetShiftID: 11,
			})
			Expect(err).To(MatchError(internal.ErrShiftNotFound))
		})
	})

	Describe("Approve", func() {
		It("exchanges the two shifts' assignees exactly once", func() {
			swap := propose()

			approved, err := service.Approve(context.Background(), reviewer, swap.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(shiftswap.StatusApproved))

			Expect(shifts.shifts[10].UserID).To(Equal(int64(8)))
			Expect(shifts.shifts[11].UserID).To(Equal(int64(7)))
			Expect(shifts.reassignments).To(HaveLen(2))

			_, err = service.Approve(context.Background(), reviewer, swap.ID)
			Expect(err).To(MatchError(internal.ErrRequestNotPending))
			Expect(shifts.reassignments).To(HaveLen(2))
			Expect(shifts.shifts[10].UserID).To(Equal(int64(8)))
		})

		It("leaves the swap pending when the exchange cannot be persisted", func() {
			swap := propose()

			repo.approveErr = errors.New("connection reset")
			_, err := service.Approve(context.Background(), reviewer, swap.ID)
			Expect(err).To(HaveOccurred())

			Expect(repo.swaps[swap.ID].Status).To(Equal(shiftswap.StatusPending))
			Expect(repo.swaps[swap.ID].ReviewedAt).To(BeNil())
			Expect(shifts.shifts[10].UserID).To(Equal(int64(7)))
			Expect(shifts.shifts[11].UserID).To(Equal(int64(8)))
			Expect(shifts.reassignments).To(BeEmpty())

			repo.approveErr = nil
			approved, err := service.Approve(context.Background(), reviewer, swap.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(shiftswap.StatusApproved))
			Expect(shifts.reassignments).To(HaveLen(2))
		})

		It("publishes the swap approved event", func() {
			done := make(chan events.Event, 1)
			bus.Subscribe(events.EventTypeShiftSwapApproved, func(_ context.Context, e events.Event) error {
				done <- e
				return nil
			})

			swap := propose()
			_, err := service.Approve(context.Background(), reviewer, swap.ID)
			Expect(err).NotTo(HaveOccurred())

			Eventually(done).Should(Receive())
		})
	})

	Describe("Reject", func() {
		It("settles the swap without touching the shifts", func() {
			swap := propose()

			rejected, err := service.Reject(context.Background(), reviewer, swap.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(rejected.Status).To(Equal(shiftswap.StatusRejected))
			Expect(shifts.reassignments).To(BeEmpty())
			Expect(shifts.shifts[10].UserID).To(Equal(int64(7)))
		})
	})

	Describe("ListOwn", func() {
		It("matches swaps where the caller is on either side", func() {
			propose()

			target := &internal.Principal{ID: 8, RoleID: 20, CompanyID: 1, IsActive: true}
			asTarget, err := service.ListOwn(context.Background(), target, shiftswap.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(asTarget).To(HaveLen(1))

			stranger := &internal.Principal{ID: 99, RoleID: 20, CompanyID: 1, IsActive: true}
			none, err := service.ListOwn(context.Background(), stranger, shiftswap.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(none).To(BeEmpty())
		})
	})
})
