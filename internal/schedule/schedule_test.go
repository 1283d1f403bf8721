package schedule_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/danindra/workforce-scheduling/internal/schedule"
)

var _ = Describe("Shift Occurrences", func() {
	day := func(d int, hour int) time.Time {
		// Monday 2026-03-02 as the anchor week.
		return time.Date(2026, 3, 2+d, hour, 0, 0, 0, time.UTC)
	}

	Describe("non-recurring shifts", func() {
		It("yields the shift itself when it overlaps the window", func() {
			shift := &schedule.Shift{
				ID:        1,
				UserID:    7,
				Title:     "Morning shift",
				StartTime: day(0, 9),
				EndTime:   day(0, 17),
				Status:    schedule.StatusActive,
			}

			occ := shift.Occurrences(day(0, 0), day(7, 0))
			Expect(occ).To(HaveLen(1))
			Expect(occ[0].ShiftID).To(Equal(int64(1)))
			Expect(occ[0].StartTime).To(Equal(day(0, 9)))
			Expect(occ[0].Projected).To(BeFalse())
		})

		It("yields nothing outside the window", func() {
			shift := &schedule.Shift{
				StartTime: day(0, 9),
				EndTime:   day(0, 17),
			}
			Expect(shift.Occurrences(day(1, 0), day(7, 0))).To(BeEmpty())
		})
	})

	Describe("daily recurrence", func() {
		It("projects one occurrence per interval day", func() {
			shift := &schedule.Shift{
				ID:        2,
				StartTime: day(0, 9),
				EndTime:   day(0, 17),
				Status:    schedule.StatusActive,
				Recurrence: &schedule.Recurrence{
					Type:  schedule.RecurDaily,
					Every: 2,
				},
			}

			occ := shift.Occurrences(day(0, 0), day(7, 0))
			Expect(occ).To(HaveLen(4))
			Expect(occ[0].StartTime).To(Equal(day(0, 9)))
			Expect(occ[1].StartTime).To(Equal(day(2, 9)))
			Expect(occ[0].Projected).To(BeFalse())
			Expect(occ[1].Projected).To(BeTrue())
		})

		It("preserves the shift duration in every projection", func() {
			shift := &schedule.Shift{
				StartTime:  day(0, 22),
				EndTime:    day(1, 6),
				Recurrence: &schedule.Recurrence{Type: schedule.RecurDaily, Every: 1},
			}

			occ := shift.Occurrences(day(0, 0), day(3, 0))
			for _, o := range occ {
				Expect(o.EndTime.Sub(o.StartTime)).To(Equal(8 * time.Hour))
			}
		})

		It("stops at the recurrence end date", func() {
			endDate := day(2, 0)
			shift := &schedule.Shift{
				StartTime: day(0, 9),
				EndTime:   day(0, 17),
				Recurrence: &schedule.Recurrence{
					Type:    schedule.RecurDaily,
					Every:   1,
					EndDate: &endDate,
				},
			}

			occ := shift.Occurrences(day(0, 0), day(14, 0))
			Expect(occ).To(HaveLen(3))
		})
	})

	Describe("weekly recurrence", func() {
		It("projects onto the listed weekdays", func() {
			shift := &schedule.Shift{
				StartTime: day(0, 9),
				EndTime:   day(0, 17),
				Recurrence: &schedule.Recurrence{
					Type:  schedule.RecurWeekly,
					Every: 1,
					Days:  []int{1, 3}, // Monday and Wednesday
				},
			}

			occ := shift.Occurrences(day(0, 0), day(7, 0))
			Expect(occ).To(HaveLen(2))
			Expect(occ[0].StartTime.Weekday()).To(Equal(time.Monday))
			Expect(occ[1].StartTime.Weekday()).To(Equal(time.Wednesday))
		})

		It("falls back to the anchor weekday when no days are listed", func() {
			shift := &schedule.Shift{
				StartTime: day(0, 9),
				EndTime:   day(0, 17),
				Recurrence: &schedule.Recurrence{
					Type:  schedule.RecurWeekly,
					Every: 1,
				},
			}

			occ := shift.Occurrences(day(0, 0), day(14, 0))
			Expect(occ).To(HaveLen(2))
			for _, o := range occ {
				Expect(o.StartTime.Weekday()).To(Equal(time.Monday))
			}
		})

		It("skips off-weeks for multi-week intervals", func() {
			shift := &schedule.Shift{
				StartTime: day(0, 9),
				EndTime:   day(0, 17),
				Recurrence: &schedule.Recurrence{
					Type:  schedule.RecurWeekly,
					Every: 2,
					Days:  []int{1},
				},
			}

			occ := shift.Occurrences(day(0, 0), day(28, 0))
			Expect(occ).To(HaveLen(2))
			Expect(occ[1].StartTime).To(Equal(day(14, 9)))
		})
	})
})
