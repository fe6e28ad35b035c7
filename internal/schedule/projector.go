// Package schedule projects bill templates into concrete due-date
// occurrences. Projection is a pure read-side query: nothing here mutates
// or persists state.
package schedule

import (
	"sort"
	"time"

	"github.com/paisapal/paisa/internal/models"
)

// UpcomingWindowDays is how far ahead the upcoming-bills query looks.
const UpcomingWindowDays = 7

// Project expands each unpaid bill into its due occurrences inside
// [windowStart, windowEnd], both inclusive and taken at calendar-day
// granularity.
//
// The anchor due date itself is emitted when it falls inside the window.
// Recurring bills additionally emit every stepped date strictly after the
// anchor, advancing weekly by 7 days, monthly by one calendar month, and
// yearly by one calendar year. Month-end overflow clamps to the last valid
// day of the target month (Jan 31 -> Feb 28/29 -> Mar 31), with the
// day-of-month re-derived from the anchor on every step so a clamped
// February never shortens March.
//
// Bills whose template is marked paid produce no occurrences at all;
// marking the anchor paid suppresses the whole series. Individual
// occurrence dates recorded in PaidOccurrences are skipped without
// affecting the rest of the series.
//
// Iteration is bounded by windowEnd, so a yearly bill anchored decades in
// the past terminates for any window.
func Project(bills []models.Bill, windowStart, windowEnd time.Time) []models.Occurrence {
	start := models.DateOf(windowStart)
	end := models.DateOf(windowEnd)

	var out []models.Occurrence
	if end.Before(start) {
		return out
	}

	for _, bill := range bills {
		if bill.IsPaid {
			continue
		}
		anchor := models.DateOf(bill.DueDate)

		if !anchor.Before(start) && !anchor.After(end) && !bill.OccurrencePaid(anchor) {
			out = append(out, models.Occurrence{Bill: bill, DueDate: anchor})
		}

		if !bill.IsRecurring || bill.Frequency == models.FrequencyOneTime || bill.Frequency == "" {
			continue
		}

		for n := firstStep(anchor, start, bill.Frequency); ; n++ {
			due := advance(anchor, bill.Frequency, n)
			if due.After(end) {
				break
			}
			if due.Before(start) {
				continue
			}
			if bill.OccurrencePaid(due) {
				continue
			}
			out = append(out, models.Occurrence{Bill: bill, DueDate: due})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// Upcoming returns occurrences due between today and seven days from
// today, inclusive.
func Upcoming(bills []models.Bill, today time.Time) []models.Occurrence {
	day := models.DateOf(today)
	return Project(bills, day, day.AddDate(0, 0, UpcomingWindowDays))
}

// Overdue returns occurrences due strictly before today.
func Overdue(bills []models.Bill, today time.Time) []models.Occurrence {
	day := models.DateOf(today)
	return Project(bills, time.Time{}, day.AddDate(0, 0, -1))
}

// advance returns the anchor stepped forward n times by the frequency.
// The day-of-month always derives from the anchor, clamped per target
// month, never from a previously clamped step.
func advance(anchor time.Time, freq models.Frequency, n int) time.Time {
	switch freq {
	case models.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7*n)
	case models.FrequencyMonthly:
		return addMonthsClamped(anchor, n)
	case models.FrequencyYearly:
		return addMonthsClamped(anchor, 12*n)
	default:
		return anchor
	}
}

// firstStep picks the smallest step count worth evaluating, so weekly
// bills anchored far before the window don't iterate week by week from the
// anchor. Always at least 1: step 0 is the anchor itself.
func firstStep(anchor, windowStart time.Time, freq models.Frequency) int {
	if !anchor.Before(windowStart) {
		return 1
	}
	var n int
	switch freq {
	case models.FrequencyWeekly:
		days := int(windowStart.Sub(anchor).Hours() / 24)
		n = days/7 - 1
	case models.FrequencyMonthly:
		n = (windowStart.Year()-anchor.Year())*12 + int(windowStart.Month()) - int(anchor.Month()) - 1
	case models.FrequencyYearly:
		n = windowStart.Year() - anchor.Year() - 1
	}
	if n < 1 {
		return 1
	}
	return n
}

// addMonthsClamped adds n calendar months to the anchor, clamping the
// anchor's day-of-month to the last valid day of the target month.
func addMonthsClamped(anchor time.Time, n int) time.Time {
	y, m, d := anchor.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := lastDayOfMonth(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
