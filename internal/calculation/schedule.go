package calculation

import (
	"time"

	"github.com/rgehrsitz/paystub/internal/domain"
)

// DateLayout is the calendar date format used for start and pay dates
const DateLayout = "2006-01-02"

// PayDates returns the pay date of every period in the year.
//
// Without a start date the schedule is anchored at 1 January of taxYear:
// weekly and biweekly pay on Fridays starting with the first Friday of the
// year, semimonthly on the 15th and last day of each month, monthly on the
// last day of each month. A start date becomes the first pay date (or, for
// semimonthly, the first 15th or month end on or after it); monthly
// schedules then keep its day of month, clamped to shorter months.
func PayDates(freq domain.PayFrequency, taxYear int, start *time.Time) []time.Time {
	explicit := start != nil
	anchor := time.Date(taxYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	if explicit {
		anchor = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	}

	n := freq.PeriodsPerYear()
	dates := make([]time.Time, 0, n)

	switch freq {
	case domain.PayWeekly, domain.PayBiweekly:
		step := 7
		if freq == domain.PayBiweekly {
			step = 14
		}
		first := anchor
		if !explicit {
			first = nextWeekday(anchor, time.Friday)
		}
		for i := 0; i < n; i++ {
			dates = append(dates, first.AddDate(0, 0, i*step))
		}

	case domain.PaySemimonthly:
		for m := 0; len(dates) < n; m++ {
			mid := time.Date(anchor.Year(), anchor.Month()+time.Month(m), 15, 0, 0, 0, 0, time.UTC)
			for _, d := range []time.Time{mid, endOfMonth(mid)} {
				if !d.Before(anchor) && len(dates) < n {
					dates = append(dates, d)
				}
			}
		}

	case domain.PayMonthly:
		for m := 0; m < n; m++ {
			first := time.Date(anchor.Year(), anchor.Month()+time.Month(m), 1, 0, 0, 0, 0, time.UTC)
			last := endOfMonth(first)
			if !explicit {
				dates = append(dates, last)
				continue
			}
			day := anchor.Day()
			if day > last.Day() {
				day = last.Day()
			}
			dates = append(dates, time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC))
		}
	}
	return dates
}

func nextWeekday(t time.Time, wd time.Weekday) time.Time {
	offset := (int(wd) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}

func endOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}
