package logbook

import (
	"sort"
	"time"
)

// Tally is a running total with a breakdown per month (YYYY-MM).
type Tally struct {
	Total  Duration
	Months map[string]Duration
}

func newTally() Tally {
	return Tally{
		Months: make(map[string]Duration),
	}
}

func (t *Tally) add(month string, d Duration) {
	t.Total += d
	t.Months[month] += d
}

// Totals sums flight times over a logbook.
type Totals struct {
	// Months lists the month keys present, in calendar order.
	Months      []string
	ActualBlock Tally
	LegGreater  Tally
	Fly         Tally
	Legs        map[string]int
}

// MonthlyTotals adds up the flight legs of every month in the logbook.
// Months are keyed as YYYY-MM when the report's month label parses, and by
// the label itself otherwise.
func MonthlyTotals(lb *Logbook) *Totals {
	t := &Totals{
		ActualBlock: newTally(),
		LegGreater:  newTally(),
		Fly:         newTally(),
		Legs:        make(map[string]int),
	}

	seen := make(map[string]bool)
	for _, y := range lb.Years {
		for _, m := range y.Months {
			key := monthKey(m.MonthYear)
			if !seen[key] {
				seen[key] = true
				t.Months = append(t.Months, key)
			}
			for _, trip := range m.Trips {
				for _, dp := range trip.DutyPeriods {
					for _, f := range dp.Flights {
						t.ActualBlock.add(key, f.ActualBlock)
						t.LegGreater.add(key, f.LegGreater)
						t.Fly.add(key, f.Fly)
						t.Legs[key]++
					}
				}
			}
		}
	}

	sort.Strings(t.Months)
	return t
}

func monthKey(label string) string {
	for _, layout := range []string{"Jan 2006", "January 2006", "01/2006", "2006-01"} {
		if t, err := time.Parse(layout, label); err == nil {
			return t.Format("2006-01")
		}
	}
	return label
}
