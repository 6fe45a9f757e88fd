// Package earnings serves the static earnings calendar. The table is mock
// data standing in for a financial data API.
package earnings

import (
	"sort"
	"time"
)

type Call struct {
	Company         string `json:"company"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	FiscalQuarter   string `json:"fiscalQuarter"`
	FiscalYear      string `json:"fiscalYear"`
	ExpectedRevenue string `json:"expectedRevenue,omitempty"`
	ExpectedEPS     string `json:"expectedEPS,omitempty"`
	CallLink        string `json:"callLink,omitempty"`
}

type Calendar struct {
	calls []Call
}

func NewCalendar(calls []Call) *Calendar {
	return &Calendar{calls: calls}
}

func DefaultCalendar() *Calendar {
	return NewCalendar([]Call{
		{
			Company:         "Apple Inc.",
			Date:            "2024-05-02",
			Time:            "After-hours",
			FiscalQuarter:   "Q2",
			FiscalYear:      "2024",
			ExpectedRevenue: "$96.5B",
			ExpectedEPS:     "$1.51",
			CallLink:        "https://investor.apple.com",
		},
		{
			Company:         "Microsoft",
			Date:            "2024-04-25",
			Time:            "After-hours",
			FiscalQuarter:   "Q3",
			FiscalYear:      "2024",
			ExpectedRevenue: "$60.8B",
			ExpectedEPS:     "$2.23",
			CallLink:        "https://microsoft.com/investors",
		},
		{
			Company:         "Meta",
			Date:            "2024-04-24",
			Time:            "After-hours",
			FiscalQuarter:   "Q1",
			FiscalYear:      "2024",
			ExpectedRevenue: "$36.2B",
			ExpectedEPS:     "$4.32",
			CallLink:        "https://investor.fb.com",
		},
		{
			Company:         "Alphabet",
			Date:            "2024-04-30",
			Time:            "After-hours",
			FiscalQuarter:   "Q1",
			FiscalYear:      "2024",
			ExpectedRevenue: "$78.1B",
			ExpectedEPS:     "$1.51",
			CallLink:        "https://abc.xyz/investor",
		},
		{
			Company:         "Amazon",
			Date:            "2024-04-30",
			Time:            "After-hours",
			FiscalQuarter:   "Q1",
			FiscalYear:      "2024",
			ExpectedRevenue: "$142.5B",
			ExpectedEPS:     "$0.83",
			CallLink:        "https://ir.aboutamazon.com",
		},
	})
}

// Split returns the calendar sorted ascending by date and divided at now:
// calls on or after now are upcoming, the rest recent. Calls with an
// unparseable date sort first and count as recent.
func (c *Calendar) Split(now time.Time) (upcoming, recent []Call) {
	sorted := make([]Call, len(c.calls))
	copy(sorted, c.calls)
	sort.SliceStable(sorted, func(i, j int) bool {
		return callDate(sorted[i]).Before(callDate(sorted[j]))
	})

	upcoming = make([]Call, 0, len(sorted))
	recent = make([]Call, 0, len(sorted))
	for _, call := range sorted {
		if !callDate(call).Before(now) {
			upcoming = append(upcoming, call)
		} else {
			recent = append(recent, call)
		}
	}
	return upcoming, recent
}

func callDate(c Call) time.Time {
	t, err := time.Parse("2006-01-02", c.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
