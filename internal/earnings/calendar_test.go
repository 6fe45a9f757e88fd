package earnings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSortsAndDivides(t *testing.T) {
	cal := NewCalendar([]Call{
		{Company: "C", Date: "2024-05-01"},
		{Company: "A", Date: "2024-04-01"},
		{Company: "B", Date: "2024-04-20"},
	})
	now := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	upcoming, recent := cal.Split(now)

	require.Len(t, upcoming, 2)
	assert.Equal(t, "B", upcoming[0].Company)
	assert.Equal(t, "C", upcoming[1].Company)

	require.Len(t, recent, 1)
	assert.Equal(t, "A", recent[0].Company)
}

func TestSplitBoundaryIsUpcoming(t *testing.T) {
	cal := NewCalendar([]Call{{Company: "A", Date: "2024-04-15"}})
	now := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	upcoming, recent := cal.Split(now)
	assert.Len(t, upcoming, 1)
	assert.Empty(t, recent)
}

func TestSplitBadDateIsRecent(t *testing.T) {
	cal := NewCalendar([]Call{{Company: "A", Date: "sometime"}})

	upcoming, recent := cal.Split(time.Now())
	assert.Empty(t, upcoming)
	assert.Len(t, recent, 1)
}

func TestDefaultCalendarAllDatesParse(t *testing.T) {
	upcoming, recent := DefaultCalendar().Split(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Len(t, upcoming, 5)
	assert.Empty(t, recent)
}
