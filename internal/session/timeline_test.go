package session

import (
	"testing"
	"time"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var threeSessions = calendar.MustSchedule("07:00", "12:00", "20:00")

func momentAt(date string, hour, minute int) calendar.Moment {
	d := calendar.MustParseDate(date).Time()
	return calendar.At(time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC), time.UTC)
}

func statuses(slots []Slot) []domain.SessionStatus {
	out := make([]domain.SessionStatus, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Status)
	}
	return out
}

func TestTimeline_BeforeFirstWindow(t *testing.T) {
	l := ledger.New(nil, nil)
	slots := Timeline("2025-01-01", momentAt("2025-01-01", 6, 0), threeSessions, l)

	assert.Equal(t, []domain.SessionStatus{
		domain.SessionUpcoming, domain.SessionUpcoming, domain.SessionUpcoming,
	}, statuses(slots))
	assert.Equal(t, "Morning", slots[0].Label)
	assert.Equal(t, "07:00", slots[0].Time)
}

func TestTimeline_MidDay(t *testing.T) {
	ci := &domain.CheckIn{ID: "ci1", Date: "2025-01-01", SessionNumber: 1}
	l := ledger.New([]*domain.CheckIn{ci}, []*domain.Completion{
		{ID: "c1", CheckInID: "ci1", TaskID: "t1", Completed: true},
	})

	slots := Timeline("2025-01-01", momentAt("2025-01-01", 13, 0), threeSessions, l)

	assert.Equal(t, []domain.SessionStatus{
		domain.SessionCompleted, domain.SessionAvailable, domain.SessionUpcoming,
	}, statuses(slots))
	require.NotNil(t, slots[0].CheckIn)
	assert.Equal(t, "ci1", slots[0].CheckIn.ID)
	assert.Len(t, slots[0].Completions, 1)
	assert.Nil(t, slots[1].CheckIn)
}

func TestTimeline_EarlierWindowMissed(t *testing.T) {
	l := ledger.New(nil, nil)
	slots := Timeline("2025-01-01", momentAt("2025-01-01", 21, 0), threeSessions, l)

	assert.Equal(t, []domain.SessionStatus{
		domain.SessionMissed, domain.SessionMissed, domain.SessionAvailable,
	}, statuses(slots))
}

func TestTimeline_PastDayNeverUpcoming(t *testing.T) {
	ci := &domain.CheckIn{ID: "ci2", Date: "2024-12-31", SessionNumber: 2}
	l := ledger.New([]*domain.CheckIn{ci}, nil)

	// Early morning today: yesterday's evening window must read missed.
	slots := Timeline("2024-12-31", momentAt("2025-01-01", 6, 0), threeSessions, l)

	assert.Equal(t, []domain.SessionStatus{
		domain.SessionMissed, domain.SessionCompleted, domain.SessionMissed,
	}, statuses(slots))
}

func TestTimeline_FutureDayUpcoming(t *testing.T) {
	l := ledger.New(nil, nil)
	slots := Timeline("2025-01-02", momentAt("2025-01-01", 21, 0), threeSessions, l)

	assert.Equal(t, 3, Count(slots, domain.SessionUpcoming))
}

func TestTimeline_CompletedEvenWhenAllTasksUnchecked(t *testing.T) {
	ci := &domain.CheckIn{ID: "ci1", Date: "2025-01-01", SessionNumber: 2}
	l := ledger.New([]*domain.CheckIn{ci}, []*domain.Completion{
		{ID: "c1", CheckInID: "ci1", TaskID: "t1", Completed: false},
	})

	slots := Timeline("2025-01-01", momentAt("2025-01-01", 14, 0), threeSessions, l)
	assert.Equal(t, domain.SessionCompleted, slots[1].Status)
}

func TestTimeline_BoundaryTieIsAvailable(t *testing.T) {
	l := ledger.New(nil, nil)
	slots := Timeline("2025-01-01", momentAt("2025-01-01", 12, 0), threeSessions, l)

	assert.Equal(t, domain.SessionMissed, slots[0].Status)
	assert.Equal(t, domain.SessionAvailable, slots[1].Status)
}

func TestAllSessionsDone(t *testing.T) {
	checkIns := []*domain.CheckIn{
		{ID: "a", Date: "2025-01-01", SessionNumber: 1},
		{ID: "b", Date: "2025-01-01", SessionNumber: 2},
	}
	now := momentAt("2025-01-01", 21, 0)

	partial := Timeline("2025-01-01", now, threeSessions, ledger.New(checkIns, nil))
	assert.False(t, AllSessionsDone(partial))

	checkIns = append(checkIns, &domain.CheckIn{ID: "c", Date: "2025-01-01", SessionNumber: 3})
	full := Timeline("2025-01-01", now, threeSessions, ledger.New(checkIns, nil))
	assert.True(t, AllSessionsDone(full))

	assert.False(t, AllSessionsDone(nil))
}
