package stats

import (
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var created = time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)

func task(id string, cadence domain.Cadence) *domain.Task {
	return &domain.Task{ID: id, Name: id, Cadence: cadence, CreatedAt: created}
}

// ledgerBuilder records completions per (date, session) for tests.
type ledgerBuilder struct {
	checkIns    []*domain.CheckIn
	completions []*domain.Completion
	ids         map[string]string
}

func newLedgerBuilder() *ledgerBuilder {
	return &ledgerBuilder{ids: map[string]string{}}
}

func (b *ledgerBuilder) done(date string, session int, taskIDs ...string) *ledgerBuilder {
	key := fmt.Sprintf("%s#%d", date, session)
	ciID, ok := b.ids[key]
	if !ok {
		ciID = "ci-" + key
		b.ids[key] = ciID
		b.checkIns = append(b.checkIns, &domain.CheckIn{ID: ciID, Date: calendar.Date(date), SessionNumber: session})
	}
	for _, id := range taskIDs {
		b.completions = append(b.completions, &domain.Completion{
			ID: fmt.Sprintf("c-%s-%s", key, id), CheckInID: ciID, TaskID: id, Completed: true,
		})
	}
	return b
}

func (b *ledgerBuilder) build() *ledger.Ledger {
	return ledger.New(b.checkIns, b.completions)
}

func TestPercent(t *testing.T) {
	tests := []struct {
		counted, possible, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13},
		{3, 3, 100},
		{0, 5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.counted, tt.possible), "%d/%d", tt.counted, tt.possible)
	}
}

func TestDayStats_CapsPerTask(t *testing.T) {
	daily := task("d", domain.CadenceDaily)
	// Completed in all three sessions, but a daily task counts once.
	l := newLedgerBuilder().
		done("2025-01-01", 1, "d").
		done("2025-01-01", 2, "d").
		done("2025-01-01", 3, "d").
		build()

	agg := NewAggregator([]*domain.Task{daily}, l, 3, time.UTC)
	ds := agg.DayStats("2025-01-01")

	assert.Equal(t, 1, ds.Possible)
	assert.Equal(t, 1, ds.Counted)
	assert.Equal(t, 100, ds.Percentage)
}

func TestDayStats_MixedCadence(t *testing.T) {
	tasks := []*domain.Task{task("d", domain.CadenceDaily), task("p", domain.CadencePerSession)}
	l := newLedgerBuilder().
		done("2025-01-01", 1, "d", "p").
		done("2025-01-01", 2, "p").
		build()

	ds := NewAggregator(tasks, l, 3, time.UTC).DayStats("2025-01-01")

	assert.Equal(t, 4, ds.Possible)
	assert.Equal(t, 3, ds.Counted)
	assert.Equal(t, 75, ds.Percentage)
}

func TestDayStats_NoActiveTasks(t *testing.T) {
	ds := NewAggregator(nil, ledger.New(nil, nil), 3, time.UTC).DayStats("2025-01-01")
	assert.Zero(t, ds.Possible)
	assert.Zero(t, ds.Percentage)
}

func TestDayStats_SoftRemovalAtNoon(t *testing.T) {
	removed := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	gone := task("g", domain.CadenceDaily)
	gone.RemovedAt = &removed
	kept := task("k", domain.CadenceDaily)

	l := newLedgerBuilder().
		done("2025-01-09", 1, "g").
		done("2025-01-11", 1, "k").
		build()
	agg := NewAggregator([]*domain.Task{gone, kept}, l, 3, time.UTC)

	before := agg.DayStats("2025-01-09")
	assert.Equal(t, 2, before.Possible, "removed task still counts the day before")
	assert.Equal(t, 50, before.Percentage)

	after := agg.DayStats("2025-01-11")
	assert.Equal(t, 1, after.Possible, "removed task is gone the day after")
	assert.Equal(t, 100, after.Percentage)
}

func TestDayStats_TaskNotYetCreated(t *testing.T) {
	late := task("late", domain.CadenceDaily)
	late.CreatedAt = time.Date(2025, 1, 5, 23, 30, 0, 0, time.UTC)

	agg := NewAggregator([]*domain.Task{late}, ledger.New(nil, nil), 3, time.UTC)
	assert.Zero(t, agg.DayStats("2025-01-04").Possible)
	assert.Equal(t, 1, agg.DayStats("2025-01-05").Possible)
}

func TestDayStats_CreationDateUsesLocation(t *testing.T) {
	tokyo, err := calendar.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2025-01-04 20:00 UTC is already 2025-01-05 in Tokyo.
	tk := task("t", domain.CadenceDaily)
	tk.CreatedAt = time.Date(2025, 1, 4, 20, 0, 0, 0, time.UTC)

	agg := NewAggregator([]*domain.Task{tk}, ledger.New(nil, nil), 3, tokyo)
	assert.Zero(t, agg.DayStats("2025-01-04").Possible)
	assert.Equal(t, 1, agg.DayStats("2025-01-05").Possible)
}

func TestRangePercentage_IsSingleRatio(t *testing.T) {
	// Day 1 has one task at 100%, day 2 has four tasks at 25%.
	tasks := []*domain.Task{task("a", domain.CadenceDaily)}
	for _, id := range []string{"b", "c", "d"} {
		tk := task(id, domain.CadenceDaily)
		tk.CreatedAt = time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)
		tasks = append(tasks, tk)
	}
	l := newLedgerBuilder().
		done("2025-01-01", 1, "a").
		done("2025-01-02", 1, "a").
		build()
	agg := NewAggregator(tasks, l, 3, time.UTC)

	dates := []calendar.Date{"2025-01-01", "2025-01-02"}
	// (1+1)/(1+4) = 40, not the mean of 100 and 25.
	assert.Equal(t, 40, agg.RangePercentage(dates))
}

func TestRangePercentage_Empty(t *testing.T) {
	agg := NewAggregator([]*domain.Task{task("a", domain.CadenceDaily)}, ledger.New(nil, nil), 3, time.UTC)
	assert.Zero(t, agg.RangePercentage(nil))
}

func TestStreak(t *testing.T) {
	tasks := []*domain.Task{task("a", domain.CadenceDaily)}
	l := newLedgerBuilder().
		done("2025-01-01", 1, "a").
		done("2025-01-02", 1, "a").
		done("2025-01-03", 1, "a").
		// 2025-01-04 missed
		done("2025-01-05", 1, "a").
		done("2025-01-06", 1, "a").
		build()
	agg := NewAggregator(tasks, l, 3, time.UTC)

	got := agg.Streak(calendar.DaysInRange("2025-01-01", "2025-01-06"))
	assert.Equal(t, StreakResult{Current: 2, Longest: 3}, got)
}

func TestStreak_InputOrderDoesNotMatter(t *testing.T) {
	tasks := []*domain.Task{task("a", domain.CadenceDaily)}
	l := newLedgerBuilder().done("2025-01-02", 1, "a").done("2025-01-03", 1, "a").build()
	agg := NewAggregator(tasks, l, 3, time.UTC)

	asc := calendar.DaysInRange("2025-01-01", "2025-01-03")
	desc := []calendar.Date{"2025-01-03", "2025-01-02", "2025-01-01"}
	assert.Equal(t, agg.Streak(asc), agg.Streak(desc))
	assert.Equal(t, 2, agg.Streak(asc).Current)
}

func TestStreak_NeverBroken(t *testing.T) {
	tasks := []*domain.Task{task("a", domain.CadenceDaily)}
	l := newLedgerBuilder().done("2025-01-01", 1, "a").done("2025-01-02", 1, "a").build()

	got := NewAggregator(tasks, l, 3, time.UTC).Streak(calendar.DaysInRange("2025-01-01", "2025-01-02"))
	assert.Equal(t, StreakResult{Current: 2, Longest: 2}, got)
}

func TestStreak_TodayZeroBreaksCurrent(t *testing.T) {
	tasks := []*domain.Task{task("a", domain.CadenceDaily)}
	l := newLedgerBuilder().done("2025-01-01", 1, "a").done("2025-01-02", 1, "a").build()

	got := NewAggregator(tasks, l, 3, time.UTC).Streak(calendar.DaysInRange("2025-01-01", "2025-01-03"))
	assert.Equal(t, StreakResult{Current: 0, Longest: 2}, got)
}

func TestStreak_Monotonic(t *testing.T) {
	tasks := []*domain.Task{task("a", domain.CadenceDaily)}
	b := newLedgerBuilder().done("2025-01-01", 1, "a").done("2025-01-02", 1, "a")

	before := NewAggregator(tasks, b.build(), 3, time.UTC).Streak(calendar.DaysInRange("2025-01-01", "2025-01-02"))

	b.done("2025-01-03", 1, "a")
	after := NewAggregator(tasks, b.build(), 3, time.UTC).Streak(calendar.DaysInRange("2025-01-01", "2025-01-03"))
	assert.Equal(t, before.Current+1, after.Current)

	// A zero day after the most recent date resets current.
	zeroed := NewAggregator(tasks, b.build(), 3, time.UTC).Streak(calendar.DaysInRange("2025-01-01", "2025-01-04"))
	assert.Zero(t, zeroed.Current)
	assert.Equal(t, after.Longest, zeroed.Longest)
}

func TestStreak_PartialDayCounts(t *testing.T) {
	tasks := []*domain.Task{task("p", domain.CadencePerSession)}
	l := newLedgerBuilder().done("2025-01-01", 2, "p").build()

	got := NewAggregator(tasks, l, 3, time.UTC).Streak([]calendar.Date{"2025-01-01"})
	assert.Equal(t, 1, got.Current)
}

func TestTaskStats_OnlyActiveDates(t *testing.T) {
	removed := time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
	p := task("p", domain.CadencePerSession)
	p.CreatedAt = time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC)
	p.RemovedAt = &removed

	l := newLedgerBuilder().
		done("2025-01-02", 1, "p").
		done("2025-01-02", 2, "p").
		done("2025-01-03", 1, "p").
		build()
	agg := NewAggregator([]*domain.Task{p}, l, 3, time.UTC)

	ts := agg.TaskStats(p, calendar.DaysInRange("2025-01-01", "2025-01-05"))
	assert.Equal(t, 1, ts.ActiveDays, "only 2025-01-02 is active")
	assert.Equal(t, 3, ts.TotalPossible)
	assert.Equal(t, 2, ts.TotalCompleted)
	assert.Equal(t, 67, ts.Percentage)
}

func TestTaskStats_CappedPerDay(t *testing.T) {
	d := task("d", domain.CadenceDaily)
	l := newLedgerBuilder().done("2025-01-01", 1, "d").done("2025-01-01", 3, "d").build()

	ts := NewAggregator([]*domain.Task{d}, l, 3, time.UTC).TaskStats(d, []calendar.Date{"2025-01-01", "2025-01-02"})
	assert.Equal(t, 2, ts.TotalPossible)
	assert.Equal(t, 1, ts.TotalCompleted)
	assert.Equal(t, 50, ts.Percentage)
}

func TestCountedNeverExceedsPossible(t *testing.T) {
	tasks := []*domain.Task{task("d", domain.CadenceDaily), task("p", domain.CadencePerSession)}
	b := newLedgerBuilder()
	for day := 1; day <= 5; day++ {
		date := fmt.Sprintf("2025-01-%02d", day)
		for n := 1; n <= day%4; n++ {
			b.done(date, n, "d", "p", "p")
		}
	}
	agg := NewAggregator(tasks, b.build(), 3, time.UTC)

	for _, d := range calendar.DaysInRange("2025-01-01", "2025-01-05") {
		ds := agg.DayStats(d)
		assert.LessOrEqual(t, ds.Counted, ds.Possible, d)
		assert.LessOrEqual(t, ds.Percentage, 100, d)
	}
}
