package service

import (
	"context"

	"github.com/alexanderramin/consistency/internal/app"
	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/db"
)

type statsService struct {
	engine
}

func NewStatsService(uow db.UnitOfWork, clock calendar.Clock, observers ...UseCaseObserver) StatsService {
	return &statsService{engine: newEngine(uow, clock, observers)}
}

// Overview evaluates every stat from the user's start date through today.
func (s *statsService) Overview(ctx context.Context, userID string) (resp *app.StatsResponse, err error) {
	startedAt := s.clock.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "stats-overview", startedAt, fields, &err)

	snap, err := s.load(ctx, userID, startedAt, scopeAllTime)
	if err != nil {
		return nil, err
	}
	fields["check_ins"] = len(snap.checkIns)
	if d := snap.ledger.Dropped(); d > 0 {
		fields["dropped_completions"] = d
	}

	today := snap.today()
	return &app.StatsResponse{
		User:     snap.user,
		Today:    today,
		Overview: snap.aggregator().Overview(snap.user.StartDate, snap.user.GoalDate, today),
	}, nil
}
