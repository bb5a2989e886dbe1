package app

import (
	"github.com/alexanderramin/consistency/internal/calendar"
	"github.com/alexanderramin/consistency/internal/domain"
	"github.com/alexanderramin/consistency/internal/session"
	"github.com/alexanderramin/consistency/internal/stats"
)

type TodayResponse struct {
	User     *domain.User
	Moment   calendar.Moment
	Sessions []session.Slot
	// Tasks holds the tasks active today, in sort order.
	Tasks           []session.TaskProgress
	CurrentSession  int
	HasCurrent      bool
	NextBoundary    string
	HasNext         bool
	AllSessionsDone bool
	Day             stats.DayStats
}

type RecordCompletionRequest struct {
	UserID    string
	TaskID    string
	Completed bool
}

type RecordCompletionResponse struct {
	Task       *domain.Task
	CheckIn    *domain.CheckIn
	Completion *domain.Completion
	// CreatedCheckIn is set when this call opened the session's check-in.
	CreatedCheckIn bool
	Day            stats.DayStats
}

type SubmitCheckInRequest struct {
	UserID           string
	CompletedTaskIDs []string
}

type SubmitCheckInResponse struct {
	CheckIn     *domain.CheckIn
	Completions []*domain.Completion
	Day         stats.DayStats
}

type StatsResponse struct {
	User     *domain.User
	Today    calendar.Date
	Overview stats.Overview
}

type CreateUserRequest struct {
	DisplayName  string
	Timezone     string
	CheckInTimes []string
	// StartDate defaults to today in Timezone.
	StartDate *calendar.Date
	GoalDate  *calendar.Date
}

type UpdateUserRequest struct {
	UserID       string
	DisplayName  *string
	Timezone     *string
	CheckInTimes []string
	GoalDate     *calendar.Date
	ClearGoal    bool
}

type CreateTaskRequest struct {
	UserID  string
	Name    string
	Icon    string
	Cadence domain.Cadence
}
