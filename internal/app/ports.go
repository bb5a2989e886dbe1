package app

import (
	"context"

	"github.com/alexanderramin/consistency/internal/domain"
)

type TodayUseCase interface {
	Today(ctx context.Context, userID string) (*TodayResponse, error)
}

type RecordCompletionUseCase interface {
	RecordCompletion(ctx context.Context, req RecordCompletionRequest) (*RecordCompletionResponse, error)
	QuickToggle(ctx context.Context, userID, taskID string) (*RecordCompletionResponse, error)
}

type SubmitCheckInUseCase interface {
	SubmitCheckIn(ctx context.Context, req SubmitCheckInRequest) (*SubmitCheckInResponse, error)
}

type StatsUseCase interface {
	Overview(ctx context.Context, userID string) (*StatsResponse, error)
}

type TaskUseCase interface {
	Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error)
	List(ctx context.Context, userID string, includeRemoved bool) ([]*domain.Task, error)
	Update(ctx context.Context, taskID string, patch domain.TaskPatch) (*domain.Task, error)
	Remove(ctx context.Context, taskID string) error
	Reorder(ctx context.Context, userID string, orderedIDs []string) error
}

type UserUseCase interface {
	Create(ctx context.Context, req CreateUserRequest) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, req UpdateUserRequest) (*domain.User, error)
}
