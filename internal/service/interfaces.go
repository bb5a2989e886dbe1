package service

import "github.com/alexanderramin/consistency/internal/app"

type UserService interface {
	app.UserUseCase
}

type TaskService interface {
	app.TaskUseCase
}

type CheckInService interface {
	app.TodayUseCase
	app.RecordCompletionUseCase
	app.SubmitCheckInUseCase
}

type StatsService interface {
	app.StatsUseCase
}
