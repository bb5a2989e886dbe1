package service

import (
	"github.com/alexanderramin/consistency/internal/db"
	"github.com/alexanderramin/consistency/internal/repository"
)

// repoSet is every repository bound to one connection or transaction.
type repoSet struct {
	users       repository.UserRepo
	tasks       repository.TaskRepo
	checkIns    repository.CheckInRepo
	completions repository.CompletionRepo
}

// repoFactory builds a repoSet for a transaction. Services only touch the
// store through the DBTX handed out by their UnitOfWork.
type repoFactory func(tx db.DBTX) repoSet

func sqliteRepos(tx db.DBTX) repoSet {
	return repoSet{
		users:       repository.NewSQLiteUserRepo(tx),
		tasks:       repository.NewSQLiteTaskRepo(tx),
		checkIns:    repository.NewSQLiteCheckInRepo(tx),
		completions: repository.NewSQLiteCompletionRepo(tx),
	}
}
