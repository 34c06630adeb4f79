package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/selimacar/exercise-tracker/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	AuditLogs repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
