package repository

import (
	"context"
	"errors"

	"github.com/selimacar/exercise-tracker/internal/models"
)

// ErrNotFound is returned by lookups when no matching document exists.
var ErrNotFound = errors.New("not found")

type Users interface {
	// List projects every user to id+username.
	List(ctx context.Context) ([]models.UserRef, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	// InsertIfAbsent inserts u unless the username is already taken and
	// returns the winning row either way (atomic; no check-then-insert race).
	InsertIfAbsent(ctx context.Context, u models.User) (models.User, error)
	// Save persists the log and count of an existing user.
	Save(ctx context.Context, u models.User) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
