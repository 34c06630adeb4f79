package services

import (
	"context"

	"github.com/selimacar/exercise-tracker/internal/ident"
	"github.com/selimacar/exercise-tracker/internal/metrics"
	"github.com/selimacar/exercise-tracker/internal/models"
	repo "github.com/selimacar/exercise-tracker/internal/repository"
	"github.com/selimacar/exercise-tracker/internal/worker"
)

type UserService struct {
	users repo.Users
	audit repo.AuditLogs
	wp    *worker.Pool
}

func NewUserService(users repo.Users, audit repo.AuditLogs, wp *worker.Pool) *UserService {
	return &UserService{users: users, audit: audit, wp: wp}
}

// Create registers username and returns its id+username projection. When the
// username already exists the existing row is returned unchanged, so the call
// is idempotent by username. An id is generated per attempt either way.
func (s *UserService) Create(ctx context.Context, username string) (models.UserRef, error) {
	id := ident.New()
	u, err := s.users.InsertIfAbsent(ctx, models.User{ID: id, Username: username, Log: []models.Exercise{}})
	if err != nil {
		return models.UserRef{}, err
	}
	if u.ID == id { // our insert won
		metrics.UsersCreated.Inc()
		submitAudit(s.wp, s.audit, u.ID, "user_created", map[string]any{"username": u.Username})
	}
	return models.UserRef{ID: u.ID, Username: u.Username}, nil
}

func (s *UserService) List(ctx context.Context) ([]models.UserRef, error) {
	return s.users.List(ctx)
}
