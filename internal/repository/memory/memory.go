// Package memory holds map-backed repository implementations used by tests.
package memory

import (
	"context"
	"sync"

	"github.com/selimacar/exercise-tracker/internal/models"
	"github.com/selimacar/exercise-tracker/internal/repository"
)

type UsersStore struct {
	mu    sync.RWMutex
	byID  map[string]models.User
	order []string
}

func NewUsers() *UsersStore {
	return &UsersStore{byID: map[string]models.User{}}
}

func (s *UsersStore) List(ctx context.Context) ([]models.UserRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.UserRef
	for _, id := range s.order {
		u := s.byID[id]
		out = append(out, models.UserRef{ID: u.ID, Username: u.Username})
	}
	return out, nil
}

func (s *UsersStore) GetByID(ctx context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return models.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s *UsersStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, repository.ErrNotFound
}

func (s *UsersStore) InsertIfAbsent(ctx context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Username == u.Username {
			return existing, nil
		}
	}
	s.byID[u.ID] = u
	s.order = append(s.order, u.ID)
	return u, nil
}

func (s *UsersStore) Save(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	s.byID[u.ID] = u
	return nil
}

type AuditStore struct {
	mu      sync.Mutex
	Entries []models.AuditLog
}

func NewAuditLogs() *AuditStore { return &AuditStore{} }

func (s *AuditStore) Create(ctx context.Context, l models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries = append(s.Entries, l)
	return nil
}
