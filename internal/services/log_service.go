package services

import (
	"context"
	"errors"
	"time"

	"github.com/selimacar/exercise-tracker/internal/metrics"
	"github.com/selimacar/exercise-tracker/internal/models"
	repo "github.com/selimacar/exercise-tracker/internal/repository"
	"github.com/selimacar/exercise-tracker/internal/worker"
)

type LogService struct {
	users repo.Users
	audit repo.AuditLogs
	wp    *worker.Pool
}

func NewLogService(users repo.Users, audit repo.AuditLogs, wp *worker.Pool) *LogService {
	return &LogService{users: users, audit: audit, wp: wp}
}

// Query filters a user's log by the optional from/to day bounds, then keeps
// the first limit entries. No re-sort happens here; order is whatever was
// last persisted (descending by date). The echoed From/To are normalized day
// strings, which may differ from the literal query values.
func (s *LogService) Query(ctx context.Context, userID, from, to string, limit int) (models.LogResult, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return models.LogResult{}, ErrUnknownUser
	}
	if err != nil {
		return models.LogResult{}, err
	}

	res := models.LogResult{ID: u.ID, Username: u.Username}
	log := u.Log
	if from != "" {
		f, err := parseDay(from)
		if err != nil {
			return models.LogResult{}, &BadDateError{Field: "from", Value: from}
		}
		res.From = formatDay(f)
		log = filterLog(log, func(d time.Time) bool { return !d.Before(f) })
	}
	if to != "" {
		t, err := parseDay(to)
		if err != nil {
			return models.LogResult{}, &BadDateError{Field: "to", Value: to}
		}
		res.To = formatDay(t)
		log = filterLog(log, func(d time.Time) bool { return !d.After(t) })
	}
	if limit > 0 && limit < len(log) {
		log = log[:limit]
	}
	if log == nil {
		log = []models.Exercise{}
	}
	res.Count = len(log)
	res.Log = log
	return res, nil
}

// filterLog keeps entries whose parsed date satisfies keep. Entries with an
// unparsable stored date never satisfy a bound.
func filterLog(log []models.Exercise, keep func(time.Time) bool) []models.Exercise {
	out := make([]models.Exercise, 0, len(log))
	for _, e := range log {
		d, err := time.Parse(dayFormat, e.Date)
		if err != nil {
			continue
		}
		if keep(d) {
			out = append(out, e)
		}
	}
	return out
}

// Append normalizes and appends one entry to the user's log, re-sorts the
// whole log descending by date, recomputes count and persists the document.
func (s *LogService) Append(ctx context.Context, userID, description string, duration float64, date string) (models.User, error) {
	day := formatDay(time.Now())
	if date != "" {
		d, err := parseDay(date)
		if err != nil {
			return models.User{}, &BadDateError{Field: "date", Value: date}
		}
		day = formatDay(d)
	}

	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return models.User{}, ErrUnknownUser
	}
	if err != nil {
		return models.User{}, err
	}

	entry := models.Exercise{Description: capitalize(description), Duration: duration, Date: day}
	u.Log = append(u.Log, entry)
	sortLogDesc(u.Log)
	u.Count = len(u.Log)

	if err := s.users.Save(ctx, u); err != nil {
		return models.User{}, err
	}

	metrics.ExercisesAdded.Inc()
	submitAudit(s.wp, s.audit, u.ID, "exercise_added", map[string]any{
		"description": entry.Description,
		"duration":    entry.Duration,
		"date":        entry.Date,
	})
	return u, nil
}
