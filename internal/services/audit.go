package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/selimacar/exercise-tracker/internal/metrics"
	"github.com/selimacar/exercise-tracker/internal/models"
	repo "github.com/selimacar/exercise-tracker/internal/repository"
	"github.com/selimacar/exercise-tracker/internal/worker"
)

// submitAudit queues an audit row without blocking the request. The row
// carries its own background context since it outlives the request.
func submitAudit(wp *worker.Pool, audit repo.AuditLogs, entityID, action string, details map[string]any) {
	if wp == nil || audit == nil {
		return
	}
	l := models.AuditLog{
		ID:         uuid.NewString(),
		EntityType: "user",
		EntityID:   &entityID,
		Action:     action,
		Details:    details,
	}
	wp.Submit(func() { _ = audit.Create(context.Background(), l) })
	metrics.WorkerQueueDepth.Set(float64(wp.Queued()))
}
