package services

import (
	"context"

	"github.com/sjperalta/vehifin-api/internal/jobs"
	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/sjperalta/vehifin-api/internal/repository"
	"github.com/sjperalta/vehifin-api/pkg/logger"
)

// AuditService records who looked at or exported what
type AuditService struct {
	repo   repository.AuditRepository
	worker *jobs.Worker
}

func NewAuditService(repo repository.AuditRepository, worker *jobs.Worker) *AuditService {
	return &AuditService{repo: repo, worker: worker}
}

// Log writes the entry in the background. Without a worker it is written immediately.
func (s *AuditService) Log(ctx context.Context, entry models.AuditLog) {
	if s.worker == nil {
		if err := s.repo.Create(ctx, &entry); err != nil {
			logger.WithContext(ctx).Error("failed to write audit log", "action", entry.Action, "error", err)
		}
		return
	}

	s.worker.EnqueueAsync(func(jobCtx context.Context) error {
		return s.repo.Create(jobCtx, &entry)
	})
}

// List returns audit entries, newest first
func (s *AuditService) List(ctx context.Context, query *repository.ListQuery) ([]models.AuditLog, int64, error) {
	return s.repo.List(ctx, query)
}
