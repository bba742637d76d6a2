package services

import (
	"context"
	"sync"
	"testing"

	"github.com/sjperalta/vehifin-api/internal/jobs"
	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/sjperalta/vehifin-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuditRepo struct {
	repository.AuditRepository
	mu      sync.Mutex
	entries []models.AuditLog
}

func (m *mockAuditRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func TestAuditService_LogAsync(t *testing.T) {
	worker := jobs.NewWorker(1)
	defer worker.Shutdown()
	repo := &mockAuditRepo{}
	service := NewAuditService(repo, worker)

	service.Log(context.Background(), models.AuditLog{Username: "admin", Action: models.AuditActionView, Entity: "Contract", EntityID: "1"})
	service.Log(context.Background(), models.AuditLog{Username: "admin", Action: models.AuditActionExport, Entity: "Contract"})
	worker.WaitAsync()

	require.Len(t, repo.entries, 2)
	assert.ElementsMatch(t, []string{models.AuditActionView, models.AuditActionExport},
		[]string{repo.entries[0].Action, repo.entries[1].Action})
}

func TestAuditService_LogWithoutWorker(t *testing.T) {
	repo := &mockAuditRepo{}
	service := NewAuditService(repo, nil)

	service.Log(context.Background(), models.AuditLog{Action: models.AuditActionLogin, Entity: "User"})
	require.Len(t, repo.entries, 1)
}
