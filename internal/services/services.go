package services

import (
	"github.com/sjperalta/vehifin-api/internal/config"
	"github.com/sjperalta/vehifin-api/internal/jobs"
	"github.com/sjperalta/vehifin-api/internal/repository"
	"github.com/sjperalta/vehifin-api/internal/roster"
	"github.com/sjperalta/vehifin-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth     *AuthService
	Contract *ContractService
	Seed     *SeedService
	Export   *ExportService
	Report   *ReportService
	Audit    *AuditService
	Job      *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, storage *storage.LocalStorage, engine *roster.Engine, cfg *config.Config) *Services {
	contractSvc := NewContractService(repos.Contract, engine, storage)

	return &Services{
		Auth:     NewAuthService(repos.User, repos.RefreshToken, cfg),
		Contract: contractSvc,
		Seed:     NewSeedService(repos.Contract, storage),
		Export:   NewExportService(),
		Report:   NewReportService(contractSvc, storage),
		Audit:    NewAuditService(repos.Audit, worker),
		Job:      NewJobService(worker),
	}
}
