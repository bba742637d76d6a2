package handlers

import (
	"github.com/sjperalta/vehifin-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Contract *ContractHandler
	Seed     *SeedHandler
	Audit    *AuditHandler
	Job      *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(),
		Auth:     NewAuthHandler(svcs.Auth, svcs.Audit),
		Contract: NewContractHandler(svcs.Contract, svcs.Export, svcs.Report, svcs.Audit),
		Seed:     NewSeedHandler(svcs.Seed, svcs.Audit),
		Audit:    NewAuditHandler(svcs.Audit),
		Job:      NewJobHandler(svcs.Job),
	}
}
