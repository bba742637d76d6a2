package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/vehifin-api/internal/middleware"
	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/sjperalta/vehifin-api/internal/repository"
	"github.com/sjperalta/vehifin-api/internal/services"
)

type SeedHandler struct {
	seedService  *services.SeedService
	auditService *services.AuditService
}

func NewSeedHandler(seedService *services.SeedService, auditService *services.AuditService) *SeedHandler {
	return &SeedHandler{seedService: seedService, auditService: auditService}
}

// @Summary Seed Sample Data
// @Description Creates sample contracts when the store is empty. Existing data is left untouched.
// @Tags Seed
// @Produce json
// @Success 200 {object} services.SeedResult
// @Security BearerAuth
// @Router /seed-data [post]
func (h *SeedHandler) Create(c *gin.Context) {
	result, err := h.seedService.GenerateSample(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrAlreadySeeded) {
			c.JSON(http.StatusOK, result)
			return
		}
		respondError(c, err)
		return
	}

	if h.auditService != nil {
		h.auditService.Log(c.Request.Context(), models.AuditLog{
			UserID:    middleware.GetUserID(c),
			Username:  middleware.GetUsername(c),
			Action:    models.AuditActionSeed,
			Entity:    "Contract",
			Details:   result.Message,
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
	}

	c.JSON(http.StatusOK, result)
}

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// @Summary List Audit Logs
// @Description Get a paginated list of audit logs, newest first
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(50)
// @Param action query string false "LOGIN, VIEW, EXPORT or SEED"
// @Param entity query string false "Entity type"
// @Param entity_id query string false "Entity ID"
// @Param username query string false "Username"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /audits [get]
func (h *AuditHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "50"))
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PerPage < 1 || query.PerPage > 200 {
		query.PerPage = 50
	}
	for _, key := range []string{"action", "entity", "entity_id", "username"} {
		if v := c.Query(key); v != "" {
			query.Filters[key] = v
		}
	}

	logs, total, err := h.auditService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"audits": logs,
		"pagination": gin.H{
			"page":        query.Page,
			"per_page":    query.PerPage,
			"total":       total,
			"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
		},
	})
}

type JobHandler struct {
	jobService *services.JobService
}

func NewJobHandler(jobSvc *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobSvc}
}

// @Summary Get background job status
// @Description Worker counters and the state of each scheduled job
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} jobs.WorkerStats
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobService.GetStatus())
}
