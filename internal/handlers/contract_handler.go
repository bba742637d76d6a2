package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/vehifin-api/internal/middleware"
	"github.com/sjperalta/vehifin-api/internal/models"
	"github.com/sjperalta/vehifin-api/internal/repository"
	"github.com/sjperalta/vehifin-api/internal/roster"
	"github.com/sjperalta/vehifin-api/internal/services"
	"github.com/sjperalta/vehifin-api/internal/storage"
	"github.com/sjperalta/vehifin-api/pkg/logger"
)

type ContractHandler struct {
	contractService *services.ContractService
	exportService   *services.ExportService
	reportService   *services.ReportService
	auditService    *services.AuditService
}

func NewContractHandler(contractSvc *services.ContractService, exportSvc *services.ExportService, reportSvc *services.ReportService, auditSvc *services.AuditService) *ContractHandler {
	return &ContractHandler{
		contractService: contractSvc,
		exportService:   exportSvc,
		reportService:   reportSvc,
		auditService:    auditSvc,
	}
}

// bindViewParameters reads the roster query, starting from the defaults of a fresh roster
func bindViewParameters(c *gin.Context) (roster.ViewParameters, error) {
	params := roster.DefaultViewParameters()
	err := c.ShouldBindQuery(&params)
	return params, err
}

// @Summary List Contracts
// @Description Filtered, searched and sorted contract roster
// @Tags Contracts
// @Produce json
// @Param search query string false "Case-insensitive match on customer, contract number, vehicle or company"
// @Param status_filter query string false "Status or 'all'" default(all)
// @Param company_filter query string false "Company or 'all'" default(all)
// @Param sort_by query string false "date, customer, amount or company" default(date)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /contracts [get]
func (h *ContractHandler) Index(c *gin.Context) {
	params, err := bindViewParameters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contracts, err := h.contractService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	if contracts == nil {
		contracts = []models.ContractSummary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"contracts": contracts,
		"total":     len(contracts),
	})
}

// @Summary Roster Filter Options
// @Description Distinct statuses and companies present in the roster
// @Tags Contracts
// @Produce json
// @Success 200 {object} roster.FilterOptions
// @Security BearerAuth
// @Router /contracts/filters [get]
func (h *ContractHandler) Filters(c *gin.Context) {
	options, err := h.contractService.Filters(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

// @Summary Export Roster
// @Description Downloads the roster with the same query parameters as the list
// @Tags Contracts
// @Produce octet-stream
// @Param format query string false "csv or xlsx" default(csv)
// @Param search query string false "Search query"
// @Param status_filter query string false "Status or 'all'"
// @Param company_filter query string false "Company or 'all'"
// @Param sort_by query string false "date, customer, amount or company"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /contracts/export [get]
func (h *ContractHandler) Export(c *gin.Context) {
	params, err := bindViewParameters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contracts, err := h.contractService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", services.FormatCSV))
	file, err := h.exportService.Roster(contracts, format)
	if err != nil {
		respondError(c, err)
		return
	}

	h.audit(c, models.AuditActionExport, "", "roster "+format)
	sendFile(c, file)
}

// @Summary Get Contract
// @Description Contract with people, vehicle, loan, payment schedule and payment summary
// @Tags Contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} services.ContractDetail
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /contracts/{id} [get]
func (h *ContractHandler) Show(c *gin.Context) {
	id := c.Param("id")
	detail, err := h.contractService.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.audit(c, models.AuditActionView, id, "")
	c.JSON(http.StatusOK, detail)
}

// @Summary Payment Summary
// @Description Totals and counts of the contract's payment schedule
// @Tags Contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} roster.PaymentSummary
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /contracts/{id}/payment_summary [get]
func (h *ContractHandler) PaymentSummary(c *gin.Context) {
	summary, err := h.contractService.PaymentSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Export Payment Schedule
// @Description Downloads the payment schedule with totals
// @Tags Contracts
// @Produce octet-stream
// @Param id path string true "Contract ID"
// @Param format query string false "csv, xlsx or pdf" default(pdf)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /contracts/{id}/schedule/export [get]
func (h *ContractHandler) ScheduleExport(c *gin.Context) {
	id := c.Param("id")
	contract, err := h.contractService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", services.FormatPDF))
	file, err := h.exportService.Schedule(contract, format)
	if err != nil {
		respondError(c, err)
		return
	}

	h.audit(c, models.AuditActionExport, id, "schedule "+format)
	sendFile(c, file)
}

// @Summary Contract Sheet
// @Description Printable contract sheet. format=html returns the page without PDF conversion.
// @Tags Contracts
// @Produce application/pdf
// @Param id path string true "Contract ID"
// @Param format query string false "pdf or html" default(pdf)
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /contracts/{id}/sheet [get]
func (h *ContractHandler) Sheet(c *gin.Context) {
	id := c.Param("id")

	if strings.EqualFold(c.Query("format"), "html") {
		html, _, err := h.reportService.ContractSheetHTML(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
		return
	}

	file, err := h.reportService.ContractSheetPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.audit(c, models.AuditActionExport, id, "contract sheet")
	sendFile(c, file)
}

// @Summary Contract Photo
// @Description Customer or guarantor photo
// @Tags Contracts
// @Produce image/png,image/jpeg,image/svg+xml
// @Param id path string true "Contract ID"
// @Param person path string true "customer or guarantor"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /contracts/{id}/photos/{person} [get]
func (h *ContractHandler) Photo(c *gin.Context) {
	person := c.Param("person")
	if person != repository.PersonCustomer && person != repository.PersonGuarantor {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown person " + person})
		return
	}

	path, err := h.contractService.Photo(c.Request.Context(), c.Param("id"), person)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", storage.ContentType(path))
	c.File(path)
}

func (h *ContractHandler) audit(c *gin.Context, action, entityID, details string) {
	if h.auditService == nil {
		return
	}
	h.auditService.Log(c.Request.Context(), models.AuditLog{
		UserID:    middleware.GetUserID(c),
		Username:  middleware.GetUsername(c),
		Action:    action,
		Entity:    "Contract",
		EntityID:  entityID,
		Details:   details,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
}

// sendFile writes a generated download
func sendFile(c *gin.Context, file *services.ExportFile) {
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// respondError maps service errors to HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
	case errors.Is(err, services.ErrNoPhoto):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
