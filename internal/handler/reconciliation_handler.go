package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"payment-recon/internal/domain"
	"payment-recon/internal/service"
	"payment-recon/pkg/logger"
	"payment-recon/pkg/response"
)

type ReconciliationHandler struct {
	service service.ReconciliationService
}

func NewReconciliationHandler(service service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{service: service}
}

type ReconcileRowsRequest struct {
	SwitchRows  []domain.RawRow `json:"switch_rows"`
	GatewayRows []domain.RawRow `json:"gateway_rows"`
}

// Reconcile godoc
// @Summary Reconcile uploaded ledgers
// @Description Upload switch and gateway exports (CSV or XLSX, several files per ledger) and reconcile them
// @Tags reconciliation
// @Accept multipart/form-data
// @Produce json
// @Param switch_files formData file false "Switch ledger files"
// @Param gateway_files formData file false "Gateway ledger files"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 413 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/reconcile [post]
func (h *ReconciliationHandler) Reconcile(c *gin.Context) {
	switchFiles, gatewayFiles, closeAll, err := openUploads(c)
	if err != nil {
		respondError(c, err, "Invalid upload")
		return
	}
	defer closeAll()

	logger.GetLogger().WithFields(map[string]interface{}{
		"switch_files":  len(switchFiles),
		"gateway_files": len(gatewayFiles),
	}).Info("Received reconciliation upload")

	result, err := h.service.Reconcile(c.Request.Context(), switchFiles, gatewayFiles)
	if err != nil {
		respondError(c, err, "Reconciliation failed")
		return
	}

	response.Success(c, http.StatusOK, "Reconciliation completed successfully", result)
}

// ReconcileRows godoc
// @Summary Reconcile decoded ledger rows
// @Description Reconcile ledgers sent as JSON arrays of column-to-value objects
// @Tags reconciliation
// @Accept json
// @Produce json
// @Param request body ReconcileRowsRequest true "Ledger rows"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/reconcile/rows [post]
func (h *ReconciliationHandler) ReconcileRows(c *gin.Context) {
	var req ReconcileRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithError(err).Error("Invalid request")
		response.ValidationError(c, err.Error())
		return
	}

	result, err := h.service.ReconcileRows(c.Request.Context(), req.SwitchRows, req.GatewayRows)
	if err != nil {
		respondError(c, err, "Reconciliation failed")
		return
	}

	response.Success(c, http.StatusOK, "Reconciliation completed successfully", result)
}

// GetJobStatus godoc
// @Summary Get reconciliation job status
// @Description Get the status and statistics of a reconciliation job by ID
// @Tags reconciliation
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/reconcile/jobs/{job_id} [get]
func (h *ReconciliationHandler) GetJobStatus(c *gin.Context) {
	jobID := c.Param("job_id")

	job, err := h.service.GetJob(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err, "Failed to get job")
		return
	}

	response.Success(c, http.StatusOK, "Job status retrieved successfully", job)
}

// GetJobResult godoc
// @Summary Get reconciliation job result
// @Description Get the discrepancy buckets and statistics of a finished job
// @Tags reconciliation
// @Produce json
// @Param job_id path string true "Job ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/reconcile/jobs/{job_id}/result [get]
func (h *ReconciliationHandler) GetJobResult(c *gin.Context) {
	jobID := c.Param("job_id")

	result, err := h.service.GetResult(c.Request.Context(), jobID)
	if err != nil {
		respondError(c, err, "Failed to get job result")
		return
	}

	response.Success(c, http.StatusOK, "Job result retrieved successfully", result)
}

// ExportJobResult godoc
// @Summary Export reconciliation job result
// @Description Download the result as CSV (tables separated by a blank line) or XLSX (one sheet per bucket)
// @Tags reconciliation
// @Produce octet-stream
// @Param job_id path string true "Job ID"
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/reconcile/jobs/{job_id}/export [get]
func (h *ReconciliationHandler) ExportJobResult(c *gin.Context) {
	jobID := c.Param("job_id")

	format, err := service.ParseExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))
	if err != nil {
		response.BadRequest(c, "Invalid format", "Use csv or xlsx")
		return
	}

	file, err := h.service.Export(c.Request.Context(), jobID, format)
	if err != nil {
		respondError(c, err, "Failed to export job result")
		return
	}

	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
