package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"payment-recon/internal/export"
	"payment-recon/internal/service"
	"payment-recon/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses the embedded HTML pages for gin's renderer
func LoadTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// PageHandler serves the browser upload form and the results page
type PageHandler struct {
	service service.ReconciliationService
}

func NewPageHandler(service service.ReconciliationService) *PageHandler {
	return &PageHandler{service: service}
}

func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

func (h *PageHandler) Upload(c *gin.Context) {
	switchFiles, gatewayFiles, closeAll, err := openUploads(c)
	if err != nil {
		h.renderError(c, err)
		return
	}
	defer closeAll()

	result, err := h.service.Reconcile(c.Request.Context(), switchFiles, gatewayFiles)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "results.html", gin.H{
		"JobID":      result.Job.JobID,
		"Summary":    export.SummaryRows(result.Result.Stats),
		"Tables":     export.Tables(result.Result),
		"Duplicates": result.Result.DuplicateReferences,
	})
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.GetLogger().WithError(err).Error("Reconciliation page failed")
		message = "The files could not be processed. Please try again."
	}
	c.HTML(status, "index.html", gin.H{"Error": message})
}
