package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/innovax/lunch-api/internal/dto"
	"github.com/innovax/lunch-api/internal/service"
	appErrors "github.com/innovax/lunch-api/pkg/errors"
	"github.com/innovax/lunch-api/pkg/response"
)

// ReportHandler exposes the lunch report endpoint in JSON, CSV and PDF.
type ReportHandler struct {
	reports *service.ReportService
	logger  *zap.Logger
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(reports *service.ReportService, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reports: reports, logger: logger}
}

// Get godoc
// @Summary Build the lunch report
// @Tags lunch-reports
// @Produce json
// @Security BearerAuth
// @Param dateFrom query string true "start date YYYY-MM-DD"
// @Param dateTo query string true "end date YYYY-MM-DD"
// @Param employeeId query string false "employee filter (admin only)"
// @Param format query string false "json, csv or pdf" default(json)
// @Success 200 {object} response.Envelope{data=dto.ReportResult}
// @Failure 400 {object} response.Envelope
// @Router /lunch/reports [get]
func (h *ReportHandler) Get(c *gin.Context) {
	var query dto.ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid report query"))
		return
	}
	actor := claimsFromContext(c)

	switch query.Format {
	case "csv":
		out, err := h.reports.RenderCSV(c.Request.Context(), query, actor)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="lunch_report.csv"`)
		c.Data(http.StatusOK, "text/csv", out)
	case "pdf":
		out, err := h.reports.RenderPDF(c.Request.Context(), query, actor)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="lunch_report.pdf"`)
		c.Data(http.StatusOK, "application/pdf", out)
	default:
		result, err := h.reports.Build(c.Request.Context(), query, actor)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, result, nil)
	}
}
