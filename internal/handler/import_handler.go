package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/innovax/lunch-api/internal/service"
	appErrors "github.com/innovax/lunch-api/pkg/errors"
	"github.com/innovax/lunch-api/pkg/response"
)

// ImportHandler exposes the bulk CSV upload endpoints.
type ImportHandler struct {
	imports *service.ImportService
	logger  *zap.Logger
}

// NewImportHandler constructs an ImportHandler.
func NewImportHandler(imports *service.ImportService, logger *zap.Logger) *ImportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportHandler{imports: imports, logger: logger}
}

// Import godoc
// @Summary Bulk import lunch records from CSV
// @Tags lunch-import
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV upload"
// @Success 200 {object} response.Envelope{data=dto.ImportSummary}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /lunch/import [post]
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing file field in multipart form"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to open uploaded file"))
		return
	}
	defer file.Close()

	summary, err := h.imports.Import(c.Request.Context(), file, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Template godoc
// @Summary Download the import CSV template
// @Tags lunch-import
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV template"
// @Router /lunch/import/template [get]
func (h *ImportHandler) Template(c *gin.Context) {
	out, err := h.imports.Template()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="lunch_import_template.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}
