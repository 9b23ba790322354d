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

// TypeHandler exposes the lunch category catalogue.
type TypeHandler struct {
	types  *service.TypeService
	logger *zap.Logger
}

// NewTypeHandler constructs a TypeHandler.
func NewTypeHandler(types *service.TypeService, logger *zap.Logger) *TypeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TypeHandler{types: types, logger: logger}
}

// List godoc
// @Summary List lunch types
// @Tags lunch-config
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.LunchType}
// @Router /lunch/types [get]
func (h *TypeHandler) List(c *gin.Context) {
	result, err := h.types.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Fetch one lunch type
// @Tags lunch-config
// @Produce json
// @Security BearerAuth
// @Param id path string true "lunch type id"
// @Success 200 {object} response.Envelope{data=models.LunchType}
// @Failure 404 {object} response.Envelope
// @Router /lunch/types/{id} [get]
func (h *TypeHandler) Get(c *gin.Context) {
	result, err := h.types.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Create godoc
// @Summary Add a lunch type
// @Tags lunch-config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateLunchTypeRequest true "lunch type"
// @Success 201 {object} response.Envelope{data=models.LunchType}
// @Failure 409 {object} response.Envelope
// @Router /lunch/types [post]
func (h *TypeHandler) Create(c *gin.Context) {
	var req dto.CreateLunchTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lunch type payload"))
		return
	}
	result, err := h.types.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update godoc
// @Summary Edit a lunch type
// @Tags lunch-config
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "lunch type id"
// @Param payload body dto.UpdateLunchTypeRequest true "lunch type"
// @Success 200 {object} response.Envelope{data=models.LunchType}
// @Failure 404 {object} response.Envelope
// @Router /lunch/types/{id} [put]
func (h *TypeHandler) Update(c *gin.Context) {
	var req dto.UpdateLunchTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid lunch type payload"))
		return
	}
	result, err := h.types.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
