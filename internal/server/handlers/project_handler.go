package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anupkhare/finreport/internal/domain/models"
	"github.com/anupkhare/finreport/internal/service/projects"
)

// ProjectHandler adapts the project store to HTTP.
type ProjectHandler struct {
	svc    *projects.Service
	logger *zap.Logger
}

// NewProjectHandler constructs the HTTP handler adapter.
func NewProjectHandler(svc *projects.Service, logger *zap.Logger) *ProjectHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectHandler{svc: svc, logger: logger}
}

// List returns every project in insertion order.
func (h *ProjectHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if list == nil {
		list = []models.Project{}
	}
	c.JSON(http.StatusOK, list)
}

// Get fetches one project.
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Create validates and stores a new project.
func (h *ProjectHandler) Create(c *gin.Context) {
	var form models.ProjectFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		h.logger.Warn("invalid project payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	project, err := h.svc.Create(c.Request.Context(), form)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// Update replaces the editable fields of an existing project.
func (h *ProjectHandler) Update(c *gin.Context) {
	var form models.ProjectFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		h.logger.Warn("invalid project payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	project, err := h.svc.Update(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Delete removes a project; deleting an absent id still returns 204.
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Duplicate clones an existing project under a new id.
func (h *ProjectHandler) Duplicate(c *gin.Context) {
	project, err := h.svc.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}
