package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anupkhare/finreport/internal/domain/models"
	"github.com/anupkhare/finreport/internal/service/finlog"
)

// FinancialHandler adapts the financial log store to HTTP.
type FinancialHandler struct {
	svc    *finlog.Service
	logger *zap.Logger
}

// NewFinancialHandler constructs the HTTP handler adapter.
func NewFinancialHandler(svc *finlog.Service, logger *zap.Logger) *FinancialHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinancialHandler{svc: svc, logger: logger}
}

// Logs returns the project's daily entries.
func (h *FinancialHandler) Logs(c *gin.Context) {
	logs, err := h.svc.Logs(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if logs == nil {
		logs = []models.DailyLogEntry{}
	}
	c.JSON(http.StatusOK, logs)
}

// AppendEntry adds a zeroed entry dated today.
func (h *FinancialHandler) AppendEntry(c *gin.Context) {
	entry, err := h.svc.AppendEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

type updateFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// UpdateField mutates one field of the entry at the path index.
func (h *FinancialHandler) UpdateField(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}

	var req updateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid log field payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.svc.UpdateField(c.Request.Context(), c.Param("id"), index, req.Field, req.Value)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// HikeConfig returns the project's hike configuration, defaulted when the
// project has never saved one.
func (h *FinancialHandler) HikeConfig(c *gin.Context) {
	cfg, err := h.svc.HikeConfig(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// SetHikeConfig replaces the hike configuration wholesale.
func (h *FinancialHandler) SetHikeConfig(c *gin.Context) {
	var cfg models.HikeConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.logger.Warn("invalid hike config payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.svc.SetHikeConfig(c.Request.Context(), c.Param("id"), cfg); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
