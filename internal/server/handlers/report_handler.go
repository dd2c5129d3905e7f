package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anupkhare/finreport/internal/render/pdf"
	"github.com/anupkhare/finreport/internal/service/reports"
)

// ReportHandler serves the derived statements and their PDF exports.
type ReportHandler struct {
	svc    *reports.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *reports.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// ProfitLoss returns one P&L entry per financial year.
func (h *ReportHandler) ProfitLoss(c *gin.Context) {
	series, err := h.svc.ProfitLossSeries(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// BalanceSheet returns one balance sheet per financial year.
func (h *ReportHandler) BalanceSheet(c *gin.Context) {
	series, err := h.svc.BalanceSheetSeries(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// MPBF returns the bank-credit assessment for the requested year.
func (h *ReportHandler) MPBF(c *gin.Context) {
	year, ok := h.yearParam(c)
	if !ok {
		return
	}

	ratios, err := h.svc.MPBF(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ratios)
}

type exportRequest struct {
	IncludeSignature bool     `json:"includeSignature"`
	Footnotes        []string `json:"footnotes"`
}

// PDF streams the rendered statement of the given type for download.
func (h *ReportHandler) PDF(reportType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := h.yearParam(c)
		if !ok {
			return
		}

		document, err := h.svc.RenderPDF(c.Request.Context(), c.Param("id"), reportType, year, pdf.Options{})
		if err != nil {
			respondError(c, h.logger, err)
			return
		}

		filename := fmt.Sprintf("%s_%d.pdf", reportType, year)
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Data(http.StatusOK, "application/pdf", document)
	}
}

// Export renders the statement and archives it to the remote drive. The
// archive upload is best-effort; a failed upload never fails the request.
func (h *ReportHandler) Export(reportType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := h.yearParam(c)
		if !ok {
			return
		}

		var req exportRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				h.logger.Warn("invalid export payload", zap.Error(err))
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
		}

		opts := pdf.Options{IncludeSignature: req.IncludeSignature, Footnotes: req.Footnotes}
		if _, err := h.svc.Export(c.Request.Context(), c.Param("id"), reportType, year, opts); err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.Status(http.StatusAccepted)
	}
}

func (h *ReportHandler) yearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year query parameter must be an integer"})
		return 0, false
	}
	return year, true
}
