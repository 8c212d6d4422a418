package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyagent/services/summary"
	"voyagent/utils"
)

// ReportHandler runs a search and returns the report as a PDF download.
func (h *Handler) ReportHandler(c *gin.Context) {
	req, ok := h.bindSearch(c)
	if !ok {
		return
	}

	report, err := h.searcher.Search(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	pdfBytes, err := summary.RenderPDF(report)
	if err != nil {
		h.logger.Error("PDF generation failed", zap.String("search_id", report.ID), zap.Error(err))
		utils.JSONError(c, h.logger, http.StatusInternalServerError, "Failed to generate PDF", "")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=voyagent-%s.pdf", report.ID))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) HealthHandler(c *gin.Context) {
	dbStatus := "not configured"
	if h.db != nil {
		dbStatus = "ok"
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			dbStatus = "error: " + err.Error()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "VoyAgent API",
		"database": dbStatus,
	})
}
