package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voyagent/utils"
)

type ExtractRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExtractHandler returns the normalized intent for a request without
// calling any provider.
func (h *Handler) ExtractHandler(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, h.logger, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	in, err := h.searcher.Extract(c.Request.Context(), strings.TrimSpace(req.Text))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"intent": in})
}
