package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"importdesk/internal/store"
	"importdesk/internal/timing"
)

// ConfigResponse exposes the stored settings.
type ConfigResponse struct {
	LeadTime  string `json:"leadTime"`
	LeadHours int    `json:"leadHours"`
}

// UpdateConfigRequest is the settings patch body.
type UpdateConfigRequest struct {
	LeadTime *string `json:"leadTime"`
}

// GetConfig returns the stored settings.
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	gate := h.gate()
	c.JSON(http.StatusOK, ConfigResponse{
		LeadTime:  h.store.GetLeadTime(),
		LeadHours: gate.LeadHours(),
	})
}

// UpdateConfig patches the stored settings. The lead time must parse
// as HH:MM:SS before it is accepted.
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.LeadTime != nil {
		if _, err := timing.ParseLeadTime(*req.LeadTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "leadTime must be HH:MM:SS"})
			return
		}
		if err := h.store.SetConfig(store.ConfigLeadTime, *req.LeadTime); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	gate := h.gate()
	c.JSON(http.StatusOK, ConfigResponse{
		LeadTime:  h.store.GetLeadTime(),
		LeadHours: gate.LeadHours(),
	})
}
