package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse is the system status snapshot.
type StatusResponse struct {
	Initialized    bool   `json:"initialized"`
	ItemCount      int    `json:"itemCount"`
	ProviderCount  int    `json:"providerCount"`
	LeadTime       string `json:"leadTime"`
	LastUploadTime string `json:"lastUploadTime"`
}

// GetStatus reports whether the catalog is populated and the current
// scheduling setting.
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	itemCount, err := h.store.CountItems()
	if err != nil {
		itemCount = 0
	}
	providerCount, err := h.store.CountProviders()
	if err != nil {
		providerCount = 0
	}
	lastUpload, err := h.store.LastUploadTime()
	if err != nil {
		lastUpload = ""
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:    itemCount > 0,
		ItemCount:      itemCount,
		ProviderCount:  providerCount,
		LeadTime:       h.store.GetLeadTime(),
		LastUploadTime: lastUpload,
	})
}
