package api

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"importdesk/internal/model"
)

// ListItems returns the item catalog sorted by id.
// GET /api/items
func (h *Handler) ListItems(c *gin.Context) {
	catalog, err := h.store.LoadCatalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]model.Item, 0, len(catalog.Items))
	for _, it := range catalog.Items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// ListProviders returns the provider catalog sorted by id.
// GET /api/providers
func (h *Handler) ListProviders(c *gin.Context) {
	catalog, err := h.store.LoadCatalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	providers := make([]model.Provider, 0, len(catalog.Providers))
	for _, p := range catalog.Providers {
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i].ID < providers[j].ID })

	c.JSON(http.StatusOK, gin.H{"providers": providers, "total": len(providers)})
}
