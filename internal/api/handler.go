package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"importdesk/internal/store"
	"importdesk/internal/timing"
)

// Handler wires the HTTP surface to the store and the in-memory flow
// sessions.
type Handler struct {
	store *store.Store
	flows *flowStore
}

// NewHandler creates the API handler.
func NewHandler(store *store.Store) *Handler {
	return &Handler{
		store: store,
		flows: newFlowStore(),
	}
}

// gate builds the timing gate from the stored lead time setting. The
// setting is read per request so an admin change applies immediately.
func (h *Handler) gate() timing.Gate {
	return timing.NewGate(h.store.GetLeadTime())
}

func now() time.Time { return time.Now() }

// RegisterRoutes registers the API routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// system status
	router.GET("/status", h.GetStatus)

	// settings
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// catalog
	router.GET("/items", h.ListItems)
	router.GET("/providers", h.ListProviders)

	// documents
	router.GET("/import-requests", h.ListImportRequests)
	router.GET("/import-requests/:id", h.GetImportRequest)
	router.GET("/import-requests/:id/details", h.GetImportRequestDetails)
	router.GET("/import-orders/:id", h.GetImportOrder)

	// upload templates
	router.GET("/templates/:kind", h.DownloadTemplate)

	// creation flows
	router.POST("/flows", h.OpenFlow)
	router.GET("/flows/:id", h.GetFlow)
	router.POST("/flows/:id/upload", h.UploadFile)
	router.PUT("/flows/:id/header", h.SetHeader)
	router.POST("/flows/:id/confirm", h.ConfirmFlow)
	router.DELETE("/flows/:id", h.CloseFlow)
}
