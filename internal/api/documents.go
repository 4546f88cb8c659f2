package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListImportRequests returns all import requests, newest first.
// GET /api/import-requests
func (h *Handler) ListImportRequests(c *gin.Context) {
	requests, err := h.store.ListImportRequests()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"importRequests": requests, "total": len(requests)})
}

// GetImportRequest loads one request header.
// GET /api/import-requests/:id
func (h *Handler) GetImportRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}
	req, err := h.store.GetImportRequest(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

// GetImportRequestDetails returns one page of a request's detail
// lines.
// GET /api/import-requests/:id/details?page=1&limit=10
func (h *Handler) GetImportRequestDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	details, meta, err := h.store.GetImportRequestDetails(id, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"details": details, "meta": meta})
}

// GetImportOrder loads one order with its planned lines.
// GET /api/import-orders/:id
func (h *Handler) GetImportOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	order, err := h.store.GetImportOrder(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	details, err := h.store.GetImportOrderDetails(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"importOrder": order, "details": details})
}
