package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"importdesk/internal/importer"
	"importdesk/internal/parser"
	"importdesk/internal/timing"
)

// OpenFlowRequest is the body for opening a creation flow. The order
// kind additionally names the import request it targets.
type OpenFlowRequest struct {
	Kind            importer.Kind `json:"kind" binding:"required"`
	ImportRequestID int64         `json:"importRequestId"`
}

// FlowResponse is the flow session snapshot returned by every flow
// endpoint.
type FlowResponse struct {
	FlowID    string                 `json:"flowId"`
	Kind      importer.Kind          `json:"kind"`
	State     importer.State         `json:"state"`
	Header    importer.Header        `json:"header"`
	Report    *importer.UploadReport `json:"report,omitempty"`
	LastError string                 `json:"lastError,omitempty"`
	// FileCleared tells the client the selected file was rejected and
	// must be re-picked.
	FileCleared bool `json:"fileCleared,omitempty"`
}

func flowResponse(f *importer.Flow) FlowResponse {
	return FlowResponse{
		FlowID:    f.ID,
		Kind:      f.Kind,
		State:     f.State(),
		Header:    f.Header(),
		Report:    f.Report(),
		LastError: f.LastError(),
	}
}

// OpenFlow opens a document creation session. kind is "request" or
// "order"; the order kind requires the target import request.
// POST /api/flows
func (h *Handler) OpenFlow(c *gin.Context) {
	var req OpenFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind is required"})
		return
	}

	catalog, err := h.store.LoadCatalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var flow *importer.Flow
	switch req.Kind {
	case importer.KindRequest:
		flow, err = importer.NewRequestFlow(h.store, h.gate(), catalog)
	case importer.KindOrder:
		if req.ImportRequestID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "importRequestId is required"})
			return
		}
		if _, err := h.store.GetImportRequest(req.ImportRequestID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		details, derr := h.store.GetAllImportRequestDetails(req.ImportRequestID)
		if derr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": derr.Error()})
			return
		}
		flow, err = importer.NewOrderFlow(h.store, h.gate(), catalog, req.ImportRequestID, details)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown flow kind"})
		return
	}
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	h.flows.put(flow)
	c.JSON(http.StatusCreated, flowResponse(flow))
}

// GetFlow returns the session snapshot.
// GET /api/flows/:id
func (h *Handler) GetFlow(c *gin.Context) {
	flow, ok := h.flows.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "flow not found"})
		return
	}
	c.JSON(http.StatusOK, flowResponse(flow))
}

// UploadFile feeds one spreadsheet into the flow. A rejected file
// clears the selection and the response says so; row-level problems
// come back in the report either way.
// POST /api/flows/:id/upload
func (h *Handler) UploadFile(c *gin.Context) {
	flow, ok := h.flows.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "flow not found"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không tìm thấy file tải lên"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không thể đọc file tải lên"})
		return
	}
	defer file.Close()

	logID, logErr := h.store.CreateUploadLog(fileHeader.Filename, string(flow.Kind))

	report, upErr := flow.Upload(fileHeader.Filename, file)
	if logErr == nil {
		finishUploadLog(h, logID, report, upErr)
	}

	if upErr != nil {
		resp := flowResponse(flow)
		resp.Report = report
		resp.FileCleared = true
		var decodeErr *parser.DecodeError
		switch {
		case errors.Is(upErr, importer.ErrSuperseded):
			c.JSON(http.StatusConflict, gin.H{"error": upErr.Error()})
		case errors.As(upErr, &decodeErr),
			errors.Is(upErr, importer.ErrNoValidRows),
			errors.Is(upErr, importer.ErrAllRowsOutsideRequest):
			c.JSON(http.StatusBadRequest, resp)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": upErr.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, flowResponse(flow))
}

func finishUploadLog(h *Handler, logID int64, report *importer.UploadReport, upErr error) {
	status, message := "ok", ""
	if upErr != nil {
		status, message = "rejected", upErr.Error()
	}
	var valid, errs, skipped int
	if report != nil {
		valid = report.ValidRows
		errs = len(report.RowErrors)
		if report.Merge != nil {
			skipped = report.Merge.Skipped
		}
	}
	_ = h.store.FinishUploadLog(logID, valid, errs, skipped, status, message)
}

// SetHeader validates the draft header. A timing violation is a
// semantic error, not a malformed request, hence 422.
// PUT /api/flows/:id/header
func (h *Handler) SetHeader(c *gin.Context) {
	flow, ok := h.flows.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "flow not found"})
		return
	}

	var header importer.Header
	if err := c.ShouldBindJSON(&header); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := flow.SetHeader(now, header); err != nil {
		var leadErr *timing.LeadTimeViolationError
		var headerErr *importer.HeaderError
		switch {
		case errors.Is(err, importer.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.As(err, &leadErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": leadErr.Error(), "leadHours": leadErr.LeadHours})
		case errors.As(err, &headerErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": headerErr.Message, "field": headerErr.Field})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, flowResponse(flow))
}

// ConfirmFlow submits the draft. A backend failure maps to 502; the
// flow stays recoverable so the client can retry.
// POST /api/flows/:id/confirm
func (h *Handler) ConfirmFlow(c *gin.Context) {
	flow, ok := h.flows.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "flow not found"})
		return
	}

	result, err := flow.Confirm(now)
	if err != nil {
		var leadErr *timing.LeadTimeViolationError
		var subErr *importer.SubmissionError
		switch {
		case errors.Is(err, importer.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.As(err, &leadErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": leadErr.Error(), "leadHours": leadErr.LeadHours})
		case errors.As(err, &subErr):
			c.JSON(http.StatusBadGateway, gin.H{
				"error":             subErr.Error(),
				"stage":             subErr.Stage,
				"compensated":       subErr.Compensated,
				"createdRequestIds": subErr.CreatedRequestIDs,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	resp := flowResponse(flow)
	c.JSON(http.StatusOK, gin.H{"flow": resp, "result": result})
}

// CloseFlow discards the session.
// DELETE /api/flows/:id
func (h *Handler) CloseFlow(c *gin.Context) {
	if _, ok := h.flows.get(c.Param("id")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "flow not found"})
		return
	}
	h.flows.delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}
