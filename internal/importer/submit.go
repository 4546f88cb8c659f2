package importer

import (
	"fmt"

	"importdesk/internal/model"
	"importdesk/internal/reconcile"
)

// SubmissionError is an API-level submission failure. The
// parent-created-but-details-failed case is distinguished so the
// caller can tell an orphaned parent from a clean failure, and whether
// the compensating cancel went through.
type SubmissionError struct {
	Stage             string // "create_parent" or "attach_details"
	ParentCreated     bool
	ParentID          int64
	Compensated       bool
	CreatedRequestIDs []int64 // request flow: groups created before the failure
	Err               error
}

func (e *SubmissionError) Error() string {
	if e.ParentCreated && !e.Compensated {
		return fmt.Sprintf("submission failed after parent document %d was created (compensation failed): %v", e.ParentID, e.Err)
	}
	if e.ParentCreated {
		return fmt.Sprintf("submission failed after parent document %d was created (parent cancelled): %v", e.ParentID, e.Err)
	}
	return fmt.Sprintf("submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// SubmitResult reports what one confirmed submission created.
type SubmitResult struct {
	RequestIDs []int64 `json:"importRequestIds,omitempty"`
	OrderID    int64   `json:"importOrderId,omitempty"`
}

// Confirm submits the draft. The flow must be awaiting confirmation;
// the timing gate is re-checked at confirm time so a draft left open
// past its window cannot slip through. On failure the flow lands in
// failed and recovers to awaiting confirmation, keeping the draft
// intact for retry; on success the draft is discarded.
func (f *Flow) Confirm(now nowFunc) (*SubmitResult, error) {
	f.mu.Lock()
	f.recoverLocked()

	if f.state != StateAwaitingConfirmation {
		f.mu.Unlock()
		return nil, ErrInvalidState
	}
	if f.Kind == KindOrder {
		if err := f.gate.Check(now(), f.header.DateReceived, f.header.TimeReceived); err != nil {
			f.state = StateValidated
			f.lastError = err.Error()
			f.mu.Unlock()
			return nil, err
		}
	}

	f.state = StateSubmitting
	header := f.header
	items := f.lineItems
	merge := f.merge
	f.mu.Unlock()

	var (
		result *SubmitResult
		err    error
	)
	switch f.Kind {
	case KindRequest:
		result, err = f.submitRequests(header, items)
	default:
		result, err = f.submitOrder(header, merge)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateFailed
		f.resume = StateAwaitingConfirmation
		f.lastError = err.Error()
		return nil, err
	}

	f.clearUploadLocked()
	f.header = Header{}
	f.state = StateSucceeded
	return result, nil
}

// submitRequests creates one import request per provider group. Each
// group is one parent+details call; a mid-sequence failure reports the
// requests already created so the operator can follow up.
func (f *Flow) submitRequests(header Header, items []model.LineItem) (*SubmitResult, error) {
	groups := reconcile.GroupByProvider(items)
	created := make([]int64, 0, len(groups))
	for _, g := range groups {
		req := model.ImportRequest{
			ProviderID:      g.ProviderID,
			ImportReason:    header.ImportReason,
			ImportType:      header.ImportType,
			ExportRequestID: header.ExportRequestID,
		}
		details := make([]model.ImportRequestDetail, 0, len(g.Items))
		for _, li := range g.Items {
			details = append(details, model.ImportRequestDetail{
				ItemID:         li.ItemID,
				ExpectQuantity: li.Quantity,
			})
		}
		id, err := f.api.CreateImportRequestWithDetails(req, details)
		if err != nil {
			return nil, &SubmissionError{
				Stage:             "create_parent",
				CreatedRequestIDs: created,
				Err:               err,
			}
		}
		created = append(created, id)
	}
	return &SubmitResult{RequestIDs: created}, nil
}

// submitOrder creates the order header, then attaches the reconciled
// lines. If the attach fails the just-created parent is cancelled as
// compensation; either way the error names the orphaned parent.
func (f *Flow) submitOrder(header Header, merge reconcile.MergeResult) (*SubmitResult, error) {
	order := model.ImportOrder{
		ImportRequestID: f.importRequestID,
		DateReceived:    header.DateReceived,
		TimeReceived:    header.TimeReceived,
		Note:            header.Note,
	}
	orderID, err := f.api.CreateImportOrder(order)
	if err != nil {
		return nil, &SubmissionError{Stage: "create_parent", Err: err}
	}

	if err := f.api.AttachImportOrderDetails(orderID, merge.PlannedDetails()); err != nil {
		subErr := &SubmissionError{
			Stage:         "attach_details",
			ParentCreated: true,
			ParentID:      orderID,
			Err:           err,
		}
		if cancelErr := f.api.CancelImportOrder(orderID); cancelErr == nil {
			subErr.Compensated = true
		}
		return nil, subErr
	}

	return &SubmitResult{OrderID: orderID}, nil
}
