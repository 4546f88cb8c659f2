package importer

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"importdesk/internal/model"
	"importdesk/internal/parser"
	"importdesk/internal/reconcile"
	"importdesk/internal/timing"
	"importdesk/internal/validate"
)

// nowFunc supplies the current time; tests substitute a fixed clock.
type nowFunc func() time.Time

// State is the creation flow's position in its lifecycle.
type State string

const (
	StateEmpty State = "empty"
	// StateDecoded is passed through inside Upload; decode and
	// validation happen in one step, so callers observe validated.
	StateDecoded              State = "decoded"
	StateValidated            State = "validated"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateSubmitting           State = "submitting"
	StateSucceeded            State = "succeeded"
	StateFailed               State = "failed"
)

// Kind selects which document the flow creates.
type Kind string

const (
	KindRequest Kind = "request" // import requests, grouped by provider
	KindOrder   Kind = "order"   // import orders against an existing request
)

// DocumentAPI is the document creation collaborator: create the parent
// document, then attach its lines as a second call. The two calls are
// not one transaction; the flow owns the compensation when the second
// fails.
type DocumentAPI interface {
	CreateImportRequestWithDetails(req model.ImportRequest, details []model.ImportRequestDetail) (int64, error)
	CreateImportOrder(order model.ImportOrder) (int64, error)
	AttachImportOrderDetails(orderID int64, details []model.ImportOrderDetail) error
	CancelImportOrder(orderID int64) error
}

var (
	// ErrCatalogEmpty refuses to open a flow over an empty catalog:
	// every row would fail, which helps nobody.
	ErrCatalogEmpty = errors.New("catalog snapshot is empty")
	// ErrNoValidRows rejects an upload whose rows all failed; the flow
	// returns to empty and the file is cleared.
	ErrNoValidRows = errors.New("Vui lòng tải lên file Excel với dữ liệu hợp lệ")
	// ErrAllRowsOutsideRequest rejects an order upload where no item
	// matches the request.
	ErrAllRowsOutsideRequest = errors.New("Không có mã hàng nào trong file Excel khớp với phiếu nhập")
	// ErrSuperseded discards a decode that finished after a newer file
	// was selected.
	ErrSuperseded = errors.New("upload superseded by a newer file")
	// ErrInvalidState rejects an operation the flow is not ready for.
	ErrInvalidState = errors.New("operation not allowed in current flow state")
)

// HeaderError reports the specific header field that blocked
// confirmation.
type HeaderError struct {
	Field   string
	Message string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("header field %s: %s", e.Field, e.Message)
}

// Header is the draft's header portion.
type Header struct {
	ImportReason    string           `json:"importReason,omitempty"`
	ImportType      model.ImportType `json:"importType,omitempty"`
	ExportRequestID *int64           `json:"exportRequestId,omitempty"`
	DateReceived    string           `json:"dateReceived,omitempty"`
	TimeReceived    string           `json:"timeReceived,omitempty"`
	Note            string           `json:"note,omitempty"`
}

// maxReasonLen caps the import reason, matching the console's input
// limit.
const maxReasonLen = 150

// UploadReport summarizes one upload: what survived validation, what
// was dropped and why, and (order flow) how the rows reconciled
// against the request.
type UploadReport struct {
	FileName  string                    `json:"fileName"`
	TotalRows int                       `json:"totalRows"`
	ValidRows int                       `json:"validRows"`
	RowErrors []model.RowError          `json:"rowErrors,omitempty"`
	Groups    []reconcile.ProviderGroup `json:"groups,omitempty"`
	Merge     *reconcile.MergeResult    `json:"merge,omitempty"`
	// Prefill carries the schedule columns read from the first data
	// row, already converted from serials.
	Prefill *Header `json:"prefill,omitempty"`
}

// Flow is one document creation session: a single draft walked through
// decode, validation, confirmation and submission. All catalog data is
// an immutable snapshot taken at open.
type Flow struct {
	ID   string
	Kind Kind

	api     DocumentAPI
	gate    timing.Gate
	catalog *model.Catalog

	// order flow only
	importRequestID int64
	existing        []model.ImportRequestDetail

	mu         sync.Mutex
	generation uint64
	state      State
	resume     State // where Failed recovers to

	fileName  string
	lineItems []model.LineItem
	merge     reconcile.MergeResult
	report    *UploadReport
	header    Header
	lastError string
}

// NewRequestFlow opens an import request creation flow.
func NewRequestFlow(api DocumentAPI, gate timing.Gate, catalog *model.Catalog) (*Flow, error) {
	if catalog.Empty() {
		return nil, ErrCatalogEmpty
	}
	return &Flow{
		ID:      uuid.NewString(),
		Kind:    KindRequest,
		api:     api,
		gate:    gate,
		catalog: catalog,
		state:   StateEmpty,
		header:  Header{ImportType: model.ImportTypeOrder},
	}, nil
}

// NewOrderFlow opens an import order creation flow against an existing
// request whose details have already been fetched.
func NewOrderFlow(api DocumentAPI, gate timing.Gate, catalog *model.Catalog, importRequestID int64, existing []model.ImportRequestDetail) (*Flow, error) {
	if catalog.Empty() {
		return nil, ErrCatalogEmpty
	}
	if len(existing) == 0 {
		return nil, fmt.Errorf("import request %d has no details", importRequestID)
	}
	return &Flow{
		ID:              uuid.NewString(),
		Kind:            KindOrder,
		api:             api,
		gate:            gate,
		catalog:         catalog,
		importRequestID: importRequestID,
		existing:        existing,
		state:           StateEmpty,
	}, nil
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastError returns the most recent user-facing failure message.
func (f *Flow) LastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastError
}

// Report returns the latest upload report, or nil before any upload.
func (f *Flow) Report() *UploadReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.report
}

// Header returns the current draft header.
func (f *Flow) Header() Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.header
}

// Gate exposes the flow's timing gate so prefills and picker limits
// share the validation source.
func (f *Flow) Gate() timing.Gate {
	return f.gate
}

// recoverLocked leaves the Failed state before a new attempt.
func (f *Flow) recoverLocked() {
	if f.state == StateFailed {
		f.state = f.resume
	}
}

// clearUploadLocked drops the draft's upload portion and returns the
// flow to empty; the selected file is not retained.
func (f *Flow) clearUploadLocked() {
	f.fileName = ""
	f.lineItems = nil
	f.merge = reconcile.MergeResult{}
	f.report = nil
	f.state = StateEmpty
}

// Upload decodes, extracts, validates and reconciles one spreadsheet.
// A newer upload supersedes an in-flight one: the stale result is
// discarded rather than landed. Decode failures and wholly invalid
// files return the flow to empty with the file cleared.
func (f *Flow) Upload(fileName string, r io.Reader) (*UploadReport, error) {
	gen := atomic.AddUint64(&f.generation, 1)

	// Decode and the pure pipeline stages run outside the lock; only
	// the commit is serialized.
	rows, decodeErr := parser.Decode(r)

	var (
		report      UploadReport
		items       []model.LineItem
		merge       reconcile.MergeResult
		prefill     *Header
		pipelineErr error
	)

	if decodeErr == nil {
		requireProvider := f.Kind == KindRequest
		extracted, extractErrs := parser.Extract(rows, parser.Options{RequireProvider: requireProvider})
		result := validate.Rows(extracted, f.catalog, validate.Options{RequireProvider: requireProvider})

		report = UploadReport{
			FileName:  fileName,
			TotalRows: len(rows),
			ValidRows: len(result.Items),
			RowErrors: append(extractErrs, result.Errors...),
		}
		items = result.Items

		switch {
		case len(items) == 0:
			pipelineErr = ErrNoValidRows
		case f.Kind == KindRequest:
			report.Groups = reconcile.GroupByProvider(items)
		default:
			uploaded := make([]model.ImportOrderDetail, 0, len(items))
			for _, li := range items {
				uploaded = append(uploaded, model.ImportOrderDetail{ItemID: li.ItemID, PlannedQuantity: li.Quantity})
			}
			merge = reconcile.MergeWithRequest(f.existing, uploaded)
			if merge.Matched == 0 {
				pipelineErr = ErrAllRowsOutsideRequest
			} else {
				report.Merge = &merge
				if p := schedulePrefill(extracted); p != nil {
					prefill = p
					report.Prefill = p
				}
			}
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != atomic.LoadUint64(&f.generation) {
		return nil, ErrSuperseded
	}
	f.recoverLocked()

	if decodeErr != nil {
		f.clearUploadLocked()
		f.lastError = "Không thể đọc file Excel. Vui lòng kiểm tra định dạng file."
		return nil, decodeErr
	}
	if pipelineErr != nil {
		f.clearUploadLocked()
		f.lastError = pipelineErr.Error()
		// The report still describes what was wrong with each row.
		return &report, pipelineErr
	}

	f.fileName = fileName
	f.lineItems = items
	f.merge = merge
	f.report = &report
	// A fresh file's schedule columns replace any earlier prefill;
	// fields the new file does not carry keep their current values.
	if prefill != nil {
		if prefill.DateReceived != "" {
			f.header.DateReceived = prefill.DateReceived
		}
		if prefill.TimeReceived != "" {
			f.header.TimeReceived = prefill.TimeReceived
		}
		if prefill.Note != "" {
			f.header.Note = prefill.Note
		}
	}
	f.lastError = ""
	f.state = StateValidated
	return &report, nil
}

// schedulePrefill reads the optional schedule columns from the first
// data row, the way the console prefilled the order form.
func schedulePrefill(rows []parser.ExtractedRow) *Header {
	if len(rows) == 0 {
		return nil
	}
	first := rows[0]
	if first.Date == "" && first.Time == "" && first.Note == "" {
		return nil
	}
	return &Header{
		DateReceived: first.Date,
		TimeReceived: first.Time,
		Note:         first.Note,
	}
}

// SetHeader validates the header fields for this flow kind and, when
// they pass, moves the flow to awaiting confirmation. On failure the
// flow stays in validated and the specific failing field is reported.
func (f *Flow) SetHeader(now nowFunc, h Header) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recoverLocked()

	if f.state != StateValidated && f.state != StateAwaitingConfirmation {
		return ErrInvalidState
	}

	if err := f.checkHeader(now(), &h); err != nil {
		f.state = StateValidated
		f.lastError = err.Error()
		return err
	}

	f.header = h
	f.lastError = ""
	f.state = StateAwaitingConfirmation
	return nil
}

// checkHeader applies the kind-specific required-field checks and the
// timing gate.
func (f *Flow) checkHeader(now time.Time, h *Header) error {
	switch f.Kind {
	case KindRequest:
		if h.ImportReason == "" {
			return &HeaderError{Field: "importReason", Message: "Vui lòng nhập lý do nhập kho"}
		}
		if len([]rune(h.ImportReason)) > maxReasonLen {
			h.ImportReason = string([]rune(h.ImportReason)[:maxReasonLen])
		}
		if h.ImportType != model.ImportTypeOrder && h.ImportType != model.ImportTypeReturn {
			return &HeaderError{Field: "importType", Message: "Loại nhập kho không hợp lệ"}
		}
	case KindOrder:
		if h.DateReceived == "" {
			return &HeaderError{Field: "dateReceived", Message: "Vui lòng chọn ngày nhận"}
		}
		if h.TimeReceived == "" {
			return &HeaderError{Field: "timeReceived", Message: "Vui lòng chọn giờ nhận"}
		}
		if err := f.gate.Check(now, h.DateReceived, h.TimeReceived); err != nil {
			return err
		}
	}
	return nil
}
