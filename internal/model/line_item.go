package model

import "fmt"

// LineItem is one validated row of an upload. Display fields come from
// the catalog snapshot at validation time, never from the sheet.
type LineItem struct {
	ItemID                int64   `json:"itemId"`
	Quantity              int64   `json:"quantity"`
	ProviderID            int64   `json:"providerId,omitempty"`
	ItemName              string  `json:"itemName"`
	MeasurementUnit       string  `json:"measurementUnit"`
	TotalMeasurementValue float64 `json:"totalMeasurementValue"`
	ProviderName          string  `json:"providerName,omitempty"`
}

// ReconciledRow is the order-flow merge of an existing request detail
// with an uploaded planned quantity. PlannedQuantity is nil when the
// upload carried no row for the item; that is a distinct state from an
// explicit zero and renders as absent.
type ReconciledRow struct {
	ItemID          int64  `json:"itemId"`
	ItemName        string `json:"itemName"`
	ExpectQuantity  int64  `json:"expectQuantity"`
	OrderedQuantity int64  `json:"orderedQuantity"`
	PlannedQuantity *int64 `json:"plannedQuantity,omitempty"`
}

// RowErrorKind classifies why a row was dropped.
type RowErrorKind string

const (
	RowErrMissingField     RowErrorKind = "missing_field"
	RowErrUnknownItem      RowErrorKind = "unknown_item"
	RowErrInvalidQuantity  RowErrorKind = "invalid_quantity"
	RowErrUnknownProvider  RowErrorKind = "unknown_provider"
	RowErrProviderMismatch RowErrorKind = "provider_mismatch"
)

// RowError reports one dropped row. Row numbering is 1-based over data
// rows, matching what the user sees under the header row.
type RowError struct {
	Row     int          `json:"row"`
	Kind    RowErrorKind `json:"kind"`
	Message string       `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError builds a RowError with the user-facing message for kind.
// Messages follow the console wording so operators see familiar text.
func NewRowError(row int, kind RowErrorKind, args ...interface{}) RowError {
	var msg string
	switch kind {
	case RowErrMissingField:
		msg = fmt.Sprintf("Dòng %d: Thiếu thông tin %s", row, args[0])
	case RowErrUnknownItem:
		msg = fmt.Sprintf("Dòng %d: Không tìm thấy mặt hàng với mã %v", row, args[0])
	case RowErrInvalidQuantity:
		msg = fmt.Sprintf("Dòng %d: Số lượng không hợp lệ: %v", row, args[0])
	case RowErrUnknownProvider:
		msg = fmt.Sprintf("Dòng %d: Không tìm thấy nhà cung cấp với ID %v", row, args[0])
	case RowErrProviderMismatch:
		msg = fmt.Sprintf("Dòng %d: Nhà cung cấp ID %v không phải là nhà cung cấp của mặt hàng mã %v", row, args[0], args[1])
	default:
		msg = fmt.Sprintf("Dòng %d: Dữ liệu không hợp lệ", row)
	}
	return RowError{Row: row, Kind: kind, Message: msg}
}
