package model

// ImportType distinguishes planned imports from returns.
type ImportType string

const (
	ImportTypeOrder  ImportType = "ORDER"
	ImportTypeReturn ImportType = "RETURN"
)

// ImportStatus is the lifecycle status shared by requests and orders.
type ImportStatus string

const (
	StatusNotStarted ImportStatus = "NOT_STARTED"
	StatusInProgress ImportStatus = "IN_PROGRESS"
	StatusCompleted  ImportStatus = "COMPLETED"
	StatusCancelled  ImportStatus = "CANCELLED"
)

// ImportRequest is one request document. A single upload materializes
// one request per distinct provider.
type ImportRequest struct {
	ID              int64        `json:"importRequestId"`
	ProviderID      int64        `json:"providerId"`
	ProviderName    string       `json:"providerName"`
	ImportReason    string       `json:"importReason"`
	ImportType      ImportType   `json:"importType"`
	ExportRequestID *int64       `json:"exportRequestId,omitempty"`
	Status          ImportStatus `json:"status"`
	CreatedDate     string       `json:"createdDate"`
}

// ImportRequestDetail is one expected line of a request.
// OrderedQuantity accumulates the planned quantities of orders already
// placed against the line.
type ImportRequestDetail struct {
	ID              int64  `json:"importRequestDetailId"`
	ImportRequestID int64  `json:"importRequestId"`
	ItemID          int64  `json:"itemId"`
	ItemName        string `json:"itemName"`
	ExpectQuantity  int64  `json:"expectQuantity"`
	OrderedQuantity int64  `json:"orderedQuantity"`
}

// ImportOrder is one order document placed against a request.
type ImportOrder struct {
	ID              int64        `json:"importOrderId"`
	ImportRequestID int64        `json:"importRequestId"`
	DateReceived    string       `json:"dateReceived"` // YYYY-MM-DD
	TimeReceived    string       `json:"timeReceived"` // HH:MM
	Note            string       `json:"note,omitempty"`
	Status          ImportStatus `json:"status"`
	CreatedDate     string       `json:"createdDate"`
}

// ImportOrderDetail is one uploaded line of an order.
type ImportOrderDetail struct {
	ItemID          int64 `json:"itemId"`
	PlannedQuantity int64 `json:"plannedQuantity"`
}

// PageMeta mirrors the pagination envelope of the console API.
type PageMeta struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}
