package store

import (
	"path/filepath"
	"strings"
	"testing"

	"importdesk/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedCatalog(t *testing.T, s *Store) (providerID, itemID int64) {
	t.Helper()

	providerID, err := s.InsertProvider("NCC Miền Bắc")
	if err != nil {
		t.Fatalf("insert provider: %v", err)
	}
	itemID, err = s.InsertItem("Gạo tẻ", "kg", 50, []int64{providerID})
	if err != nil {
		t.Fatalf("insert item: %v", err)
	}
	return providerID, itemID
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	providerID, itemID := seedCatalog(t, s)

	catalog, err := s.LoadCatalog()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if catalog.Empty() {
		t.Fatalf("catalog should not be empty")
	}
	item, ok := catalog.Items[itemID]
	if !ok || item.Name != "Gạo tẻ" || item.MeasurementUnit != "kg" {
		t.Fatalf("item not loaded: %+v", catalog.Items)
	}
	if !item.HasProvider(providerID) {
		t.Fatalf("item-provider link not loaded: %+v", item)
	}
	if _, ok := catalog.Providers[providerID]; !ok {
		t.Fatalf("provider not loaded: %+v", catalog.Providers)
	}
}

func TestImportRequestLifecycle(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	providerID, itemID := seedCatalog(t, s)

	id, err := s.CreateImportRequestWithDetails(model.ImportRequest{
		ProviderID:   providerID,
		ImportReason: "Nhập hàng tháng 9",
		ImportType:   model.ImportTypeOrder,
	}, []model.ImportRequestDetail{
		{ItemID: itemID, ExpectQuantity: 10},
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	req, err := s.GetImportRequest(id)
	if err != nil {
		t.Fatalf("get request: %v", err)
	}
	if req.Status != model.StatusNotStarted || req.ProviderName != "NCC Miền Bắc" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.ExportRequestID != nil {
		t.Fatalf("export request id should be nil: %+v", req)
	}

	details, err := s.GetAllImportRequestDetails(id)
	if err != nil || len(details) != 1 {
		t.Fatalf("details: %v %v", details, err)
	}
	if details[0].ItemName != "Gạo tẻ" || details[0].ExpectQuantity != 10 {
		t.Fatalf("unexpected detail: %+v", details[0])
	}

	list, err := s.ListImportRequests()
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %v", list, err)
	}
}

func TestImportRequestDetailsPagination(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	providerID, _ := seedCatalog(t, s)

	var details []model.ImportRequestDetail
	for i := 0; i < 25; i++ {
		itemID, err := s.InsertItem("item", "kg", 1, []int64{providerID})
		if err != nil {
			t.Fatalf("insert item: %v", err)
		}
		details = append(details, model.ImportRequestDetail{ItemID: itemID, ExpectQuantity: int64(i + 1)})
	}
	id, err := s.CreateImportRequestWithDetails(model.ImportRequest{
		ProviderID: providerID, ImportReason: "x", ImportType: model.ImportTypeOrder,
	}, details)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	page, meta, err := s.GetImportRequestDetails(id, 1, 10)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(page) != 10 || meta.Total != 25 || !meta.HasNext || meta.HasPrevious {
		t.Fatalf("unexpected page 1 meta: %+v", meta)
	}

	page, meta, err = s.GetImportRequestDetails(id, 3, 10)
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(page) != 5 || meta.HasNext || !meta.HasPrevious {
		t.Fatalf("unexpected page 3 meta: %+v", meta)
	}

	// Out-of-range parameters fall back to defaults.
	_, meta, err = s.GetImportRequestDetails(id, 0, 0)
	if err != nil || meta.Page != 1 || meta.Limit != 10 {
		t.Fatalf("defaults not applied: %+v %v", meta, err)
	}
}

func TestImportOrderLifecycle(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	providerID, itemID := seedCatalog(t, s)

	reqID, err := s.CreateImportRequestWithDetails(model.ImportRequest{
		ProviderID: providerID, ImportReason: "x", ImportType: model.ImportTypeOrder,
	}, []model.ImportRequestDetail{{ItemID: itemID, ExpectQuantity: 10}})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	orderID, err := s.CreateImportOrder(model.ImportOrder{
		ImportRequestID: reqID,
		DateReceived:    "2026-09-02",
		TimeReceived:    "09:00",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := s.AttachImportOrderDetails(orderID, []model.ImportOrderDetail{
		{ItemID: itemID, PlannedQuantity: 4},
	}); err != nil {
		t.Fatalf("attach details: %v", err)
	}

	// Attaching rolls the planned quantity into the request's ordered
	// totals.
	details, err := s.GetAllImportRequestDetails(reqID)
	if err != nil || len(details) != 1 {
		t.Fatalf("request details: %v %v", details, err)
	}
	if details[0].OrderedQuantity != 4 {
		t.Fatalf("ordered quantity not rolled up: %+v", details[0])
	}

	orderDetails, err := s.GetImportOrderDetails(orderID)
	if err != nil || len(orderDetails) != 1 || orderDetails[0].PlannedQuantity != 4 {
		t.Fatalf("order details: %v %v", orderDetails, err)
	}

	if err := s.CancelImportOrder(orderID); err != nil {
		t.Fatalf("cancel order: %v", err)
	}
	order, err := s.GetImportOrder(orderID)
	if err != nil || order.Status != model.StatusCancelled {
		t.Fatalf("order not cancelled: %+v %v", order, err)
	}

	if err := s.CancelImportOrder(9999); err == nil {
		t.Fatalf("cancelling a missing order should fail")
	}
}

func TestAttachDetailsMissingOrder(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, itemID := seedCatalog(t, s)

	err := s.AttachImportOrderDetails(9999, []model.ImportOrderDetail{{ItemID: itemID, PlannedQuantity: 1}})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if got := s.GetLeadTime(); got != "" {
		t.Fatalf("unset lead time should be empty, got %q", got)
	}

	if err := s.SeedLeadTime("12:00:00"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if got := s.GetLeadTime(); got != "12:00:00" {
		t.Fatalf("lead time = %q", got)
	}

	// An operator edit survives a later seed.
	if err := s.SetConfig(ConfigLeadTime, "06:00:00"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SeedLeadTime("12:00:00"); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	if got := s.GetLeadTime(); got != "06:00:00" {
		t.Fatalf("seed clobbered operator value: %q", got)
	}
}

func TestUploadLogs(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	if last, err := s.LastUploadTime(); err != nil || last != "" {
		t.Fatalf("fresh store last upload = %q, %v", last, err)
	}

	id, err := s.CreateUploadLog("orders.xlsx", "request")
	if err != nil {
		t.Fatalf("create log: %v", err)
	}
	if err := s.FinishUploadLog(id, 5, 1, 0, "ok", ""); err != nil {
		t.Fatalf("finish log: %v", err)
	}

	last, err := s.LastUploadTime()
	if err != nil || last == "" {
		t.Fatalf("last upload not recorded: %q, %v", last, err)
	}
}
