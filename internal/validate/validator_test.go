package validate

import (
	"testing"

	"importdesk/internal/model"
	"importdesk/internal/parser"
)

func testCatalog() *model.Catalog {
	return &model.Catalog{
		Items: map[int64]model.Item{
			1: {ID: 1, Name: "Gạo tẻ", MeasurementUnit: "kg", TotalMeasurementValue: 50, ProviderIDs: []int64{10}},
			2: {ID: 2, Name: "Đường trắng", MeasurementUnit: "kg", TotalMeasurementValue: 25, ProviderIDs: []int64{10, 11}},
		},
		Providers: map[int64]model.Provider{
			10: {ID: 10, Name: "NCC Miền Bắc"},
			11: {ID: 11, Name: "NCC Miền Nam"},
		},
	}
}

func extracted(row int, item int64, qty float64, provider int64) parser.ExtractedRow {
	return parser.ExtractedRow{
		Row:         row,
		ItemID:      item,
		ItemRaw:     "raw-item",
		Quantity:    qty,
		QuantityRaw: "raw-qty",
		ProviderID:  provider,
		ProviderRaw: "raw-provider",
	}
}

func TestRowsPartialFailure(t *testing.T) {
	t.Parallel()

	rows := []parser.ExtractedRow{
		extracted(1, 1, 5, 10),
		extracted(2, 999, 5, 10), // unknown item
		extracted(3, 2, 3, 11),
	}

	res := Rows(rows, testCatalog(), Options{RequireProvider: true})
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 valid rows, got %d", len(res.Items))
	}
	if len(res.Errors) != 1 || res.Errors[0].Kind != model.RowErrUnknownItem || res.Errors[0].Row != 2 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestRowsQuantity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		qty  float64
		want model.RowErrorKind
	}{
		{0, model.RowErrInvalidQuantity},
		{-3, model.RowErrInvalidQuantity},
		{2.5, model.RowErrInvalidQuantity},
	}
	for _, tc := range cases {
		res := Rows([]parser.ExtractedRow{extracted(1, 1, tc.qty, 10)}, testCatalog(), Options{RequireProvider: true})
		if len(res.Errors) != 1 || res.Errors[0].Kind != tc.want {
			t.Fatalf("qty %v: expected %s, got %v", tc.qty, tc.want, res.Errors)
		}
	}
}

func TestRowsProviderChecks(t *testing.T) {
	t.Parallel()

	catalog := testCatalog()

	// Provider unknown to the catalog.
	res := Rows([]parser.ExtractedRow{extracted(1, 1, 5, 999)}, catalog, Options{RequireProvider: true})
	if len(res.Errors) != 1 || res.Errors[0].Kind != model.RowErrUnknownProvider {
		t.Fatalf("expected unknown provider, got %v", res.Errors)
	}

	// Provider exists but is not linked to the item: a distinct error.
	res = Rows([]parser.ExtractedRow{extracted(1, 1, 5, 11)}, catalog, Options{RequireProvider: true})
	if len(res.Errors) != 1 || res.Errors[0].Kind != model.RowErrProviderMismatch {
		t.Fatalf("expected provider mismatch, got %v", res.Errors)
	}

	// The order flow carries no provider column; the same row passes.
	res = Rows([]parser.ExtractedRow{extracted(1, 1, 5, 0)}, catalog, Options{})
	if len(res.Errors) != 0 || len(res.Items) != 1 {
		t.Fatalf("expected pass without provider requirement, got %v", res.Errors)
	}
}

func TestRowsCopiesDisplayFields(t *testing.T) {
	t.Parallel()

	res := Rows([]parser.ExtractedRow{extracted(1, 2, 4, 11)}, testCatalog(), Options{RequireProvider: true})
	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item, got %v", res.Errors)
	}
	li := res.Items[0]
	if li.ItemName != "Đường trắng" || li.MeasurementUnit != "kg" || li.ProviderName != "NCC Miền Nam" {
		t.Fatalf("display fields not copied from catalog: %+v", li)
	}
	if li.Quantity != 4 {
		t.Fatalf("quantity not converted: %+v", li)
	}
}
