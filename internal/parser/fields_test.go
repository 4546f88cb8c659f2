package parser

import (
	"testing"
)

func TestSerialToDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		serial float64
		want   string
	}{
		{45000, "2023-03-15"},
		{1, "1899-12-31"},
		{44927, "2023-01-01"},
	}
	for _, tc := range cases {
		if got := SerialToDate(tc.serial); got != tc.want {
			t.Fatalf("SerialToDate(%v) = %q, want %q", tc.serial, got, tc.want)
		}
	}
}

func TestSerialToTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		serial float64
		want   string
	}{
		{0.5, "12:00"},
		{0.75, "18:00"},
		{0.333333, "08:00"}, // rounds to the nearest minute
		{0.334028, "08:01"},
	}
	for _, tc := range cases {
		if got := SerialToTime(tc.serial); got != tc.want {
			t.Fatalf("SerialToTime(%v) = %q, want %q", tc.serial, got, tc.want)
		}
	}
}

func rawRow(row int, cells map[string]string) RawRow {
	r := RawRow{Row: row, Cells: make(map[string]Cell)}
	for k, v := range cells {
		r.Cells[k] = NewCell(v)
	}
	return r
}

func TestExtractAliasPriority(t *testing.T) {
	t.Parallel()

	// When both the canonical key and the localized label are present,
	// the canonical key wins.
	rows := []RawRow{rawRow(1, map[string]string{
		"itemId":      "7",
		"Mã hàng":     "99",
		"quantity":    "3",
		"Nhà cung cấp": "2",
	})}

	out, errs := Extract(rows, Options{RequireProvider: true})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(out) != 1 || out[0].ItemID != 7 {
		t.Fatalf("expected itemId 7, got %+v", out)
	}
	if out[0].ProviderID != 2 {
		t.Fatalf("expected providerId 2, got %+v", out[0])
	}
}

func TestExtractLocalizedHeaders(t *testing.T) {
	t.Parallel()

	rows := []RawRow{rawRow(1, map[string]string{
		"Mã hàng":   "12",
		"Số lượng":  "1,500",
		"Ngày nhận": "2026-09-10",
		"Giờ nhận":  "08:30",
		"Ghi chú":   "giao buổi sáng",
	})}

	out, errs := Extract(rows, Options{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	row := out[0]
	if row.ItemID != 12 || row.Quantity != 1500 {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.Date != "2026-09-10" || row.Time != "08:30" || row.Note != "giao buổi sáng" {
		t.Fatalf("schedule fields not extracted: %+v", row)
	}
}

func TestExtractScheduleSerials(t *testing.T) {
	t.Parallel()

	rows := []RawRow{rawRow(1, map[string]string{
		"itemId":       "1",
		"quantity":     "2",
		"dateReceived": "45000",
		"timeReceived": "0.5",
	})}

	out, errs := Extract(rows, Options{})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out[0].Date != "2023-03-15" {
		t.Fatalf("date serial not converted: %q", out[0].Date)
	}
	if out[0].Time != "12:00" {
		t.Fatalf("time serial not converted: %q", out[0].Time)
	}
}

func TestExtractMissingFields(t *testing.T) {
	t.Parallel()

	rows := []RawRow{
		rawRow(1, map[string]string{"quantity": "3"}),
		rawRow(2, map[string]string{"itemId": "5"}),
		rawRow(3, map[string]string{"itemId": "5", "quantity": "3"}),
	}

	out, errs := Extract(rows, Options{RequireProvider: true})
	if len(out) != 0 {
		t.Fatalf("expected all rows dropped, got %d", len(out))
	}
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
	if errs[0].Row != 1 || errs[1].Row != 2 || errs[2].Row != 3 {
		t.Fatalf("errors carry wrong row numbers: %v", errs)
	}

	// Without the provider requirement row 3 passes.
	out, errs = Extract(rows, Options{})
	if len(out) != 1 || len(errs) != 2 {
		t.Fatalf("expected 1 row and 2 errors, got %d rows, %v", len(out), errs)
	}
}

func TestTemplateHeadersRoundTrip(t *testing.T) {
	t.Parallel()

	// Every template header must resolve through Extract without
	// errors.
	headers := TemplateHeaders(true, false)
	cells := map[string]string{}
	for i, h := range headers {
		cells[h] = []string{"5", "10", "2"}[i]
	}
	out, errs := Extract([]RawRow{rawRow(1, cells)}, Options{RequireProvider: true})
	if len(errs) != 0 || len(out) != 1 {
		t.Fatalf("request template headers do not round-trip: %v", errs)
	}

	headers = TemplateHeaders(false, true)
	if len(headers) != 5 {
		t.Fatalf("order template headers: %v", headers)
	}
}
