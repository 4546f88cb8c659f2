package parser

import (
	"fmt"
	"math"
	"time"

	"importdesk/internal/model"
)

// Accepted header labels per canonical field, in priority order: the
// canonical English key wins over the localized template labels. The
// downloadable templates emit the first alias of each list.
var (
	aliasItemID     = []string{"itemId", "Mã hàng"}
	aliasQuantity   = []string{"quantity", "Số lượng"}
	aliasProviderID = []string{"providerId", "Nhà cung cấp", "Mã Nhà cung cấp"}
	aliasDate       = []string{"dateReceived", "Ngày nhận", "ngày nhận", "Ngay nhan"}
	aliasTime       = []string{"timeReceived", "Giờ nhận", "giờ nhận", "Gio nhan"}
	aliasNote       = []string{"note", "Ghi chú", "ghi chú", "Ghi chu"}
)

// excelEpoch is the base date of Excel's 1900 date system. Using
// 1899-12-30 instead of 1899-12-31 absorbs the format's phantom
// 1900-02-29, so serials from real files convert without adjustment.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// SerialToDate converts an Excel date serial (days since the epoch)
// to a YYYY-MM-DD string.
func SerialToDate(serial float64) string {
	d := excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
	return d.UTC().Format("2006-01-02")
}

// SerialToTime converts an Excel time serial (fraction of a day) to
// HH:MM, rounding to the nearest minute.
func SerialToTime(serial float64) string {
	total := int(math.Round(serial * 24 * 60))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Options selects which fields Extract requires.
type Options struct {
	// RequireProvider marks the provider column mandatory
	// (request-creation flow).
	RequireProvider bool
}

// lookup resolves the first alias present in the row.
func lookup(row RawRow, aliases []string) (Cell, bool) {
	for _, name := range aliases {
		if c, ok := row.Cells[name]; ok {
			return c, true
		}
	}
	return Cell{}, false
}

// dateValue resolves a date field that may arrive as a display string
// or a numeric serial.
func dateValue(c Cell) string {
	if c.IsNum {
		return SerialToDate(c.Num)
	}
	return c.Text
}

// timeValue resolves a time field that may arrive as a display string
// or a numeric serial.
func timeValue(c Cell) string {
	if c.IsNum && c.Num < 1 {
		return SerialToTime(c.Num)
	}
	return c.Text
}

// Extract resolves the semantic fields of every decoded row. Rows
// missing a required field are dropped and reported; the batch
// continues.
func Extract(rows []RawRow, opts Options) ([]ExtractedRow, []model.RowError) {
	out := make([]ExtractedRow, 0, len(rows))
	var errs []model.RowError

	for _, raw := range rows {
		item, itemOK := lookup(raw, aliasItemID)
		qty, qtyOK := lookup(raw, aliasQuantity)
		prov, provOK := lookup(raw, aliasProviderID)

		switch {
		case !itemOK:
			errs = append(errs, model.NewRowError(raw.Row, model.RowErrMissingField, "Mã hàng"))
			continue
		case !qtyOK:
			errs = append(errs, model.NewRowError(raw.Row, model.RowErrMissingField, "Số lượng"))
			continue
		case opts.RequireProvider && !provOK:
			errs = append(errs, model.NewRowError(raw.Row, model.RowErrMissingField, "Nhà cung cấp"))
			continue
		}

		row := ExtractedRow{
			Row:         raw.Row,
			ItemRaw:     item.Text,
			QuantityRaw: qty.Text,
		}
		if item.IsNum {
			row.ItemID = int64(item.Num)
		}
		if qty.IsNum {
			row.Quantity = qty.Num
		}
		if provOK {
			row.ProviderRaw = prov.Text
			if prov.IsNum {
				row.ProviderID = int64(prov.Num)
			}
		}
		if c, ok := lookup(raw, aliasDate); ok {
			row.Date = dateValue(c)
		}
		if c, ok := lookup(raw, aliasTime); ok {
			row.Time = timeValue(c)
		}
		if c, ok := lookup(raw, aliasNote); ok {
			row.Note = c.Text
		}
		out = append(out, row)
	}

	return out, errs
}

// TemplateHeaders returns the header row a template must carry so an
// unmodified download round-trips through Extract with zero errors.
func TemplateHeaders(requireProvider, withSchedule bool) []string {
	headers := []string{aliasItemID[0], aliasQuantity[0]}
	if requireProvider {
		headers = append(headers, aliasProviderID[0])
	}
	if withSchedule {
		headers = append(headers, aliasDate[0], aliasTime[0], aliasNote[0])
	}
	return headers
}
