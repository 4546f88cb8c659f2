package validate

import (
	"math"

	"importdesk/internal/model"
	"importdesk/internal/parser"
)

// Options selects the flow-specific checks.
type Options struct {
	// RequireProvider enables the provider checks (request-creation
	// flow). The order flow carries no provider column.
	RequireProvider bool
}

// Result is the aggregate outcome of validating one upload: the rows
// that passed, and one error per row that was dropped. Validation is
// row-independent; Errors never aborts the batch by itself.
type Result struct {
	Items  []model.LineItem
	Errors []model.RowError
}

// Rows checks every extracted row against the catalog snapshot, in
// order: item exists, quantity is a positive whole number, provider
// exists and is linked to the item. A row failing any check is dropped
// with a reason; display fields of passing rows are copied from the
// catalog.
func Rows(rows []parser.ExtractedRow, catalog *model.Catalog, opts Options) Result {
	var res Result
	for _, row := range rows {
		item, ok := catalog.Items[row.ItemID]
		if !ok || row.ItemID == 0 {
			res.Errors = append(res.Errors, model.NewRowError(row.Row, model.RowErrUnknownItem, row.ItemRaw))
			continue
		}

		qty := row.Quantity
		if qty <= 0 || qty != math.Trunc(qty) {
			res.Errors = append(res.Errors, model.NewRowError(row.Row, model.RowErrInvalidQuantity, row.QuantityRaw))
			continue
		}

		li := model.LineItem{
			ItemID:                item.ID,
			Quantity:              int64(qty),
			ItemName:              item.Name,
			MeasurementUnit:       item.MeasurementUnit,
			TotalMeasurementValue: item.TotalMeasurementValue,
		}

		if opts.RequireProvider {
			provider, ok := catalog.Providers[row.ProviderID]
			if !ok || row.ProviderID == 0 {
				res.Errors = append(res.Errors, model.NewRowError(row.Row, model.RowErrUnknownProvider, row.ProviderRaw))
				continue
			}
			// A provider can exist globally without being authorized
			// for this item; report that distinctly.
			if !item.HasProvider(provider.ID) {
				res.Errors = append(res.Errors, model.NewRowError(row.Row, model.RowErrProviderMismatch, row.ProviderRaw, row.ItemRaw))
				continue
			}
			li.ProviderID = provider.ID
			li.ProviderName = provider.Name
		}

		res.Items = append(res.Items, li)
	}
	return res
}
