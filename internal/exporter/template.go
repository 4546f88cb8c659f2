package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"importdesk/internal/model"
	"importdesk/internal/parser"
)

const templateSheet = "Template"

// BuildRequestTemplate generates the upload template for the request
// flow. The header row is exactly what the extractor accepts, and the
// example row references a real catalog item with one of its own
// providers, so an unmodified download always validates cleanly.
func BuildRequestTemplate(catalog *model.Catalog) (*excelize.File, error) {
	headers := parser.TemplateHeaders(true, false)
	item, provider, err := sampleItem(catalog, true)
	if err != nil {
		return nil, err
	}
	return buildSheet(headers, []interface{}{item.ID, 1, provider})
}

// BuildOrderTemplate generates the upload template for the order flow,
// including the optional schedule columns.
func BuildOrderTemplate(catalog *model.Catalog, defaultDate, defaultTime string) (*excelize.File, error) {
	headers := parser.TemplateHeaders(false, true)
	item, _, err := sampleItem(catalog, false)
	if err != nil {
		return nil, err
	}
	return buildSheet(headers, []interface{}{item.ID, 1, defaultDate, defaultTime, ""})
}

// sampleItem picks the lowest-id catalog item (and, when required, its
// lowest provider id) for the example row.
func sampleItem(catalog *model.Catalog, needProvider bool) (model.Item, int64, error) {
	if catalog.Empty() {
		return model.Item{}, 0, fmt.Errorf("catalog is empty, cannot build template")
	}
	var picked model.Item
	for _, it := range catalog.Items {
		if needProvider && len(it.ProviderIDs) == 0 {
			continue
		}
		if picked.ID == 0 || it.ID < picked.ID {
			picked = it
		}
	}
	if picked.ID == 0 {
		return model.Item{}, 0, fmt.Errorf("no catalog item has a linked provider")
	}
	var provider int64
	for _, pid := range picked.ProviderIDs {
		if provider == 0 || pid < provider {
			provider = pid
		}
	}
	return picked, provider, nil
}

func buildSheet(headers []string, example []interface{}) (*excelize.File, error) {
	wb := excelize.NewFile()
	wb.SetSheetName("Sheet1", templateSheet)

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(templateSheet, cell, h); err != nil {
			return nil, err
		}
	}
	for col, v := range example {
		if v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(templateSheet, cell, v); err != nil {
			return nil, err
		}
	}
	return wb, nil
}
