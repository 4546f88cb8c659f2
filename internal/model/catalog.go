package model

// Item is one catalog item with its authorized providers.
type Item struct {
	ID                    int64   `json:"id"`
	Name                  string  `json:"name"`
	MeasurementUnit       string  `json:"measurementUnit"`
	TotalMeasurementValue float64 `json:"totalMeasurementValue"`
	ProviderIDs           []int64 `json:"providerIds"`
}

// HasProvider reports whether the provider is authorized to supply this item.
func (it Item) HasProvider(providerID int64) bool {
	for _, id := range it.ProviderIDs {
		if id == providerID {
			return true
		}
	}
	return false
}

// Provider is one catalog provider.
type Provider struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Catalog is a read-only snapshot of the item and provider masters,
// loaded once per creation flow. Validation never consults the sheet
// for display fields; they are copied from here.
type Catalog struct {
	Items     map[int64]Item
	Providers map[int64]Provider
}

// Empty reports whether the snapshot holds no items. An empty catalog
// fails every row, so callers should refuse to open a flow on one.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.Items) == 0
}
