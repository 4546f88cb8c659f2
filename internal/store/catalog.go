package store

import (
	"fmt"

	"importdesk/internal/model"
)

// LoadCatalog reads the full item and provider masters into an
// in-memory snapshot. Flows take the snapshot once at open; later
// master edits do not bleed into a running flow.
func (s *Store) LoadCatalog() (*model.Catalog, error) {
	catalog := &model.Catalog{
		Items:     make(map[int64]model.Item),
		Providers: make(map[int64]model.Provider),
	}

	rows, err := s.db.Query("SELECT id, name FROM providers")
	if err != nil {
		return nil, fmt.Errorf("failed to load providers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p model.Provider
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		catalog.Providers[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := s.db.Query("SELECT id, name, measurement_unit, total_measurement_value FROM items")
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it model.Item
		if err := itemRows.Scan(&it.ID, &it.Name, &it.MeasurementUnit, &it.TotalMeasurementValue); err != nil {
			return nil, err
		}
		catalog.Items[it.ID] = it
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	linkRows, err := s.db.Query("SELECT item_id, provider_id FROM item_providers ORDER BY item_id, provider_id")
	if err != nil {
		return nil, fmt.Errorf("failed to load item providers: %w", err)
	}
	defer linkRows.Close()
	for linkRows.Next() {
		var itemID, providerID int64
		if err := linkRows.Scan(&itemID, &providerID); err != nil {
			return nil, err
		}
		it, ok := catalog.Items[itemID]
		if !ok {
			continue
		}
		it.ProviderIDs = append(it.ProviderIDs, providerID)
		catalog.Items[itemID] = it
	}
	return catalog, linkRows.Err()
}

// InsertProvider adds a provider master row.
func (s *Store) InsertProvider(name string) (int64, error) {
	res, err := s.db.Exec("INSERT INTO providers (name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert provider: %w", err)
	}
	return res.LastInsertId()
}

// InsertItem adds an item master row with its provider links.
func (s *Store) InsertItem(name, measurementUnit string, totalMeasurementValue float64, providerIDs []int64) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO items (name, measurement_unit, total_measurement_value) VALUES (?, ?, ?)",
		name, measurementUnit, totalMeasurementValue,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	for _, pid := range providerIDs {
		if _, err := tx.Exec("INSERT INTO item_providers (item_id, provider_id) VALUES (?, ?)", id, pid); err != nil {
			return 0, fmt.Errorf("failed to link provider %d: %w", pid, err)
		}
	}
	return id, tx.Commit()
}

// CountItems returns the item master size.
func (s *Store) CountItems() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM items").Scan(&n)
	return n, err
}

// CountProviders returns the provider master size.
func (s *Store) CountProviders() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM providers").Scan(&n)
	return n, err
}
