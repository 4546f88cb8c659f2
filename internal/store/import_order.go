package store

import (
	"database/sql"
	"fmt"

	"importdesk/internal/model"
)

// CreateImportOrder inserts one order header and returns its id. The
// detail lines are attached by a separate call, mirroring the two-step
// document creation API the flows are built around.
func (s *Store) CreateImportOrder(order model.ImportOrder) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_orders (import_request_id, date_received, time_received, note, status)
		VALUES (?, ?, ?, ?, ?)
	`, order.ImportRequestID, order.DateReceived, order.TimeReceived, order.Note, string(model.StatusNotStarted))
	if err != nil {
		return 0, fmt.Errorf("failed to create import order: %w", err)
	}
	return res.LastInsertId()
}

// AttachImportOrderDetails inserts the planned lines of an order and
// rolls the quantities into the request's ordered totals. Fails when
// the order does not exist.
func (s *Store) AttachImportOrderDetails(orderID int64, details []model.ImportOrderDetail) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var requestID int64
	err = tx.QueryRow("SELECT import_request_id FROM import_orders WHERE id = ?", orderID).Scan(&requestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("import order not found: %d", orderID)
		}
		return err
	}

	for _, d := range details {
		if _, err := tx.Exec(`
			INSERT INTO import_order_details (import_order_id, item_id, planned_quantity)
			VALUES (?, ?, ?)
		`, orderID, d.ItemID, d.PlannedQuantity); err != nil {
			return fmt.Errorf("failed to insert order detail: %w", err)
		}
		if _, err := tx.Exec(`
			UPDATE import_request_details
			SET ordered_quantity = ordered_quantity + ?
			WHERE import_request_id = ? AND item_id = ?
		`, d.PlannedQuantity, requestID, d.ItemID); err != nil {
			return fmt.Errorf("failed to roll up ordered quantity: %w", err)
		}
	}

	return tx.Commit()
}

// CancelImportOrder marks an order cancelled. Used as the compensating
// action when detail attachment fails after the header was created.
func (s *Store) CancelImportOrder(orderID int64) error {
	res, err := s.db.Exec(`
		UPDATE import_orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, string(model.StatusCancelled), orderID)
	if err != nil {
		return fmt.Errorf("failed to cancel import order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("import order not found: %d", orderID)
	}
	return nil
}

// GetImportOrder loads one order header.
func (s *Store) GetImportOrder(id int64) (model.ImportOrder, error) {
	var order model.ImportOrder
	err := s.db.QueryRow(`
		SELECT id, import_request_id, date_received, time_received, note, status, created_at
		FROM import_orders WHERE id = ?
	`, id).Scan(&order.ID, &order.ImportRequestID, &order.DateReceived, &order.TimeReceived,
		&order.Note, (*string)(&order.Status), &order.CreatedDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return order, fmt.Errorf("import order not found: %d", id)
		}
		return order, err
	}
	return order, nil
}

// GetImportOrderDetails returns the planned lines of an order.
func (s *Store) GetImportOrderDetails(orderID int64) ([]model.ImportOrderDetail, error) {
	rows, err := s.db.Query(`
		SELECT item_id, planned_quantity FROM import_order_details
		WHERE import_order_id = ? ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []model.ImportOrderDetail
	for rows.Next() {
		var d model.ImportOrderDetail
		if err := rows.Scan(&d.ItemID, &d.PlannedQuantity); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
