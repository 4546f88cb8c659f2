package store

import (
	"database/sql"
	"fmt"

	"importdesk/internal/model"
)

// CreateImportRequestWithDetails inserts one request document and its
// expected lines in a single transaction.
func (s *Store) CreateImportRequestWithDetails(req model.ImportRequest, details []model.ImportRequestDetail) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var exportRequestID sql.NullInt64
	if req.ExportRequestID != nil {
		exportRequestID = sql.NullInt64{Int64: *req.ExportRequestID, Valid: true}
	}

	res, err := tx.Exec(`
		INSERT INTO import_requests (provider_id, import_reason, import_type, export_request_id, status)
		VALUES (?, ?, ?, ?, ?)
	`, req.ProviderID, req.ImportReason, string(req.ImportType), exportRequestID, string(model.StatusNotStarted))
	if err != nil {
		return 0, fmt.Errorf("failed to create import request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, d := range details {
		if _, err := tx.Exec(`
			INSERT INTO import_request_details (import_request_id, item_id, expect_quantity)
			VALUES (?, ?, ?)
		`, id, d.ItemID, d.ExpectQuantity); err != nil {
			return 0, fmt.Errorf("failed to insert request detail: %w", err)
		}
	}

	return id, tx.Commit()
}

// GetImportRequest loads one request header.
func (s *Store) GetImportRequest(id int64) (model.ImportRequest, error) {
	var req model.ImportRequest
	var exportRequestID sql.NullInt64
	err := s.db.QueryRow(`
		SELECT r.id, r.provider_id, COALESCE(p.name, ''), r.import_reason, r.import_type,
		       r.export_request_id, r.status, r.created_at
		FROM import_requests r
		LEFT JOIN providers p ON p.id = r.provider_id
		WHERE r.id = ?
	`, id).Scan(&req.ID, &req.ProviderID, &req.ProviderName, &req.ImportReason,
		(*string)(&req.ImportType), &exportRequestID, (*string)(&req.Status), &req.CreatedDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return req, fmt.Errorf("import request not found: %d", id)
		}
		return req, err
	}
	if exportRequestID.Valid {
		req.ExportRequestID = &exportRequestID.Int64
	}
	return req, nil
}

// ListImportRequests returns request headers, newest first.
func (s *Store) ListImportRequests() ([]model.ImportRequest, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.provider_id, COALESCE(p.name, ''), r.import_reason, r.import_type,
		       r.export_request_id, r.status, r.created_at
		FROM import_requests r
		LEFT JOIN providers p ON p.id = r.provider_id
		ORDER BY r.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ImportRequest
	for rows.Next() {
		var req model.ImportRequest
		var exportRequestID sql.NullInt64
		if err := rows.Scan(&req.ID, &req.ProviderID, &req.ProviderName, &req.ImportReason,
			(*string)(&req.ImportType), &exportRequestID, (*string)(&req.Status), &req.CreatedDate); err != nil {
			return nil, err
		}
		if exportRequestID.Valid {
			req.ExportRequestID = &exportRequestID.Int64
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// GetImportRequestDetails returns one page of a request's expected
// lines with the console's pagination envelope. Page numbering is
// 1-based; limit falls back to 10.
func (s *Store) GetImportRequestDetails(requestID int64, page, limit int) ([]model.ImportRequestDetail, model.PageMeta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int
	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM import_request_details WHERE import_request_id = ?", requestID,
	).Scan(&total); err != nil {
		return nil, model.PageMeta{}, err
	}

	rows, err := s.db.Query(`
		SELECT d.id, d.import_request_id, d.item_id, COALESCE(i.name, ''), d.expect_quantity, d.ordered_quantity
		FROM import_request_details d
		LEFT JOIN items i ON i.id = d.item_id
		WHERE d.import_request_id = ?
		ORDER BY d.id
		LIMIT ? OFFSET ?
	`, requestID, limit, (page-1)*limit)
	if err != nil {
		return nil, model.PageMeta{}, err
	}
	defer rows.Close()

	var details []model.ImportRequestDetail
	for rows.Next() {
		var d model.ImportRequestDetail
		if err := rows.Scan(&d.ID, &d.ImportRequestID, &d.ItemID, &d.ItemName, &d.ExpectQuantity, &d.OrderedQuantity); err != nil {
			return nil, model.PageMeta{}, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, model.PageMeta{}, err
	}

	meta := model.PageMeta{
		Page:        page,
		Limit:       limit,
		Total:       total,
		HasNext:     page*limit < total,
		HasPrevious: page > 1,
	}
	return details, meta, nil
}

// GetAllImportRequestDetails returns every expected line of a request,
// in insertion order. The order flow loads this once before merge
// reconciliation.
func (s *Store) GetAllImportRequestDetails(requestID int64) ([]model.ImportRequestDetail, error) {
	rows, err := s.db.Query(`
		SELECT d.id, d.import_request_id, d.item_id, COALESCE(i.name, ''), d.expect_quantity, d.ordered_quantity
		FROM import_request_details d
		LEFT JOIN items i ON i.id = d.item_id
		WHERE d.import_request_id = ?
		ORDER BY d.id
	`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []model.ImportRequestDetail
	for rows.Next() {
		var d model.ImportRequestDetail
		if err := rows.Scan(&d.ID, &d.ImportRequestID, &d.ItemID, &d.ItemName, &d.ExpectQuantity, &d.OrderedQuantity); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
