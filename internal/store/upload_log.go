package store

import "fmt"

// CreateUploadLog records the start of an upload attempt and returns
// its id.
func (s *Store) CreateUploadLog(filename, flowKind string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO upload_logs (filename, flow_kind, status) VALUES (?, ?, 'processing')
	`, filename, flowKind)
	if err != nil {
		return 0, fmt.Errorf("failed to create upload log: %w", err)
	}
	return res.LastInsertId()
}

// FinishUploadLog completes an upload log entry.
func (s *Store) FinishUploadLog(id int64, validRows, errorRows, skippedRows int, status, message string) error {
	_, err := s.db.Exec(`
		UPDATE upload_logs SET
			valid_rows = ?,
			error_rows = ?,
			skipped_rows = ?,
			status = ?,
			message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, validRows, errorRows, skippedRows, status, message, id)
	if err != nil {
		return fmt.Errorf("failed to finish upload log: %w", err)
	}
	return nil
}

// LastUploadTime returns the completion time of the most recent
// upload, or the empty string when none exist.
func (s *Store) LastUploadTime() (string, error) {
	var t string
	err := s.db.QueryRow(`
		SELECT COALESCE(MAX(completed_at), '') FROM upload_logs WHERE completed_at IS NOT NULL
	`).Scan(&t)
	return t, err
}
