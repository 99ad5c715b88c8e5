package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetProcessedFile fetches the bookkeeping row for a source filename,
// or (nil, nil) when the file has never been processed.
func (s *Store) GetProcessedFile(ctx context.Context, filename string) (*ProcessedFile, error) {
	var row ProcessedFile
	err := s.db.GetContext(ctx, &row,
		`SELECT id, filename, file_path, processed_at, status, transcription_id
		 FROM processed_files
		 WHERE filename = ?`, filename)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get processed file %q: %w", filename, err)
	}
	return &row, nil
}
