package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SaveOptimizedTranscription appends a post-processed record. A zero
// originalID leaves the source reference NULL.
func (s *Store) SaveOptimizedTranscription(ctx context.Context, content string, originalID int64, metadata map[string]interface{}) (int64, error) {
	if strings.TrimSpace(content) == "" {
		return 0, fmt.Errorf("content is required")
	}

	var metadataJSON sql.NullString
	if metadata != nil {
		data, err := json.Marshal(metadata)
		if err != nil {
			return 0, fmt.Errorf("encode metadata: %w", err)
		}
		metadataJSON = nullString(string(data))
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO optimize_transcriptions (content, created_at, original_transcription_id, metadata)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
		content, time.Now().UTC(), nullInt(originalID), metadataJSON,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert optimized transcription: %w", err)
	}
	return id, nil
}

// LatestOptimizedTranscriptions returns the newest records first. A
// non-positive limit defaults to 10.
func (s *Store) LatestOptimizedTranscriptions(ctx context.Context, limit int) ([]OptimizedTranscription, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []OptimizedTranscription
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, content, created_at, original_transcription_id, metadata
		 FROM optimize_transcriptions
		 ORDER BY created_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("latest optimized transcriptions: %w", err)
	}
	return rows, nil
}

// OptimizedTranscriptionsByDate returns records created on the given
// calendar day, newest first.
func (s *Store) OptimizedTranscriptionsByDate(ctx context.Context, day time.Time) ([]OptimizedTranscription, error) {
	var rows []OptimizedTranscription
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, content, created_at, original_transcription_id, metadata
		 FROM optimize_transcriptions
		 WHERE DATE(created_at) = DATE(?)
		 ORDER BY created_at DESC`, day.UTC())
	if err != nil {
		return nil, fmt.Errorf("optimized transcriptions by date: %w", err)
	}
	return rows, nil
}
