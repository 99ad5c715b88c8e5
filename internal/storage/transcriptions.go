package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const transcriptionColumns = `t.id, t.content, t.filename, t.audio_path, t.model_type,
	t.created_at, t.duration_seconds, t.category_id, t.metadata, c.name AS category_name`

// SaveTranscriptionParams carries the optional fields of a new
// transcription row. Empty strings and zero values mean absent.
type SaveTranscriptionParams struct {
	Content         string
	Filename        string
	AudioPath       string
	ModelType       string
	DurationSeconds float64
	Category        string
	Metadata        map[string]interface{}
}

// SaveTranscription inserts a transcription inside one transaction:
// the category is resolved or created by name, the transcription row is
// inserted, and a processed_files row is upserted when both filename
// and audio path are present. On any failure the transaction is rolled
// back and the error returned.
func (s *Store) SaveTranscription(ctx context.Context, p SaveTranscriptionParams) (int64, error) {
	if strings.TrimSpace(p.Content) == "" {
		return 0, fmt.Errorf("content is required")
	}

	var metadataJSON sql.NullString
	if p.Metadata != nil {
		data, err := json.Marshal(p.Metadata)
		if err != nil {
			return 0, fmt.Errorf("encode metadata: %w", err)
		}
		metadataJSON = nullString(string(data))
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()

	// The conflict update is a no-op write so the statement returns the
	// existing row's id; this keeps insert-or-reuse atomic under
	// concurrent writers.
	var categoryID sql.NullInt64
	if p.Category != "" {
		var id int64
		err = tx.QueryRowContext(ctx,
			`INSERT INTO categories (name, created_at) VALUES (?, ?)
			 ON CONFLICT(name) DO UPDATE SET name=excluded.name
			 RETURNING id`,
			p.Category, now,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("resolve category %q: %w", p.Category, err)
		}
		categoryID = nullInt(id)
	}

	var transcriptionID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO transcriptions (
			content, filename, audio_path, model_type, created_at,
			duration_seconds, category_id, metadata
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		p.Content,
		nullString(p.Filename),
		nullString(p.AudioPath),
		nullString(p.ModelType),
		now,
		nullFloat(p.DurationSeconds),
		categoryID,
		metadataJSON,
	).Scan(&transcriptionID)
	if err != nil {
		return 0, fmt.Errorf("insert transcription: %w", err)
	}

	if p.Filename != "" && p.AudioPath != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO processed_files (filename, file_path, processed_at, status, transcription_id)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(filename) DO UPDATE SET
				file_path=excluded.file_path,
				processed_at=excluded.processed_at,
				status=excluded.status,
				transcription_id=excluded.transcription_id`,
			p.Filename, p.AudioPath, now, "processed", transcriptionID,
		)
		if err != nil {
			return 0, fmt.Errorf("upsert processed file: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return transcriptionID, nil
}

// GetTranscription fetches one transcription by id, or (nil, nil) when
// no such row exists.
func (s *Store) GetTranscription(ctx context.Context, id int64) (*Transcription, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM transcriptions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = ?`, transcriptionColumns)

	var row Transcription
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transcription %d: %w", id, err)
	}
	return &row, nil
}

// LatestTranscriptions returns the newest transcriptions first. A
// non-positive limit defaults to 10.
func (s *Store) LatestTranscriptions(ctx context.Context, limit int) ([]Transcription, error) {
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(`SELECT %s
		FROM transcriptions t
		LEFT JOIN categories c ON t.category_id = c.id
		ORDER BY t.created_at DESC
		LIMIT ?`, transcriptionColumns)

	var rows []Transcription
	if err := s.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("latest transcriptions: %w", err)
	}
	return rows, nil
}

// TranscriptionsByDateRange returns transcriptions created within
// [start, end], newest first. Callers wanting chronological order
// re-sort ascending.
func (s *Store) TranscriptionsByDateRange(ctx context.Context, start, end time.Time) ([]Transcription, error) {
	query := fmt.Sprintf(`SELECT %s
		FROM transcriptions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.created_at BETWEEN ? AND ?
		ORDER BY t.created_at DESC`, transcriptionColumns)

	var rows []Transcription
	if err := s.db.SelectContext(ctx, &rows, query, start.UTC(), end.UTC()); err != nil {
		return nil, fmt.Errorf("transcriptions by date range: %w", err)
	}
	return rows, nil
}
