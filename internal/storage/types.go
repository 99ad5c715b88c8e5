package storage

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Transcription is one diary entry derived from an audio file. Rows are
// append-only; nothing in the pipeline updates or deletes them. The
// category name comes from a LEFT JOIN and is empty for uncategorized
// entries.
type Transcription struct {
	ID              int64           `db:"id"`
	Content         string          `db:"content"`
	Filename        sql.NullString  `db:"filename"`
	AudioPath       sql.NullString  `db:"audio_path"`
	ModelType       sql.NullString  `db:"model_type"`
	CreatedAt       time.Time       `db:"created_at"`
	DurationSeconds sql.NullFloat64 `db:"duration_seconds"`
	CategoryID      sql.NullInt64   `db:"category_id"`
	Metadata        sql.NullString  `db:"metadata"`
	CategoryName    sql.NullString  `db:"category_name"`
}

// Category returns the display name, defaulting to "Uncategorized".
func (t Transcription) Category() string {
	if t.CategoryName.Valid && t.CategoryName.String != "" {
		return t.CategoryName.String
	}
	return "Uncategorized"
}

// DecodeMetadata unmarshals the metadata JSON column. A NULL column
// yields an empty map.
func (t Transcription) DecodeMetadata() (map[string]interface{}, error) {
	if !t.Metadata.Valid || t.Metadata.String == "" {
		return map[string]interface{}{}, nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(t.Metadata.String), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// OptimizedTranscription is a derived, post-processed record linked back
// to its source transcription. Append-only like its source.
type OptimizedTranscription struct {
	ID                      int64          `db:"id"`
	Content                 string         `db:"content"`
	CreatedAt               time.Time      `db:"created_at"`
	OriginalTranscriptionID sql.NullInt64  `db:"original_transcription_id"`
	Metadata                sql.NullString `db:"metadata"`
}

// ProcessedFile tracks which source audio file produced which
// transcription. Upserted keyed on filename so re-processing a file
// updates the row instead of duplicating it.
type ProcessedFile struct {
	ID              int64          `db:"id"`
	Filename        string         `db:"filename"`
	FilePath        sql.NullString `db:"file_path"`
	ProcessedAt     time.Time      `db:"processed_at"`
	Status          sql.NullString `db:"status"`
	TranscriptionID sql.NullInt64  `db:"transcription_id"`
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: f != 0}
}

func nullInt(i int64) sql.NullInt64 {
	return sql.NullInt64{Int64: i, Valid: i != 0}
}
