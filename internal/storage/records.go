package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/steezy2401/smartexp/internal/model"
)

// CreateRecord persists one completed expense or income record.
func (s *SQLiteStorage) CreateRecord(ctx context.Context, record model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(&record); err != nil {
		return err
	}

	query := `
		INSERT INTO records (id, user_id, sum, category, type, date, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.Sum, record.Category,
		string(record.Type), record.Date, record.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}

	slog.Debug("created record",
		"id", record.ID,
		"user_id", record.UserID,
		"category", record.Category,
		"sum", record.Sum)
	return nil
}

// GetRecordsByInterval returns the user's records with dates inside the
// closed interval [from, to], newest first.
func (s *SQLiteStorage) GetRecordsByInterval(ctx context.Context, userID int64, from, to time.Time) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, ErrInvalidInterval
	}

	query := `
		SELECT id, user_id, sum, category, type, date, description, created_at
		FROM records
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var rec model.Record
		var typ string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Sum, &rec.Category, &typ,
			&rec.Date, &rec.Description, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.Type = model.CategoryType(typ)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}
