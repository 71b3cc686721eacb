package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/steezy2401/smartexp/internal/common"
	"github.com/steezy2401/smartexp/internal/model"
)

// GetCategoriesForUser returns all active categories of the given type
// belonging to one user, ordered by symbol.
func (s *SQLiteStorage) GetCategoriesForUser(ctx context.Context, userID int64, categoryType model.CategoryType) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, symbol, type, is_active, created_at
		FROM categories
		WHERE user_id = ? AND type = ? AND is_active = 1
		ORDER BY symbol`

	rows, err := s.db.QueryContext(ctx, query, userID, string(categoryType))
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		var typ string
		if err := rows.Scan(&cat.ID, &cat.UserID, &cat.Symbol, &typ, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		cat.Type = model.CategoryType(typ)
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "user_id", userID, "type", categoryType, "count", len(categories))
	return categories, nil
}

// GetCategoryBySymbol returns the user's category with the given symbol
// and type, or nil when no such category exists.
func (s *SQLiteStorage) GetCategoryBySymbol(ctx context.Context, userID int64, symbol string, categoryType model.CategoryType) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateString(symbol, "symbol"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, symbol, type, is_active, created_at
		FROM categories
		WHERE user_id = ? AND symbol = ? AND type = ? AND is_active = 1`

	var cat model.Category
	var typ string
	err := s.db.QueryRowContext(ctx, query, userID, symbol, string(categoryType)).Scan(
		&cat.ID, &cat.UserID, &cat.Symbol, &typ, &cat.IsActive, &cat.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	cat.Type = model.CategoryType(typ)
	return &cat, nil
}

// CreateCategory creates a new category for the user. If an inactive
// category with the same symbol and type exists it is reactivated; an
// active duplicate returns common.ErrDuplicateEntry.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, symbol string, categoryType model.CategoryType, userID int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(symbol, "symbol"); err != nil {
		return nil, err
	}
	if err := validateCategoryType(categoryType); err != nil {
		return nil, err
	}
	if err := validateUserID(userID); err != nil {
		return nil, err
	}

	existingQuery := `
		SELECT id, user_id, symbol, type, is_active, created_at
		FROM categories
		WHERE user_id = ? AND symbol = ? AND type = ?`

	var existing model.Category
	var typ string
	err := s.db.QueryRowContext(ctx, existingQuery, userID, symbol, string(categoryType)).Scan(
		&existing.ID, &existing.UserID, &existing.Symbol, &typ, &existing.IsActive, &existing.CreatedAt,
	)

	if err == nil {
		existing.Type = model.CategoryType(typ)
		if existing.IsActive {
			return nil, fmt.Errorf("category %s: %w", symbol, common.ErrDuplicateEntry)
		}
		updateQuery := `UPDATE categories SET is_active = 1 WHERE id = ?`
		if _, err := s.db.ExecContext(ctx, updateQuery, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to reactivate category: %w", err)
		}
		existing.IsActive = true
		slog.Info("reactivated existing category", "symbol", symbol, "user_id", userID)
		return &existing, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing category: %w", err)
	}

	now := time.Now()
	insertQuery := `
		INSERT INTO categories (user_id, symbol, type, is_active, created_at)
		VALUES (?, ?, ?, 1, ?)`

	result, err := s.db.ExecContext(ctx, insertQuery, userID, symbol, string(categoryType), now)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	slog.Info("created category", "symbol", symbol, "type", categoryType, "user_id", userID)

	return &model.Category{
		ID:        id,
		UserID:    userID,
		Symbol:    symbol,
		Type:      categoryType,
		IsActive:  true,
		CreatedAt: now,
	}, nil
}

// DeactivateCategory hides the user's category from keyboards and
// listings without touching its records. Returns common.ErrNotFound
// when no active category matches.
func (s *SQLiteStorage) DeactivateCategory(ctx context.Context, userID int64, symbol string, categoryType model.CategoryType) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUserID(userID); err != nil {
		return err
	}
	if err := validateString(symbol, "symbol"); err != nil {
		return err
	}
	if err := validateCategoryType(categoryType); err != nil {
		return err
	}

	query := `
		UPDATE categories SET is_active = 0
		WHERE user_id = ? AND symbol = ? AND type = ? AND is_active = 1`

	result, err := s.db.ExecContext(ctx, query, userID, symbol, string(categoryType))
	if err != nil {
		return fmt.Errorf("failed to deactivate category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category %s: %w", symbol, common.ErrNotFound)
	}

	slog.Info("deactivated category", "symbol", symbol, "user_id", userID)
	return nil
}
