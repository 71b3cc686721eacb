// Package storage provides the data persistence layer for the smartexp application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/steezy2401/smartexp/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrInvalidUserID   = errors.New("user ID must be positive")
	ErrInvalidType     = errors.New("invalid category type")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrInvalidInterval = errors.New("interval start must not be after end")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateUserID ensures a user identifier is usable as a key.
func validateUserID(userID int64) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	return nil
}

// validateCategoryType ensures the type is one of the known values.
func validateCategoryType(t model.CategoryType) error {
	switch t {
	case model.CategoryTypeExpense, model.CategoryTypeIncome:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
}

// validateRecord validates a record before insertion.
func validateRecord(record *model.Record) error {
	if record.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRecord)
	}
	if record.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	if record.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidRecord)
	}
	if err := validateUserID(record.UserID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return validateCategoryType(record.Type)
}
