// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/steezy2401/smartexp/internal/model"
)

// Sessions is the per-conversation state store. Implementations must
// return a fresh zero-value state for conversations never seen before;
// callers treat the returned state as the single source of truth for
// one dispatch and write it back through Put.
type Sessions interface {
	Get(ctx context.Context, conversationID string) (*model.SessionState, error)
	Put(ctx context.Context, conversationID string, state *model.SessionState) error
}

// Registry is the category lookup and insert contract.
type Registry interface {
	// GetCategoryBySymbol returns the user's category with the given
	// symbol and type, or nil when no such category exists.
	GetCategoryBySymbol(ctx context.Context, userID int64, symbol string, categoryType model.CategoryType) (*model.Category, error)
	GetCategoriesForUser(ctx context.Context, userID int64, categoryType model.CategoryType) ([]model.Category, error)
	CreateCategory(ctx context.Context, symbol string, categoryType model.CategoryType, userID int64) (*model.Category, error)
}

// Records is the persistence contract for completed expense and income
// entries.
type Records interface {
	CreateRecord(ctx context.Context, record model.Record) error
	GetRecordsByInterval(ctx context.Context, userID int64, from, to time.Time) ([]model.Record, error)
}

// Renderer resolves a symbolic (section, key) pair plus substitution
// data into user-facing text. Core code never constructs display
// strings directly.
type Renderer interface {
	Render(section, key string, data map[string]string) string
}
