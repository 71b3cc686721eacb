package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steezy2401/smartexp/internal/common"
	"github.com/steezy2401/smartexp/internal/model"
)

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("create expense category", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		cat, err := store.CreateCategory(ctx, "🍕", model.CategoryTypeExpense, 42)
		require.NoError(t, err)
		assert.Equal(t, "🍕", cat.Symbol)
		assert.Equal(t, model.CategoryTypeExpense, cat.Type)
		assert.Equal(t, int64(42), cat.UserID)
		assert.True(t, cat.IsActive)

		retrieved, err := store.GetCategoryBySymbol(ctx, 42, "🍕", model.CategoryTypeExpense)
		require.NoError(t, err)
		require.NotNil(t, retrieved)
		assert.Equal(t, cat.ID, retrieved.ID)
	})

	t.Run("create income category", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		cat, err := store.CreateCategory(ctx, "💼", model.CategoryTypeIncome, 42)
		require.NoError(t, err)
		assert.Equal(t, model.CategoryTypeIncome, cat.Type)
	})

	t.Run("active duplicate is rejected", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.CreateCategory(ctx, "🍕", model.CategoryTypeExpense, 42)
		require.NoError(t, err)

		_, err = store.CreateCategory(ctx, "🍕", model.CategoryTypeExpense, 42)
		require.ErrorIs(t, err, common.ErrDuplicateEntry)
	})

	t.Run("reactivates a deactivated category", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		first, err := store.CreateCategory(ctx, "🍕", model.CategoryTypeExpense, 42)
		require.NoError(t, err)
		require.NoError(t, store.DeactivateCategory(ctx, 42, "🍕", model.CategoryTypeExpense))

		second, err := store.CreateCategory(ctx, "🍕", model.CategoryTypeExpense, 42)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.True(t, second.IsActive)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.CreateCategory(ctx, "🍕", model.CategoryType("OTHER"), 42)
		require.Error(t, err)
	})

	t.Run("rejects non-positive user ID", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.CreateCategory(ctx, "🍕", model.CategoryTypeExpense, 0)
		require.ErrorIs(t, err, ErrInvalidUserID)
	})
}

func TestGetCategoryBySymbol(t *testing.T) {
	ctx := context.Background()

	t.Run("missing category returns nil without error", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		cat, err := store.GetCategoryBySymbol(ctx, 42, "🆕", model.CategoryTypeExpense)
		require.NoError(t, err)
		assert.Nil(t, cat)
	})

	t.Run("lookup is scoped by type", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.CreateCategory(ctx, "🎁", model.CategoryTypeIncome, 42)
		require.NoError(t, err)

		cat, err := store.GetCategoryBySymbol(ctx, 42, "🎁", model.CategoryTypeExpense)
		require.NoError(t, err)
		assert.Nil(t, cat)
	})

	t.Run("lookup is scoped by user", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.CreateCategory(ctx, "🍕", model.CategoryTypeExpense, 42)
		require.NoError(t, err)

		cat, err := store.GetCategoryBySymbol(ctx, 43, "🍕", model.CategoryTypeExpense)
		require.NoError(t, err)
		assert.Nil(t, cat)
	})
}

func TestGetCategoriesForUser(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	for _, symbol := range []string{"🍕", "🚗", "🏠"} {
		_, err := store.CreateCategory(ctx, symbol, model.CategoryTypeExpense, 42)
		require.NoError(t, err)
	}
	_, err := store.CreateCategory(ctx, "💼", model.CategoryTypeIncome, 42)
	require.NoError(t, err)

	expenses, err := store.GetCategoriesForUser(ctx, 42, model.CategoryTypeExpense)
	require.NoError(t, err)
	assert.Len(t, expenses, 3)

	incomes, err := store.GetCategoriesForUser(ctx, 42, model.CategoryTypeIncome)
	require.NoError(t, err)
	assert.Len(t, incomes, 1)

	other, err := store.GetCategoriesForUser(ctx, 99, model.CategoryTypeExpense)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestDeactivateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the category from lookups", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.CreateCategory(ctx, "🍕", model.CategoryTypeExpense, 42)
		require.NoError(t, err)

		require.NoError(t, store.DeactivateCategory(ctx, 42, "🍕", model.CategoryTypeExpense))

		cat, err := store.GetCategoryBySymbol(ctx, 42, "🍕", model.CategoryTypeExpense)
		require.NoError(t, err)
		assert.Nil(t, cat)
	})

	t.Run("unknown category", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		err := store.DeactivateCategory(ctx, 42, "🆕", model.CategoryTypeExpense)
		require.ErrorIs(t, err, common.ErrNotFound)
	})
}
