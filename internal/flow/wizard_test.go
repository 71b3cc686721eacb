package flow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steezy2401/smartexp/internal/model"
	"github.com/steezy2401/smartexp/internal/storage"
)

const testUserID int64 = 42

func newWizardFixture(t *testing.T) (*Engine, *storage.SQLiteStorage, *model.SessionState) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	engine := NewEntryWizard(model.FlowExpense, "expense", model.CategoryTypeExpense, store, store)
	state := &model.SessionState{UserID: testUserID}
	return engine, store, state
}

func fixClock(t *testing.T, fixed time.Time) {
	t.Helper()
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = time.Now })
}

func TestExpenseWizardKnownCategory(t *testing.T) {
	ctx := context.Background()
	fixClock(t, time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC))

	engine, store, state := newWizardFixture(t)
	_, err := store.CreateCategory(ctx, "🍕", model.CategoryTypeExpense, testUserID)
	require.NoError(t, err)

	replies, err := engine.Start(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, []string{"wizardStart", "sum"}, replyKeys(replies))
	assert.Equal(t, stepSum, state.Cursor)

	replies, err = engine.Dispatch(ctx, state, TextEvent("12.50"))
	require.NoError(t, err)
	assert.Equal(t, []string{"category"}, replyKeys(replies))
	require.NotNil(t, replies[0].Keyboard)
	assert.Equal(t, "🍕", replies[0].Keyboard.Rows[0][0].Label)
	assert.Equal(t, stepCategory, state.Cursor)
	assert.InDelta(t, 12.50, state.Draft.Sum, 0.001)

	// Known symbol jumps straight to the date step; the proposal step
	// is never entered.
	replies, err = engine.Dispatch(ctx, state, TextEvent("🍕"))
	require.NoError(t, err)
	assert.Equal(t, []string{"date"}, replyKeys(replies))
	assert.Equal(t, stepDate, state.Cursor)

	replies, err = engine.Dispatch(ctx, state, TextEvent("today"))
	require.NoError(t, err)
	assert.Equal(t, []string{"description"}, replyKeys(replies))
	assert.Equal(t, stepDescription, state.Cursor)

	replies, err = engine.Dispatch(ctx, state, TextEvent("Lunch"))
	require.NoError(t, err)
	require.Equal(t, []string{"wizardEnd"}, replyKeys(replies))
	assert.Equal(t, "12.50", replies[0].Data["sum"])
	assert.Equal(t, "🍕", replies[0].Data["category"])
	assert.Equal(t, "15.06.2024", replies[0].Data["date"])
	assert.Equal(t, "Lunch", replies[0].Data["description"])
	assert.False(t, state.FlowActive())

	// The record was persisted exactly once.
	records, err := store.GetRecordsByInterval(ctx, testUserID,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 12.50, records[0].Sum, 0.001)
	assert.Equal(t, "🍕", records[0].Category)
	assert.Equal(t, "Lunch", records[0].Description)
	assert.Equal(t, model.CategoryTypeExpense, records[0].Type)
}

func TestExpenseWizardNewCategoryConfirmed(t *testing.T) {
	ctx := context.Background()
	engine, store, state := newWizardFixture(t)

	_, err := engine.Start(ctx, state)
	require.NoError(t, err)

	replies, err := engine.Dispatch(ctx, state, TextEvent("7"))
	require.NoError(t, err)
	// No categories yet: fallback message precedes the prompt.
	assert.Equal(t, []string{"no_category", "category"}, replyKeys(replies))

	replies, err = engine.Dispatch(ctx, state, TextEvent("🆕"))
	require.NoError(t, err)
	assert.Equal(t, []string{"category_missing", "category_confirm"}, replyKeys(replies))
	assert.Equal(t, stepProposal, state.Cursor)
	assert.Equal(t, "🆕", state.Proposal)

	replies, err = engine.Dispatch(ctx, state, ActionEvent(ActionConfirmCategory))
	require.NoError(t, err)
	assert.Equal(t, []string{"category_add", "date"}, replyKeys(replies))
	assert.Equal(t, stepDate, state.Cursor)
	assert.Empty(t, state.Proposal)

	// Exactly one registry insertion happened.
	created, err := store.GetCategoryBySymbol(ctx, testUserID, "🆕", model.CategoryTypeExpense)
	require.NoError(t, err)
	require.NotNil(t, created)

	_, err = engine.Dispatch(ctx, state, TextEvent("2024-01-05"))
	require.NoError(t, err)

	_, err = engine.Dispatch(ctx, state, TextEvent("Без описания"))
	require.NoError(t, err)
	assert.False(t, state.FlowActive())

	records, err := store.GetRecordsByInterval(ctx, testUserID,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "-", records[0].Description)
	assert.InDelta(t, 7.0, records[0].Sum, 0.001)
}

func TestExpenseWizardNewCategoryRejected(t *testing.T) {
	ctx := context.Background()
	engine, store, state := newWizardFixture(t)

	_, err := engine.Start(ctx, state)
	require.NoError(t, err)

	_, err = engine.Dispatch(ctx, state, TextEvent("5"))
	require.NoError(t, err)

	initialPrompt, err := (&categoryStep{&wizard{registry: store, records: store, section: "expense", ctype: model.CategoryTypeExpense}}).Enter(ctx, state)
	require.NoError(t, err)

	_, err = engine.Dispatch(ctx, state, TextEvent("🆕"))
	require.NoError(t, err)
	assert.Equal(t, stepProposal, state.Cursor)

	replies, err := engine.Dispatch(ctx, state, ActionEvent(ActionRejectCategory))
	require.NoError(t, err)
	assert.Equal(t, stepCategory, state.Cursor)
	assert.Empty(t, state.Proposal)
	assert.Empty(t, state.Draft.Category)

	// Rejecting leaves the registry untouched.
	created, err := store.GetCategoryBySymbol(ctx, testUserID, "🆕", model.CategoryTypeExpense)
	require.NoError(t, err)
	assert.Nil(t, created)

	// The re-rendered category prompt matches the initial one.
	require.Equal(t, "category_notAdd", replies[0].Key)
	assert.Equal(t, initialPrompt, replies[1:])

	// Other already-stored fields survive the rejection.
	assert.InDelta(t, 5.0, state.Draft.Sum, 0.001)
}

func TestSumStepValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		wantSum float64
		wantOK  bool
	}{
		{name: "dot decimal", input: "12.50", wantSum: 12.50, wantOK: true},
		{name: "comma decimal", input: "12,5", wantSum: 12.50, wantOK: true},
		{name: "integer", input: "7", wantSum: 7.00, wantOK: true},
		{name: "rounded to two decimals", input: "3.14159", wantSum: 3.14, wantOK: true},
		{name: "comma decimal rounded", input: "0,999", wantSum: 1.00, wantOK: true},
		{name: "non-numeric", input: "donuts", wantOK: false},
		{name: "two commas", input: "1,2,3", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _, state := newWizardFixture(t)
			_, err := engine.Start(ctx, state)
			require.NoError(t, err)

			replies, err := engine.Dispatch(ctx, state, TextEvent(tt.input))
			require.NoError(t, err)

			if tt.wantOK {
				assert.Equal(t, stepCategory, state.Cursor)
				assert.InDelta(t, tt.wantSum, state.Draft.Sum, 0.0001)
			} else {
				assert.Equal(t, stepSum, state.Cursor)
				assert.Equal(t, []string{"sum_error", "sum"}, replyKeys(replies))
				assert.Zero(t, state.Draft.Sum)
			}
		})
	}
}

func TestCategoryStepValidation(t *testing.T) {
	ctx := context.Background()

	for _, input := range []string{"food", "еда", "🍕🚗🏠💼", "123"} {
		t.Run(input, func(t *testing.T) {
			engine, _, state := newWizardFixture(t)
			_, err := engine.Start(ctx, state)
			require.NoError(t, err)
			_, err = engine.Dispatch(ctx, state, TextEvent("10"))
			require.NoError(t, err)

			replies, err := engine.Dispatch(ctx, state, TextEvent(input))
			require.NoError(t, err)
			assert.Equal(t, stepCategory, state.Cursor)
			assert.Equal(t, []string{"category_error", "category"}, replyKeys(replies))
			assert.Empty(t, state.Draft.Category)
		})
	}
}

func TestDateStepValidation(t *testing.T) {
	ctx := context.Background()
	engine, store, state := newWizardFixture(t)

	_, err := store.CreateCategory(ctx, "🍕", model.CategoryTypeExpense, testUserID)
	require.NoError(t, err)
	_, err = engine.Start(ctx, state)
	require.NoError(t, err)
	_, err = engine.Dispatch(ctx, state, TextEvent("10"))
	require.NoError(t, err)
	_, err = engine.Dispatch(ctx, state, TextEvent("🍕"))
	require.NoError(t, err)

	replies, err := engine.Dispatch(ctx, state, TextEvent("not a date"))
	require.NoError(t, err)
	assert.Equal(t, stepDate, state.Cursor)
	assert.Equal(t, []string{"date_error", "date"}, replyKeys(replies))
	assert.True(t, state.Draft.Date.IsZero())
}

func TestDescriptionStepValidation(t *testing.T) {
	ctx := context.Background()
	engine, store, state := newWizardFixture(t)

	_, err := store.CreateCategory(ctx, "🍕", model.CategoryTypeExpense, testUserID)
	require.NoError(t, err)
	_, err = engine.Start(ctx, state)
	require.NoError(t, err)
	_, err = engine.Dispatch(ctx, state, TextEvent("10"))
	require.NoError(t, err)
	_, err = engine.Dispatch(ctx, state, TextEvent("🍕"))
	require.NoError(t, err)
	_, err = engine.Dispatch(ctx, state, TextEvent("2024-01-05"))
	require.NoError(t, err)

	oversized := strings.Repeat("о", 101)
	replies, err := engine.Dispatch(ctx, state, TextEvent(oversized))
	require.NoError(t, err)
	assert.Equal(t, stepDescription, state.Cursor)
	assert.Equal(t, []string{"description_error", "description"}, replyKeys(replies))

	// Wizard still active, a description at the bound completes it.
	atBound := strings.Repeat("о", 100)
	_, err = engine.Dispatch(ctx, state, TextEvent(atBound))
	require.NoError(t, err)
	assert.False(t, state.FlowActive())
}

func TestWizardRePromptsOnUnexpectedEventKind(t *testing.T) {
	ctx := context.Background()
	engine, _, state := newWizardFixture(t)

	_, err := engine.Start(ctx, state)
	require.NoError(t, err)

	// A button action where text is expected re-emits the prompt
	// without moving the cursor or touching the draft.
	replies, err := engine.Dispatch(ctx, state, ActionEvent("whatever"))
	require.NoError(t, err)
	assert.Equal(t, stepSum, state.Cursor)
	assert.Equal(t, []string{"sum"}, replyKeys(replies))
	assert.Zero(t, state.Draft.Sum)
}

func TestIncomeWizardUsesOwnTypeAndSection(t *testing.T) {
	ctx := context.Background()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.CreateCategory(ctx, "💼", model.CategoryTypeIncome, testUserID)
	require.NoError(t, err)
	// Same symbol as an expense category must not leak into income.
	_, err = store.CreateCategory(ctx, "🍕", model.CategoryTypeExpense, testUserID)
	require.NoError(t, err)

	engine := NewEntryWizard(model.FlowIncome, "income", model.CategoryTypeIncome, store, store)
	state := &model.SessionState{UserID: testUserID}

	replies, err := engine.Start(ctx, state)
	require.NoError(t, err)
	assert.Equal(t, "income", replies[0].Section)

	replies, err = engine.Dispatch(ctx, state, TextEvent("100"))
	require.NoError(t, err)
	require.NotNil(t, replies[0].Keyboard)
	require.Len(t, replies[0].Keyboard.Rows, 1)
	assert.Equal(t, []Button{{Label: "💼"}}, replies[0].Keyboard.Rows[0])

	// The expense symbol is unknown to the income wizard: proposal.
	_, err = engine.Dispatch(ctx, state, TextEvent("🍕"))
	require.NoError(t, err)
	assert.Equal(t, stepProposal, state.Cursor)
}
