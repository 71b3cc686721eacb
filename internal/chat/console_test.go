package chat

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steezy2401/smartexp/internal/bot"
	"github.com/steezy2401/smartexp/internal/model"
	"github.com/steezy2401/smartexp/internal/session"
	"github.com/steezy2401/smartexp/internal/storage"
	"github.com/steezy2401/smartexp/internal/templates"
)

func newConsoleFixture(t *testing.T, input string) (*Console, *bytes.Buffer) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.CreateCategory(context.Background(), "🍕", model.CategoryTypeExpense, 1)
	require.NoError(t, err)

	sessions, err := session.NewStore(t.TempDir())
	require.NoError(t, err)

	catalog, err := templates.Load()
	require.NoError(t, err)

	router := bot.New(sessions, store, store, catalog)
	out := &bytes.Buffer{}
	return NewConsole(router, strings.NewReader(input), out, "test-conv", 1), out
}

func TestConsoleGreetsAndExitsOnEOF(t *testing.T) {
	console, out := newConsoleFixture(t, "")

	require.NoError(t, console.Run(context.Background()))
	assert.Contains(t, out.String(), "Привет")
}

func TestConsoleRoutesTextAndButtons(t *testing.T) {
	// Open the history menu, then press its inline "Все" button by
	// typing the label.
	console, out := newConsoleFixture(t, "🗂 История\nВсе\n")

	require.NoError(t, console.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "категории")
	assert.Contains(t, output, "Все")
	assert.Contains(t, output, "🍕")
}
