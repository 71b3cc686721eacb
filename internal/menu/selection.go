// Package menu implements the history-categories toggle-selection menu:
// a non-linear interactive surface over per-category boolean selection
// state persisted in the session.
package menu

import (
	"context"
	"fmt"

	"github.com/steezy2401/smartexp/internal/flow"
	"github.com/steezy2401/smartexp/internal/model"
	"github.com/steezy2401/smartexp/internal/service"
)

// Action identifiers for the menu's buttons.
const (
	ActionSelectAll  = "histCategoriesAll"
	ActionSelectNone = "histCategoriesNone"
	ActionClose      = "histCategoriesBack"
	ActionShow       = "histCategoriesShow"

	// togglePrefix precedes the category symbol in per-item toggle
	// actions.
	togglePrefix = "histToggle:"
)

// Menu renders and mutates the selection state. It holds no
// per-conversation data; everything lives in the session state passed
// to each call.
type Menu struct {
	registry service.Registry
}

// New creates the toggle-selection menu over the given registry.
func New(registry service.Registry) *Menu {
	return &Menu{registry: registry}
}

// Initialize populates the session's selection map from the registry
// with every category selected, for identifiers not yet present.
// Idempotent: existing entries are never overwritten or removed.
func (m *Menu) Initialize(ctx context.Context, state *model.SessionState) error {
	symbols, err := m.symbols(ctx, state.UserID)
	if err != nil {
		return err
	}

	if state.Selection == nil {
		state.Selection = make(map[string]bool, len(symbols))
	}
	for _, symbol := range symbols {
		if _, ok := state.Selection[symbol]; !ok {
			state.Selection[symbol] = true
		}
	}
	return nil
}

// SelectAll sets every selection entry to true. Never adds or removes
// keys.
func SelectAll(state *model.SessionState) {
	for key := range state.Selection {
		state.Selection[key] = true
	}
}

// SelectNone sets every selection entry to false. Never adds or removes
// keys.
func SelectNone(state *model.SessionState) {
	for key := range state.Selection {
		state.Selection[key] = false
	}
}

// Toggle flips one entry's flag and returns the new value, so callers
// can update just that button. Unknown keys are left untouched.
func Toggle(state *model.SessionState, key string) (bool, bool) {
	current, ok := state.Selection[key]
	if !ok {
		return false, false
	}
	state.Selection[key] = !current
	return !current, true
}

// ToggleAction builds the action identifier for one category's toggle
// button.
func ToggleAction(symbol string) string {
	return togglePrefix + symbol
}

// ParseToggleAction extracts the category symbol from a toggle action
// identifier.
func ParseToggleAction(action string) (string, bool) {
	if len(action) <= len(togglePrefix) || action[:len(togglePrefix)] != togglePrefix {
		return "", false
	}
	return action[len(togglePrefix):], true
}

// Render produces the menu body and keyboard: a bulk-action row, a grid
// of per-category toggle buttons with their current state markers, and
// a closing row. Categories and selection state are sourced fresh on
// every render.
func (m *Menu) Render(ctx context.Context, state *model.SessionState) ([]flow.Reply, error) {
	if err := m.Initialize(ctx, state); err != nil {
		return nil, err
	}

	symbols, err := m.symbols(ctx, state.UserID)
	if err != nil {
		return nil, err
	}

	kb := &flow.Keyboard{
		Inline: true,
		Rows: [][]flow.Button{{
			{Label: "Все", Action: ActionSelectAll},
			{Label: "Ни одной", Action: ActionSelectNone},
		}},
	}

	var row []flow.Button
	for _, symbol := range symbols {
		row = append(row, flow.Button{
			Label:  stateMarker(state.Selection[symbol]) + " " + symbol,
			Action: ToggleAction(symbol),
		})
		if len(row) == 5 {
			kb.Rows = append(kb.Rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb.Rows = append(kb.Rows, row)
	}

	kb.Rows = append(kb.Rows, []flow.Button{
		{Label: "🗓 Выбрать период", Action: ActionShow},
		{Label: "🔙 Назад", Action: ActionClose},
	})

	return []flow.Reply{
		flow.NewReply("history", "categories").WithKeyboard(kb),
	}, nil
}

// symbols returns every category symbol for the user, expense and
// income alike, in a stable order.
func (m *Menu) symbols(ctx context.Context, userID int64) ([]string, error) {
	var symbols []string
	seen := make(map[string]bool)

	for _, ctype := range []model.CategoryType{model.CategoryTypeExpense, model.CategoryTypeIncome} {
		categories, err := m.registry.GetCategoriesForUser(ctx, userID, ctype)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s categories: %w", ctype, err)
		}
		for _, cat := range categories {
			if !seen[cat.Symbol] {
				seen[cat.Symbol] = true
				symbols = append(symbols, cat.Symbol)
			}
		}
	}
	return symbols, nil
}

func stateMarker(selected bool) string {
	if selected {
		return "✅"
	}
	return "☑️"
}
