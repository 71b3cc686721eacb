package model

import "time"

// FlowName identifies which wizard is active for a conversation.
type FlowName string

const (
	// FlowExpense is the guided expense-entry wizard.
	FlowExpense FlowName = "expense"
	// FlowIncome is the guided income-entry wizard.
	FlowIncome FlowName = "income"
	// FlowInterval is the history time-interval wizard.
	FlowInterval FlowName = "interval"
)

// Interval is a closed date range selected for history browsing.
type Interval struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// SessionState is the per-conversation state persisted between turns.
// Every field a wizard or menu mutates lives here; components re-read
// the session on each dispatch rather than caching copies.
type SessionState struct {
	// Selection maps category symbols to their history-display flag.
	// Nil until the toggle menu initializes it from the registry.
	Selection map[string]bool `json:"selection,omitempty"`

	// Proposal is the category symbol awaiting user confirmation, set
	// when a validly spelled symbol is not yet in the registry. At most
	// one proposal is pending per conversation.
	Proposal string `json:"proposal,omitempty"`

	// Flow and Cursor locate the active wizard step, if any.
	Flow   FlowName `json:"flow,omitempty"`
	Cursor int      `json:"cursor,omitempty"`

	Draft    Draft     `json:"draft"`
	Interval *Interval `json:"interval,omitempty"`

	// MenuOpen marks the history-categories toggle menu as the active
	// surface for button events.
	MenuOpen bool `json:"menu_open,omitempty"`

	UserID int64 `json:"user_id"`
}

// FlowActive reports whether a wizard is currently running.
func (s *SessionState) FlowActive() bool {
	return s.Flow != ""
}

// ClearFlow ends the active wizard and discards its scratch state.
func (s *SessionState) ClearFlow() {
	s.Flow = ""
	s.Cursor = 0
	s.Proposal = ""
	s.Draft = Draft{}
}
