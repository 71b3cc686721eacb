// Package flow implements the guided-input step engine and the concrete
// expense, income and time-interval wizards built on it.
package flow

// EventKind distinguishes free-text messages from button actions.
type EventKind int

const (
	// EventText is a typed message.
	EventText EventKind = iota
	// EventAction is a button press carrying an action identifier.
	EventAction
)

// Event is one inbound user event dispatched to the active step.
type Event struct {
	Text   string
	Action string
	Kind   EventKind
}

// TextEvent builds a free-text event.
func TextEvent(text string) Event {
	return Event{Kind: EventText, Text: text}
}

// ActionEvent builds a button-action event.
func ActionEvent(action string) Event {
	return Event{Kind: EventAction, Action: action}
}

// Button is one keyboard button. Action is empty for plain reply
// buttons whose press arrives back as text.
type Button struct {
	Label  string
	Action string
}

// Keyboard describes the button layout attached to a reply.
type Keyboard struct {
	Rows   [][]Button
	Inline bool
	Remove bool
}

// Reply is one outbound prompt: a symbolic message key plus
// substitution data, optionally carrying a keyboard. Rendering into
// display text happens outside the flow layer.
type Reply struct {
	Data     map[string]string
	Section  string
	Key      string
	Keyboard *Keyboard
}

// NewReply builds a reply with no substitution data.
func NewReply(section, key string) Reply {
	return Reply{Section: section, Key: key}
}

// WithKeyboard attaches a keyboard to the reply.
func (r Reply) WithKeyboard(kb *Keyboard) Reply {
	r.Keyboard = kb
	return r
}

// WithData attaches substitution data to the reply.
func (r Reply) WithData(data map[string]string) Reply {
	r.Data = data
	return r
}
