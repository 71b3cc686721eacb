// Package bot routes inbound chat events to the active wizard, the
// history-categories menu, or the main-menu handlers.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/steezy2401/smartexp/internal/flow"
	"github.com/steezy2401/smartexp/internal/menu"
	"github.com/steezy2401/smartexp/internal/model"
	"github.com/steezy2401/smartexp/internal/service"
)

// Inbound is one event from the chat transport.
type Inbound struct {
	Conversation string
	UserID       int64
	Event        flow.Event
}

// Message is one rendered outbound message.
type Message struct {
	Text     string
	Keyboard *flow.Keyboard
}

// Router owns the dispatch order: active wizard first, then the toggle
// menu, then main-menu keywords. Each inbound event is processed
// fully (fresh session read, mutation, write-back) before the next
// event for the same conversation.
type Router struct {
	sessions service.Sessions
	registry service.Registry
	records  service.Records
	renderer service.Renderer
	menu     *menu.Menu
	wizards  map[model.FlowName]*flow.Engine
}

// New wires a router from its collaborators.
func New(sessions service.Sessions, registry service.Registry, records service.Records, renderer service.Renderer) *Router {
	wizards := map[model.FlowName]*flow.Engine{
		model.FlowExpense:  flow.NewEntryWizard(model.FlowExpense, "expense", model.CategoryTypeExpense, registry, records),
		model.FlowIncome:   flow.NewEntryWizard(model.FlowIncome, "income", model.CategoryTypeIncome, registry, records),
		model.FlowInterval: flow.NewIntervalWizard(records),
	}

	return &Router{
		sessions: sessions,
		registry: registry,
		records:  records,
		renderer: renderer,
		menu:     menu.New(registry),
		wizards:  wizards,
	}
}

// Handle processes one inbound event and returns the outbound messages.
// Storage faults never crash the conversation: they are logged and
// surfaced as a generic failure notice, with the session left on its
// current step.
func (r *Router) Handle(ctx context.Context, in Inbound) ([]Message, error) {
	state, err := r.sessions.Get(ctx, in.Conversation)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if state.UserID == 0 {
		state.UserID = in.UserID
	}

	replies, err := r.dispatch(ctx, state, in.Event)
	if err != nil {
		slog.Error("dispatch failed",
			"conversation", in.Conversation,
			"flow", state.Flow,
			"error", err)
		return []Message{{Text: r.renderer.Render("common", "failure", nil)}}, nil
	}

	if err := r.sessions.Put(ctx, in.Conversation, state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return r.render(replies), nil
}

func (r *Router) dispatch(ctx context.Context, state *model.SessionState, ev flow.Event) ([]flow.Reply, error) {
	if state.FlowActive() {
		engine, ok := r.wizards[state.Flow]
		if !ok {
			// Unknown flow name persisted by an older version.
			state.ClearFlow()
			return r.mainMenu(), nil
		}
		replies, err := engine.Dispatch(ctx, state, ev)
		if err != nil || len(replies) > 0 || state.FlowActive() {
			return replies, err
		}
		// Wizard recovered from a bad cursor without output.
		return r.mainMenu(), nil
	}

	if state.MenuOpen && ev.Kind == flow.EventAction {
		return r.dispatchMenu(ctx, state, ev.Action)
	}

	return r.dispatchMain(ctx, state, ev)
}

func (r *Router) dispatchMenu(ctx context.Context, state *model.SessionState, action string) ([]flow.Reply, error) {
	switch action {
	case menu.ActionSelectAll:
		menu.SelectAll(state)
		return r.menu.Render(ctx, state)

	case menu.ActionSelectNone:
		menu.SelectNone(state)
		return r.menu.Render(ctx, state)

	case menu.ActionShow:
		state.MenuOpen = false
		return r.wizards[model.FlowInterval].Start(ctx, state)

	case menu.ActionClose:
		state.MenuOpen = false
		return r.mainMenu(), nil
	}

	if symbol, ok := menu.ParseToggleAction(action); ok {
		if value, ok := menu.Toggle(state, symbol); ok {
			slog.Debug("toggled category", "symbol", symbol, "selected", value)
		}
		return r.menu.Render(ctx, state)
	}

	// Unrelated action while the menu is open; re-render it.
	return r.menu.Render(ctx, state)
}

func (r *Router) dispatchMain(ctx context.Context, state *model.SessionState, ev flow.Event) ([]flow.Reply, error) {
	if ev.Kind != flow.EventText {
		return r.unknown(), nil
	}

	switch ev.Text {
	case StartCommand:
		return []flow.Reply{
			flow.NewReply("main", "greeting"),
			flow.NewReply("main", "menu").WithKeyboard(mainKeyboard()),
		}, nil

	case LabelAdd:
		return []flow.Reply{
			flow.NewReply("main", "add").WithKeyboard(addKeyboard()),
		}, nil

	case LabelExpense:
		return r.wizards[model.FlowExpense].Start(ctx, state)

	case LabelIncome:
		return r.wizards[model.FlowIncome].Start(ctx, state)

	case LabelHistory:
		state.MenuOpen = true
		return r.menu.Render(ctx, state)

	case LabelStatistics:
		return r.statistics(ctx, state)

	case LabelBack:
		return r.mainMenu(), nil
	}

	return r.unknown(), nil
}

func (r *Router) mainMenu() []flow.Reply {
	return []flow.Reply{flow.NewReply("main", "menu").WithKeyboard(mainKeyboard())}
}

func (r *Router) unknown() []flow.Reply {
	return []flow.Reply{flow.NewReply("main", "unknown").WithKeyboard(mainKeyboard())}
}

func (r *Router) render(replies []flow.Reply) []Message {
	messages := make([]Message, 0, len(replies))
	for _, reply := range replies {
		messages = append(messages, Message{
			Text:     r.renderer.Render(reply.Section, reply.Key, reply.Data),
			Keyboard: reply.Keyboard,
		})
	}
	return messages
}
