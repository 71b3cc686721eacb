package flow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/steezy2401/smartexp/internal/model"
)

// Step is one unit of a wizard. Enter runs the step's entry action and
// emits its prompt; Handle validates one inbound event and decides the
// next cursor position. Steps read and mutate only the session state
// passed to them.
type Step interface {
	Enter(ctx context.Context, state *model.SessionState) ([]Reply, error)
	Handle(ctx context.Context, state *model.SessionState, ev Event) (Result, []Reply, error)
}

// EntryFunc runs once when a wizard starts, before step 0's entry
// action. Wizards use it to reset the draft and emit their banner.
type EntryFunc func(ctx context.Context, state *model.SessionState) ([]Reply, error)

// Engine drives an ordered list of steps for one wizard. The engine
// itself is stateless across conversations; the cursor lives in the
// session state handed to each call.
type Engine struct {
	entry EntryFunc
	name  model.FlowName
	steps []Step
}

// NewEngine creates an engine for the named wizard.
func NewEngine(name model.FlowName, entry EntryFunc, steps ...Step) *Engine {
	if len(steps) == 0 {
		panic("engine requires at least one step")
	}
	return &Engine{name: name, entry: entry, steps: steps}
}

// Name returns the wizard's flow name.
func (e *Engine) Name() model.FlowName {
	return e.name
}

// Start activates the wizard: runs the wizard entry action, resets the
// cursor to 0 and executes step 0's entry action.
func (e *Engine) Start(ctx context.Context, state *model.SessionState) ([]Reply, error) {
	state.Flow = e.name
	state.Cursor = 0

	var replies []Reply
	if e.entry != nil {
		entryReplies, err := e.entry(ctx, state)
		if err != nil {
			return nil, fmt.Errorf("wizard %s entry failed: %w", e.name, err)
		}
		replies = append(replies, entryReplies...)
	}

	stepReplies, err := e.steps[0].Enter(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("wizard %s step 0 entry failed: %w", e.name, err)
	}
	return append(replies, stepReplies...), nil
}

// Dispatch routes one inbound event to the step at the current cursor
// and applies the resulting transition. On error the cursor is left
// unchanged so the conversation stays on its current step.
func (e *Engine) Dispatch(ctx context.Context, state *model.SessionState, ev Event) ([]Reply, error) {
	cursor := state.Cursor
	if cursor < 0 || cursor >= len(e.steps) {
		// Corrupted cursor; abandon the wizard rather than guess. The
		// caller persists the cleared state and falls back to its menu.
		slog.Error("wizard cursor out of range", "flow", e.name, "cursor", cursor)
		state.ClearFlow()
		return nil, nil
	}

	result, replies, err := e.steps[cursor].Handle(ctx, state, ev)
	if err != nil {
		return nil, err
	}

	switch result.kind {
	case resultReject:
		return replies, nil

	case resultAdvance:
		return e.moveTo(ctx, state, cursor+1, replies)

	case resultJump:
		return e.moveTo(ctx, state, result.target, replies)

	case resultBack:
		if cursor == 0 {
			return replies, nil
		}
		return e.moveTo(ctx, state, cursor-1, replies)

	case resultTerminate:
		state.ClearFlow()
		return replies, nil

	default:
		return nil, fmt.Errorf("wizard %s: unknown result kind %d", e.name, result.kind)
	}
}

// moveTo sets the cursor and runs the target step's entry action.
// Moving past the last step terminates the wizard.
func (e *Engine) moveTo(ctx context.Context, state *model.SessionState, target int, replies []Reply) ([]Reply, error) {
	if target >= len(e.steps) {
		state.ClearFlow()
		return replies, nil
	}
	if target < 0 {
		return nil, fmt.Errorf("wizard %s: transition to negative step %d", e.name, target)
	}

	state.Cursor = target
	entryReplies, err := e.steps[target].Enter(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("wizard %s step %d entry failed: %w", e.name, target, err)
	}
	return append(replies, entryReplies...), nil
}
