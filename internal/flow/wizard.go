package flow

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/steezy2401/smartexp/internal/common"
	"github.com/steezy2401/smartexp/internal/model"
	"github.com/steezy2401/smartexp/internal/service"
)

// Step indices of the entry wizards. The category step jumps straight
// to stepDate when the symbol is already registered, skipping the
// proposal step.
const (
	stepSum = iota
	stepCategory
	stepProposal
	stepDate
	stepDescription
)

// maxDescriptionLen bounds free-text descriptions.
const maxDescriptionLen = 100

// wizard carries the shared dependencies and parameterization of one
// entry wizard (expense or income).
type wizard struct {
	registry service.Registry
	records  service.Records
	section  string
	ctype    model.CategoryType
}

// NewEntryWizard builds the five-step guided-input wizard for the given
// category type. The section parameter selects the message catalog
// section (expense or income).
func NewEntryWizard(name model.FlowName, section string, ctype model.CategoryType, registry service.Registry, records service.Records) *Engine {
	w := &wizard{
		registry: registry,
		records:  records,
		section:  section,
		ctype:    ctype,
	}

	entry := func(_ context.Context, state *model.SessionState) ([]Reply, error) {
		state.Draft = model.Draft{UserID: state.UserID, Type: ctype}
		state.Proposal = ""
		return []Reply{
			NewReply(section, "wizardStart").WithKeyboard(&Keyboard{Remove: true}),
		}, nil
	}

	return NewEngine(name, entry,
		&sumStep{w},
		&categoryStep{w},
		&proposalStep{w},
		&dateStep{w},
		&descriptionStep{w},
	)
}

// reprompt is the shared fallback for events a step does not handle:
// re-emit the step's prompt without touching any state.
func reprompt(ctx context.Context, step Step, state *model.SessionState) (Result, []Reply, error) {
	replies, err := step.Enter(ctx, state)
	if err != nil {
		return Result{}, nil, err
	}
	return Reject(), replies, nil
}

// sumStep reads the numeric amount.
type sumStep struct {
	w *wizard
}

func (s *sumStep) Enter(_ context.Context, _ *model.SessionState) ([]Reply, error) {
	return []Reply{NewReply(s.w.section, "sum")}, nil
}

func (s *sumStep) Handle(ctx context.Context, state *model.SessionState, ev Event) (Result, []Reply, error) {
	if ev.Kind != EventText {
		return reprompt(ctx, s, state)
	}

	normalized := strings.ReplaceAll(strings.TrimSpace(ev.Text), ",", ".")
	sum, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return Reject(), []Reply{
			NewReply(s.w.section, "sum_error"),
			NewReply(s.w.section, "sum"),
		}, nil
	}

	state.Draft.Sum = math.Round(sum*100) / 100
	return Advance(), nil, nil
}

// categoryStep reads the category symbol. A known symbol skips the
// proposal step; an unknown one opens the confirmation sub-flow.
type categoryStep struct {
	w *wizard
}

func (s *categoryStep) Enter(ctx context.Context, state *model.SessionState) ([]Reply, error) {
	categories, err := s.w.registry.GetCategoriesForUser(ctx, state.UserID, s.w.ctype)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	symbols := make([]string, 0, len(categories))
	for _, cat := range categories {
		symbols = append(symbols, cat.Symbol)
	}

	if kb := categoryKeyboard(symbols); kb != nil {
		return []Reply{NewReply(s.w.section, "category").WithKeyboard(kb)}, nil
	}
	return []Reply{
		NewReply(s.w.section, "no_category"),
		NewReply(s.w.section, "category"),
	}, nil
}

func (s *categoryStep) Handle(ctx context.Context, state *model.SessionState, ev Event) (Result, []Reply, error) {
	if ev.Kind != EventText {
		return reprompt(ctx, s, state)
	}

	symbol := strings.TrimSpace(ev.Text)
	if !ValidSymbol(symbol) {
		return Reject(), []Reply{
			NewReply(s.w.section, "category_error"),
			NewReply(s.w.section, "category"),
		}, nil
	}

	existing, err := s.w.registry.GetCategoryBySymbol(ctx, state.UserID, symbol, s.w.ctype)
	if err != nil {
		return Result{}, nil, fmt.Errorf("failed to look up category: %w", err)
	}

	if existing == nil {
		state.Proposal = symbol
		return Advance(), nil, nil
	}

	state.Draft.Category = symbol
	return JumpTo(stepDate), nil, nil
}

// proposalStep confirms creation of a not-yet-registered category. Its
// only two outcomes are resume forward (confirm) and return to the
// category step (reject).
type proposalStep struct {
	w *wizard
}

func (s *proposalStep) Enter(_ context.Context, _ *model.SessionState) ([]Reply, error) {
	return []Reply{
		NewReply(s.w.section, "category_missing").WithKeyboard(&Keyboard{Remove: true}),
		NewReply(s.w.section, "category_confirm").WithKeyboard(proposalKeyboard()),
	}, nil
}

func (s *proposalStep) Handle(ctx context.Context, state *model.SessionState, ev Event) (Result, []Reply, error) {
	if ev.Kind != EventAction {
		return reprompt(ctx, s, state)
	}

	switch ev.Action {
	case ActionConfirmCategory:
		symbol := state.Proposal
		if _, err := s.w.registry.CreateCategory(ctx, symbol, s.w.ctype, state.UserID); err != nil {
			// Someone registered the symbol since the lookup miss; the
			// existing category serves just as well.
			if !errors.Is(err, common.ErrDuplicateEntry) {
				return Result{}, nil, fmt.Errorf("failed to create category: %w", err)
			}
		}
		state.Proposal = ""
		state.Draft.Category = symbol
		return Advance(), []Reply{
			NewReply(s.w.section, "category_add").WithData(map[string]string{"category": symbol}),
		}, nil

	case ActionRejectCategory:
		symbol := state.Proposal
		state.Proposal = ""
		return Back(), []Reply{
			NewReply(s.w.section, "category_notAdd").WithData(map[string]string{"category": symbol}),
		}, nil

	default:
		return reprompt(ctx, s, state)
	}
}

// dateStep reads the record date.
type dateStep struct {
	w *wizard
}

func (s *dateStep) Enter(_ context.Context, _ *model.SessionState) ([]Reply, error) {
	return []Reply{NewReply(s.w.section, "date").WithKeyboard(dateKeyboard())}, nil
}

func (s *dateStep) Handle(ctx context.Context, state *model.SessionState, ev Event) (Result, []Reply, error) {
	if ev.Kind != EventText {
		return reprompt(ctx, s, state)
	}

	date, ok := ParseDate(ev.Text, timeNow())
	if !ok {
		return Reject(), []Reply{
			NewReply(s.w.section, "date_error"),
			NewReply(s.w.section, "date").WithKeyboard(dateKeyboard()),
		}, nil
	}

	state.Draft.Date = date
	return Advance(), nil, nil
}

// descriptionStep reads the description, persists the completed record
// and ends the wizard with a summary.
type descriptionStep struct {
	w *wizard
}

func (s *descriptionStep) Enter(_ context.Context, _ *model.SessionState) ([]Reply, error) {
	return []Reply{NewReply(s.w.section, "description").WithKeyboard(descriptionKeyboard())}, nil
}

func (s *descriptionStep) Handle(ctx context.Context, state *model.SessionState, ev Event) (Result, []Reply, error) {
	if ev.Kind != EventText {
		return reprompt(ctx, s, state)
	}

	description := strings.TrimSpace(ev.Text)
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return Reject(), []Reply{
			NewReply(s.w.section, "description_error"),
			NewReply(s.w.section, "description").WithKeyboard(descriptionKeyboard()),
		}, nil
	}

	if description == LabelNoDescription {
		description = NoDescriptionSentinel
	}
	state.Draft.Description = description

	record := state.Draft.Record(uuid.NewString())
	if err := s.w.records.CreateRecord(ctx, record); err != nil {
		return Result{}, nil, fmt.Errorf("failed to save record: %w", err)
	}

	summary := NewReply(s.w.section, "wizardEnd").WithData(map[string]string{
		"sum":         FormatSum(record.Sum),
		"category":    record.Category,
		"date":        FormatDate(record.Date),
		"description": record.Description,
	})
	return Terminate(), []Reply{summary}, nil
}

// FormatSum renders an amount with exactly two decimal places.
func FormatSum(sum float64) string {
	return strconv.FormatFloat(sum, 'f', 2, 64)
}
