package flow

import (
	"context"
	"fmt"

	"github.com/steezy2401/smartexp/internal/model"
	"github.com/steezy2401/smartexp/internal/service"
)

// NewIntervalWizard builds the two-step history time-interval wizard:
// interval start, then interval end. Completion stores the interval in
// the session and emits the history listing for categories currently
// selected for display.
func NewIntervalWizard(records service.Records) *Engine {
	entry := func(_ context.Context, state *model.SessionState) ([]Reply, error) {
		state.Interval = nil
		return []Reply{
			NewReply("interval", "wizardStart").WithKeyboard(&Keyboard{Remove: true}),
		}, nil
	}

	return NewEngine(model.FlowInterval, entry,
		&intervalFromStep{},
		&intervalToStep{records: records},
	)
}

// intervalFromStep reads the interval's start date.
type intervalFromStep struct{}

func (s *intervalFromStep) Enter(_ context.Context, _ *model.SessionState) ([]Reply, error) {
	return []Reply{NewReply("interval", "from").WithKeyboard(dateKeyboard())}, nil
}

func (s *intervalFromStep) Handle(ctx context.Context, state *model.SessionState, ev Event) (Result, []Reply, error) {
	if ev.Kind != EventText {
		return reprompt(ctx, s, state)
	}

	date, ok := ParseDate(ev.Text, timeNow())
	if !ok {
		return Reject(), []Reply{
			NewReply("interval", "date_error"),
			NewReply("interval", "from").WithKeyboard(dateKeyboard()),
		}, nil
	}

	state.Interval = &model.Interval{From: date}
	return Advance(), nil, nil
}

// intervalToStep reads the end date, rejects an end before the start,
// and terminates with the filtered history listing.
type intervalToStep struct {
	records service.Records
}

func (s *intervalToStep) Enter(_ context.Context, _ *model.SessionState) ([]Reply, error) {
	return []Reply{NewReply("interval", "to").WithKeyboard(dateKeyboard())}, nil
}

func (s *intervalToStep) Handle(ctx context.Context, state *model.SessionState, ev Event) (Result, []Reply, error) {
	if ev.Kind != EventText {
		return reprompt(ctx, s, state)
	}

	date, ok := ParseDate(ev.Text, timeNow())
	if !ok {
		return Reject(), []Reply{
			NewReply("interval", "date_error"),
			NewReply("interval", "to").WithKeyboard(dateKeyboard()),
		}, nil
	}

	if state.Interval == nil {
		// Start date lost; restart from the beginning of the wizard.
		return JumpTo(0), nil, nil
	}
	if date.Before(state.Interval.From) {
		return Reject(), []Reply{
			NewReply("interval", "order_error"),
			NewReply("interval", "to").WithKeyboard(dateKeyboard()),
		}, nil
	}

	state.Interval.To = date

	replies, err := HistoryListing(ctx, s.records, state)
	if err != nil {
		return Result{}, nil, err
	}
	return Terminate(), replies, nil
}

// HistoryListing renders the user's records inside the session's
// interval, restricted to categories whose selection flag is true. A
// nil selection map means no filtering has been configured and every
// category shows.
func HistoryListing(ctx context.Context, records service.Records, state *model.SessionState) ([]Reply, error) {
	interval := state.Interval
	if interval == nil {
		return nil, fmt.Errorf("no interval selected")
	}

	all, err := records.GetRecordsByInterval(ctx, state.UserID, interval.From, interval.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	rangeData := map[string]string{
		"from": FormatDate(interval.From),
		"to":   FormatDate(interval.To),
	}

	var shown []model.Record
	for _, rec := range all {
		if state.Selection != nil {
			if selected, ok := state.Selection[rec.Category]; ok && !selected {
				continue
			}
		}
		shown = append(shown, rec)
	}

	if len(shown) == 0 {
		return []Reply{
			NewReply("history", "header").WithData(rangeData),
			NewReply("history", "empty"),
		}, nil
	}

	replies := make([]Reply, 0, len(shown)+1)
	replies = append(replies, NewReply("history", "header").WithData(rangeData))
	for _, rec := range shown {
		replies = append(replies, NewReply("history", "entry").WithData(map[string]string{
			"date":        FormatDate(rec.Date),
			"category":    rec.Category,
			"sum":         FormatSum(rec.Sum),
			"description": rec.Description,
		}))
	}
	return replies, nil
}
