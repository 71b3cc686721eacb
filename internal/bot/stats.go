package bot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/steezy2401/smartexp/internal/flow"
	"github.com/steezy2401/smartexp/internal/model"
)

// statistics renders per-category totals over the session's interval,
// defaulting to the current month when no interval has been picked.
// Expenses count negative so the totals read as net flow per category.
func (r *Router) statistics(ctx context.Context, state *model.SessionState) ([]flow.Reply, error) {
	interval := state.Interval
	if interval == nil {
		now := time.Now()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		interval = &model.Interval{From: start, To: now}
	}

	records, err := r.records.GetRecordsByInterval(ctx, state.UserID, interval.From, interval.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load statistics: %w", err)
	}

	totals := make(map[string]float64)
	for _, rec := range records {
		if state.Selection != nil {
			if selected, ok := state.Selection[rec.Category]; ok && !selected {
				continue
			}
		}
		if rec.Type == model.CategoryTypeExpense {
			totals[rec.Category] -= rec.Sum
		} else {
			totals[rec.Category] += rec.Sum
		}
	}

	rangeData := map[string]string{
		"from": flow.FormatDate(interval.From),
		"to":   flow.FormatDate(interval.To),
	}

	if len(totals) == 0 {
		return []flow.Reply{
			flow.NewReply("statistics", "header").WithData(rangeData),
			flow.NewReply("statistics", "empty"),
		}, nil
	}

	symbols := make([]string, 0, len(totals))
	for symbol := range totals {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	replies := make([]flow.Reply, 0, len(symbols)+1)
	replies = append(replies, flow.NewReply("statistics", "header").WithData(rangeData))
	for _, symbol := range symbols {
		replies = append(replies, flow.NewReply("statistics", "entry").WithData(map[string]string{
			"category": symbol,
			"sum":      flow.FormatSum(totals[symbol]),
		}))
	}
	return replies, nil
}
