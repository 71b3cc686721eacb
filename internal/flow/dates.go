package flow

import (
	"strings"
	"time"
)

// timeNow is swapped out in tests that need a fixed clock.
var timeNow = time.Now

// todayWords are the literal inputs meaning "the current date".
var todayWords = map[string]bool{
	"сегодня": true,
	"today":   true,
}

// dateLayouts are tried in order when parsing free-text dates.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2.1.2006",
	"02/01/2006",
	"2/1/2006",
	"02.01.06",
	"02.01", // current year assumed
	"2.1",
}

// ParseDate parses free-text date input. The "today" keyword (Russian
// or English, any case) resolves to the current date. The returned time
// is truncated to midnight local time.
func ParseDate(text string, now time.Time) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, false
	}

	if todayWords[strings.ToLower(trimmed)] {
		return midnight(now), true
	}

	for _, layout := range dateLayouts {
		parsed, err := time.ParseInLocation(layout, trimmed, now.Location())
		if err != nil {
			continue
		}
		if parsed.Year() == 0 {
			parsed = parsed.AddDate(now.Year(), 0, 0)
		}
		return midnight(parsed), true
	}
	return time.Time{}, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDate renders a date the way summaries show it.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
