package flow

// Button labels shared across wizards. These mirror the reply-keyboard
// captions users tap; their presses arrive back as plain text.
const (
	LabelToday         = "Сегодня"
	LabelNoDescription = "Без описания"
	LabelYes           = "Да"
	LabelNo            = "Нет"
)

// Action identifiers for the category-proposal inline keyboard.
const (
	ActionConfirmCategory = "confirmCategory"
	ActionRejectCategory  = "rejectCategory"
)

// NoDescriptionSentinel is the stored description for entries the user
// declined to describe.
const NoDescriptionSentinel = "-"

// categoryColumns is the per-row width of generated category keyboards.
const categoryColumns = 5

// dateKeyboard offers the "today" shortcut.
func dateKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{{{Label: LabelToday}}}}
}

// descriptionKeyboard offers the "no description" shortcut.
func descriptionKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{{{Label: LabelNoDescription}}}}
}

// proposalKeyboard is the inline confirm/reject pair for new-category
// proposals.
func proposalKeyboard() *Keyboard {
	return &Keyboard{
		Inline: true,
		Rows: [][]Button{{
			{Label: LabelYes, Action: ActionConfirmCategory},
			{Label: LabelNo, Action: ActionRejectCategory},
		}},
	}
}

// categoryKeyboard lays out category symbols in a grid, or nil when the
// user has no categories yet.
func categoryKeyboard(symbols []string) *Keyboard {
	if len(symbols) == 0 {
		return nil
	}

	kb := &Keyboard{}
	for start := 0; start < len(symbols); start += categoryColumns {
		end := start + categoryColumns
		if end > len(symbols) {
			end = len(symbols)
		}
		row := make([]Button, 0, end-start)
		for _, symbol := range symbols[start:end] {
			row = append(row, Button{Label: symbol})
		}
		kb.Rows = append(kb.Rows, row)
	}
	return kb
}
