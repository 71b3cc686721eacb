package bot

import "github.com/steezy2401/smartexp/internal/flow"

// Main-menu button labels. Presses of reply-keyboard buttons arrive as
// plain text, so routing matches on these literals.
const (
	LabelAdd        = "➕ Добавить"
	LabelHistory    = "🗂 История"
	LabelStatistics = "📊 Статистика"
	LabelExpense    = "📉 Расход"
	LabelIncome     = "📈 Доход"
	LabelBack       = "🔙 Назад"

	// StartCommand greets the user and shows the main menu.
	StartCommand = "/start"
)

// mainKeyboard is the top-level menu.
func mainKeyboard() *flow.Keyboard {
	return &flow.Keyboard{Rows: [][]flow.Button{
		{{Label: LabelAdd}},
		{{Label: LabelHistory}, {Label: LabelStatistics}},
	}}
}

// addKeyboard chooses between expense and income entry.
func addKeyboard() *flow.Keyboard {
	return &flow.Keyboard{Rows: [][]flow.Button{
		{{Label: LabelExpense}, {Label: LabelIncome}},
		{{Label: LabelBack}},
	}}
}
