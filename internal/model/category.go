package model

import "time"

// CategoryType indicates whether a category collects expenses or income.
type CategoryType string

const (
	// CategoryTypeExpense represents categories for expense records.
	CategoryTypeExpense CategoryType = "EXPENSE"
	// CategoryTypeIncome represents categories for income records.
	CategoryTypeIncome CategoryType = "INCOME"
)

// Category is a user-defined spending category identified by a short
// emoji symbol. Symbols are unique per user and type.
type Category struct {
	CreatedAt time.Time
	Symbol    string
	Type      CategoryType
	ID        int64
	UserID    int64
	IsActive  bool
}
