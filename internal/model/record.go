package model

import "time"

// Record is a single persisted expense or income entry.
type Record struct {
	Date        time.Time
	CreatedAt   time.Time
	ID          string
	Category    string
	Description string
	Type        CategoryType
	Sum         float64
	UserID      int64
}

// Draft is the record under construction by a wizard. Fields are filled
// one per step; the draft lives in session state until the final step
// converts it into a Record.
type Draft struct {
	Date        time.Time
	Category    string
	Description string
	Type        CategoryType
	Sum         float64
	UserID      int64
}

// Record converts a completed draft into a persistable record. The ID is
// assigned by the caller.
func (d Draft) Record(id string) Record {
	return Record{
		ID:          id,
		Date:        d.Date,
		Category:    d.Category,
		Description: d.Description,
		Type:        d.Type,
		Sum:         d.Sum,
		UserID:      d.UserID,
	}
}
