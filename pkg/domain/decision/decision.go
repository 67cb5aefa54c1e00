package decision

import (
	"time"
)

// Decision is one government decision record from the source table.
type Decision struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	DecisionNumber   string    `json:"decision_number" gorm:"column:decision_number"`
	GovernmentNumber string    `json:"government_number" gorm:"column:government_number"`
	DecisionDate     time.Time `json:"decision_date" gorm:"column:decision_date"`
	Title            string    `json:"title"`
	Summary          string    `json:"summary"`
	Content          string    `json:"content"`
	URL              string    `json:"url"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Decision) TableName() string {
	return "government_decisions"
}

// SearchText is the text a decision is matched against in semantic search:
// the summary when present, otherwise the title.
func (d Decision) SearchText() string {
	if d.Summary != "" {
		return d.Summary
	}
	return d.Title
}
