package billing

import (
	"time"

	"github.com/google/uuid"
)

// UsageCounter tallies metered actions per user per billing month (YYYY-MM).
// Counts never decrease within a period; a new period gets a new row.
type UsageCounter struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usage_counter_user_month,priority:1" json:"user_id"`
	Month  string    `gorm:"column:month;not null;uniqueIndex:idx_usage_counter_user_month,priority:2" json:"month"`

	AIInteractionsCount int `gorm:"column:ai_interactions_count;not null;default:0" json:"ai_interactions_count"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UsageCounter) TableName() string { return "usage_counter" }

// PeriodOf formats t's month as the counter period key.
func PeriodOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}
