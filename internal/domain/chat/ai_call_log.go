package chat

import (
	"time"

	"github.com/google/uuid"
)

// AICallLog records every outbound LLM call for audit and cost tracking.
type AICallLog struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Kind       string `gorm:"column:kind;not null;index" json:"kind"` // "chat" | "outline"
	Model      string `gorm:"column:model;not null" json:"model"`
	DurationMS int64  `gorm:"column:duration_ms" json:"duration_ms"`
	Success    bool   `gorm:"column:success;not null;default:true" json:"success"`
	ErrorText  string `gorm:"column:error_text" json:"error_text,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (AICallLog) TableName() string { return "ai_call_log" }
