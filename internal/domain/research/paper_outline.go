package research

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OutlineSection is one generated section of a paper outline. Stored as part
// of the outline's jsonb sections column.
type OutlineSection struct {
	Heading  string `json:"heading"`
	Guidance string `json:"guidance"`
	Draft    string `json:"draft,omitempty"`
}

type PaperOutline struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"project_id"`

	Title    string                              `gorm:"column:title" json:"title"`
	Sections datatypes.JSONSlice[OutlineSection] `gorm:"type:jsonb;column:sections" json:"sections"`

	GeneratedBy string `gorm:"column:generated_by" json:"generated_by"` // model name

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PaperOutline) TableName() string { return "paper_outline" }
