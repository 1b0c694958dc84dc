package research

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SourceStatusToRead  = "to_read"
	SourceStatusReading = "reading"
	SourceStatusRead    = "read"
)

type LiteratureSource struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`

	Title   string                      `gorm:"column:title;not null" json:"title"`
	Authors datatypes.JSONSlice[string] `gorm:"type:jsonb;column:authors" json:"authors"`
	Year    int                         `gorm:"column:year" json:"year"`
	DOI     string                      `gorm:"column:doi;index" json:"doi"`
	URL     string                      `gorm:"column:url" json:"url"`

	Status           string `gorm:"column:status;not null;default:'to_read';index" json:"status"`
	CredibilityNotes string `gorm:"column:credibility_notes;type:text" json:"credibility_notes"`
	Summary          string `gorm:"column:summary;type:text" json:"summary"`

	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LiteratureSource) TableName() string { return "literature_source" }
