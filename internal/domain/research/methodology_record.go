package research

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MethodologyRecord stores a project's experimental/survey design. One record
// per project; re-submission overwrites, never versions.
type MethodologyRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"project_id"`

	MethodType string `gorm:"column:method_type;not null" json:"method_type"`
	MethodName string `gorm:"column:method_name" json:"method_name"`
	Reasoning  string `gorm:"column:reasoning;type:text" json:"reasoning"`

	IndependentVariables datatypes.JSONSlice[string] `gorm:"type:jsonb;column:independent_variables" json:"independent_variables"`
	DependentVariables   datatypes.JSONSlice[string] `gorm:"type:jsonb;column:dependent_variables" json:"dependent_variables"`
	ControlVariables     datatypes.JSONSlice[string] `gorm:"type:jsonb;column:control_variables" json:"control_variables"`

	ParticipantCriteria string `gorm:"column:participant_criteria;type:text" json:"participant_criteria"`
	EstimatedSampleSize int    `gorm:"column:estimated_sample_size" json:"estimated_sample_size"`
	RecruitmentStrategy string `gorm:"column:recruitment_strategy;type:text" json:"recruitment_strategy"`
	ProcedureDraft      string `gorm:"column:procedure_draft;type:text" json:"procedure_draft"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (MethodologyRecord) TableName() string { return "methodology_record" }
