package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	researchrepo "github.com/stembot/stembot-backend/internal/data/repos/research"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/methodology"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
)

type SaveMethodologyInput struct {
	MethodType           string   `json:"method_type"`
	MethodName           string   `json:"method_name"`
	Reasoning            string   `json:"reasoning"`
	IndependentVariables []string `json:"independent_variables"`
	DependentVariables   []string `json:"dependent_variables"`
	ControlVariables     []string `json:"control_variables"`
	ParticipantCriteria  string   `json:"participant_criteria"`
	EstimatedSampleSize  int      `json:"estimated_sample_size"`
	RecruitmentStrategy  string   `json:"recruitment_strategy"`
	ProcedureDraft       string   `json:"procedure_draft"`
}

// MethodologyResult pairs the stored record with the checker report computed
// for it. The report is never persisted; it is recomputed on every read.
type MethodologyResult struct {
	Record *types.MethodologyRecord `json:"record"`
	Report methodology.IssueReport  `json:"report"`
}

type MethodologyService interface {
	// Recommend classifies the research question and suggests methods plus
	// sample-size guidance. Pure rules, no persistence.
	Recommend(ctx context.Context, userID, projectID uuid.UUID) (*methodology.Recommendation, error)
	// Save overwrites the project's methodology record and returns the fresh
	// checker report. One record per project.
	Save(ctx context.Context, userID, projectID uuid.UUID, input SaveMethodologyInput) (*MethodologyResult, error)
	// Get returns the stored record with a freshly computed report.
	Get(ctx context.Context, userID, projectID uuid.UUID) (*MethodologyResult, error)
	// SampleSizeFeedback returns advisory text for a proposed sample size.
	SampleSizeFeedback(ctx context.Context, n int, methodType string) string
}

type methodologyService struct {
	db       *gorm.DB
	log      *logger.Logger
	projects ProjectService
	records  researchrepo.MethodologyRepo
}

func NewMethodologyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	projects ProjectService,
	records researchrepo.MethodologyRepo,
) MethodologyService {
	return &methodologyService{
		db:       db,
		log:      baseLog.With("service", "MethodologyService"),
		projects: projects,
		records:  records,
	}
}

func (s *methodologyService) Recommend(ctx context.Context, userID, projectID uuid.UUID) (*methodology.Recommendation, error) {
	project, err := s.projects.GetProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(project.ResearchQuestion) == "" {
		return nil, ValidationError("project has no research question to analyze")
	}
	rec := methodology.Recommend(project.ResearchQuestion)
	return &rec, nil
}

func (s *methodologyService) Save(ctx context.Context, userID, projectID uuid.UUID, input SaveMethodologyInput) (*MethodologyResult, error) {
	if _, err := s.projects.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.MethodType) == "" {
		return nil, ValidationError("method_type is required")
	}

	record := &types.MethodologyRecord{
		ProjectID:            projectID,
		MethodType:           strings.TrimSpace(input.MethodType),
		MethodName:           strings.TrimSpace(input.MethodName),
		Reasoning:            input.Reasoning,
		IndependentVariables: datatypes.JSONSlice[string](input.IndependentVariables),
		DependentVariables:   datatypes.JSONSlice[string](input.DependentVariables),
		ControlVariables:     datatypes.JSONSlice[string](input.ControlVariables),
		ParticipantCriteria:  input.ParticipantCriteria,
		EstimatedSampleSize:  input.EstimatedSampleSize,
		RecruitmentStrategy:  input.RecruitmentStrategy,
		ProcedureDraft:       input.ProcedureDraft,
	}

	var saved *types.MethodologyRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var uErr error
		saved, uErr = s.records.Upsert(ctx, tx, record)
		if uErr != nil {
			return fmt.Errorf("upsert methodology: %w", uErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &MethodologyResult{
		Record: saved,
		Report: methodology.CheckMethodology(saved),
	}, nil
}

func (s *methodologyService) Get(ctx context.Context, userID, projectID uuid.UUID) (*MethodologyResult, error) {
	if _, err := s.projects.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	record, err := s.records.GetByProjectID(ctx, nil, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundError("no methodology saved for this project")
	}
	if err != nil {
		return nil, fmt.Errorf("load methodology: %w", err)
	}

	return &MethodologyResult{
		Record: record,
		Report: methodology.CheckMethodology(record),
	}, nil
}

func (s *methodologyService) SampleSizeFeedback(ctx context.Context, n int, methodType string) string {
	return methodology.SampleSizeFeedback(n, methodType)
}
