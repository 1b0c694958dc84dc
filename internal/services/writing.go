package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stembot/stembot-backend/internal/clients/openai"
	chatrepo "github.com/stembot/stembot-backend/internal/data/repos/chat"
	researchrepo "github.com/stembot/stembot-backend/internal/data/repos/research"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
)

const outlineSystemPrompt = `You are StemBot, a research-writing mentor.
Produce a paper outline for the student's project: standard scientific
structure (introduction, literature review, methodology, results, discussion,
conclusion) adapted to their research question and method. For each section
give short guidance on what belongs there. Do not write prose for the student.`

// outlineSchema constrains the model output so decoding cannot surprise us.
var outlineSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []string{"title", "sections"},
	"properties": map[string]any{
		"title": map[string]any{"type": "string"},
		"sections": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"required":             []string{"heading", "guidance"},
				"properties": map[string]any{
					"heading":  map[string]any{"type": "string"},
					"guidance": map[string]any{"type": "string"},
				},
			},
		},
	},
}

type WritingService interface {
	// GenerateOutline asks the model for a paper outline and stores it, one
	// outline per project, overwriting any previous generation. Counts as an
	// AI interaction.
	GenerateOutline(ctx context.Context, userID uuid.UUID, tier string, projectID uuid.UUID) (*types.PaperOutline, error)
	GetOutline(ctx context.Context, userID, projectID uuid.UUID) (*types.PaperOutline, error)
	// SaveSectionDraft stores the student's own draft text under a section
	// heading. Purely local, no AI involved.
	SaveSectionDraft(ctx context.Context, userID, projectID uuid.UUID, heading, draft string) (*types.PaperOutline, error)
}

type writingService struct {
	db           *gorm.DB
	log          *logger.Logger
	projects     ProjectService
	outlines     researchrepo.OutlineRepo
	methodologys researchrepo.MethodologyRepo
	callLogs     chatrepo.AICallLogRepo
	usage        UsageService
	ai           openai.Client
}

func NewWritingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	projects ProjectService,
	outlines researchrepo.OutlineRepo,
	methodologyRepo researchrepo.MethodologyRepo,
	callLogs chatrepo.AICallLogRepo,
	usage UsageService,
	ai openai.Client,
) WritingService {
	return &writingService{
		db:           db,
		log:          baseLog.With("service", "WritingService"),
		projects:     projects,
		outlines:     outlines,
		methodologys: methodologyRepo,
		callLogs:     callLogs,
		usage:        usage,
		ai:           ai,
	}
}

func (s *writingService) GenerateOutline(ctx context.Context, userID uuid.UUID, tier string, projectID uuid.UUID) (*types.PaperOutline, error) {
	project, err := s.projects.GetProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(project.ResearchQuestion) == "" {
		return nil, ValidationError("project needs a research question before generating an outline")
	}

	decision, err := s.usage.CheckAIUsage(ctx, userID, tier)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &QuotaError{Code: decision.Code, Message: decision.Message}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Project title: %s\nResearch question: %s\n", project.Title, project.ResearchQuestion)
	if project.SubjectField != "" {
		fmt.Fprintf(&sb, "Subject field: %s\n", project.SubjectField)
	}
	if record, mErr := s.methodologys.GetByProjectID(ctx, nil, projectID); mErr == nil {
		fmt.Fprintf(&sb, "Method: %s", record.MethodType)
		if record.MethodName != "" {
			fmt.Fprintf(&sb, " (%s)", record.MethodName)
		}
		fmt.Fprintf(&sb, "\nEstimated sample size: %d\n", record.EstimatedSampleSize)
	} else if !errors.Is(mErr, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load methodology for outline: %w", mErr)
	}

	started := time.Now()
	raw, aiErr := s.ai.GenerateJSON(ctx, outlineSystemPrompt, sb.String(), "paper_outline", outlineSchema)
	s.logAICall(ctx, userID, started, aiErr)
	if aiErr != nil {
		return nil, fmt.Errorf("generate outline: %w", aiErr)
	}

	outline := &types.PaperOutline{
		ProjectID:   projectID,
		GeneratedBy: s.ai.Model(),
	}
	if title, ok := raw["title"].(string); ok {
		outline.Title = title
	}
	if rawSections, ok := raw["sections"].([]any); ok {
		sections := make([]types.OutlineSection, 0, len(rawSections))
		for _, rs := range rawSections {
			m, ok := rs.(map[string]any)
			if !ok {
				continue
			}
			sec := types.OutlineSection{}
			if h, ok := m["heading"].(string); ok {
				sec.Heading = h
			}
			if g, ok := m["guidance"].(string); ok {
				sec.Guidance = g
			}
			if sec.Heading != "" {
				sections = append(sections, sec)
			}
		}
		outline.Sections = datatypes.JSONSlice[types.OutlineSection](sections)
	}
	if len(outline.Sections) == 0 {
		return nil, fmt.Errorf("model returned an outline with no sections")
	}

	var saved *types.PaperOutline
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var uErr error
		saved, uErr = s.outlines.Upsert(ctx, tx, outline)
		if uErr != nil {
			return fmt.Errorf("save outline: %w", uErr)
		}
		return s.usage.RecordAIInteraction(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *writingService) GetOutline(ctx context.Context, userID, projectID uuid.UUID) (*types.PaperOutline, error) {
	if _, err := s.projects.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	outline, err := s.outlines.GetByProjectID(ctx, nil, projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundError("no outline generated for this project")
	}
	if err != nil {
		return nil, fmt.Errorf("load outline: %w", err)
	}
	return outline, nil
}

func (s *writingService) SaveSectionDraft(ctx context.Context, userID, projectID uuid.UUID, heading, draft string) (*types.PaperOutline, error) {
	heading = strings.TrimSpace(heading)
	if heading == "" {
		return nil, ValidationError("section heading is required")
	}

	outline, err := s.GetOutline(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range outline.Sections {
		if strings.EqualFold(outline.Sections[i].Heading, heading) {
			outline.Sections[i].Draft = draft
			found = true
			break
		}
	}
	if !found {
		return nil, NotFoundError(fmt.Sprintf("outline has no section %q", heading))
	}

	var saved *types.PaperOutline
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var uErr error
		saved, uErr = s.outlines.Upsert(ctx, tx, outline)
		return uErr
	})
	if err != nil {
		return nil, fmt.Errorf("save section draft: %w", err)
	}
	return saved, nil
}

func (s *writingService) logAICall(ctx context.Context, userID uuid.UUID, started time.Time, callErr error) {
	entry := &types.AICallLog{
		ID:         uuid.New(),
		UserID:     userID,
		Kind:       "outline",
		Model:      s.ai.Model(),
		DurationMS: time.Since(started).Milliseconds(),
		Success:    callErr == nil,
	}
	if callErr != nil {
		entry.ErrorText = callErr.Error()
	}
	if _, err := s.callLogs.Create(ctx, nil, []*types.AICallLog{entry}); err != nil {
		s.log.Warn("Failed to write AI call log", "kind", "outline", "error", err.Error())
	}
}
