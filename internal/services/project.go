package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	researchrepo "github.com/stembot/stembot-backend/internal/data/repos/research"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/methodology"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
)

type CreateProjectInput struct {
	Title            string `json:"title"`
	ResearchQuestion string `json:"research_question"`
	SubjectField     string `json:"subject_field"`
}

type UpdateProjectInput struct {
	Title            *string `json:"title"`
	ResearchQuestion *string `json:"research_question"`
	SubjectField     *string `json:"subject_field"`
	Status           *string `json:"status"`
}

// ProjectWithRecommendation pairs a created project with the rule-based
// methodology recommendation for its research question.
type ProjectWithRecommendation struct {
	Project        *types.Project             `json:"project"`
	Recommendation methodology.Recommendation `json:"recommendation"`
}

type ProjectService interface {
	// CreateProject creates a project after the project-limit guard passes and
	// returns it with an initial methodology recommendation.
	CreateProject(ctx context.Context, userID uuid.UUID, tier string, input CreateProjectInput) (*ProjectWithRecommendation, error)
	GetProject(ctx context.Context, userID, projectID uuid.UUID) (*types.Project, error)
	ListProjects(ctx context.Context, userID uuid.UUID) ([]*types.Project, error)
	UpdateProject(ctx context.Context, userID, projectID uuid.UUID, input UpdateProjectInput) (*types.Project, error)
	DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error
}

type projectService struct {
	db       *gorm.DB
	log      *logger.Logger
	projects researchrepo.ProjectRepo
	usage    UsageService
}

func NewProjectService(
	db *gorm.DB,
	baseLog *logger.Logger,
	projects researchrepo.ProjectRepo,
	usage UsageService,
) ProjectService {
	return &projectService{
		db:       db,
		log:      baseLog.With("service", "ProjectService"),
		projects: projects,
		usage:    usage,
	}
}

var validProjectStatuses = map[string]bool{
	types.ProjectStatusActive:    true,
	types.ProjectStatusPaused:    true,
	types.ProjectStatusCompleted: true,
	types.ProjectStatusArchived:  true,
}

func (s *projectService) CreateProject(ctx context.Context, userID uuid.UUID, tier string, input CreateProjectInput) (*ProjectWithRecommendation, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ValidationError("project title is required")
	}
	question := strings.TrimSpace(input.ResearchQuestion)

	decision, err := s.usage.CheckProjectLimit(ctx, userID, tier)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &QuotaError{Code: decision.Code, Message: decision.Message}
	}

	project := &types.Project{
		ID:               uuid.New(),
		UserID:           userID,
		Title:            title,
		ResearchQuestion: question,
		SubjectField:     strings.TrimSpace(input.SubjectField),
		Status:           types.ProjectStatusActive,
	}
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, cErr := s.projects.Create(ctx, tx, []*types.Project{project})
		if cErr != nil {
			return fmt.Errorf("create project: %w", cErr)
		}
		project = created[0]
		return nil
	}); err != nil {
		return nil, err
	}

	return &ProjectWithRecommendation{
		Project:        project,
		Recommendation: methodology.Recommend(question),
	}, nil
}

// getOwned loads a project and enforces ownership.
func (s *projectService) getOwned(ctx context.Context, userID, projectID uuid.UUID) (*types.Project, error) {
	found, err := s.projects.GetByIDs(ctx, nil, []uuid.UUID{projectID})
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if len(found) == 0 {
		return nil, NotFoundError("project not found")
	}
	project := found[0]
	if project.UserID != userID {
		return nil, errors.Join(ErrForbidden, errors.New("project belongs to another user"))
	}
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, userID, projectID uuid.UUID) (*types.Project, error) {
	return s.getOwned(ctx, userID, projectID)
}

func (s *projectService) ListProjects(ctx context.Context, userID uuid.UUID) ([]*types.Project, error) {
	return s.projects.ListByUserID(ctx, nil, userID)
}

func (s *projectService) UpdateProject(ctx context.Context, userID, projectID uuid.UUID, input UpdateProjectInput) (*types.Project, error) {
	project, err := s.getOwned(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ValidationError("project title cannot be empty")
		}
		project.Title = title
	}
	if input.ResearchQuestion != nil {
		project.ResearchQuestion = strings.TrimSpace(*input.ResearchQuestion)
	}
	if input.SubjectField != nil {
		project.SubjectField = strings.TrimSpace(*input.SubjectField)
	}
	if input.Status != nil {
		if !validProjectStatuses[*input.Status] {
			return nil, ValidationError(fmt.Sprintf("unknown project status %q", *input.Status))
		}
		project.Status = *input.Status
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.projects.Update(ctx, tx, project)
	}); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.getOwned(ctx, userID, projectID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.projects.SoftDeleteByIDs(ctx, tx, []uuid.UUID{projectID})
	})
}
