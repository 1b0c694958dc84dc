package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	researchrepo "github.com/stembot/stembot-backend/internal/data/repos/research"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
)

type AddSourceInput struct {
	Title            string   `json:"title"`
	Authors          []string `json:"authors"`
	Year             int      `json:"year"`
	DOI              string   `json:"doi"`
	URL              string   `json:"url"`
	CredibilityNotes string   `json:"credibility_notes"`
	Summary          string   `json:"summary"`
}

type UpdateSourceInput struct {
	Title            *string   `json:"title"`
	Authors          *[]string `json:"authors"`
	Year             *int      `json:"year"`
	DOI              *string   `json:"doi"`
	URL              *string   `json:"url"`
	Status           *string   `json:"status"`
	CredibilityNotes *string   `json:"credibility_notes"`
	Summary          *string   `json:"summary"`
}

type LiteratureService interface {
	AddSource(ctx context.Context, userID, projectID uuid.UUID, input AddSourceInput) (*types.LiteratureSource, error)
	ListSources(ctx context.Context, userID, projectID uuid.UUID) ([]*types.LiteratureSource, error)
	UpdateSource(ctx context.Context, userID, projectID, sourceID uuid.UUID, input UpdateSourceInput) (*types.LiteratureSource, error)
	DeleteSource(ctx context.Context, userID, projectID, sourceID uuid.UUID) error
}

type literatureService struct {
	db       *gorm.DB
	log      *logger.Logger
	projects ProjectService
	sources  researchrepo.LiteratureRepo
}

func NewLiteratureService(
	db *gorm.DB,
	baseLog *logger.Logger,
	projects ProjectService,
	sources researchrepo.LiteratureRepo,
) LiteratureService {
	return &literatureService{
		db:       db,
		log:      baseLog.With("service", "LiteratureService"),
		projects: projects,
		sources:  sources,
	}
}

var validSourceStatuses = map[string]bool{
	types.SourceStatusToRead:  true,
	types.SourceStatusReading: true,
	types.SourceStatusRead:    true,
}

func (s *literatureService) AddSource(ctx context.Context, userID, projectID uuid.UUID, input AddSourceInput) (*types.LiteratureSource, error) {
	if _, err := s.projects.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ValidationError("source title is required")
	}

	source := &types.LiteratureSource{
		ID:               uuid.New(),
		ProjectID:        projectID,
		Title:            title,
		Authors:          datatypes.JSONSlice[string](input.Authors),
		Year:             input.Year,
		DOI:              strings.TrimSpace(input.DOI),
		URL:              strings.TrimSpace(input.URL),
		Status:           types.SourceStatusToRead,
		CredibilityNotes: input.CredibilityNotes,
		Summary:          input.Summary,
	}
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, cErr := s.sources.Create(ctx, tx, []*types.LiteratureSource{source})
		if cErr != nil {
			return fmt.Errorf("create literature source: %w", cErr)
		}
		source = created[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return source, nil
}

func (s *literatureService) ListSources(ctx context.Context, userID, projectID uuid.UUID) ([]*types.LiteratureSource, error) {
	if _, err := s.projects.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.sources.ListByProjectID(ctx, nil, projectID)
}

// getOwnedSource loads a source and verifies it belongs to the given project.
func (s *literatureService) getOwnedSource(ctx context.Context, userID, projectID, sourceID uuid.UUID) (*types.LiteratureSource, error) {
	if _, err := s.projects.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	found, err := s.sources.GetByIDs(ctx, nil, []uuid.UUID{sourceID})
	if err != nil {
		return nil, fmt.Errorf("load literature source: %w", err)
	}
	if len(found) == 0 || found[0].ProjectID != projectID {
		return nil, NotFoundError("literature source not found")
	}
	return found[0], nil
}

func (s *literatureService) UpdateSource(ctx context.Context, userID, projectID, sourceID uuid.UUID, input UpdateSourceInput) (*types.LiteratureSource, error) {
	source, err := s.getOwnedSource(ctx, userID, projectID, sourceID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ValidationError("source title cannot be empty")
		}
		source.Title = title
	}
	if input.Authors != nil {
		source.Authors = datatypes.JSONSlice[string](*input.Authors)
	}
	if input.Year != nil {
		source.Year = *input.Year
	}
	if input.DOI != nil {
		source.DOI = strings.TrimSpace(*input.DOI)
	}
	if input.URL != nil {
		source.URL = strings.TrimSpace(*input.URL)
	}
	if input.Status != nil {
		if !validSourceStatuses[*input.Status] {
			return nil, ValidationError(fmt.Sprintf("unknown source status %q", *input.Status))
		}
		source.Status = *input.Status
	}
	if input.CredibilityNotes != nil {
		source.CredibilityNotes = *input.CredibilityNotes
	}
	if input.Summary != nil {
		source.Summary = *input.Summary
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.sources.Update(ctx, tx, source)
	}); err != nil {
		return nil, fmt.Errorf("update literature source: %w", err)
	}
	return source, nil
}

func (s *literatureService) DeleteSource(ctx context.Context, userID, projectID, sourceID uuid.UUID) error {
	if _, err := s.getOwnedSource(ctx, userID, projectID, sourceID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.sources.SoftDeleteByIDs(ctx, tx, []uuid.UUID{sourceID})
	})
}
