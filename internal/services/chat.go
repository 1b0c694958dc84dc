package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stembot/stembot-backend/internal/clients/openai"
	chatrepo "github.com/stembot/stembot-backend/internal/data/repos/chat"
	types "github.com/stembot/stembot-backend/internal/domain"
	"github.com/stembot/stembot-backend/internal/pkg/logger"
)

// mentorSystemPrompt steers the model toward Socratic guidance instead of
// doing the student's work.
const mentorSystemPrompt = `You are StemBot, a research mentor for STEM students.
Guide the student toward sound research practice: ask clarifying questions,
point out methodological risks, and suggest next steps. Do not write their
paper or fabricate citations. Keep answers focused and under 300 words.`

// maxHistoryMessages bounds the context window sent to the model.
const maxHistoryMessages = 20

type SendMessageResult struct {
	UserMessage      *types.ChatMessage `json:"user_message"`
	AssistantMessage *types.ChatMessage `json:"assistant_message"`
	Remaining        int                `json:"remaining"`
	Unlimited        bool               `json:"unlimited"`
}

type ChatService interface {
	CreateThread(ctx context.Context, userID, projectID uuid.UUID, title string) (*types.ChatThread, error)
	ListThreads(ctx context.Context, userID, projectID uuid.UUID, limit int) ([]*types.ChatThread, error)
	ListMessages(ctx context.Context, userID, threadID uuid.UUID, limit int, beforeSeq *int64) ([]*types.ChatMessage, error)
	// SendMessage runs one mentoring turn: quota check, persist the user
	// message, call the model with thread history, persist the reply, and
	// record the interaction against the month counter.
	SendMessage(ctx context.Context, userID uuid.UUID, tier string, threadID uuid.UUID, content string) (*SendMessageResult, error)
	DeleteThread(ctx context.Context, userID, threadID uuid.UUID) error
}

type chatService struct {
	db       *gorm.DB
	log      *logger.Logger
	projects ProjectService
	threads  chatrepo.ThreadRepo
	messages chatrepo.MessageRepo
	callLogs chatrepo.AICallLogRepo
	usage    UsageService
	ai       openai.Client
}

func NewChatService(
	db *gorm.DB,
	baseLog *logger.Logger,
	projects ProjectService,
	threads chatrepo.ThreadRepo,
	messages chatrepo.MessageRepo,
	callLogs chatrepo.AICallLogRepo,
	usage UsageService,
	ai openai.Client,
) ChatService {
	return &chatService{
		db:       db,
		log:      baseLog.With("service", "ChatService"),
		projects: projects,
		threads:  threads,
		messages: messages,
		callLogs: callLogs,
		usage:    usage,
		ai:       ai,
	}
}

func (s *chatService) CreateThread(ctx context.Context, userID, projectID uuid.UUID, title string) (*types.ChatThread, error) {
	if _, err := s.projects.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = "New Chat"
	}

	thread := &types.ChatThread{
		ID:            uuid.New(),
		UserID:        userID,
		ProjectID:     projectID,
		Title:         title,
		Status:        "active",
		LastMessageAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, cErr := s.threads.Create(ctx, tx, []*types.ChatThread{thread})
		if cErr != nil {
			return fmt.Errorf("create thread: %w", cErr)
		}
		thread = created[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *chatService) ListThreads(ctx context.Context, userID, projectID uuid.UUID, limit int) ([]*types.ChatThread, error) {
	if _, err := s.projects.GetProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.threads.ListByProjectID(ctx, nil, projectID, limit)
}

// getOwnedThread loads a thread and enforces ownership.
func (s *chatService) getOwnedThread(ctx context.Context, userID, threadID uuid.UUID) (*types.ChatThread, error) {
	found, err := s.threads.GetByIDs(ctx, nil, []uuid.UUID{threadID})
	if err != nil {
		return nil, fmt.Errorf("load thread: %w", err)
	}
	if len(found) == 0 || found[0].UserID != userID {
		return nil, NotFoundError("thread not found")
	}
	return found[0], nil
}

func (s *chatService) ListMessages(ctx context.Context, userID, threadID uuid.UUID, limit int, beforeSeq *int64) ([]*types.ChatMessage, error) {
	if _, err := s.getOwnedThread(ctx, userID, threadID); err != nil {
		return nil, err
	}
	return s.messages.ListByThreadID(ctx, nil, threadID, limit, beforeSeq)
}

func (s *chatService) SendMessage(ctx context.Context, userID uuid.UUID, tier string, threadID uuid.UUID, content string) (*SendMessageResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ValidationError("message content is required")
	}

	thread, err := s.getOwnedThread(ctx, userID, threadID)
	if err != nil {
		return nil, err
	}

	// Guard before any persistence so a denied request leaves no trace.
	decision, err := s.usage.CheckAIUsage(ctx, userID, tier)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, &QuotaError{Code: decision.Code, Message: decision.Message}
	}

	project, err := s.projects.GetProject(ctx, userID, thread.ProjectID)
	if err != nil {
		return nil, err
	}

	history, err := s.messages.ListByThreadID(ctx, nil, threadID, maxHistoryMessages, nil)
	if err != nil {
		return nil, fmt.Errorf("load thread history: %w", err)
	}

	prompt := make([]openai.Message, 0, len(history)+2)
	system := mentorSystemPrompt
	if q := strings.TrimSpace(project.ResearchQuestion); q != "" {
		system += "\n\nThe student's research question: " + q
	}
	prompt = append(prompt, openai.Message{Role: types.RoleSystem, Content: system})
	for _, m := range history {
		prompt = append(prompt, openai.Message{Role: m.Role, Content: m.Content})
	}
	prompt = append(prompt, openai.Message{Role: types.RoleUser, Content: content})

	started := time.Now()
	reply, aiErr := s.ai.Chat(ctx, prompt)
	s.logAICall(ctx, userID, "chat", started, aiErr)
	if aiErr != nil {
		return nil, fmt.Errorf("ai chat: %w", aiErr)
	}

	result := &SendMessageResult{
		Remaining: decision.Remaining,
		Unlimited: decision.Unlimited,
	}
	if !decision.Unlimited && result.Remaining > 0 {
		result.Remaining--
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, sErr := s.messages.NextSeq(ctx, tx, threadID)
		if sErr != nil {
			return fmt.Errorf("next seq: %w", sErr)
		}

		userMsg := &types.ChatMessage{
			ID:       uuid.New(),
			ThreadID: threadID,
			Role:     types.RoleUser,
			Content:  content,
			Seq:      seq,
		}
		assistantMsg := &types.ChatMessage{
			ID:       uuid.New(),
			ThreadID: threadID,
			Role:     types.RoleAssistant,
			Content:  reply,
			Seq:      seq + 1,
		}
		if _, cErr := s.messages.Create(ctx, tx, []*types.ChatMessage{userMsg, assistantMsg}); cErr != nil {
			return fmt.Errorf("persist messages: %w", cErr)
		}
		if tErr := s.threads.TouchLastMessageAt(ctx, tx, threadID, time.Now()); tErr != nil {
			return fmt.Errorf("touch thread: %w", tErr)
		}
		// Count the interaction in the same transaction as the messages.
		if uErr := s.usage.RecordAIInteraction(ctx, tx, userID); uErr != nil {
			return fmt.Errorf("record interaction: %w", uErr)
		}

		result.UserMessage = userMsg
		result.AssistantMessage = assistantMsg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *chatService) DeleteThread(ctx context.Context, userID, threadID uuid.UUID) error {
	if _, err := s.getOwnedThread(ctx, userID, threadID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.threads.SoftDeleteByIDs(ctx, tx, []uuid.UUID{threadID})
	})
}

// logAICall records the outbound model call. Best effort; a failed audit row
// never fails the user's request.
func (s *chatService) logAICall(ctx context.Context, userID uuid.UUID, kind string, started time.Time, callErr error) {
	entry := &types.AICallLog{
		ID:         uuid.New(),
		UserID:     userID,
		Kind:       kind,
		Model:      s.ai.Model(),
		DurationMS: time.Since(started).Milliseconds(),
		Success:    callErr == nil,
	}
	if callErr != nil {
		entry.ErrorText = callErr.Error()
	}
	if _, err := s.callLogs.Create(ctx, nil, []*types.AICallLog{entry}); err != nil {
		s.log.Warn("Failed to write AI call log", "kind", kind, "error", err.Error())
	}
}
