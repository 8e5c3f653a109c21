package service

import (
	"context"
	"time"

	"github.com/sanjay123-Ad/AI-Backend/internal/constant"
	"github.com/sanjay123-Ad/AI-Backend/internal/dto"
	"github.com/sanjay123-Ad/AI-Backend/internal/entity"
	"github.com/sanjay123-Ad/AI-Backend/internal/pkg/logger"
	"github.com/sanjay123-Ad/AI-Backend/internal/repository/specification"
	"github.com/sanjay123-Ad/AI-Backend/internal/repository/unitofwork"
	"github.com/sanjay123-Ad/AI-Backend/pkg/chat/history"
	"github.com/sanjay123-Ad/AI-Backend/pkg/chat/markup"
	"github.com/sanjay123-Ad/AI-Backend/pkg/chat/transcript"
	"github.com/sanjay123-Ad/AI-Backend/pkg/chat/window"
	"github.com/sanjay123-Ad/AI-Backend/pkg/events"
	"github.com/sanjay123-Ad/AI-Backend/pkg/llm"

	"github.com/google/uuid"
)

const (
	operationQuery      = "query"
	operationRegenerate = "regenerate"
)

// IChatService defines the conversational session orchestrator.
type IChatService interface {
	StartSession(ctx context.Context, userId uuid.UUID) (*dto.StartSessionResponse, error)
	SendQuery(ctx context.Context, userId uuid.UUID, request *dto.QueryRequest) (*dto.QueryResponse, error)
	Regenerate(ctx context.Context, userId uuid.UUID, request *dto.RegenerateRequest) (*dto.QueryResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.HistoryPairResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionSummaryResponse, error)
	RenameSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, title string) error
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
}

// chatService composes window building, provider dispatch, formatting,
// transcript mutation and persistence per request.
type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	providers  llm.Selector
	window     *window.Builder
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	providers llm.Selector,
	publisher IPublisherService,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		providers:  providers,
		window:     window.NewBuilder(constant.ChatSystemPromptV1),
		publisher:  publisher,
		logger:     sysLogger,
	}
}

// StartSession creates a fresh session: no turns, no title yet.
func (cs *chatService) StartSession(ctx context.Context, userId uuid.UUID) (*dto.StartSessionResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Turns:     []entity.ChatTurn{},
		CreatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, &chatSession); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.StartSessionResponse{Id: chatSession.Id}, nil
}

// SendQuery answers a fresh question and appends the exchange.
func (cs *chatService) SendQuery(ctx context.Context, userId uuid.UUID, request *dto.QueryRequest) (*dto.QueryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := cs.verifySession(ctx, uow, userId, request.ChatSessionId)
	if err != nil {
		return nil, err
	}

	kind := llm.ParseKind(request.Provider)
	msgs := cs.window.ForQuery(chatSession.Turns, request.Question)

	started := time.Now()
	raw, err := cs.providers.Get(kind).Complete(ctx, request.Model, msgs)
	if err != nil {
		cs.logger.Error("chat", "completion failed", map[string]interface{}{
			"session_id": chatSession.Id.String(),
			"provider":   string(kind),
			"model":      request.Model,
			"error":      err.Error(),
		})
		return nil, err
	}

	answer := markup.Render(raw)
	transcript.AppendExchange(chatSession, request.Question, answer, time.Now())

	if err := cs.saveSession(ctx, uow, chatSession); err != nil {
		return nil, err
	}

	cs.emitCompletion(ctx, chatSession, kind, request.Model, operationQuery, started)

	return &dto.QueryResponse{
		ChatSessionId: chatSession.Id,
		Title:         chatSession.Title,
		Answer:        answer,
	}, nil
}

// Regenerate re-answers the most recent question without adding a new one.
// The superseded answer stays in the transcript.
func (cs *chatService) Regenerate(ctx context.Context, userId uuid.UUID, request *dto.RegenerateRequest) (*dto.QueryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := cs.verifySession(ctx, uow, userId, request.ChatSessionId)
	if err != nil {
		return nil, err
	}

	// Both checks run before any provider work.
	if len(chatSession.Turns) == 0 {
		return nil, ErrEmptyHistory
	}
	if _, ok := transcript.LastQuestion(chatSession.Turns); !ok {
		return nil, ErrEmptyHistory
	}

	kind := llm.ParseKind(request.Provider)
	msgs := cs.window.ForRegenerate(chatSession.Turns)

	started := time.Now()
	raw, err := cs.providers.Get(kind).Complete(ctx, request.Model, msgs)
	if err != nil {
		cs.logger.Error("chat", "regenerate completion failed", map[string]interface{}{
			"session_id": chatSession.Id.String(),
			"provider":   string(kind),
			"model":      request.Model,
			"error":      err.Error(),
		})
		return nil, err
	}

	answer := markup.Render(raw)
	transcript.AppendAnswer(chatSession, answer, time.Now())

	if err := cs.saveSession(ctx, uow, chatSession); err != nil {
		return nil, err
	}

	cs.emitCompletion(ctx, chatSession, kind, request.Model, operationRegenerate, started)

	return &dto.QueryResponse{
		ChatSessionId: chatSession.Id,
		Title:         chatSession.Title,
		Answer:        answer,
	}, nil
}

// GetChatHistory projects the transcript into Q&A pairs, newest first. An
// absent or foreign session yields an empty list, not an error.
func (cs *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.HistoryPairResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if chatSession == nil {
		return []*dto.HistoryPairResponse{}, nil
	}

	pairs := history.Project(chatSession.Turns)
	resp := make([]*dto.HistoryPairResponse, 0, len(pairs))
	for _, p := range pairs {
		resp = append(resp, &dto.HistoryPairResponse{
			Question: p.Question,
			Answer:   p.Answer,
		})
	}
	return resp, nil
}

// GetAllSessions lists the caller's sessions, most recently updated first.
func (cs *chatService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionSummaryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	response := make([]*dto.SessionSummaryResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		response = append(response, &dto.SessionSummaryResponse{
			Id:        s.Id,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	return response, nil
}

// RenameSession sets an explicit title, replacing any derived one.
func (cs *chatService) RenameSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, title string) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := cs.verifySession(ctx, uow, userId, sessionId)
	if err != nil {
		return err
	}

	now := time.Now()
	chatSession.Title = title
	chatSession.UpdatedAt = &now

	return cs.saveSession(ctx, uow, chatSession)
}

// DeleteSession is idempotent: deleting an absent or foreign session is a
// no-op, not an error.
func (cs *chatService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	chatSession, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if chatSession == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Delete(ctx, chatSession.Id); err != nil {
		return err
	}

	return uow.Commit()
}

// verifySession loads a session scoped to its owner. A miss means "not
// found or not yours" and the caller cannot tell which.
func (cs *chatService) verifySession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	chatSession, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if chatSession == nil {
		return nil, ErrSessionNotFound
	}
	return chatSession, nil
}

// saveSession writes the whole session document back in one transaction.
func (cs *chatService) saveSession(ctx context.Context, uow unitofwork.UnitOfWork, chatSession *entity.ChatSession) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Update(ctx, chatSession); err != nil {
		return err
	}

	return uow.Commit()
}

// emitCompletion publishes the audit event; a publish failure only logs.
func (cs *chatService) emitCompletion(ctx context.Context, chatSession *entity.ChatSession, kind llm.Kind, model, operation string, started time.Time) {
	if cs.publisher == nil {
		return
	}
	event := &events.CompletionRecorded{
		SessionId:  chatSession.Id,
		UserId:     chatSession.UserId,
		Provider:   string(kind),
		Model:      model,
		Operation:  operation,
		DurationMs: time.Since(started).Milliseconds(),
		OccurredAt: time.Now(),
	}
	if err := cs.publisher.PublishCompletion(ctx, event); err != nil {
		cs.logger.Warn("chat", "failed to publish completion event", map[string]interface{}{
			"session_id": chatSession.Id.String(),
			"error":      err.Error(),
		})
	}
}
