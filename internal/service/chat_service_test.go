package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sanjay123-Ad/AI-Backend/internal/constant"
	"github.com/sanjay123-Ad/AI-Backend/internal/dto"
	"github.com/sanjay123-Ad/AI-Backend/internal/entity"
	"github.com/sanjay123-Ad/AI-Backend/internal/repository/contract"
	"github.com/sanjay123-Ad/AI-Backend/internal/repository/specification"
	"github.com/sanjay123-Ad/AI-Backend/internal/repository/unitofwork"
	"github.com/sanjay123-Ad/AI-Backend/pkg/events"
	"github.com/sanjay123-Ad/AI-Backend/pkg/llm"

	"github.com/google/uuid"
)

// --- In-memory fakes. The session repo interprets the same specifications
// the GORM implementation turns into WHERE clauses. ---

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.ChatSession
	findErr  error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.ChatSession)}
}

func cloneSession(s *entity.ChatSession) *entity.ChatSession {
	cp := *s
	cp.Turns = append([]entity.ChatTurn(nil), s.Turns...)
	return &cp
}

func matchesSpecs(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Id] = cloneSession(session)
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Id] = cloneSession(session)
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if matchesSpecs(s, specs) {
			return cloneSession(s), nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ChatSession
	for _, s := range r.sessions {
		if matchesSpecs(s, specs) {
			out = append(out, cloneSession(s))
		}
	}
	for _, spec := range specs {
		if ob, ok := spec.(specification.OrderBy); ok && ob.Field == "updated_at" && ob.Desc {
			sort.SliceStable(out, func(i, j int) bool {
				ti, tj := time.Time{}, time.Time{}
				if out[i].UpdatedAt != nil {
					ti = *out[i].UpdatedAt
				}
				if out[j].UpdatedAt != nil {
					tj = *out[j].UpdatedAt
				}
				return ti.After(tj)
			})
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.sessions {
		if matchesSpecs(s, specs) {
			n++
		}
	}
	return n, nil
}

type fakeCompletionLogRepo struct {
	mu        sync.Mutex
	logs      []entity.CompletionLog
	createErr error
}

func (r *fakeCompletionLogRepo) Create(ctx context.Context, log *entity.CompletionLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeCompletionLogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.logs)), nil
}

type fakeUnitOfWork struct {
	sessions *fakeSessionRepo
	logs     *fakeCompletionLogRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }
func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return u.sessions
}
func (u *fakeUnitOfWork) CompletionLogRepository() contract.CompletionLogRepository {
	return u.logs
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type providerCall struct {
	model   string
	history []llm.Message
}

type fakeProvider struct {
	mu     sync.Mutex
	answer string
	err    error
	calls  []providerCall
}

func (p *fakeProvider) Complete(ctx context.Context, model string, history []llm.Message, options ...llm.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, providerCall{model: model, history: append([]llm.Message(nil), history...)})
	if p.err != nil {
		return "", p.err
	}
	return p.answer, nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func (p *fakeProvider) lastCall(t *testing.T) providerCall {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.calls) == 0 {
		t.Fatal("provider was never called")
	}
	return p.calls[len(p.calls)-1]
}

type fakeSelector struct {
	mu       sync.Mutex
	provider *fakeProvider
	kinds    []llm.Kind
}

func (s *fakeSelector) Get(kind llm.Kind) llm.Provider {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kinds = append(s.kinds, kind)
	return s.provider
}

func (s *fakeSelector) lastKind(t *testing.T) llm.Kind {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.kinds) == 0 {
		t.Fatal("selector was never consulted")
	}
	return s.kinds[len(s.kinds)-1]
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*events.CompletionRecorded
}

func (p *fakePublisher) PublishCompletion(ctx context.Context, event *events.CompletionRecorded) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) eventCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// --- Test harness ---

type chatFixture struct {
	svc       IChatService
	repo      *fakeSessionRepo
	logs      *fakeCompletionLogRepo
	provider  *fakeProvider
	selector  *fakeSelector
	publisher *fakePublisher
}

func newChatFixture(answer string) *chatFixture {
	repo := newFakeSessionRepo()
	logs := &fakeCompletionLogRepo{}
	provider := &fakeProvider{answer: answer}
	selector := &fakeSelector{provider: provider}
	publisher := &fakePublisher{}
	factory := &fakeUowFactory{uow: &fakeUnitOfWork{sessions: repo, logs: logs}}

	return &chatFixture{
		svc:       NewChatService(factory, selector, publisher, nopLogger{}),
		repo:      repo,
		logs:      logs,
		provider:  provider,
		selector:  selector,
		publisher: publisher,
	}
}

func (f *chatFixture) seedSession(userId uuid.UUID, title string, turns ...entity.ChatTurn) uuid.UUID {
	id := uuid.New()
	f.repo.sessions[id] = &entity.ChatSession{
		Id:        id,
		UserId:    userId,
		Title:     title,
		Turns:     turns,
		CreatedAt: time.Now(),
	}
	return id
}

func (f *chatFixture) storedSession(t *testing.T, id uuid.UUID) *entity.ChatSession {
	t.Helper()
	s, ok := f.repo.sessions[id]
	if !ok {
		t.Fatalf("session %s not in repo", id)
	}
	return s
}

func userTurn(content string) entity.ChatTurn {
	return entity.ChatTurn{Role: constant.ChatMessageRoleUser, Content: content}
}

func assistantTurn(content string) entity.ChatTurn {
	return entity.ChatTurn{Role: constant.ChatMessageRoleAssistant, Content: content}
}

// --- Tests ---

func TestStartSession(t *testing.T) {
	f := newChatFixture("unused")
	userId := uuid.New()

	res, err := f.svc.StartSession(context.Background(), userId)
	if err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}

	stored := f.storedSession(t, res.Id)
	if stored.UserId != userId {
		t.Errorf("stored owner = %s, want %s", stored.UserId, userId)
	}
	if len(stored.Turns) != 0 {
		t.Errorf("new session has %d turns, want 0", len(stored.Turns))
	}
	if stored.Title != "" {
		t.Errorf("new session title = %q, want empty", stored.Title)
	}
}

func TestSendQueryAppendsExchange(t *testing.T) {
	f := newChatFixture("**bold** answer")
	userId := uuid.New()
	sessionId := f.seedSession(userId, "")

	res, err := f.svc.SendQuery(context.Background(), userId, &dto.QueryRequest{
		ChatSessionId: sessionId,
		Question:      "what is Go?",
		Model:         "gemini-2.0-flash",
	})
	if err != nil {
		t.Fatalf("SendQuery() error = %v", err)
	}

	if res.Answer != "<strong>bold</strong> answer" {
		t.Errorf("answer = %q, want rendered markup", res.Answer)
	}
	if res.Title != "what is Go?" {
		t.Errorf("title = %q, want derived from the question", res.Title)
	}

	stored := f.storedSession(t, sessionId)
	if len(stored.Turns) != 2 {
		t.Fatalf("turn count = %d, want 2", len(stored.Turns))
	}
	if stored.Turns[0].Role != constant.ChatMessageRoleUser || stored.Turns[0].Content != "what is Go?" {
		t.Errorf("first turn = %+v, want the raw question", stored.Turns[0])
	}
	if stored.Turns[1].Role != constant.ChatMessageRoleAssistant || stored.Turns[1].Content != "<strong>bold</strong> answer" {
		t.Errorf("second turn = %+v, want the formatted answer", stored.Turns[1])
	}
}

func TestSendQueryWindowShape(t *testing.T) {
	f := newChatFixture("fine")
	userId := uuid.New()
	sessionId := f.seedSession(userId, "t", userTurn("q1"), assistantTurn("a1"))

	_, err := f.svc.SendQuery(context.Background(), userId, &dto.QueryRequest{
		ChatSessionId: sessionId,
		Question:      "q2",
		Model:         "gemini-2.0-flash",
	})
	if err != nil {
		t.Fatalf("SendQuery() error = %v", err)
	}

	call := f.provider.lastCall(t)
	if call.model != "gemini-2.0-flash" {
		t.Errorf("model = %q, want the requested one", call.model)
	}
	if len(call.history) != 4 {
		t.Fatalf("window length = %d, want 4", len(call.history))
	}
	if call.history[0].Role != constant.ChatMessageRoleSystem || call.history[0].Content != constant.ChatSystemPromptV1 {
		t.Errorf("window[0] = %+v, want the system prompt", call.history[0])
	}
	last := call.history[len(call.history)-1]
	if last.Role != constant.ChatMessageRoleUser || last.Content != "q2" {
		t.Errorf("window tail = %+v, want the new question", last)
	}
}

func TestSendQueryTitleSetOnlyOnce(t *testing.T) {
	f := newChatFixture("fine")
	userId := uuid.New()
	sessionId := f.seedSession(userId, "original title", userTurn("q1"), assistantTurn("a1"))

	res, err := f.svc.SendQuery(context.Background(), userId, &dto.QueryRequest{
		ChatSessionId: sessionId,
		Question:      "a different question",
		Model:         "m",
	})
	if err != nil {
		t.Fatalf("SendQuery() error = %v", err)
	}
	if res.Title != "original title" {
		t.Errorf("title = %q, want it untouched by later exchanges", res.Title)
	}
	if len(f.storedSession(t, sessionId).Turns) != 4 {
		t.Errorf("turn count = %d, want 4", len(f.storedSession(t, sessionId).Turns))
	}
}

func TestSendQueryLongQuestionTruncatesTitle(t *testing.T) {
	f := newChatFixture("fine")
	userId := uuid.New()
	sessionId := f.seedSession(userId, "")
	question := strings.Repeat("x", 50)

	res, err := f.svc.SendQuery(context.Background(), userId, &dto.QueryRequest{
		ChatSessionId: sessionId,
		Question:      question,
		Model:         "m",
	})
	if err != nil {
		t.Fatalf("SendQuery() error = %v", err)
	}

	want := strings.Repeat("x", 40) + "..."
	if res.Title != want {
		t.Errorf("title = %q, want %q", res.Title, want)
	}
}

func TestSendQueryHidesForeignSessions(t *testing.T) {
	f := newChatFixture("fine")
	owner := uuid.New()
	intruder := uuid.New()
	sessionId := f.seedSession(owner, "theirs", userTurn("q"), assistantTurn("a"))

	_, err := f.svc.SendQuery(context.Background(), intruder, &dto.QueryRequest{
		ChatSessionId: sessionId,
		Question:      "sneaky",
		Model:         "m",
	})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}
	// Same error as a genuinely missing session.
	_, missErr := f.svc.SendQuery(context.Background(), intruder, &dto.QueryRequest{
		ChatSessionId: uuid.New(),
		Question:      "sneaky",
		Model:         "m",
	})
	if !errors.Is(missErr, ErrSessionNotFound) {
		t.Fatalf("missing-session error = %v, want ErrSessionNotFound", missErr)
	}
	if f.provider.callCount() != 0 {
		t.Errorf("provider called %d times for unauthorized requests, want 0", f.provider.callCount())
	}
}

func TestSendQueryProviderFailureLeavesTranscriptAlone(t *testing.T) {
	f := newChatFixture("")
	f.provider.err = &llm.ProviderError{Kind: llm.KindGemini, Err: errors.New("overloaded for good")}
	userId := uuid.New()
	sessionId := f.seedSession(userId, "")

	_, err := f.svc.SendQuery(context.Background(), userId, &dto.QueryRequest{
		ChatSessionId: sessionId,
		Question:      "q",
		Model:         "m",
	})
	if !llm.IsProviderError(err) {
		t.Fatalf("error = %v, want the provider error passed through", err)
	}

	if n := len(f.storedSession(t, sessionId).Turns); n != 0 {
		t.Errorf("turn count after failure = %d, want 0", n)
	}
	if f.publisher.eventCount() != 0 {
		t.Errorf("events published after failure = %d, want 0", f.publisher.eventCount())
	}
}

func TestSendQueryProviderSelection(t *testing.T) {
	tests := []struct {
		provider string
		want     llm.Kind
	}{
		{"github", llm.KindGitHub},
		{"openrouter", llm.KindOpenRouter},
		{"gemini", llm.KindGemini},
		{"", llm.KindGemini},
		{"bogus", llm.KindGemini},
	}

	for _, tt := range tests {
		t.Run("provider="+tt.provider, func(t *testing.T) {
			f := newChatFixture("fine")
			userId := uuid.New()
			sessionId := f.seedSession(userId, "")

			_, err := f.svc.SendQuery(context.Background(), userId, &dto.QueryRequest{
				ChatSessionId: sessionId,
				Question:      "q",
				Model:         "m",
				Provider:      tt.provider,
			})
			if err != nil {
				t.Fatalf("SendQuery() error = %v", err)
			}
			if got := f.selector.lastKind(t); got != tt.want {
				t.Errorf("selected kind = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSendQueryPublishesCompletionEvent(t *testing.T) {
	f := newChatFixture("fine")
	userId := uuid.New()
	sessionId := f.seedSession(userId, "")

	if _, err := f.svc.SendQuery(context.Background(), userId, &dto.QueryRequest{
		ChatSessionId: sessionId,
		Question:      "q",
		Model:         "gemini-2.0-flash",
	}); err != nil {
		t.Fatalf("SendQuery() error = %v", err)
	}

	if f.publisher.eventCount() != 1 {
		t.Fatalf("events published = %d, want 1", f.publisher.eventCount())
	}
	ev := f.publisher.events[0]
	if ev.Operation != "query" {
		t.Errorf("event operation = %q, want %q", ev.Operation, "query")
	}
	if ev.SessionId != sessionId || ev.UserId != userId {
		t.Errorf("event identity = (%s, %s), want (%s, %s)", ev.SessionId, ev.UserId, sessionId, userId)
	}
	if ev.Model != "gemini-2.0-flash" {
		t.Errorf("event model = %q", ev.Model)
	}
}

func TestRegenerateAppendsAlternativeAnswer(t *testing.T) {
	f := newChatFixture("second opinion")
	userId := uuid.New()
	sessionId := f.seedSession(userId, "t", userTurn("q1"), assistantTurn("a1"))

	res, err := f.svc.Regenerate(context.Background(), userId, &dto.RegenerateRequest{
		ChatSessionId: sessionId,
		Model:         "m",
	})
	if err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}
	if res.Answer != "second opinion" {
		t.Errorf("answer = %q", res.Answer)
	}

	stored := f.storedSession(t, sessionId)
	if len(stored.Turns) != 3 {
		t.Fatalf("turn count = %d, want 3 (append, not replace)", len(stored.Turns))
	}
	if stored.Turns[1].Content != "a1" {
		t.Errorf("superseded answer = %q, want it preserved", stored.Turns[1].Content)
	}
	if stored.Turns[2].Role != constant.ChatMessageRoleAssistant || stored.Turns[2].Content != "second opinion" {
		t.Errorf("appended turn = %+v", stored.Turns[2])
	}

	if f.publisher.eventCount() != 1 || f.publisher.events[0].Operation != "regenerate" {
		t.Errorf("want exactly one regenerate event, got %d", f.publisher.eventCount())
	}
}

func TestRegenerateWindowExcludesAnswers(t *testing.T) {
	f := newChatFixture("retry")
	userId := uuid.New()
	sessionId := f.seedSession(userId, "t",
		userTurn("q1"), assistantTurn("a1"),
		userTurn("q2"), assistantTurn("a2"),
	)

	if _, err := f.svc.Regenerate(context.Background(), userId, &dto.RegenerateRequest{
		ChatSessionId: sessionId,
		Model:         "m",
	}); err != nil {
		t.Fatalf("Regenerate() error = %v", err)
	}

	call := f.provider.lastCall(t)
	for _, m := range call.history {
		if m.Role == constant.ChatMessageRoleAssistant {
			t.Errorf("assistant turn %q leaked into the regenerate window", m.Content)
		}
	}
	last := call.history[len(call.history)-1]
	if last.Content != "q2" {
		t.Errorf("window tail = %q, want the latest question resent, not a new turn", last.Content)
	}
}

func TestRegenerateEmptySession(t *testing.T) {
	f := newChatFixture("unused")
	userId := uuid.New()
	sessionId := f.seedSession(userId, "")

	_, err := f.svc.Regenerate(context.Background(), userId, &dto.RegenerateRequest{
		ChatSessionId: sessionId,
		Model:         "m",
	})
	if !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("error = %v, want ErrEmptyHistory", err)
	}
	if f.provider.callCount() != 0 {
		t.Errorf("provider called %d times on empty history, want 0", f.provider.callCount())
	}
}

func TestRegenerateWithoutAnyQuestion(t *testing.T) {
	f := newChatFixture("unused")
	userId := uuid.New()
	sessionId := f.seedSession(userId, "t", assistantTurn("orphan"))

	_, err := f.svc.Regenerate(context.Background(), userId, &dto.RegenerateRequest{
		ChatSessionId: sessionId,
		Model:         "m",
	})
	if !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("error = %v, want ErrEmptyHistory", err)
	}
	if f.provider.callCount() != 0 {
		t.Errorf("provider called %d times, want 0", f.provider.callCount())
	}
}

func TestGetChatHistoryNewestFirst(t *testing.T) {
	f := newChatFixture("unused")
	userId := uuid.New()
	sessionId := f.seedSession(userId, "t",
		userTurn("q1"), assistantTurn("a1"),
		userTurn("q2"), assistantTurn("a2"),
		userTurn("unanswered"),
	)

	pairs, err := f.svc.GetChatHistory(context.Background(), userId, sessionId)
	if err != nil {
		t.Fatalf("GetChatHistory() error = %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("pair count = %d, want 2", len(pairs))
	}
	if pairs[0].Question != "q2" || pairs[0].Answer != "a2" {
		t.Errorf("pairs[0] = %+v, want the newest exchange first", pairs[0])
	}
	if pairs[1].Question != "q1" || pairs[1].Answer != "a1" {
		t.Errorf("pairs[1] = %+v", pairs[1])
	}
}

func TestGetChatHistoryMissingSessionIsEmpty(t *testing.T) {
	f := newChatFixture("unused")

	pairs, err := f.svc.GetChatHistory(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("GetChatHistory() error = %v, want nil for an absent session", err)
	}
	if pairs == nil {
		t.Fatal("pairs = nil, want an empty list")
	}
	if len(pairs) != 0 {
		t.Errorf("pair count = %d, want 0", len(pairs))
	}
}

func TestGetChatHistoryForeignSessionIsEmpty(t *testing.T) {
	f := newChatFixture("unused")
	owner := uuid.New()
	sessionId := f.seedSession(owner, "t", userTurn("q"), assistantTurn("a"))

	pairs, err := f.svc.GetChatHistory(context.Background(), uuid.New(), sessionId)
	if err != nil {
		t.Fatalf("GetChatHistory() error = %v", err)
	}
	if len(pairs) != 0 {
		t.Errorf("foreign session leaked %d pairs", len(pairs))
	}
}

func TestGetAllSessionsScopedToOwner(t *testing.T) {
	f := newChatFixture("unused")
	me := uuid.New()
	older := time.Now().Add(-time.Hour)
	newer := time.Now()

	a := f.seedSession(me, "a")
	f.repo.sessions[a].UpdatedAt = &older
	b := f.seedSession(me, "b")
	f.repo.sessions[b].UpdatedAt = &newer
	f.seedSession(uuid.New(), "not mine")

	list, err := f.svc.GetAllSessions(context.Background(), me)
	if err != nil {
		t.Fatalf("GetAllSessions() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("session count = %d, want 2", len(list))
	}
	if list[0].Id != b || list[1].Id != a {
		t.Errorf("order = [%s %s], want most recently updated first", list[0].Id, list[1].Id)
	}
}

func TestRenameSession(t *testing.T) {
	f := newChatFixture("unused")
	userId := uuid.New()
	sessionId := f.seedSession(userId, "derived title")

	if err := f.svc.RenameSession(context.Background(), userId, sessionId, "picked by hand"); err != nil {
		t.Fatalf("RenameSession() error = %v", err)
	}

	stored := f.storedSession(t, sessionId)
	if stored.Title != "picked by hand" {
		t.Errorf("title = %q, want the explicit one", stored.Title)
	}
	if stored.UpdatedAt == nil {
		t.Error("UpdatedAt not set by rename")
	}
}

func TestRenameSessionForeign(t *testing.T) {
	f := newChatFixture("unused")
	owner := uuid.New()
	sessionId := f.seedSession(owner, "theirs")

	err := f.svc.RenameSession(context.Background(), uuid.New(), sessionId, "mine now")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("error = %v, want ErrSessionNotFound", err)
	}
	if f.storedSession(t, sessionId).Title != "theirs" {
		t.Error("foreign rename mutated the session")
	}
}

func TestDeleteSessionIdempotent(t *testing.T) {
	f := newChatFixture("unused")
	userId := uuid.New()
	sessionId := f.seedSession(userId, "t")

	if err := f.svc.DeleteSession(context.Background(), userId, sessionId); err != nil {
		t.Fatalf("first delete error = %v", err)
	}
	if _, ok := f.repo.sessions[sessionId]; ok {
		t.Fatal("session still present after delete")
	}

	if err := f.svc.DeleteSession(context.Background(), userId, sessionId); err != nil {
		t.Fatalf("second delete error = %v, want nil (idempotent)", err)
	}
}

func TestDeleteSessionForeignIsNoOp(t *testing.T) {
	f := newChatFixture("unused")
	owner := uuid.New()
	sessionId := f.seedSession(owner, "theirs")

	if err := f.svc.DeleteSession(context.Background(), uuid.New(), sessionId); err != nil {
		t.Fatalf("foreign delete error = %v, want nil", err)
	}
	if _, ok := f.repo.sessions[sessionId]; !ok {
		t.Error("foreign delete removed someone else's session")
	}
}
