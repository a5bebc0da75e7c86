package service

import (
	"context"
	"sort"
	"time"

	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/internal/repository/contract"
	"shiksha-saathi-be/internal/repository/specification"
	"shiksha-saathi-be/internal/repository/unitofwork"
	"shiksha-saathi-be/pkg/llm"
	"shiksha-saathi-be/pkg/tutor"

	"github.com/google/uuid"
)

// In-memory repository fakes. FindAll interprets the same
// specification values the GORM implementations translate to SQL, so
// service queries behave the way they would against a real database.

type fakeStore struct {
	users     []*entity.User
	messages  []*entity.ChatMessage
	questions []*entity.SavedQuestion
	scores    []*entity.QuizScore
}

type fakeUnitOfWork struct {
	store *fakeStore
}

// NewUnitOfWork makes the fake double as the repository factory.
func (u *fakeUnitOfWork) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return u }

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository { return &fakeUserRepo{u.store} }
func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeChatRepo{u.store}
}
func (u *fakeUnitOfWork) SavedQuestionRepository() contract.SavedQuestionRepository {
	return &fakeSavedQuestionRepo{u.store}
}
func (u *fakeUnitOfWork) QuizScoreRepository() contract.QuizScoreRepository {
	return &fakeQuizScoreRepo{u.store}
}

func newFakeUow() *fakeUnitOfWork {
	return &fakeUnitOfWork{store: &fakeStore{}}
}

type chatFilter struct {
	byUser   *uuid.UUID
	byID     *uuid.UUID
	byVoice  *bool
	byRole   *string
	byStatus *string
	orderBy  *specification.OrderBy
	limit    int
}

func parseChatSpecs(specs []specification.Specification) chatFilter {
	f := chatFilter{limit: -1}
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByUserID:
			id := v.UserID
			f.byUser = &id
		case specification.ByID:
			id := v.ID
			f.byID = &id
		case specification.ByVoiceSession:
			voice := v.IsVoice
			f.byVoice = &voice
		case specification.ByRole:
			role := v.Role
			f.byRole = &role
		case specification.ByDoubtStatus:
			status := v.Status
			f.byStatus = &status
		case specification.OrderBy:
			order := v
			f.orderBy = &order
		case specification.Pagination:
			f.limit = v.Limit
		}
	}
	return f
}

func (f chatFilter) matches(m *entity.ChatMessage) bool {
	if f.byUser != nil && m.UserId != *f.byUser {
		return false
	}
	if f.byID != nil && m.Id != *f.byID {
		return false
	}
	if f.byVoice != nil && m.IsVoiceSession != *f.byVoice {
		return false
	}
	if f.byRole != nil && m.Role != *f.byRole {
		return false
	}
	if f.byStatus != nil && m.DoubtStatus != *f.byStatus {
		return false
	}
	return true
}

type fakeChatRepo struct {
	store *fakeStore
}

func (r *fakeChatRepo) Create(ctx context.Context, message *entity.ChatMessage) error {
	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	stored := *message
	r.store.messages = append(r.store.messages, &stored)
	return nil
}

func (r *fakeChatRepo) Update(ctx context.Context, message *entity.ChatMessage) error {
	for i, m := range r.store.messages {
		if m.Id == message.Id {
			stored := *message
			r.store.messages[i] = &stored
			return nil
		}
	}
	return nil
}

func (r *fakeChatRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.store.messages[:0]
	for _, m := range r.store.messages {
		if m.Id != id {
			kept = append(kept, m)
		}
	}
	r.store.messages = kept
	return nil
}

func (r *fakeChatRepo) DeleteByUserId(ctx context.Context, userId uuid.UUID) error {
	kept := r.store.messages[:0]
	for _, m := range r.store.messages {
		if m.UserId != userId {
			kept = append(kept, m)
		}
	}
	r.store.messages = kept
	return nil
}

func (r *fakeChatRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	f := parseChatSpecs(specs)

	var out []*entity.ChatMessage
	for _, m := range r.store.messages {
		if f.matches(m) {
			copied := *m
			out = append(out, &copied)
		}
	}

	if f.orderBy != nil {
		desc := f.orderBy.Desc
		sort.SliceStable(out, func(i, j int) bool {
			var a, b time.Time
			switch f.orderBy.Field {
			case "timestamp":
				a, b = out[i].Timestamp, out[j].Timestamp
			default:
				a, b = out[i].CreatedAt, out[j].CreatedAt
			}
			if desc {
				return a.After(b)
			}
			return a.Before(b)
		})
	}

	if f.limit >= 0 && len(out) > f.limit {
		out = out[:f.limit]
	}
	return out, nil
}

func (r *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	return int64(len(all)), err
}

func (r *fakeChatRepo) UpdateDoubtStatus(ctx context.Context, id uuid.UUID, status string) error {
	for _, m := range r.store.messages {
		if m.Id == id {
			m.DoubtStatus = status
		}
	}
	return nil
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	stored := *user
	r.store.users = append(r.store.users, &stored)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	for i, u := range r.store.users {
		if u.Id == user.Id {
			stored := *user
			r.store.users[i] = &stored
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.store.users[:0]
	for _, u := range r.store.users {
		if u.Id != id {
			kept = append(kept, u)
		}
	}
	r.store.users = kept
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			for _, u := range r.store.users {
				if u.Id == byID.ID {
					copied := *u
					return &copied, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeUserRepo) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	for _, u := range r.store.users {
		if u.Id == id {
			u.IsEmailVerified = true
			u.EmailVerificationToken = ""
		}
	}
	return nil
}

func (r *fakeUserRepo) SetVerificationToken(ctx context.Context, id uuid.UUID, token string) error {
	for _, u := range r.store.users {
		if u.Id == id {
			u.EmailVerificationToken = token
		}
	}
	return nil
}

func (r *fakeUserRepo) FindByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	for _, u := range r.store.users {
		if u.EmailVerificationToken == token && token != "" {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeSavedQuestionRepo struct {
	store *fakeStore
}

func (r *fakeSavedQuestionRepo) Create(ctx context.Context, question *entity.SavedQuestion) error {
	if question.Id == uuid.Nil {
		question.Id = uuid.New()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now()
	}
	stored := *question
	r.store.questions = append(r.store.questions, &stored)
	return nil
}

func (r *fakeSavedQuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.store.questions[:0]
	for _, q := range r.store.questions {
		if q.Id != id {
			kept = append(kept, q)
		}
	}
	r.store.questions = kept
	return nil
}

func (r *fakeSavedQuestionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SavedQuestion, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeSavedQuestionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SavedQuestion, error) {
	var byUser *uuid.UUID
	desc := false
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByUserID:
			id := v.UserID
			byUser = &id
		case specification.OrderBy:
			desc = v.Desc
		}
	}

	var out []*entity.SavedQuestion
	for _, q := range r.store.questions {
		if byUser != nil && q.UserId != *byUser {
			continue
		}
		copied := *q
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type fakeQuizScoreRepo struct {
	store *fakeStore
}

func (r *fakeQuizScoreRepo) Create(ctx context.Context, score *entity.QuizScore) error {
	if score.Id == uuid.Nil {
		score.Id = uuid.New()
	}
	stored := *score
	r.store.scores = append(r.store.scores, &stored)
	return nil
}

func (r *fakeQuizScoreRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizScore, error) {
	var byUser *uuid.UUID
	for _, s := range specs {
		if v, ok := s.(specification.ByUserID); ok {
			id := v.UserID
			byUser = &id
		}
	}
	var out []*entity.QuizScore
	for _, sc := range r.store.scores {
		if byUser != nil && sc.UserId != *byUser {
			continue
		}
		copied := *sc
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeQuizScoreRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuizScore, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeQuizScoreRepo) ExistsForQuiz(ctx context.Context, userId uuid.UUID, quizId string) (bool, error) {
	for _, sc := range r.store.scores {
		if sc.UserId == userId && sc.QuizId == quizId {
			return true, nil
		}
	}
	return false, nil
}

// Collaborator fakes.

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeTutor struct {
	queryFn func(ctx context.Context, req tutor.QueryRequest) (*tutor.QueryResponse, error)
	quizFn  func(ctx context.Context, history []entity.ChatMessage) ([]entity.QuizItem, error)

	lastQuery   *tutor.QueryRequest
	lastHistory []entity.ChatMessage
}

func (f *fakeTutor) Query(ctx context.Context, req tutor.QueryRequest) (*tutor.QueryResponse, error) {
	f.lastQuery = &req
	if f.queryFn != nil {
		return f.queryFn(ctx, req)
	}
	return &tutor.QueryResponse{Answer: "stub answer"}, nil
}

func (f *fakeTutor) GenerateQuiz(ctx context.Context, history []entity.ChatMessage) ([]entity.QuizItem, error) {
	f.lastHistory = history
	if f.quizFn != nil {
		return f.quizFn(ctx, history)
	}
	return nil, nil
}

// tutorAnswering builds a tutor fake whose /query transport yields a
// fixed answer or error, for exercising the analysis paths.
func tutorAnswering(answer string, err error) *fakeTutor {
	return &fakeTutor{queryFn: func(ctx context.Context, req tutor.QueryRequest) (*tutor.QueryResponse, error) {
		if err != nil {
			return nil, err
		}
		return &tutor.QueryResponse{Answer: answer}, nil
	}}
}

type fakeSynthesizer struct {
	enabled bool
	url     string
	err     error
	calls   int
}

func (f *fakeSynthesizer) Enabled() bool { return f.enabled }

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeLLM struct {
	answer string
	err    error
	calls  int
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return f.generate()
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.generate()
}

func (f *fakeLLM) generate() (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}
