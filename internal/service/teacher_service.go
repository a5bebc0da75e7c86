package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"shiksha-saathi-be/internal/constant"
	"shiksha-saathi-be/internal/dto"
	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/internal/pkg/logger"
	"shiksha-saathi-be/internal/repository/specification"
	"shiksha-saathi-be/internal/repository/unitofwork"
	"shiksha-saathi-be/pkg/analysis"
	"shiksha-saathi-be/pkg/events"
	"shiksha-saathi-be/pkg/llm"
	"shiksha-saathi-be/pkg/tutor"

	"github.com/google/uuid"
)

var ErrDoubtNotFound = errors.New("doubt message not found")

type ITeacherService interface {
	GetDoubts(ctx context.Context, status string) ([]dto.DoubtResponse, error)
	AnalyzeTopics(ctx context.Context) (*dto.TopicAnalysisResponse, error)
	TopDoubtSuggestions(ctx context.Context) (*dto.TopDoubtSuggestionsResponse, error)
	UpdateDoubtStatus(ctx context.Context, messageId uuid.UUID, status string) error
	ListStudents(ctx context.Context) ([]dto.StudentSummaryResponse, error)
	StudentChat(ctx context.Context, studentId uuid.UUID) ([]dto.ChatMessageResponse, error)
	ClassroomProgress(ctx context.Context) ([]dto.StudentProgressResponse, error)
}

type teacherService struct {
	uowFactory       unitofwork.RepositoryFactory
	tutorClient      TutorClient
	llmProvider      llm.LLMProvider
	publisherService IPublisherService
	log              logger.ILogger
}

func NewTeacherService(
	uowFactory unitofwork.RepositoryFactory,
	tutorClient TutorClient,
	llmProvider llm.LLMProvider,
	publisherService IPublisherService,
	log logger.ILogger,
) ITeacherService {
	return &teacherService{
		uowFactory:       uowFactory,
		tutorClient:      tutorClient,
		llmProvider:      llmProvider,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *teacherService) fetchDoubts(ctx context.Context, uow unitofwork.UnitOfWork, status string) ([]*entity.ChatMessage, error) {
	specs := []specification.Specification{
		specification.ByRole{Role: entity.RoleUser},
		specification.OrderBy{Field: "timestamp", Desc: true},
	}
	if status != "" {
		specs = append(specs, specification.ByDoubtStatus{Status: status})
	}
	return uow.ChatMessageRepository().FindAll(ctx, specs...)
}

func (s *teacherService) GetDoubts(ctx context.Context, status string) ([]dto.DoubtResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doubts, err := s.fetchDoubts(ctx, uow, status)
	if err != nil {
		return nil, err
	}
	return dto.ToDoubtResponses(doubts), nil
}

// AnalyzeTopics clusters all student questions into ranked topics.
// The model result is used only when it parses into at least one
// topic and is not a quota rejection; everything else falls back to
// the keyword classifier.
func (s *teacherService) AnalyzeTopics(ctx context.Context) (*dto.TopicAnalysisResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doubts, err := s.fetchDoubts(ctx, uow, "")
	if err != nil {
		return nil, err
	}

	messages := make([]analysis.Message, 0, len(doubts))
	for _, d := range doubts {
		messages = append(messages, analysis.Message{
			StudentName: "Student",
			Content:     d.Content,
			Timestamp:   d.Timestamp.Format(time.RFC3339),
		})
	}

	if len(messages) == 0 {
		return &dto.TopicAnalysisResponse{Topics: []entity.TopicInsight{}}, nil
	}

	// The analyzer prompt rides the same /query transport as student
	// questions; the tutor reports quota exhaustion in-band as answer
	// text, not as a transport error.
	prompt := analysis.BuildPrompt(messages)
	result, err := s.tutorClient.Query(ctx, tutor.QueryRequest{Question: prompt})
	if err != nil {
		s.log.Warn("teacher", "Topic analysis model call failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return &dto.TopicAnalysisResponse{Topics: analysis.Fallback(messages), IsFallback: true}, nil
	}
	answer := result.Answer

	if analysis.IsRateLimited(answer) {
		s.log.Warn("teacher", "Topic analysis rate limited, using fallback", nil)
		return &dto.TopicAnalysisResponse{Topics: analysis.Fallback(messages), IsFallback: true}, nil
	}

	topics := analysis.ParseTopics(answer)
	if len(topics) == 0 {
		return &dto.TopicAnalysisResponse{Topics: analysis.Fallback(messages), IsFallback: true}, nil
	}

	return &dto.TopicAnalysisResponse{Topics: topics}, nil
}

func (s *teacherService) UpdateDoubtStatus(ctx context.Context, messageId uuid.UUID, status string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.ChatMessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return err
	}
	if msg == nil {
		return ErrDoubtNotFound
	}

	if err := uow.ChatMessageRepository().UpdateDoubtStatus(ctx, messageId, status); err != nil {
		return err
	}

	if s.publisherService != nil && status == entity.DoubtStatusResolved {
		evt := events.BaseEvent{
			Type: events.TypeDoubtResolved,
			Data: map[string]interface{}{
				"user_id":    msg.UserId.String(),
				"message_id": messageId.String(),
			},
			OccurredAt: time.Now(),
		}
		if payload, marshalErr := json.Marshal(map[string]interface{}{
			"type":        evt.EventType(),
			"data":        evt.Payload(),
			"occurred_at": evt.Timestamp(),
		}); marshalErr == nil {
			if pubErr := s.publisherService.Publish(ctx, payload); pubErr != nil {
				s.log.Warn("teacher", "Failed to publish doubt resolution", map[string]interface{}{
					"message_id": messageId.String(),
					"error":      pubErr.Error(),
				})
			}
		}
	}

	return nil
}

// TopDoubtSuggestions asks the model for the canonical list of
// commonly misunderstood topics, independent of stored doubts.
func (s *teacherService) TopDoubtSuggestions(ctx context.Context) (*dto.TopDoubtSuggestionsResponse, error) {
	suggestions, err := s.llmProvider.Generate(ctx, constant.TopDoubtsPrompt)
	if err != nil {
		s.log.Warn("teacher", "Top doubt suggestions failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}
	return &dto.TopDoubtSuggestionsResponse{Suggestions: suggestions}, nil
}

func (s *teacherService) ListStudents(ctx context.Context) ([]dto.StudentSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StudentSummaryResponse, 0, len(users))
	for _, u := range users {
		if u.Role != entity.RoleStudent {
			continue
		}

		count, err := uow.ChatMessageRepository().Count(ctx,
			specification.ByUserID{UserID: u.Id},
			specification.ByRole{Role: entity.RoleUser},
		)
		if err != nil {
			return nil, err
		}

		summary := dto.StudentSummaryResponse{
			Id:           u.Id,
			FullName:     u.FullName,
			Grade:        u.Grade,
			MessageCount: count,
		}
		if count > 0 {
			last, err := uow.ChatMessageRepository().FindOne(ctx,
				specification.ByUserID{UserID: u.Id},
				specification.ByRole{Role: entity.RoleUser},
				specification.OrderBy{Field: "timestamp", Desc: true},
			)
			if err != nil {
				return nil, err
			}
			if last != nil {
				at := last.Timestamp
				summary.LastActivity = &at
			}
		}
		out = append(out, summary)
	}
	return out, nil
}

func (s *teacherService) StudentChat(ctx context.Context, studentId uuid.UUID) ([]dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByUserID{UserID: studentId},
		specification.OrderBy{Field: "timestamp"},
	)
	if err != nil {
		return nil, err
	}

	history := make([]entity.ChatMessage, 0, len(messages))
	for _, m := range messages {
		history = append(history, *m)
	}
	return dto.ToChatMessageResponses(history), nil
}

func (s *teacherService) ClassroomProgress(ctx context.Context) ([]dto.StudentProgressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StudentProgressResponse, 0, len(users))
	for _, u := range users {
		if u.Role != entity.RoleStudent {
			continue
		}

		scores, err := uow.QuizScoreRepository().FindAll(ctx,
			specification.ByUserID{UserID: u.Id},
		)
		if err != nil {
			return nil, err
		}

		progress := dto.StudentProgressResponse{
			StudentId: u.Id,
			FullName:  u.FullName,
		}
		for _, sc := range scores {
			progress.Attempts++
			progress.TotalScore += sc.Score
			progress.TotalQuestions += sc.TotalQuestions
		}
		if progress.TotalQuestions > 0 {
			progress.Accuracy = float64(progress.TotalScore) / float64(progress.TotalQuestions)
		}
		out = append(out, progress)
	}
	return out, nil
}
