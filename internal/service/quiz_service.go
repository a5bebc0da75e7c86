package service

import (
	"context"
	"encoding/json"
	"errors"

	"shiksha-saathi-be/internal/constant"
	"shiksha-saathi-be/internal/dto"
	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/internal/pkg/logger"
	"shiksha-saathi-be/internal/repository/memory"
	"shiksha-saathi-be/internal/repository/specification"
	"shiksha-saathi-be/internal/repository/unitofwork"
	"shiksha-saathi-be/pkg/conversation"
	"shiksha-saathi-be/pkg/events"
	"shiksha-saathi-be/pkg/quiz"

	"github.com/google/uuid"
)

var (
	ErrAttemptNotFound = errors.New("quiz attempt not found")
	ErrAttemptOwner    = errors.New("quiz attempt belongs to another user")
)

type IQuizService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	Answer(ctx context.Context, userId uuid.UUID, attemptId string, req *dto.AnswerRequest) (*dto.AnswerResponse, error)
	GetScores(ctx context.Context, userId uuid.UUID) ([]dto.QuizScoreResponse, error)
	Stats(ctx context.Context, userId uuid.UUID) (*dto.QuizStatsResponse, error)
}

type quizService struct {
	uowFactory       unitofwork.RepositoryFactory
	tutorClient      TutorClient
	attemptRepo      *memory.AttemptRepository
	publisherService IPublisherService
	log              logger.ILogger
}

func NewQuizService(
	uowFactory unitofwork.RepositoryFactory,
	tutorClient TutorClient,
	attemptRepo *memory.AttemptRepository,
	publisherService IPublisherService,
	log logger.ILogger,
) IQuizService {
	return &quizService{
		uowFactory:       uowFactory,
		tutorClient:      tutorClient,
		attemptRepo:      attemptRepo,
		publisherService: publisherService,
		log:              log,
	}
}

// quizWindow loads the most recent text-session messages, restores
// chronological order, and strips separators so only real turns reach
// quiz generation.
func (s *quizService) quizWindow(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]entity.ChatMessage, error) {
	recent, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.ByVoiceSession{IsVoice: false},
		specification.OrderBy{Field: "timestamp", Desc: true},
		specification.Pagination{Limit: constant.QuizWindowSize},
	)
	if err != nil {
		return nil, err
	}

	history := make([]entity.ChatMessage, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history, *recent[i])
	}

	return conversation.Flatten(conversation.Segment(history)), nil
}

func (s *quizService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	window, err := s.quizWindow(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	items := constant.SampleQuizzes
	isFallback := true
	if len(window) > 0 {
		generated, genErr := s.tutorClient.GenerateQuiz(ctx, window)
		if genErr != nil {
			s.log.Warn("quiz", "Quiz generation failed, serving samples", map[string]interface{}{
				"user_id": userId.String(),
				"error":   genErr.Error(),
			})
		} else {
			items = generated
			isFallback = false
		}
	}

	attempt := quiz.NewAttempt(userId, req.Topic, items)
	s.attemptRepo.Save(attempt)

	return &dto.GenerateQuizResponse{
		AttemptId:  attempt.Id,
		Questions:  dto.ToQuizQuestionResponses(items),
		IsFallback: isFallback,
	}, nil
}

func (s *quizService) Answer(ctx context.Context, userId uuid.UUID, attemptId string, req *dto.AnswerRequest) (*dto.AnswerResponse, error) {
	attempt, found := s.attemptRepo.Get(attemptId)
	if !found {
		return nil, ErrAttemptNotFound
	}
	if attempt.UserId != userId {
		return nil, ErrAttemptOwner
	}

	result, err := quiz.Answer(attempt, req.Question, req.Option)
	if err != nil {
		return nil, err
	}
	s.attemptRepo.Save(attempt)

	resp := &dto.AnswerResponse{
		Correct:       result.Correct,
		CorrectAnswer: result.CorrectAnswer,
		Score:         result.Score,
		Completed:     result.Completed,
	}

	if result.Completed {
		if err := s.recordScore(ctx, attempt); err != nil {
			s.log.Error("quiz", "Failed to record quiz score", map[string]interface{}{
				"attempt_id": attempt.Id,
				"error":      err.Error(),
			})
		} else if total, totalErr := s.totalScore(ctx, userId); totalErr == nil {
			resp.TotalScore = total
		}
	}

	return resp, nil
}

func (s *quizService) totalScore(ctx context.Context, userId uuid.UUID) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scores, err := uow.QuizScoreRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, sc := range scores {
		total += sc.Score
	}
	return total, nil
}

// recordScore writes exactly one ledger row per completed attempt.
// Repeated answer submissions after completion cannot add rows because
// Answer rejects them, and a quiz id already in the ledger is skipped.
func (s *quizService) recordScore(ctx context.Context, attempt *entity.QuizAttempt) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	exists, err := uow.QuizScoreRepository().ExistsForQuiz(ctx, attempt.UserId, attempt.Id)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	score, err := quiz.FinalScore(attempt)
	if err != nil {
		return err
	}
	if err := uow.QuizScoreRepository().Create(ctx, score); err != nil {
		return err
	}

	if s.publisherService != nil {
		evt := events.NewQuizCompleted(attempt.UserId.String(), attempt.Id, score.Score, score.TotalQuestions)
		if payload, marshalErr := json.Marshal(map[string]interface{}{
			"type":        evt.EventType(),
			"data":        evt.Payload(),
			"occurred_at": evt.Timestamp(),
		}); marshalErr == nil {
			if pubErr := s.publisherService.Publish(ctx, payload); pubErr != nil {
				s.log.Warn("quiz", "Failed to publish quiz event", map[string]interface{}{
					"attempt_id": attempt.Id,
					"error":      pubErr.Error(),
				})
			}
		}
	}

	return nil
}

func (s *quizService) GetScores(ctx context.Context, userId uuid.UUID) ([]dto.QuizScoreResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scores, err := uow.QuizScoreRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return dto.ToQuizScoreResponses(scores), nil
}

// Stats aggregates the ledger per topic, first-seen topic order.
func (s *quizService) Stats(ctx context.Context, userId uuid.UUID) (*dto.QuizStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scores, err := uow.QuizScoreRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	stats := &dto.QuizStatsResponse{Topics: []dto.TopicStatResponse{}}
	index := make(map[string]int)
	for _, sc := range scores {
		i, seen := index[sc.Topic]
		if !seen {
			i = len(stats.Topics)
			index[sc.Topic] = i
			stats.Topics = append(stats.Topics, dto.TopicStatResponse{Topic: sc.Topic})
		}
		stats.Topics[i].Attempts++
		stats.Topics[i].Score += sc.Score
		stats.Topics[i].TotalQuestions += sc.TotalQuestions
		stats.TotalScore += sc.Score
		stats.TotalQuestions += sc.TotalQuestions
	}
	return stats, nil
}
