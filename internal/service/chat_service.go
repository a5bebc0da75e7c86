package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"shiksha-saathi-be/internal/constant"
	"shiksha-saathi-be/internal/dto"
	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/internal/pkg/logger"
	"shiksha-saathi-be/internal/repository/specification"
	"shiksha-saathi-be/internal/repository/unitofwork"
	"shiksha-saathi-be/pkg/conversation"
	"shiksha-saathi-be/pkg/events"
	"shiksha-saathi-be/pkg/tutor"

	"github.com/google/uuid"
)

var ErrSavedQuestionNotFound = errors.New("saved question not found")

// TutorClient is the slice of the tutor HTTP client the services need.
type TutorClient interface {
	Query(ctx context.Context, req tutor.QueryRequest) (*tutor.QueryResponse, error)
	GenerateQuiz(ctx context.Context, history []entity.ChatMessage) ([]entity.QuizItem, error)
}

// SpeechSynthesizer converts assistant answers to audio for voice
// sessions.
type SpeechSynthesizer interface {
	Enabled() bool
	Synthesize(ctx context.Context, text string) (string, error)
}

type IChatService interface {
	GetHistory(ctx context.Context, userId uuid.UUID, isVoice bool) (*dto.ChatHistoryResponse, error)
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	AddSeparator(ctx context.Context, userId uuid.UUID, isVoice bool) (*dto.ChatMessageResponse, error)
	SaveCurrentBlock(ctx context.Context, userId uuid.UUID, isVoice bool) (*dto.NewQuestionResponse, error)
	GetSavedQuestions(ctx context.Context, userId uuid.UUID) ([]dto.SavedQuestionResponse, error)
	DeleteSavedQuestion(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type chatService struct {
	uowFactory       unitofwork.RepositoryFactory
	tutorClient      TutorClient
	synthesizer      SpeechSynthesizer
	publisherService IPublisherService
	log              logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	tutorClient TutorClient,
	synthesizer SpeechSynthesizer,
	publisherService IPublisherService,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:       uowFactory,
		tutorClient:      tutorClient,
		synthesizer:      synthesizer,
		publisherService: publisherService,
		log:              log,
	}
}

func (s *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, isVoice bool) ([]entity.ChatMessage, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.ByVoiceSession{IsVoice: isVoice},
		specification.OrderBy{Field: "timestamp"},
	)
	if err != nil {
		return nil, err
	}
	history := make([]entity.ChatMessage, 0, len(messages))
	for _, m := range messages {
		history = append(history, *m)
	}
	return history, nil
}

func (s *chatService) GetHistory(ctx context.Context, userId uuid.UUID, isVoice bool) (*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	history, err := s.loadHistory(ctx, uow, userId, isVoice)
	if err != nil {
		return nil, err
	}
	return &dto.ChatHistoryResponse{
		Messages:     dto.ToChatMessageResponses(history),
		CurrentBlock: dto.ToChatMessageResponses(conversation.CurrentBlock(history)),
		IsNewBlock:   conversation.IsNewBlock(history),
	}, nil
}

func (s *chatService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	history, err := s.loadHistory(ctx, uow, userId, req.IsVoiceSession)
	if err != nil {
		return nil, err
	}

	// Block context for the tutor: a question is a follow-up when the
	// current block already holds earlier questions, and a new block
	// starts only right after a separator.
	isNewBlock := conversation.IsNewBlock(history)
	previousQuestions := conversation.UserContents(conversation.CurrentBlock(history))
	isFollowup := len(previousQuestions) > 0

	userMsg := entity.NewUserMessage(userId, req.Content, req.IsVoiceSession, req.File)
	if err := uow.ChatMessageRepository().Create(ctx, &userMsg); err != nil {
		return nil, err
	}

	s.publishDoubtCreated(ctx, &userMsg)

	grade := constant.DefaultGrade
	if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}); err == nil && user != nil && user.Grade != "" {
		grade = user.Grade
	}

	responseType := req.ResponseType
	if responseType == "" {
		responseType = "explain"
	}

	tutorResp, err := s.tutorClient.Query(ctx, tutor.QueryRequest{
		Question:          req.Content,
		SystemId:          grade,
		IsFollowup:        isFollowup,
		PreviousQuestions: previousQuestions,
		IsInSyllabus:      true,
		IsNewBlock:        isNewBlock,
		ResponseType:      responseType,
	})
	if err != nil {
		s.log.Error("chat", "Tutor query failed", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("tutor unavailable: %w", err)
	}

	assistantMsg := entity.NewAssistantMessage(userId, tutorResp.Answer, req.IsVoiceSession, responseType, tutorResp.Image, tutorResp.Videos)
	if err := uow.ChatMessageRepository().Create(ctx, &assistantMsg); err != nil {
		return nil, err
	}

	resp := &dto.SendMessageResponse{
		UserMessage:      dto.ToChatMessageResponse(&userMsg),
		AssistantMessage: dto.ToChatMessageResponse(&assistantMsg),
	}

	// Speech synthesis never blocks the answer.
	if req.IsVoiceSession && s.synthesizer != nil && s.synthesizer.Enabled() {
		audioURL, synthErr := s.synthesizer.Synthesize(ctx, tutorResp.Answer)
		if synthErr != nil {
			s.log.Warn("chat", "Speech synthesis failed", map[string]interface{}{
				"user_id": userId.String(),
				"error":   synthErr.Error(),
			})
		} else {
			resp.AssistantMessage.AudioURL = audioURL
		}
	}

	return resp, nil
}

func (s *chatService) publishDoubtCreated(ctx context.Context, msg *entity.ChatMessage) {
	if s.publisherService == nil {
		return
	}
	evt := events.NewDoubtCreated(msg.UserId.String(), msg.Id.String(), msg.Content)
	payload, err := json.Marshal(map[string]interface{}{
		"type":        evt.EventType(),
		"data":        evt.Payload(),
		"occurred_at": evt.Timestamp(),
	})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("chat", "Failed to publish doubt event", map[string]interface{}{
			"message_id": msg.Id.String(),
			"error":      err.Error(),
		})
	}
}

// AddSeparator closes the current block without snapshotting it. It is
// a no-op when the block is empty so the history never accumulates
// back-to-back separators.
func (s *chatService) AddSeparator(ctx context.Context, userId uuid.UUID, isVoice bool) (*dto.ChatMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	history, err := s.loadHistory(ctx, uow, userId, isVoice)
	if err != nil {
		return nil, err
	}
	if len(conversation.CurrentBlock(history)) == 0 {
		return nil, nil
	}

	sep := entity.NewSeparator(userId, isVoice)
	if err := uow.ChatMessageRepository().Create(ctx, &sep); err != nil {
		return nil, err
	}

	resp := dto.ToChatMessageResponse(&sep)
	return &resp, nil
}

func (s *chatService) SaveCurrentBlock(ctx context.Context, userId uuid.UUID, isVoice bool) (*dto.NewQuestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	history, err := s.loadHistory(ctx, uow, userId, isVoice)
	if err != nil {
		return nil, err
	}

	block := conversation.CurrentBlock(history)
	if len(block) == 0 {
		// Nothing to save: the history is empty or already ends in a
		// separator. No new separator is appended either.
		saved, err := s.fetchSavedQuestions(ctx, uow, userId)
		if err != nil {
			return nil, err
		}
		return &dto.NewQuestionResponse{SavedQuestions: saved}, nil
	}

	title := blockTitle(block)
	savedQuestion := &entity.SavedQuestion{
		Id:       uuid.New(),
		UserId:   userId,
		Title:    title,
		Messages: block,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SavedQuestionRepository().Create(ctx, savedQuestion); err != nil {
		return nil, err
	}

	sep := entity.NewSeparator(userId, isVoice)
	if err := uow.ChatMessageRepository().Create(ctx, &sep); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	saved, err := s.fetchSavedQuestions(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	savedResp := dto.ToSavedQuestionResponse(savedQuestion)
	return &dto.NewQuestionResponse{
		Saved:          &savedResp,
		SavedQuestions: saved,
	}, nil
}

func blockTitle(block conversation.Block) string {
	if len(block) == 0 {
		return "Untitled Question"
	}
	title := block[0].Content
	if title == "" {
		return "Untitled Question"
	}
	runes := []rune(title)
	if len(runes) > 50 {
		return string(runes[:50])
	}
	return title
}

func (s *chatService) fetchSavedQuestions(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]dto.SavedQuestionResponse, error) {
	questions, err := uow.SavedQuestionRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return dto.ToSavedQuestionResponses(questions), nil
}

func (s *chatService) GetSavedQuestions(ctx context.Context, userId uuid.UUID) ([]dto.SavedQuestionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.fetchSavedQuestions(ctx, uow, userId)
}

func (s *chatService) DeleteSavedQuestion(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	question, err := uow.SavedQuestionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if question == nil || question.UserId != userId {
		return ErrSavedQuestionNotFound
	}

	return uow.SavedQuestionRepository().Delete(ctx, id)
}
