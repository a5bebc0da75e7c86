package dto

import (
	"time"

	"shiksha-saathi-be/internal/entity"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Content        string           `json:"content" validate:"required"`
	IsVoiceSession bool             `json:"is_voice_session"`
	ResponseType   string           `json:"response_type" validate:"omitempty,oneof=explain solve summarize"`
	File           *entity.FileInfo `json:"file"`
}

type ChatMessageResponse struct {
	Id             uuid.UUID         `json:"id"`
	Role           string            `json:"role"`
	Content        string            `json:"content"`
	Timestamp      time.Time         `json:"timestamp"`
	IsVoiceSession bool              `json:"is_voice_session"`
	File           *entity.FileInfo  `json:"file,omitempty"`
	ResponseType   string            `json:"response_type,omitempty"`
	Image          string            `json:"image,omitempty"`
	Videos         []entity.VideoRef `json:"videos,omitempty"`
	AudioURL       string            `json:"audio_url,omitempty"`
}

type SendMessageResponse struct {
	UserMessage      ChatMessageResponse `json:"user_message"`
	AssistantMessage ChatMessageResponse `json:"assistant_message"`
}

// ChatHistoryResponse carries the full partition history plus the
// derived state of the open question block.
type ChatHistoryResponse struct {
	Messages     []ChatMessageResponse `json:"messages"`
	CurrentBlock []ChatMessageResponse `json:"current_block"`
	IsNewBlock   bool                  `json:"is_new_block"`
}

type SavedQuestionResponse struct {
	Id        uuid.UUID             `json:"id"`
	Title     string                `json:"title"`
	Messages  []ChatMessageResponse `json:"messages"`
	CreatedAt time.Time             `json:"created_at"`
}

type NewQuestionResponse struct {
	Saved          *SavedQuestionResponse  `json:"saved,omitempty"`
	SavedQuestions []SavedQuestionResponse `json:"saved_questions"`
}

func ToChatMessageResponse(m *entity.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		Id:             m.Id,
		Role:           m.Role,
		Content:        m.Content,
		Timestamp:      m.Timestamp,
		IsVoiceSession: m.IsVoiceSession,
		File:           m.File,
		ResponseType:   m.ResponseType,
		Image:          m.Image,
		Videos:         m.Videos,
	}
}

func ToChatMessageResponses(messages []entity.ChatMessage) []ChatMessageResponse {
	out := make([]ChatMessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, ToChatMessageResponse(&messages[i]))
	}
	return out
}

func ToSavedQuestionResponse(q *entity.SavedQuestion) SavedQuestionResponse {
	return SavedQuestionResponse{
		Id:        q.Id,
		Title:     q.Title,
		Messages:  ToChatMessageResponses(q.Messages),
		CreatedAt: q.CreatedAt,
	}
}

func ToSavedQuestionResponses(questions []*entity.SavedQuestion) []SavedQuestionResponse {
	out := make([]SavedQuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, ToSavedQuestionResponse(q))
	}
	return out
}
