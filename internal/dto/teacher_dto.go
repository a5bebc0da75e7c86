package dto

import (
	"time"

	"shiksha-saathi-be/internal/entity"

	"github.com/google/uuid"
)

type DoubtResponse struct {
	Id        uuid.UUID `json:"id"`
	StudentId uuid.UUID `json:"student_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

type UpdateDoubtStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=resolved rejected"`
}

type TopicAnalysisResponse struct {
	Topics     []entity.TopicInsight `json:"topics"`
	IsFallback bool                  `json:"is_fallback"`
}

type TopDoubtSuggestionsResponse struct {
	Suggestions string `json:"suggestions"`
}

type StudentSummaryResponse struct {
	Id           uuid.UUID  `json:"id"`
	FullName     string     `json:"full_name"`
	Grade        string     `json:"grade"`
	MessageCount int64      `json:"message_count"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

type StudentProgressResponse struct {
	StudentId      uuid.UUID `json:"student_id"`
	FullName       string    `json:"full_name"`
	Attempts       int       `json:"attempts"`
	TotalScore     int       `json:"total_score"`
	TotalQuestions int       `json:"total_questions"`
	Accuracy       float64   `json:"accuracy"`
}

func ToDoubtResponses(messages []*entity.ChatMessage) []DoubtResponse {
	out := make([]DoubtResponse, 0, len(messages))
	for _, m := range messages {
		status := m.DoubtStatus
		if status == "" {
			status = entity.DoubtStatusPending
		}
		out = append(out, DoubtResponse{
			Id:        m.Id,
			StudentId: m.UserId,
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Status:    status,
		})
	}
	return out
}
