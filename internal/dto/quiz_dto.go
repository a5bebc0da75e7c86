package dto

import (
	"time"

	"shiksha-saathi-be/internal/entity"
)

type GenerateQuizRequest struct {
	Topic string `json:"topic"`
}

// QuizQuestionResponse omits the correct answer; it is revealed per
// question when the student answers.
type QuizQuestionResponse struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type GenerateQuizResponse struct {
	AttemptId  string                 `json:"attempt_id"`
	Questions  []QuizQuestionResponse `json:"questions"`
	IsFallback bool                   `json:"is_fallback"`
}

type AnswerRequest struct {
	Question int `json:"question" validate:"min=0"`
	Option   int `json:"option" validate:"min=0,max=3"`
}

type AnswerResponse struct {
	Correct       bool `json:"correct"`
	CorrectAnswer int  `json:"correct_answer"`
	Score         int  `json:"score"`
	Completed     bool `json:"completed"`
	// TotalScore is the refreshed all-time score, present once the
	// attempt completes.
	TotalScore int `json:"total_score,omitempty"`
}

type TopicStatResponse struct {
	Topic          string `json:"topic"`
	Attempts       int    `json:"attempts"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
}

type QuizStatsResponse struct {
	Topics         []TopicStatResponse `json:"topics"`
	TotalScore     int                 `json:"total_score"`
	TotalQuestions int                 `json:"total_questions"`
}

type QuizScoreResponse struct {
	QuizId         string    `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Topic          string    `json:"topic"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToQuizQuestionResponses(items []entity.QuizItem) []QuizQuestionResponse {
	out := make([]QuizQuestionResponse, 0, len(items))
	for _, item := range items {
		out = append(out, QuizQuestionResponse{
			Question: item.Question,
			Options:  item.Options,
		})
	}
	return out
}

func ToQuizScoreResponses(scores []*entity.QuizScore) []QuizScoreResponse {
	out := make([]QuizScoreResponse, 0, len(scores))
	for _, s := range scores {
		out = append(out, QuizScoreResponse{
			QuizId:         s.QuizId,
			Score:          s.Score,
			TotalQuestions: s.TotalQuestions,
			Topic:          s.Topic,
			CreatedAt:      s.CreatedAt,
		})
	}
	return out
}
