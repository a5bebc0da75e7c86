package entity

import (
	"time"

	"github.com/google/uuid"
)

// QuizItem is a single multiple-choice question. Options always holds
// exactly four entries and CorrectAnswer indexes into it.
type QuizItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// QuizScore is one row in the score ledger, written once per completed
// attempt.
type QuizScore struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	QuizId         string
	Score          int
	TotalQuestions int
	Topic          string
	CreatedAt      time.Time
}

// TopicInsight is one aggregated doubt cluster shown on the teacher
// dashboard.
type TopicInsight struct {
	Topic       string `json:"topic"`
	Students    int    `json:"students"`
	Difficulty  string `json:"difficulty"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

type QuizAttempt struct {
	Id        string
	UserId    uuid.UUID
	Topic     string
	Items     []QuizItem
	Answers   map[int]int
	Score     int
	Completed bool
	StartedAt time.Time
}
