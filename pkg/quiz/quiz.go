// Package quiz validates generated quiz items and tracks in-flight
// attempts. An attempt records one answer per question at most; the
// score is final once every question has been answered.
package quiz

import (
	"errors"
	"fmt"
	"time"

	"shiksha-saathi-be/internal/entity"

	"github.com/google/uuid"
)

// OptionsPerQuestion is fixed for every generated item.
const OptionsPerQuestion = 4

var (
	ErrInvalidItem        = errors.New("quiz: invalid quiz item")
	ErrAttemptCompleted   = errors.New("quiz: attempt already completed")
	ErrQuestionOutOfRange = errors.New("quiz: question index out of range")
	ErrOptionOutOfRange   = errors.New("quiz: option index out of range")
)

// ValidateItem checks a single generated question: non-empty text,
// exactly four options, and a correct-answer index pointing into them.
func ValidateItem(item entity.QuizItem) error {
	if item.Question == "" {
		return fmt.Errorf("%w: empty question", ErrInvalidItem)
	}
	if len(item.Options) != OptionsPerQuestion {
		return fmt.Errorf("%w: got %d options, want %d", ErrInvalidItem, len(item.Options), OptionsPerQuestion)
	}
	if item.CorrectAnswer < 0 || item.CorrectAnswer >= OptionsPerQuestion {
		return fmt.Errorf("%w: correct answer index %d", ErrInvalidItem, item.CorrectAnswer)
	}
	return nil
}

// ValidateItems rejects the whole batch if any item is malformed or
// the batch is empty. Generation output is all-or-nothing; a partial
// quiz is worse than the fallback samples.
func ValidateItems(items []entity.QuizItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidItem)
	}
	for i, item := range items {
		if err := ValidateItem(item); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// NewAttempt starts a scored attempt over the given items.
func NewAttempt(userId uuid.UUID, topic string, items []entity.QuizItem) *entity.QuizAttempt {
	return &entity.QuizAttempt{
		Id:        uuid.NewString(),
		UserId:    userId,
		Topic:     topic,
		Items:     items,
		Answers:   make(map[int]int),
		StartedAt: time.Now(),
	}
}

// AnswerResult reports the outcome of one answer submission.
type AnswerResult struct {
	Correct       bool
	CorrectAnswer int
	Score         int
	Completed     bool
}

// Answer records the student's choice for one question. Re-answering
// the same question is a no-op returning the original outcome, so
// double submissions cannot inflate the score. Completing the last
// question finalizes the attempt.
func Answer(attempt *entity.QuizAttempt, question, option int) (AnswerResult, error) {
	if attempt.Completed {
		return AnswerResult{}, ErrAttemptCompleted
	}
	if question < 0 || question >= len(attempt.Items) {
		return AnswerResult{}, ErrQuestionOutOfRange
	}
	if option < 0 || option >= OptionsPerQuestion {
		return AnswerResult{}, ErrOptionOutOfRange
	}

	item := attempt.Items[question]
	if prev, answered := attempt.Answers[question]; answered {
		return AnswerResult{
			Correct:       prev == item.CorrectAnswer,
			CorrectAnswer: item.CorrectAnswer,
			Score:         attempt.Score,
			Completed:     attempt.Completed,
		}, nil
	}

	attempt.Answers[question] = option
	correct := option == item.CorrectAnswer
	if correct {
		attempt.Score++
	}
	if len(attempt.Answers) == len(attempt.Items) {
		attempt.Completed = true
	}

	return AnswerResult{
		Correct:       correct,
		CorrectAnswer: item.CorrectAnswer,
		Score:         attempt.Score,
		Completed:     attempt.Completed,
	}, nil
}

// FinalScore converts a completed attempt into its single ledger row.
func FinalScore(attempt *entity.QuizAttempt) (*entity.QuizScore, error) {
	if !attempt.Completed {
		return nil, errors.New("quiz: attempt not completed")
	}
	topic := attempt.Topic
	if topic == "" {
		topic = "General"
	}
	return &entity.QuizScore{
		UserId:         attempt.UserId,
		QuizId:         attempt.Id,
		Score:          attempt.Score,
		TotalQuestions: len(attempt.Items),
		Topic:          topic,
	}, nil
}
