package quiz

import (
	"errors"
	"testing"

	"shiksha-saathi-be/internal/entity"

	"github.com/google/uuid"
)

func sampleItems() []entity.QuizItem {
	return []entity.QuizItem{
		{
			Question:      "What is the capital of France?",
			Options:       []string{"London", "Berlin", "Paris", "Madrid"},
			CorrectAnswer: 2,
		},
		{
			Question:      "Which planet is closest to the Sun?",
			Options:       []string{"Venus", "Mercury", "Mars", "Earth"},
			CorrectAnswer: 1,
		},
	}
}

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []entity.QuizItem
		wantErr bool
	}{
		{"valid batch", sampleItems(), false},
		{"empty batch", nil, true},
		{"three options", []entity.QuizItem{{Question: "q", Options: []string{"a", "b", "c"}, CorrectAnswer: 0}}, true},
		{"five options", []entity.QuizItem{{Question: "q", Options: []string{"a", "b", "c", "d", "e"}, CorrectAnswer: 0}}, true},
		{"answer index too high", []entity.QuizItem{{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 4}}, true},
		{"negative answer index", []entity.QuizItem{{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: -1}}, true},
		{"empty question text", []entity.QuizItem{{Question: "", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItems(tt.items)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateItems() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidItem) {
				t.Errorf("error should wrap ErrInvalidItem, got %v", err)
			}
		})
	}
}

func TestAnswerScoring(t *testing.T) {
	attempt := NewAttempt(uuid.New(), "Geography", sampleItems())

	res, err := Answer(attempt, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Correct || res.Score != 1 || res.Completed {
		t.Errorf("first answer: got %+v", res)
	}

	res, err = Answer(attempt, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Correct || res.Score != 1 || !res.Completed {
		t.Errorf("second answer: got %+v", res)
	}
	if res.CorrectAnswer != 1 {
		t.Errorf("should reveal correct answer, got %d", res.CorrectAnswer)
	}
}

func TestAnswerIsIdempotentPerQuestion(t *testing.T) {
	attempt := NewAttempt(uuid.New(), "", sampleItems())

	first, err := Answer(attempt, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A repeat with a different option must not change anything.
	again, err := Answer(attempt, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Score != first.Score {
		t.Errorf("repeat changed score: %d -> %d", first.Score, again.Score)
	}
	if !again.Correct {
		t.Error("repeat should report the original outcome")
	}
	if attempt.Answers[0] != 2 {
		t.Errorf("stored answer changed to %d", attempt.Answers[0])
	}
}

func TestAnswerBounds(t *testing.T) {
	attempt := NewAttempt(uuid.New(), "", sampleItems())

	if _, err := Answer(attempt, 5, 0); !errors.Is(err, ErrQuestionOutOfRange) {
		t.Errorf("got %v, want ErrQuestionOutOfRange", err)
	}
	if _, err := Answer(attempt, 0, 7); !errors.Is(err, ErrOptionOutOfRange) {
		t.Errorf("got %v, want ErrOptionOutOfRange", err)
	}
}

func TestAnswerAfterCompletion(t *testing.T) {
	attempt := NewAttempt(uuid.New(), "", sampleItems())
	if _, err := Answer(attempt, 0, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := Answer(attempt, 1, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := Answer(attempt, 0, 2); !errors.Is(err, ErrAttemptCompleted) {
		t.Errorf("got %v, want ErrAttemptCompleted", err)
	}
}

func TestFinalScore(t *testing.T) {
	attempt := NewAttempt(uuid.New(), "", sampleItems())
	if _, err := FinalScore(attempt); err == nil {
		t.Error("incomplete attempt should not produce a score row")
	}

	if _, err := Answer(attempt, 0, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := Answer(attempt, 1, 1); err != nil {
		t.Fatal(err)
	}

	score, err := FinalScore(attempt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score.Score != 2 || score.TotalQuestions != 2 {
		t.Errorf("got %d/%d, want 2/2", score.Score, score.TotalQuestions)
	}
	if score.Topic != "General" {
		t.Errorf("empty topic should default to General, got %q", score.Topic)
	}
	if score.QuizId != attempt.Id {
		t.Errorf("score should reference the attempt id")
	}
}
