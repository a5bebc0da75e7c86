// Package tutor is the HTTP client for the external RAG tutoring
// service that answers syllabus questions and generates quizzes.
package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shiksha-saathi-be/internal/entity"
	"shiksha-saathi-be/pkg/quiz"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// QueryRequest mirrors the tutor service's /query contract. SystemId
// carries the student's grade; PreviousQuestions gives the follow-up
// context from the current question block.
type QueryRequest struct {
	Question          string   `json:"question"`
	SystemId          string   `json:"system_id"`
	IsFollowup        bool     `json:"is_followup"`
	PreviousQuestions []string `json:"previous_questions"`
	IsInSyllabus      bool     `json:"is_in_syllabus"`
	IsNewBlock        bool     `json:"is_new_block"`
	ResponseType      string   `json:"response_type"`
}

type QueryResponse struct {
	Answer string            `json:"answer"`
	Image  string            `json:"image,omitempty"`
	Videos []entity.VideoRef `json:"videos,omitempty"`
}

// Query asks the tutor for an answer to one student question.
func (c *Client) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	if req.PreviousQuestions == nil {
		req.PreviousQuestions = []string{}
	}

	var resp QueryResponse
	if err := c.post(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type generateQuizRequest struct {
	ChatHistory []historyMessage `json:"chat_history"`
}

type historyMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type generateQuizResponse struct {
	Quizzes []entity.QuizItem `json:"quizzes"`
}

// GenerateQuiz derives quiz questions from recent chat history. The
// returned batch is validated; a malformed batch is an error so the
// caller can fall back to sample quizzes.
func (c *Client) GenerateQuiz(ctx context.Context, history []entity.ChatMessage) ([]entity.QuizItem, error) {
	req := generateQuizRequest{
		ChatHistory: make([]historyMessage, 0, len(history)),
	}
	for _, msg := range history {
		req.ChatHistory = append(req.ChatHistory, historyMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	var resp generateQuizResponse
	if err := c.post(ctx, "/generate-quiz", req, &resp); err != nil {
		return nil, err
	}

	if err := quiz.ValidateItems(resp.Quizzes); err != nil {
		return nil, fmt.Errorf("tutor returned malformed quiz: %w", err)
	}
	return resp.Quizzes, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach tutor service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tutor service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode tutor response: %w", err)
	}
	return nil
}
