// Package speech wraps the optional text-to-speech sidecar used for
// voice sessions. Synthesis failures are reported but never block the
// chat flow.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrDisabled = errors.New("speech: synthesis disabled")

type Synthesizer struct {
	BaseURL  string
	Language string
	HTTP     *http.Client
}

// NewSynthesizer returns a disabled synthesizer when baseURL is empty.
func NewSynthesizer(baseURL, language string) *Synthesizer {
	return &Synthesizer{
		BaseURL:  baseURL,
		Language: language,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *Synthesizer) Enabled() bool {
	return s.BaseURL != ""
}

type synthesizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type synthesizeResponse struct {
	AudioURL string `json:"audio_url"`
}

// Synthesize converts answer text to speech and returns the audio URL.
// Markdown emphasis asterisks are stripped first so they are not read
// aloud.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}

	clean := strings.ReplaceAll(text, "*", "")

	jsonBody, err := json.Marshal(synthesizeRequest{
		Text:     clean,
		Language: s.Language,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/synthesize", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach speech service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("speech service returned status %d", resp.StatusCode)
	}

	var synthResp synthesizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&synthResp); err != nil {
		return "", fmt.Errorf("failed to decode speech response: %w", err)
	}
	return synthResp.AudioURL, nil
}
