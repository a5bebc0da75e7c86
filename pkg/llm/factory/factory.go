package factory

import (
	"fmt"

	"shiksha-saathi-be/internal/config"
	"shiksha-saathi-be/pkg/llm"
	"shiksha-saathi-be/pkg/llm/gemini"
	"shiksha-saathi-be/pkg/llm/ollama"
	"shiksha-saathi-be/pkg/llm/openai"
)

// NewLLMProvider builds the configured provider. Unknown provider
// names are an error rather than a silent default.
func NewLLMProvider(cfg *config.Config) (llm.LLMProvider, error) {
	switch cfg.Ai.LLMProvider {
	case "gemini":
		if cfg.Keys.GoogleGemini == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.LLMModel), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel), nil
	case "openai":
		if cfg.Keys.OpenAI == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.LLMModel, cfg.Ai.OpenAIBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Ai.LLMProvider)
	}
}
