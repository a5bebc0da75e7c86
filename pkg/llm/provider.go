// Package llm defines a provider-agnostic interface for chat and
// single-shot text generation.
package llm

import "context"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMProvider abstracts a chat completion backend.
type LLMProvider interface {
	// Chat sends a multi-turn conversation and returns the model's reply.
	Chat(ctx context.Context, messages []Message, opts ...Option) (string, error)
	// Generate sends a single prompt and returns the completion.
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)
}

type Options struct {
	Temperature float64
	Model       string
}

type Option func(*Options)

func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = t
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func ApplyOptions(opts ...Option) *Options {
	options := &Options{
		Temperature: 0.7,
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
