// Package llm wraps remote text-generation backends behind a single
// prompt-in, text-out contract shared by fact extraction and grading.
package llm

import (
	"context"
	"errors"
	"fmt"
)

const (
	ModelGeminiFlash = "gemini-1.5-flash"
	ModelLlama70B    = "llama-3.3-70b-versatile"
	ModelLlama8B     = "llama3.3-8b-instant"

	DefaultModel = ModelLlama70B
)

// Invoker performs one stateless completion round trip.
type Invoker interface {
	Complete(ctx context.Context, prompt string, opts ...Option) (string, error)
}

// Request is what a Backend receives after options are applied.
type Request struct {
	Model             string
	Prompt            string
	SystemInstruction string // sent as the backend's system field, never merged into Prompt
	MaxOutputTokens   int    // 0 = backend default
}

type Option func(*Request)

func WithModel(m string) Option { return func(r *Request) { r.Model = m } }

func WithSystemInstruction(s string) Option {
	return func(r *Request) { r.SystemInstruction = s }
}

func WithMaxOutputTokens(n int) Option {
	return func(r *Request) {
		if n > 0 {
			r.MaxOutputTokens = n
		}
	}
}

// Usage is the advisory token accounting of one call.
type Usage struct {
	Model        string `json:"model"`
	PromptTokens int    `json:"prompt_tokens"`
	OutputTokens int    `json:"output_tokens"`
	TotalTokens  int    `json:"total_tokens"`
}

type Response struct {
	Text  string
	Usage Usage
}

// Backend is one remote provider.
type Backend interface {
	Name() string
	Generate(ctx context.Context, req Request) (Response, error)
}

// UsageRecorder receives telemetry for successful calls.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, u Usage) error
}

// ErrEmptyCompletion is returned when the backend produced no text.
var ErrEmptyCompletion = errors.New("llm: empty completion")

// InvocationError wraps transport, auth, quota and protocol failures.
type InvocationError struct {
	Backend string
	Model   string
	Err     error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("llm: %s (%s): %v", e.Backend, e.Model, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }
