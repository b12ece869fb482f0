package llm

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
)

// Client routes requests to Gemini for "gemini*" models and to Groq for
// everything else.
type Client struct {
	DefaultModel string
	Gemini       Backend
	Groq         Backend
	Usage        UsageRecorder
	Timeout      time.Duration // per call; 0 = caller's context only
}

func (c *Client) backendFor(model string) Backend {
	if strings.HasPrefix(strings.ToLower(model), "gemini") {
		return c.Gemini
	}
	return c.Groq
}

func (c *Client) Complete(ctx context.Context, prompt string, opts ...Option) (string, error) {
	req := Request{Model: c.DefaultModel, Prompt: prompt}
	if req.Model == "" {
		req.Model = DefaultModel
	}
	for _, o := range opts {
		o(&req)
	}

	b := c.backendFor(req.Model)
	if b == nil {
		return "", &InvocationError{Backend: "none", Model: req.Model, Err: errors.New("no backend configured for model")}
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	resp, err := b.Generate(ctx, req)
	if err != nil {
		var ie *InvocationError
		if errors.As(err, &ie) || errors.Is(err, ErrEmptyCompletion) {
			return "", err
		}
		return "", &InvocationError{Backend: b.Name(), Model: req.Model, Err: err}
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", ErrEmptyCompletion
	}

	c.record(ctx, b.Name(), resp.Usage, req.Model)
	return resp.Text, nil
}

func (c *Client) record(ctx context.Context, backend string, u Usage, model string) {
	if u.Model == "" {
		u.Model = model
	}
	if u.TotalTokens == 0 {
		u.TotalTokens = u.PromptTokens + u.OutputTokens
	}
	log.Printf("llm: %s model=%s prompt_tokens=%d output_tokens=%d total=%d",
		backend, u.Model, u.PromptTokens, u.OutputTokens, u.TotalTokens)
	if c.Usage == nil {
		return
	}
	// the call already succeeded; usage is best effort even if ctx is ending
	if err := c.Usage.RecordUsage(context.WithoutCancel(ctx), u); err != nil {
		log.Printf("llm: record usage: %v", err)
	}
}
