package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Groq talks to Groq's OpenAI-compatible chat completions endpoint.
type Groq struct {
	APIKey      string
	BaseURL     string
	HTTP        *http.Client
	Temperature float64
	TopP        float64
}

func NewGroq(apiKey string, timeout time.Duration) *Groq {
	return &Groq{
		APIKey:      apiKey,
		BaseURL:     groqBaseURL,
		HTTP:        &http.Client{Timeout: timeout},
		Temperature: 0.6,
		TopP:        0.9,
	}
}

func (g *Groq) Name() string { return "groq" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (g *Groq) Generate(ctx context.Context, req Request) (Response, error) {
	msgs := make([]chatMessage, 0, 2)
	if req.SystemInstruction != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.SystemInstruction})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: req.Prompt})

	buf, err := json.Marshal(chatRequest{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: g.Temperature,
		TopP:        g.TopP,
		MaxTokens:   req.MaxOutputTokens,
	})
	if err != nil {
		return Response{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(g.BaseURL, "/")+"/chat/completions", bytes.NewReader(buf))
	if err != nil {
		return Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.APIKey)

	res, err := g.HTTP.Do(httpReq)
	if err != nil {
		return Response{}, err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		snippet, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return Response{}, fmt.Errorf("chat completions: %s: %s", res.Status, strings.TrimSpace(string(snippet)))
	}

	var out chatResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("decode chat completions: %w", err)
	}
	var text string
	if len(out.Choices) > 0 && out.Choices[0].Message.Content != nil {
		text = *out.Choices[0].Message.Content
	}
	return Response{
		Text: text,
		Usage: Usage{
			Model:        req.Model,
			PromptTokens: out.Usage.PromptTokens,
			OutputTokens: out.Usage.CompletionTokens,
			TotalTokens:  out.Usage.TotalTokens,
		},
	}, nil
}
