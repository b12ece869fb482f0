package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mind-engage/civics-quiz/internal/llm"
)

type fakeBackend struct {
	name string
	resp llm.Response
	err  error
	got  []llm.Request
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) Generate(_ context.Context, req llm.Request) (llm.Response, error) {
	f.got = append(f.got, req)
	return f.resp, f.err
}

type fakeRecorder struct{ usages []llm.Usage }

func (r *fakeRecorder) RecordUsage(_ context.Context, u llm.Usage) error {
	r.usages = append(r.usages, u)
	return errors.New("recorder down") // must not fail the call
}

func TestClientRoutesByModel(t *testing.T) {
	gem := &fakeBackend{name: "gemini", resp: llm.Response{Text: "from gemini"}}
	groq := &fakeBackend{name: "groq", resp: llm.Response{Text: "from groq"}}
	c := &llm.Client{Gemini: gem, Groq: groq}

	out, err := c.Complete(context.Background(), "hi", llm.WithModel(llm.ModelGeminiFlash))
	if err != nil || out != "from gemini" {
		t.Fatalf("gemini route: %q %v", out, err)
	}
	out, err = c.Complete(context.Background(), "hi")
	if err != nil || out != "from groq" {
		t.Fatalf("default route: %q %v", out, err)
	}
	if groq.got[0].Model != llm.DefaultModel {
		t.Fatalf("default model = %q", groq.got[0].Model)
	}
}

func TestClientPassesOptionsThrough(t *testing.T) {
	groq := &fakeBackend{name: "groq", resp: llm.Response{Text: "Correct"}}
	c := &llm.Client{Groq: groq}

	_, err := c.Complete(context.Background(), "prompt body",
		llm.WithSystemInstruction("You are an evaluator."),
		llm.WithMaxOutputTokens(5),
	)
	if err != nil {
		t.Fatal(err)
	}
	req := groq.got[0]
	if req.Prompt != "prompt body" {
		t.Fatalf("system instruction leaked into prompt: %q", req.Prompt)
	}
	if req.SystemInstruction != "You are an evaluator." || req.MaxOutputTokens != 5 {
		t.Fatalf("options not applied: %+v", req)
	}
}

func TestClientEmptyCompletion(t *testing.T) {
	c := &llm.Client{Groq: &fakeBackend{name: "groq", resp: llm.Response{Text: "  \n"}}}
	_, err := c.Complete(context.Background(), "x")
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("expected ErrEmptyCompletion, got %v", err)
	}
}

func TestClientWrapsBackendErrors(t *testing.T) {
	cause := errors.New("429 quota exceeded")
	c := &llm.Client{Groq: &fakeBackend{name: "groq", err: cause}}
	_, err := c.Complete(context.Background(), "x")
	var ie *llm.InvocationError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvocationError, got %T %v", err, err)
	}
	if ie.Backend != "groq" || !errors.Is(err, cause) {
		t.Fatalf("unexpected error detail: %+v", ie)
	}
}

func TestClientMissingBackend(t *testing.T) {
	c := &llm.Client{}
	_, err := c.Complete(context.Background(), "x", llm.WithModel(llm.ModelGeminiFlash))
	var ie *llm.InvocationError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InvocationError, got %v", err)
	}
}

func TestClientRecordsUsage(t *testing.T) {
	rec := &fakeRecorder{}
	c := &llm.Client{
		Groq:  &fakeBackend{name: "groq", resp: llm.Response{Text: "ok", Usage: llm.Usage{PromptTokens: 10, OutputTokens: 2}}},
		Usage: rec,
	}
	if _, err := c.Complete(context.Background(), "x"); err != nil {
		t.Fatalf("recorder failure must not fail the call: %v", err)
	}
	if len(rec.usages) != 1 {
		t.Fatalf("expected 1 usage record, got %d", len(rec.usages))
	}
	u := rec.usages[0]
	if u.TotalTokens != 12 || u.Model != llm.DefaultModel {
		t.Fatalf("unexpected usage: %+v", u)
	}
}
