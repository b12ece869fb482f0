package facts

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/mind-engage/civics-quiz/internal/llm"
)

// Fetcher returns a sanitized reference page; *source.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor produces the plain-text answer for one fact.
type Extractor interface {
	Extract(ctx context.Context, f Fetcher, inv llm.Invoker, model string) (string, error)
}

// Fact is the built-in Extractor: fetch URL, wrap the page in Lead and
// Instruction, ask the model.
type Fact struct {
	Kind        Kind
	URL         string
	Lead        string // precedes the page
	Instruction string // follows the page
	Numeric     bool
}

func (f Fact) Prompt(page string) string {
	return f.Lead + "\n" + page + "\n\n" + f.Instruction
}

func (f Fact) Extract(ctx context.Context, fetch Fetcher, inv llm.Invoker, model string) (string, error) {
	page, err := fetch.Fetch(ctx, f.URL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", f.Kind, err)
	}
	opts := []llm.Option{}
	if model != "" {
		opts = append(opts, llm.WithModel(model))
	}
	out, err := inv.Complete(ctx, f.Prompt(page), opts...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", f.Kind, err)
	}
	if !f.Numeric {
		return out, nil
	}
	n, ok := ParseNumericFact(out)
	if !ok {
		log.Printf("facts: %s: no number in model output %q", f.Kind, truncate(out, 80))
		n = InvalidNumber
	}
	return strconv.Itoa(n), nil
}

// Table dispatches a Kind to its Extractor.
type Table struct {
	Fetcher Fetcher
	Model   string // extraction model, llm.ModelGeminiFlash by default

	extractors map[Kind]Extractor
}

func NewTable(f Fetcher, model string) *Table {
	if model == "" {
		model = llm.ModelGeminiFlash
	}
	t := &Table{Fetcher: f, Model: model, extractors: make(map[Kind]Extractor, len(builtin))}
	for k, fact := range builtin {
		t.extractors[k] = fact
	}
	return t
}

// Register replaces the extractor of a kind.
func (t *Table) Register(k Kind, e Extractor) {
	t.extractors[k] = e
}

func (t *Table) Extract(ctx context.Context, k Kind, inv llm.Invoker) (string, error) {
	e, ok := t.extractors[k]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	return e.Extract(ctx, t.Fetcher, inv, t.Model)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
