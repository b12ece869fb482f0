// Package grading judges a free-text civics answer against a question's
// canonical answers.
package grading

import (
	"context"
	"fmt"
	"strings"

	"github.com/mind-engage/civics-quiz/internal/llm"
)

// SystemInstruction is the evaluator persona sent at the protocol level.
const SystemInstruction = `You are an examiner for the U.S. naturalization civics test.
Decide whether the applicant's answer is acceptable given the official answers.
Accept answers that mean the same thing as an official answer even if worded differently, misspelled, or embedded in a sentence.
Reply with exactly one word: Correct or Incorrect.`

// DefaultMaxOutputTokens keeps the judge to a one-word reply.
const DefaultMaxOutputTokens = 5

// Q is the view of a question needed for grading.
type Q struct {
	Question string
	Answers  []string
}

type Verdict struct {
	Correct bool
	Method  string // "exact" or "judge"
	Reply   string // raw judge reply, empty for exact matches
}

// Result renders the verdict the way the API returns it.
func (v Verdict) Result() string {
	if v.Correct {
		return "true"
	}
	return "false"
}

// Grader grades one answer.
type Grader interface {
	Grade(ctx context.Context, q Q, answer string) (Verdict, error)
}

type Option func(*Judge)

func WithModel(m string) Option { return func(j *Judge) { j.Model = m } }

// WithExactMatch accepts answers equal to an official answer after
// normalization without calling the model. Off by default.
func WithExactMatch(b bool) Option { return func(j *Judge) { j.ExactMatch = b } }

func WithMaxOutputTokens(n int) Option { return func(j *Judge) { j.MaxOutputTokens = n } }

// Judge asks an LLM whether an answer is acceptable.
type Judge struct {
	LLM             llm.Invoker
	Model           string
	MaxOutputTokens int
	ExactMatch      bool
}

func NewJudge(inv llm.Invoker, opts ...Option) *Judge {
	j := &Judge{LLM: inv, Model: llm.DefaultModel, MaxOutputTokens: DefaultMaxOutputTokens}
	for _, o := range opts {
		o(j)
	}
	return j
}

func (j *Judge) Grade(ctx context.Context, q Q, answer string) (Verdict, error) {
	if j.ExactMatch && matchesOfficial(q.Answers, answer) {
		return Verdict{Correct: true, Method: "exact"}, nil
	}
	reply, err := j.LLM.Complete(ctx, Prompt(q, answer),
		llm.WithModel(j.Model),
		llm.WithSystemInstruction(SystemInstruction),
		llm.WithMaxOutputTokens(j.MaxOutputTokens),
	)
	if err != nil {
		return Verdict{}, fmt.Errorf("grade: %w", err)
	}
	return Verdict{Correct: IsCorrect(reply), Method: "judge", Reply: reply}, nil
}

// Prompt builds the judge prompt. Multi-line answers (per-state lists) are
// passed through whole.
func Prompt(q Q, answer string) string {
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(strings.TrimSpace(q.Question))
	b.WriteString("\nOfficial answers:\n")
	for _, a := range q.Answers {
		b.WriteString("- ")
		b.WriteString(strings.TrimSpace(a))
		b.WriteString("\n")
	}
	b.WriteString("Applicant's answer: ")
	b.WriteString(strings.TrimSpace(answer))
	b.WriteString("\nIs the applicant's answer Correct or Incorrect?")
	return b.String()
}

// IsCorrect reads a judge reply: the literal "Correct" passes, anything else
// (including "Incorrect") fails.
func IsCorrect(reply string) bool {
	return strings.Contains(reply, "Correct")
}
