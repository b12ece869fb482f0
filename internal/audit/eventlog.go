package audit

import (
	"context"
	"database/sql"
	"time"

	"github.com/mind-engage/civics-quiz/internal/llm"
)

type Status string

const (
	StatusUpdated Status = "updated"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// RefreshEvent is one attempt (or skip) of a dynamic question during a sweep.
type RefreshEvent struct {
	ID         int64     `json:"id"`
	SweepID    string    `json:"sweep_id"`
	TestType   string    `json:"test_type"`
	QuestionID int       `json:"question_id"`
	Fact       string    `json:"fact,omitempty"`
	Status     Status    `json:"status"`
	Detail     string    `json:"detail,omitempty"`
	At         time.Time `json:"at"`
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) AppendRefresh(ctx context.Context, e RefreshEvent) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_events (sweep_id, test_type, question_id, fact, status, detail, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.SweepID, e.TestType, e.QuestionID, e.Fact, string(e.Status), e.Detail, at.Unix())
	return err
}

// ListRefresh returns the newest events first.
func (r *EventRepo) ListRefresh(ctx context.Context, limit int) ([]RefreshEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sweep_id, test_type, question_id, fact, status, detail, created_at
		 FROM refresh_events ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RefreshEvent, 0, limit)
	for rows.Next() {
		var e RefreshEvent
		var status string
		var created int64
		if err := rows.Scan(&e.ID, &e.SweepID, &e.TestType, &e.QuestionID, &e.Fact, &status, &e.Detail, &created); err != nil {
			return nil, err
		}
		e.Status = Status(status)
		e.At = time.Unix(created, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

// RecordUsage implements llm.UsageRecorder.
func (r *EventRepo) RecordUsage(ctx context.Context, u llm.Usage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_usage (model, prompt_tokens, output_tokens, total_tokens, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		u.Model, u.PromptTokens, u.OutputTokens, u.TotalTokens, time.Now().Unix())
	return err
}

// UsageTotals sums recorded tokens per model.
func (r *EventRepo) UsageTotals(ctx context.Context) (map[string]llm.Usage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT model, SUM(prompt_tokens), SUM(output_tokens), SUM(total_tokens)
		 FROM llm_usage GROUP BY model`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]llm.Usage{}
	for rows.Next() {
		var u llm.Usage
		if err := rows.Scan(&u.Model, &u.PromptTokens, &u.OutputTokens, &u.TotalTokens); err != nil {
			return nil, err
		}
		out[u.Model] = u
	}
	return out, rows.Err()
}
