// Package refresh keeps dynamic question answers current: it decides which
// answers are stale, re-extracts them, and persists each variant.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mind-engage/civics-quiz/internal/audit"
	"github.com/mind-engage/civics-quiz/internal/config"
	"github.com/mind-engage/civics-quiz/internal/facts"
	"github.com/mind-engage/civics-quiz/internal/llm"
	"github.com/mind-engage/civics-quiz/internal/question"
)

type Clock func() time.Time

// FactSource is satisfied by *facts.Table.
type FactSource interface {
	Extract(ctx context.Context, k facts.Kind, inv llm.Invoker) (string, error)
}

// EventSink receives one event per attempted or skipped question.
type EventSink interface {
	AppendRefresh(ctx context.Context, e audit.RefreshEvent) error
}

// ErrEmptyAnswer is recorded when an extractor succeeds with blank output.
var ErrEmptyAnswer = errors.New("refresh: extractor returned an empty answer")

const flushTimeout = 10 * time.Second

// Variant couples a test variant with its dynamic fact map.
type Variant struct {
	Config config.TestVariant
	Facts  map[int]facts.Kind
}

// NewVariants validates the fact names of every variant.
func NewVariants(vs []config.TestVariant) ([]Variant, error) {
	out := make([]Variant, 0, len(vs))
	var errs []error
	for _, v := range vs {
		m, err := facts.BuildMap(v.DynamicFacts)
		if err != nil {
			errs = append(errs, fmt.Errorf("variant %s: %w", v.TestType, err))
			continue
		}
		out = append(out, Variant{Config: v, Facts: m})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

type Engine struct {
	Store    *question.Store
	Repo     question.Repository
	Facts    FactSource
	LLM      llm.Invoker
	Variants []Variant

	Interval    time.Duration
	Now         Clock
	Concurrency int  // extractions in flight per variant; <=1 is sequential
	Force       bool // ignore staleness

	Events EventSink     // optional
	NewID  func() string // sweep ids; uuid by default
}

type VariantReport struct {
	Variant    string `json:"variant"`
	Attempted  int    `json:"attempted"`
	Updated    int    `json:"updated"`
	Failed     int    `json:"failed"`
	Skipped    int    `json:"skipped"`
	Fresh      int    `json:"fresh"`
	Persisted  bool   `json:"persisted"`
	PersistErr string `json:"persist_error,omitempty"`
}

type Report struct {
	SweepID  string          `json:"sweep_id"`
	Started  time.Time       `json:"started"`
	Finished time.Time       `json:"finished"`
	Variants []VariantReport `json:"variants"`
}

// Updated totals updated questions across variants.
func (r Report) Updated() int {
	n := 0
	for _, v := range r.Variants {
		n += v.Updated
	}
	return n
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Engine) interval() time.Duration {
	if e.Interval <= 0 {
		return DefaultInterval
	}
	return e.Interval
}

// Sweep runs one pass over every configured variant. Per-question failures
// are logged and counted, never returned; the only error is cancellation.
func (e *Engine) Sweep(ctx context.Context) (Report, error) {
	id := ""
	if e.NewID != nil {
		id = e.NewID()
	} else {
		id = uuid.NewString()
	}
	rep := Report{SweepID: id, Started: e.now()}
	log.Printf("refresh: sweep %s started (%d variants)", id, len(e.Variants))

	var err error
	for _, v := range e.Variants {
		if err = ctx.Err(); err != nil {
			break
		}
		var vr VariantReport
		vr, err = e.sweepVariant(ctx, id, v)
		rep.Variants = append(rep.Variants, vr)
		if err != nil {
			break
		}
	}
	rep.Finished = e.now()
	if err != nil {
		log.Printf("refresh: sweep %s interrupted: %v", id, err)
		return rep, err
	}
	log.Printf("refresh: sweep %s done, %d updated in %s", id, rep.Updated(), rep.Finished.Sub(rep.Started))
	return rep, nil
}

type job struct {
	id   int
	kind facts.Kind
}

func (e *Engine) sweepVariant(ctx context.Context, sweepID string, v Variant) (VariantReport, error) {
	tt := v.Config.TestType
	vr := VariantReport{Variant: tt}

	qs, err := e.Store.DynamicQuestions(tt)
	if err != nil {
		log.Printf("refresh: %s: %v", tt, err)
		return vr, nil
	}

	now := e.now()
	var due []job
	for _, q := range qs {
		kind, ok := v.Facts[q.ID]
		if !ok {
			log.Printf("refresh: %s question %d is dynamic but has no fact mapping, skipping", tt, q.ID)
			vr.Skipped++
			e.emit(ctx, audit.RefreshEvent{SweepID: sweepID, TestType: tt, QuestionID: q.ID,
				Status: audit.StatusSkipped, Detail: "no fact mapping", At: now})
			continue
		}
		if !e.Force && !IsStale(q.LastTimeUpdated, now, e.interval()) {
			vr.Fresh++
			continue
		}
		due = append(due, job{id: q.ID, kind: kind})
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	limit := e.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for _, j := range due {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			err := e.refreshOne(ctx, tt, j)
			ev := audit.RefreshEvent{SweepID: sweepID, TestType: tt, QuestionID: j.id,
				Fact: string(j.kind), Status: audit.StatusUpdated, At: e.now()}

			mu.Lock()
			vr.Attempted++
			if err != nil {
				vr.Failed++
				ev.Status, ev.Detail = audit.StatusFailed, err.Error()
			} else {
				vr.Updated++
			}
			mu.Unlock()

			e.emit(ctx, ev)
			return nil
		})
	}
	_ = g.Wait()

	if vr.Updated > 0 {
		e.persist(ctx, v.Config, &vr)
	}
	return vr, ctx.Err()
}

func (e *Engine) refreshOne(ctx context.Context, tt string, j job) error {
	text, err := e.Facts.Extract(ctx, j.kind, e.LLM)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyAnswer
	}
	if err != nil {
		log.Printf("refresh: %s question %d (%s) failed: %v", tt, j.id, j.kind, err)
		return err
	}
	stamp := e.now().Format(StampLayout)
	if err := e.Store.ApplyRefresh(tt, j.id, []string{strings.TrimSpace(text)}, stamp); err != nil {
		log.Printf("refresh: %s question %d not applied: %v", tt, j.id, err)
		return err
	}
	log.Printf("refresh: %s question %d (%s) updated", tt, j.id, j.kind)
	return nil
}

// persist writes the whole variant. After cancellation the already-applied
// updates are still flushed under a short detached deadline.
func (e *Engine) persist(ctx context.Context, v config.TestVariant, vr *VariantReport) {
	saveCtx := ctx
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		saveCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
		defer cancel()
	}
	all, err := e.Store.AllQuestions(v.TestType, true)
	if err == nil {
		err = e.Repo.Save(saveCtx, v, all)
	}
	if err != nil {
		log.Printf("refresh: persist %s: %v", v.TestType, err)
		vr.PersistErr = err.Error()
		return
	}
	vr.Persisted = true
}

func (e *Engine) emit(ctx context.Context, ev audit.RefreshEvent) {
	if e.Events == nil {
		return
	}
	if err := e.Events.AppendRefresh(context.WithoutCancel(ctx), ev); err != nil {
		log.Printf("refresh: audit event dropped: %v", err)
	}
}
