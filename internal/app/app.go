// Package app assembles the long-lived services shared by the HTTP server
// and the one-shot refresh command.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"

	"github.com/mind-engage/civics-quiz/internal/audit"
	"github.com/mind-engage/civics-quiz/internal/config"
	"github.com/mind-engage/civics-quiz/internal/db"
	"github.com/mind-engage/civics-quiz/internal/facts"
	"github.com/mind-engage/civics-quiz/internal/llm"
	"github.com/mind-engage/civics-quiz/internal/question"
	"github.com/mind-engage/civics-quiz/internal/refresh"
	"github.com/mind-engage/civics-quiz/internal/source"
	"github.com/mind-engage/civics-quiz/internal/storage"
)

type App struct {
	Config          config.Config
	Variants        []config.TestVariant
	RefreshVariants []refresh.Variant

	DB    *sql.DB
	Audit *audit.EventRepo
	Repo  *question.JSONRepository
	Store *question.Store
	LLM   *llm.Client
	Facts *facts.Table
}

// New loads variants and questions, opens the audit DB and builds the LLM
// client. Missing question files are not fatal; a bad variants file or an
// unreachable audit DB is.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	variants, err := config.LoadVariants(cfg.VariantsFile)
	if err != nil {
		return nil, err
	}
	rvs, err := refresh.NewVariants(variants)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DBDSN
	if dsn == "" && db.Driver(cfg.DBDriver) == db.DriverSQLite {
		dsn = "file:" + filepath.Join(cfg.DataDir, "audit.db") + "?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
	}
	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), dsn)
	if err != nil {
		return nil, fmt.Errorf("audit db: %w", err)
	}
	events := audit.NewEventRepo(dbh)

	bs, err := storage.NewFSStore(cfg.DataDir)
	if err != nil {
		_ = dbh.Close()
		return nil, fmt.Errorf("data dir: %w", err)
	}
	repo := question.NewJSONRepository(bs)
	store := question.Load(ctx, repo, variants)

	client := &llm.Client{
		DefaultModel: cfg.GradeModel,
		Usage:        events,
		Timeout:      cfg.LLMTimeout,
	}
	if cfg.GeminiAPIKey != "" {
		client.Gemini = llm.NewGemini(cfg.GeminiAPIKey, cfg.LLMTimeout)
	} else {
		log.Printf("app: GEMINI_API_KEY not set, gemini models unavailable")
	}
	if cfg.GroqAPIKey != "" {
		client.Groq = llm.NewGroq(cfg.GroqAPIKey, cfg.LLMTimeout)
	} else {
		log.Printf("app: GROQ_API_KEY not set, groq models unavailable")
	}

	log.Printf("app: %d test variants loaded from %s (audit db=%s)", len(variants), cfg.DataDir, cfg.DBDriver)
	return &App{
		Config:          cfg,
		Variants:        variants,
		RefreshVariants: rvs,
		DB:              dbh,
		Audit:           events,
		Repo:            repo,
		Store:           store,
		LLM:             client,
		Facts:           facts.NewTable(source.NewFetcher(cfg.FetchTimeout), cfg.ExtractModel),
	}, nil
}

// Engine returns a refresh engine over every configured variant.
func (a *App) Engine() *refresh.Engine {
	return &refresh.Engine{
		Store:       a.Store,
		Repo:        a.Repo,
		Facts:       a.Facts,
		LLM:         a.LLM,
		Variants:    a.RefreshVariants,
		Interval:    a.Config.RefreshInterval(),
		Concurrency: a.Config.RefreshConcurrency,
		Events:      a.Audit,
	}
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
