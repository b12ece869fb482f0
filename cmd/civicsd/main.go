package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/mind-engage/civics-quiz/internal/api/http"
	"github.com/mind-engage/civics-quiz/internal/app"
	"github.com/mind-engage/civics-quiz/internal/config"
	"github.com/mind-engage/civics-quiz/internal/grading"
	"github.com/mind-engage/civics-quiz/internal/refresh"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Services ---
	bootCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	a, err := app.New(bootCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer a.Close()

	grader := grading.NewJudge(a.LLM,
		grading.WithModel(cfg.GradeModel),
		grading.WithExactMatch(cfg.GradeExactMatch),
	)

	// --- Background refresh ---
	var sched *refresh.Scheduler
	var trigger api.RefreshTrigger
	if cfg.RefreshEnabled {
		sched = refresh.NewScheduler(a.Engine(), cfg.RefreshCheckEvery, cfg.RefreshOnStartup)
		// not the signal context: Stop cancels it after the HTTP server drains
		sched.Start(context.Background())
		trigger = sched
	} else {
		log.Printf("dynamic refresh disabled")
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.LLMTimeout + 10*time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(ar chi.Router) {
		api.MountQuiz(ar, api.QuizDeps{
			Questions:       a.Store,
			Variants:        a.Variants,
			DefaultTestType: cfg.DefaultTestType,
			Grader:          grader,
		})
		api.MountRefresh(ar, api.RefreshDeps{Scheduler: trigger, Audit: a.Audit})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := a.DB.PingContext(r.Context()); err != nil {
			http.Error(w, "audit db: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
	})

	if cfg.Production {
		api.MountClient(r, cfg.StaticDir)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (production=%v, refresh=%v)", cfg.HTTPAddr, cfg.Production, cfg.RefreshEnabled)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
		log.Printf("shutting down")
	}

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	if sched != nil {
		if err := sched.Stop(shutCtx); err != nil {
			log.Printf("refresh scheduler did not stop: %v", err)
		}
	}
}
