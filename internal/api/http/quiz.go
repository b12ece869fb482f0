// internal/api/http/quiz.go
package http

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/civics-quiz/internal/config"
	"github.com/mind-engage/civics-quiz/internal/grading"
	"github.com/mind-engage/civics-quiz/internal/question"
)

// RandomID asks for one question picked uniformly at random.
const RandomID = -1

// QuestionReader is the read side of *question.Store.
type QuestionReader interface {
	AllQuestions(variant string, includeDynamic bool) ([]question.Question, error)
	ByID(variant string, id int) (question.Question, error)
}

type QuizDeps struct {
	Questions       QuestionReader
	Variants        []config.TestVariant
	DefaultTestType string
	Grader          grading.Grader
	Rand            question.Rand // nil uses the math/rand package functions
}

// globalRand uses the package-level source, which is safe for concurrent use.
type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }
func (globalRand) Perm(n int) []int { return rand.Perm(n) }

// MountQuiz registers the quiz API under r (expected to be /api).
func MountQuiz(r chi.Router, d QuizDeps) {
	if d.Rand == nil {
		d.Rand = globalRand{}
	}
	h := &quizHandlers{d: d}

	r.Get("/hello", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Hello from the civics quiz API!"})
	})
	r.Get("/tests", h.listTests)

	r.Route("/tests/{testType}/questions", func(qr chi.Router) {
		qr.Get("/", h.listQuestions)
		qr.Get("/{id}", h.getQuestion)
		qr.Post("/{id}/answer", h.submitAnswer)
	})

	// routes used by the first web client; default variant unless ?testType=
	r.Get("/questions/{id}", h.getQuestion)
	r.Post("/submit-answer/{id}", h.submitAnswer)
}

type quizHandlers struct{ d QuizDeps }

func (h *quizHandlers) testType(r *http.Request) string {
	if tt := strings.TrimSpace(chi.URLParam(r, "testType")); tt != "" {
		return tt
	}
	if tt := strings.TrimSpace(r.URL.Query().Get("testType")); tt != "" {
		return tt
	}
	return h.d.DefaultTestType
}

// GET /tests
func (h *quizHandlers) listTests(w http.ResponseWriter, r *http.Request) {
	out := h.d.Variants
	if out == nil {
		out = []config.TestVariant{}
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /tests/{testType}/questions?n=&includeDynamic=
func (h *quizHandlers) listQuestions(w http.ResponseWriter, r *http.Request) {
	tt := h.testType(r)
	include := parseBoolDefault(r.URL.Query().Get("includeDynamic"), true)
	qs, err := h.d.Questions.AllQuestions(tt, include)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	raw := r.URL.Query().Get("n")
	if raw == "" {
		writeJSON(w, http.StatusOK, qs)
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "n must be a non-negative integer")
		return
	}
	if n > len(qs) {
		log.Printf("api: %s: requested %d questions, only %d available", tt, n, len(qs))
	}
	writeJSON(w, http.StatusOK, question.Sample(qs, n, h.d.Rand))
}

// GET /tests/{testType}/questions/{id}; id -1 picks at random
func (h *quizHandlers) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "question id must be an integer")
		return
	}
	tt := h.testType(r)
	if id == RandomID {
		qs, err := h.d.Questions.AllQuestions(tt, true)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		q, ok := question.Pick(qs, h.d.Rand)
		if !ok {
			writeError(w, http.StatusNotFound, "test type "+strconv.Quote(tt)+" has no questions")
			return
		}
		writeJSON(w, http.StatusOK, q)
		return
	}
	q, err := h.d.Questions.ByID(tt, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

type answerReq struct {
	Answer string `json:"answer"`
}

type answerResp struct {
	Result string `json:"result"`
}

// POST /tests/{testType}/questions/{id}/answer
func (h *quizHandlers) submitAnswer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "question id must be an integer")
		return
	}
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		writeError(w, http.StatusBadRequest, "answer is required")
		return
	}
	q, err := h.d.Questions.ByID(h.testType(r), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	v, err := h.d.Grader.Grade(r.Context(), grading.Q{Question: q.Question, Answers: q.Answers}, req.Answer)
	if err != nil {
		log.Printf("api: grade question %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "grading failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, answerResp{Result: v.Result()})
}
