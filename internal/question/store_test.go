package question_test

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/mind-engage/civics-quiz/internal/config"
	"github.com/mind-engage/civics-quiz/internal/question"
	"github.com/mind-engage/civics-quiz/internal/storage"
)

func strp(s string) *string { return &s }

func seed() []question.Question {
	return []question.Question{
		{ID: 1, Section: "Principles", Question: "What is the supreme law of the land?", Answers: []string{"the Constitution"}, IsRequiredFor65Plus: false},
		{ID: 28, Section: "System of Government", Question: "What is the name of the President of the United States now?", Answers: []string{"Old Name"}, IsRequiredFor65Plus: true, IsDynamicAnswer: true, LastTimeUpdated: strp("2024-01-01T00:00:00")},
		{ID: 29, Section: "System of Government", Question: "What is the name of the Vice President of the United States now?", Answers: []string{"Someone"}, IsDynamicAnswer: true},
	}
}

func newStore(t *testing.T) *question.Store {
	t.Helper()
	s := question.NewStore()
	s.Put("2008", seed())
	return s
}

func TestByID(t *testing.T) {
	s := newStore(t)
	q, err := s.ByID("2008", 28)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if q.ID != 28 {
		t.Fatalf("got id %d", q.ID)
	}

	_, err = s.ByID("2008", 404)
	var nf *question.NotFoundError
	if !errors.As(err, &nf) || !nf.HasID || nf.ID != 404 || nf.Variant != "2008" {
		t.Fatalf("expected NotFoundError for id, got %v", err)
	}
	if !errors.Is(err, question.ErrNotFound) {
		t.Fatalf("expected errors.Is(ErrNotFound)")
	}

	_, err = s.ByID("1999", 1)
	if !errors.As(err, &nf) || nf.HasID {
		t.Fatalf("expected variant NotFoundError, got %v", err)
	}
}

func TestAllAndDynamicQuestions(t *testing.T) {
	s := newStore(t)
	all, err := s.AllQuestions("2008", true)
	if err != nil || len(all) != 3 {
		t.Fatalf("AllQuestions(true) = %d, %v", len(all), err)
	}
	if all[0].ID != 1 || all[2].ID != 29 {
		t.Fatalf("order not preserved: %d..%d", all[0].ID, all[2].ID)
	}
	static, _ := s.AllQuestions("2008", false)
	if len(static) != 1 || static[0].ID != 1 {
		t.Fatalf("AllQuestions(false) = %+v", static)
	}
	dyn, _ := s.DynamicQuestions("2008")
	if len(dyn) != 2 || dyn[0].ID != 28 || dyn[1].ID != 29 {
		t.Fatalf("DynamicQuestions = %+v", dyn)
	}
	if _, err := s.DynamicQuestions("nope"); !errors.Is(err, question.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReadsAreCopies(t *testing.T) {
	s := newStore(t)
	q, _ := s.ByID("2008", 28)
	q.Answers[0] = "mutated"
	*q.LastTimeUpdated = "mutated"

	again, _ := s.ByID("2008", 28)
	if again.Answers[0] != "Old Name" || *again.LastTimeUpdated != "2024-01-01T00:00:00" {
		t.Fatalf("store leaked internal state: %+v", again)
	}
}

func TestApplyRefresh(t *testing.T) {
	s := newStore(t)
	if err := s.ApplyRefresh("2008", 28, []string{"Jane Doe"}, "2025-06-01T10:00:00Z"); err != nil {
		t.Fatalf("ApplyRefresh: %v", err)
	}
	q, _ := s.ByID("2008", 28)
	if !reflect.DeepEqual(q.Answers, []string{"Jane Doe"}) || *q.LastTimeUpdated != "2025-06-01T10:00:00Z" {
		t.Fatalf("refresh not applied: %+v", q)
	}

	err := s.ApplyRefresh("2008", 1, []string{"x"}, "2025-06-01T10:00:00Z")
	if !errors.Is(err, question.ErrNotDynamic) {
		t.Fatalf("expected ErrNotDynamic, got %v", err)
	}
	static, _ := s.ByID("2008", 1)
	if static.LastTimeUpdated != nil {
		t.Fatalf("non-dynamic question got a timestamp")
	}
}

func TestLoadMissingFileYieldsEmptySet(t *testing.T) {
	bs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	repo := question.NewJSONRepository(bs)
	variants := []config.TestVariant{{TestType: "2008", File: "2008.json"}, {TestType: "2025", File: "missing.json"}}
	if err := repo.Save(context.Background(), variants[0], seed()); err != nil {
		t.Fatal(err)
	}

	s := question.Load(context.Background(), repo, variants)
	if got := s.Variants(); !reflect.DeepEqual(got, []string{"2008", "2025"}) {
		t.Fatalf("Variants = %v", got)
	}
	qs, err := s.AllQuestions("2025", true)
	if err != nil {
		t.Fatalf("missing file must not make the variant unknown: %v", err)
	}
	if len(qs) != 0 {
		t.Fatalf("expected empty set, got %d", len(qs))
	}
	if qs, _ := s.AllQuestions("2008", true); len(qs) != 3 {
		t.Fatalf("expected 3 questions for 2008, got %d", len(qs))
	}
}

func TestPersistReloadRoundTrip(t *testing.T) {
	bs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	repo := question.NewJSONRepository(bs)
	v := config.TestVariant{TestType: "2008", File: "2008_civics_questions.json"}

	in := seed()
	in[2].LastTimeUpdated = strp("not a timestamp")
	in = append(in, question.Question{ID: 40, Section: "System of Government", Question: "Who is the Chief Justice of the United States now?", Answers: []string{}, IsDynamicAnswer: true})
	if err := repo.Save(context.Background(), v, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := repo.Load(context.Background(), v)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
	}
}

func TestEmptyAnswersSurviveLoadSave(t *testing.T) {
	bs, err := storage.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	v := config.TestVariant{TestType: "2008", File: "2008_civics_questions.json"}
	raw := `{"questions":[{"id":1,"section":"s","question":"q","answers":[],"isRequiredFor65Plus":false}]}`
	if _, err := bs.Put(v.File, strings.NewReader(raw)); err != nil {
		t.Fatal(err)
	}
	repo := question.NewJSONRepository(bs)
	s := question.Load(context.Background(), repo, []config.TestVariant{v})

	all, err := s.AllQuestions("2008", true)
	if err != nil || len(all) != 1 {
		t.Fatalf("AllQuestions = %+v, %v", all, err)
	}
	if all[0].Answers == nil {
		t.Fatalf("empty answers read back as nil")
	}
	if err := repo.Save(context.Background(), v, all); err != nil {
		t.Fatalf("save: %v", err)
	}

	rc, err := bs.Get(v.File)
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"answers": []`) || strings.Contains(string(b), "null") {
		t.Fatalf("empty answers not written as []:\n%s", b)
	}
}

func TestSampleClampsToPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pool := seed()
	got := question.Sample(pool, 50, rng)
	if len(got) != len(pool) {
		t.Fatalf("expected full pool of %d, got %d", len(pool), len(got))
	}
	seen := map[int]bool{}
	for _, q := range got {
		if seen[q.ID] {
			t.Fatalf("sampled id %d twice", q.ID)
		}
		seen[q.ID] = true
	}
	if len(question.Sample(pool, 0, rng)) != 0 {
		t.Fatalf("n=0 should be empty")
	}
}

func TestPickFromPoolOfTen(t *testing.T) {
	pool := make([]question.Question, 10)
	ids := map[int]bool{}
	for i := range pool {
		pool[i] = question.Question{ID: i + 1, Question: "q"}
		ids[i+1] = true
	}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 25; i++ {
		q, ok := question.Pick(pool, rng)
		if !ok || !ids[q.ID] {
			t.Fatalf("picked %+v outside the pool", q)
		}
	}
	if _, ok := question.Pick(nil, rng); ok {
		t.Fatalf("empty pool must report false")
	}
}
