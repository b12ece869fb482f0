package question

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/mind-engage/civics-quiz/internal/config"
)

type variantSet struct {
	questions []*Question
	byID      map[int]*Question
}

func newVariantSet(qs []Question) *variantSet {
	vs := &variantSet{
		questions: make([]*Question, 0, len(qs)),
		byID:      make(map[int]*Question, len(qs)),
	}
	for i := range qs {
		q := qs[i].clone()
		if _, dup := vs.byID[q.ID]; dup {
			log.Printf("question: duplicate id %d, keeping the first", q.ID)
			continue
		}
		vs.questions = append(vs.questions, &q)
		vs.byID[q.ID] = &q
	}
	return vs
}

// Store is the in-memory registry of questions per test variant. Reads hand
// out deep copies; ApplyRefresh is the only mutator.
type Store struct {
	mu       sync.RWMutex
	order    []string
	variants map[string]*variantSet
}

func NewStore() *Store {
	return &Store{variants: map[string]*variantSet{}}
}

// Load reads every variant through repo. A variant whose file is missing or
// unreadable is logged and served as an empty set.
func Load(ctx context.Context, repo Repository, variants []config.TestVariant) *Store {
	s := NewStore()
	for _, v := range variants {
		qs, err := repo.Load(ctx, v)
		if err != nil {
			log.Printf("question: load %s (%s): %v; serving an empty set", v.TestType, v.File, err)
			qs = nil
		}
		s.Put(v.TestType, qs)
	}
	return s
}

// Put replaces the whole question set of a variant.
func (s *Store) Put(variant string, qs []Question) {
	vs := newVariantSet(qs)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.variants[variant]; !ok {
		s.order = append(s.order, variant)
	}
	s.variants[variant] = vs
}

func (s *Store) Variants() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

func (s *Store) AllQuestions(variant string, includeDynamic bool) ([]Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vs, ok := s.variants[variant]
	if !ok {
		return nil, variantNotFound(variant)
	}
	out := make([]Question, 0, len(vs.questions))
	for _, q := range vs.questions {
		if !includeDynamic && q.IsDynamicAnswer {
			continue
		}
		out = append(out, q.clone())
	}
	return out, nil
}

func (s *Store) ByID(variant string, id int) (Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vs, ok := s.variants[variant]
	if !ok {
		return Question{}, variantNotFound(variant)
	}
	q, ok := vs.byID[id]
	if !ok {
		return Question{}, questionNotFound(variant, id)
	}
	return q.clone(), nil
}

func (s *Store) DynamicQuestions(variant string) ([]Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vs, ok := s.variants[variant]
	if !ok {
		return nil, variantNotFound(variant)
	}
	var out []Question
	for _, q := range vs.questions {
		if q.IsDynamicAnswer {
			out = append(out, q.clone())
		}
	}
	return out, nil
}

// ApplyRefresh replaces the answers and timestamp of a dynamic question.
func (s *Store) ApplyRefresh(variant string, id int, answers []string, stamp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vs, ok := s.variants[variant]
	if !ok {
		return variantNotFound(variant)
	}
	q, ok := vs.byID[id]
	if !ok {
		return questionNotFound(variant, id)
	}
	if !q.IsDynamicAnswer {
		return fmt.Errorf("question %d in %s: %w", id, variant, ErrNotDynamic)
	}
	q.Answers = append(make([]string, 0, len(answers)), answers...)
	q.LastTimeUpdated = &stamp
	return nil
}
