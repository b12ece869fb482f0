package question

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/mind-engage/civics-quiz/internal/config"
	"github.com/mind-engage/civics-quiz/internal/storage"
)

// Repository is the durable source of truth for a variant's question set.
type Repository interface {
	Load(ctx context.Context, v config.TestVariant) ([]Question, error)
	Save(ctx context.Context, v config.TestVariant, qs []Question) error
}

// JSONRepository stores each variant as {"questions": [...]} in a blob store.
type JSONRepository struct {
	Blobs storage.BlobStore
}

func NewJSONRepository(bs storage.BlobStore) *JSONRepository {
	return &JSONRepository{Blobs: bs}
}

func (r *JSONRepository) Load(ctx context.Context, v config.TestVariant) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := r.Blobs.Get(v.File)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var f questionFile
	if err := json.NewDecoder(rc).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", v.File, err)
	}
	return f.Questions, nil
}

// Save overwrites the full file, pretty-printed, preserving order.
func (r *JSONRepository) Save(ctx context.Context, v config.TestVariant, qs []Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if qs == nil {
		qs = []Question{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(questionFile{Questions: qs}); err != nil {
		return err
	}
	if _, err := r.Blobs.Put(v.File, &buf); err != nil {
		return fmt.Errorf("write %s: %w", v.File, err)
	}
	return nil
}
