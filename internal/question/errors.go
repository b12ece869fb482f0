package question

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrNotDynamic = errors.New("question is not dynamic")
)

// NotFoundError reports an unknown test variant (HasID false) or question id.
type NotFoundError struct {
	Variant string
	ID      int
	HasID   bool
}

func (e *NotFoundError) Error() string {
	if !e.HasID {
		return fmt.Sprintf("test type %q not found", e.Variant)
	}
	return fmt.Sprintf("question %d not found in test type %q", e.ID, e.Variant)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func variantNotFound(v string) error { return &NotFoundError{Variant: v} }

func questionNotFound(v string, id int) error {
	return &NotFoundError{Variant: v, ID: id, HasID: true}
}
