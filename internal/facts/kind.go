// Package facts holds the closed set of dynamic facts the refresh engine can
// look up, each paired with its reference page and extraction prompt.
package facts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Kind string

const (
	GovernorsByState       Kind = "governors_by_state"
	SenatorsByState        Kind = "senators_by_state"
	RepresentativesByState Kind = "representatives_by_state"
	President              Kind = "president"
	VicePresident          Kind = "vice_president"
	JusticeCount           Kind = "justice_count"
	ChiefJustice           Kind = "chief_justice"
	CapitalsByState        Kind = "capitals_by_state"
	PresidentParty         Kind = "president_party"
	SpeakerOfTheHouse      Kind = "speaker_of_the_house"
)

var ErrUnknownKind = errors.New("facts: unknown fact kind")

// Kinds lists every supported fact in a stable order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(builtin))
	for k := range builtin {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := builtin[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// BuildMap turns a variant's configured id -> kind names into typed kinds.
// Every bad entry is reported.
func BuildMap(raw map[int]string) (map[int]Kind, error) {
	out := make(map[int]Kind, len(raw))
	var errs []error
	for id, name := range raw {
		k, err := ParseKind(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("question %d: %w", id, err))
			continue
		}
		out[id] = k
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
