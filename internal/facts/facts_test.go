package facts

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mind-engage/civics-quiz/internal/llm"
)

type fakeFetcher struct {
	pages map[string]string
	err   error
	urls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return "", f.err
	}
	return f.pages[url], nil
}

type fakeLLM struct {
	reply  string
	err    error
	prompt string
	req    llm.Request
}

func (f *fakeLLM) Complete(_ context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.prompt = prompt
	f.req = llm.Request{Prompt: prompt}
	for _, o := range opts {
		o(&f.req)
	}
	return f.reply, f.err
}

func TestEveryKindHasAFact(t *testing.T) {
	if got := len(Kinds()); got != 10 {
		t.Fatalf("expected 10 fact kinds, got %d", got)
	}
	for _, k := range Kinds() {
		f := builtin[k]
		if f.Kind != k || f.URL == "" || f.Instruction == "" {
			t.Fatalf("incomplete fact for %s: %+v", k, f)
		}
	}
	if !builtin[JusticeCount].Numeric {
		t.Fatalf("justice count must be numeric")
	}
}

func TestTableExtractEmbedsPage(t *testing.T) {
	ff := &fakeFetcher{pages: map[string]string{urlWhiteHouse: "<h1>President Jane Doe</h1>"}}
	inv := &fakeLLM{reply: "Jane Doe"}
	tbl := NewTable(ff, "")

	got, err := tbl.Extract(context.Background(), President, inv)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "Jane Doe" {
		t.Fatalf("got %q", got)
	}
	if len(ff.urls) != 1 || ff.urls[0] != urlWhiteHouse {
		t.Fatalf("fetched %v", ff.urls)
	}
	if !strings.Contains(inv.prompt, "<h1>President Jane Doe</h1>") || !strings.Contains(inv.prompt, "by name only") {
		t.Fatalf("prompt missing page or instruction:\n%s", inv.prompt)
	}
	if inv.req.Model != llm.ModelGeminiFlash {
		t.Fatalf("model = %q", inv.req.Model)
	}
}

func TestJusticeCountCoercion(t *testing.T) {
	cases := []struct {
		reply string
		want  string
	}{
		{"9", "9"},
		{"There are 9 justices.", "9"},
		{"nine", "-1"},
	}
	for _, c := range cases {
		tbl := NewTable(&fakeFetcher{}, "m")
		got, err := tbl.Extract(context.Background(), JusticeCount, &fakeLLM{reply: c.reply})
		if err != nil {
			t.Fatalf("%q: unexpected error %v", c.reply, err)
		}
		if got != c.want {
			t.Fatalf("%q: got %q want %q", c.reply, got, c.want)
		}
	}
}

func TestParseNumericFact(t *testing.T) {
	if n, ok := ParseNumericFact(" 9\n"); !ok || n != 9 {
		t.Fatalf("got %d %v", n, ok)
	}
	if _, ok := ParseNumericFact("none"); ok {
		t.Fatalf("expected no number")
	}
	if _, ok := ParseNumericFact(strings.Repeat("9", 40)); ok {
		t.Fatalf("overflow must not parse")
	}
}

func TestErrorsPropagate(t *testing.T) {
	fetchErr := errors.New("boom")
	tbl := NewTable(&fakeFetcher{err: fetchErr}, "")
	inv := &fakeLLM{reply: "unused"}
	if _, err := tbl.Extract(context.Background(), ChiefJustice, inv); !errors.Is(err, fetchErr) {
		t.Fatalf("fetch error lost: %v", err)
	}
	if inv.prompt != "" {
		t.Fatalf("llm called after fetch failure")
	}

	tbl = NewTable(&fakeFetcher{}, "")
	_, err := tbl.Extract(context.Background(), SpeakerOfTheHouse, &fakeLLM{err: llm.ErrEmptyCompletion})
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("llm error lost: %v", err)
	}

	// a numeric fact must not mask an llm failure as -1
	_, err = tbl.Extract(context.Background(), JusticeCount, &fakeLLM{err: llm.ErrEmptyCompletion})
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("numeric fact swallowed error: %v", err)
	}
}

func TestUnknownKind(t *testing.T) {
	if _, err := ParseKind("mayor"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if k, err := ParseKind(" President "); err != nil || k != President {
		t.Fatalf("got %q %v", k, err)
	}
	if _, err := NewTable(&fakeFetcher{}, "").Extract(context.Background(), Kind("mayor"), &fakeLLM{}); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestBuildMap(t *testing.T) {
	m, err := BuildMap(map[int]string{28: "president", 39: "justice_count"})
	if err != nil || m[28] != President || m[39] != JusticeCount {
		t.Fatalf("got %v %v", m, err)
	}
	_, err = BuildMap(map[int]string{1: "mayor", 2: "president"})
	if !errors.Is(err, ErrUnknownKind) || !strings.Contains(err.Error(), "question 1") {
		t.Fatalf("expected bad entry reported, got %v", err)
	}
}
