package grading

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/mind-engage/civics-quiz/internal/facts"
)

// placeholder is stored when a numeric fact could not be extracted. It is
// not a real answer and never matches.
var placeholder = strconv.Itoa(facts.InvalidNumber)

// normalize lowercases s, drops punctuation and collapses whitespace.
func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// forms returns the normalized texts an official answer accepts: the whole
// answer and, if it has parenthesized parts, the answer without them, so
// "(U.S.) Constitution" also accepts "Constitution".
func forms(official string) []string {
	if strings.TrimSpace(official) == placeholder {
		return nil
	}
	var out []string
	full := normalize(official)
	if full != "" {
		out = append(out, full)
	}
	if short := normalize(dropParens(official)); short != "" && short != full {
		out = append(out, short)
	}
	return out
}

func dropParens(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
			b.WriteByte(' ')
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func matchesOfficial(answers []string, answer string) bool {
	if strings.TrimSpace(answer) == placeholder {
		return false
	}
	na := normalize(answer)
	if na == "" {
		return false
	}
	for _, a := range answers {
		for _, f := range forms(a) {
			if f == na {
				return true
			}
		}
	}
	return false
}
