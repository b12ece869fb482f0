package facts

import (
	"strconv"
	"strings"
)

// InvalidNumber is what a numeric fact yields when the model produced no
// digits at all.
const InvalidNumber = -1

// ParseNumericFact keeps only the ASCII digits of s. ok is false when s has
// none or the digits overflow an int.
func ParseNumericFact(s string) (int, bool) {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
