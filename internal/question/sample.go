package question

// Rand is the subset of *rand.Rand used for sampling.
type Rand interface {
	Intn(n int) int
	Perm(n int) []int
}

// Sample draws n questions without replacement. n larger than the pool is
// clamped; callers decide whether to warn.
func Sample(qs []Question, n int, rng Rand) []Question {
	if n <= 0 {
		return []Question{}
	}
	if n > len(qs) {
		n = len(qs)
	}
	perm := rng.Perm(len(qs))
	out := make([]Question, 0, n)
	for _, i := range perm[:n] {
		out = append(out, qs[i])
	}
	return out
}

// Pick returns one question chosen uniformly at random.
func Pick(qs []Question, rng Rand) (Question, bool) {
	if len(qs) == 0 {
		return Question{}, false
	}
	return qs[rng.Intn(len(qs))], true
}
