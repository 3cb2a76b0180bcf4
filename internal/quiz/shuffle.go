package quiz

import "math/rand/v2"

// Shuffle returns the correct and incorrect answers in a uniformly random
// order. A nil r uses the global source.
func Shuffle(correct string, incorrect []string, r *rand.Rand) []string {
	out := make([]string, 0, len(incorrect)+1)
	out = append(out, incorrect...)
	out = append(out, correct)

	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if r == nil {
		rand.Shuffle(len(out), swap)
	} else {
		r.Shuffle(len(out), swap)
	}
	return out
}
