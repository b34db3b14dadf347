package funnify

import "math/rand"

// SubstituteWords scans text for each replacement table entry and swaps
// every whole-word, case-insensitive match independently with probability
// intensity. Entries apply sequentially, so a replacement's output is
// visible to later entries. Zero intensity returns text unchanged without
// consuming randomness.
func SubstituteWords(text string, intensity float64, tables *Tables, rng *rand.Rand) string {
	if intensity <= 0 || text == "" {
		return text
	}

	for _, r := range tables.Replacements {
		text = r.re.ReplaceAllStringFunc(text, func(match string) string {
			if rng.Float64() < intensity {
				return r.Funny
			}
			return match
		})
	}
	return text
}
