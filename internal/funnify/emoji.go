package funnify

import (
	"math/rand"
	"strings"
)

// SprinkleEmojis appends 0-2 emojis to the end of each non-blank line.
// Two Bernoulli trials decide the count: the first at the full intensity,
// the second at half. Both trials are always drawn for non-blank lines so
// a fixed seed yields identical output regardless of earlier insertions.
// Blank lines and line order pass through untouched.
func SprinkleEmojis(text string, intensity float64, tables *Tables, rng *rand.Rand) string {
	if intensity <= 0 || text == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		count := 0
		if rng.Float64() < intensity {
			count++
		}
		if rng.Float64() < intensity/2 {
			count++
		}
		if count == 0 {
			continue
		}

		picks := make([]string, count)
		for j := range picks {
			picks[j] = tables.Emojis[rng.Intn(len(tables.Emojis))]
		}
		lines[i] = line + " " + strings.Join(picks, " ")
	}
	return strings.Join(lines, "\n")
}
