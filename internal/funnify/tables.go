package funnify

import (
	"fmt"
	"regexp"
)

// Replacement maps a boring word (or phrase) to its funny substitute.
// The match is case-insensitive and anchored at word boundaries.
type Replacement struct {
	Word  string
	Funny string

	re *regexp.Regexp
}

// NewReplacement builds a Replacement with its match pattern compiled.
// It returns an error if the word cannot form a valid pattern.
func NewReplacement(word, funny string) (Replacement, error) {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return Replacement{}, fmt.Errorf("invalid replacement word %q: %w", word, err)
	}
	return Replacement{Word: word, Funny: funny, re: re}, nil
}

// MustReplacement is NewReplacement for static tables; it panics on error.
func MustReplacement(word, funny string) Replacement {
	r, err := NewReplacement(word, funny)
	if err != nil {
		panic(err)
	}
	return r
}

// Tables holds the static pools driving the transform stages. Build once at
// startup and pass by reference; never mutated at runtime.
type Tables struct {
	// Replacements apply in order; later entries operate on the output of
	// earlier ones, so replacements may compound.
	Replacements []Replacement
	Emojis       []string
	Citations    []string
}

// DefaultTables returns the stock replacement table, emoji pool, and
// citation pool.
func DefaultTables() *Tables {
	return &Tables{
		Replacements: []Replacement{
			MustReplacement("obese", "chonky"),
			MustReplacement("overweight", "chonky"),
			MustReplacement("fat", "snack-powered"),
			MustReplacement("bullied", "got roasted"),
			MustReplacement("argue", "enter a spicy debate"),
			MustReplacement("angry", "internally screaming"),
			MustReplacement("manager", "email overlord"),
			MustReplacement("principal", "rule grandmaster"),
			MustReplacement("teacher", "knowledge dispenser"),
			MustReplacement("boss", "overlord of coffee"),
			MustReplacement("worked hard", "sweated like a gamer on 1% battery"),
			MustReplacement("meeting", "snooze summit"),
			MustReplacement("study", "lore grind"),
			MustReplacement("student", "XP farmer"),
		},
		Emojis: []string{
			"😂", "😼", "✨", "🙃", "🫠", "🔥", "🥲", "🧠",
			"🫡", "🤝", "🍿", "🐱", "📚", "☕", "🌀", "🧃",
		},
		Citations: []string{
			"(TotallyRealJournal, 2024)",
			"(See: Figure 69)",
			"(Peer-reviewed by 3 cats)",
			"(Source: Trust me bro)",
			"(As foretold by ancient memes)",
		},
	}
}
