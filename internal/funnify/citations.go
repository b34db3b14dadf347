package funnify

import (
	"math/rand"
	"regexp"
	"strings"
)

// sentenceBoundary matches a sentence-ending punctuation mark followed by
// whitespace. The punctuation and whitespace are captured separately so the
// split is lossless.
var sentenceBoundary = regexp.MustCompile(`([.?!])(\s+)`)

// splitSentences tokenizes text at sentence boundaries into a flat list of
// (chunk, punctuation, whitespace) triples with a trailing chunk, such that
// strings.Join(tokens, "") == text.
func splitSentences(text string) []string {
	matches := sentenceBoundary.FindAllStringSubmatchIndex(text, -1)
	tokens := make([]string, 0, len(matches)*3+1)
	prev := 0
	for _, m := range matches {
		// m[2]:m[3] is the punctuation group, m[4]:m[5] the whitespace group.
		tokens = append(tokens, text[prev:m[2]], text[m[2]:m[3]], text[m[4]:m[5]])
		prev = m[1]
	}
	tokens = append(tokens, text[prev:])
	return tokens
}

// InjectCitations appends a random fake citation to sentence chunks with
// probability intensity/3. Chunks without non-whitespace content are left
// alone, and when nothing is injected the reassembled text is byte-identical
// to the input.
func InjectCitations(text string, intensity float64, tables *Tables, rng *rand.Rand) string {
	if intensity <= 0 || text == "" {
		return text
	}

	tokens := splitSentences(text)
	for i := 0; i < len(tokens); i += 3 {
		if strings.TrimSpace(tokens[i]) == "" {
			continue
		}
		if rng.Float64() < intensity/3 {
			tokens[i] += " " + tables.Citations[rng.Intn(len(tables.Citations))]
		}
	}
	return strings.Join(tokens, "")
}
