package funnify

import (
	"math/rand"
	"strings"
	"testing"
)

func TestDefaultTables(t *testing.T) {
	tables := DefaultTables()

	t.Run("pools are populated", func(t *testing.T) {
		if len(tables.Replacements) == 0 {
			t.Error("no replacements")
		}
		if len(tables.Emojis) == 0 {
			t.Error("no emojis")
		}
		if len(tables.Citations) == 0 {
			t.Error("no citations")
		}
	})

	t.Run("replacements trigger case-insensitively", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		got := SubstituteWords("The Obese cat was OBESE.", 1, tables, rng)
		if strings.Contains(strings.ToLower(got), "obese") {
			t.Errorf("replacement did not fire: %q", got)
		}
		if !strings.Contains(got, "chonky") {
			t.Errorf("expected replacement text: %q", got)
		}
	})

	t.Run("citations are parenthesized", func(t *testing.T) {
		for _, c := range tables.Citations {
			if !strings.HasPrefix(c, "(") || !strings.HasSuffix(c, ")") {
				t.Errorf("citation %q not parenthesized", c)
			}
		}
	})
}
