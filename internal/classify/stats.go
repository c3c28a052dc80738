package classify

import (
	"strings"
	"unicode"
)

// textStats holds the single-pass character and token counts the heuristics
// evaluate against. Computing them once keeps each predicate trivial and
// keeps classification O(n) per unit regardless of how many heuristics run.
type textStats struct {
	nonWhitespace   int
	letters         int
	vowels          int
	maxConsonantRun int
	maxPunctRun     int
	words           int
	singleCharWords int
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// computeStats scans the text once for character counts and once for tokens.
// Consonant runs are runs of non-vowel letters; any non-letter breaks them.
func computeStats(text string) textStats {
	var st textStats
	consonantRun := 0
	punctRun := 0

	for _, r := range text {
		if !unicode.IsSpace(r) {
			st.nonWhitespace++
		}

		if unicode.IsLetter(r) {
			st.letters++
			if isVowel(r) {
				st.vowels++
				consonantRun = 0
			} else {
				consonantRun++
				if consonantRun > st.maxConsonantRun {
					st.maxConsonantRun = consonantRun
				}
			}
		} else {
			consonantRun = 0
		}

		if unicode.IsPunct(r) {
			punctRun++
			if punctRun > st.maxPunctRun {
				st.maxPunctRun = punctRun
			}
		} else {
			punctRun = 0
		}
	}

	for _, tok := range strings.Fields(text) {
		st.words++
		if len([]rune(tok)) == 1 {
			st.singleCharWords++
		}
	}
	return st
}
