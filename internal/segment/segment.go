// Package segment splits raw per-page text into candidate text units.
// Sentence mode cuts on terminal punctuation with a minimal abbreviation
// guard; activity mode cuts on line breaks and strips bullet or numbering
// prefixes. Units are produced lazily in reading order and the returned
// sequence can be ranged over more than once.
package segment

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfsift/pdfsift/internal/common"
)

// Mode selects how page text is segmented.
type Mode string

const (
	ModeSentence Mode = "sentence"
	ModeActivity Mode = "activity"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSentence, ModeActivity:
		return Mode(s), nil
	}
	return "", common.NewAppError("INVALID_CONFIGURATION", fmt.Sprintf("unknown mode %q", s), common.ErrInvalidInput)
}

// Unit is a candidate text unit with its 0-based index within the page.
type Unit struct {
	Index int
	Text  string
}

// Config configures a Segmenter.
type Config struct {
	Mode Mode

	// Abbreviations lists tokens (case-insensitive, trailing dots ignored)
	// after which a sentence terminal never splits, e.g. "e.g", "dr", "vs".
	// The default is empty; the list is a tunable, not a fixed dictionary.
	Abbreviations []string
}

// Segmenter turns page text into units for one fixed mode.
type Segmenter struct {
	mode   Mode
	abbrev map[string]struct{}
}

// New validates the configuration and returns a ready segmenter.
func New(cfg Config) (*Segmenter, error) {
	if _, err := ParseMode(string(cfg.Mode)); err != nil {
		return nil, err
	}
	abbrev := make(map[string]struct{}, len(cfg.Abbreviations))
	for _, a := range cfg.Abbreviations {
		a = strings.ToLower(strings.TrimRight(a, "."))
		if a != "" {
			abbrev[a] = struct{}{}
		}
	}
	return &Segmenter{mode: cfg.Mode, abbrev: abbrev}, nil
}

// Mode returns the segmenter's operating mode.
func (s *Segmenter) Mode() Mode {
	return s.mode
}

// Units returns a lazy, finite, restartable sequence of non-empty trimmed
// units in reading order. An empty page yields an empty sequence.
func (s *Segmenter) Units(pageText string) iter.Seq[Unit] {
	if s.mode == ModeActivity {
		return s.activityUnits(pageText)
	}
	return s.sentenceUnits(pageText)
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// sentenceUnits cuts after terminal punctuation followed by whitespace or end
// of text. A terminal followed immediately by a letter ("e.g.x", "3.14") is
// never a boundary, and a terminal ending a configured abbreviation token is
// skipped even before whitespace. A page with no terminators yields the whole
// trimmed text as a single unit.
func (s *Segmenter) sentenceUnits(text string) iter.Seq[Unit] {
	return func(yield func(Unit) bool) {
		runes := []rune(text)
		index := 0
		start := 0
		for i := 0; i < len(runes); i++ {
			if !isTerminal(runes[i]) {
				continue
			}
			atEnd := i == len(runes)-1
			if !atEnd && !unicode.IsSpace(runes[i+1]) {
				continue
			}
			if s.isAbbreviation(runes, start, i) {
				continue
			}
			unit := strings.TrimSpace(string(runes[start : i+1]))
			if unit != "" {
				if !yield(Unit{Index: index, Text: unit}) {
					return
				}
				index++
			}
			start = i + 1
		}
		if start < len(runes) {
			unit := strings.TrimSpace(string(runes[start:]))
			if unit != "" {
				yield(Unit{Index: index, Text: unit})
			}
		}
	}
}

// isAbbreviation reports whether the token ending at the terminal runes[i]
// matches the configured abbreviation list.
func (s *Segmenter) isAbbreviation(runes []rune, start, i int) bool {
	if len(s.abbrev) == 0 {
		return false
	}
	tokStart := i
	for tokStart > start && !unicode.IsSpace(runes[tokStart-1]) {
		tokStart--
	}
	tok := strings.ToLower(strings.TrimRight(string(runes[tokStart:i]), "."))
	if tok == "" {
		return false
	}
	_, ok := s.abbrev[tok]
	return ok
}

// bulletRe matches leading bullet or numbering tokens on activity lines,
// e.g. "- ", "* ", "• ", "1. ", "12) ".
var bulletRe = regexp.MustCompile(`^(?:[-*•]\s+|\d{1,3}[.)]\s+)`)

// activityUnits cuts on line breaks, drops blank lines, and strips a leading
// bullet or numbering token from each line.
func (s *Segmenter) activityUnits(text string) iter.Seq[Unit] {
	return func(yield func(Unit) bool) {
		index := 0
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			line = strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
			if line == "" {
				continue
			}
			if !yield(Unit{Index: index, Text: line}) {
				return
			}
			index++
		}
	}
}
