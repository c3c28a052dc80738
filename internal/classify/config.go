package classify

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdfsift/pdfsift/internal/common"
)

// Config holds the tunable thresholds for the five garbage heuristics.
// Zero values are not meaningful; start from DefaultConfig and override.
type Config struct {
	// ConsonantRunLen rejects text containing a run of at least this many
	// consecutive consonant letters.
	ConsonantRunLen int `json:"consonant_run_len"`

	// AlphaRatioMin rejects text whose alphabetic share of non-whitespace
	// characters falls below this ratio.
	AlphaRatioMin float64 `json:"alpha_ratio_min"`

	// PunctRunLen rejects text containing a run of at least this many
	// consecutive punctuation characters.
	PunctRunLen int `json:"punct_run_len"`

	// VowelRatioMin rejects text whose vowel share of alphabetic characters
	// falls below this ratio. Only evaluated once the text has at least
	// MinLettersForVowelRatio letters.
	VowelRatioMin float64 `json:"vowel_ratio_min"`

	// SingleCharWordRatioMax rejects text where the share of one-character
	// word tokens exceeds this ratio. Only evaluated once the text has at
	// least MinWordsForSingleChar tokens.
	SingleCharWordRatioMax float64 `json:"single_char_word_ratio_max"`

	// MinLettersForVowelRatio is the letter count below which the vowel
	// ratio heuristic is skipped.
	MinLettersForVowelRatio int `json:"min_letters_for_vowel_ratio"`

	// MinWordsForSingleChar is the token count below which the single-char
	// word heuristic is skipped.
	MinWordsForSingleChar int `json:"min_words_for_single_char"`
}

// DefaultConfig returns the calibrated default thresholds.
func DefaultConfig() Config {
	return Config{
		ConsonantRunLen:         6,
		AlphaRatioMin:           0.5,
		PunctRunLen:             4,
		VowelRatioMin:           0.15,
		SingleCharWordRatioMax:  0.4,
		MinLettersForVowelRatio: 5,
		MinWordsForSingleChar:   5,
	}
}

// Validate checks that every threshold is in its valid range.
func (c Config) Validate() error {
	if c.ConsonantRunLen < 1 {
		return common.NewAppError("INVALID_CONFIGURATION", "consonant_run_len must be at least 1", common.ErrInvalidInput)
	}
	if c.PunctRunLen < 1 {
		return common.NewAppError("INVALID_CONFIGURATION", "punct_run_len must be at least 1", common.ErrInvalidInput)
	}
	if c.AlphaRatioMin < 0 || c.AlphaRatioMin > 1 {
		return common.NewAppError("INVALID_CONFIGURATION", "alpha_ratio_min must be within [0,1]", common.ErrInvalidInput)
	}
	if c.VowelRatioMin < 0 || c.VowelRatioMin > 1 {
		return common.NewAppError("INVALID_CONFIGURATION", "vowel_ratio_min must be within [0,1]", common.ErrInvalidInput)
	}
	if c.SingleCharWordRatioMax < 0 || c.SingleCharWordRatioMax > 1 {
		return common.NewAppError("INVALID_CONFIGURATION", "single_char_word_ratio_max must be within [0,1]", common.ErrInvalidInput)
	}
	if c.MinLettersForVowelRatio < 0 {
		return common.NewAppError("INVALID_CONFIGURATION", "min_letters_for_vowel_ratio must not be negative", common.ErrInvalidInput)
	}
	if c.MinWordsForSingleChar < 0 {
		return common.NewAppError("INVALID_CONFIGURATION", "min_words_for_single_char must not be negative", common.ErrInvalidInput)
	}
	return nil
}

// LoadFile reads threshold overrides from a JSON file. The document is
// validated against the config schema before unmarshalling, so malformed or
// out-of-range files fail before any document is processed. Fields omitted
// from the file keep their defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read heuristics config: %w", err)
	}
	if err := ValidateJSONAgainstSchema(BuildConfigJSONSchema(), data); err != nil {
		return cfg, common.NewAppError("INVALID_CONFIGURATION", err.Error(), common.ErrInvalidInput)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal heuristics config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
