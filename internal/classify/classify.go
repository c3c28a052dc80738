// Package classify decides whether a text unit is natural-language content or
// OCR garbage. Five deterministic heuristics are evaluated in a fixed order;
// the first one that triggers rejects the unit with its name as the reason.
// Heuristics are pure functions of the unit text, so classification of one
// unit never depends on another's outcome.
package classify

// Reason codes reported in verdicts. Rejection reasons carry the name of the
// heuristic that triggered.
const (
	ReasonClean           = "clean"
	ReasonConsonantRun    = "consonant-run"
	ReasonAlphaRatio      = "alpha-ratio"
	ReasonPunctRun        = "punct-run"
	ReasonVowelRatio      = "vowel-ratio"
	ReasonSingleCharWords = "single-char-words"
)

// Verdict is the accept/reject outcome for one text unit.
type Verdict struct {
	Accept bool
	Reason string
}

// heuristic is a named reject predicate over precomputed text stats.
type heuristic struct {
	name      string
	triggered func(cfg Config, st textStats) bool
}

// heuristics in evaluation order. Order is part of the contract: the first
// triggered heuristic short-circuits and names the rejection reason.
var heuristics = []heuristic{
	{ReasonConsonantRun, func(cfg Config, st textStats) bool {
		return st.maxConsonantRun >= cfg.ConsonantRunLen
	}},
	{ReasonAlphaRatio, func(cfg Config, st textStats) bool {
		if st.nonWhitespace == 0 {
			return false
		}
		return float64(st.letters)/float64(st.nonWhitespace) < cfg.AlphaRatioMin
	}},
	{ReasonPunctRun, func(cfg Config, st textStats) bool {
		return st.maxPunctRun >= cfg.PunctRunLen
	}},
	{ReasonVowelRatio, func(cfg Config, st textStats) bool {
		if st.letters < cfg.MinLettersForVowelRatio {
			return false
		}
		return float64(st.vowels)/float64(st.letters) < cfg.VowelRatioMin
	}},
	{ReasonSingleCharWords, func(cfg Config, st textStats) bool {
		if st.words < cfg.MinWordsForSingleChar {
			return false
		}
		return float64(st.singleCharWords)/float64(st.words) > cfg.SingleCharWordRatioMax
	}},
}

// Classifier applies the heuristic chain under one immutable configuration.
type Classifier struct {
	cfg Config
}

// New validates the configuration and returns a ready classifier.
func New(cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{cfg: cfg}, nil
}

// Config returns the thresholds the classifier was built with.
func (c *Classifier) Config() Config {
	return c.cfg
}

// Classify renders the verdict for a single text unit.
func (c *Classifier) Classify(text string) Verdict {
	st := computeStats(text)
	for _, h := range heuristics {
		if h.triggered(c.cfg, st) {
			return Verdict{Accept: false, Reason: h.name}
		}
	}
	return Verdict{Accept: true, Reason: ReasonClean}
}
