package sentiment

import "strings"

// Scorer produces a polarity score in [-1, 1] for an utterance. The
// real scoring primitive is an external collaborator; this interface
// keeps the engine independent of which one is wired in.
type Scorer interface {
	Score(text string) float64
}

// LexiconScorer is a small wordlist-based polarity scorer used when no
// external scoring service is configured. It is intentionally crude:
// the classifier only needs a rough signal to pick a mood label.
type LexiconScorer struct {
	positive map[string]float64
	negative map[string]float64
}

var defaultPositiveWords = map[string]float64{
	"happy": 0.8, "great": 0.8, "excited": 0.7, "good": 0.5,
	"grateful": 0.8, "thankful": 0.8, "love": 0.6, "joy": 0.8,
	"calm": 0.4, "peaceful": 0.5, "hopeful": 0.5, "better": 0.4,
	"okay": 0.1, "fine": 0.2, "relieved": 0.5, "proud": 0.6,
}

var defaultNegativeWords = map[string]float64{
	"sad": -0.5, "anxious": -0.5, "worried": -0.4, "stressed": -0.5,
	"overwhelmed": -0.5, "tired": -0.3, "angry": -0.6, "scared": -0.6,
	"lonely": -0.6, "hopeless": -0.8, "worthless": -0.9, "awful": -0.7,
	"terrible": -0.7, "hate": -0.7, "hurt": -0.5, "afraid": -0.6,
	"depressed": -0.8, "lost": -0.4, "empty": -0.6,
}

func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		positive: defaultPositiveWords,
		negative: defaultNegativeWords,
	}
}

// Score averages the polarity of matched words; negators within two
// words of a match flip its sign.
func (s *LexiconScorer) Score(text string) float64 {
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}

	var sum float64
	var hits int
	for i, w := range words {
		v, ok := s.positive[w]
		if !ok {
			v, ok = s.negative[w]
		}
		if !ok {
			continue
		}
		if negatedAt(words, i) {
			v = -v
		}
		sum += v
		hits++
	}
	if hits == 0 {
		return 0
	}

	avg := sum / float64(hits)
	if avg > 1 {
		avg = 1
	}
	if avg < -1 {
		avg = -1
	}
	return avg
}

func negatedAt(words []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-2; j-- {
		switch words[j] {
		case "not", "no", "never", "don't", "dont", "isn't", "isnt", "can't", "cant":
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	lower := strings.ToLower(text)
	return strings.FieldsFunc(lower, func(r rune) bool {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= '0' && r <= '9' {
			return false
		}
		return r != '\''
	})
}

// FixedScorer always returns the same polarity. Test helper.
type FixedScorer struct {
	Polarity float64
}

func (s FixedScorer) Score(string) float64 { return s.Polarity }
