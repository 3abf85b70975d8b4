package safety

import "strings"

// negationWindow caps how many words a negation reaches forward within
// one clause.
const negationWindow = 5

// Lists holds the configurable detection vocabulary. Empty fields fall
// back to the built-in defaults.
type Lists struct {
	Phrases   []string
	Keywords  []string
	Negations []string
	Dangers   []string
}

var (
	// Explicit high-confidence phrases. Any one of these in a clause
	// that is not negation-suppressed flags immediately.
	defaultPhrases = []string{
		"i want to die",
		"i want to end my life",
		"i'm going to kill myself",
		"im going to kill myself",
		"kill myself",
		"end it all",
		"better off dead",
		"no point living",
		"end my life",
	}

	// Broader curated keywords, matched on word boundaries.
	defaultKeywords = []string{
		"suicide",
		"self harm",
		"hurt myself",
		"cutting",
		"die",
		"worthless",
		"want to die",
		"hate myself",
	}

	defaultNegations = []string{
		"not", "no", "never", "don't", "dont", "doesn't", "doesnt",
		"won't", "wont", "wouldn't", "wouldnt", "can't", "cant",
		"isn't", "isnt", "didn't", "didnt",
	}

	defaultDangers = []string{
		"die", "kill", "suicide", "harm", "hurt", "cutting", "worthless",
	}
)

// Detector is a pure boolean gate over an utterance. There is no soft
// score: crisis handling must short-circuit all other routing, so the
// contract is detect-or-not.
//
// The negation guard is a best-effort heuristic. It only suppresses the
// clause containing the negation, so "I don't think I can go on, I want
// to die" still flags on the second clause. Known limitation: negation
// scope is approximated by a word window, which can over-suppress
// constructions like "I will not stop until I die".
type Detector struct {
	phrases   []string
	keywords  [][]string
	negations map[string]struct{}
	dangers   map[string]struct{}
}

func NewDetector() *Detector {
	return NewDetectorWithLists(Lists{})
}

func NewDetectorWithLists(lists Lists) *Detector {
	phrases := lists.Phrases
	if len(phrases) == 0 {
		phrases = defaultPhrases
	}
	keywords := lists.Keywords
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}
	negations := lists.Negations
	if len(negations) == 0 {
		negations = defaultNegations
	}
	dangers := lists.Dangers
	if len(dangers) == 0 {
		dangers = defaultDangers
	}

	d := &Detector{
		phrases:   make([]string, 0, len(phrases)),
		keywords:  make([][]string, 0, len(keywords)),
		negations: make(map[string]struct{}, len(negations)),
		dangers:   make(map[string]struct{}, len(dangers)),
	}
	for _, p := range phrases {
		d.phrases = append(d.phrases, strings.ToLower(strings.TrimSpace(p)))
	}
	for _, k := range keywords {
		toks := splitWords(strings.ToLower(k))
		if len(toks) > 0 {
			d.keywords = append(d.keywords, toks)
		}
	}
	for _, n := range negations {
		d.negations[strings.ToLower(n)] = struct{}{}
	}
	for _, w := range dangers {
		d.dangers[strings.ToLower(w)] = struct{}{}
	}
	return d
}

// Detect reports whether the utterance carries a self-harm or crisis
// signal. Pure predicate: recording and routing are the caller's job.
func (d *Detector) Detect(utterance string) bool {
	lower := strings.ToLower(strings.TrimSpace(utterance))
	if lower == "" {
		return false
	}

	for _, clause := range splitClauses(lower) {
		words := splitWords(clause)
		if len(words) == 0 {
			continue
		}
		if d.clauseSuppressed(words) {
			continue
		}
		if d.clauseHasPhrase(clause) {
			return true
		}
		if d.clauseHasKeyword(words) {
			return true
		}
	}
	return false
}

// clauseSuppressed reports whether a negation word precedes a danger
// term within the negation window.
func (d *Detector) clauseSuppressed(words []string) bool {
	for i, w := range words {
		if _, neg := d.negations[w]; !neg {
			continue
		}
		end := i + 1 + negationWindow
		if end > len(words) {
			end = len(words)
		}
		for j := i + 1; j < end; j++ {
			if _, danger := d.dangers[words[j]]; danger {
				return true
			}
		}
	}
	return false
}

func (d *Detector) clauseHasPhrase(clause string) bool {
	for _, p := range d.phrases {
		if strings.Contains(clause, p) {
			return true
		}
	}
	return false
}

// clauseHasKeyword matches keywords on word boundaries so "die" never
// fires inside unrelated words.
func (d *Detector) clauseHasKeyword(words []string) bool {
	for _, kw := range d.keywords {
		if containsSequence(words, kw) {
			return true
		}
	}
	return false
}

func containsSequence(words, seq []string) bool {
	if len(seq) == 0 || len(seq) > len(words) {
		return false
	}
outer:
	for i := 0; i+len(seq) <= len(words); i++ {
		for j, s := range seq {
			if words[i+j] != s {
				continue outer
			}
		}
		return true
	}
	return false
}

func splitClauses(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case ',', '.', ';', '!', '?', '\n':
			return true
		}
		return false
	})
}

func splitWords(clause string) []string {
	return strings.FieldsFunc(clause, func(r rune) bool {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= '0' && r <= '9' {
			return false
		}
		return r != '\''
	})
}
