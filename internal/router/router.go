package router

import "strings"

// Route is the sub-agent chosen for an utterance.
type Route string

const (
	RouteCrisis   Route = "crisis"
	RouteGuide    Route = "guide"
	RouteDialogue Route = "dialogue"
)

// CrisisDetector is the safety gate consulted before anything else.
type CrisisDetector interface {
	Detect(utterance string) bool
}

// Router classifies utterances. Evaluation order is fixed: crisis
// dominates feature questions, and feature questions dominate generic
// reflective dialogue, so someone asking "how do I journal" is never
// pushed through phase scripting.
type Router struct {
	detector CrisisDetector

	phraseMarkers  []string
	featureMarkers []string
}

var defaultPhraseMarkers = []string{
	"how do i", "how to", "what is", "where is", "explain",
	"tell me about", "show me", "take me to", "how do you",
}

var defaultFeatureMarkers = []string{
	"subscription", "profile", "journal", "page", "feature",
	"app", "setup", "settings", "breathing", "grounding",
}

func New(detector CrisisDetector) *Router {
	return &Router{
		detector:       detector,
		phraseMarkers:  defaultPhraseMarkers,
		featureMarkers: defaultFeatureMarkers,
	}
}

// Classify picks the route for an utterance. First match wins.
func (r *Router) Classify(utterance string) Route {
	if r.detector.Detect(utterance) {
		return RouteCrisis
	}
	if r.isGuideQuery(utterance) {
		return RouteGuide
	}
	return RouteDialogue
}

// isGuideQuery looks for navigation/feature intent: an explicit phrase
// marker, or a feature noun inside something shaped like a question.
// The second condition keeps "I journal every night" in the dialogue
// track while still catching "can I lock a journal entry?".
func (r *Router) isGuideQuery(utterance string) bool {
	q := strings.ToLower(strings.TrimSpace(utterance))
	if q == "" {
		return false
	}

	for _, m := range r.phraseMarkers {
		if strings.Contains(q, m) {
			return true
		}
	}

	if !looksLikeQuestion(q) {
		return false
	}
	words := strings.Fields(q)
	for _, m := range r.featureMarkers {
		for _, w := range words {
			if strings.Trim(w, "?.!,") == m {
				return true
			}
		}
	}
	return false
}

func looksLikeQuestion(q string) bool {
	if strings.Contains(q, "?") {
		return true
	}
	first, _, _ := strings.Cut(q, " ")
	switch first {
	case "how", "what", "where", "can", "does", "do", "is", "are", "which":
		return true
	default:
		return false
	}
}
