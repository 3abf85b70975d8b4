package sentiment

// Mood is a discrete label derived from a continuous polarity score.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodCalm    Mood = "calm"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAnxious Mood = "anxious"

	// MoodCrisis is assigned by the orchestrator on crisis routing,
	// never by the classifier.
	MoodCrisis Mood = "crisis"
)

// Thresholds are the polarity cut points between moods. Comparisons are
// strict, so a score exactly on a cut point falls to the lower mood.
type Thresholds struct {
	Happy   float64
	Calm    float64
	Neutral float64
	Sad     float64
}

// DefaultThresholds matches the tuning the mobile app shipped with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Happy:   0.3,
		Calm:    0,
		Neutral: -0.3,
		Sad:     -0.6,
	}
}

// Classifier maps polarity scores onto moods. It is a pure step
// function; the same score always yields the same mood.
type Classifier struct {
	thresholds Thresholds
}

func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{thresholds: t}
}

func (c *Classifier) Classify(polarity float64) Mood {
	switch {
	case polarity > c.thresholds.Happy:
		return MoodHappy
	case polarity > c.thresholds.Calm:
		return MoodCalm
	case polarity > c.thresholds.Neutral:
		return MoodNeutral
	case polarity > c.thresholds.Sad:
		return MoodSad
	default:
		return MoodAnxious
	}
}
