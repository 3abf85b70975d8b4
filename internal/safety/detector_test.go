package safety

import "testing"

func TestDetectExplicitPhrases(t *testing.T) {
	d := NewDetector()

	flagged := []string{
		"I want to die",
		"i'm going to kill myself",
		"honestly I just want to end my life",
		"everyone would be better off dead without me",
		"there's no point living anymore",
		"I can't take it anymore, I want to kill myself",
	}
	for _, u := range flagged {
		if !d.Detect(u) {
			t.Errorf("Detect(%q) = false, want true", u)
		}
	}
}

func TestDetectKeywordsWordBoundary(t *testing.T) {
	d := NewDetector()

	if !d.Detect("I keep thinking about suicide") {
		t.Fatalf("keyword should flag")
	}
	if !d.Detect("sometimes I feel worthless") {
		t.Fatalf("keyword should flag")
	}

	// Substrings inside unrelated words must not flag.
	safe := []string{
		"the soldier died in the movie I watched", // "died" is not "die"
		"I was executing my plan for the week",
		"we are diecasting parts at work",
		"my harmonica practice is going well",
	}
	for _, u := range safe {
		if d.Detect(u) {
			t.Errorf("Detect(%q) = true, want false", u)
		}
	}
}

func TestDetectNegationGuard(t *testing.T) {
	d := NewDetector()

	suppressed := []string{
		"I don't want to die",
		"I would never hurt myself",
		"I'm not going to kill myself",
		"no I don't think about suicide",
	}
	for _, u := range suppressed {
		if d.Detect(u) {
			t.Errorf("Detect(%q) = true, want false (negation guard)", u)
		}
	}
}

func TestDetectNegationScopeIsClauseLocal(t *testing.T) {
	d := NewDetector()

	// The negation in the first clause must not suppress the crisis
	// signal in the second clause.
	u := "I don't think I can go on, I want to die"
	if !d.Detect(u) {
		t.Fatalf("Detect(%q) = false, want true", u)
	}
}

func TestDetectPlainUtterances(t *testing.T) {
	d := NewDetector()

	for _, u := range []string{
		"",
		"I feel overwhelmed today",
		"how do I use the journal feature",
		"work was stressful but dinner was nice",
	} {
		if d.Detect(u) {
			t.Errorf("Detect(%q) = true, want false", u)
		}
	}
}

func TestDetectCustomLists(t *testing.T) {
	d := NewDetectorWithLists(Lists{
		Phrases:  []string{"going dark"},
		Keywords: []string{"redline"},
		Dangers:  []string{"redline"},
	})

	if !d.Detect("I hit the redline again") {
		t.Fatalf("custom keyword should flag")
	}
	if !d.Detect("I'm going dark tonight") {
		t.Fatalf("custom phrase should flag")
	}
	if d.Detect("I will not redline today") {
		t.Fatalf("custom negation should suppress")
	}
	if d.Detect("I want to die") {
		t.Fatalf("default phrases should be replaced by custom lists")
	}
}
