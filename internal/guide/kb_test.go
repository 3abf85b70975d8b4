package guide

import (
	"strings"
	"testing"
)

func TestSearchMatchesJournalFeature(t *testing.T) {
	kb := NewKnowledgeBase()

	got := kb.Search("how do I use the journal feature?")
	if got == "" {
		t.Fatalf("Search() returned empty for a journal query")
	}
	if !strings.Contains(got, "JournalPage") {
		t.Fatalf("Search() = %q, want JournalPage info", got)
	}
}

func TestSearchSubIntents(t *testing.T) {
	kb := NewKnowledgeBase()

	cases := []struct {
		query    string
		wantPart string
	}{
		{"take me to the breathing exercise", "How to reach"},
		{"what can i do on my profile", "you can"},
		{"where is the subscription page", "To reach"},
		{"grounding", "GroundingPage"},
	}
	for _, tc := range cases {
		got := kb.Search(tc.query)
		if got == "" {
			t.Errorf("Search(%q) returned empty", tc.query)
			continue
		}
		if !strings.Contains(got, tc.wantPart) {
			t.Errorf("Search(%q) = %q, want substring %q", tc.query, got, tc.wantPart)
		}
	}
}

func TestSearchUnknownTopic(t *testing.T) {
	kb := NewKnowledgeBase()
	if got := kb.Search("quantum flux capacitors"); got != "" {
		t.Fatalf("Search() = %q, want empty for unknown topic", got)
	}
	if got := kb.Search(""); got != "" {
		t.Fatalf("Search(\"\") = %q, want empty", got)
	}
}

func TestCustomPages(t *testing.T) {
	kb := NewKnowledgeBaseWithPages([]Page{{
		Name:       "SleepPage",
		Overview:   "Wind-down routines",
		Tags:       []string{"sleep", "bedtime"},
		Actions:    []string{"Start routine"},
		HowToReach: "From HomePage, tap Sleep",
	}})

	if got := kb.Search("help me with sleep"); !strings.Contains(got, "SleepPage") {
		t.Fatalf("Search() = %q, want SleepPage", got)
	}
	if len(kb.Pages()) != 1 {
		t.Fatalf("Pages() len = %d, want 1", len(kb.Pages()))
	}
}
