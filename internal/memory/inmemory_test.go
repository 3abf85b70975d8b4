package memory

import (
	"context"
	"fmt"
	"testing"
)

func appendN(t *testing.T, s Store, sessionID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		turn := Turn{
			SessionID: sessionID,
			Speaker:   SpeakerUser,
			Text:      fmt.Sprintf("turn-%d", i),
			Phase:     "feel",
			Route:     "dialogue",
			Language:  "en",
		}
		if err := s.Append(context.Background(), turn); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
}

func TestRecentBoundedAndOrdered(t *testing.T) {
	s := NewInMemoryStore()
	appendN(t, s, "s1", 12)

	got, err := s.Recent(context.Background(), "s1", 5)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Recent(5) returned %d turns", len(got))
	}
	for i, turn := range got {
		want := fmt.Sprintf("turn-%d", 7+i)
		if turn.Text != want {
			t.Errorf("Recent()[%d].Text = %q, want %q", i, turn.Text, want)
		}
	}
}

func TestRecentNeverExceedsStored(t *testing.T) {
	s := NewInMemoryStore()
	appendN(t, s, "s1", 3)

	got, err := s.Recent(context.Background(), "s1", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent(10) returned %d turns, want 3", len(got))
	}
}

func TestSessionIsolation(t *testing.T) {
	s := NewInMemoryStore()
	appendN(t, s, "s1", 4)
	appendN(t, s, "s2", 2)

	all, err := s.All(context.Background(), "s2")
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("All(s2) returned %d turns, want 2", len(all))
	}
	for _, turn := range all {
		if turn.SessionID != "s2" {
			t.Fatalf("turn leaked from session %q", turn.SessionID)
		}
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := NewInMemoryStore()
	appendN(t, s, "s1", 4)

	for i := 0; i < 2; i++ {
		if err := s.Clear(context.Background(), "s1"); err != nil {
			t.Fatalf("Clear() #%d error = %v", i+1, err)
		}
	}
	all, err := s.All(context.Background(), "s1")
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("All() after clear returned %d turns", len(all))
	}
}

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	s := NewInMemoryStore()
	appendN(t, s, "s1", 1)

	all, _ := s.All(context.Background(), "s1")
	if all[0].ID == "" {
		t.Fatalf("Append() should assign an ID")
	}
	if all[0].CreatedAt.IsZero() {
		t.Fatalf("Append() should assign a timestamp")
	}
}
