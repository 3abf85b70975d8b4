package session

import (
	"context"
	"testing"
	"time"

	"github.com/junolabs/juno/internal/dialogue"
)

func TestManagerCreateGetEnd(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create("u1", "en", dialogue.StyleJournal, "female")
	if s.ID == "" {
		t.Fatalf("session ID should not be empty")
	}
	if s.Phase() != dialogue.PhaseFeel {
		t.Fatalf("initial phase = %q, want %q", s.Phase(), dialogue.PhaseFeel)
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.UserID != "u1" || got.Language != "en" || got.Status != StatusActive {
		t.Fatalf("unexpected session state: %+v", got)
	}

	ended, err := m.End(s.ID)
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if ended.Status != StatusEnded {
		t.Fatalf("ended status = %q, want %q", ended.Status, StatusEnded)
	}
}

func TestManagerSetDialogueAdvances(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create("u1", "en", dialogue.StyleJournal, "")

	if err := m.SetDialogue(s.ID, s.Dialogue.Advance()); err != nil {
		t.Fatalf("SetDialogue() error = %v", err)
	}
	got, _ := m.Get(s.ID)
	if got.Phase() != dialogue.PhaseUnderstand {
		t.Fatalf("phase = %q, want %q", got.Phase(), dialogue.PhaseUnderstand)
	}
}

func TestManagerResetClearsCrisis(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create("u1", "en", dialogue.StyleCoach, "")
	if err := m.SetDialogue(s.ID, s.Dialogue.EnterCrisis()); err != nil {
		t.Fatalf("SetDialogue() error = %v", err)
	}

	reset, err := m.Reset(s.ID)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if reset.Phase() != dialogue.PhaseIdentify {
		t.Fatalf("phase after reset = %q, want %q", reset.Phase(), dialogue.PhaseIdentify)
	}

	// Resetting twice lands on the same state.
	again, err := m.Reset(s.ID)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if again.Dialogue != reset.Dialogue {
		t.Fatalf("second reset diverged: %+v vs %+v", again.Dialogue, reset.Dialogue)
	}
}

func TestManagerLockExchangeSerializes(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create("u1", "en", dialogue.StyleCompanion, "")

	unlock, err := m.LockExchange(s.ID)
	if err != nil {
		t.Fatalf("LockExchange() error = %v", err)
	}

	acquired := make(chan struct{})
	go func() {
		u, err := m.LockExchange(s.ID)
		if err != nil {
			t.Errorf("LockExchange() error = %v", err)
			close(acquired)
			return
		}
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatalf("second exchange acquired the lock while the first held it")
	case <-time.After(30 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("second exchange never acquired the lock")
	}
}

func TestManagerLockExchangeUnknownSession(t *testing.T) {
	m := NewManager(time.Minute)
	if _, err := m.LockExchange("missing"); err != ErrNotFound {
		t.Fatalf("LockExchange() error = %v, want ErrNotFound", err)
	}
}

func TestManagerJanitorExpiresInactive(t *testing.T) {
	m := NewManager(30 * time.Millisecond)
	s := m.Create("u1", "en", dialogue.StyleJournal, "")

	expired := make(chan string, 1)
	m.SetExpireHook(func(es *Session) { expired <- es.ID })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartJanitor(ctx, 10*time.Millisecond)

	select {
	case id := <-expired:
		if id != s.ID {
			t.Fatalf("expired session = %q, want %q", id, s.ID)
		}
	case <-time.After(time.Second):
		t.Fatalf("janitor never expired the session")
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != StatusEnded {
		t.Fatalf("Status = %q, want %q", got.Status, StatusEnded)
	}
}
