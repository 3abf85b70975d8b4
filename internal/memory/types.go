package memory

import (
	"context"
	"time"
)

// Speaker identifies who produced a turn.
type Speaker string

const (
	SpeakerUser  Speaker = "user"
	SpeakerAgent Speaker = "agent"
)

// Turn is one immutable utterance-or-reply unit in a session's ordered
// history. Sentiment is set on user turns only.
type Turn struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Sentiment string    `json:"sentiment,omitempty"`
	Phase     string    `json:"phase_at_time"`
	Route     string    `json:"route"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists per-session conversation memory. Implementations must
// preserve append order and session isolation; growth is unbounded in
// storage, and callers bound the window they forward downstream.
type Store interface {
	Append(ctx context.Context, turn Turn) error
	Recent(ctx context.Context, sessionID string, limit int) ([]Turn, error)
	All(ctx context.Context, sessionID string) ([]Turn, error)
	Clear(ctx context.Context, sessionID string) error
	Close() error
}
