package session

import "time"

// CreateRequest defines payload for creating a new session.
type CreateRequest struct {
	UserID          string `json:"user_id"`
	Language        string `json:"language"`
	Style           string `json:"style"`
	VoicePreference string `json:"voice_preference"`
}

// CreateResponse returns created session metadata plus the welcome
// message the client should speak or display.
type CreateResponse struct {
	SessionID       string    `json:"session_id"`
	UserID          string    `json:"user_id"`
	Status          Status    `json:"status"`
	Language        string    `json:"language"`
	Style           string    `json:"style"`
	Phase           string    `json:"phase"`
	Welcome         string    `json:"welcome"`
	StartedAt       time.Time `json:"started_at"`
	InactivityTTLMS int64     `json:"inactivity_ttl_ms"`
}
